package network_test

import (
	"fmt"

	"github.com/matzehuels/adroutes/pkg/network"
	"github.com/matzehuels/adroutes/pkg/waypoint"
)

func ExampleClassify() {
	tbl, _ := waypoint.Parse(waypoint.Sample())
	sel, _ := network.Range(23, 36)
	g, _ := network.Build(tbl, sel)
	c, _ := network.Classify(g)

	fmt.Println("bidirectional:", c.Bidirectional)
	fmt.Println("backwards:", c.Backwards)
	fmt.Println("priority:", c.Priority)
	fmt.Println("subpriority:", c.SubPriority)
	// Output:
	// bidirectional: [32↔33 33↔34 34↔35 35↔36]
	// backwards: [23→30 30→31 31→32]
	// priority: [23→24 24→25]
	// subpriority: [23→26 26→27 27→28 28→29]
}

func ExampleParseSelection() {
	sel, _ := network.ParseSelection("23-26,30,31")
	fmt.Println(sel.Len(), sel)
	// Output: 5 23-26,30-31
}
