package waypoint_test

import (
	"fmt"

	"github.com/matzehuels/adroutes/pkg/waypoint"
)

func ExampleParse() {
	tbl, err := waypoint.Parse(waypoint.Raw{
		IDs:      "1,2,3",
		X:        "0,10,20",
		Z:        "0,0,5",
		Out:      "2;3;-1",
		Incoming: "-1;1;2",
		Flags:    "0,0,1",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	wp, _ := tbl.Get(2)
	fmt.Println("Waypoints:", tbl.Len())
	fmt.Println("2 out:", wp.Out)
	fmt.Println("2 in:", wp.Incoming)
	flag, _ := tbl.Flag(3)
	fmt.Println("3 flag:", flag)
	// Output:
	// Waypoints: 3
	// 2 out: [3]
	// 2 in: [1]
	// 3 flag: subprio
}

func ExampleParseNested() {
	groups, _ := waypoint.ParseNested("24,26,30;25;-1")
	fmt.Println(groups)
	// Output:
	// [[24 26 30] [25] []]
}
