package diagram_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/adroutes/pkg/network"
	"github.com/matzehuels/adroutes/pkg/render/diagram"
	"github.com/matzehuels/adroutes/pkg/waypoint"
)

func ExampleRenderSVG() {
	tbl, _ := waypoint.Parse(waypoint.Sample())
	sel, _ := network.Range(23, 36)
	g, _ := network.Build(tbl, sel)
	c, _ := network.Classify(g)

	svg, err := diagram.RenderSVG(c, diagram.WithTitle("Waypoints 23-36"))
	if err != nil {
		panic(err)
	}
	fmt.Println(strings.Count(string(svg), "<circle"))
	// Output: 14
}
