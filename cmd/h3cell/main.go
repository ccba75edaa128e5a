// h3cell is a thin CLI over the hexgrid core: it resolves a point or an
// existing identifier to the cell's full description.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mohammed-shakir/h3-cell-gateway/pkg/hexgrid"
)

func main() {
	os.Exit(run())
}

func run() int {
	lat := flag.Float64("lat", 0, "latitude in degrees")
	lng := flag.Float64("lng", 0, "longitude in degrees")
	res := flag.Int("res", 8, "resolution 0..15")
	index := flag.String("index", "", "cell index (hex); overrides lat/lng")
	parent := flag.Int("parent", -1, "also print the ancestor at this resolution")
	flag.Parse()

	g := hexgrid.New()

	var (
		idx hexgrid.Index
		err error
	)
	if strings.TrimSpace(*index) != "" {
		idx, err = g.IndexFromString(*index)
	} else {
		idx, err = g.IndexFor(hexgrid.Coordinate{Lat: *lat, Lng: *lng}, *res)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	printCell(g, idx)

	if *parent >= 0 {
		p, err := g.Parent(idx, *parent)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("parent:")
		printCell(g, p)
	}
	return 0
}

func printCell(g *hexgrid.Grid, idx hexgrid.Index) {
	c := g.Centroid(idx)
	fmt.Printf("index:     %s\n", g.ToText(idx))
	fmt.Printf("res:       %d\n", g.Resolution(idx))
	fmt.Printf("base cell: %d\n", g.BaseCell(idx))
	fmt.Printf("pentagon:  %v\n", g.IsPentagon(idx))
	fmt.Printf("class3:    %v\n", g.IsResClass3(idx))
	fmt.Printf("centroid:  %.9f,%.9f\n", c.Lat, c.Lng)
	for i, v := range g.Boundary(idx) {
		fmt.Printf("vertex %d:  %.9f,%.9f\n", i, v.Lat, v.Lng)
	}
}
