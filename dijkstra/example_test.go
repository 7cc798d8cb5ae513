package dijkstra_test

import (
	"fmt"

	"github.com/katalvlaran/mstd/core"
	"github.com/katalvlaran/mstd/dijkstra"
)

// ExampleDijkstra finds the cheapest route 1→4 when the direct edge is more expensive.
func ExampleDijkstra() {
	g, _ := core.NewGraph(4)
	_ = g.AddEdge(1, 2, 1)
	_ = g.AddEdge(2, 3, 2)
	_ = g.AddEdge(3, 4, 1)
	_ = g.AddEdge(1, 4, 9)

	dist, prev, _ := dijkstra.Dijkstra(g, dijkstra.Source(1), dijkstra.WithReturnPath())
	fmt.Println(dist[4], dijkstra.PathTo(prev, dist, 1, 4))
	// Output: 4 [1 2 3 4]
}
