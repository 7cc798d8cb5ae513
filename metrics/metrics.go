package metrics

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/mstd/core"
	"github.com/katalvlaran/mstd/dijkstra"
	"github.com/katalvlaran/mstd/dsu"
	"github.com/katalvlaran/mstd/mst"
)

// Unbounded is the starting value of the running minimum pairwise distance.
const Unbounded = int64(math.MaxInt64)

// ErrNilResult indicates that Compute received a nil *mst.Result.
var ErrNilResult = errors.New("metrics: result is nil")

// Summary holds the scalar metrics of one spanning tree or forest.
type Summary struct {
	TotalWeight int64   // sum of accepted edge weights
	Longest     int64   // maximum distance over reachable pairs
	Shortest    int64   // minimum distance over reachable pairs, 0 when Pairs == 0
	Average     float64 // mean distance over reachable pairs, 0 when Pairs == 0
	Pairs       int     // number of unordered reachable pairs scanned

	// LongestPath lists the tree vertices from one end of a longest pair to
	// the other; nil when Pairs == 0.
	LongestPath []int
}

// Compute derives the Summary of res.
//
// Steps:
//  1. Build the tree as a symmetric graph over 1..res.Vertices and group its
//     vertices into trees with a dsu.Set.
//  2. Per tree, run Dijkstra from each member and fold the row into the
//     running min, max and sum over its pairs i < j. Rows are never stored,
//     so memory stays O(V) however many pairs there are.
//  3. Map the Unbounded minimum to 0 when no pair was reachable, otherwise
//     rebuild the longest path with one more Dijkstra run.
func Compute(res *mst.Result) (Summary, error) {
	if res == nil {
		return Summary{}, ErrNilResult
	}
	summary := Summary{TotalWeight: res.TotalWeight}

	// 1. Symmetric tree and its components.
	tree, err := Symmetric(res.Vertices, res.Edges)
	if err != nil {
		return Summary{}, err
	}
	set := dsu.New(res.Vertices)
	for _, e := range res.Edges {
		set.Union(e.From, e.To)
	}

	// 2. Fold rows.
	shortest := Unbounded
	var sum float64
	var from, to int
	for _, members := range set.Components() {
		if len(members) < 2 {
			continue
		}
		err = Rows(tree, members[:len(members)-1], func(i int, dist []int64) error {
			s := members[i]
			for _, v := range members[i+1:] {
				d := dist[v]
				if d == dijkstra.Unreachable {
					return fmt.Errorf("metrics: %d and %d share a tree but are unreachable", s, v)
				}
				summary.Pairs++
				sum += float64(d)
				if summary.Pairs == 1 || d > summary.Longest {
					summary.Longest, from, to = d, s, v
				}
				if d < shortest {
					shortest = d
				}
			}

			return nil
		})
		if err != nil {
			return Summary{}, err
		}
	}

	// 3. Report.
	if summary.Pairs == 0 {
		summary.Shortest = 0
		summary.Average = 0

		return summary, nil
	}
	summary.Shortest = shortest
	summary.Average = sum / float64(summary.Pairs)

	dist, prev, err := dijkstra.Dijkstra(tree, dijkstra.Source(from), dijkstra.WithReturnPath())
	if err != nil {
		return Summary{}, fmt.Errorf("metrics: longest path from %d: %w", from, err)
	}
	summary.LongestPath = dijkstra.PathTo(prev, dist, from, to)

	return summary, nil
}

// Symmetric builds a graph over 1..n holding every edge in both directions.
// Self-loops are stored once.
func Symmetric(n int, edges []core.Edge) (*core.Graph, error) {
	g, err := core.NewGraph(n)
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		if err = g.AddEdge(e.From, e.To, e.Weight); err != nil {
			return nil, fmt.Errorf("metrics: tree edge %s: %w", e, err)
		}
		if e.From == e.To {
			continue
		}
		if err = g.AddEdge(e.To, e.From, e.Weight); err != nil {
			return nil, fmt.Errorf("metrics: tree edge %s: %w", e, err)
		}
	}

	return g, nil
}

// Rows runs Dijkstra from each of sources in turn and hands the distance row
// to fn together with the source's index in sources. dist[v] is the shortest
// directed distance sources[i]→v, or dijkstra.Unreachable; the slice is only
// valid during the call. An error from fn stops the pass.
// Complexity: O(len(sources)·(V + E) log V) time, O(V + E) memory.
func Rows(g *core.Graph, sources []int, fn func(i int, dist []int64) error) error {
	if g == nil {
		return dijkstra.ErrNilGraph
	}
	for i, s := range sources {
		dist, _, err := dijkstra.Dijkstra(g, dijkstra.Source(s))
		if err != nil {
			return fmt.Errorf("metrics: source %d: %w", s, err)
		}
		if err = fn(i, dist); err != nil {
			return err
		}
	}

	return nil
}
