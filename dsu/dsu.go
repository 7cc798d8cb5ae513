package dsu

// Set is a disjoint-set forest over the elements 1..n.
//
// parent[x] == x marks a root; rank[x] bounds the height of x's tree.
// Index 0 is allocated but never part of any component.
type Set struct {
	parent []int
	rank   []int
	count  int // number of disjoint components
}

// New returns a Set in which each of 1..n is its own component.
// n < 0 is treated as 0.
func New(n int) *Set {
	if n < 0 {
		n = 0
	}
	s := &Set{
		parent: make([]int, n+1),
		rank:   make([]int, n+1),
		count:  n,
	}
	for i := range s.parent {
		s.parent[i] = i
	}

	return s
}

// Len returns n, the number of elements tracked.
func (s *Set) Len() int { return len(s.parent) - 1 }

// Find returns the canonical root of x's component.
// Iterative path halving: every visited node is pointed at its grandparent.
// x must lie in 1..n; out-of-range values panic like a slice index would.
func (s *Set) Find(x int) int {
	for s.parent[x] != x {
		s.parent[x] = s.parent[s.parent[x]]
		x = s.parent[x]
	}

	return x
}

// Union merges the components of x and y by rank.
// It reports false when x and y were already connected.
func (s *Set) Union(x, y int) bool {
	rootX := s.Find(x)
	rootY := s.Find(y)
	if rootX == rootY {
		return false
	}

	// Attach the shallower tree under the deeper one.
	switch {
	case s.rank[rootX] < s.rank[rootY]:
		s.parent[rootX] = rootY
	case s.rank[rootX] > s.rank[rootY]:
		s.parent[rootY] = rootX
	default:
		s.parent[rootY] = rootX
		s.rank[rootX]++
	}
	s.count--

	return true
}

// Connected reports whether x and y share a component.
func (s *Set) Connected(x, y int) bool { return s.Find(x) == s.Find(y) }

// Count returns the current number of disjoint components.
func (s *Set) Count() int { return s.count }

// Components groups 1..n by root. Groups are ordered by their smallest member
// and members ascend within a group.
func (s *Set) Components() [][]int {
	index := make(map[int]int, s.count)
	out := make([][]int, 0, s.count)
	for x := 1; x <= s.Len(); x++ {
		root := s.Find(x)
		i, ok := index[root]
		if !ok {
			i = len(out)
			index[root] = i
			out = append(out, nil)
		}
		out[i] = append(out[i], x)
	}

	return out
}
