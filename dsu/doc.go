// Package dsu implements a disjoint-set (union-find) structure over the
// dense element range 1..n used by the MST algorithms.
//
// What & Why
//
//   - Kruskal and Borůvka both need to answer "are u and v already in one
//     component?" and "merge their components" many times per computation.
//   - Union returns false when both elements already share a root; callers use
//     that as the cycle-avoidance signal.
//
// Guarantees
//
//   - Find resolves every element to one canonical root per component under the
//     union history so far.
//   - Path compression (path halving, iterative) and union by rank keep the
//     amortized cost per operation at O(α(n)).
//   - A Set is scoped to one computation: there is no removal, and it is not
//     safe for concurrent use.
//
// Complexity:
//
//   - New:   O(n) time and memory.
//   - Find, Union, Connected: O(α(n)) amortized.
//   - Count: O(1).
package dsu
