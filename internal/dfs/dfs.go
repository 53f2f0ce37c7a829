// Package dfs defines the DFS-code representation of connected labeled
// subgraphs, as used by the gSpan algorithm: each pattern is an ordered
// sequence of DFS edges, and the lexicographically minimum such sequence is
// the pattern's canonical form.
package dfs

import (
	"fmt"
	"strings"

	"github.com/janpfeifer/gspan/internal/generics"
	"github.com/janpfeifer/gspan/internal/graph"
)

// Edge is one entry of a DFS code. From and To index the pattern's vertices
// in DFS-discovery order; the first edge of any code is (0, 1).
type Edge struct {
	From, To  graph.VertexID
	FromLabel graph.VertexLabel
	EdgeLabel graph.EdgeLabel
	ToLabel   graph.VertexLabel
}

// Forward returns whether the edge discovers a new vertex.
func (e Edge) Forward() bool { return e.To > e.From }

// Backward returns whether the edge closes a cycle back to an earlier vertex.
func (e Edge) Backward() bool { return e.To < e.From }

// String formats the edge as its 5-tuple.
func (e Edge) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d, %d)", e.From, e.To, e.FromLabel, e.EdgeLabel, e.ToLabel)
}

// Code is a DFS code: the ordered edge sequence describing one connected
// labeled subgraph.
type Code []Edge

func (c Code) String() string {
	return strings.Join(generics.SliceMap(c, Edge.String), " ")
}

// FirstLess compares two potential first edges of a DFS code.
// Both have From=0, To=1, so only the three labels participate.
func FirstLess(a, b Edge) bool {
	if a.FromLabel != b.FromLabel {
		return a.FromLabel < b.FromLabel
	}
	if a.EdgeLabel != b.EdgeLabel {
		return a.EdgeLabel < b.EdgeLabel
	}
	return a.ToLabel < b.ToLabel
}

// ForwardLess compares two forward extensions of the same pattern.
//
// Both share To (the newly discovered vertex id), and equal From implies equal
// FromLabel, so those fields are redundant. From is compared descending: a
// forward edge leaving a vertex deeper on the right-most path is smaller,
// because a DFS backtracks before jumping closer to the root.
func ForwardLess(a, b Edge) bool {
	if a.From != b.From {
		return b.From < a.From
	}
	if a.EdgeLabel != b.EdgeLabel {
		return a.EdgeLabel < b.EdgeLabel
	}
	return a.ToLabel < b.ToLabel
}

// BackwardLess compares two backward extensions of the same pattern.
// Both stem from the right-most vertex, and equal To implies equal ToLabel, so
// only To and EdgeLabel participate.
func BackwardLess(a, b Edge) bool {
	if a.To != b.To {
		return a.To < b.To
	}
	return a.EdgeLabel < b.EdgeLabel
}

// Less is the full lexicographic order on DFS edges: forward/backward rank
// first (at the same growth point a backward edge is smaller), then the
// specialised comparator for the shared shape. It is only meaningful for
// edges extending the same pattern.
func Less(a, b Edge) bool {
	switch {
	case a.Backward() && b.Forward():
		return true
	case a.Forward() && b.Backward():
		return false
	case a.Backward():
		return BackwardLess(a, b)
	default:
		if a.From == 0 && a.To == 1 && b.From == 0 && b.To == 1 {
			return FirstLess(a, b)
		}
		return ForwardLess(a, b)
	}
}

// RightmostPath returns the indices into code of the forward edges on the
// right-most path, ordered from the right-most vertex back towards the root:
// result[0] is the forward edge that discovered the right-most vertex.
func RightmostPath(code Code) []int {
	rmp := make([]int, 0, 8)
	prev := graph.VertexID(-1)
	for i := len(code) - 1; i >= 0; i-- {
		e := code[i]
		if e.Forward() && (len(rmp) == 0 || prev == e.To) {
			prev = e.From
			rmp = append(rmp, i)
		}
	}
	return rmp
}
