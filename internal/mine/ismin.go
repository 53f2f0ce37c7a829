package mine

import (
	"fmt"

	"github.com/janpfeifer/gspan/internal/dfs"
	"github.com/janpfeifer/gspan/internal/graph"
	"github.com/janpfeifer/gspan/internal/projection"
)

// IsMin reports whether code is the minimum DFS code of the subgraph it
// represents. It realises the code as a concrete graph and regrows the
// minimum code edge by edge, carrying every embedding that still matches:
// any growth step that admits a smaller edge proves non-minimality.
//
// Preconditions (violations are bugs in the caller and panic): code is
// non-empty, code[0] is (0,1), and code[0].FromLabel <= code[0].ToLabel.
func IsMin(code dfs.Code) bool {
	if len(code) == 0 {
		panic("IsMin: empty DFS code")
	}
	if code[0].From != 0 || code[0].To != 1 {
		panic(fmt.Sprintf("IsMin: first DFS edge must be (0,1), got %s", code[0]))
	}
	if code[0].FromLabel > code[0].ToLabel {
		panic(fmt.Sprintf("IsMin: first DFS edge must have FromLabel <= ToLabel, got %s", code[0]))
	}

	if len(code) == 1 {
		return true
	}

	minGraph := buildMinGraph(code)
	instances, ok := firstInstances(code[0], minGraph)
	if !ok {
		return false
	}

	rmp := []int{0}
	view := projection.NewView(minGraph.NEdges, len(minGraph.Vertices))
	start := 0

	// The first code is validated; grow one edge at a time.
	for n := 2; n <= len(code); n++ {
		sub := code[:n]
		end := len(instances)
		if sub[n-1].Backward() {
			instances, ok = backwardStep(instances, start, end, view, minGraph, rmp, sub)
			if !ok {
				return false
			}
		} else {
			// A pending backward extension would sort before any forward one,
			// so its existence alone disproves minimality.
			if anyBackward(instances, start, end, view, minGraph, rmp) {
				return false
			}
			instances, ok = forwardStep(instances, start, end, view, minGraph, rmp, sub)
			if !ok {
				return false
			}
			rmp = dfs.RightmostPath(sub)
		}
		start = end
	}
	return true
}

// buildMinGraph realises a DFS code as a concrete graph: vertices 0..max
// labeled per the code's forward edges, one undirected edge per code entry.
func buildMinGraph(code dfs.Code) *graph.Graph {
	// The last edge either goes to or comes from the highest vertex.
	last := code[len(code)-1]
	n := int(max(last.To, last.From)) + 1
	g := &graph.Graph{ID: -1, Vertices: make([]graph.Vertex, n)}
	for i := range g.Vertices {
		g.Vertices[i].ID = graph.VertexID(i)
	}
	g.Vertices[0].Label = code[0].FromLabel
	for _, e := range code {
		if e.Forward() {
			g.Vertices[e.To].Label = e.ToLabel
		}
		g.AddEdge(e.From, e.EdgeLabel, e.To)
	}
	return g
}

// firstInstances records every half-edge of the min graph matching the
// first code edge. Reports false if any half-edge forms a smaller first edge.
func firstInstances(first dfs.Edge, g *graph.Graph) ([]projection.MinLink, bool) {
	var instances []projection.MinLink
	for vi := range g.Vertices {
		v := &g.Vertices[vi]
		for ei := range v.Edges {
			e := &v.Edges[ei]
			dst := &g.Vertices[e.To]
			// The opposite half of this edge compares lower or equal, so only
			// the label-ordered half needs considering.
			if v.Label > dst.Label {
				continue
			}
			candidate := dfs.Edge{From: 0, To: 1, FromLabel: v.Label, EdgeLabel: e.Label, ToLabel: dst.Label}
			if dfs.FirstLess(candidate, first) {
				return nil, false
			}
			if candidate == first {
				instances = append(instances, projection.MinLink{Edge: e, PrevIndex: projection.NoLink})
			}
		}
	}
	return instances, true
}

// backwardRMPIndex returns the index of the RMP edge whose pattern vertex the
// candidate backward edge e connects to, or -1. rmp[0] is skipped: that is
// where the right-most vertex came from.
func backwardRMPIndex(view *projection.View, rmp []int, e *graph.Edge) int {
	for _, idx := range rmp[1:] {
		if e.To == view.Edge(idx).From {
			return idx
		}
	}
	return -1
}

// anyBackward reports whether any embedding in [start, end) admits a backward
// extension from the right-most vertex.
func anyBackward(instances []projection.MinLink, start, end int,
	view *projection.View, g *graph.Graph, rmp []int) bool {
	for i := start; i < end; i++ {
		view.BuildMinEdges(g, instances, i)
		lastEdge := view.Edge(rmp[0])
		lastNode := &g.Vertices[lastEdge.To]
		for ei := range lastNode.Edges {
			e := &lastNode.Edges[ei]
			if view.HasEdge(e.ID) {
				continue
			}
			if backwardRMPIndex(view, rmp, e) >= 0 {
				return true
			}
		}
	}
	return false
}

// backwardStep verifies sub's last (backward) edge against every backward
// candidate of every embedding in [start, end), appending the embeddings
// that realise it. Reports false if a smaller candidate exists.
func backwardStep(instances []projection.MinLink, start, end int,
	view *projection.View, g *graph.Graph, rmp []int, sub dfs.Code) ([]projection.MinLink, bool) {
	verify := sub[len(sub)-1]
	for i := start; i < end; i++ {
		view.BuildMinEdges(g, instances, i)
		lastEdge := view.Edge(rmp[0])
		lastNode := &g.Vertices[lastEdge.To]

		for ei := range lastNode.Edges {
			e := &lastNode.Edges[ei]
			if view.HasEdge(e.ID) {
				continue
			}
			rmpIndex := backwardRMPIndex(view, rmp, e)
			if rmpIndex < 0 {
				continue
			}
			rmpEdge := view.Edge(rmpIndex)
			candidate := dfs.Edge{
				From:      sub[rmp[0]].To,
				To:        sub[rmpIndex].From,
				FromLabel: lastNode.Label,
				EdgeLabel: e.Label,
				ToLabel:   g.Vertices[rmpEdge.From].Label,
			}
			if dfs.BackwardLess(candidate, verify) {
				return instances, false
			}
			if candidate == verify {
				instances = append(instances, projection.MinLink{Edge: e, PrevIndex: i})
			}
		}
	}
	return instances, true
}

// forwardStep verifies sub's last (forward) edge against the forward
// candidates of every embedding in [start, end), walking the right-most path
// from the right-most vertex towards the root and stopping at the verified
// edge's origin. Reports false if a smaller candidate exists.
func forwardStep(instances []projection.MinLink, start, end int,
	view *projection.View, g *graph.Graph, rmp []int, sub dfs.Code) ([]projection.MinLink, bool) {
	verify := sub[len(sub)-1]
	rmvID := sub[rmp[0]].To
	newID := rmvID + 1

	for i := start; i < end; i++ {
		view.BuildMinVertices(g, instances, i)

		// Candidates out of one RMP vertex; appends embeddings matching
		// verify, reports false on any smaller candidate.
		check := func(node *graph.Vertex, nodeID graph.VertexID) bool {
			for ei := range node.Edges {
				e := &node.Edges[ei]
				if view.HasVertex(e.To) {
					continue
				}
				candidate := dfs.Edge{
					From:      nodeID,
					To:        newID,
					FromLabel: node.Label,
					EdgeLabel: e.Label,
					ToLabel:   g.Vertices[e.To].Label,
				}
				if dfs.ForwardLess(candidate, verify) {
					return false
				}
				if candidate == verify {
					instances = append(instances, projection.MinLink{Edge: e, PrevIndex: i})
				}
			}
			return true
		}

		// The right-most vertex first.
		lastEdge := view.Edge(rmp[0])
		if !check(&g.Vertices[lastEdge.To], rmvID) {
			return instances, false
		}
		if verify.From == rmvID {
			continue
		}
		// Then up the right-most path; vertices past the verified edge's
		// origin would only produce larger codes.
		for _, idx := range rmp {
			rmpEdge := view.Edge(idx)
			if !check(&g.Vertices[rmpEdge.From], sub[idx].From) {
				return instances, false
			}
			if verify.From == sub[idx].From {
				break
			}
		}
	}
	return instances, true
}
