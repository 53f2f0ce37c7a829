package mine

import (
	"github.com/janpfeifer/gspan/internal/dfs"
	"github.com/janpfeifer/gspan/internal/graph"
	"github.com/janpfeifer/gspan/internal/projection"
)

// Extensions maps each candidate one-edge extension of a pattern to the
// projection links of the embeddings where that extension is legal. Entries
// may be infrequent; the driver filters by support.
type Extensions map[dfs.Edge][]projection.Link

// extend enumerates every one-edge child of the pattern described by code,
// across all of its embeddings. rmp is the right-most path of code (edge
// indices, right-most first) and view is caller-owned scratch.
func extend(code dfs.Code, links []projection.Link, rmp []int, view *projection.View) Extensions {
	ext := make(Extensions)
	view.Reset()
	for i := range links {
		link := &links[i]
		g := link.Graph
		view.Build(link, g)

		extendBackward(link, view, g, code, rmp, ext)
		extendForwardRMV(link, view, g, code, rmp, ext)
		extendForwardRMP(link, view, g, code, rmp, ext)
	}
	return ext
}

// extendBackward collects backward extensions: edges out of the right-most
// vertex that close a cycle back to a vertex on the right-most path.
func extendBackward(link *projection.Link, view *projection.View, g *graph.Graph,
	code dfs.Code, rmp []int, ext Extensions) {
	lastEdge := view.Edge(rmp[0])
	lastNode := &g.Vertices[lastEdge.To]

	for ei := range lastNode.Edges {
		e := &lastNode.Edges[ei]
		if view.HasEdge(e.ID) {
			// Only looking for edges we could possibly add, skip existing ones.
			continue
		}

		// Find which RMP vertex this edge connects to. The from fields are
		// checked, so rmp[0] is skipped: that is where the RMV came from.
		rmpIndex := -1
		for _, idx := range rmp[1:] {
			if e.To == view.Edge(idx).From {
				rmpIndex = idx
				break
			}
		}
		if rmpIndex < 0 {
			continue
		}

		rmpEdge := view.Edge(rmpIndex)
		rmpToNode := &g.Vertices[rmpEdge.To]

		// Pre-pruning: if (rmp edge label, rmp to-node label) exceeds the
		// candidate's pair, the candidate could have been added earlier and
		// the resulting code would not be minimal.
		if rmpEdge.Label < e.Label || (rmpEdge.Label == e.Label && rmpToNode.Label <= lastNode.Label) {
			candidate := dfs.Edge{
				From:      code[rmp[0]].To,
				To:        code[rmpIndex].From,
				FromLabel: lastNode.Label,
				EdgeLabel: e.Label,
				ToLabel:   g.Vertices[rmpEdge.From].Label,
			}
			ext[candidate] = append(ext[candidate], projection.Link{Graph: g, Edge: e, Prev: link})
		}
	}
}

// extendForwardRMV collects forward extensions out of the right-most vertex.
func extendForwardRMV(link *projection.Link, view *projection.View, g *graph.Graph,
	code dfs.Code, rmp []int, ext Extensions) {
	lastEdge := view.Edge(rmp[0])
	lastNode := &g.Vertices[lastEdge.To]
	minLabel := code[0].FromLabel
	rmvID := code[rmp[0]].To

	for ei := range lastNode.Edges {
		e := &lastNode.Edges[ei]
		toNode := &g.Vertices[e.To]

		// Vertices already in the embedding cannot be rediscovered, and
		// labels below the pattern's first label cannot minimise.
		if view.HasVertex(e.To) || toNode.Label < minLabel {
			continue
		}

		candidate := dfs.Edge{
			From:      rmvID,
			To:        rmvID + 1,
			FromLabel: lastNode.Label,
			EdgeLabel: e.Label,
			ToLabel:   toNode.Label,
		}
		ext[candidate] = append(ext[candidate], projection.Link{Graph: g, Edge: e, Prev: link})
	}
}

// extendForwardRMP collects forward extensions out of the remaining
// right-most path vertices (each RMP edge contributes its from-vertex).
func extendForwardRMP(link *projection.Link, view *projection.View, g *graph.Graph,
	code dfs.Code, rmp []int, ext Extensions) {
	minLabel := code[0].FromLabel
	newID := code[rmp[0]].To + 1

	for _, idx := range rmp {
		rmpEdge := view.Edge(idx)
		rmpFrom := &g.Vertices[rmpEdge.From]
		rmpTo := &g.Vertices[rmpEdge.To]

		for ei := range rmpFrom.Edges {
			e := &rmpFrom.Edges[ei]
			toNode := &g.Vertices[e.To]

			if view.HasVertex(e.To) || toNode.Label < minLabel {
				continue
			}

			// Pre-pruning: a candidate smaller than the RMP edge leaving the
			// same vertex could have been added earlier for a smaller code.
			if rmpEdge.Label < e.Label || (rmpEdge.Label == e.Label && rmpTo.Label <= toNode.Label) {
				candidate := dfs.Edge{
					From:      code[idx].From,
					To:        newID,
					FromLabel: rmpFrom.Label,
					EdgeLabel: e.Label,
					ToLabel:   toNode.Label,
				}
				ext[candidate] = append(ext[candidate], projection.Link{Graph: g, Edge: e, Prev: link})
			}
		}
	}
}
