package projection

import "github.com/janpfeifer/gspan/internal/graph"

// View materialises one embedding so that membership queries are O(1):
// which host edges the embedding uses, which host vertices it touches, and
// which concrete half-edge realises each DFS-code position.
//
// A View is scratch memory: it is reused across many embeddings, and Build
// rebuilds incrementally when consecutive calls stay within the same host
// graph.
type View struct {
	hasEdge   []bool
	vertexRef []int32

	// contained[i] is the half-edge for the (n-1-i)-th DFS-code position:
	// chains are walked leaf to root, so positions arrive in reverse.
	contained  []*graph.Edge
	nContained int

	// Last host graph and leaf link built, for the incremental path.
	builtGraph *graph.Graph
	builtLink  *Link
}

// NewView returns a View sized for graphs of up to maxEdges edges and
// maxVertices vertices. It grows on demand if a later Build needs more.
func NewView(maxEdges, maxVertices int) *View {
	return &View{
		hasEdge:   make([]bool, maxEdges),
		vertexRef: make([]int32, maxVertices),
		contained: make([]*graph.Edge, maxEdges),
	}
}

func (v *View) ensure(nEdges, nVertices int) {
	if nEdges > len(v.hasEdge) {
		v.hasEdge = make([]bool, nEdges)
		v.builtGraph = nil
	}
	if nEdges > len(v.contained) {
		v.contained = append(v.contained, make([]*graph.Edge, nEdges-len(v.contained))...)
	}
	if nVertices > len(v.vertexRef) {
		v.vertexRef = make([]int32, nVertices)
		v.builtGraph = nil
	}
}

// Reset forgets the previously built embedding, forcing the next Build to
// start from scratch. Callers must Reset between patterns: the incremental
// path assumes consecutive builds share the same chain length.
func (v *View) Reset() {
	v.builtGraph = nil
	v.builtLink = nil
}

// HasEdge returns whether the embedding uses the host edge with the given id.
func (v *View) HasEdge(id graph.EdgeID) bool { return v.hasEdge[id] }

// HasVertex returns whether the embedding touches the host vertex.
func (v *View) HasVertex(id graph.VertexID) bool { return v.vertexRef[id] != 0 }

// Edge returns the concrete half-edge realising the i-th DFS edge of the
// pattern, i in [0, k) for a k-edge embedding.
func (v *View) Edge(i int) *graph.Edge { return v.contained[v.nContained-1-i] }

// Build materialises the embedding whose leaf is start, inside host graph g.
//
// When the previous Build was for the same graph (and therefore, during one
// extension pass, the same chain length), only the suffix where the two
// chains diverge is toggled, reducing the cost from O(k) to O(divergence).
func (v *View) Build(start *Link, g *graph.Graph) {
	v.ensure(g.NEdges, len(g.Vertices))
	if v.builtGraph != g {
		// New graph, start from scratch.
		clear(v.hasEdge[:g.NEdges])
		clear(v.vertexRef[:len(g.Vertices)])
		v.nContained = 0
		for link := start; link != nil; link = link.Prev {
			v.contained[v.nContained] = link.Edge
			v.nContained++
			v.hasEdge[link.Edge.ID] = true
			v.vertexRef[link.Edge.From]++
			v.vertexRef[link.Edge.To]++
		}
		v.builtGraph = g
	} else {
		// Same graph and same chain length as the previous build: walk both
		// chains in lockstep, undoing the old suffix and applying the new one,
		// until they converge on the shared prefix.
		newLink, oldLink := start, v.builtLink
		modify := 0
		for newLink != oldLink {
			v.contained[modify] = newLink.Edge
			modify++

			v.hasEdge[oldLink.Edge.ID] = !v.hasEdge[oldLink.Edge.ID]
			v.vertexRef[oldLink.Edge.From]--
			v.vertexRef[oldLink.Edge.To]--

			v.hasEdge[newLink.Edge.ID] = !v.hasEdge[newLink.Edge.ID]
			v.vertexRef[newLink.Edge.From]++
			v.vertexRef[newLink.Edge.To]++

			newLink = newLink.Prev
			oldLink = oldLink.Prev
		}
	}
	v.builtLink = start
}

// BuildMinEdges materialises the min-projection chain starting at links[start]
// with edge membership only; HasVertex results are undefined afterwards.
func (v *View) BuildMinEdges(g *graph.Graph, links []MinLink, start int) {
	v.buildMin(g, links, start, true, false)
}

// BuildMinVertices materialises the min-projection chain starting at
// links[start] with vertex membership only; HasEdge results are undefined
// afterwards.
func (v *View) BuildMinVertices(g *graph.Graph, links []MinLink, start int) {
	v.buildMin(g, links, start, false, true)
}

func (v *View) buildMin(g *graph.Graph, links []MinLink, start int, withEdges, withVertices bool) {
	v.ensure(g.NEdges, len(g.Vertices))
	// Min views never alternate with in-database views on the same scratch,
	// but invalidate the incremental state anyway.
	v.builtGraph = nil
	v.builtLink = nil
	v.nContained = 0
	if withEdges {
		clear(v.hasEdge[:g.NEdges])
	}
	if withVertices {
		clear(v.vertexRef[:len(g.Vertices)])
	}
	for i := start; i != NoLink; i = links[i].PrevIndex {
		e := links[i].Edge
		v.contained[v.nContained] = e
		v.nContained++
		if withEdges {
			v.hasEdge[e.ID] = true
		}
		if withVertices {
			v.vertexRef[e.From] = 1
			v.vertexRef[e.To] = 1
		}
	}
}
