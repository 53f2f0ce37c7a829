// Package preprocess turns parsed input graphs into the compact adjacency
// form the miner runs on, pruning everything that cannot participate in any
// frequent pattern: since a pattern's edges are themselves 1-edge patterns,
// an edge whose label triple is infrequent can be dropped up front without
// changing the result set.
package preprocess

import (
	"time"

	"k8s.io/klog/v2"

	"github.com/janpfeifer/gspan/internal/generics"
	"github.com/janpfeifer/gspan/internal/graph"
)

// edgeTriple is the normalized label triple of an undirected edge: vertex
// labels ordered so that 3 --4-- 5 and 5 --4-- 3 count as the same edge kind.
type edgeTriple struct {
	a    graph.VertexLabel
	edge graph.EdgeLabel
	b    graph.VertexLabel
}

func tripleOf(la graph.VertexLabel, e graph.EdgeLabel, lb graph.VertexLabel) edgeTriple {
	return edgeTriple{a: min(la, lb), edge: e, b: max(la, lb)}
}

// frequentVertexLabels counts, per vertex label, the number of distinct
// graphs it occurs in, and keeps the labels reaching minFreq.
func frequentVertexLabels(graphs []graph.Parsed, minFreq int) generics.Set[graph.VertexLabel] {
	counts := make(map[graph.VertexLabel]int)
	for _, g := range graphs {
		// A per-graph set so each label counts at most once per graph.
		seen := generics.MakeSet[graph.VertexLabel]()
		for _, v := range g.Vertices {
			if !seen.Has(v.Label) {
				seen.Insert(v.Label)
				counts[v.Label]++
			}
		}
	}
	frequent := generics.MakeSet[graph.VertexLabel](len(counts))
	for label, n := range counts {
		if n >= minFreq {
			frequent.Insert(label)
		}
	}
	if klog.V(2).Enabled() {
		for label := range generics.SortedKeys(counts) {
			klog.Infof("vertex label %d: %d graphs (frequent=%v)", label, counts[label], frequent.Has(label))
		}
	}
	return frequent
}

// frequentEdgeTriples counts, per normalized label triple, the number of
// distinct graphs containing such an edge between non-pruned vertex labels,
// and keeps the triples reaching minFreq.
func frequentEdgeTriples(graphs []graph.Parsed, vertexLabels generics.Set[graph.VertexLabel], minFreq int) generics.Set[edgeTriple] {
	counts := make(map[edgeTriple]int)
	for _, g := range graphs {
		seen := generics.MakeSet[edgeTriple]()
		for _, e := range g.Edges {
			la := g.Vertices[e.From].Label
			lb := g.Vertices[e.To].Label
			if !vertexLabels.Has(la) || !vertexLabels.Has(lb) {
				continue
			}
			triple := tripleOf(la, e.Label, lb)
			if !seen.Has(triple) {
				seen.Insert(triple)
				counts[triple]++
			}
		}
	}
	frequent := generics.MakeSet[edgeTriple](len(counts))
	for triple, n := range counts {
		if n >= minFreq {
			frequent.Insert(triple)
		}
	}
	return frequent
}

// compact builds the compact adjacency graph from the surviving edges of one
// input graph: zero-degree vertices are discarded, the rest renumbered
// densely, and all half-edges written into a single arena that the vertices'
// Edges slices point into.
func compact(in graph.Parsed, edges []graph.ParsedEdge) *graph.Graph {
	degree := make([]int32, len(in.Vertices))
	for _, e := range edges {
		degree[e.From]++
		degree[e.To]++
	}

	// Renumber surviving vertices densely.
	idMap := make([]graph.VertexID, len(in.Vertices))
	nVertices := 0
	for i, d := range degree {
		if d == 0 {
			idMap[i] = -1
			continue
		}
		idMap[i] = graph.VertexID(nVertices)
		nVertices++
	}

	g := &graph.Graph{
		ID:       in.ID,
		NEdges:   len(edges),
		Vertices: make([]graph.Vertex, 0, nVertices),
	}
	arena := make([]graph.Edge, 2*len(edges))
	offset := 0
	for i, v := range in.Vertices {
		if idMap[i] < 0 {
			continue
		}
		g.Vertices = append(g.Vertices, graph.Vertex{
			Label: v.Label,
			ID:    idMap[i],
			Edges: arena[offset : offset : offset+int(degree[i])],
		})
		offset += int(degree[i])
	}
	for id, e := range edges {
		from, to := idMap[e.From], idMap[e.To]
		vf, vt := &g.Vertices[from], &g.Vertices[to]
		vf.Edges = append(vf.Edges, graph.Edge{From: from, To: to, Label: e.Label, ID: graph.EdgeID(id)})
		vt.Edges = append(vt.Edges, graph.Edge{From: to, To: from, Label: e.Label, ID: graph.EdgeID(id)})
	}
	return g
}

// Preprocess prunes infrequent vertex labels and edge triples from the
// database and compacts each graph that still has edges. Graphs left with no
// edges are dropped entirely.
func Preprocess(graphs []graph.Parsed, minFreq int) []*graph.Graph {
	start := time.Now()
	vertexLabels := frequentVertexLabels(graphs, minFreq)
	triples := frequentEdgeTriples(graphs, vertexLabels, minFreq)

	result := make([]*graph.Graph, 0, len(graphs))
	var surviving []graph.ParsedEdge
	for _, g := range graphs {
		surviving = surviving[:0]
		for _, e := range g.Edges {
			la := g.Vertices[e.From].Label
			lb := g.Vertices[e.To].Label
			if !vertexLabels.Has(la) || !vertexLabels.Has(lb) {
				continue
			}
			if triples.Has(tripleOf(la, e.Label, lb)) {
				surviving = append(surviving, e)
			}
		}
		if len(surviving) == 0 {
			continue
		}
		result = append(result, compact(g, surviving))
	}
	klog.V(1).Infof("Preprocessed %d graphs -> %d (freq vertex labels=%d, freq edge triples=%d) in %s",
		len(graphs), len(result), len(vertexLabels), len(triples), time.Since(start))
	return result
}
