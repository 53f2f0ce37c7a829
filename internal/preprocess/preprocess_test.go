package preprocess

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janpfeifer/gspan/internal/graph"
)

func parse(t *testing.T, input string) []graph.Parsed {
	t.Helper()
	graphs, err := graph.ReadGraphs(strings.NewReader(input))
	require.NoError(t, err)
	return graphs
}

func TestPreprocessKeepsFrequentEdges(t *testing.T) {
	input := `t # 0
v 0 0
v 1 0
e 0 1 7
t # 1
v 0 0
v 1 0
e 0 1 7
`
	graphs := Preprocess(parse(t, input), 2)
	require.Len(t, graphs, 2)
	g := graphs[0]
	assert.Equal(t, graph.ID(0), g.ID)
	require.Len(t, g.Vertices, 2)
	require.Equal(t, 1, g.NEdges)
	assert.Equal(t, graph.Edge{From: 0, To: 1, Label: 7, ID: 0}, g.Vertices[0].Edges[0])
	assert.Equal(t, graph.Edge{From: 1, To: 0, Label: 7, ID: 0}, g.Vertices[1].Edges[0])
}

func TestPreprocessDropsInfrequentTriples(t *testing.T) {
	// Same vertex labels, different edge labels: both edges die at min_freq 2,
	// and with them both graphs.
	input := `t # 0
v 0 0
v 1 0
e 0 1 7
t # 1
v 0 0
v 1 0
e 0 1 8
`
	graphs := Preprocess(parse(t, input), 2)
	assert.Empty(t, graphs)
}

func TestPreprocessDropsInfrequentVertexLabels(t *testing.T) {
	// The label-9 vertex occurs in one graph only; the edge touching it
	// cannot be part of any frequent pattern even though its triple's edge
	// label matches the surviving edge.
	input := `t # 0
v 0 0
v 1 0
v 2 9
e 0 1 7
e 1 2 7
t # 1
v 0 0
v 1 0
e 0 1 7
`
	graphs := Preprocess(parse(t, input), 2)
	require.Len(t, graphs, 2)
	g := graphs[0]
	// Vertex 2 lost its only edge and is renumbered away.
	require.Len(t, g.Vertices, 2)
	require.Equal(t, 1, g.NEdges)
	for i, v := range g.Vertices {
		assert.Equal(t, graph.VertexID(i), v.ID)
		assert.Equal(t, graph.VertexLabel(0), v.Label)
	}
}

func TestPreprocessRenumbersDensely(t *testing.T) {
	// Graph 0's label-3 vertex sits between two surviving vertices, so the
	// survivors' ids must shift down.
	input := `t # 0
v 0 1
v 1 3
v 2 1
e 0 2 5
e 0 1 9
t # 1
v 0 1
v 1 1
e 0 1 5
`
	graphs := Preprocess(parse(t, input), 2)
	require.Len(t, graphs, 2)
	g := graphs[0]
	require.Len(t, g.Vertices, 2)
	assert.Equal(t, graph.VertexID(0), g.Vertices[0].ID)
	assert.Equal(t, graph.VertexID(1), g.Vertices[1].ID)
	require.Equal(t, 1, g.NEdges)
	assert.Equal(t, graph.Edge{From: 0, To: 1, Label: 5, ID: 0}, g.Vertices[0].Edges[0])
}

func TestPreprocessDropsEmptyGraphs(t *testing.T) {
	input := `t # 0
v 0 0
v 1 0
e 0 1 7
t # 1
v 0 5
v 1 5
e 0 1 9
t # 2
v 0 0
v 1 0
e 0 1 7
`
	graphs := Preprocess(parse(t, input), 2)
	require.Len(t, graphs, 2)
	assert.Equal(t, graph.ID(0), graphs[0].ID)
	assert.Equal(t, graph.ID(2), graphs[1].ID)
}
