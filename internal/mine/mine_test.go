package mine

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janpfeifer/gspan/internal/dfs"
	"github.com/janpfeifer/gspan/internal/graph"
	"github.com/janpfeifer/gspan/internal/preprocess"
	"github.com/janpfeifer/gspan/internal/projection"
)

// memSink collects reported patterns in memory.
type memSink struct {
	mu       sync.Mutex
	patterns []reported
}

type reported struct {
	code    dfs.Code
	support int
	graphs  []graph.ID
}

func (m *memSink) Report(code dfs.Code, support int, graphs []graph.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patterns = append(m.patterns, reported{code: code, support: support, graphs: graphs})
	return nil
}

func mineText(t *testing.T, input string, minFreq, parallelism int) []reported {
	t.Helper()
	parsed, err := graph.ReadGraphs(strings.NewReader(input))
	require.NoError(t, err)
	graphs := preprocess.Preprocess(parsed, minFreq)
	sink := &memSink{}
	_, err = Mine(graphs, minFreq, sink, parallelism)
	require.NoError(t, err)
	return sink.patterns
}

func codeStrings(patterns []reported) []string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = p.code.String()
	}
	return out
}

const trivialDB = `t # 0
v 0 0
v 1 0
e 0 1 5
`

func TestMineSingleEdge(t *testing.T) {
	patterns := mineText(t, trivialDB, 1, 1)
	require.Len(t, patterns, 1)
	p := patterns[0]
	assert.Equal(t, dfs.Code{{From: 0, To: 1, FromLabel: 0, EdgeLabel: 5, ToLabel: 0}}, p.code)
	assert.Equal(t, 1, p.support)
	assert.Equal(t, []graph.ID{0}, p.graphs)
}

const triangleDB = `t # 0
v 0 1
v 1 1
v 2 1
e 0 1 7
e 1 2 7
e 0 2 7
`

func TestMineTriangle(t *testing.T) {
	patterns := mineText(t, triangleDB, 1, 1)

	// Every connected subgraph up to the triangle itself: the edge, the
	// 2-edge path, and the triangle, each under its minimum code.
	want := []string{
		"(0, 1, 1, 7, 1)",
		"(0, 1, 1, 7, 1) (1, 2, 1, 7, 1)",
		"(0, 1, 1, 7, 1) (1, 2, 1, 7, 1) (2, 0, 1, 7, 1)",
	}
	assert.ElementsMatch(t, want, codeStrings(patterns))
	for _, p := range patterns {
		assert.Equal(t, 1, p.support)
		assert.Equal(t, []graph.ID{0}, p.graphs)
	}
}

func TestMineFrequencyPruning(t *testing.T) {
	// Each 1-edge pattern occurs in one graph only: support 1 < 2, nothing
	// survives preprocessing, nothing is reported.
	input := `t # 0
v 0 0
v 1 0
e 0 1 7
t # 1
v 0 0
v 1 0
e 0 1 8
`
	patterns := mineText(t, input, 2, 1)
	assert.Empty(t, patterns)
}

func TestMineCanonicityFilter(t *testing.T) {
	// Path 1 --5-- 2 --5-- 3: only minimum codes may be reported, so no
	// reported code starts at the label-3 end and all pass IsMin.
	input := `t # 0
v 0 1
v 1 2
v 2 3
e 0 1 5
e 1 2 5
`
	patterns := mineText(t, input, 1, 1)
	want := []string{
		"(0, 1, 1, 5, 2)",
		"(0, 1, 2, 5, 3)",
		"(0, 1, 1, 5, 2) (1, 2, 2, 5, 3)",
	}
	assert.ElementsMatch(t, want, codeStrings(patterns))
	for _, p := range patterns {
		assert.True(t, IsMin(p.code), "reported pattern %s is not canonical", p.code)
	}
}

func TestMineYGraph(t *testing.T) {
	// Two graphs containing a "Y" (center label 1, three label-2 leaves) and
	// one that does not: the Y is reported exactly once with support 2.
	yGraph := `v 0 1
v 1 2
v 2 2
v 3 2
e 0 1 5
e 0 2 5
e 0 3 5
`
	input := "t # 0\n" + yGraph + "t # 1\n" + yGraph + `t # 2
v 0 1
v 1 2
e 0 1 5
`
	patterns := mineText(t, input, 1, 1)

	yCode := "(0, 1, 1, 5, 2) (0, 2, 1, 5, 2) (0, 3, 1, 5, 2)"
	var found []reported
	for _, p := range patterns {
		if p.code.String() == yCode {
			found = append(found, p)
		}
	}
	require.Len(t, found, 1, "the Y pattern must be reported exactly once")
	assert.Equal(t, 2, found[0].support)
	assert.Equal(t, []graph.ID{0, 1}, found[0].graphs)
}

func TestMineSupportSetIdempotence(t *testing.T) {
	// Two disjoint identical edges in graph 0 count once, plus graph 1's
	// edge: support 2.
	input := `t # 0
v 0 0
v 1 0
v 2 0
v 3 0
e 0 1 5
e 2 3 5
t # 1
v 0 0
v 1 0
e 0 1 5
`
	patterns := mineText(t, input, 1, 1)
	require.Len(t, patterns, 1)
	assert.Equal(t, 2, patterns[0].support)
	assert.Equal(t, []graph.ID{0, 1}, patterns[0].graphs)
}

func TestMineParallelMatchesSerial(t *testing.T) {
	input := triangleDB + `t # 1
v 0 1
v 1 1
v 2 1
e 0 1 7
e 1 2 7
`
	serial := mineText(t, input, 1, 1)
	parallel := mineText(t, input, 1, 4)
	assert.ElementsMatch(t, codeStrings(serial), codeStrings(parallel))
}

func TestSupportCount(t *testing.T) {
	g0 := &graph.Graph{ID: 0}
	g1 := &graph.Graph{ID: 1}
	g5 := &graph.Graph{ID: 5}
	links := []projection.Link{{Graph: g0}, {Graph: g0}, {Graph: g1}, {Graph: g5}, {Graph: g5}}
	assert.Equal(t, 3, supportCount(links))
	assert.Equal(t, []graph.ID{0, 1, 5}, supportSet(links))
	assert.Equal(t, 0, supportCount(nil))
	assert.Empty(t, supportSet(nil))
}

func TestExtendSingleEdgePath(t *testing.T) {
	// Path 1 --5-- 2 --6-- 3; extend the single-edge pattern (1,5,2) by one
	// edge: the only candidate is the forward edge to label 3.
	input := `t # 0
v 0 1
v 1 2
v 2 3
e 0 1 5
e 1 2 6
`
	parsed, err := graph.ReadGraphs(strings.NewReader(input))
	require.NoError(t, err)
	graphs := preprocess.Preprocess(parsed, 1)
	require.Len(t, graphs, 1)

	code := dfs.Code{{From: 0, To: 1, FromLabel: 1, EdgeLabel: 5, ToLabel: 2}}
	groups := seedGroups(graphs[0:1])
	links, ok := groups[code[0]]
	require.True(t, ok)
	require.Len(t, links, 1)

	view := projection.NewView(4, 4)
	ext := extend(code, links, dfs.RightmostPath(code), view)
	require.Len(t, ext, 1)
	wantChild := dfs.Edge{From: 1, To: 2, FromLabel: 2, EdgeLabel: 6, ToLabel: 3}
	childLinks, ok := ext[wantChild]
	require.True(t, ok, "extensions: %v", ext)
	require.Len(t, childLinks, 1)
	assert.Equal(t, &links[0], childLinks[0].Prev)
}
