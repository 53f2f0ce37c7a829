package mine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janpfeifer/gspan/internal/dfs"
	"github.com/janpfeifer/gspan/internal/generics"
	"github.com/janpfeifer/gspan/internal/graph"
	"github.com/janpfeifer/gspan/internal/preprocess"
)

func TestPatternWriterFormat(t *testing.T) {
	var sb strings.Builder
	pw := NewPatternWriter(&sb)

	triangle := dfs.Code{
		{From: 0, To: 1, FromLabel: 1, EdgeLabel: 7, ToLabel: 1},
		{From: 1, To: 2, FromLabel: 1, EdgeLabel: 7, ToLabel: 1},
		{From: 2, To: 0, FromLabel: 1, EdgeLabel: 7, ToLabel: 1},
	}
	require.NoError(t, pw.Report(triangle, 2, []graph.ID{0, 3}))

	want := `t # 0 * 2
v 0 1
v 1 1
v 2 1
e 0 1 7
e 1 2 7
e 2 0 7
x: 0 3
`
	assert.Equal(t, want, sb.String())
	assert.Equal(t, 1, pw.Patterns())

	// Ids increase monotonically.
	single := dfs.Code{{From: 0, To: 1, FromLabel: 0, EdgeLabel: 5, ToLabel: 0}}
	require.NoError(t, pw.Report(single, 1, []graph.ID{2}))
	assert.Contains(t, sb.String(), "t # 1 * 1\nv 0 0\nv 1 0\ne 0 1 5\nx: 2\n")
}

// TestValidatorRoundTrip mines the same database twice with different
// enumeration orders and checks the outputs describe the same pattern set.
func TestValidatorRoundTrip(t *testing.T) {
	input := `t # 0
v 0 1
v 1 1
v 2 1
e 0 1 7
e 1 2 7
e 0 2 7
t # 1
v 0 1
v 1 1
e 0 1 7
`
	keys := func(parallelism int) generics.Set[string] {
		parsed, err := graph.ReadGraphs(strings.NewReader(input))
		require.NoError(t, err)
		graphs := preprocess.Preprocess(parsed, 1)

		var sb strings.Builder
		_, err = Mine(graphs, 1, NewPatternWriter(&sb), parallelism)
		require.NoError(t, err)

		patterns, err := graph.ReadPatterns(strings.NewReader(sb.String()))
		require.NoError(t, err)
		set := generics.MakeSet[string](len(patterns))
		for i := range patterns {
			set.Insert(patterns[i].Key())
		}
		return set
	}

	serial := keys(1)
	parallel := keys(4)
	assert.True(t, serial.Equal(parallel), "pattern sets differ:\nserial=%v\nparallel=%v", serial, parallel)
	assert.NotEmpty(t, serial)
}
