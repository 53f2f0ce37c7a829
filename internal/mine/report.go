package mine

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/janpfeifer/gspan/internal/dfs"
	"github.com/janpfeifer/gspan/internal/graph"
)

// PatternWriter is a Reporter writing the text output format, one block per
// pattern:
//
//	t # <pattern_id> * <support>
//	v <vid> <vlabel>
//	e <from> <to> <elabel>
//	x: <graph_id> ...
//
// Pattern ids are assigned monotonically in report order. Safe for concurrent
// use.
type PatternWriter struct {
	mu   sync.Mutex
	w    io.Writer
	next graph.ID
}

// NewPatternWriter returns a PatternWriter emitting to w.
func NewPatternWriter(w io.Writer) *PatternWriter {
	return &PatternWriter{w: w}
}

// Report implements Reporter.
func (pw *PatternWriter) Report(code dfs.Code, support int, graphs []graph.ID) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "v 0 %d\n", code[0].FromLabel)
	for _, e := range code {
		if e.Forward() {
			fmt.Fprintf(&sb, "v %d %d\n", e.To, e.ToLabel)
		}
	}
	for _, e := range code {
		fmt.Fprintf(&sb, "e %d %d %d\n", e.From, e.To, e.EdgeLabel)
	}
	sb.WriteString("x:")
	for _, id := range graphs {
		fmt.Fprintf(&sb, " %d", id)
	}
	sb.WriteByte('\n')

	pw.mu.Lock()
	defer pw.mu.Unlock()
	id := pw.next
	pw.next++
	if _, err := fmt.Fprintf(pw.w, "t # %d * %d\n%s", id, support, sb.String()); err != nil {
		return errors.Wrapf(err, "writing pattern %d", id)
	}
	return nil
}

// Patterns returns how many patterns have been written so far.
func (pw *PatternWriter) Patterns() int {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	return int(pw.next)
}
