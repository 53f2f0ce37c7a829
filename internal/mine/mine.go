// Package mine implements the gSpan search itself: right-most-path extension
// of patterns, the minimum-DFS-code canonicity test, and the recursive driver
// that walks the pattern lattice with support-based pruning.
package mine

import (
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/janpfeifer/gspan/internal/dfs"
	"github.com/janpfeifer/gspan/internal/graph"
	"github.com/janpfeifer/gspan/internal/projection"
)

// Reporter receives every frequent pattern as it is discovered: its minimum
// DFS code, its support, and the ids of the input graphs containing it.
// When mining runs in parallel the Reporter must be safe for concurrent use.
type Reporter interface {
	Report(code dfs.Code, support int, graphs []graph.ID) error
}

// Stats collects running counts of the search, for monitoring and debugging.
type Stats struct {
	// Patterns reported as frequent.
	Patterns int

	// Candidates generated by extension (frequent or not).
	Candidates int

	// NonMinimal counts patterns discarded by the canonicity test.
	NonMinimal int
}

func (s *Stats) merge(o Stats) {
	s.Patterns += o.Patterns
	s.Candidates += o.Candidates
	s.NonMinimal += o.NonMinimal
}

// supportCount is the number of distinct graph ids among links. Links for one
// extension are appended graph by graph, so equal ids are contiguous and one
// pass counting transitions suffices. Multiple embeddings within the same
// graph count once.
func supportCount(links []projection.Link) int {
	if len(links) == 0 {
		return 0
	}
	count := 1
	prev := links[0].Graph.ID
	for i := 1; i < len(links); i++ {
		if id := links[i].Graph.ID; id != prev {
			prev = id
			count++
		}
	}
	return count
}

// supportSet returns the distinct graph ids among links, in observed order.
func supportSet(links []projection.Link) []graph.ID {
	ids := make([]graph.ID, 0, 8)
	for i := range links {
		if id := links[i].Graph.ID; len(ids) == 0 || ids[len(ids)-1] != id {
			ids = append(ids, id)
		}
	}
	return ids
}

// worker holds the per-subtree state of the recursive search: the mutable
// pattern stack and the scratch projection view. Workers are never shared
// across goroutines.
type worker struct {
	minFreq  int
	reporter Reporter
	codes    dfs.Code
	view     *projection.View
	stats    Stats
}

func newWorker(minFreq int, reporter Reporter) *worker {
	return &worker{
		minFreq:  minFreq,
		reporter: reporter,
		codes:    make(dfs.Code, 0, 32),
		view:     projection.NewView(64, 64),
	}
}

// mine recurses over the pattern lattice below the worker's current code.
func (w *worker) mine(links []projection.Link, support int) error {
	if !IsMin(w.codes) {
		// This subgraph is discovered under its canonical code elsewhere.
		w.stats.NonMinimal++
		return nil
	}
	if err := w.reporter.Report(slices.Clone(w.codes), support, supportSet(links)); err != nil {
		return err
	}
	w.stats.Patterns++

	rmp := dfs.RightmostPath(w.codes)
	for candidate, candidateLinks := range extend(w.codes, links, rmp, w.view) {
		w.stats.Candidates++
		s := supportCount(candidateLinks)
		if s < w.minFreq {
			continue
		}
		w.codes = append(w.codes, candidate)
		err := w.mine(candidateLinks, s)
		w.codes = w.codes[:len(w.codes)-1]
		if err != nil {
			return err
		}
	}
	return nil
}

// seedGroups scans every half-edge of the database and groups them by their
// one-edge DFS code. Only label-ordered codes are kept: the mirrored half of
// every edge lives in the label-ordered group, and a first edge with
// FromLabel > ToLabel is never minimal.
func seedGroups(graphs []*graph.Graph) Extensions {
	groups := make(Extensions)
	for _, g := range graphs {
		for vi := range g.Vertices {
			v := &g.Vertices[vi]
			for ei := range v.Edges {
				e := &v.Edges[ei]
				toLabel := g.Vertices[e.To].Label
				if v.Label > toLabel {
					continue
				}
				code := dfs.Edge{From: 0, To: 1, FromLabel: v.Label, EdgeLabel: e.Label, ToLabel: toLabel}
				groups[code] = append(groups[code], projection.Link{Graph: g, Edge: e})
			}
		}
	}
	return groups
}

// Mine discovers every connected pattern with support >= minFreq in the
// database and reports each exactly once, under its minimum DFS code.
//
// parallelism is the number of root subtrees mined simultaneously: <= 1 mines
// serially with seeds in lexicographic order; larger values fan the seeds out
// over that many goroutines (the reporter then interleaves subtrees).
func Mine(graphs []*graph.Graph, minFreq int, reporter Reporter, parallelism int) (Stats, error) {
	start := time.Now()
	groups := seedGroups(graphs)

	// Preprocessing already pruned infrequent 1-edge patterns, but their
	// support is still needed for reporting.
	keys := make([]dfs.Edge, 0, len(groups))
	for code := range groups {
		keys = append(keys, code)
	}
	slices.SortFunc(keys, func(a, b dfs.Edge) int {
		if dfs.FirstLess(a, b) {
			return -1
		} else if dfs.FirstLess(b, a) {
			return 1
		}
		return 0
	})

	var stats Stats
	var err error
	if parallelism <= 1 {
		w := newWorker(minFreq, reporter)
		for _, code := range keys {
			links := groups[code]
			w.codes = append(w.codes[:0], code)
			if err = w.mine(links, supportCount(links)); err != nil {
				break
			}
		}
		stats = w.stats
	} else {
		var mu sync.Mutex
		var wg errgroup.Group
		wg.SetLimit(parallelism)
		for _, code := range keys {
			links := groups[code]
			wg.Go(func() error {
				w := newWorker(minFreq, reporter)
				w.codes = append(w.codes, code)
				mineErr := w.mine(links, supportCount(links))
				mu.Lock()
				stats.merge(w.stats)
				mu.Unlock()
				return mineErr
			})
		}
		err = wg.Wait()
	}
	if err != nil {
		return stats, err
	}

	klog.V(1).Infof("Mined %d patterns from %d seed(s) in %s", stats.Patterns, len(keys), time.Since(start))
	if klog.V(2).Enabled() {
		klog.Infof("Counts: %+v", stats)
	}
	return stats, nil
}
