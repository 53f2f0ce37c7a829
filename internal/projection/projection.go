// Package projection tracks where a pattern occurs inside the graph database.
//
// An embedding of a k-edge pattern is recorded as a chain of k links, one per
// DFS-code position, each pointing at the concrete half-edge realising that
// position. Chains for embeddings that share a prefix share their prefix
// links, so the links of a pattern form a forest whose leaves are the
// complete embeddings.
package projection

import "github.com/janpfeifer/gspan/internal/graph"

// Link is one edge of one embedding in the database. Prev points to the link
// for the previous DFS-code position of the same embedding, nil for the first.
//
// Links are stored by value in the slice of the pattern that created them;
// children created during extension point into the parent's slice, which
// stays alive for the duration of the recursion frame consuming it.
type Link struct {
	Graph *graph.Graph
	Edge  *graph.Edge
	Prev  *Link
}

// NoLink marks the first link of a chain in a MinLink.
const NoLink = -1

// MinLink is the minimality test's variant of Link: its embeddings live in a
// single growable slice, so the previous link is referenced by index rather
// than pointer (appends may relocate the backing array). The host graph is
// always the DFS code's own realisation, so no graph reference is needed.
type MinLink struct {
	Edge      *graph.Edge
	PrevIndex int
}
