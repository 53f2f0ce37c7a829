package graph

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Pattern is one frequent pattern as written to (or re-read from) an output
// file: the pattern graph plus the ids of the input graphs supporting it.
type Pattern struct {
	ID       ID
	Vertices []ParsedVertex
	Edges    []ParsedEdge
	Support  []ID
}

// Key returns a canonical representation of the pattern that ignores its
// pattern id. Two output files describe the same result set iff their
// patterns' keys form equal sets.
func (p *Pattern) Key() string {
	var sb strings.Builder
	for _, v := range p.Vertices {
		fmt.Fprintf(&sb, "v %d %d\n", v.ID, v.Label)
	}
	for _, e := range p.Edges {
		fmt.Fprintf(&sb, "e %d %d %d\n", e.From, e.To, e.Label)
	}
	sb.WriteString("x:")
	for _, id := range p.Support {
		fmt.Fprintf(&sb, " %d", id)
	}
	return sb.String()
}

// ReadPatterns re-parses an output file produced by the miner. Intended for
// comparing the results of different runs or implementations.
func ReadPatterns(r io.Reader) ([]Pattern, error) {
	var patterns []Pattern
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "t":
			if len(fields) != 5 || fields[1] != "#" || fields[3] != "*" {
				return nil, errors.Errorf("line %d: expected \"t # <id> * <support>\"", lineNo)
			}
			id, err := parseInt32(fields[2])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: bad pattern id", lineNo)
			}
			patterns = append(patterns, Pattern{ID: ID(id)})
		case "v":
			if len(patterns) == 0 {
				return nil, errors.Errorf("line %d: \"v\" before any \"t\" line", lineNo)
			}
			if len(fields) != 3 {
				return nil, errors.Errorf("line %d: expected \"v <id> <label>\"", lineNo)
			}
			id, err := parseInt32(fields[1])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: bad vertex id", lineNo)
			}
			label, err := parseInt32(fields[2])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: bad vertex label", lineNo)
			}
			p := &patterns[len(patterns)-1]
			p.Vertices = append(p.Vertices, ParsedVertex{ID: VertexID(id), Label: VertexLabel(label)})
		case "e":
			if len(patterns) == 0 {
				return nil, errors.Errorf("line %d: \"e\" before any \"t\" line", lineNo)
			}
			if len(fields) != 4 {
				return nil, errors.Errorf("line %d: expected \"e <from_id> <to_id> <label>\"", lineNo)
			}
			from, err := parseInt32(fields[1])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: bad edge endpoint", lineNo)
			}
			to, err := parseInt32(fields[2])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: bad edge endpoint", lineNo)
			}
			label, err := parseInt32(fields[3])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: bad edge label", lineNo)
			}
			p := &patterns[len(patterns)-1]
			p.Edges = append(p.Edges, ParsedEdge{From: VertexID(from), To: VertexID(to), Label: EdgeLabel(label)})
		case "x:":
			if len(patterns) == 0 {
				return nil, errors.Errorf("line %d: \"x:\" before any \"t\" line", lineNo)
			}
			p := &patterns[len(patterns)-1]
			for _, f := range fields[1:] {
				id, err := parseInt32(f)
				if err != nil {
					return nil, errors.Wrapf(err, "line %d: bad graph id in support list", lineNo)
				}
				p.Support = append(p.Support, ID(id))
			}
		default:
			if strings.HasPrefix(fields[0], "#") {
				continue
			}
			return nil, errors.Errorf("line %d: invalid token %q, expected t, v, e, or x:", lineNo, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading patterns")
	}
	return patterns, nil
}
