package graph

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ReadGraphs parses a graph database in the line-oriented text format:
//
//	t # <graph_id>             begins a new graph
//	v <vertex_id> <label>      adds a vertex; ids must be consecutive from 0
//	e <from> <to> <label>      adds an undirected edge between declared vertices
//	# ...                      comment
//
// Blank lines are ignored. Errors carry the 1-based line number.
func ReadGraphs(r io.Reader) ([]Parsed, error) {
	var graphs []Parsed
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
			if len(fields) != 3 || fields[1] != "#" {
				return nil, errors.Errorf("line %d: expected \"t # <id>\"", lineNo)
			}
			id, err := parseInt32(fields[2])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: bad graph id", lineNo)
			}
			graphs = append(graphs, Parsed{ID: ID(id)})
		case "v":
			if len(graphs) == 0 {
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
			g := &graphs[len(graphs)-1]
			if VertexID(id) != VertexID(len(g.Vertices)) {
				return nil, errors.Errorf("line %d: vertex id %d out of sequence, expected %d",
					lineNo, id, len(g.Vertices))
			}
			g.Vertices = append(g.Vertices, ParsedVertex{ID: VertexID(id), Label: VertexLabel(label)})
		case "e":
			if len(graphs) == 0 {
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
			g := &graphs[len(graphs)-1]
			n := int32(len(g.Vertices))
			if from < 0 || from >= n || to < 0 || to >= n {
				return nil, errors.Errorf("line %d: edge endpoint out of range (graph has %d vertices)", lineNo, n)
			}
			g.Edges = append(g.Edges, ParsedEdge{From: VertexID(from), To: VertexID(to), Label: EdgeLabel(label)})
		default:
			if strings.HasPrefix(fields[0], "#") {
				continue
			}
			return nil, errors.Errorf("line %d: invalid token %q, expected t, v, or e", lineNo, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading input")
	}
	return graphs, nil
}

func parseInt32(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	return int32(v), err
}
