package datastructure

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/wayfinder/pkg/geo"
	"github.com/lintang-b-s/wayfinder/pkg/util"
)

// snapshot of one project's node/edge sets, bzip2-compressed. a convenience
// for the storage collaborator, not a storage engine.

func WriteSnapshot(filename string, nodes []Node, edges []Edge) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	defer bz.Close()

	w := bufio.NewWriter(bz)
	defer w.Flush()

	fmt.Fprintf(w, "%d %d\n", len(nodes), len(edges))

	for _, n := range nodes {
		latF := strconv.FormatFloat(n.Position.Lat, 'f', -1, 64)
		lonF := strconv.FormatFloat(n.Position.Lon, 'f', -1, 64)
		xF := strconv.FormatFloat(n.ImageOffset[0], 'f', -1, 64)
		yF := strconv.FormatFloat(n.ImageOffset[1], 'f', -1, 64)

		// labels may contain spaces, fields are tab separated; tabs and
		// newlines inside free text are escaped so records stay one line
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%t\n",
			n.Id, escapeField(n.Label), latF, lonF, xF, yF, n.ProjectId, n.Accessible)
	}

	for _, e := range edges {
		distF := strconv.FormatFloat(e.DistanceMeters, 'f', -1, 64)

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\t%t\t%s\n",
			e.Id, e.FromNodeId, e.ToNodeId, distF, e.ProjectId,
			e.Bidirectional, e.Accessible, escapeField(e.Description))
	}

	return nil
}

func ReadSnapshot(filename string) ([]Node, []Edge, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, nil, err
	}

	br := bufio.NewReader(bz)

	line, err := util.ReadLine(br)
	if err != nil {
		return nil, nil, err
	}

	header := strings.Fields(line)
	if len(header) != 2 {
		return nil, nil, fmt.Errorf("malformed snapshot header: %q", line)
	}

	numNodes, err := strconv.Atoi(header[0])
	if err != nil {
		return nil, nil, err
	}
	numEdges, err := strconv.Atoi(header[1])
	if err != nil {
		return nil, nil, err
	}

	nodes := make([]Node, numNodes)
	for i := 0; i < numNodes; i++ {
		nodeLine, err := util.ReadLine(br)
		if err != nil {
			return nil, nil, err
		}
		nodes[i], err = parseNode(nodeLine)
		if err != nil {
			return nil, nil, err
		}
	}

	edges := make([]Edge, numEdges)
	for i := 0; i < numEdges; i++ {
		edgeLine, err := util.ReadLine(br)
		if err != nil {
			return nil, nil, err
		}
		edges[i], err = parseEdge(edgeLine)
		if err != nil {
			return nil, nil, err
		}
	}

	return nodes, edges, nil
}

var fieldEscaper = strings.NewReplacer("\\", "\\\\", "\t", "\\t", "\n", "\\n", "\r", "\\r")

// escapeField. free-text fields (label, description) may contain the record
// separators, escape them so the line-oriented format round-trips losslessly.
func escapeField(s string) string {
	return fieldEscaper.Replace(s)
}

func unescapeField(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 't':
			b.WriteByte('\t')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func parseNode(line string) (Node, error) {
	tokens := strings.Split(line, "\t")
	if len(tokens) != 8 {
		return Node{}, fmt.Errorf("malformed node record: %q", line)
	}

	lat, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return Node{}, err
	}
	lon, err := strconv.ParseFloat(tokens[3], 64)
	if err != nil {
		return Node{}, err
	}
	x, err := strconv.ParseFloat(tokens[4], 64)
	if err != nil {
		return Node{}, err
	}
	y, err := strconv.ParseFloat(tokens[5], 64)
	if err != nil {
		return Node{}, err
	}
	accessible, err := strconv.ParseBool(tokens[7])
	if err != nil {
		return Node{}, err
	}

	return NewNode(tokens[0], unescapeField(tokens[1]), geo.NewCoordinate(lat, lon),
		[2]float64{x, y}, tokens[6], accessible), nil
}

func parseEdge(line string) (Edge, error) {
	tokens := strings.Split(line, "\t")
	if len(tokens) != 8 {
		return Edge{}, fmt.Errorf("malformed edge record: %q", line)
	}

	dist, err := strconv.ParseFloat(tokens[3], 64)
	if err != nil {
		return Edge{}, err
	}
	bidirectional, err := strconv.ParseBool(tokens[5])
	if err != nil {
		return Edge{}, err
	}
	accessible, err := strconv.ParseBool(tokens[6])
	if err != nil {
		return Edge{}, err
	}

	return NewEdge(tokens[0], tokens[1], tokens[2], dist, tokens[4],
		bidirectional, accessible, unescapeField(tokens[7])), nil
}
