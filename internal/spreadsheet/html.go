package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"
)

// rowPath is the structural path to the data rows: the first <body>, then
// direct <table>, <tbody> and <tr> children.
var rowPath = []atom.Atom{atom.Body, atom.Table, atom.Tbody, atom.Tr}

// readHTMLRows parses an HTML table export into raw rows.
func readHTMLRows(r io.Reader, opts Options) ([]sheetRow, error) {
	decoded, err := decodeReader(r, opts.Encoding)
	if err != nil {
		return nil, err
	}

	doc, err := html.Parse(decoded)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var rows []sheetRow
	for i, tr := range selectAll(doc, rowPath...) {
		var cells []string
		for _, td := range children(tr, atom.Td) {
			cells = append(cells, strings.TrimSpace(textContent(td)))
		}
		rows = append(rows, sheetRow{number: i + 1, cells: cells})
	}

	return rows, nil
}

// decodeReader converts the input to UTF-8 for the HTML tokenizer.
func decodeReader(r io.Reader, label string) (io.Reader, error) {
	if label == "" {
		label = DefaultOptions().Encoding
	}

	if strings.EqualFold(label, EncodingAuto) {
		decoded, err := charset.NewReader(r, "")
		if err != nil {
			return nil, fmt.Errorf("failed to detect input encoding: %w", err)
		}
		return decoded, nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unknown input encoding %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(r), nil
}

// selectAll returns the nodes reached by path. The first element matches the
// first such element anywhere below root; every following element matches
// direct children only.
func selectAll(root *html.Node, path ...atom.Atom) []*html.Node {
	if len(path) == 0 {
		return nil
	}

	var start *html.Node
	for n := range root.Descendants() {
		if n.Type == html.ElementNode && n.DataAtom == path[0] {
			start = n
			break
		}
	}
	if start == nil {
		return nil
	}

	nodes := []*html.Node{start}
	for _, a := range path[1:] {
		var next []*html.Node
		for _, n := range nodes {
			next = append(next, children(n, a)...)
		}
		nodes = next
	}

	return nodes
}

// children returns the direct element children of n with the given tag.
func children(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	for c := range n.ChildNodes() {
		if c.Type == html.ElementNode && c.DataAtom == a {
			out = append(out, c)
		}
	}
	return out
}

// textContent concatenates all text below n.
func textContent(n *html.Node) string {
	var sb strings.Builder
	for d := range n.Descendants() {
		if d.Type == html.TextNode {
			sb.WriteString(d.Data)
		}
	}
	return sb.String()
}
