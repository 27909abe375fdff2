// Package htmltree builds document trees from HTML fragments.
package htmltree

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gorewood/wikimark/internal/doctree"
)

// containers hold only child elements; formatting whitespace inside them
// is dropped.
var containers = map[string]bool{
	"ul":    true,
	"ol":    true,
	"dl":    true,
	"table": true,
	"thead": true,
	"tbody": true,
	"tfoot": true,
	"tr":    true,
}

// blocks are the elements whose neighboring whitespace inside a list item
// is formatting rather than content.
var blocks = map[atom.Atom]bool{
	atom.P:          true,
	atom.Div:        true,
	atom.Ul:         true,
	atom.Ol:         true,
	atom.Dl:         true,
	atom.Blockquote: true,
	atom.Pre:        true,
	atom.Table:      true,
	atom.Hr:         true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
}

// Parse reads an HTML fragment in body context. Comments and doctypes are
// skipped. Span elements keep their serialized markup so the renderer can
// recover embedded TeX.
func Parse(r io.Reader) (*doctree.Tree, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, body)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	tree := doctree.New()
	for _, n := range nodes {
		if err := add(tree, doctree.NoNode, n); err != nil {
			return nil, err
		}
	}
	return tree, nil
}

// ParseString is Parse for an in-memory fragment.
func ParseString(s string) (*doctree.Tree, error) {
	return Parse(strings.NewReader(s))
}

func add(tree *doctree.Tree, parent doctree.NodeID, n *html.Node) error {
	switch n.Type {
	case html.TextNode:
		if formatting(tree.Tag(parent), n) {
			return nil
		}
		tree.AddText(parent, n.Data)
	case html.ElementNode:
		var attrs map[string]string
		if len(n.Attr) > 0 {
			attrs = make(map[string]string, len(n.Attr))
			for _, a := range n.Attr {
				attrs[a.Key] = a.Val
			}
		}
		id := tree.AddElement(parent, n.Data, attrs)
		if n.DataAtom == atom.Span {
			var raw strings.Builder
			writeRaw(&raw, n)
			tree.SetRaw(id, raw.String())
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := add(tree, id, c); err != nil {
				return err
			}
		}
	}
	return nil
}

// formatting reports whether a whitespace-only text node is layout between
// tags. Inside a list item only whitespace at the item's edges or beside a
// block element counts, so "<b>a</b> <i>b</i>" keeps its space.
func formatting(parent string, n *html.Node) bool {
	if strings.TrimSpace(n.Data) != "" {
		return false
	}
	if containers[parent] {
		return strings.Contains(n.Data, "\n")
	}
	if parent != "li" {
		return false
	}
	prev := sibling(n, func(s *html.Node) *html.Node { return s.PrevSibling })
	next := sibling(n, func(s *html.Node) *html.Node { return s.NextSibling })
	return prev == nil || next == nil || isBlock(prev) || isBlock(next)
}

// sibling walks from n with step and returns the first text or element
// node, skipping comments.
func sibling(n *html.Node, step func(*html.Node) *html.Node) *html.Node {
	for s := step(n); s != nil; s = step(s) {
		if s.Type == html.TextNode || s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

func isBlock(n *html.Node) bool {
	return n.Type == html.ElementNode && blocks[n.DataAtom]
}
