package markdown

import (
	"strings"

	"github.com/gorewood/wikimark/internal/doctree"
)

const (
	texAnnotationStart = `<annotation encoding="application/x-tex">`
	texAnnotationEnd   = `</annotation>`
)

// texEntities decodes the entities KaTeX output uses for TeX operators.
// &amp; goes last so "&amp;lt;" stays "&lt;".
var texEntities = []struct{ entity, char string }{
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&amp;", "&"},
}

// span renders KaTeX output back to its TeX source. Other spans pass their
// content through.
func span(c *Context, id doctree.NodeID, inner string) (string, bool) {
	eq, ok := texSource(c.Tree.Raw(id))
	if !ok {
		return inner, true
	}
	if soleContent(c.Tree, id) || (strings.HasPrefix(eq, "\n") && strings.HasSuffix(eq, "\n")) {
		return "$$" + strings.TrimRight(eq, " \t\r\n\f\v") + "\n$$\n\n", true
	}
	return "$" + eq + "$", true
}

// texSource extracts the TeX annotation from raw KaTeX markup.
func texSource(raw string) (string, bool) {
	_, rest, ok := strings.Cut(raw, texAnnotationStart)
	if !ok {
		return "", false
	}
	eq, _, ok := strings.Cut(rest, texAnnotationEnd)
	if !ok {
		return "", false
	}
	for _, e := range texEntities {
		eq = strings.ReplaceAll(eq, e.entity, e.char)
	}
	return eq, true
}

// soleContent reports whether id is the only non-blank child of its parent.
func soleContent(t *doctree.Tree, id doctree.NodeID) bool {
	parent := t.Parent(id)
	if parent == doctree.NoNode {
		return false
	}
	for _, sibling := range t.Children(parent) {
		if sibling == id {
			continue
		}
		if !t.IsText(sibling) || strings.TrimSpace(t.Text(sibling)) != "" {
			return false
		}
	}
	return true
}
