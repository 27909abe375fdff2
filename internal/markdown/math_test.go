package markdown

import (
	"testing"

	"github.com/gorewood/wikimark/internal/doctree"
)

func katex(tex string) string {
	return `<span class="katex"><span class="katex-mathml"><math><semantics><mrow></mrow>` +
		`<annotation encoding="application/x-tex">` + tex + `</annotation></semantics></math></span></span>`
}

func TestMathInline(t *testing.T) {
	tree := doctree.New()
	p := el(tree, doctree.NoNode, "p")
	text(tree, p, "so ")
	span := el(tree, p, "span")
	tree.SetRaw(span, katex("a &lt; b &amp;&amp; c &gt; d"))
	text(tree, span, "rendered glyphs")
	text(tree, p, " holds")

	got, _, err := New().RenderNode(tree, p)
	if err != nil {
		t.Fatal(err)
	}
	if want := "so $a < b && c > d$ holds\n\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMathBlock(t *testing.T) {
	tree := doctree.New()
	p := el(tree, doctree.NoNode, "p")
	text(tree, p, "\n")
	span := el(tree, p, "span")
	tree.SetRaw(span, katex(`E = mc^2  `))
	text(tree, p, "  ")

	got, _, err := New().RenderNode(tree, p)
	if err != nil {
		t.Fatal(err)
	}
	if want := "$$E = mc^2\n$$\n\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMathMultiline(t *testing.T) {
	tree := doctree.New()
	p := el(tree, doctree.NoNode, "p")
	text(tree, p, "before ")
	span := el(tree, p, "span")
	tree.SetRaw(span, katex("\n\\sum_i x_i\n"))

	got, _, err := New().RenderNode(tree, span)
	if err != nil {
		t.Fatal(err)
	}
	if want := "$$\n\\sum_i x_i\n$$\n\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMathEntityOrder(t *testing.T) {
	eq, ok := texSource(katex("&amp;lt;"))
	if !ok || eq != "&lt;" {
		t.Errorf("texSource = %q, %v", eq, ok)
	}
}

func TestPlainSpanPassesThrough(t *testing.T) {
	tree := doctree.New()
	span := el(tree, doctree.NoNode, "span")
	tree.SetRaw(span, `<span class="x">hi</span>`)
	text(tree, span, "hi")

	got, _, _ := New().RenderNode(tree, span)
	if got != "hi" {
		t.Errorf("got %q", got)
	}
}
