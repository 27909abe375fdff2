package markdown

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gorewood/wikimark/internal/dialect"
	"github.com/gorewood/wikimark/internal/doctree"
	"github.com/gorewood/wikimark/internal/frontmatter"
	"github.com/gorewood/wikimark/internal/logging"
)

// el adds an element with optional attributes given as key, value pairs.
func el(t *doctree.Tree, parent doctree.NodeID, tag string, kv ...string) doctree.NodeID {
	var attrs map[string]string
	if len(kv) > 0 {
		attrs = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			attrs[kv[i]] = kv[i+1]
		}
	}
	return t.AddElement(parent, tag, attrs)
}

func text(t *doctree.Tree, parent doctree.NodeID, s string) doctree.NodeID {
	return t.AddText(parent, s)
}

func TestRenderTextIsIdentity(t *testing.T) {
	for _, s := range []string{"", "plain", "*not escaped*", "  spaced\n"} {
		tree := doctree.New()
		id := text(tree, doctree.NoNode, s)
		got, ok, err := New().RenderNode(tree, id)
		if err != nil || !ok {
			t.Fatalf("RenderNode(%q) = %v, %v", s, ok, err)
		}
		if got != s {
			t.Errorf("RenderNode(%q) = %q", s, got)
		}
	}
}

func TestRenderParagraphWithEmphasis(t *testing.T) {
	tree := doctree.New()
	p := el(tree, doctree.NoNode, "p")
	text(tree, p, "Hello ")
	em := el(tree, p, "em")
	text(tree, em, "world")

	got, _, err := New().RenderNode(tree, p)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Hello *world*\n\n" {
		t.Errorf("got %q", got)
	}
}

func TestRenderMalformedNode(t *testing.T) {
	tree := doctree.New()
	_, _, err := New().RenderNode(tree, doctree.NodeID(42))
	if !errors.Is(err, ErrMalformedNode) {
		t.Fatalf("expected ErrMalformedNode, got %v", err)
	}
}

func TestWildcard(t *testing.T) {
	tree := doctree.New()
	kbd := el(tree, doctree.NoNode, "kbd")
	text(tree, kbd, "  Ctrl ")
	empty := el(tree, doctree.NoNode, "abbr")
	text(tree, empty, "   ")

	r := New()
	if got, ok, _ := r.RenderNode(tree, kbd); !ok || got != "<kbd>Ctrl</kbd>" {
		t.Errorf("wildcard = %q, %v", got, ok)
	}
	if _, ok, _ := r.RenderNode(tree, empty); ok {
		t.Error("blank wildcard content should be omitted")
	}
}

func TestWithRuleOverrides(t *testing.T) {
	tree := doctree.New()
	p := el(tree, doctree.NoNode, "p")
	text(tree, p, "x")
	custom := el(tree, doctree.NoNode, "custom")
	text(tree, custom, "y")

	r := New(
		WithRule("p", func(_ *Context, _ doctree.NodeID, inner string) (string, bool) {
			return "P(" + inner + ")", true
		}),
		WithRule("*", func(c *Context, id doctree.NodeID, inner string) (string, bool) {
			return c.Tree.Tag(id) + ":" + inner, true
		}),
	)
	got, err := r.RenderBody(tree)
	if err != nil {
		t.Fatal(err)
	}
	if got != "P(x)custom:y" {
		t.Errorf("got %q", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "a\n\n\n\nb", want: "a\n\nb\n"},
		{input: "\n\n  a\n\n", want: "a\n"},
		{input: "", want: "\n"},
	}
	for _, tt := range tests {
		got := Normalize(tt.input)
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
		if again := Normalize(got); again != got {
			t.Errorf("Normalize is not idempotent: %q -> %q", got, again)
		}
	}
}

type fakeSource map[string]struct {
	tree   *doctree.Tree
	fields frontmatter.Fields
}

func (s fakeSource) Document(title string) (*doctree.Tree, frontmatter.Fields, bool, error) {
	page, ok := s[title]
	if !ok {
		return nil, nil, false, nil
	}
	return page.tree, page.fields, true, nil
}

func TestRenderPage(t *testing.T) {
	tree := doctree.New()
	h := el(tree, doctree.NoNode, "h2")
	text(tree, h, "Intro")
	text(tree, doctree.NoNode, "\n\n\n")
	p := el(tree, doctree.NoNode, "p")
	text(tree, p, "See ")
	a := el(tree, p, "a", "href", "#Other%20Page")
	text(tree, a, "Other Page")

	src := fakeSource{"Home": {tree: tree, fields: frontmatter.Fields{
		"title": "Home",
		"tags":  []string{"a", "b"},
	}}}

	got, ok, err := New(WithDialect(dialect.Obsidian)).RenderPage(src, "Home")
	if err != nil || !ok {
		t.Fatalf("RenderPage = %v, %v", ok, err)
	}
	want := strings.Join([]string{
		"---",
		`title: "Home"`,
		`tags: ["a", "b"]`,
		"---",
		"",
		"## Intro",
		"",
		"See [[Other Page]]",
		"",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RenderPage mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderPagePlainHeading(t *testing.T) {
	tree := doctree.New()
	p := el(tree, doctree.NoNode, "p")
	text(tree, p, "Body")
	src := fakeSource{"Foo": {tree: tree, fields: frontmatter.Fields{"title": "Foo"}}}

	got, _, err := New().RenderPage(src, "Foo")
	if err != nil {
		t.Fatal(err)
	}
	want := "---\ntitle: 'Foo'\n---\n\n# Foo\n\nBody\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderPageMissing(t *testing.T) {
	var buf bytes.Buffer
	r := New(WithLogger(logging.New(&buf)))
	got, ok, err := r.RenderPage(fakeSource{}, "Nope")
	if err != nil {
		t.Fatalf("missing page should not be an error: %v", err)
	}
	if ok || got != "" {
		t.Errorf("RenderPage = %q, %v", got, ok)
	}
	if !strings.Contains(buf.String(), "title=Nope") {
		t.Errorf("expected missing page warning, got %q", buf.String())
	}
}
