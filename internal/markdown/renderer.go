// Package markdown renders a document tree to Markdown with a tag-keyed
// rule table. Rules see each element after its children have been
// rendered; the dialect selects link and metadata syntax.
package markdown

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gorewood/wikimark/internal/dialect"
	"github.com/gorewood/wikimark/internal/doctree"
	"github.com/gorewood/wikimark/internal/frontmatter"
	"github.com/gorewood/wikimark/internal/logging"
)

// ErrMalformedNode is returned when a node is neither text nor an element.
// It aborts the page being rendered.
var ErrMalformedNode = errors.New("malformed tree node")

// Rule renders one element from its already-rendered children. Returning
// ok == false omits the element from the output.
type Rule func(c *Context, id doctree.NodeID, inner string) (out string, ok bool)

// Source supplies pages to RenderPage. Document reports ok == false for a
// title that does not exist.
type Source interface {
	Document(title string) (tree *doctree.Tree, fields frontmatter.Fields, ok bool, err error)
}

// Renderer holds a rule table and the output dialect. It is safe for
// concurrent use; every render call gets its own Context.
type Renderer struct {
	dialect   dialect.Dialect
	logger    *logging.Logger
	rules     map[string]Rule
	wildcard  Rule
	overrides map[string]Rule
	// ownsChildren lists tags whose rule renders its own subtree, so
	// Render passes them an empty inner string.
	ownsChildren map[string]bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithDialect selects the output dialect (default plain).
func WithDialect(d dialect.Dialect) Option {
	return func(r *Renderer) { r.dialect = d }
}

// WithLogger sets the logger used for recoverable problems.
func WithLogger(l *logging.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// WithRule replaces or adds the rule for a tag. The tag "*" replaces the
// wildcard rule.
func WithRule(tag string, rule Rule) Option {
	return func(r *Renderer) {
		if r.overrides == nil {
			r.overrides = make(map[string]Rule)
		}
		r.overrides[tag] = rule
	}
}

// New builds a renderer with the default rule table.
func New(opts ...Option) *Renderer {
	r := &Renderer{dialect: dialect.Plain}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.OrDiscard(r.logger)
	r.rules = defaultRules()
	r.wildcard = wildcard
	r.ownsChildren = map[string]bool{"table": true}
	for tag, rule := range r.overrides {
		delete(r.ownsChildren, tag)
		if tag == "*" {
			r.wildcard = rule
			continue
		}
		r.rules[tag] = rule
	}
	return r
}

// Dialect returns the output dialect.
func (r *Renderer) Dialect() dialect.Dialect {
	return r.dialect
}

// rule returns the rule for tag, falling back to the wildcard.
func (r *Renderer) rule(tag string) Rule {
	if rule, ok := r.rules[tag]; ok {
		return rule
	}
	return r.wildcard
}

// Context is the state of one render call.
type Context struct {
	Tree *doctree.Tree

	r   *Renderer
	err error
}

// Dialect returns the output dialect.
func (c *Context) Dialect() dialect.Dialect {
	return c.r.dialect
}

// Logger returns the renderer's logger.
func (c *Context) Logger() *logging.Logger {
	return c.r.logger
}

// Err returns the first malformed-node error seen, if any.
func (c *Context) Err() error {
	return c.err
}

// Render renders a node and its subtree. Text leaves are returned
// unchanged. After the first error every call returns ("", false).
func (c *Context) Render(id doctree.NodeID) (string, bool) {
	if c.err != nil {
		return "", false
	}
	switch c.Tree.Kind(id) {
	case doctree.KindText:
		return c.Tree.Text(id), true
	case doctree.KindElement:
		tag := c.Tree.Tag(id)
		var inner strings.Builder
		if !c.r.ownsChildren[tag] {
			for _, child := range c.Tree.Children(id) {
				out, _ := c.Render(child)
				inner.WriteString(out)
			}
		}
		if c.err != nil {
			return "", false
		}
		return c.r.rule(tag)(c, id, inner.String())
	default:
		c.err = fmt.Errorf("%w: node %d", ErrMalformedNode, id)
		return "", false
	}
}

// RenderNode renders one node of t. ok is false when a rule omitted it.
func (r *Renderer) RenderNode(t *doctree.Tree, id doctree.NodeID) (out string, ok bool, err error) {
	c := &Context{Tree: t, r: r}
	out, ok = c.Render(id)
	if c.err != nil {
		return "", false, c.err
	}
	return out, ok, nil
}

// RenderBody renders every root of t and concatenates the results without
// normalizing whitespace.
func (r *Renderer) RenderBody(t *doctree.Tree) (string, error) {
	c := &Context{Tree: t, r: r}
	var b strings.Builder
	for _, root := range t.Roots() {
		out, _ := c.Render(root)
		b.WriteString(out)
	}
	if c.err != nil {
		return "", c.err
	}
	return b.String(), nil
}

// RenderTree renders a tree with no metadata header.
func (r *Renderer) RenderTree(t *doctree.Tree) (string, error) {
	body, err := r.RenderBody(t)
	if err != nil {
		return "", err
	}
	return Normalize(body), nil
}

// RenderDocument renders a tree and prepends the metadata header for
// fields. The header is built after the body.
func (r *Renderer) RenderDocument(t *doctree.Tree, fields frontmatter.Fields) (string, error) {
	body, err := r.RenderBody(t)
	if err != nil {
		return "", err
	}
	header := frontmatter.Render(fields, r.dialect, r.logger)
	return Normalize(header + body), nil
}

// RenderPage renders the page title from src. A missing page is logged and
// reported with ok == false and a nil error.
func (r *Renderer) RenderPage(src Source, title string) (string, bool, error) {
	tree, fields, ok, err := src.Document(title)
	if err != nil {
		return "", false, fmt.Errorf("loading %q: %w", title, err)
	}
	if !ok {
		r.logger.PageMissing(title)
		return "", false, nil
	}
	out, err := r.RenderDocument(tree, fields.Clone())
	if err != nil {
		return "", false, fmt.Errorf("rendering %q: %w", title, err)
	}
	return out, true, nil
}

var blankLines = regexp.MustCompile(`\n\n\n+`)

// Normalize collapses runs of three or more newlines to two, trims the
// result and ends it with exactly one newline.
func Normalize(s string) string {
	return strings.TrimSpace(blankLines.ReplaceAllString(s, "\n\n")) + "\n"
}
