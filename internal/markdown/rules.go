package markdown

import (
	"encoding/base64"
	"net/url"
	"regexp"
	"strings"

	"github.com/gorewood/wikimark/internal/doctree"
)

// indentUnit is one level of list indentation.
const indentUnit = "    "

// blockTags are rendered as literal HTML wrappers on their own line.
var blockTags = []string{
	"address", "article", "aside", "details", "dialog", "fieldset",
	"figcaption", "figure", "footer", "form", "header", "hgroup", "main",
	"nav", "section",
}

func defaultRules() map[string]Rule {
	rules := map[string]Rule{
		"p":          paragraph,
		"div":        paragraph,
		"em":         wrap("*", "*"),
		"strong":     wrap("**", "**"),
		"u":          wrap("<u>", "</u>"),
		"strike":     wrap("~~", "~~"),
		"cite":       wrap("<cite>", "</cite>"),
		"br":         lineBreak,
		"hr":         constant("---\n\n"),
		"label":      passthrough,
		"mark":       highlight,
		"span":       span,
		"sub":        script("~"),
		"sup":        script("^"),
		"h1":         heading(1),
		"h2":         heading(2),
		"h3":         heading(3),
		"h4":         heading(4),
		"dl":         definitionList,
		"dt":         wrap("", "\n"),
		"dd":         wrap(" ~ ", "\n\n"),
		"pre":        preformatted,
		"code":       code,
		"blockquote": blockquote,
		"ul":         list,
		"ol":         list,
		"li":         listItem,
		"input":      input,
		"img":        image,
		"i":          icon,
		"a":          anchor,
		"table":      table,
		"tr":         omit,
		"td":         passthrough,
		"th":         passthrough,
	}
	for _, tag := range blockTags {
		rules[tag] = block
	}
	return rules
}

func wrap(before, after string) Rule {
	return func(_ *Context, _ doctree.NodeID, inner string) (string, bool) {
		return before + inner + after, true
	}
}

func constant(s string) Rule {
	return func(*Context, doctree.NodeID, string) (string, bool) {
		return s, true
	}
}

func passthrough(_ *Context, _ doctree.NodeID, inner string) (string, bool) {
	return inner, true
}

func omit(*Context, doctree.NodeID, string) (string, bool) {
	return "", false
}

func heading(level int) Rule {
	return wrap(strings.Repeat("#", level)+" ", "\n\n")
}

// script renders sub- and superscript; spaces are escaped so the span does
// not end early.
func script(marker string) Rule {
	return func(_ *Context, _ doctree.NodeID, inner string) (string, bool) {
		return marker + strings.ReplaceAll(inner, " ", `\ `) + marker, true
	}
}

func highlight(c *Context, _ doctree.NodeID, inner string) (string, bool) {
	return c.Dialect().Highlight(inner), true
}

// paragraph renders p and div. Inside a list item the first paragraph stays
// on the bullet line and later ones are indented.
func paragraph(c *Context, id doctree.NodeID, inner string) (string, bool) {
	t := c.Tree
	text := strings.TrimSpace(inner)
	if t.ParentTag(id) != "li" {
		return text + "\n\n", true
	}
	newlines := "\n\n"
	if t.IsLastChild(id) {
		newlines = "\n"
	}
	if t.IsFirstChild(id) {
		return text + newlines, true
	}
	return indentUnit + text + newlines, true
}

// lineBreak emits a hard break unless the next line is already blank.
func lineBreak(c *Context, id doctree.NodeID, _ string) (string, bool) {
	next := c.Tree.NextSibling(id)
	if next == doctree.NoNode || (c.Tree.IsText(next) && c.Tree.Text(next) == "\n") {
		return "\n", true
	}
	return "\\\n", true
}

func definitionList(_ *Context, _ doctree.NodeID, inner string) (string, bool) {
	return strings.TrimSpace(inner) + "\n\n", true
}

func preformatted(c *Context, id doctree.NodeID, inner string) (string, bool) {
	allCode := true
	for _, child := range c.Tree.Children(id) {
		if !c.Tree.IsElementTag(child, "code") {
			allCode = false
			break
		}
	}
	if allCode {
		return inner, true
	}
	return fence("", inner), true
}

var highlightClass = regexp.MustCompile(`^(.+) hljs$`)

// code renders inline code, or a fenced block when nested in pre. The
// language comes from a "<lang> hljs" class.
func code(c *Context, id doctree.NodeID, inner string) (string, bool) {
	if c.Tree.ParentTag(id) != "pre" {
		return "`" + inner + "`", true
	}
	lang := ""
	if class, ok := c.Tree.Attr(id, "class"); ok {
		if m := highlightClass.FindStringSubmatch(class); m != nil {
			lang = m[1]
		}
	}
	return fence(lang, inner), true
}

func fence(lang, inner string) string {
	return "```" + lang + "\n" + strings.TrimSpace(inner) + "\n```\n\n"
}

func blockquote(c *Context, id doctree.NodeID, inner string) (string, bool) {
	prefix := "> "
	if c.Tree.ParentTag(id) == "li" {
		prefix = indentUnit + prefix
	}
	body := strings.ReplaceAll(strings.TrimSpace(inner), "\n", "\n"+prefix)
	return prefix + body + "\n\n", true
}

// list renders ul and ol. A list nested in an item keeps its trailing
// whitespace and starts on a new line.
func list(c *Context, id doctree.NodeID, inner string) (string, bool) {
	if c.Tree.ParentTag(id) == "li" {
		return "\n" + inner, true
	}
	return strings.TrimSpace(inner) + "\n\n", true
}

func isListTag(tag string) bool {
	return tag == "ul" || tag == "ol" || tag == "li"
}

// listItem indents by one unit per enclosing ul/ol beyond the first.
func listItem(c *Context, id doctree.NodeID, inner string) (string, bool) {
	t := c.Tree
	parent := t.Parent(id)
	if parent == doctree.NoNode {
		c.Logger().OrphanListItem()
		return "", false
	}
	marker := "1."
	if t.Tag(parent) == "ul" {
		marker = "*"
	}
	depth := -1
	if isListTag(t.Tag(parent)) {
		if t.Tag(parent) != "li" {
			depth++
		}
		t.Ancestors(parent, func(a doctree.NodeID) bool {
			if !isListTag(t.Tag(a)) {
				return false
			}
			if t.Tag(a) != "li" {
				depth++
			}
			return true
		})
	}
	depth = max(depth, 0)
	return strings.Repeat(indentUnit, depth) + marker + " " + strings.TrimSpace(inner) + "\n", true
}

func input(c *Context, id doctree.NodeID, _ string) (string, bool) {
	kind, _ := c.Tree.Attr(id, "type")
	if kind != "checkbox" {
		c.Logger().UnsupportedInput(kind)
		return "", false
	}
	if checked, ok := c.Tree.Attr(id, "checked"); ok && checked != "false" {
		return "[x]", true
	}
	return "[ ]", true
}

const svgPrefix = "data:image/svg+xml,"

// image renders img; inline SVG data URIs are re-encoded as base64.
func image(c *Context, id doctree.NodeID, _ string) (string, bool) {
	caption, _ := c.Tree.Attr(id, "title")
	src, _ := c.Tree.Attr(id, "src")
	if payload, ok := strings.CutPrefix(src, svgPrefix); ok {
		if decoded, err := url.PathUnescape(payload); err == nil {
			src = "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(decoded))
		}
	}
	return "![" + caption + "](" + src + ")", true
}

// replacementChar stands in for icon font glyphs.
const replacementChar = "�"

// icon renders an empty Font Awesome glyph as U+FFFD; other i elements use
// the wildcard rule.
func icon(c *Context, id doctree.NodeID, inner string) (string, bool) {
	if class, ok := c.Tree.Attr(id, "class"); ok && strings.TrimSpace(inner) == "" {
		for _, name := range strings.Fields(class) {
			if strings.HasPrefix(name, "fa-") {
				return replacementChar, true
			}
		}
	}
	return wildcard(c, id, inner)
}

// anchor renders internal "#Title" references as wiki links in the active
// dialect and everything else as a Markdown link.
func anchor(c *Context, id doctree.NodeID, inner string) (string, bool) {
	href, _ := c.Tree.Attr(id, "href")
	if ref, ok := strings.CutPrefix(href, "#"); ok {
		target, err := url.PathUnescape(ref)
		if err != nil {
			target = ref
		}
		return c.Dialect().WikiLink(target, inner), true
	}
	if inner != "" && inner != href {
		return "[" + inner + "](" + href + ")", true
	}
	return "<" + href + ">", true
}

func block(c *Context, id doctree.NodeID, inner string) (string, bool) {
	out, ok := wildcard(c, id, inner)
	if !ok {
		return "", false
	}
	return out + "\n", true
}

// wildcard keeps an unknown tag as literal HTML around its trimmed content
// and drops it when the content is blank.
func wildcard(c *Context, id doctree.NodeID, inner string) (string, bool) {
	text := strings.TrimSpace(inner)
	if text == "" {
		return "", false
	}
	tag := c.Tree.Tag(id)
	return "<" + tag + ">" + text + "</" + tag + ">", true
}
