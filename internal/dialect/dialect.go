// Package dialect selects the Markdown flavor produced by the renderer:
// link syntax, highlight syntax, front-matter envelope and file naming.
package dialect

import (
	"errors"
	"fmt"
	"strings"
)

// Dialect is the target Markdown flavor. It is fixed for one render call.
type Dialect int

// Supported dialects.
const (
	// Plain is document-style Markdown (Pandoc-friendly): YAML front matter,
	// a level-1 title heading and ordinary links between page files.
	Plain Dialect = iota
	// Obsidian uses YAML front matter and [[file|alias]] wiki links.
	Obsidian
	// Logseq uses key:: value properties and [[title]] links.
	Logseq
)

// ErrUnknownDialect is returned by Parse for unrecognized names.
var ErrUnknownDialect = errors.New("unknown dialect")

// Names lists the canonical dialect names.
var Names = []string{"plain", "obsidian", "logseq"}

// Parse resolves a dialect name. "pandoc" and "markdown" are accepted as
// aliases for plain; the empty string selects plain.
func Parse(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "plain", "pandoc", "markdown":
		return Plain, nil
	case "obsidian":
		return Obsidian, nil
	case "logseq":
		return Logseq, nil
	default:
		return Plain, fmt.Errorf("%w %q: must be one of %s", ErrUnknownDialect, name, strings.Join(Names, ", "))
	}
}

// String returns the canonical name.
func (d Dialect) String() string {
	switch d {
	case Obsidian:
		return "obsidian"
	case Logseq:
		return "logseq"
	default:
		return "plain"
	}
}

// UsesYAML reports whether front matter is a --- delimited YAML block.
func (d Dialect) UsesYAML() bool {
	return d != Logseq
}

// DocumentHeading reports whether the page title is repeated as a level-1
// heading after the front matter. Wiki-link dialects show the file name as
// the title already.
func (d Dialect) DocumentHeading() bool {
	return d == Plain
}

// TagsKey is the front-matter key holding the tag list.
func (d Dialect) TagsKey() string {
	if d == Plain {
		return "keywords"
	}
	return "tags"
}

// Highlight wraps highlighted text.
func (d Dialect) Highlight(inner string) string {
	if d == Logseq {
		return "<mark>" + inner + "</mark>"
	}
	return "==" + inner + "=="
}

// WikiLink renders a link to another page. alias is the rendered link text;
// when it equals target the alias clause is omitted.
func (d Dialect) WikiLink(target, alias string) string {
	switch d {
	case Logseq:
		if target == alias {
			return "[[" + target + "]]"
		}
		return "[" + alias + "]([[" + target + "]])"
	case Obsidian:
		file := d.Filename(target)
		if target == alias {
			return "[[" + file + "]]"
		}
		return "[[" + file + "|" + alias + "]]"
	default:
		dest := d.Filename(target) + ".md"
		if strings.ContainsAny(dest, " \t") {
			dest = "<" + dest + ">"
		}
		return "[" + alias + "](" + dest + ")"
	}
}
