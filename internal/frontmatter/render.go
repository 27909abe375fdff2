package frontmatter

import (
	"regexp"
	"slices"
	"strings"

	"github.com/gorewood/wikimark/internal/dialect"
	"github.com/gorewood/wikimark/internal/logging"
)

// reserved fields are either rendered in fixed positions or never exported.
var reserved = map[string]bool{
	"text":        true,
	"title":       true,
	"author":      true,
	"modified":    true,
	"description": true,
	"tags":        true,
	"type":        true,
}

var (
	whitespaceRun    = regexp.MustCompile(`\s+`)
	logseqKeyIllegal = regexp.MustCompile(`(?i)[^a-z0-9.*+!?$%&=<>_-]`)
)

// StyleFor returns the quoting used by a dialect's front matter.
func StyleFor(d dialect.Dialect) Style {
	switch d {
	case dialect.Obsidian:
		return DoubleQuoted
	case dialect.Logseq:
		return Bare
	default:
		return SingleQuoted
	}
}

// YAMLKey makes a field name safe as a YAML key.
func YAMLKey(name string) string {
	name = whitespaceRun.ReplaceAllString(strings.TrimSpace(name), "-")
	return strings.TrimRight(name, ":")
}

// LogseqKey makes a field name safe as a Logseq property. It returns "" when
// nothing usable is left.
func LogseqKey(name string) string {
	name = whitespaceRun.ReplaceAllString(strings.TrimSpace(name), "-")
	return logseqKeyIllegal.ReplaceAllString(name, "")
}

type entry struct {
	key   string
	value string
}

// Render builds the metadata header for a page. YAML dialects produce a
// --- block (the plain dialect adds a "# title" heading after it); Logseq
// produces key:: value lines. Both end with a blank line. Values that are
// invalid dates are logged and omitted.
func Render(fields Fields, d dialect.Dialect, logger *logging.Logger) string {
	logger = logging.OrDiscard(logger)
	style := StyleFor(d)
	entries := collect(fields, d, style, logger)

	if !d.UsesYAML() {
		lines := make([]string, 0, len(entries))
		for _, e := range entries {
			lines = append(lines, e.key+":: "+e.value)
		}
		if len(lines) == 0 {
			return ""
		}
		return strings.Join(lines, "\n") + "\n\n"
	}

	var b strings.Builder
	b.WriteString("---\n")
	for _, e := range entries {
		b.WriteString(e.key)
		b.WriteString(": ")
		b.WriteString(e.value)
		b.WriteString("\n")
	}
	b.WriteString("---\n\n")
	if title := fields.String("title"); d.DocumentHeading() && title != "" {
		b.WriteString("# ")
		b.WriteString(lineBreaks.Replace(title))
		b.WriteString("\n\n")
	}
	return b.String()
}

// collect orders the fields: title, author, date, abstract, tags, then the
// remaining fields sorted by name.
func collect(fields Fields, d dialect.Dialect, style Style, logger *logging.Logger) []entry {
	var entries []entry
	add := func(key, value string) {
		entries = append(entries, entry{key: key, value: value})
	}

	if title := fields.String("title"); title != "" {
		if d == dialect.Logseq {
			add("title", lineBreaks.Replace(title))
		} else {
			add("title", Quote(title, style))
		}
	}
	if author := fields.String("author"); author != "" {
		add("author", Quote(author, style))
	}

	dateField := "modified"
	if isEmpty(fields["modified"]) {
		dateField = "created"
	}
	if v := fields[dateField]; !isEmpty(v) {
		date, err := FormatDate(v)
		if err != nil {
			logger.InvalidDate(dateField, v, err)
		} else {
			add("date", date)
		}
	}

	if v := fields["description"]; !isEmpty(v) {
		abstract, err := FormatValue(v, style)
		if err != nil {
			logger.InvalidDate("description", v, err)
		} else {
			add("abstract", abstract)
		}
	}

	if tags := fields.Strings("tags"); len(tags) > 0 {
		add(d.TagsKey(), formatList(tags, style))
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		if !reserved[name] {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	for _, name := range names {
		v := fields[name]
		if v == nil {
			continue
		}
		key := YAMLKey(name)
		if d == dialect.Logseq {
			key = LogseqKey(name)
		}
		if key == "" {
			continue
		}
		value, err := FormatValue(v, style)
		if err != nil {
			logger.InvalidDate(name, v, err)
			continue
		}
		add(key, value)
	}
	return entries
}

func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	default:
		return false
	}
}
