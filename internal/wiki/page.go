// Package wiki reads a directory of wiki pages. Each page is an HTML file
// with an optional YAML front matter block holding its fields.
package wiki

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"gopkg.in/yaml.v3"

	"github.com/gorewood/wikimark/internal/frontmatter"
)

// SystemPrefix marks pages that configure the wiki itself.
const SystemPrefix = "$:/"

// Page is one wiki page.
type Page struct {
	Title  string
	Path   string
	Fields frontmatter.Fields
	Body   string
}

// ParsePage reads a page file. The title is the "title" field, else the
// file name without extension; it is always stored back into Fields.
func ParsePage(path string, data []byte) (*Page, error) {
	meta, body := splitFrontmatter(string(data))

	fields := frontmatter.Fields{}
	if meta != "" {
		var raw map[string]any
		if err := yaml.Unmarshal([]byte(meta), &raw); err != nil {
			return nil, fmt.Errorf("parsing front matter of %s: %w", filepath.Base(path), err)
		}
		for key, value := range raw {
			fields[key] = normalizeValue(value)
		}
	}

	title := strings.TrimSpace(fields.String("title"))
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	fields["title"] = title
	if _, ok := fields["tags"]; ok {
		fields["tags"] = fields.Strings("tags")
	}

	return &Page{
		Title:  title,
		Path:   path,
		Fields: fields,
		Body:   body,
	}, nil
}

// splitFrontmatter separates a leading --- block from the body.
func splitFrontmatter(raw string) (meta, body string) {
	raw = strings.TrimPrefix(raw, "\ufeff")
	if !strings.HasPrefix(raw, "---\n") && !strings.HasPrefix(raw, "---\r\n") {
		return "", raw
	}
	rest := raw[strings.Index(raw, "\n")+1:]
	if strings.HasPrefix(rest, "---") {
		return "", strings.TrimLeft(rest[3:], "\r\n")
	}
	before, after, ok := strings.Cut(rest, "\n---")
	if !ok {
		return "", raw
	}
	return before, strings.TrimLeft(after, "\r\n")
}

// normalizeValue turns YAML scalars into the value types the front matter
// formatter knows. Unquoted 17-digit timestamps decode as integers and are
// turned back into strings.
func normalizeValue(v any) any {
	switch x := v.(type) {
	case int:
		s := strconv.Itoa(x)
		if len(s) == 17 {
			return s
		}
		return x
	case uint64:
		return strconv.FormatUint(x, 10)
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			out = append(out, fmt.Sprint(normalizeValue(item)))
		}
		return out
	case map[string]any:
		return fmt.Sprint(x)
	default:
		return x
	}
}

// Tags returns the page's tags.
func (p *Page) Tags() []string {
	return p.Fields.Strings("tags")
}

// HasAnyTag reports whether the page has at least one of tags.
func (p *Page) HasAnyTag(tags []string) bool {
	for _, tag := range p.Tags() {
		if slices.Contains(tags, tag) {
			return true
		}
	}
	return false
}

// IsSystem reports whether the page is a system page.
func (p *Page) IsSystem() bool {
	return strings.HasPrefix(p.Title, SystemPrefix)
}

// IsDraft reports whether the page is an unsaved draft of another page.
func (p *Page) IsDraft() bool {
	_, ok := p.Fields["draft.of"]
	return ok
}

// Time reads a date field. It accepts time values, 17-digit wiki
// timestamps and anything dateparse understands.
func (p *Page) Time(field string) (time.Time, bool) {
	switch v := p.Fields[field].(type) {
	case time.Time:
		return v, !v.IsZero()
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, false
		}
		if t, err := frontmatter.ParseHostTimestamp(s); err == nil {
			return t, true
		}
		t, err := dateparse.ParseIn(s, time.UTC)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	default:
		return time.Time{}, false
	}
}

// Created returns the creation time.
func (p *Page) Created() (time.Time, bool) {
	return p.Time("created")
}

// Modified returns the last modification time, else the creation time.
func (p *Page) Modified() (time.Time, bool) {
	if t, ok := p.Time("modified"); ok {
		return t, true
	}
	return p.Created()
}

// CalendarDate returns the date a page is shown under in calendar views:
// its "at" field, else its creation time.
func (p *Page) CalendarDate() (time.Time, bool) {
	if t, ok := p.Time("at"); ok {
		return t, true
	}
	return p.Created()
}
