package wiki

import (
	"sort"
	"time"
)

// Filter selects pages. Zero values match everything except system pages
// and drafts.
type Filter struct {
	Tags          []string  // any-of
	Since         time.Time // modified at or after
	Until         time.Time // modified at or before
	IncludeSystem bool
	IncludeDrafts bool
}

// Match reports whether p passes the filter.
func (f Filter) Match(p *Page) bool {
	if p.IsSystem() && !f.IncludeSystem {
		return false
	}
	if p.IsDraft() && !f.IncludeDrafts {
		return false
	}
	if len(f.Tags) > 0 && !p.HasAnyTag(f.Tags) {
		return false
	}
	if f.Since.IsZero() && f.Until.IsZero() {
		return true
	}
	modified, ok := p.Modified()
	if !ok {
		return false
	}
	if !f.Since.IsZero() && modified.Before(f.Since) {
		return false
	}
	if !f.Until.IsZero() && modified.After(f.Until) {
		return false
	}
	return true
}

// Select returns the sorted titles of pages passing f.
func (s *Store) Select(f Filter) []string {
	var titles []string
	for _, title := range s.titles {
		if f.Match(s.pages[title]) {
			titles = append(titles, title)
		}
	}
	return titles
}

// FilterPages returns the pages passing f, keeping their order.
func FilterPages(pages []*Page, f Filter) []*Page {
	var result []*Page
	for _, p := range pages {
		if f.Match(p) {
			result = append(result, p)
		}
	}
	return result
}

// SortByModified sorts pages most recently modified first. Pages without a
// date go last.
func SortByModified(pages []*Page) {
	sort.SliceStable(pages, func(i, j int) bool {
		ti, oki := pages[i].Modified()
		tj, okj := pages[j].Modified()
		if oki != okj {
			return oki
		}
		return ti.After(tj)
	})
}
