// Package calendar lays out dated wiki pages as a week-by-week calendar and
// as a newest-first list grouped by day.
package calendar

import (
	"fmt"
	"html"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/goodsign/monday"

	"github.com/gorewood/wikimark/internal/dialect"
	"github.com/gorewood/wikimark/internal/doctree"
	"github.com/gorewood/wikimark/internal/htmltree"
	"github.com/gorewood/wikimark/internal/markdown"
	"github.com/gorewood/wikimark/internal/wiki"
)

// DaysPerWeek is the number of columns in a calendar.
const DaysPerWeek = 7

// TodayLabel replaces the date label of the current day.
const TodayLabel = "<mark>TODAY</mark>"

// Options control range resolution and label formatting.
type Options struct {
	FirstDayOfWeek time.Weekday
	Locale         monday.Locale
	DateLayout     string
	WeekdayLayout  string
	Location       *time.Location
	Now            time.Time
}

// DefaultOptions returns Monday-first weeks with US English labels in the
// local time zone.
func DefaultOptions() Options {
	return Options{
		FirstDayOfWeek: time.Monday,
		Locale:         monday.LocaleEnUS,
		DateLayout:     "Jan 02",
		WeekdayLayout:  "Mon",
		Location:       time.Local,
		Now:            time.Now(),
	}
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now().In(o.location())
	}
	return o.Now.In(o.location())
}

// day truncates t to midnight in its own location.
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func addDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the first day of the week containing t.
func StartOfWeek(t time.Time, first time.Weekday) time.Time {
	back := (int(t.Weekday()) - int(first) + DaysPerWeek) % DaysPerWeek
	return addDays(t, -back)
}

// EndOfWeek returns the last day of the week containing t.
func EndOfWeek(t time.Time, first time.Weekday) time.Time {
	return addDays(StartOfWeek(t, first), DaysPerWeek-1)
}

// Range returns the first and last day of a calendar. With a year it spans
// the weeks of January 1 through December 31, or through the current week
// when December 31 is still ahead. Without a year (0) it spans the current
// week and the three weeks before it.
func Range(year int, now time.Time, first time.Weekday) (start, end time.Time) {
	if year == 0 {
		start = addDays(StartOfWeek(now, first), -3*DaysPerWeek)
		return start, EndOfWeek(now, first)
	}
	loc := now.Location()
	start = StartOfWeek(time.Date(year, time.January, 1, 0, 0, 0, 0, loc), first)
	last := time.Date(year, time.December, 31, 0, 0, 0, 0, loc)
	if last.After(now) {
		last = now
	}
	return start, EndOfWeek(last, first)
}

// WeekRange resolves an optional start and end date into whole weeks. A
// missing bound lies numWeeks weeks from the other; with neither, the range
// ends today. The start widens to the week holding the first of its month
// and the end to the week holding the last of its month.
func WeekRange(start, end *time.Time, numWeeks int, now time.Time, first time.Weekday) (time.Time, time.Time) {
	span := time.Duration(numWeeks) * DaysPerWeek * 24 * time.Hour
	var s, e time.Time
	switch {
	case start == nil && end == nil:
		e = now
		s = e.Add(-span)
	case start == nil:
		e = *end
		s = e.Add(-span)
	case end == nil:
		s = *start
		e = s.Add(span)
	default:
		s, e = *start, *end
	}

	y, m, _ := s.Date()
	firstOfMonth := time.Date(y, m, 1, 0, 0, 0, 0, s.Location())
	y, m, _ = e.Date()
	lastOfMonth := time.Date(y, m+1, 0, 0, 0, 0, 0, e.Location())
	return StartOfWeek(firstOfMonth, first), EndOfWeek(lastOfMonth, first)
}

// Entry is a page placed on a date.
type Entry struct {
	Title string
	Date  time.Time
}

// FromPages returns an entry for every dated page that is neither a system
// page nor a draft.
func FromPages(pages []*wiki.Page) []Entry {
	var out []Entry
	for _, p := range pages {
		if p.IsSystem() || p.IsDraft() {
			continue
		}
		if t, ok := p.CalendarDate(); ok {
			out = append(out, Entry{Title: p.Title, Date: t})
		}
	}
	return out
}

// Day is one cell of a calendar.
type Day struct {
	Date   time.Time `json:"date"`
	Label  string    `json:"label"`
	Today  bool      `json:"today,omitempty"`
	Titles []string  `json:"titles,omitempty"`
}

// Calendar is a grid of week rows, each with DaysPerWeek days.
type Calendar struct {
	Weekdays []string `json:"weekdays"`
	Weeks    [][]Day  `json:"weeks"`
}

func dateKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// Build places entries on the days from start to end. Entries are compared
// by calendar day in the options' location; entries outside the range are
// ignored.
func Build(entries []Entry, start, end time.Time, opts Options) *Calendar {
	loc := opts.location()
	start, end = day(start.In(loc)), day(end.In(loc))
	today := dateKey(opts.now())

	byDay := make(map[string][]string)
	for _, e := range entries {
		key := dateKey(e.Date.In(loc))
		byDay[key] = append(byDay[key], e.Title)
	}

	cal := &Calendar{}
	for i := range DaysPerWeek {
		cal.Weekdays = append(cal.Weekdays, monday.Format(addDays(start, i), opts.WeekdayLayout, opts.Locale))
	}

	var week []Day
	for d := start; !d.After(end); d = addDays(d, 1) {
		key := dateKey(d)
		cell := Day{
			Date:   d,
			Label:  monday.Format(d, opts.DateLayout, opts.Locale),
			Today:  key == today,
			Titles: slices.Clone(byDay[key]),
		}
		slices.Sort(cell.Titles)
		week = append(week, cell)
		if len(week) == DaysPerWeek {
			cal.Weeks = append(cal.Weeks, week)
			week = nil
		}
	}
	return cal
}

func (d Day) label() string {
	if d.Today {
		return TodayLabel
	}
	return html.EscapeString(d.Label)
}

const style = `<style type="text/css">
table.tiddlercalendar { font-size: 85%; }
table.tiddlercalendar th,
table.tiddlercalendar td { width: 14.29%; vertical-align: top; text-align: center; }
table.tiddlercalendar ul { min-height: 100px; text-align: left; padding-left: 20px; }
table.tiddlercalendar li { margin-bottom: 6px; }
</style>
`

// HTML renders the calendar as a styled wiki table with [[title]] links.
func (c *Calendar) HTML() string {
	var b strings.Builder
	b.WriteString(style)
	b.WriteString(`<table class="tiddlercalendar">`)
	b.WriteString("<thead>")
	for _, wd := range c.Weekdays {
		fmt.Fprintf(&b, "<th>%s</th>", html.EscapeString(wd))
	}
	b.WriteString("</thead><tbody>")
	for _, week := range c.Weeks {
		b.WriteString("<tr>")
		for _, d := range week {
			fmt.Fprintf(&b, "<td><p>%s</p> <ul>", d.label())
			for _, title := range d.Titles {
				fmt.Fprintf(&b, "<li>[[%s]]</li>", html.EscapeString(title))
			}
			b.WriteString("</ul></td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>\n")
	return b.String()
}

// tableHTML is the calendar as a bare table whose links point at pages.
func (c *Calendar) tableHTML() string {
	var b strings.Builder
	b.WriteString("<table><thead><tr>")
	for _, wd := range c.Weekdays {
		fmt.Fprintf(&b, "<th>%s</th>", html.EscapeString(wd))
	}
	b.WriteString("</tr></thead><tbody>")
	for _, week := range c.Weeks {
		b.WriteString("<tr>")
		for _, d := range week {
			fmt.Fprintf(&b, "<td><p>%s</p><ul>", d.label())
			for _, title := range d.Titles {
				fmt.Fprintf(&b, `<li><a href="#%s">%s</a></li>`,
					html.EscapeString(url.PathEscape(title)), html.EscapeString(title))
			}
			b.WriteString("</ul></td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

// cellRules keep every calendar cell on one line of a pipe table.
func cellRules() []markdown.Option {
	trimmed := func(_ *markdown.Context, _ doctree.NodeID, inner string) (string, bool) {
		inner = strings.TrimSpace(inner)
		return inner, inner != ""
	}
	return []markdown.Option{
		markdown.WithRule("p", trimmed),
		markdown.WithRule("ul", trimmed),
		markdown.WithRule("li", func(_ *markdown.Context, _ doctree.NodeID, inner string) (string, bool) {
			return "<br>" + strings.TrimSpace(inner), true
		}),
	}
}

// Markdown renders the calendar as a pipe table in dialect d. Page titles
// become wiki links of that dialect.
func (c *Calendar) Markdown(d dialect.Dialect) (string, error) {
	tree, err := htmltree.ParseString(c.tableHTML())
	if err != nil {
		return "", fmt.Errorf("parsing calendar: %w", err)
	}
	opts := append([]markdown.Option{markdown.WithDialect(d)}, cellRules()...)
	return markdown.New(opts...).RenderTree(tree)
}
