package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/wikimark/internal/calendar"
	"github.com/gorewood/wikimark/internal/dialect"
	"github.com/gorewood/wikimark/internal/markdown"
	"github.com/gorewood/wikimark/internal/wiki"
)

// pickDialect resolves an optional dialect name against the default.
func pickDialect(name string, fallback dialect.Dialect) (dialect.Dialect, error) {
	if name == "" {
		return fallback, nil
	}
	return dialect.Parse(name)
}

// --- list_pages ---

// ListPagesInput is the input for the list_pages tool.
type ListPagesInput struct {
	Tags  []string `json:"tags,omitempty"  jsonschema:"only pages carrying any of these tags"`
	Since string   `json:"since,omitempty" jsonschema:"modified since duration (24h, 7d) or date"`
	Until string   `json:"until,omitempty" jsonschema:"modified until duration (24h, 7d) or date"`
	Limit int      `json:"limit,omitempty" jsonschema:"return at most this many pages"`
}

// PageSummary describes one page.
type PageSummary struct {
	Title    string   `json:"title"              jsonschema:"page title"`
	Modified string   `json:"modified,omitempty" jsonschema:"last modification time (RFC 3339)"`
	Tags     []string `json:"tags,omitempty"     jsonschema:"page tags"`
}

// ListPagesOutput is the output for the list_pages tool.
type ListPagesOutput struct {
	Count int           `json:"count" jsonschema:"number of pages returned"`
	Pages []PageSummary `json:"pages" jsonschema:"matching pages"`
}

func handleListPages(store *wiki.Store, _ Settings) mcp.ToolHandlerFor[ListPagesInput, ListPagesOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ListPagesInput) (*mcp.CallToolResult, ListPagesOutput, error) {
		filter, err := buildFilter(input, time.Now())
		if err != nil {
			return nil, ListPagesOutput{}, err
		}
		pages := wiki.FilterPages(store.Pages(), filter)
		wiki.SortByModified(pages)
		if input.Limit > 0 && len(pages) > input.Limit {
			pages = pages[:input.Limit]
		}

		out := ListPagesOutput{Count: len(pages), Pages: make([]PageSummary, 0, len(pages))}
		for _, p := range pages {
			summary := PageSummary{Title: p.Title, Tags: p.Tags()}
			if t, ok := p.Modified(); ok {
				summary.Modified = t.UTC().Format(time.RFC3339)
			}
			out.Pages = append(out.Pages, summary)
		}
		return nil, out, nil
	}
}

func buildFilter(input ListPagesInput, now time.Time) (wiki.Filter, error) {
	filter := wiki.Filter{Tags: input.Tags}
	if input.Since != "" {
		t, err := wiki.ParseSince(input.Since, now)
		if err != nil {
			return filter, err
		}
		filter.Since = t
	}
	if input.Until != "" {
		t, err := wiki.ParseUntil(input.Until, now)
		if err != nil {
			return filter, err
		}
		filter.Until = t
	}
	return filter, nil
}

// --- render_page ---

// RenderPageInput is the input for the render_page tool.
type RenderPageInput struct {
	Title   string `json:"title"             jsonschema:"page title"`
	Dialect string `json:"dialect,omitempty" jsonschema:"plain, obsidian or logseq"`
}

// RenderPageOutput is the output for the render_page tool.
type RenderPageOutput struct {
	Title    string `json:"title"    jsonschema:"page title"`
	Filename string `json:"filename" jsonschema:"file name in the chosen dialect"`
	Markdown string `json:"markdown" jsonschema:"rendered document"`
}

func handleRenderPage(store *wiki.Store, settings Settings) mcp.ToolHandlerFor[RenderPageInput, RenderPageOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input RenderPageInput) (*mcp.CallToolResult, RenderPageOutput, error) {
		if input.Title == "" {
			return nil, RenderPageOutput{}, errors.New("title is required")
		}
		d, err := pickDialect(input.Dialect, settings.Dialect)
		if err != nil {
			return nil, RenderPageOutput{}, err
		}
		r := markdown.New(markdown.WithDialect(d), markdown.WithLogger(settings.Logger))
		md, ok, err := r.RenderPage(store, input.Title)
		if err != nil {
			return nil, RenderPageOutput{}, err
		}
		if !ok {
			return nil, RenderPageOutput{}, fmt.Errorf("%w: %q", wiki.ErrPageNotFound, input.Title)
		}
		return nil, RenderPageOutput{
			Title:    input.Title,
			Filename: d.Filename(input.Title) + ".md",
			Markdown: md,
		}, nil
	}
}

// --- filename ---

// FilenameInput is the input for the filename tool.
type FilenameInput struct {
	Title   string `json:"title"             jsonschema:"page title"`
	Dialect string `json:"dialect,omitempty" jsonschema:"plain, obsidian or logseq"`
}

// FilenameOutput is the output for the filename tool.
type FilenameOutput struct {
	Filename string `json:"filename" jsonschema:"file name including the .md extension"`
}

func handleFilename(settings Settings) mcp.ToolHandlerFor[FilenameInput, FilenameOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input FilenameInput) (*mcp.CallToolResult, FilenameOutput, error) {
		d, err := pickDialect(input.Dialect, settings.Dialect)
		if err != nil {
			return nil, FilenameOutput{}, err
		}
		return nil, FilenameOutput{Filename: d.Filename(input.Title) + ".md"}, nil
	}
}

// --- calendar ---

// CalendarInput is the input for the calendar tool.
type CalendarInput struct {
	Year     int    `json:"year,omitempty"      jsonschema:"calendar year; omitted means the last four weeks"`
	FirstDay *int   `json:"first_day,omitempty" jsonschema:"first day of the week, 0 (Sunday) to 6"`
	Format   string `json:"format,omitempty"    jsonschema:"md (default) or html"`
	Dialect  string `json:"dialect,omitempty"   jsonschema:"link dialect for md output"`
}

// TextOutput carries rendered text.
type TextOutput struct {
	Text string `json:"text" jsonschema:"rendered output"`
}

func handleCalendar(store *wiki.Store, settings Settings) mcp.ToolHandlerFor[CalendarInput, TextOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input CalendarInput) (*mcp.CallToolResult, TextOutput, error) {
		opts := settings.Calendar
		if input.FirstDay != nil {
			if *input.FirstDay < 0 || *input.FirstDay > 6 {
				return nil, TextOutput{}, fmt.Errorf("first_day must be 0-6, got %d", *input.FirstDay)
			}
			opts.FirstDayOfWeek = time.Weekday(*input.FirstDay)
		}
		d, err := pickDialect(input.Dialect, settings.Dialect)
		if err != nil {
			return nil, TextOutput{}, err
		}

		now := opts.Now
		if now.IsZero() {
			now = time.Now()
		}
		start, end := calendar.Range(input.Year, now, opts.FirstDayOfWeek)
		cal := calendar.Build(calendar.FromPages(store.Pages()), start, end, opts)

		switch input.Format {
		case "", "md", "markdown":
			text, err := cal.Markdown(d)
			if err != nil {
				return nil, TextOutput{}, err
			}
			return nil, TextOutput{Text: text}, nil
		case "html":
			return nil, TextOutput{Text: cal.HTML()}, nil
		default:
			return nil, TextOutput{}, fmt.Errorf("unknown format %q (want md or html)", input.Format)
		}
	}
}

// --- by_date ---

// ByDateInput is the input for the by_date tool.
type ByDateInput struct {
	Days    int    `json:"days,omitempty"    jsonschema:"number of dates to list (default 30)"`
	Dialect string `json:"dialect,omitempty" jsonschema:"link dialect"`
}

func handleByDate(store *wiki.Store, settings Settings) mcp.ToolHandlerFor[ByDateInput, TextOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ByDateInput) (*mcp.CallToolResult, TextOutput, error) {
		d, err := pickDialect(input.Dialect, settings.Dialect)
		if err != nil {
			return nil, TextOutput{}, err
		}
		days := input.Days
		if days <= 0 {
			days = 30
		}
		opts := settings.Calendar
		opts.DateLayout = calendar.ByDateLayout
		text := calendar.ByDate(calendar.FromPages(store.Pages()), days, opts, d)
		return nil, TextOutput{Text: text}, nil
	}
}
