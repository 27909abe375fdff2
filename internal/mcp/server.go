// Package mcp provides a Model Context Protocol server for wikimark.
// It exposes page listing, rendering and calendar views of a page store as
// MCP tools.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/wikimark/internal/calendar"
	"github.com/gorewood/wikimark/internal/dialect"
	"github.com/gorewood/wikimark/internal/logging"
	"github.com/gorewood/wikimark/internal/wiki"
)

// Settings are the defaults tools fall back to when a request leaves a
// parameter out.
type Settings struct {
	Dialect  dialect.Dialect
	Calendar calendar.Options
	Logger   *logging.Logger
}

// NewServer creates an MCP server with all wikimark tools registered.
func NewServer(version string, store *wiki.Store, settings Settings) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "wikimark",
		Version: version,
	}, nil)
	registerTools(server, store, settings)
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations marks tools that only read the store.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

func registerTools(server *mcp.Server, store *wiki.Store, settings Settings) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_pages",
		Description: "List pages in the store, most recently modified first. Filter by tags (any of), since/until (duration such as 7d or a date). System pages and drafts are left out.",
		Annotations: readOnlyAnnotations(),
	}, handleListPages(store, settings))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render_page",
		Description: "Render one page as Markdown with front matter, in the plain, obsidian or logseq dialect.",
		Annotations: readOnlyAnnotations(),
	}, handleRenderPage(store, settings))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "filename",
		Description: "Return the Markdown file name a page title is exported to in a dialect.",
		Annotations: readOnlyAnnotations(),
	}, handleFilename(settings))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "calendar",
		Description: "Render a week-by-week calendar of dated pages for a year, or for the last four weeks when year is omitted. Format is md (default) or html.",
		Annotations: readOnlyAnnotations(),
	}, handleCalendar(store, settings))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "by_date",
		Description: "List pages grouped by date, newest date first, as Markdown headings with page links.",
		Annotations: readOnlyAnnotations(),
	}, handleByDate(store, settings))
}
