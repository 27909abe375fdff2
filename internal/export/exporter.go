package export

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gorewood/wikimark/internal/logging"
	"github.com/gorewood/wikimark/internal/markdown"
)

// Result is one rendered page.
type Result struct {
	Title    string `json:"title"`
	Filename string `json:"filename"`
	Markdown string `json:"markdown"`
}

// Exporter renders pages from a source with a shared renderer.
type Exporter struct {
	renderer *markdown.Renderer
	source   markdown.Source
	logger   *logging.Logger
	workers  int
	note     string
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger for skipped pages and progress.
func WithLogger(l *logging.Logger) Option {
	return func(e *Exporter) { e.logger = l }
}

// WithWorkers bounds the number of pages rendered at once.
func WithWorkers(n int) Option {
	return func(e *Exporter) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithNote adds a comment after each page's front matter.
func WithNote(note string) Option {
	return func(e *Exporter) { e.note = note }
}

// New creates an Exporter.
func New(r *markdown.Renderer, src markdown.Source, opts ...Option) *Exporter {
	e := &Exporter{
		renderer: r,
		source:   src,
		workers:  runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logging.OrDiscard(e.logger)
	return e
}

// Render renders titles concurrently and returns the pages that rendered,
// in input order. Only context cancellation is returned as an error.
func (e *Exporter) Render(ctx context.Context, titles []string) ([]Result, error) {
	start := time.Now()
	e.logger.ExportStarted(len(titles), e.renderer.Dialect().String())

	rendered := make([]*Result, len(titles))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, title := range titles {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rendered[i] = e.renderOne(title)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(titles))
	for _, r := range rendered {
		if r != nil {
			results = append(results, *r)
		}
	}
	e.logger.ExportCompleted(len(results), len(titles)-len(results), time.Since(start))
	return results, nil
}

func (e *Exporter) renderOne(title string) *Result {
	md, ok, err := e.renderer.RenderPage(e.source, title)
	if err != nil {
		e.logger.PageFailed(title, err)
		return nil
	}
	if !ok {
		return nil
	}
	if e.note != "" {
		md = InsertNote(md, e.note)
	}
	return &Result{
		Title:    title,
		Filename: e.renderer.Dialect().Filename(title) + ".md",
		Markdown: md,
	}
}
