package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/wikimark/internal/config"
	"github.com/gorewood/wikimark/internal/export"
	"github.com/gorewood/wikimark/internal/markdown"
	"github.com/gorewood/wikimark/internal/output"
	"github.com/gorewood/wikimark/internal/wiki"
)

// exportFlags holds the export command's flags.
type exportFlags struct {
	tags      []string
	since     string
	until     string
	all       bool
	note      string
	extension string
	out       string
	force     bool
	workers   int
}

// newExportCmd creates the export command.
func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export [TITLE...]",
		Short: "Export pages as Markdown",
		Long: `Export pages as Markdown documents with front matter.

Without titles, every page passing the filters is exported. Without --out,
pages are written to stdout separated by \newpage. With --out, each page is
written as <dir>/<file>.md, or into a zip archive when the extension is .zip.

Examples:
  wikimark export --out notes/                      # One file per page
  wikimark export --dialect obsidian --out vault/   # Obsidian vault layout
  wikimark export --tag travel --out travel.zip     # Zip of tagged pages
  wikimark export --since 7d                        # Recent pages to stdout
  wikimark export Home Guide --json                 # Two pages as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, flags)
		},
	}

	cmd.Flags().StringSliceVar(&flags.tags, "tag", nil, "Only pages with any of these tags (repeat or comma-separate)")
	cmd.Flags().StringVar(&flags.since, "since", "", "Only pages modified since duration (24h, 7d) or date")
	cmd.Flags().StringVar(&flags.until, "until", "", "Only pages modified until duration (24h, 7d) or date")
	cmd.Flags().BoolVar(&flags.all, "all", false, "Include system pages and drafts")
	cmd.Flags().StringVar(&flags.note, "note", "", "Comment inserted after the front matter (default from config)")
	cmd.Flags().StringVar(&flags.extension, "extension", "", "Output extension: .md or .zip (default from config or --out)")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "Output directory or .zip file (if omitted, writes to stdout)")
	cmd.Flags().BoolVar(&flags.force, "force", false, "Overwrite existing output")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "Pages rendered in parallel (default: number of CPUs)")

	return cmd
}

// runExport executes the export command.
func runExport(cmd *cobra.Command, args []string, flags exportFlags) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	printer := env.printer

	filter, err := parseFilterFlags(flags.tags, flags.since, flags.until, time.Now())
	if err != nil {
		printer.Error(err)
		return err
	}
	filter.IncludeSystem = flags.all
	filter.IncludeDrafts = flags.all

	extension, err := resolveExtension(flags.extension, flags.out, env.cfg)
	if err != nil {
		printer.Error(err)
		return err
	}

	store, err := env.openStore()
	if err != nil {
		return err
	}
	titles := args
	if len(titles) == 0 {
		titles = store.Select(filter)
	}

	note := env.cfg.Note
	if cmd.Flags().Changed("note") {
		note = flags.note
	}
	exporter := export.New(
		markdown.New(markdown.WithDialect(env.dialect), markdown.WithLogger(env.logger)),
		store,
		export.WithLogger(env.logger),
		export.WithWorkers(flags.workers),
		export.WithNote(note),
	)
	results, err := exporter.Render(cmd.Context(), titles)
	if err != nil {
		err = output.NewSystemErrorWithCause("export failed", err)
		printer.Error(err)
		return err
	}

	if err := writeExport(printer, results, extension, flags.out, flags.force); err != nil {
		printer.Error(err)
		return err
	}
	return nil
}

// parseFilterFlags builds a page filter from --tag, --since and --until.
func parseFilterFlags(tags []string, since, until string, now time.Time) (wiki.Filter, error) {
	filter := wiki.Filter{Tags: tags}
	if since != "" {
		t, err := wiki.ParseSince(since, now)
		if err != nil {
			return filter, output.NewUserError(err.Error())
		}
		filter.Since = t
	}
	if until != "" {
		t, err := wiki.ParseUntil(until, now)
		if err != nil {
			return filter, output.NewUserError(err.Error())
		}
		filter.Until = t
	}
	return filter, nil
}

// resolveExtension picks the output extension: the flag, else the --out
// path's .zip suffix, else the configured default.
func resolveExtension(flag, out string, cfg *config.Config) (string, error) {
	ext := flag
	if ext == "" && strings.EqualFold(filepath.Ext(out), config.ExtZip) {
		ext = config.ExtZip
	}
	if ext == "" {
		ext = cfg.Extension
	}
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if ext != config.ExtMarkdown && ext != config.ExtZip {
		return "", output.NewUserErrorf("--extension must be %s or %s, got %q", config.ExtMarkdown, config.ExtZip, flag)
	}
	return ext, nil
}

// writeExport sends results to stdout, a zip archive or a directory.
func writeExport(printer *output.Printer, results []export.Result, extension, out string, force bool) error {
	if out == "" {
		if printer.IsJSON() {
			return export.FormatJSON(printer, results)
		}
		if len(results) > 0 {
			printer.Print("%s\n", export.Concatenate(results))
		}
		return nil
	}

	if extension == config.ExtZip {
		if err := export.WriteArchive(results, out, force); err != nil {
			return err
		}
	} else if err := export.WriteFiles(results, out, force); err != nil {
		return err
	}

	return printer.Success(map[string]any{
		"message": fmt.Sprintf("Exported %d pages to %s", len(results), out),
		"pages":   len(results),
		"out":     out,
	})
}
