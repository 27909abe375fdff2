package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/wikimark/internal/wiki"
)

// pageRow is one page in pages output.
type pageRow struct {
	Title    string   `json:"title"`
	Filename string   `json:"filename"`
	Modified string   `json:"modified,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// newPagesCmd creates the pages command.
func newPagesCmd() *cobra.Command {
	var tagFlags []string
	var sinceFlag, untilFlag string
	var allFlag bool
	var recentFlag int

	cmd := &cobra.Command{
		Use:   "pages",
		Short: "List pages in the store",
		Long: `List pages in the store, sorted by title.

Examples:
  wikimark pages                        # All regular pages
  wikimark pages --tag travel,food      # Pages tagged travel or food
  wikimark pages --since 2024-01-01     # Pages modified this year
  wikimark pages --recent 10            # The ten most recently modified pages`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			filter, err := parseFilterFlags(tagFlags, sinceFlag, untilFlag, time.Now())
			if err != nil {
				env.printer.Error(err)
				return err
			}
			filter.IncludeSystem = allFlag
			filter.IncludeDrafts = allFlag

			store, err := env.openStore()
			if err != nil {
				return err
			}
			pages := wiki.FilterPages(store.Pages(), filter)
			if recentFlag > 0 {
				wiki.SortByModified(pages)
				pages = pages[:min(recentFlag, len(pages))]
			}
			return printPages(env, pages)
		},
	}

	cmd.Flags().StringSliceVar(&tagFlags, "tag", nil, "Only pages with any of these tags")
	cmd.Flags().StringVar(&sinceFlag, "since", "", "Only pages modified since duration (24h, 7d) or date")
	cmd.Flags().StringVar(&untilFlag, "until", "", "Only pages modified until duration (24h, 7d) or date")
	cmd.Flags().BoolVar(&allFlag, "all", false, "Include system pages and drafts")
	cmd.Flags().IntVar(&recentFlag, "recent", 0, "Show the N most recently modified pages, newest first")

	return cmd
}

// printPages writes pages as JSON or as a table.
func printPages(env *cmdEnv, pages []*wiki.Page) error {
	rows := make([]pageRow, 0, len(pages))
	for _, p := range pages {
		row := pageRow{
			Title:    p.Title,
			Filename: env.dialect.Filename(p.Title) + ".md",
			Tags:     p.Tags(),
		}
		if t, ok := p.Modified(); ok {
			row.Modified = t.UTC().Format(time.DateOnly)
		}
		rows = append(rows, row)
	}

	if env.printer.IsJSON() {
		return env.printer.WriteJSON(rows)
	}
	if len(rows) == 0 {
		env.printer.Stderr("No pages found\n")
		return nil
	}
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{r.Title, r.Modified, strings.Join(r.Tags, ", ")})
	}
	env.printer.Table([]string{"TITLE", "MODIFIED", "TAGS"}, table)
	return nil
}

// newFilenameCmd creates the filename command.
func newFilenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filename TITLE...",
		Short: "Show the file name a title exports to",
		Long: `Show the Markdown file name each title is exported to in the selected dialect.

Examples:
  wikimark filename "Projects/Beta"                   # Projects/Beta.md
  wikimark filename "Projects/Beta" --dialect logseq  # Projects___Beta.md`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			type fileRow struct {
				Title    string `json:"title"`
				Filename string `json:"filename"`
			}
			rows := make([]fileRow, 0, len(args))
			for _, title := range args {
				rows = append(rows, fileRow{Title: title, Filename: env.dialect.Filename(title) + ".md"})
			}
			if env.printer.IsJSON() {
				return env.printer.WriteJSON(rows)
			}
			if len(rows) == 1 {
				env.printer.Println(rows[0].Filename)
				return nil
			}
			table := make([][]string, 0, len(rows))
			for _, r := range rows {
				table = append(table, []string{r.Title, r.Filename})
			}
			env.printer.Table([]string{"TITLE", "FILE"}, table)
			return nil
		},
	}
}

