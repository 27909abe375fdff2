// Package main provides the entry point for the wikimark CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/wikimark/internal/output"
)

// Build info set via ldflags at build time.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the wikimark CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wikimark",
		Short: "Export wiki pages as Markdown",
		Long: `Wikimark - Render a directory of wiki pages as Markdown.

Pages are HTML files with optional YAML front matter. Wikimark renders them
as Markdown documents with front matter in one of three dialects:
  - plain:    YAML front matter, [alias](file.md) links, a # title heading
  - obsidian: YAML front matter, [[file|alias]] links, nested folders
  - logseq:   key:: value properties, [[title]] links, ___ namespaces

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'wikimark --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.Bool("json", false, "Output in JSON format")
	flags.String("store", "", "Page store directory (default from config, $WIKIMARK_STORE or .)")
	flags.String("dialect", "", "Markdown dialect: plain, obsidian or logseq")
	flags.String("color", output.ColorAuto, "Color output: auto, always or never")
	flags.BoolP("verbose", "v", false, "Log debug details to stderr")
	flags.BoolP("quiet", "q", false, "Only log errors to stderr")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "render", Title: "Render Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "views", Title: "View Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newExportCmd(), "render")
	addGroupedCommand(cmd, newRenderCmd(), "render")
	addGroupedCommand(cmd, newSplitCmd(), "render")
	addGroupedCommand(cmd, newFilenameCmd(), "render")

	addGroupedCommand(cmd, newPagesCmd(), "views")
	addGroupedCommand(cmd, newCalendarCmd(), "views")
	addGroupedCommand(cmd, newByDateCmd(), "views")

	addGroupedCommand(cmd, newStatusCmd(), "admin")
	addGroupedCommand(cmd, newServeCmd(), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
