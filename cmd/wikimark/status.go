package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/wikimark/internal/config"
)

// statusResult is the JSON form of the status command.
type statusResult struct {
	Store      string   `json:"store"`
	Dialect    string   `json:"dialect"`
	ConfigFile string   `json:"config_file"`
	Pages      int      `json:"pages"`
	Files      int      `json:"files"`
	Skipped    int      `json:"skipped"`
	Duplicates int      `json:"duplicates"`
	Errors     int      `json:"parse_errors"`
	Tags       []string `json:"tags,omitempty"`
}

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the page store and configuration in use",
		Long: `Show the page store, dialect and config file in use, with page counts.

Examples:
  wikimark status
  wikimark status --store ~/wiki --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			store, err := env.openStore()
			if err != nil {
				return err
			}

			stats := store.Stats()
			tagSet := map[string]bool{}
			var tags []string
			for _, p := range store.Pages() {
				for _, tag := range p.Tags() {
					if !tagSet[tag] {
						tagSet[tag] = true
						tags = append(tags, tag)
					}
				}
			}
			result := statusResult{
				Store:      store.Dir(),
				Dialect:    env.dialect.String(),
				ConfigFile: config.Path(),
				Pages:      stats.Parsed,
				Files:      stats.Total,
				Skipped:    stats.Skipped,
				Duplicates: stats.Duplicates,
				Errors:     stats.ParseErrors,
				Tags:       tags,
			}

			printer := env.printer
			if printer.IsJSON() {
				return printer.WriteJSON(result)
			}
			printer.Box("wikimark", fmt.Sprintf("store:   %s\ndialect: %s", result.Store, result.Dialect))
			printer.Section("Pages")
			printer.KeyValue("Pages", fmt.Sprint(result.Pages))
			printer.KeyValue("Files", fmt.Sprint(result.Files))
			printer.KeyValue("Duplicates", fmt.Sprint(result.Duplicates))
			printer.KeyValue("Unreadable", fmt.Sprint(result.Errors))
			printer.Section("Config")
			printer.KeyValue("File", result.ConfigFile)
			if len(tags) > 0 {
				printer.KeyValue("Tags", strings.Join(tags, ", "))
			}
			return nil
		},
	}
}
