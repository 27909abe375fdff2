package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	wikimarkmcp "github.com/gorewood/wikimark/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run wikimark as a Model Context Protocol (MCP) server over stdio.

The page store is loaded once at startup. Configure in your agent's MCP
settings:
  {
    "mcpServers": {
      "wikimark": {
        "command": "wikimark",
        "args": ["serve", "--store", "/path/to/wiki"]
      }
    }
  }

Available tools: list_pages, render_page, filename, calendar, by_date`,
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
			opts, err := calendarOptions(cmd, env, 0, "")
			if err != nil {
				return err
			}

			env.logger.Debug("serving", "store", store.Dir(), "pages", len(store.Titles()))
			server := wikimarkmcp.NewServer(buildVersion(), store, wikimarkmcp.Settings{
				Dialect:  env.dialect,
				Calendar: opts,
				Logger:   env.logger,
			})
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
