package main

import (
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/gorewood/wikimark/internal/export"
	"github.com/gorewood/wikimark/internal/markdown"
	"github.com/gorewood/wikimark/internal/output"
)

// newRenderCmd creates the render command.
func newRenderCmd() *cobra.Command {
	var previewFlag bool

	cmd := &cobra.Command{
		Use:   "render TITLE",
		Short: "Render one page as Markdown",
		Long: `Render one page as a Markdown document in the selected dialect.

Examples:
  wikimark render Home                      # Plain Markdown to stdout
  wikimark render Home --dialect logseq     # Logseq properties and links
  wikimark render Home --preview            # Styled preview in the terminal`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], previewFlag)
		},
	}

	cmd.Flags().BoolVar(&previewFlag, "preview", false, "Show the rendered Markdown styled for the terminal")

	return cmd
}

// runRender executes the render command.
func runRender(cmd *cobra.Command, title string, preview bool) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	printer := env.printer

	store, err := env.openStore()
	if err != nil {
		return err
	}

	renderer := markdown.New(markdown.WithDialect(env.dialect), markdown.WithLogger(env.logger))
	md, ok, err := renderer.RenderPage(store, title)
	if err != nil {
		err = output.NewSystemErrorWithCause("render failed", err)
		printer.Error(err)
		return err
	}
	if !ok {
		err := output.NewUserErrorf("page not found: %q", title)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(export.Result{
			Title:    title,
			Filename: env.dialect.Filename(title) + ".md",
			Markdown: md,
		})
	}
	if preview {
		if err := printPreview(printer, md); err != nil {
			printer.Error(err)
			return err
		}
		return nil
	}
	printer.Print("%s", md)
	return nil
}

// printPreview renders Markdown for the terminal with glamour.
func printPreview(printer *output.Printer, md string) error {
	term, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return output.NewSystemErrorWithCause("preview failed", err)
	}
	styled, err := term.Render(md)
	if err != nil {
		return output.NewSystemErrorWithCause("preview failed", err)
	}
	printer.Print("%s", styled)
	return nil
}
