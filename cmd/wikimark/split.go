package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gorewood/wikimark/internal/export"
	"github.com/gorewood/wikimark/internal/output"
)

// newSplitCmd creates the split command.
func newSplitCmd() *cobra.Command {
	var outFlag string
	var forceFlag bool

	cmd := &cobra.Command{
		Use:   "split FILE",
		Short: "Split a concatenated export into one file per page",
		Long: `Split a concatenated export (pages separated by \newpage) into files.

Each part is named after the title in its front matter. Use - to read stdin.

Examples:
  wikimark export > all.md && wikimark split all.md --out pages/
  wikimark export | wikimark split - --out pages/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)
			if outFlag == "" {
				err := output.NewUserError("specify --out DIR for the split files")
				printer.Error(err)
				return err
			}

			doc, err := readInput(cmd, args[0])
			if err != nil {
				printer.Error(err)
				return err
			}
			parts, err := export.Split(doc)
			if err != nil {
				err = output.NewUserError(err.Error())
				printer.Error(err)
				return err
			}
			if err := export.WriteParts(parts, outFlag, forceFlag); err != nil {
				printer.Error(err)
				return err
			}

			if printer.IsJSON() {
				return printer.WriteJSON(parts)
			}
			return printer.Success(map[string]any{
				"message": fmt.Sprintf("Wrote %d files to %s", len(parts), outFlag),
			})
		},
	}

	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "Directory for the split files")
	cmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite existing files")

	return cmd
}

// readInput reads a file, or stdin for "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return "", output.NewUserError("file not found: " + path)
		}
		return "", output.NewSystemErrorWithCause("failed to read "+path, err)
	}
	return string(data), nil
}
