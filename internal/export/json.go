package export

import (
	"github.com/gorewood/wikimark/internal/output"
)

// FormatJSON outputs the results as a JSON array to the printer.
func FormatJSON(printer *output.Printer, results []Result) error {
	if results == nil {
		results = []Result{}
	}
	return printer.WriteJSON(results)
}
