package export

import (
	"regexp"
	"strings"
)

// PageBreak separates pages in a concatenated export. Pandoc reads
// \newpage as a LaTeX page break.
const PageBreak = "\n\n\\newpage\n\n"

// noteAnchor matches the end of a front matter block followed by the
// document heading.
var noteAnchor = regexp.MustCompile(`(---\n+)(#)`)

// InsertNote puts note as an HTML comment between the front matter and
// the first heading. Pages without that shape are returned unchanged.
func InsertNote(md, note string) string {
	loc := noteAnchor.FindStringSubmatchIndex(md)
	if loc == nil {
		return md
	}
	// loc[3] is the end of the first group, just before the "#".
	return md[:loc[3]] + "<!-- " + note + " -->\n\n" + md[loc[3]:]
}

// Concatenate joins rendered pages into one document.
func Concatenate(results []Result) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, strings.TrimSpace(r.Markdown))
	}
	return strings.Join(parts, PageBreak)
}
