package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/gorewood/wikimark/internal/output"
)

// ErrMissingTitle is returned by Split for a part with no title field.
var ErrMissingTitle = errors.New("cannot find title")

// Part is one page cut out of a concatenated export.
type Part struct {
	Title    string `json:"title"`
	Filename string `json:"filename"`
	Markdown string `json:"markdown"`
}

var (
	frontMatterTitle  = regexp.MustCompile(`(?im)title: ['"](.+)['"]`)
	illegalFileChars  = regexp.MustCompile(`[\[\]#<>:*?|^/"\\\t\r\n]`)
	edgeDotsAndSpaces = regexp.MustCompile(`(^[.\s]+|[\s.]+$)`)
	multipleSpaces    = regexp.MustCompile(` +`)
)

// CleanFilename turns a title into a file name (without extension):
// characters that are illegal or awkward in file names become spaces,
// repeated spaces collapse, and leading or trailing dots and spaces go.
func CleanFilename(title string) string {
	name := illegalFileChars.ReplaceAllString(title, " ")
	name = multipleSpaces.ReplaceAllString(name, " ")
	return edgeDotsAndSpaces.ReplaceAllString(name, "")
}

// Split cuts a concatenated export at each \newpage. Each part is named
// after the quoted title: line of its front matter.
func Split(doc string) ([]Part, error) {
	var parts []Part
	for i, chunk := range strings.Split(doc, `\newpage`) {
		m := frontMatterTitle.FindStringSubmatch(chunk)
		if m == nil {
			return nil, fmt.Errorf("%w for part %d", ErrMissingTitle, i+1)
		}
		parts = append(parts, Part{
			Title:    m[1],
			Filename: CleanFilename(m[1]) + ".md",
			Markdown: strings.TrimSpace(chunk),
		})
	}
	return parts, nil
}

// WriteParts writes split parts into dir, creating it when needed.
func WriteParts(parts []Part, dir string, force bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return output.NewSystemErrorWithCause("failed to create output directory", err)
	}
	for _, p := range parts {
		path := filepath.Join(dir, p.Filename)
		if !force {
			if _, err := os.Stat(path); err == nil {
				return output.NewConflictError("output file already exists: " + path)
			}
		}
		if err := atomic.WriteFile(path, strings.NewReader(p.Markdown)); err != nil {
			return output.NewSystemErrorWithCause("failed to write file "+path, err)
		}
	}
	return nil
}
