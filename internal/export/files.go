package export

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/gorewood/wikimark/internal/output"
)

// WriteFiles writes each result to dir/<Filename>. Folders in file names
// are created. If force is false and any target exists, nothing is written
// and a conflict error is returned.
func WriteFiles(results []Result, dir string, force bool) error {
	if !force {
		for _, r := range results {
			path := filepath.Join(dir, filepath.FromSlash(r.Filename))
			if _, err := os.Stat(path); err == nil {
				return output.NewConflictError("output file already exists: " + path)
			}
		}
	}

	for _, r := range results {
		path := filepath.Join(dir, filepath.FromSlash(r.Filename))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return output.NewSystemErrorWithCause("failed to create output directory", err)
		}
		content := strings.TrimSpace(r.Markdown) + "\n"
		if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
			return output.NewSystemErrorWithCause("failed to write file "+path, err)
		}
	}
	return nil
}
