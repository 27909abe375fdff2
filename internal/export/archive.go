package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/natefinch/atomic"

	"github.com/gorewood/wikimark/internal/output"
)

// Archive writes pages into a zip file. Add may be called concurrently.
type Archive struct {
	mu       sync.Mutex
	zw       *zip.Writer
	modified time.Time
	names    map[string]bool
}

// NewArchive starts a zip archive on w. Entries are stamped with modified.
func NewArchive(w io.Writer, modified time.Time) *Archive {
	return &Archive{
		zw:       zip.NewWriter(w),
		modified: modified,
		names:    make(map[string]bool),
	}
}

// Add writes one file to the archive. Names are slash-separated; adding the
// same name twice is an error.
func (a *Archive) Add(name, contents string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	name = filepath.ToSlash(name)
	if a.names[name] {
		return fmt.Errorf("duplicate archive entry %q", name)
	}
	w, err := a.zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: a.modified,
	})
	if err != nil {
		return fmt.Errorf("adding %q: %w", name, err)
	}
	if _, err := io.WriteString(w, contents); err != nil {
		return fmt.Errorf("writing %q: %w", name, err)
	}
	a.names[name] = true
	return nil
}

// Close finishes the archive.
func (a *Archive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.zw.Close()
}

// WriteArchive writes results as a zip file at path. An existing file is
// replaced only with force.
func WriteArchive(results []Result, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return output.NewConflictError("output file already exists: " + path)
		}
	}

	var buf bytes.Buffer
	archive := NewArchive(&buf, time.Now())
	for _, r := range results {
		if err := archive.Add(r.Filename, strings.TrimSpace(r.Markdown)+"\n"); err != nil {
			return output.NewSystemErrorWithCause("failed to build archive", err)
		}
	}
	if err := archive.Close(); err != nil {
		return output.NewSystemErrorWithCause("failed to finish archive", err)
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return output.NewSystemErrorWithCause("failed to write archive "+path, err)
	}
	return nil
}
