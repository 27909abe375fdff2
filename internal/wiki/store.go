package wiki

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gorewood/wikimark/internal/doctree"
	"github.com/gorewood/wikimark/internal/frontmatter"
	"github.com/gorewood/wikimark/internal/htmltree"
	"github.com/gorewood/wikimark/internal/output"
)

// PageExt is the extension of page files.
const PageExt = ".html"

// ErrPageNotFound is returned for titles the store does not have.
var ErrPageNotFound = errors.New("page not found")

// ListStats counts the files seen while opening a store.
type ListStats struct {
	Total       int // page files found
	Parsed      int // loaded as pages
	Skipped     int // unreadable or unparsable
	Duplicates  int // title already taken by an earlier file
	ParseErrors int // front matter that is not valid YAML
}

// Store is a read-only set of pages loaded from a directory tree.
type Store struct {
	dir    string
	pages  map[string]*Page
	titles []string
	stats  ListStats
}

// Open loads every page file under dir. Files that cannot be parsed are
// skipped and counted in Stats. A missing directory is a user error.
func Open(dir string) (*Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, output.NewUserError("page store not found: " + dir)
		}
		return nil, output.NewSystemErrorWithCause("failed to read page store", err)
	}
	if !info.IsDir() {
		return nil, output.NewUserError("page store is not a directory: " + dir)
	}

	s := &Store{dir: dir, pages: make(map[string]*Page)}
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(d.Name()), PageExt) {
			return nil
		}
		s.stats.Total++
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			s.stats.Skipped++
			return nil
		}
		page, parseErr := ParsePage(path, data)
		if parseErr != nil {
			s.stats.Skipped++
			s.stats.ParseErrors++
			return nil
		}
		if _, dup := s.pages[page.Title]; dup {
			s.stats.Skipped++
			s.stats.Duplicates++
			return nil
		}
		s.pages[page.Title] = page
		s.stats.Parsed++
		return nil
	})
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to walk page store", err)
	}

	s.titles = make([]string, 0, len(s.pages))
	for title := range s.pages {
		s.titles = append(s.titles, title)
	}
	slices.Sort(s.titles)
	return s, nil
}

// NewStore builds a store from pages already in memory.
func NewStore(pages ...*Page) *Store {
	s := &Store{pages: make(map[string]*Page, len(pages))}
	for _, p := range pages {
		if _, dup := s.pages[p.Title]; dup {
			continue
		}
		s.pages[p.Title] = p
		s.titles = append(s.titles, p.Title)
	}
	slices.Sort(s.titles)
	s.stats = ListStats{Total: len(pages), Parsed: len(s.titles), Skipped: len(pages) - len(s.titles)}
	return s
}

// Dir returns the store directory ("" for in-memory stores).
func (s *Store) Dir() string {
	return s.dir
}

// Stats returns what Open found.
func (s *Store) Stats() ListStats {
	return s.stats
}

// Titles returns every title in sorted order.
func (s *Store) Titles() []string {
	return slices.Clone(s.titles)
}

// Exists reports whether the store has a page titled title.
func (s *Store) Exists(title string) bool {
	_, ok := s.pages[title]
	return ok
}

// Page returns the page titled title.
func (s *Store) Page(title string) (*Page, error) {
	p, ok := s.pages[title]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPageNotFound, title)
	}
	return p, nil
}

// Pages returns every page, sorted by title.
func (s *Store) Pages() []*Page {
	out := make([]*Page, 0, len(s.titles))
	for _, title := range s.titles {
		out = append(out, s.pages[title])
	}
	return out
}

// Tree parses the body of a page into a document tree.
func (s *Store) Tree(title string) (*doctree.Tree, error) {
	p, err := s.Page(title)
	if err != nil {
		return nil, err
	}
	tree, err := htmltree.ParseString(p.Body)
	if err != nil {
		return nil, fmt.Errorf("page %q: %w", title, err)
	}
	return tree, nil
}

// Fields returns a copy of a page's fields.
func (s *Store) Fields(title string) (frontmatter.Fields, error) {
	p, err := s.Page(title)
	if err != nil {
		return nil, err
	}
	return p.Fields.Clone(), nil
}

// Document returns the tree and fields of a page; ok is false when the page
// does not exist. It lets a Store serve as a markdown.Source.
func (s *Store) Document(title string) (*doctree.Tree, frontmatter.Fields, bool, error) {
	if !s.Exists(title) {
		return nil, nil, false, nil
	}
	tree, err := s.Tree(title)
	if err != nil {
		return nil, nil, false, err
	}
	fields, err := s.Fields(title)
	if err != nil {
		return nil, nil, false, err
	}
	return tree, fields, true, nil
}
