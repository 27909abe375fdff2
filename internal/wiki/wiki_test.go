package wiki

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/gorewood/wikimark/internal/dialect"
	"github.com/gorewood/wikimark/internal/markdown"
	"github.com/gorewood/wikimark/internal/output"
)

// --- Test Helpers ---

func writePage(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write test page %s: %v", name, err)
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	writePage(t, dir, "home.html", "---\ntitle: Home\ntags: [start, docs]\nmodified: 20240310120000000\ncreated: 20240101090000000\n---\n<p>Welcome to <a href=\"#Guide\">the guide</a>.</p>\n")
	writePage(t, dir, "guide.html", "---\ntitle: Guide\ntags: docs [[how to]]\ncreated: \"20240201090000000\"\n---\n<h2>Steps</h2>\n<ol><li>one</li><li>two</li></ol>\n")
	writePage(t, dir, "notes/Scratch.html", "<p>no front matter</p>")
	writePage(t, dir, "system.html", "---\ntitle: \"$:/config/Theme\"\n---\n<p>x</p>")
	writePage(t, dir, "draft.html", "---\ntitle: \"Draft of 'Home'\"\ndraft.of: Home\n---\n<p>x</p>")
	writePage(t, dir, "broken.html", "---\ntitle: [unclosed\n---\n<p>x</p>")
	writePage(t, dir, "readme.txt", "not a page")
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

// --- Tests ---

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	want := []string{"$:/config/Theme", "Draft of 'Home'", "Guide", "Home", "Scratch"}
	if diff := cmp.Diff(want, s.Titles()); diff != "" {
		t.Errorf("Titles mismatch (-want +got):\n%s", diff)
	}

	stats := s.Stats()
	if stats.Total != 6 || stats.Parsed != 5 || stats.ParseErrors != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestOpenMissingDir(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"))
	if output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("expected user error, got %v", err)
	}
}

func TestPageFields(t *testing.T) {
	s := newTestStore(t)

	home, err := s.Page("Home")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"start", "docs"}, home.Tags()); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
	if got := home.Fields["modified"]; got != "20240310120000000" {
		t.Errorf("unquoted timestamp = %#v, want string", got)
	}
	modified, ok := home.Modified()
	if !ok || !modified.Equal(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("Modified = %v, %v", modified, ok)
	}

	guide, _ := s.Page("Guide")
	if diff := cmp.Diff([]string{"docs", "how to"}, guide.Tags()); diff != "" {
		t.Errorf("wiki tag list mismatch (-want +got):\n%s", diff)
	}
	if _, ok := guide.Time("modified"); ok {
		t.Error("Guide has no modified field")
	}
	if m, _ := guide.Modified(); !m.Equal(time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("Modified should fall back to created, got %v", m)
	}

	scratch, _ := s.Page("Scratch")
	if scratch.Fields["title"] != "Scratch" || scratch.Body != "<p>no front matter</p>" {
		t.Errorf("unexpected page: %+v", scratch)
	}
}

func TestPageNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Page("Missing"); !errors.Is(err, ErrPageNotFound) {
		t.Errorf("expected ErrPageNotFound, got %v", err)
	}
	_, _, ok, err := s.Document("Missing")
	if ok || err != nil {
		t.Errorf("Document(missing) = %v, %v", ok, err)
	}
}

func TestSelect(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "default hides system and drafts", filter: Filter{}, want: []string{"Guide", "Home", "Scratch"}},
		{name: "tag any-of", filter: Filter{Tags: []string{"how to", "start"}}, want: []string{"Guide", "Home"}},
		{name: "since", filter: Filter{Since: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}, want: []string{"Home"}},
		{name: "until", filter: Filter{Until: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}, want: []string{"Guide"}},
		{name: "system included", filter: Filter{IncludeSystem: true, Tags: nil}, want: []string{"$:/config/Theme", "Guide", "Home", "Scratch"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, s.Select(tt.filter)); diff != "" {
				t.Errorf("Select mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSortByModified(t *testing.T) {
	s := newTestStore(t)
	pages := FilterPages(s.Pages(), Filter{})
	SortByModified(pages)
	var titles []string
	for _, p := range pages {
		titles = append(titles, p.Title)
	}
	if diff := cmp.Diff([]string{"Home", "Guide", "Scratch"}, titles); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreRendersPages(t *testing.T) {
	s := newTestStore(t)
	r := markdown.New(markdown.WithDialect(dialect.Logseq))

	got, ok, err := r.RenderPage(s, "Guide")
	if err != nil || !ok {
		t.Fatalf("RenderPage = %v, %v", ok, err)
	}
	want := "title:: Guide\n" +
		"date:: 2024-02-01T09:00:00.000Z\n" +
		"tags:: docs, how to\n" +
		"created:: 2024-02-01T09:00:00.000Z\n" +
		"\n" +
		"## Steps\n" +
		"\n" +
		"1. one\n" +
		"1. two\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RenderPage mismatch (-want +got):\n%s", diff)
	}
}
