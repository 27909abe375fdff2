package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// testPages is the page store most command tests run against.
var testPages = map[string]string{
	"home.html": "---\ntitle: Home\ntags: [start]\ncreated: \"20230510120000000\"\nmodified: \"20240312100000000\"\n---\n" +
		"<p>Welcome to <strong>home</strong>.</p>",
	"beta.html": "---\ntitle: Projects/Beta\ntags: [work]\ncreated: \"20230512120000000\"\n---\n" +
		"<p>See <a href=\"#Home\">Home</a>.</p>",
	"config.html": "---\ntitle: $:/config\n---\n<p>x</p>",
}

// writeStore writes pages into a fresh directory and isolates the test
// from the user's configuration.
func writeStore(t *testing.T, pages map[string]string) string {
	t.Helper()
	t.Setenv("WIKIMARK_CONFIG_HOME", t.TempDir())
	t.Setenv("WIKIMARK_STORE", "")
	t.Setenv("WIKIMARK_DIALECT", "")

	dir := t.TempDir()
	for name, content := range pages {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write page: %v", err)
		}
	}
	return dir
}

// runCmd executes the root command and returns stdout and stderr.
func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
