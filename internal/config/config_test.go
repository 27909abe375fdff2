package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gorewood/wikimark/internal/dialect"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile_Missing(t *testing.T) {
	t.Setenv("WIKIMARK_STORE", "")
	t.Setenv("WIKIMARK_DIALECT", "")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile_Values(t *testing.T) {
	t.Setenv("WIKIMARK_STORE", "")
	t.Setenv("WIKIMARK_DIALECT", "")

	path := writeConfig(t, "store: ~/wiki\ndialect: obsidian\nextension: .zip\nnote: exported\nfirst_day_of_week: 0\n")
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Store != "~/wiki" || cfg.Extension != ExtZip || cfg.Note != "exported" || cfg.FirstDayOfWeek != 0 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.ParsedDialect() != dialect.Obsidian {
		t.Errorf("dialect = %v", cfg.ParsedDialect())
	}
	if cfg.Locale != "en_US" {
		t.Errorf("unset key lost its default: %q", cfg.Locale)
	}
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	t.Setenv("WIKIMARK_STORE", "/env/wiki")
	t.Setenv("WIKIMARK_DIALECT", "logseq")

	cfg, err := LoadFile(writeConfig(t, "store: /file/wiki\ndialect: obsidian\n"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Store != "/env/wiki" || cfg.ParsedDialect() != dialect.Logseq {
		t.Errorf("environment should win: %+v", cfg)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	t.Setenv("WIKIMARK_STORE", "")
	t.Setenv("WIKIMARK_DIALECT", "")

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"dialect", "dialect: roam\n", "unknown dialect"},
		{"extension", "extension: .txt\n", "unsupported extension"},
		{"weekday", "first_day_of_week: 7\n", "first_day_of_week"},
		{"syntax", "store: [\n", "parsing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}

	_, err := LoadFile(writeConfig(t, "dialect: roam\n"))
	if !errors.Is(err, dialect.ErrUnknownDialect) {
		t.Errorf("expected ErrUnknownDialect, got %v", err)
	}
}

func TestLoad_UsesConfigHome(t *testing.T) {
	t.Setenv("WIKIMARK_STORE", "")
	t.Setenv("WIKIMARK_DIALECT", "")
	dir := t.TempDir()
	t.Setenv("WIKIMARK_CONFIG_HOME", dir)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("locale: de\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Locale != "de" {
		t.Errorf("Locale = %q", cfg.Locale)
	}
}

func TestLoadFile_EnvFile(t *testing.T) {
	t.Setenv("WIKIMARK_STORE", "")
	t.Setenv("WIKIMARK_DIALECT", "")
	path := writeConfig(t, "dialect: plain\nstore: /from/yaml\n")
	envFile := "# wiki location\nexport WIKIMARK_STORE='/from/envfile'\nWIKIMARK_DIALECT=\"logseq\"\nnot a pair\n"
	if err := os.WriteFile(filepath.Join(filepath.Dir(path), EnvFileName), []byte(envFile), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Store != "/from/envfile" || cfg.Dialect != "logseq" {
		t.Errorf("env file not applied: %+v", cfg)
	}

	t.Setenv("WIKIMARK_DIALECT", "obsidian")
	cfg, err = LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Dialect != "obsidian" {
		t.Errorf("environment should win over the env file, got %q", cfg.Dialect)
	}
}

func TestReadEnvFile(t *testing.T) {
	vars, err := ReadEnvFile(filepath.Join(t.TempDir(), "missing"))
	if err != nil || len(vars) != 0 {
		t.Errorf("missing file: %v, %v", vars, err)
	}

	path := filepath.Join(t.TempDir(), EnvFileName)
	if err := os.WriteFile(path, []byte("A=1\n\n=skipped\nB = 'two words'\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	vars, err = ReadEnvFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]string{"A": "1", "B": "two words"}, vars); diff != "" {
		t.Errorf("vars mismatch (-want +got):\n%s", diff)
	}
}
