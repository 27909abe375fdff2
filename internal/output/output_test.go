package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestPrinter_JSON_Success(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	if err := printer.Success(map[string]any{"pages": 3, "out": "notes.zip"}); err != nil {
		t.Fatalf("Success() error = %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}
	if result["out"] != "notes.zip" || result["pages"] != float64(3) {
		t.Errorf("unexpected JSON: %v", result)
	}
}

func TestPrinter_JSON_Error(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	printer.Error(NewUserError(`page not found: "Missing"`))

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}
	if result["error"] != `page not found: "Missing"` {
		t.Errorf("error = %v", result["error"])
	}
	if code, ok := result["code"].(float64); !ok || int(code) != ExitUserError {
		t.Errorf("code = %v, want %d", result["code"], ExitUserError)
	}
}

func TestPrinter_Human(t *testing.T) {
	var out, errOut bytes.Buffer
	printer := NewPrinter(&out, false, false).WithStderr(&errOut)

	if err := printer.Success(map[string]any{"message": "Exported 2 pages"}); err != nil {
		t.Fatal(err)
	}
	printer.Error(NewConflictError("output file already exists: a.md"))
	printer.Warn("skipped %d pages", 1)
	printer.Stderr("wrote %s\n", "a.md")

	if out.String() != "Exported 2 pages\n" {
		t.Errorf("stdout = %q", out.String())
	}
	for _, want := range []string{"Error: output file already exists: a.md", "Warning: skipped 1 pages", "wrote a.md"} {
		if !strings.Contains(errOut.String(), want) {
			t.Errorf("stderr missing %q: %q", want, errOut.String())
		}
	}
}

func TestPrinter_StderrSilentInJSON(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, true, false).Stderr("hint")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestPrinter_WriteJSONKeepsMarkup(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPrinter(&buf, true, false).WriteJSON(map[string]string{"markdown": "<mark>x</mark> & y"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<mark>x</mark> & y") {
		t.Errorf("markup was escaped: %s", buf.String())
	}
}

func TestPrinter_Table(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)
	printer.Table([]string{"TITLE", "FILE"}, [][]string{
		{"日本", "日本.md"},
		{"Alpha", "Alpha.md"},
	})
	want := "TITLE  FILE\n日本   日本.md\nAlpha  Alpha.md\n"
	if buf.String() != want {
		t.Errorf("table = %q, want %q", buf.String(), want)
	}
}

func TestPrinter_SectionAndKeyValue(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)
	printer.Section("Store")
	printer.KeyValue("Pages", "5")
	printer.Box("", "done")

	want := "\nStore\n─────\nPages: 5\ndone\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestErrorJSON_Format(t *testing.T) {
	var parsed struct {
		Error string `json:"error"`
		Code  int    `json:"code"`
	}
	if err := json.Unmarshal(ErrorJSON("test error", ExitSystemError), &parsed); err != nil {
		t.Fatalf("Failed to parse ErrorJSON output: %v", err)
	}
	if parsed.Error != "test error" || parsed.Code != ExitSystemError {
		t.Errorf("parsed = %+v", parsed)
	}
}

func TestResolveColorMode(t *testing.T) {
	tests := []struct {
		name      string
		colorMode string
		isTTY     bool
		want      bool
	}{
		{name: "never disables on TTY", colorMode: "never", isTTY: true, want: false},
		{name: "always enables on non-TTY", colorMode: "always", isTTY: false, want: true},
		{name: "auto uses TTY true", colorMode: "auto", isTTY: true, want: true},
		{name: "auto uses TTY false", colorMode: "auto", isTTY: false, want: false},
		{name: "unknown value defaults to auto", colorMode: "bogus", isTTY: true, want: true},
		{name: "case insensitive", colorMode: "NEVER", isTTY: true, want: false},
	}
	t.Setenv("NO_COLOR", "")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveColorMode(tt.colorMode, tt.isTTY); got != tt.want {
				t.Errorf("ResolveColorMode(%q, %v) = %v, want %v", tt.colorMode, tt.isTTY, got, tt.want)
			}
		})
	}
}

func TestResolveColorMode_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if ResolveColorMode(ColorAuto, true) {
		t.Error("NO_COLOR should disable auto color on a TTY")
	}
	if !ResolveColorMode(ColorAlways, false) {
		t.Error("--color always should win over NO_COLOR")
	}
}

func TestStylesFollowColor(t *testing.T) {
	empty := lipgloss.NewStyle()
	if newStyles(false).Error.GetForeground() != empty.GetForeground() {
		t.Error("Error style should have no foreground without color")
	}
	if newStyles(true).Error.GetForeground() == empty.GetForeground() {
		t.Error("Error style should have a foreground with color")
	}
}

func TestIsTTY_Buffer(t *testing.T) {
	var buf bytes.Buffer
	if IsTTY(&buf) {
		t.Error("IsTTY(buffer) should return false")
	}
}
