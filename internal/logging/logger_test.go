package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestLoggerHelpers(t *testing.T) {
	tests := []struct {
		name string
		log  func(l *Logger)
		want []string
	}{
		{
			name: "page missing",
			log:  func(l *Logger) { l.PageMissing("Foo") },
			want: []string{"WARN", "page not found", "title=Foo"},
		},
		{
			name: "page failed",
			log:  func(l *Logger) { l.PageFailed("Bar", errors.New("boom")) },
			want: []string{"ERRO", "page render failed", "title=Bar", "error=boom"},
		},
		{
			name: "unsupported input",
			log:  func(l *Logger) { l.UnsupportedInput("radio") },
			want: []string{"unsupported input node type", "type=radio"},
		},
		{
			name: "invalid date",
			log:  func(l *Logger) { l.InvalidDate("modified", "yesterday-ish", errors.New("bad")) },
			want: []string{"invalid date value", "field=modified"},
		},
		{
			name: "export completed",
			log:  func(l *Logger) { l.ExportCompleted(3, 1, 1500*time.Microsecond) },
			want: []string{"export completed", "rendered=3", "skipped=1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(New(&buf))
			out := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("log output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithLevel(&buf, log.ErrorLevel)
	l.PageMissing("Quiet")
	if buf.Len() != 0 {
		t.Errorf("warnings should be filtered at error level, got %q", buf.String())
	}

	l.TableDropped("no tbody")
	if buf.Len() != 0 {
		t.Errorf("debug output should be filtered, got %q", buf.String())
	}
}

func TestOrDiscard(t *testing.T) {
	if OrDiscard(nil) == nil {
		t.Fatal("OrDiscard(nil) must return a usable logger")
	}
	l := Discard()
	if OrDiscard(l) != l {
		t.Error("OrDiscard should return the given logger")
	}
}
