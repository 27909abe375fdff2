package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Printer writes command results either as styled text or as JSON.
type Printer struct {
	w      io.Writer
	errW   io.Writer
	json   bool
	isTTY  bool
	styles *Styles
}

// Styles holds lipgloss styles for human-readable output.
type Styles struct {
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Bold    lipgloss.Style
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Key     lipgloss.Style
	Border  lipgloss.Color
}

func newStyles(color bool) *Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return &Styles{
			Error: plain, Success: plain, Warning: plain, Bold: plain,
			Title: plain, Muted: plain, Key: plain, Border: lipgloss.Color(""),
		}
	}
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Bold:    lipgloss.NewStyle().Bold(true),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Muted:   lipgloss.NewStyle().Faint(true),
		Key:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Border:  lipgloss.Color("8"),
	}
}

// NewPrinter creates a Printer. jsonMode selects JSON output; isTTY enables
// colors in human output.
func NewPrinter(writer io.Writer, jsonMode bool, isTTY bool) *Printer {
	return &Printer{
		w:      writer,
		errW:   writer,
		json:   jsonMode,
		isTTY:  isTTY,
		styles: newStyles(isTTY),
	}
}

// WithStderr sets a separate writer for errors and warnings in human mode.
// In JSON mode, errors still go to the main writer.
func (p *Printer) WithStderr(w io.Writer) *Printer {
	p.errW = w
	return p
}

// IsJSON returns true if the printer is in JSON mode.
func (p *Printer) IsJSON() bool {
	return p.json
}

// Writer returns the main output writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Success outputs a result. In human mode only the "message" key is shown
// when present; otherwise every key is listed.
func (p *Printer) Success(data map[string]any) error {
	if p.json {
		return p.WriteJSON(data)
	}
	if msg, ok := data["message"].(string); ok {
		mustWrite(fmt.Fprintln(p.w, p.styles.Success.Render(msg)))
		return nil
	}
	for key, val := range data {
		mustWrite(fmt.Fprintf(p.w, "%s: %v\n", p.styles.Bold.Render(key), val))
	}
	return nil
}

// Error outputs an error: {"error": "...", "code": N} on the main writer in
// JSON mode, a styled line on the error writer otherwise.
func (p *Printer) Error(err error) {
	exitErr := &ExitError{}
	if !errors.As(err, &exitErr) {
		exitErr = &ExitError{Code: ExitUserError, Message: err.Error()}
	}
	if p.json {
		mustWrite(p.w.Write(ErrorJSON(exitErr.Message, exitErr.Code)))
		mustWrite(fmt.Fprintln(p.w))
		return
	}
	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.Error.Render("Error"), exitErr.Message))
}

// Warn outputs a warning.
func (p *Printer) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.json {
		_ = p.WriteJSON(map[string]any{"warning": msg})
		return
	}
	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.Warning.Render("Warning"), msg))
}

// Stderr writes a status hint to the error writer. No-op in JSON mode.
func (p *Printer) Stderr(format string, args ...any) {
	if p.json {
		return
	}
	mustWrite(fmt.Fprintf(p.errW, format, args...))
}

// Print formats and writes to the output without a newline.
func (p *Printer) Print(format string, args ...any) {
	mustWrite(fmt.Fprintf(p.w, format, args...))
}

// Println writes a line to the output.
func (p *Printer) Println(args ...any) {
	mustWrite(fmt.Fprintln(p.w, args...))
}

// WriteJSON encodes data as indented JSON.
func (p *Printer) WriteJSON(data any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorJSON returns {"error": message, "code": code}.
func ErrorJSON(message string, code int) []byte {
	result, _ := json.Marshal(map[string]any{
		"error": message,
		"code":  code,
	})
	return result
}

// mustWrite panics if a write to the terminal or a buffer fails.
func mustWrite(_ int, err error) {
	if err != nil {
		panic(fmt.Sprintf("write failed: %v", err))
	}
}

// Table renders rows under bold headers. Columns are padded to their widest
// cell, measured in terminal cells so wide characters line up.
func (p *Printer) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(cell))
			}
		}
	}

	p.tableRow(headers, widths, p.styles.Bold)
	for _, row := range rows {
		p.tableRow(row, widths, lipgloss.NewStyle())
	}
}

func (p *Printer) tableRow(cells []string, widths []int, style lipgloss.Style) {
	var b strings.Builder
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		if i > 0 {
			b.WriteString("  ")
		}
		if i == len(cells)-1 || i == len(widths)-1 {
			b.WriteString(style.Render(cell))
			continue
		}
		b.WriteString(style.Render(runewidth.FillRight(cell, widths[i])))
	}
	mustWrite(fmt.Fprintln(p.w, b.String()))
}

// Box renders content in a rounded border on a terminal and as plain text
// otherwise.
func (p *Printer) Box(title string, content string) {
	if !p.isTTY {
		if title != "" {
			mustWrite(fmt.Fprintln(p.w, title))
			mustWrite(fmt.Fprintln(p.w))
		}
		mustWrite(fmt.Fprintln(p.w, content))
		return
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.styles.Border).
		Padding(0, 1)
	if title != "" {
		content = p.styles.Title.Render(title) + "\n\n" + content
	}
	mustWrite(fmt.Fprintln(p.w, style.Render(content)))
}

// Section renders a header with an underline, preceded by a blank line.
func (p *Printer) Section(title string) {
	mustWrite(fmt.Fprintln(p.w))
	mustWrite(fmt.Fprintln(p.w, p.styles.Title.Render(title)))
	mustWrite(fmt.Fprintln(p.w, p.styles.Muted.Render(strings.Repeat("─", runewidth.StringWidth(title)))))
}

// KeyValue renders "Key: Value".
func (p *Printer) KeyValue(key string, value string) {
	mustWrite(fmt.Fprintf(p.w, "%s %s\n", p.styles.Key.Render(key+":"), value))
}
