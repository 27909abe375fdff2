// Package frontmatter turns a page's field map into a dialect-specific
// metadata header: a --- delimited YAML block, or Logseq key:: value lines.
package frontmatter

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Fields is a page's metadata: field name to string, time.Time or []string
// (numbers and booleans are accepted too). It is read-only during rendering.
type Fields map[string]any

// String returns a field as text, or "" when it is absent or nil.
func (f Fields) String(key string) string {
	switch v := f[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Strings returns a list field. A string value is read as a wiki tag list.
func (f Fields) Strings(key string) []string {
	switch v := f[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		return ParseTagList(v)
	default:
		return nil
	}
}

// Clone returns a shallow copy.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Style is the quoting applied to string values.
type Style int

// Quoting styles.
const (
	// SingleQuoted wraps in '...' with inner quotes doubled.
	SingleQuoted Style = iota
	// DoubleQuoted wraps in "..." with backslashes and quotes escaped.
	DoubleQuoted
	// Bare leaves the string unquoted.
	Bare
)

// ErrInvalidDate is returned for date values that cannot be normalized.
var ErrInvalidDate = errors.New("invalid date")

// hostTimestamp matches the wiki's YYYYMMDDhhmmssmmm timestamps.
var hostTimestamp = regexp.MustCompile(`^\d{17}$`)

// isoLayout matches JavaScript's Date.toISOString.
const isoLayout = "2006-01-02T15:04:05.000Z"

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// ParseHostTimestamp parses a 17-digit wiki timestamp (UTC).
func ParseHostTimestamp(s string) (time.Time, error) {
	if !hostTimestamp.MatchString(s) {
		return time.Time{}, fmt.Errorf("%w: %q is not a 17-digit timestamp", ErrInvalidDate, s)
	}
	t, err := time.Parse("20060102150405", s[:14])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrInvalidDate, err)
	}
	ms, _ := strconv.Atoi(s[14:])
	return t.Add(time.Duration(ms) * time.Millisecond), nil
}

// IsDateLike reports whether v is rendered as a date.
func IsDateLike(v any) bool {
	switch x := v.(type) {
	case time.Time, *time.Time:
		return true
	case string:
		return hostTimestamp.MatchString(x)
	default:
		return false
	}
}

// FormatDate normalizes a date value to an ISO-8601 UTC string. Strings in
// the host format are parsed exactly; other strings go through dateparse.
func FormatDate(v any) (string, error) {
	var t time.Time
	switch x := v.(type) {
	case time.Time:
		t = x
	case *time.Time:
		if x == nil {
			return "", fmt.Errorf("%w: nil time", ErrInvalidDate)
		}
		t = *x
	case string:
		s := strings.TrimSpace(x)
		if hostTimestamp.MatchString(s) {
			parsed, err := ParseHostTimestamp(s)
			if err != nil {
				return "", err
			}
			t = parsed
			break
		}
		parsed, err := dateparse.ParseIn(s, time.UTC)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidDate, err)
		}
		t = parsed
	default:
		return "", fmt.Errorf("%w: unsupported type %T", ErrInvalidDate, v)
	}
	if t.IsZero() {
		return "", fmt.Errorf("%w: zero time", ErrInvalidDate)
	}
	return t.UTC().Format(isoLayout), nil
}

// FormatValue renders one field value: dates as ISO-8601, numeric values as
// bare numbers, lists as [a, b] (Logseq: a, b) and everything else as a
// string quoted in the given style.
func FormatValue(v any, style Style) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case time.Time, *time.Time:
		return FormatDate(x)
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float64:
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return Quote(fmt.Sprint(x), style), nil
		}
		return formatNumber(x), nil
	case []string:
		return formatList(x, style), nil
	case []any:
		return formatList(Fields{"v": x}.Strings("v"), style), nil
	case string:
		return formatString(x, style)
	default:
		return formatString(fmt.Sprint(x), style)
	}
}

func formatString(s string, style Style) (string, error) {
	if IsDateLike(s) {
		return FormatDate(s)
	}
	if n, ok := parseNumber(s); ok {
		return formatNumber(n), nil
	}
	return Quote(s, style), nil
}

// parseNumber accepts finite decimal (or hex float) numbers.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

func formatNumber(n float64) string {
	if math.Abs(n) >= 1e21 {
		return strconv.FormatFloat(n, 'e', -1, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func formatList(items []string, style Style) string {
	quoted := make([]string, 0, len(items))
	for _, item := range items {
		quoted = append(quoted, Quote(item, style))
	}
	if style == Bare {
		return strings.Join(quoted, ", ")
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// Quote strips line breaks from s and quotes it in the given style.
func Quote(s string, style Style) string {
	s = lineBreaks.Replace(s)
	switch style {
	case Bare:
		return s
	case DoubleQuoted:
		return doubleQuote(s)
	default:
		if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
			return doubleQuote(s)
		}
		return "'" + strings.ReplaceAll(s, "'", "''") + "'"
	}
}

func doubleQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
