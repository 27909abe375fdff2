package dialect

import "strings"

// illegalPathChars are percent-encoded in every dialect.
var illegalPathChars = strings.NewReplacer(
	"<", "%3C",
	">", "%3E",
	":", "%3A",
	"*", "%2A",
	"?", "%3F",
	"|", "%7C",
	`\`, "%5C",
	`"`, "%22",
	"#", "%23",
)

// logseqNamespace is the escaped form of the "/" namespace separator in
// Logseq's single-directory layout.
const logseqNamespace = "___"

// Filename derives a file name (without extension) for a page title.
//
// Logseq keeps every page in one directory: a literal "___" in the title is
// escaped first, then "/" becomes "___", and a trailing "." is replaced
// with "%2E". Obsidian and plain keep "/" as a directory separator. In all
// dialects a leading "." is escaped so the file is not hidden.
func (d Dialect) Filename(title string) string {
	name := title
	if d == Logseq {
		name = strings.ReplaceAll(name, logseqNamespace, "%5F%5F%5F")
	}
	name = illegalPathChars.Replace(name)
	if d == Logseq {
		name = strings.ReplaceAll(name, "/", logseqNamespace)
		if strings.HasSuffix(name, ".") {
			name = strings.TrimSuffix(name, ".") + "%2E"
		}
	}
	if strings.HasPrefix(name, ".") {
		name = "%2E" + name[1:]
	}
	return name
}
