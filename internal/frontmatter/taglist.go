package frontmatter

import (
	"regexp"
	"slices"
)

var tagListItem = regexp.MustCompile(`(?:^|\s)(?:\[\[(.*?)\]\]|([^\s]+))`)

// ParseTagList splits a wiki tag list such as "alpha [[two words]] beta".
// Bracketed items may contain spaces; duplicates are dropped.
func ParseTagList(s string) []string {
	var out []string
	for _, m := range tagListItem.FindAllStringSubmatch(s, -1) {
		item := m[2]
		if item == "" {
			item = m[1]
		}
		if item == "" || slices.Contains(out, item) {
			continue
		}
		out = append(out, item)
	}
	return out
}
