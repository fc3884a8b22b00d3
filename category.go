package commonsmeta

import (
	"regexp"
	"strings"
)

// categoryPattern matches [[Category:...]] links in wikitext. The word
// "Category" is matched case-insensitively and may be padded with
// whitespace; the capture runs to the closing brackets.
var categoryPattern = regexp.MustCompile(`(?i)\[\[\s*Category\s*:([^\]]*)\]\]`)

// ExtractCategories scans raw wikitext for category links and returns the
// category names in source order. Duplicates are preserved and names are
// not validated; the captured text is only trimmed.
//
// We could fetch all category links from the API, but we only want the
// ones directly in the page source so they're editable.
func ExtractCategories(source string) []string {
	var categories []string
	for _, m := range categoryPattern.FindAllStringSubmatch(source, -1) {
		categories = append(categories, strings.TrimSpace(m[1]))
	}
	return categories
}
