// Package goquery reduces HTML-bearing description values to plain text.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/wikimeta/commonsmeta"
)

// Ensure Cleaner implements commonsmeta.DescriptionCleaner at compile time.
var _ commonsmeta.DescriptionCleaner = (*Cleaner)(nil)

// Cleaner strips HTML markup from description text. Commons descriptions
// routinely embed tags like <a>, <i>, and <br>; the extractor passes them
// through untouched and this cleaner produces a display form.
type Cleaner struct{}

// NewCleaner creates a new Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean returns the fragment's text content with tags removed and runs of
// whitespace collapsed to single spaces. Text without markup passes
// through (modulo whitespace collapsing).
func (c *Cleaner) Clean(fragment string) (string, error) {
	if strings.TrimSpace(fragment) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", commonsmeta.Errorf(commonsmeta.EINVALID, "description fragment: %s", err)
	}

	return strings.Join(strings.Fields(doc.Text()), " "), nil
}
