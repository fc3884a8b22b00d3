// Package bloom provides probabilistic file-title deduplication for batch
// extraction runs.
package bloom

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter wraps a Bloom filter keyed by normalized page titles, so the same
// file requested as "File:Old lighthouse.jpg" and "File:Old_lighthouse.jpg"
// counts once.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected titles
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add marks a title as seen.
func (f *Filter) Add(title string) {
	f.f.AddString(normalizeTitle(title))
}

// Seen returns true if the title might have been added before.
// False positives are possible; false negatives are not.
func (f *Filter) Seen(title string) bool {
	return f.f.TestString(normalizeTitle(title))
}

// EstimatedCount returns the approximate number of titles in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

// normalizeTitle applies MediaWiki title normalization: underscores become
// spaces, surrounding whitespace is dropped, and the first rune is
// uppercased (titles are first-letter case-insensitive).
func normalizeTitle(title string) string {
	t := strings.TrimSpace(strings.ReplaceAll(title, "_", " "))
	r, size := utf8.DecodeRuneInString(t)
	if r == utf8.RuneError && size <= 1 {
		return t
	}
	return string(unicode.ToUpper(r)) + t[size:]
}
