// Package etree implements metadata extraction over the MediaWiki
// preprocessor parse tree, parsed from its XML serialization with
// beevik/etree.
package etree

import (
	"github.com/beevik/etree"
	"github.com/wikimeta/commonsmeta"
)

// Template and parameter names carrying the metadata on Commons file pages.
const (
	informationTemplate  = "information"
	descriptionParameter = "description"
	authorParameter      = "author"
)

// Ensure Extractor implements commonsmeta.Extractor at compile time.
var _ commonsmeta.Extractor = (*Extractor)(nil)

// Extractor pulls categories, multilingual descriptions, and authorship out
// of a fetched revision. It holds no state and is safe for concurrent use.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the metadata for the revision. Categories come from a
// scan of the raw wikitext; description and author come from the
// "information" template in the parse tree. A missing template or
// parameter leaves the corresponding field empty. Broken template
// structure (a template without a title, a matched parameter without a
// value) returns EMALFORMED.
func (e *Extractor) Extract(rev *commonsmeta.Revision) (*commonsmeta.Metadata, error) {
	if rev == nil {
		return nil, commonsmeta.Errorf(commonsmeta.EINVALID, "revision required")
	}
	if err := rev.Validate(); err != nil {
		return nil, err
	}

	root, err := Parse(rev.ParseTree)
	if err != nil {
		return nil, err
	}

	meta := &commonsmeta.Metadata{
		Categories:   commonsmeta.ExtractCategories(rev.Wikitext),
		Descriptions: map[string]string{},
	}

	tpl, err := FindTemplate(root, informationTemplate)
	if commonsmeta.ErrorCode(err) == commonsmeta.ENOTFOUND {
		// No information template means no description or author, which is
		// common for older uploads and not an error.
		return meta, nil
	} else if err != nil {
		return nil, err
	}

	value, err := FindParameterByName(tpl, descriptionParameter)
	if err == nil {
		texts, err := MultilingualText(value)
		if err != nil {
			return nil, err
		}
		meta.Descriptions = texts
	} else if commonsmeta.ErrorCode(err) != commonsmeta.ENOTFOUND {
		return nil, err
	}

	value, err = FindParameterByName(tpl, authorParameter)
	if err == nil {
		meta.Author = FlattenText(value)
	} else if commonsmeta.ErrorCode(err) != commonsmeta.ENOTFOUND {
		return nil, err
	}

	return meta, nil
}

// Parse reads the XML serialization of a preprocessor parse tree and
// returns its root element. Returns EINVALID for unparseable input; no
// partial-tree recovery is attempted.
func Parse(parseTree string) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(parseTree); err != nil {
		return nil, commonsmeta.Errorf(commonsmeta.EINVALID, "parse tree XML: %s", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, commonsmeta.Errorf(commonsmeta.EINVALID, "parse tree has no root element")
	}
	return root, nil
}
