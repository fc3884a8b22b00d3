package commonsmeta

import (
	"context"
	"time"
)

// DefaultLanguage is the pseudo language code used for description text
// that appears outside any language-wrapper template.
const DefaultLanguage = "default"

// Revision is a single page revision of a file description page, in the
// two representations the extractor consumes: the raw wikitext source and
// the XML serialization of the preprocessor parse tree.
type Revision struct {
	Title     string
	Wikitext  string
	ParseTree string
}

// Validate returns an error if the revision cannot be extracted from.
func (r *Revision) Validate() error {
	if r.Title == "" {
		return Errorf(EINVALID, "revision title required")
	}
	if r.ParseTree == "" {
		return Errorf(EINVALID, "revision parse tree required")
	}
	return nil
}

// Metadata holds the editable metadata extracted from a file description
// page. It is built fresh per extraction and not mutated afterwards.
type Metadata struct {
	// Categories are the category links present in the page source, in
	// source order, duplicates preserved. Only in-source links are listed
	// so they remain editable; categories added by templates are not.
	Categories []string `json:"categories"`

	// Descriptions maps language code to description text. Untagged text
	// is stored under DefaultLanguage. May be empty.
	Descriptions map[string]string `json:"descriptions"`

	// Author is the flattened text of the information template's author
	// parameter. Empty when the page has no author parameter.
	Author string `json:"author,omitempty"`
}

// Description returns the description for the given language, falling back
// to the default text and then to any remaining entry.
func (m *Metadata) Description(lang string) string {
	if s, ok := m.Descriptions[lang]; ok {
		return s
	}
	if s, ok := m.Descriptions[DefaultLanguage]; ok {
		return s
	}
	for _, s := range m.Descriptions {
		return s
	}
	return ""
}

// Page is the outcome of fetching and extracting a single file page.
type Page struct {
	Title       string
	Metadata    *Metadata
	ContentHash string
	FetchedAt   time.Time
}

// RevisionFetcher retrieves the latest revision of a file page.
// Implementations hide transport, retry, and rate limiting.
type RevisionFetcher interface {
	// FetchRevision returns the latest revision of the page with the given
	// title (including the "File:" prefix).
	// Returns ENOTFOUND if the page does not exist.
	FetchRevision(ctx context.Context, title string) (*Revision, error)
}

// Extractor extracts metadata from an already-fetched revision. It is a
// pure computation over in-memory data and safe for concurrent use.
type Extractor interface {
	// Extract returns the metadata for the revision. Absent templates or
	// parameters yield empty fields; structurally broken template markup
	// returns EMALFORMED.
	Extract(rev *Revision) (*Metadata, error)
}

// DescriptionCleaner reduces a description value to plain text.
// Description values on Commons frequently embed HTML markup.
type DescriptionCleaner interface {
	Clean(fragment string) (string, error)
}

// Limiter paces outgoing API requests.
type Limiter interface {
	// Wait blocks until the rate limit allows another request.
	// Returns an error if the context is canceled before then.
	Wait(ctx context.Context) error
}
