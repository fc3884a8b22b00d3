// Package commonsmeta extracts editable metadata from Wikimedia Commons
// file description pages: in-source category links, multilingual
// descriptions, and authorship. The data comes from two representations of
// a single page revision — raw wikitext and the preprocessor parse tree —
// and is handed back to the host application as plain values.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., etree/, http/, goquery/).
package commonsmeta
