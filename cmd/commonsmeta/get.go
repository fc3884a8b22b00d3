package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/wikimeta/commonsmeta"
)

// Run executes the get command.
func (c *GetCmd) Run(deps *Dependencies) error {
	rev, err := deps.Fetcher.FetchRevision(deps.Ctx, c.Title)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", commonsmeta.ErrorMessage(err))
		return err
	}

	meta, err := deps.Extractor.Extract(rev)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", commonsmeta.ErrorMessage(err))
		return err
	}

	if c.Plain {
		if meta, err = c.clean(deps, meta); err != nil {
			return err
		}
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}

	fmt.Fprintln(deps.Stdout, rev.Title)

	fmt.Fprintf(deps.Stdout, "Categories (%d):\n", len(meta.Categories))
	for _, cat := range meta.Categories {
		fmt.Fprintf(deps.Stdout, "  %s\n", cat)
	}

	fmt.Fprintf(deps.Stdout, "Descriptions (%d):\n", len(meta.Descriptions))
	for _, lang := range sortedLanguages(meta.Descriptions) {
		fmt.Fprintf(deps.Stdout, "  [%s] %s\n", lang, meta.Descriptions[lang])
	}

	if meta.Author != "" {
		fmt.Fprintf(deps.Stdout, "Author: %s\n", meta.Author)
	}

	return nil
}

// clean returns a copy of meta with HTML markup stripped from the
// descriptions and author.
func (c *GetCmd) clean(deps *Dependencies, meta *commonsmeta.Metadata) (*commonsmeta.Metadata, error) {
	cleaned := &commonsmeta.Metadata{
		Categories:   meta.Categories,
		Descriptions: make(map[string]string, len(meta.Descriptions)),
	}

	for lang, text := range meta.Descriptions {
		s, err := deps.Cleaner.Clean(text)
		if err != nil {
			return nil, err
		}
		cleaned.Descriptions[lang] = s
	}

	author, err := deps.Cleaner.Clean(meta.Author)
	if err != nil {
		return nil, err
	}
	cleaned.Author = author

	return cleaned, nil
}

// sortedLanguages lists the map's language codes with "default" first and
// the rest alphabetical, so output is stable across runs.
func sortedLanguages(descriptions map[string]string) []string {
	langs := make([]string, 0, len(descriptions))
	for lang := range descriptions {
		if lang != commonsmeta.DefaultLanguage {
			langs = append(langs, lang)
		}
	}
	sort.Strings(langs)

	if _, ok := descriptions[commonsmeta.DefaultLanguage]; ok {
		langs = append([]string{commonsmeta.DefaultLanguage}, langs...)
	}
	return langs
}
