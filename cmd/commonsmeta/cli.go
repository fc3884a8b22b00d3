package main

import (
	"context"
	"io"

	"github.com/wikimeta/commonsmeta"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Fetcher   commonsmeta.RevisionFetcher
	Extractor commonsmeta.Extractor
	Cleaner   commonsmeta.DescriptionCleaner
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log requests and extraction to stderr"`

	Get        GetCmd        `cmd:"" help:"Fetch one file page and print its metadata"`
	Batch      BatchCmd      `cmd:"" help:"Fetch metadata for many file pages"`
	Categories CategoriesCmd `cmd:"" help:"Print only the category links of a file page"`
}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	Title string `arg:"" help:"File page title, e.g. File:Example.jpg"`
	Plain bool   `short:"p" help:"Strip HTML markup from descriptions and author"`
	JSON  bool   `help:"Print the metadata as JSON"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	Titles      []string `arg:"" help:"File page titles"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent fetch limit"`
}

// CategoriesCmd is the "categories" subcommand.
type CategoriesCmd struct {
	Title string `arg:"" help:"File page title"`
}
