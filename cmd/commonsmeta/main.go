package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/wikimeta/commonsmeta"
	"github.com/wikimeta/commonsmeta/etree"
	"github.com/wikimeta/commonsmeta/goquery"
	cmhttp "github.com/wikimeta/commonsmeta/http"
	cmslog "github.com/wikimeta/commonsmeta/slog"
)

// requestsPerSecond paces API requests per Wikimedia etiquette.
const requestsPerSecond = 2.0

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// API endpoint and User-Agent. Set before calling Run().
	Endpoint  string
	UserAgent string
}

// NewMain returns a new instance of Main configured from the environment.
// A .env file in the working directory is honored when present.
func NewMain() *Main {
	_ = godotenv.Load()

	m := &Main{Endpoint: cmhttp.DefaultEndpoint}
	if v := os.Getenv("COMMONSMETA_API"); v != "" {
		m.Endpoint = v
	}
	m.UserAgent = os.Getenv("COMMONSMETA_UA")
	return m
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("commonsmeta"),
		kong.Description("Extract categories, descriptions, and authorship from Commons file pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'commonsmeta --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	opts := []cmhttp.Option{
		cmhttp.WithEndpoint(m.Endpoint),
		cmhttp.WithLimiter(cmhttp.NewLimiter(requestsPerSecond)),
	}
	if m.UserAgent != "" {
		opts = append(opts, cmhttp.WithUserAgent(m.UserAgent))
	}

	var fetcher commonsmeta.RevisionFetcher = cmhttp.NewFetcher(opts...)
	var extractor commonsmeta.Extractor = etree.NewExtractor()

	if cli.Verbose {
		logger := slog.New(slog.NewTextHandler(stderr, nil))
		fetcher = cmslog.NewLoggingFetcher(fetcher, logger)
		extractor = cmslog.NewLoggingExtractor(extractor, logger)
	}

	deps.Fetcher = fetcher
	deps.Extractor = extractor
	deps.Cleaner = goquery.NewCleaner()

	return kongCtx.Run(deps)
}
