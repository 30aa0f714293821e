package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/belo-research/amazon-product-api/collect"
	"github.com/belo-research/amazon-product-api/extract"
	"github.com/belo-research/amazon-product-api/geo"
	"github.com/belo-research/amazon-product-api/htmltomarkdown"
	amznhttp "github.com/belo-research/amazon-product-api/http"
	amznslog "github.com/belo-research/amazon-product-api/slog"
	"github.com/belo-research/amazon-product-api/sqlite"
)

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
	// Database path for the page cache. Set before calling Run().
	DBPath string

	// SQLite database backing the document cache.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
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
		kong.Name("amazon-product-api"),
		kong.Description("Scrape product listings, reviews and detail pages from the Amazon marketplace."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'amazon-product-api --help' to see available commands")
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

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set AMAZON_API_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	deps.DB = m.DB
	deps.Cache = sqlite.NewDocumentCache(m.DB)

	profile := geo.NewUSProfile()

	fetcher := amznslog.NewLoggingFetcher(
		sqlite.NewCachingFetcher(
			amznhttp.NewFetcher(profile, amznhttp.WithRateLimit(cli.Rate, 1)),
			deps.Cache,
			cli.CacheTTL,
		),
		logger,
	)
	defer fetcher.Close()

	engine := extract.NewEngine(profile)
	engine.Converter = htmltomarkdown.NewConverter()

	orch := collect.NewOrchestrator(fetcher, amznslog.NewLoggingEngine(engine, logger))
	orch.Logger = logger
	orch.Metrics = collect.NewMetrics()
	deps.Orchestrator = orch

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("AMAZON_API_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "amazon-product-api.db"
	}
	dir := filepath.Join(home, ".amazon-product-api")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "amazon-product-api.db")
}
