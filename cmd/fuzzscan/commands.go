package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/poiesic/fuzzscan"
	"github.com/poiesic/fuzzscan/benchmark"
	"github.com/poiesic/fuzzscan/config"
	"github.com/poiesic/fuzzscan/core"
	"github.com/poiesic/fuzzscan/distance"
	"github.com/poiesic/fuzzscan/ingestion"
	"github.com/poiesic/fuzzscan/search"
	"github.com/urfave/cli/v2"
)

var errNoCorpus = errors.New("no corpus: pass --file or --db, or set corpus.path or corpus.db_path")

func loadCommand(c *cli.Context) error {
	ctx := context.Background()
	cfg := loadedConfig(c)
	overrideCorpus(c, cfg)
	if c.IsSet("batch-size") {
		cfg.Ingest.BatchSize = c.Int("batch-size")
	}
	if c.IsSet("pool-size") {
		cfg.Ingest.PoolSize = c.Int("pool-size")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Corpus.Path == "" {
		return fmt.Errorf("corpus file is required")
	}
	if cfg.Corpus.DBPath == "" {
		return fmt.Errorf("database path is required")
	}

	lines, err := readCorpusFile(cfg)
	if err != nil {
		return fmt.Errorf("failed to read corpus: %w", err)
	}

	db, err := fuzzscan.NewDatabase(cfg.Corpus.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	opts := []ingestion.Option{
		ingestion.WithBatchSize(cfg.Ingest.BatchSize),
		ingestion.WithRetries(cfg.Ingest.MaxRetries, cfg.RetryDelay()),
	}
	if cfg.Ingest.PoolSize > 0 {
		opts = append(opts, ingestion.WithPoolSize(cfg.Ingest.PoolSize))
	}
	if !c.Bool("quiet") {
		opts = append(opts, ingestion.WithProgress(c.App.ErrWriter))
	}
	pipeline, err := db.NewIngestionPipeline(opts...)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	if c.Bool("reset") {
		if err := pipeline.Reset(ctx); err != nil {
			return fmt.Errorf("failed to reset database: %w", err)
		}
	}

	stats, err := pipeline.Ingest(ctx, lines)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Read %s lines: %s stored, %s already loaded, %s duplicates\n",
		humanize.Comma(int64(stats.Read)),
		humanize.Comma(int64(stats.Stored)),
		humanize.Comma(int64(stats.Skipped)),
		humanize.Comma(int64(stats.Duplicates)))
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()
	cfg := loadedConfig(c)
	overrideCorpus(c, cfg)
	preferDatabase(c, cfg)
	if c.IsSet("metric") {
		cfg.Search.Metric = c.String("metric")
	}
	if c.IsSet("threshold") {
		cfg.Search.Threshold = c.Int("threshold")
		cfg.Search.ExpandedThreshold = max(cfg.Search.ExpandedThreshold, cfg.Search.Threshold)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	term, err := termArg(c)
	if err != nil {
		return err
	}
	metric, err := cfg.SearchMetric()
	if err != nil {
		return err
	}

	if cfg.Corpus.Path == "" && cfg.Corpus.DBPath != "" {
		return searchDatabase(ctx, c, cfg, term, metric)
	}

	corpus, err := openCorpus(ctx, cfg)
	if err != nil {
		return err
	}

	engine := distance.NewEngine(distance.WithMaxScratchCells(cfg.Search.MaxScratchCells))
	defer engine.Close()
	scanner, err := search.NewScanner(engine, search.WithMaxMatches(cfg.Search.MaxMatches))
	if err != nil {
		return err
	}

	result, err := scanner.Scan(corpus, term, cfg.Search.Threshold, metric)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	writeSummary(c, result, len(corpus))
	return benchmark.WriteMatches(c.App.Writer, result.Indices, corpus, c.Int("show"))
}

// searchDatabase scans the corpus stored at cfg.Corpus.DBPath and prints the
// matching records.
func searchDatabase(ctx context.Context, c *cli.Context, cfg *config.Config, term string, metric distance.Metric) error {
	db, err := fuzzscan.NewDatabase(cfg.Corpus.DBPath,
		fuzzscan.WithMaxScratchCells(cfg.Search.MaxScratchCells))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	total, err := db.RecordRepository().Count(ctx)
	if err != nil {
		return err
	}

	searcher, err := db.NewSearcher(search.WithMaxMatches(cfg.Search.MaxMatches))
	if err != nil {
		return err
	}
	defer searcher.Close()
	result, err := searcher.Search(ctx, term, cfg.Search.Threshold, metric)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	writeSummary(c, result, total)

	show := min(c.Int("show"), result.Count())
	if show <= 0 {
		return nil
	}
	shown := *result
	shown.Indices = result.Indices[:show]
	records, err := searcher.Records(ctx, &shown)
	if err != nil {
		return err
	}
	for _, record := range records {
		fmt.Fprintf(c.App.Writer, "  %d: %s\n", record.Index, record.Contents)
	}
	if rest := result.Count() - show; rest > 0 {
		fmt.Fprintf(c.App.Writer, "  ... and %s more\n", humanize.Comma(int64(rest)))
	}
	return nil
}

func writeSummary(c *cli.Context, result *core.MatchResultSet, total int) {
	fmt.Fprintf(c.App.Writer, "Found %s of %s records matching %q (%s",
		humanize.Comma(int64(result.Count())), humanize.Comma(int64(total)), result.Term, result.Metric)
	if result.Metric != distance.BruteForce.String() {
		fmt.Fprintf(c.App.Writer, ", threshold %d", result.Threshold)
	}
	fmt.Fprintln(c.App.Writer, ")")
}

func benchCommand(c *cli.Context) error {
	ctx := context.Background()
	cfg := loadedConfig(c)
	overrideCorpus(c, cfg)
	preferDatabase(c, cfg)
	if c.IsSet("threshold") {
		cfg.Search.Threshold = c.Int("threshold")
	}
	if c.IsSet("expanded-threshold") {
		cfg.Search.ExpandedThreshold = c.Int("expanded-threshold")
	} else if c.IsSet("threshold") {
		cfg.Search.ExpandedThreshold = cfg.Search.Threshold + 1
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	term, err := termArg(c)
	if err != nil {
		return err
	}

	corpus, err := openCorpus(ctx, cfg)
	if err != nil {
		return err
	}

	engine := distance.NewEngine(distance.WithMaxScratchCells(cfg.Search.MaxScratchCells))
	defer engine.Close()
	scanner, err := search.NewScanner(engine, search.WithMaxMatches(cfg.Search.MaxMatches))
	if err != nil {
		return err
	}
	runner, err := benchmark.NewRunner(scanner,
		benchmark.WithThresholds(cfg.Search.Threshold, cfg.Search.ExpandedThreshold))
	if err != nil {
		return err
	}

	report, err := runner.Run(corpus, term)
	if err != nil {
		return fmt.Errorf("benchmark failed: %w", err)
	}
	return report.Render(c.App.Writer, c.Int("show"), corpus)
}

func compareCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("compare takes exactly two words, got %d", c.NArg())
	}
	word, term := c.Args().Get(0), c.Args().Get(1)

	engine := distance.NewEngine()
	defer engine.Close()

	leven, err := distance.LevenshteinDistance(engine.Scratch(), word, term)
	if err != nil {
		return err
	}

	rows := [][]string{
		{distance.Levenshtein.String(), strconv.Itoa(leven)},
		{distance.Hamming.String(), strconv.Itoa(distance.HammingDistance(word, term))},
		{distance.BruteForce.String(), strconv.FormatBool(distance.Contains(word, term))},
	}
	fmt.Fprintf(c.App.Writer, "%q vs %q\n", word, term)
	fmt.Fprintln(c.App.Writer, renderTable([]string{"Metric", "Distance"}, rows, 2))
	return nil
}

func configCommand(c *cli.Context) error {
	return loadedConfig(c).Write(c.App.Writer)
}

// overrideCorpus applies the corpus flags of the current command to cfg.
func overrideCorpus(c *cli.Context, cfg *config.Config) {
	if c.IsSet("file") {
		cfg.Corpus.Path = c.String("file")
	}
	if c.IsSet("db") {
		cfg.Corpus.DBPath = c.String("db")
	}
	if c.IsSet("max-records") {
		cfg.Corpus.MaxRecords = c.Int("max-records")
	}
}

// preferDatabase makes an explicit --db win over a corpus file named in the
// configuration.
func preferDatabase(c *cli.Context, cfg *config.Config) {
	if c.IsSet("db") && !c.IsSet("file") {
		cfg.Corpus.Path = ""
	}
}

func termArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("expected one search term, got %d arguments", c.NArg())
	}
	return c.Args().First(), nil
}

// readCorpusFile reads the configured corpus file and warns about lines
// dropped for exceeding the length limit.
func readCorpusFile(cfg *config.Config) ([]string, error) {
	lines, skipped, err := ingestion.ReadFile(cfg.Corpus.Path, cfg.Corpus.MaxRecords, cfg.Corpus.MaxLineBytes)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		slog.Warn("skipped overlong lines",
			"file", cfg.Corpus.Path,
			"count", skipped,
			"maxLineBytes", cfg.Corpus.MaxLineBytes)
	}
	return lines, nil
}

// openCorpus reads the corpus from the configured file, or from the database
// when no file is configured.
func openCorpus(ctx context.Context, cfg *config.Config) ([]string, error) {
	if cfg.Corpus.Path != "" {
		corpus, err := readCorpusFile(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to read corpus: %w", err)
		}
		return corpus, nil
	}

	if cfg.Corpus.DBPath == "" {
		return nil, errNoCorpus
	}
	db, err := fuzzscan.NewDatabase(cfg.Corpus.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	corpus, err := db.RecordRepository().Corpus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus from database: %w", err)
	}
	return corpus, nil
}
