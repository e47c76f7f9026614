package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"fuel-sheets/internal/config"
	"fuel-sheets/internal/exporter"
	"fuel-sheets/internal/extractor"
	"fuel-sheets/internal/logger"
	"fuel-sheets/internal/source"
	"fuel-sheets/internal/ui"
	"fuel-sheets/internal/workbook"
)

const (
	appName    = "Fuel Sheets"
	appVersion = "1.0.0"
	appDesc    = "Exports the road fuel sales and stock levels workbook to CSV files"
)

var (
	configPath  string
	verbose     bool
	showVersion bool
	quiet       bool
	outputDir   string
	sourceURL   string
	sourceFile  string
	formats     string
)

func init() {
	flag.StringVar(&configPath, "config", "config.yaml", "Path to configuration file")
	flag.StringVar(&configPath, "c", "config.yaml", "Path to configuration file (shorthand)")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging (DEBUG level)")
	flag.BoolVar(&verbose, "v", false, "Enable verbose logging (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&quiet, "quiet", false, "Hide progress bars")
	flag.StringVar(&outputDir, "output", "", "Override output directory from config")
	flag.StringVar(&sourceURL, "url", "", "Override workbook URL from config")
	flag.StringVar(&sourceFile, "file", "", "Read the workbook from a local file instead of downloading it")
	flag.StringVar(&formats, "format", "", "Comma-separated output formats (csv,xlsx); overrides config")
}

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	if showVersion {
		fmt.Printf("%s v%s\n%s\n", appName, appVersion, appDesc)
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("❌ Failed to load configuration: %v\n", err)
		return 1
	}
	if err := applyOverrides(cfg); err != nil {
		fmt.Printf("❌ Invalid command line: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("❌ Invalid configuration: %v\n", err)
		return 1
	}
	if verbose {
		cfg.Print()
	}

	if err := logger.Init(os.Stdout, cfg.LogPath(), verbose); err != nil {
		fmt.Printf("❌ Failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := runExport(ctx, cfg); err != nil {
		logger.Default().LogFailure("Export", err)
		return 1
	}

	logger.Info("Done!")
	return 0
}

func applyOverrides(cfg *config.Config) error {
	if sourceURL != "" {
		cfg.Source.URL = sourceURL
		cfg.Source.File = ""
	}
	if sourceFile != "" {
		cfg.Source.File = sourceFile
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if formats != "" {
		cfg.Output.Formats = strings.Split(formats, ",")
	}
	return cfg.Normalize()
}

func runExport(ctx context.Context, cfg *config.Config) error {
	phases := []ui.Phase{ui.PhaseExtracting, ui.PhaseWriting}
	if cfg.Source.File == "" {
		phases = append([]ui.Phase{ui.PhaseDownloading}, phases...)
	}
	pipeline := ui.NewPipeline(phases)
	if quiet {
		pipeline.Disable()
	}

	// --- Phase 1: Source ---
	data, err := loadSource(ctx, cfg, pipeline)
	if err != nil {
		return err
	}

	wb, err := workbook.Load(data)
	if err != nil {
		return err
	}
	defer wb.Close()

	// --- Phase 2: Extraction ---
	extractBar := pipeline.NextPhase(len(extractor.Specs))
	dispatcher := extractor.NewDispatcher(logger.Default())
	dispatcher.OnSheet = func(string) { extractBar.Increment() }

	result, err := dispatcher.ExtractAll(wb)
	if err != nil {
		return err
	}
	extractBar.Finish()

	// --- Phase 3: Writing ---
	exporters, err := exporter.GetExporters(cfg.Output.Formats, exporter.Options{
		Delimiter: cfg.DelimiterRune(),
		Encoding:  cfg.Output.Encoding,
		FileName:  cfg.Output.FileName,
	})
	if err != nil {
		return err
	}

	writeBar := pipeline.NextPhase(len(exporters))
	var files []string
	for _, exp := range exporters {
		written, err := exp.Export(result, cfg.Output.Dir)
		if err != nil {
			return err
		}
		files = append(files, written...)
		writeBar.Increment()
	}
	pipeline.Finish()

	for _, f := range files {
		logger.Debug("Output: %s", f)
	}
	logger.Info("Exported %d of %d sheets into %d files", result.Len(), len(extractor.Specs), len(files))
	return nil
}

func loadSource(ctx context.Context, cfg *config.Config, pipeline *ui.Pipeline) ([]byte, error) {
	if cfg.Source.File != "" {
		return source.ReadFile(cfg.Source.File)
	}

	fetcher := source.NewFetcher(cfg.Source.Timeout, cfg.Source.MaxBytes)
	fetcher.Progress = func(total int64) io.Writer {
		return pipeline.NextBytesPhase(total)
	}
	return fetcher.Fetch(ctx, cfg.Source.URL)
}
