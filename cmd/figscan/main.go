// Command figscan reports the figures and colored pages of a PDF book.
//
// Usage:
//
//	figscan [flags] [book.pdf]
//
// Settings come from the optional -config YAML file; flags that are set
// override it.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/tsawler/figscan"
	"github.com/tsawler/figscan/config"
	"github.com/tsawler/figscan/figures"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("figscan", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML configuration file")
	defaults := config.Default()
	pdfPath := fs.String("pdf", "", "PDF to scan (or pass it as the first argument)")
	output := fs.String("output", defaults.OutputFile, "report file")
	offset := fs.Int("offset", defaults.PageOffset, "PDF pages before book page 1")
	colorThreshold := fs.Int("color-threshold", defaults.ColorThreshold, "per-channel difference that makes a pixel colored")
	sampleThreshold := fs.Float64("sample-threshold", defaults.SampleThreshold, "fraction of colored pixels that makes an image colored")
	format := fs.String("format", defaults.Format, "report format: text, html or json")
	noColor := fs.Bool("no-color", false, "skip color detection")
	useOCR := fs.Bool("ocr", defaults.OCR, "OCR image-only pages (needs a build with -tags ocr)")
	ocrLang := fs.String("ocr-lang", defaults.OCRLanguage, "Tesseract languages, e.g. eng+deu")
	ledger := fs.String("ledger", defaults.LedgerDB, "SQLite run ledger; empty disables it")
	progress := fs.Int("progress", defaults.ProgressEvery, "log progress every n pages; 0 disables it")
	logLevel := fs.String("log-level", defaults.LogLevel, "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := defaults
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		cfg = loaded
	}

	// Only flags given on the command line override the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "pdf":
			cfg.PDFPath = *pdfPath
		case "output":
			cfg.OutputFile = *output
		case "offset":
			cfg.PageOffset = *offset
		case "color-threshold":
			cfg.ColorThreshold = *colorThreshold
		case "sample-threshold":
			cfg.SampleThreshold = *sampleThreshold
		case "format":
			cfg.Format = *format
		case "no-color":
			cfg.DetectColor = !*noColor
		case "ocr":
			cfg.OCR = *useOCR
		case "ocr-lang":
			cfg.OCRLanguage = *ocrLang
		case "ledger":
			cfg.LedgerDB = *ledger
		case "progress":
			cfg.ProgressEvery = *progress
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if fs.NArg() > 0 && cfg.PDFPath == "" {
		cfg.PDFPath = fs.Arg(0)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "figscan:", err)
		fs.Usage()
		return 2
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	result, warnings, err := figscan.Run(cfg, logger)
	if err != nil {
		logger.Error("Error processing PDF", "path", cfg.PDFPath, "err", err)
		return 1
	}
	for _, w := range warnings {
		logger.Debug("warning", "detail", w.String())
	}

	book, front := figures.Partition(result.Figures)
	fmt.Println("\nAnalysis complete!")
	fmt.Printf("Total figures found: %d\n", len(result.Figures))
	fmt.Printf("Book content figures: %d\n", len(book))
	fmt.Printf("Front matter figures: %d\n", len(front))
	if result.ColorChecked {
		fmt.Printf("Color pages: %d\n", len(result.ColorPages()))
	}
	if len(warnings) > 0 {
		fmt.Printf("Warnings: %d (use -log-level debug for details)\n", len(warnings))
	}
	fmt.Printf("Results saved to: %s\n", cfg.OutputFile)
	return 0
}
