package figscan

import (
	"log/slog"

	"github.com/tsawler/figscan/config"
	"github.com/tsawler/figscan/store"
)

// Run performs the scan described by cfg and writes its report to
// cfg.OutputFile. A non-empty cfg.LedgerDB records the run there.
func Run(cfg config.Config, logger *slog.Logger) (*Result, []Warning, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	format, _ := cfg.ReportFormat()

	s := Open(cfg.PDFPath).
		PageOffset(cfg.PageOffset).
		Thresholds(cfg.Thresholds()).
		ProgressEvery(cfg.ProgressEvery).
		Output(cfg.OutputFile, format).
		Logger(logger)
	if !cfg.DetectColor {
		s = s.SkipColor()
	}
	if cfg.OCR {
		s = s.WithOCR(cfg.OCRLanguage)
	}

	if cfg.LedgerDB != "" {
		ledger, err := store.Open(cfg.LedgerDB)
		if err != nil {
			return nil, nil, err
		}
		defer ledger.Close()
		s = s.Ledger(ledger)
	}
	return s.Scan()
}

// FigurePages runs the scan described by cfg and returns the book page of
// every figure in the book content, in the order found. Any failure is
// logged and yields an empty list.
func FigurePages(cfg config.Config, logger *slog.Logger) []int {
	if logger == nil {
		logger = slog.Default()
	}
	result, warnings, err := Run(cfg, logger)
	if err != nil {
		logger.Error("Error processing PDF", "path", cfg.PDFPath, "err", err)
		return []int{}
	}
	if len(warnings) > 0 {
		logger.Warn("scan finished with warnings", "count", len(warnings))
	}
	pages := result.BookPages()
	if pages == nil {
		pages = []int{}
	}
	logger.Info("Results saved", "output", cfg.OutputFile)
	return pages
}
