package figscan

import (
	"log/slog"

	"github.com/tsawler/figscan/chroma"
	"github.com/tsawler/figscan/report"
	"github.com/tsawler/figscan/store"
)

// scanOptions holds the Scanner configuration.
type scanOptions struct {
	// Page selection, 1-indexed; nil means every page.
	pages []int

	pageOffset    int
	thresholds    chroma.Thresholds
	detectColor   bool
	progressEvery int

	ocr         bool
	ocrLanguage string

	outputPath   string
	outputFormat report.Format

	ledger *store.Ledger
	logger *slog.Logger
}

// defaultOptions returns the default scan options.
func defaultOptions() scanOptions {
	return scanOptions{
		pages:         nil,
		pageOffset:    33,
		thresholds:    chroma.DefaultThresholds(),
		detectColor:   true,
		progressEvery: 50,
		ocrLanguage:   "eng",
		outputFormat:  report.FormatText,
	}
}

// clone copies the options, including the page list.
func (o scanOptions) clone() scanOptions {
	c := o
	if o.pages != nil {
		c.pages = make([]int, len(o.pages))
		copy(c.pages, o.pages)
	}
	return c
}

func (o scanOptions) log() *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return slog.Default()
}
