package figscan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/tsawler/figscan/chroma"
	"github.com/tsawler/figscan/figures"
	"github.com/tsawler/figscan/pdfdoc"
	"github.com/tsawler/figscan/report"
	"github.com/tsawler/figscan/store"
)

// Scanner provides a fluent interface for scanning a PDF. Each configuration
// method returns a new Scanner, so a configured Scanner can be reused as a
// template.
type Scanner struct {
	path string
	doc  *pdfdoc.Document

	options scanOptions

	// newOCR is replaced in tests.
	newOCR func(lang string) (recognizer, error)
}

// clone copies the Scanner with a deep copy of its options.
func (s *Scanner) clone() *Scanner {
	return &Scanner{
		path:    s.path,
		doc:     s.doc,
		options: s.options.clone(),
		newOCR:  s.newOCR,
	}
}

// ensureDocument opens the document if not already open.
func (s *Scanner) ensureDocument() error {
	if s.doc != nil {
		return nil
	}
	if s.path == "" {
		return errors.New("figscan: no file specified")
	}
	doc, err := pdfdoc.Open(s.path)
	if err != nil {
		return err
	}
	s.doc = doc
	return nil
}

// ============================================================================
// Configuration Methods (return new Scanner instance)
// ============================================================================

// PageOffset sets how many leading PDF pages precede book page 1. Figures on
// PDF page offset+1 are on book page 1; figures at or before the offset are
// front matter. The default is 33.
//
// Example:
//
//	result, _, err := figscan.Open("book.pdf").PageOffset(12).Scan()
func (s *Scanner) PageOffset(offset int) *Scanner {
	c := s.clone()
	c.options.pageOffset = offset
	return c
}

// ColorThreshold sets the per-channel difference above which a pixel counts
// as colored. The default is 3.
func (s *Scanner) ColorThreshold(threshold int) *Scanner {
	c := s.clone()
	c.options.thresholds.ColorThreshold = threshold
	return c
}

// SampleThreshold sets the fraction of sampled pixels that must match before
// an image counts as colored. The default is 0.001.
func (s *Scanner) SampleThreshold(fraction float64) *Scanner {
	c := s.clone()
	c.options.thresholds.SampleThreshold = fraction
	return c
}

// Thresholds sets both pixel thresholds.
func (s *Scanner) Thresholds(t chroma.Thresholds) *Scanner {
	c := s.clone()
	c.options.thresholds = t
	return c
}

// Pages restricts the scan to the given pages (1-indexed). Multiple calls
// are cumulative.
//
// Example:
//
//	result, _, err := figscan.Open("book.pdf").Pages(40, 41).Scan()
func (s *Scanner) Pages(pages ...int) *Scanner {
	c := s.clone()
	c.options.pages = append(c.options.pages, pages...)
	return c
}

// PageRange restricts the scan to pages start through end, inclusive.
//
// Example:
//
//	result, _, err := figscan.Open("book.pdf").PageRange(34, 80).Scan()
func (s *Scanner) PageRange(start, end int) *Scanner {
	c := s.clone()
	for i := start; i <= end; i++ {
		c.options.pages = append(c.options.pages, i)
	}
	return c
}

// SkipColor turns color detection off; only figures are collected.
func (s *Scanner) SkipColor() *Scanner {
	c := s.clone()
	c.options.detectColor = false
	return c
}

// WithOCR recognizes the images of pages that have no extractable text and
// looks for captions in the result. lang is a Tesseract language list such
// as "eng" or "eng+deu". OCR needs a build with the ocr tag; without it the
// scan goes on and records a warning.
func (s *Scanner) WithOCR(lang string) *Scanner {
	c := s.clone()
	c.options.ocr = true
	if lang != "" {
		c.options.ocrLanguage = lang
	}
	return c
}

// Output writes the report to path in format f when the scan finishes.
//
// Example:
//
//	_, _, err := figscan.Open("book.pdf").Output("figures.json", report.FormatJSON).Scan()
func (s *Scanner) Output(path string, f report.Format) *Scanner {
	c := s.clone()
	c.options.outputPath = path
	c.options.outputFormat = f
	return c
}

// ProgressEvery logs a progress line every n pages. Zero disables it.
func (s *Scanner) ProgressEvery(n int) *Scanner {
	c := s.clone()
	c.options.progressEvery = n
	return c
}

// Ledger records the run, its page verdicts and its figures in l.
func (s *Scanner) Ledger(l *store.Ledger) *Scanner {
	c := s.clone()
	c.options.ledger = l
	return c
}

// Logger sets the logger for findings and diagnostics. The default is
// slog.Default().
func (s *Scanner) Logger(logger *slog.Logger) *Scanner {
	c := s.clone()
	c.options.logger = logger
	return c
}

// ============================================================================
// Terminal Operations
// ============================================================================

// PageCount returns the number of pages in the document.
func (s *Scanner) PageCount() (int, error) {
	if err := s.ensureDocument(); err != nil {
		return 0, err
	}
	return s.doc.PageCount(), nil
}

// ClassifyPage decides whether PDF page n has color content.
//
// Example:
//
//	verdict, err := figscan.Open("book.pdf").ClassifyPage(40)
//	if err == nil && verdict.Colored {
//	    fmt.Println("colored by", verdict.Signal)
//	}
func (s *Scanner) ClassifyPage(n int) (chroma.Verdict, error) {
	if err := s.options.thresholds.Validate(); err != nil {
		return chroma.Verdict{}, err
	}
	if err := s.ensureDocument(); err != nil {
		return chroma.Verdict{}, err
	}
	page, err := s.doc.Page(n)
	if err != nil {
		return chroma.Verdict{}, err
	}
	classifier := chroma.NewClassifier(s.options.thresholds, s.options.log())
	return classifier.Classify(pageSource{page: page}), nil
}

// Scan walks the selected pages in ascending order, classifying color and
// collecting figure captions, then writes the report if Output was set.
//
// The error is non-nil when the document cannot be opened (it matches
// pdfdoc.ErrOpen), the options are invalid, or the report cannot be written.
// Problems with single pages or images become warnings.
func (s *Scanner) Scan() (*Result, []Warning, error) {
	return s.ScanContext(context.Background())
}

// ScanContext is Scan with a context for the ledger writes.
func (s *Scanner) ScanContext(ctx context.Context) (*Result, []Warning, error) {
	opts := s.options
	logger := opts.log()

	if err := opts.thresholds.Validate(); err != nil {
		return nil, nil, err
	}
	if err := s.ensureDocument(); err != nil {
		return nil, nil, err
	}

	run := &scanRun{
		ctx:        ctx,
		opts:       opts,
		logger:     logger,
		doc:        s.doc,
		classifier: chroma.NewClassifier(opts.thresholds, logger),
		result: &Result{
			Source:       s.doc.Path(),
			TotalPages:   s.doc.PageCount(),
			PageOffset:   opts.pageOffset,
			ColorChecked: opts.detectColor,
		},
	}
	pages := run.selectPages()

	logger.Info(fmt.Sprintf("Analyzing %d pages...", len(pages)), "source", run.result.Source)

	if opts.ledger != nil {
		id, err := opts.ledger.BeginRun(ctx, run.result.Source, run.result.TotalPages, opts.pageOffset)
		if err != nil {
			run.warn(0, "ledger", err)
		} else {
			run.result.RunID = id
		}
	}

	if opts.ocr {
		open := s.newOCR
		if open == nil {
			open = openOCR
		}
		r, err := open(opts.ocrLanguage)
		if err != nil {
			run.warn(0, "ocr", err)
		} else {
			run.ocr = r
			defer r.Close()
		}
	}

	for i, n := range pages {
		run.scanPage(n)
		if opts.progressEvery > 0 && (i+1)%opts.progressEvery == 0 {
			logger.Info(fmt.Sprintf("Progress: %d/%d pages processed", i+1, len(pages)))
		}
	}

	if opts.outputPath != "" {
		if err := report.WriteFile(opts.outputPath, run.result.ReportData(), opts.outputFormat); err != nil {
			run.finish(store.StatusFailed)
			return run.result, run.warnings, err
		}
	}
	run.finish(store.StatusDone)

	book, front := figures.Partition(run.result.Figures)
	logger.Info("Analysis complete",
		"figures", len(run.result.Figures),
		"book_figures", len(book),
		"front_matter_figures", len(front),
		"color_pages", len(run.result.ColorPages()),
		"output", opts.outputPath)
	return run.result, run.warnings, nil
}

// scanRun is the state of one Scan call.
type scanRun struct {
	ctx        context.Context
	opts       scanOptions
	logger     *slog.Logger
	doc        *pdfdoc.Document
	classifier *chroma.Classifier
	ocr        recognizer

	result   *Result
	warnings []Warning
}

func (r *scanRun) warn(page int, stage string, err error) {
	r.warnings = append(r.warnings, Warning{Page: page, Stage: stage, Err: err})
	r.logger.Debug("scan warning", "page", page, "stage", stage, "err", err)
}

// selectPages returns the pages to scan, ascending and without duplicates.
// Pages outside the document are dropped with a warning.
func (r *scanRun) selectPages() []int {
	total := r.doc.PageCount()
	if r.opts.pages == nil {
		pages := make([]int, total)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}

	seen := make(map[int]bool)
	var pages []int
	for _, n := range r.opts.pages {
		if n < 1 || n > total {
			r.warn(0, "page", fmt.Errorf("page %d out of range 1-%d", n, total))
			continue
		}
		if !seen[n] {
			seen[n] = true
			pages = append(pages, n)
		}
	}
	sort.Ints(pages)
	return pages
}

func (r *scanRun) scanPage(n int) {
	pr := PageResult{PDFPage: n, BookPage: n - r.opts.pageOffset}
	entry := store.PageEntry{PDFPage: n}

	page, err := r.doc.Page(n)
	if err != nil {
		r.warn(n, "page", err)
		entry.Err = err.Error()
		r.result.Pages = append(r.result.Pages, pr)
		r.record(entry, nil)
		return
	}

	if r.opts.detectColor {
		pr.Verdict = r.classifier.Classify(pageSource{page: page})
		if err := pr.Verdict.Err(); err != nil {
			r.warn(n, "color", err)
			entry.Err = err.Error()
		}
		if pr.Verdict.Colored {
			r.logger.Info(fmt.Sprintf("%s: HAS COLOR", pageLabel(pr)), "signal", pr.Verdict.Signal)
		}
		entry.Colored = pr.Verdict.Colored
		entry.Signal = pr.Verdict.Signal
	}

	text, err := page.Text()
	if err != nil {
		r.warn(n, "text", err)
	}
	if strings.TrimSpace(text) == "" && r.ocr != nil {
		ocrText, err := recognizePage(r.ocr, page)
		if err != nil {
			r.warn(n, "ocr", err)
		}
		text = ocrText
		pr.OCR = ocrText != ""
	}

	pr.Figures = figures.NewRecords(figures.Extract(text), n, r.opts.pageOffset)
	if len(pr.Figures) > 0 {
		r.logger.Info(fmt.Sprintf("%s: HAS %d FIGURE(S)", pageLabel(pr), len(pr.Figures)))
	}
	entry.Figures = len(pr.Figures)

	r.result.Pages = append(r.result.Pages, pr)
	r.result.Figures = append(r.result.Figures, pr.Figures...)
	r.record(entry, pr.Figures)
}

// pageLabel names a page the way console findings do.
func pageLabel(pr PageResult) string {
	if pr.BookPage > 0 {
		return fmt.Sprintf("PDF Page %d (Book Page %d)", pr.PDFPage, pr.BookPage)
	}
	return fmt.Sprintf("PDF Page %d (Front Matter)", pr.PDFPage)
}

func (r *scanRun) record(entry store.PageEntry, recs []figures.Record) {
	l := r.opts.ledger
	if l == nil || r.result.RunID == "" {
		return
	}
	if err := l.RecordPage(r.ctx, r.result.RunID, entry); err != nil {
		r.warn(entry.PDFPage, "ledger", err)
	}
	if err := l.RecordFigures(r.ctx, r.result.RunID, recs); err != nil {
		r.warn(entry.PDFPage, "ledger", err)
	}
}

func (r *scanRun) finish(status string) {
	if r.opts.ledger == nil || r.result.RunID == "" {
		return
	}
	if err := r.opts.ledger.FinishRun(r.ctx, r.result.RunID, status); err != nil {
		r.warn(0, "ledger", err)
	}
}
