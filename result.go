package figscan

import (
	"github.com/tsawler/figscan/chroma"
	"github.com/tsawler/figscan/figures"
	"github.com/tsawler/figscan/report"
)

// PageResult is what a scan found on one page.
type PageResult struct {
	PDFPage  int
	BookPage int

	// Verdict is the zero value when color detection was off.
	Verdict chroma.Verdict

	Figures []figures.Record
	// OCR is true when the captions came from recognized image text.
	OCR bool
}

// Result is the outcome of a scan.
type Result struct {
	Source     string
	TotalPages int
	PageOffset int

	// Pages holds the scanned pages in ascending order.
	Pages []PageResult
	// Figures holds every figure in the order found.
	Figures []figures.Record

	ColorChecked bool
	// RunID identifies the run in the ledger, empty without one.
	RunID string
}

// ColorPages lists the pages classified as colored.
func (r *Result) ColorPages() []report.ColorPage {
	var out []report.ColorPage
	for _, p := range r.Pages {
		if p.Verdict.Colored {
			out = append(out, report.ColorPage{PDFPage: p.PDFPage, BookPage: p.BookPage, Signal: p.Verdict.Signal})
		}
	}
	return out
}

// BookPages returns the book page of every figure in the book content, in
// the order found. A page appears once per figure on it.
func (r *Result) BookPages() []int {
	return figures.BookPages(r.Figures)
}

// ReportData converts the result for the report writers.
func (r *Result) ReportData() report.Data {
	return report.Data{
		Source:       r.Source,
		TotalPages:   r.TotalPages,
		PageOffset:   r.PageOffset,
		Figures:      r.Figures,
		ColorChecked: r.ColorChecked,
		ColorPages:   r.ColorPages(),
	}
}
