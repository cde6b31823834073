// Package report renders the result of a figure scan as a plain text
// report, an HTML page or JSON.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tsawler/figscan/figures"
)

// Format selects the report rendering.
type Format int

const (
	// FormatText is the plain text report.
	FormatText Format = iota
	// FormatHTML is a standalone HTML page.
	FormatHTML
	// FormatJSON is an indented JSON document.
	FormatJSON
)

// String returns the name used in configuration files.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatHTML:
		return "html"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// FileExtension returns the usual extension for the format.
func (f Format) FileExtension() string {
	switch f {
	case FormatHTML:
		return ".html"
	case FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "html":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatText, fmt.Errorf("report: unknown format %q", s)
}

// ColorPage is a page classified as colored.
type ColorPage struct {
	PDFPage  int    `json:"pdf_page"`
	BookPage int    `json:"book_page"`
	Signal   string `json:"signal"`
}

// Data is everything a report shows.
type Data struct {
	Source     string
	TotalPages int
	PageOffset int

	// Figures in the order they were found.
	Figures []figures.Record

	// ColorChecked is false when color detection was switched off; the
	// color section is then omitted.
	ColorChecked bool
	ColorPages   []ColorPage
}

// sections splits the figures the way every format presents them.
func (d Data) sections() (book, front []figures.Record) {
	book, front = figures.Partition(d.Figures)
	return figures.SortByNumber(book), front
}

// Write renders d to w.
func Write(w io.Writer, d Data, f Format) error {
	switch f {
	case FormatText:
		return writeText(w, d)
	case FormatHTML:
		return writeHTML(w, d)
	case FormatJSON:
		return writeJSON(w, d)
	}
	return fmt.Errorf("report: unknown format %d", int(f))
}

// WriteFile renders d to path, replacing any existing file.
func WriteFile(path string, d Data, f Format) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err := Write(file, d, f); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}
