package report

import (
	"encoding/json"
	"io"

	"github.com/tsawler/figscan/figures"
)

type jsonFigure struct {
	Number   string `json:"number"`
	Caption  string `json:"caption"`
	PDFPage  int    `json:"pdf_page"`
	BookPage int    `json:"book_page"`
}

type jsonReport struct {
	Source      string       `json:"source,omitempty"`
	TotalPages  int          `json:"total_pages"`
	PageOffset  int          `json:"page_offset"`
	TotalFound  int          `json:"total_figures"`
	Book        []jsonFigure `json:"book_figures"`
	FrontMatter []jsonFigure `json:"front_matter_figures"`
	ColorCheck  bool         `json:"color_checked"`
	ColorPages  []ColorPage  `json:"color_pages"`
}

func toJSONFigures(records []figures.Record) []jsonFigure {
	out := make([]jsonFigure, 0, len(records))
	for _, r := range records {
		out = append(out, jsonFigure{Number: r.Number, Caption: r.Caption, PDFPage: r.PDFPage, BookPage: r.BookPage})
	}
	return out
}

func writeJSON(w io.Writer, d Data) error {
	book, front := d.sections()
	doc := jsonReport{
		Source:      d.Source,
		TotalPages:  d.TotalPages,
		PageOffset:  d.PageOffset,
		TotalFound:  len(d.Figures),
		Book:        toJSONFigures(book),
		FrontMatter: toJSONFigures(front),
	}
	if d.ColorChecked {
		doc.ColorCheck = true
		doc.ColorPages = d.ColorPages
		if doc.ColorPages == nil {
			doc.ColorPages = []ColorPage{}
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
