// Package figures finds "Figure <chapter>-<index>" captions in page text and
// maps them from PDF page numbers to book page numbers.
package figures

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// captionPattern matches a figure number and the caption after it. The
// caption runs to the end of its line; when the number ends a line, the
// caption is taken from the next one. The word "Figure" is matched
// case-insensitively.
var captionPattern = regexp.MustCompile(`(?i)Figure\s+(\d+)-(\d+)\.?\s*([^\n\r]*)`)

// Caption is one figure caption found in page text.
type Caption struct {
	Chapter int
	Index   int
	Text    string
}

// Number formats the figure number as "<chapter>-<index>".
func (c Caption) Number() string {
	return fmt.Sprintf("%d-%d", c.Chapter, c.Index)
}

// Extract returns the captions in text in order of appearance. Captions that
// are empty after trimming are dropped; trailing periods are removed from the
// rest.
func Extract(text string) []Caption {
	var out []Caption
	for _, m := range captionPattern.FindAllStringSubmatch(text, -1) {
		chapter, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		index, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		caption := strings.TrimSpace(m[3])
		if caption == "" {
			continue
		}
		caption = strings.TrimRight(caption, ".")
		out = append(out, Caption{Chapter: chapter, Index: index, Text: caption})
	}
	return out
}

// HasFigure reports whether text mentions a figure number, with or without
// a caption.
func HasFigure(text string) bool {
	return captionPattern.MatchString(text)
}

// Record is a figure located on a page.
type Record struct {
	Number   string // "<chapter>-<index>"
	Chapter  int
	Index    int
	Caption  string
	PDFPage  int // 1-indexed
	BookPage int // PDFPage minus the page offset
}

// InBook reports whether the figure lies in the numbered book content rather
// than the front matter.
func (r Record) InBook() bool {
	return r.BookPage > 0
}

// NewRecords places captions found on pdfPage.
func NewRecords(captions []Caption, pdfPage, offset int) []Record {
	records := make([]Record, 0, len(captions))
	for _, c := range captions {
		records = append(records, Record{
			Number:   c.Number(),
			Chapter:  c.Chapter,
			Index:    c.Index,
			Caption:  c.Text,
			PDFPage:  pdfPage,
			BookPage: pdfPage - offset,
		})
	}
	return records
}

// Partition splits records into book content and front matter, keeping the
// input order within each group.
func Partition(records []Record) (book, front []Record) {
	for _, r := range records {
		if r.InBook() {
			book = append(book, r)
		} else {
			front = append(front, r)
		}
	}
	return book, front
}

// SortByNumber returns a copy of records ordered by chapter, then index.
// Records with the same number keep their relative order.
func SortByNumber(records []Record) []Record {
	sorted := append([]Record(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Chapter != sorted[j].Chapter {
			return sorted[i].Chapter < sorted[j].Chapter
		}
		return sorted[i].Index < sorted[j].Index
	})
	return sorted
}

// BookPages returns the book page of every book-content record, in input
// order. Duplicates are kept.
func BookPages(records []Record) []int {
	var pages []int
	for _, r := range records {
		if r.InBook() {
			pages = append(pages, r.BookPage)
		}
	}
	return pages
}
