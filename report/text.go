package report

import (
	"bufio"
	"fmt"
	"io"
)

func writeText(w io.Writer, d Data) error {
	book, front := d.sections()
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Figure Analysis Report\n")
	fmt.Fprintf(bw, "=====================\n\n")
	fmt.Fprintf(bw, "Total PDF pages analyzed: %d\n", d.TotalPages)
	fmt.Fprintf(bw, "Page offset applied: %d (PDF page %d = Book page 1)\n", d.PageOffset, d.PageOffset+1)
	fmt.Fprintf(bw, "Total figures found: %d\n", len(d.Figures))
	fmt.Fprintf(bw, "Figures in book content: %d\n", len(book))
	fmt.Fprintf(bw, "Figures in front matter: %d\n\n", len(front))

	fmt.Fprintf(bw, "Detailed Figure Information:\n")
	fmt.Fprintf(bw, "===========================\n\n")
	for _, r := range book {
		fmt.Fprintf(bw, "Figure %s. %s on page number: %d. ", r.Number, r.Caption, r.PDFPage)
		fmt.Fprintf(bw, "This includes an offset of %d. ", d.PageOffset)
		fmt.Fprintf(bw, "That is this Figure %s is present on page number %d (%d of %d)\n\n", r.Number, r.BookPage, r.PDFPage, d.TotalPages)
	}

	if len(front) > 0 {
		fmt.Fprintf(bw, "\nFigures in Front Matter:\n")
		fmt.Fprintf(bw, "========================\n\n")
		for _, r := range front {
			fmt.Fprintf(bw, "Figure %s. %s on PDF page: %d\n\n", r.Number, r.Caption, r.PDFPage)
		}
	}

	if d.ColorChecked {
		fmt.Fprintf(bw, "\nColor Pages:\n")
		fmt.Fprintf(bw, "============\n\n")
		fmt.Fprintf(bw, "Total color pages: %d\n\n", len(d.ColorPages))
		for _, p := range d.ColorPages {
			if p.BookPage > 0 {
				fmt.Fprintf(bw, "PDF page %d (Book page %d): %s\n", p.PDFPage, p.BookPage, p.Signal)
			} else {
				fmt.Fprintf(bw, "PDF page %d (Front Matter): %s\n", p.PDFPage, p.Signal)
			}
		}
	}
	return bw.Flush()
}
