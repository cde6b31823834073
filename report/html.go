package report

import (
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/figscan/figures"
)

const stylesheet = `body{font-family:sans-serif;margin:2em}table{border-collapse:collapse}` +
	`th,td{border:1px solid #ccc;padding:4px 8px;text-align:left}`

// element builds an element node with optional attributes given as
// key/value pairs.
func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// withText appends a text child and returns n.
func withText(n *html.Node, s string) *html.Node {
	n.AppendChild(textNode(s))
	return n
}

func row(cellAtom atom.Atom, cells ...string) *html.Node {
	tr := element(atom.Tr)
	for _, c := range cells {
		tr.AppendChild(withText(element(cellAtom), c))
	}
	return tr
}

func figureTable(records []figures.Record, withBook bool) *html.Node {
	table := element(atom.Table)
	if withBook {
		table.AppendChild(row(atom.Th, "Figure", "Caption", "PDF page", "Book page"))
	} else {
		table.AppendChild(row(atom.Th, "Figure", "Caption", "PDF page"))
	}
	for _, r := range records {
		cells := []string{r.Number, r.Caption, strconv.Itoa(r.PDFPage)}
		if withBook {
			cells = append(cells, strconv.Itoa(r.BookPage))
		}
		table.AppendChild(row(atom.Td, cells...))
	}
	return table
}

func writeHTML(w io.Writer, d Data) error {
	book, front := d.sections()

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	root := element(atom.Html, "lang", "en")
	doc.AppendChild(root)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, "charset", "utf-8"))
	head.AppendChild(withText(element(atom.Title), "Figure Analysis Report"))
	head.AppendChild(withText(element(atom.Style), stylesheet))
	root.AppendChild(head)

	body := element(atom.Body)
	root.AppendChild(body)
	body.AppendChild(withText(element(atom.H1), "Figure Analysis Report"))

	summary := element(atom.Ul)
	items := []string{
		fmt.Sprintf("Total PDF pages analyzed: %d", d.TotalPages),
		fmt.Sprintf("Page offset applied: %d (PDF page %d = Book page 1)", d.PageOffset, d.PageOffset+1),
		fmt.Sprintf("Total figures found: %d", len(d.Figures)),
		fmt.Sprintf("Figures in book content: %d", len(book)),
		fmt.Sprintf("Figures in front matter: %d", len(front)),
	}
	if d.Source != "" {
		items = append([]string{"Source: " + d.Source}, items...)
	}
	for _, s := range items {
		summary.AppendChild(withText(element(atom.Li), s))
	}
	body.AppendChild(summary)

	body.AppendChild(withText(element(atom.H2, "id", "figures"), "Detailed Figure Information"))
	body.AppendChild(figureTable(book, true))

	if len(front) > 0 {
		body.AppendChild(withText(element(atom.H2, "id", "front-matter"), "Figures in Front Matter"))
		body.AppendChild(figureTable(front, false))
	}

	if d.ColorChecked {
		body.AppendChild(withText(element(atom.H2, "id", "color-pages"), "Color Pages"))
		table := element(atom.Table)
		table.AppendChild(row(atom.Th, "PDF page", "Book page", "Signal"))
		for _, p := range d.ColorPages {
			bookPage := "front matter"
			if p.BookPage > 0 {
				bookPage = strconv.Itoa(p.BookPage)
			}
			table.AppendChild(row(atom.Td, strconv.Itoa(p.PDFPage), bookPage, p.Signal))
		}
		body.AppendChild(table)
	}

	return html.Render(w, doc)
}
