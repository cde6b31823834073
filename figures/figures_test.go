package figures

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Caption
	}{
		{
			name: "single caption",
			text: "Some text\nFigure 2-3. The network stack\nmore",
			want: []Caption{{Chapter: 2, Index: 3, Text: "The network stack"}},
		},
		{
			name: "trailing periods stripped",
			text: "Figure 1-1 Overview of the system...",
			want: []Caption{{Chapter: 1, Index: 1, Text: "Overview of the system"}},
		},
		{
			name: "case insensitive",
			text: "FIGURE 10-2. Upper\nfigure 3-4 lower",
			want: []Caption{
				{Chapter: 10, Index: 2, Text: "Upper"},
				{Chapter: 3, Index: 4, Text: "lower"},
			},
		},
		{
			name: "empty caption dropped",
			text: "Figure 4-1.\n\n",
			want: nil,
		},
		{
			name: "blank caption at end of text",
			text: "Figure 4-2. Kept\nsee Figure 4-3.",
			want: []Caption{{Chapter: 4, Index: 2, Text: "Kept"}},
		},
		{
			name: "caption on the next line",
			text: "Figure 3-2.\nA sample diagram.",
			want: []Caption{{Chapter: 3, Index: 2, Text: "A sample diagram"}},
		},
		{
			name: "caption on the next line without period",
			text: "Figure 5-6\r\nNext line\nmore text",
			want: []Caption{{Chapter: 5, Index: 6, Text: "Next line"}},
		},
		{
			name: "caption stops at its line end",
			text: "Figure 7-1. First line\nsecond line",
			want: []Caption{{Chapter: 7, Index: 1, Text: "First line"}},
		},
		{
			name: "no match",
			text: "Table 2-3. Not a figure",
			want: nil,
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q) = %#v, want %#v", tt.text, got, tt.want)
			}
		})
	}
}

func TestHasFigure(t *testing.T) {
	if !HasFigure("as shown in figure 7-12") {
		t.Error("expected a figure reference")
	}
	if HasFigure("Figure seven") {
		t.Error("unexpected figure reference")
	}
}

func TestNewRecordsOffset(t *testing.T) {
	records := NewRecords([]Caption{{Chapter: 1, Index: 2, Text: "Caption"}}, 40, 33)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	r := records[0]
	if r.Number != "1-2" || r.PDFPage != 40 || r.BookPage != 7 || !r.InBook() {
		t.Errorf("record = %#v", r)
	}
}

func TestPartitionBoundary(t *testing.T) {
	var records []Record
	for _, page := range []int{1, 33, 34, 35} {
		records = append(records, NewRecords([]Caption{{Chapter: 1, Index: page, Text: "c"}}, page, 33)...)
	}
	book, front := Partition(records)

	if len(front) != 2 || front[0].PDFPage != 1 || front[1].PDFPage != 33 {
		t.Errorf("front = %#v", front)
	}
	if front[1].BookPage != 0 {
		t.Errorf("book page at offset boundary = %d, want 0", front[1].BookPage)
	}
	if len(book) != 2 || book[0].BookPage != 1 || book[1].BookPage != 2 {
		t.Errorf("book = %#v", book)
	}
}

func TestSortByNumber(t *testing.T) {
	records := []Record{
		{Number: "10-1", Chapter: 10, Index: 1},
		{Number: "2-10", Chapter: 2, Index: 10},
		{Number: "2-9", Chapter: 2, Index: 9},
	}
	sorted := SortByNumber(records)

	var got []string
	for _, r := range sorted {
		got = append(got, r.Number)
	}
	want := []string{"2-9", "2-10", "10-1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if records[0].Number != "10-1" {
		t.Error("SortByNumber modified its input")
	}
}

func TestBookPages(t *testing.T) {
	records := []Record{
		{BookPage: 5},
		{BookPage: -2},
		{BookPage: 3},
		{BookPage: 5},
	}
	if got, want := BookPages(records), []int{5, 3, 5}; !reflect.DeepEqual(got, want) {
		t.Errorf("BookPages = %v, want %v", got, want)
	}
	if got := BookPages(nil); len(got) != 0 {
		t.Errorf("BookPages(nil) = %v", got)
	}
}
