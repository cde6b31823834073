package figscan

import (
	"context"
	"errors"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tsawler/figscan/chroma"
	"github.com/tsawler/figscan/config"
	"github.com/tsawler/figscan/internal/pdftest"
	"github.com/tsawler/figscan/pdfdoc"
	"github.com/tsawler/figscan/report"
	"github.com/tsawler/figscan/store"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// bookPDF has a front matter page with a figure, a page with red vector
// content, and a book page with two figures out of order.
func bookPDF(t *testing.T) string {
	t.Helper()
	return pdftest.Write(t, "book.pdf", pdftest.Document(
		pdftest.TextPage("Preface", "Figure 1-1. Preface diagram"),
		pdftest.Page{Content: "1 0 0 rg 0 0 100 100 re f"},
		pdftest.TextPage("Figure 2-10. Later figure", "Figure 2-9. Earlier figure."),
	))
}

func TestOpenMissingFile(t *testing.T) {
	_, _, err := Open(filepath.Join(t.TempDir(), "missing.pdf")).Scan()
	if !errors.Is(err, pdfdoc.ErrOpen) {
		t.Fatalf("expected ErrOpen, got %v", err)
	}
	if _, err := Open("").PageCount(); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestScan(t *testing.T) {
	path := bookPDF(t)
	out := filepath.Join(t.TempDir(), "figure_pages.txt")

	result, warnings, err := Open(path).
		PageOffset(1).
		Output(out, report.FormatText).
		Logger(quietLogger()).
		Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(warnings) > 0 {
		t.Errorf("unexpected warnings: %s", FormatWarnings(warnings))
	}

	if result.TotalPages != 3 || len(result.Pages) != 3 {
		t.Fatalf("pages = %d/%d", len(result.Pages), result.TotalPages)
	}
	var numbers []string
	for _, f := range result.Figures {
		numbers = append(numbers, f.Number)
	}
	if want := []string{"1-1", "2-10", "2-9"}; !reflect.DeepEqual(numbers, want) {
		t.Errorf("figures = %v, want %v", numbers, want)
	}
	if got := result.BookPages(); !reflect.DeepEqual(got, []int{2, 2}) {
		t.Errorf("BookPages = %v", got)
	}

	colored := result.ColorPages()
	if len(colored) != 1 || colored[0].PDFPage != 2 || colored[0].Signal != chroma.SignalContentStream {
		t.Errorf("color pages = %+v", colored)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{
		"Total PDF pages analyzed: 3\n",
		"Page offset applied: 1 (PDF page 2 = Book page 1)\n",
		"Figure 2-9. Earlier figure on page number: 3. This includes an offset of 1. That is this Figure 2-9 is present on page number 2 (3 of 3)\n\n",
		"Figure 1-1. Preface diagram on PDF page: 1\n\n",
		"PDF page 2 (Book page 1): content-stream\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q:\n%s", want, text)
		}
	}
	if strings.Index(text, "Figure 2-9.") > strings.Index(text, "Figure 2-10.") {
		t.Error("book figures not sorted numerically")
	}
}

func TestScanPageSelection(t *testing.T) {
	result, warnings, err := Open(bookPDF(t)).
		Pages(3, 1, 3, 9).
		Logger(quietLogger()).
		Scan()
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Pages) != 2 || result.Pages[0].PDFPage != 1 || result.Pages[1].PDFPage != 3 {
		t.Errorf("scanned pages = %+v", result.Pages)
	}
	if len(warnings) != 1 || warnings[0].Stage != "page" {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestScanSkipColor(t *testing.T) {
	result, _, err := Open(bookPDF(t)).SkipColor().Logger(quietLogger()).Scan()
	if err != nil {
		t.Fatal(err)
	}
	if result.ColorChecked || len(result.ColorPages()) != 0 {
		t.Errorf("color detection ran: %+v", result.ColorPages())
	}
	if result.ReportData().ColorChecked {
		t.Error("report data claims color detection")
	}
}

func TestScanInvalidThresholds(t *testing.T) {
	_, _, err := Open(bookPDF(t)).SampleThreshold(0).Scan()
	if err == nil {
		t.Error("expected threshold validation error")
	}
}

func TestOptionsAreImmutable(t *testing.T) {
	base := Open("book.pdf")
	derived := base.PageOffset(5).Pages(1, 2).SkipColor()

	if base.options.pageOffset != 33 || base.options.pages != nil || !base.options.detectColor {
		t.Errorf("base options changed: %+v", base.options)
	}
	if derived.options.pageOffset != 5 || len(derived.options.pages) != 2 || derived.options.detectColor {
		t.Errorf("derived options = %+v", derived.options)
	}

	more := derived.Pages(3)
	if len(derived.options.pages) != 2 || len(more.options.pages) != 3 {
		t.Error("Pages shares its slice between scanners")
	}
}

func TestClassifyPage(t *testing.T) {
	s := Open(bookPDF(t)).Logger(quietLogger())

	v, err := s.ClassifyPage(2)
	if err != nil {
		t.Fatal(err)
	}
	if !v.Colored || v.Signal != chroma.SignalContentStream {
		t.Errorf("page 2 verdict = %+v", v)
	}

	v, err = s.ClassifyPage(1)
	if err != nil {
		t.Fatal(err)
	}
	if v.Colored {
		t.Errorf("page 1 verdict = %+v", v)
	}

	if _, err := s.ClassifyPage(4); err == nil {
		t.Error("expected error for page out of range")
	}
}

func TestClassifyPageRedImage(t *testing.T) {
	path := pdftest.Write(t, "red.pdf", pdftest.Document(
		pdftest.Page{
			Content: "q 10 0 0 10 0 0 cm /Im1 Do Q",
			Images: []pdftest.Image{{
				Name:       "Im1",
				Width:      10,
				Height:     10,
				ColorSpace: "/DeviceRGB",
				Data:       pdftest.RGB(10, 10, 220, 10, 10),
			}},
		},
	))

	v, err := Open(path).Logger(quietLogger()).ClassifyPage(1)
	if err != nil {
		t.Fatal(err)
	}
	if !v.Colored || v.Signal != "pixels:channel-difference" {
		t.Errorf("verdict = %+v", v)
	}

	result, _, err := Open(path).PageOffset(0).Logger(quietLogger()).Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []report.ColorPage{{PDFPage: 1, BookPage: 1, Signal: chroma.PixelSignal("channel-difference")}}
	if got := result.ColorPages(); !reflect.DeepEqual(got, want) {
		t.Errorf("ColorPages = %+v, want %+v", got, want)
	}
}

type fakeOCR struct {
	text   string
	calls  int
	closed bool
}

func (f *fakeOCR) RecognizeImage(image.Image) (string, error) {
	f.calls++
	return f.text, nil
}

func (f *fakeOCR) Close() error {
	f.closed = true
	return nil
}

func TestScanOCRFallback(t *testing.T) {
	path := pdftest.Write(t, "scan.pdf", pdftest.Document(pdftest.Page{
		Content: "q 2 0 0 2 0 0 cm /Im1 Do Q",
		Images: []pdftest.Image{{
			Name: "Im1", Width: 2, Height: 2, ColorSpace: "/DeviceGray", Data: []byte{0, 255, 255, 0},
		}},
	}))

	fake := &fakeOCR{text: "Figure 3-1. Scanned caption"}
	s := Open(path).PageOffset(0).WithOCR("eng").Logger(quietLogger())
	s.newOCR = func(string) (recognizer, error) { return fake, nil }

	result, warnings, err := s.Scan()
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) > 0 {
		t.Errorf("warnings: %s", FormatWarnings(warnings))
	}
	if fake.calls != 1 || !fake.closed {
		t.Errorf("ocr calls = %d, closed = %v", fake.calls, fake.closed)
	}
	if len(result.Figures) != 1 || result.Figures[0].Caption != "Scanned caption" || !result.Pages[0].OCR {
		t.Errorf("figures = %+v", result.Figures)
	}
}

func TestScanOCRUnavailable(t *testing.T) {
	s := Open(bookPDF(t)).WithOCR("").Logger(quietLogger())
	s.newOCR = func(string) (recognizer, error) { return nil, errors.New("no tesseract") }

	result, warnings, err := s.Scan()
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 1 || warnings[0].Stage != "ocr" {
		t.Errorf("warnings = %v", warnings)
	}
	if len(result.Figures) != 3 {
		t.Errorf("figures = %d", len(result.Figures))
	}
}

func TestScanLedger(t *testing.T) {
	ledger, err := store.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer ledger.Close()

	result, warnings, err := Open(bookPDF(t)).PageOffset(1).Ledger(ledger).Logger(quietLogger()).Scan()
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) > 0 {
		t.Errorf("warnings: %s", FormatWarnings(warnings))
	}
	if result.RunID == "" {
		t.Fatal("no run id")
	}

	ctx := context.Background()
	runs, err := ledger.Runs(ctx)
	if err != nil || len(runs) != 1 || runs[0].Status != store.StatusDone {
		t.Fatalf("runs = %+v, %v", runs, err)
	}
	pages, err := ledger.Pages(ctx, result.RunID)
	if err != nil || len(pages) != 3 || !pages[1].Colored {
		t.Errorf("pages = %+v, %v", pages, err)
	}
	figs, err := ledger.Figures(ctx, result.RunID)
	if err != nil || len(figs) != 3 {
		t.Errorf("figures = %+v, %v", figs, err)
	}
}

func TestFigurePages(t *testing.T) {
	cfg := config.Default()
	cfg.PDFPath = bookPDF(t)
	cfg.OutputFile = filepath.Join(t.TempDir(), "out.json")
	cfg.Format = "json"
	cfg.PageOffset = 1

	got := FigurePages(cfg, quietLogger())
	if !reflect.DeepEqual(got, []int{2, 2}) {
		t.Errorf("FigurePages = %v", got)
	}
	if _, err := os.Stat(cfg.OutputFile); err != nil {
		t.Errorf("report not written: %v", err)
	}
}

func TestFigurePagesOpenFailure(t *testing.T) {
	cfg := config.Default()
	cfg.PDFPath = filepath.Join(t.TempDir(), "missing.pdf")
	cfg.OutputFile = filepath.Join(t.TempDir(), "out.txt")

	got := FigurePages(cfg, quietLogger())
	if got == nil || len(got) != 0 {
		t.Errorf("FigurePages = %#v, want empty list", got)
	}
	if _, err := os.Stat(cfg.OutputFile); !os.IsNotExist(err) {
		t.Error("report written for unreadable document")
	}
}

func TestFormatWarnings(t *testing.T) {
	ws := []Warning{
		{Page: 4, Stage: "text", Err: errors.New("bad font")},
		{Stage: "ocr", Err: errors.New("disabled")},
	}
	want := "page 4: text: bad font\nocr: disabled"
	if got := FormatWarnings(ws); got != want {
		t.Errorf("FormatWarnings = %q, want %q", got, want)
	}
}
