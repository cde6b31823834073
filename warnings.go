package figscan

import (
	"fmt"
	"strings"
)

// Warning is a non-fatal problem met during a scan. The scan went on and
// the result is still usable, but may be incomplete for Page.
type Warning struct {
	Page  int    // PDF page, 0 when the warning is not about one page
	Stage string // what was being done: page, color, text, ocr, ledger
	Err   error
}

func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("page %d: %s: %v", w.Page, w.Stage, w.Err)
	}
	return fmt.Sprintf("%s: %v", w.Stage, w.Err)
}

// FormatWarnings renders warnings one per line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
