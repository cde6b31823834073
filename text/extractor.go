package text

import (
	"fmt"
	"math"
	"strings"

	"github.com/tsawler/figscan/contentstream"
)

// Moves smaller than this in text space units stay on the same line.
const baselineTolerance = 0.5

// TJ adjustments more negative than this (thousandths of an em) read as a
// word gap.
const wordGap = -150

// Extractor turns content stream operations into plain text.
type Extractor struct {
	fonts    map[string]*font
	fallback *font

	current *font
	tmY     float64 // baseline of the text line matrix
	lineY   float64 // baseline of the last text written
	sb      strings.Builder

	pendingBreak bool
	pendingSpace bool
}

// NewExtractor returns an extractor that decodes unknown fonts as WinAnsi.
func NewExtractor() *Extractor {
	return &Extractor{
		fonts:    make(map[string]*font),
		fallback: newFont(FontSpec{}),
	}
}

// RegisterFont makes spec available under the resource name used by Tf,
// with or without the leading slash.
func (e *Extractor) RegisterFont(name string, spec FontSpec) {
	e.fonts[strings.TrimPrefix(name, "/")] = newFont(spec)
}

// ExtractBytes parses data and extracts its text. Syntax damage is reported
// but the text around it is still returned.
func (e *Extractor) ExtractBytes(data []byte) (string, error) {
	ops, err := contentstream.NewParser(data).Parse()
	out := e.Extract(ops)
	if err != nil {
		return out, fmt.Errorf("parse content stream: %w", err)
	}
	return out, nil
}

// Extract returns the text shown by ops.
func (e *Extractor) Extract(ops []contentstream.Operation) string {
	e.sb.Reset()
	e.current = e.fallback
	e.tmY, e.lineY = 0, 0
	e.pendingBreak, e.pendingSpace = false, false

	for _, op := range ops {
		e.process(op)
	}
	return e.sb.String()
}

func (e *Extractor) process(op contentstream.Operation) {
	args := op.Operands
	switch op.Operator {
	case "BT":
		e.tmY = 0
	case "ET":
		e.pendingSpace = true
	case "Tf":
		if len(args) >= 1 {
			if name, ok := args[0].(contentstream.Name); ok {
				if f, ok := e.fonts[string(name)]; ok {
					e.current = f
				} else {
					e.current = e.fallback
				}
			}
		}
	case "Td", "TD":
		if len(args) == 2 {
			tx, _ := contentstream.Number(args[0])
			ty, _ := contentstream.Number(args[1])
			e.tmY += ty
			if tx != 0 {
				e.pendingSpace = true
			}
		}
	case "Tm":
		if len(args) == 6 {
			e.tmY, _ = contentstream.Number(args[5])
			e.pendingSpace = true
		}
	case "T*":
		e.pendingBreak = true
	case "Tj":
		if len(args) >= 1 {
			e.show(args[len(args)-1])
		}
	case "'", "\"":
		e.pendingBreak = true
		if len(args) >= 1 {
			e.show(args[len(args)-1])
		}
	case "TJ":
		if len(args) >= 1 {
			if arr, ok := args[len(args)-1].(contentstream.Array); ok {
				for _, item := range arr {
					if n, ok := contentstream.Number(item); ok {
						if n < wordGap {
							e.pendingSpace = true
						}
						continue
					}
					e.show(item)
				}
			}
		}
	}
}

func (e *Extractor) show(o contentstream.Object) {
	s, ok := o.(contentstream.String)
	if !ok {
		return
	}
	decoded := e.current.decode([]byte(s))
	if decoded == "" {
		return
	}

	if math.Abs(e.tmY-e.lineY) > baselineTolerance {
		e.pendingBreak = true
	}
	if e.sb.Len() > 0 {
		last := e.sb.String()[e.sb.Len()-1]
		switch {
		case e.pendingBreak:
			if last != '\n' {
				e.sb.WriteByte('\n')
			}
		case e.pendingSpace:
			if last != ' ' && last != '\n' && decoded[0] != ' ' {
				e.sb.WriteByte(' ')
			}
		}
	}
	e.pendingBreak, e.pendingSpace = false, false
	e.lineY = e.tmY
	e.sb.WriteString(decoded)
}
