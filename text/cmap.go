package text

import (
	"errors"
	"unicode/utf16"

	"github.com/tsawler/figscan/contentstream"
)

// CMap maps character codes to Unicode text, built from a ToUnicode stream.
type CMap struct {
	codeLen int // bytes per code, from the codespace ranges
	chars   map[uint32]string
	ranges  []cmapRange
}

type cmapRange struct {
	lo, hi uint32
	base   []uint16 // UTF-16 of the string for lo, last unit incremented
	list   []string // array form: one entry per code
}

// ParseCMap reads the bfchar, bfrange and codespacerange sections of a
// ToUnicode CMap. The PostScript wrapper is tokenized like a content stream:
// each end operator carries the section's entries as operands.
func ParseCMap(data []byte) (*CMap, error) {
	ops, _ := contentstream.NewParser(data).Parse()
	cm := &CMap{chars: make(map[uint32]string)}

	for _, op := range ops {
		switch op.Operator {
		case "endcodespacerange":
			for i := 0; i+1 < len(op.Operands); i += 2 {
				if lo, ok := op.Operands[i].(contentstream.String); ok && len(lo) > cm.codeLen {
					cm.codeLen = len(lo)
				}
			}
		case "endbfchar":
			for i := 0; i+1 < len(op.Operands); i += 2 {
				src, ok1 := op.Operands[i].(contentstream.String)
				dst, ok2 := op.Operands[i+1].(contentstream.String)
				if !ok1 || !ok2 {
					continue
				}
				cm.noteLen(len(src))
				cm.chars[codeOf([]byte(src))] = utf16String([]byte(dst))
			}
		case "endbfrange":
			for i := 0; i+2 < len(op.Operands); i += 3 {
				lo, ok1 := op.Operands[i].(contentstream.String)
				hi, ok2 := op.Operands[i+1].(contentstream.String)
				if !ok1 || !ok2 {
					continue
				}
				cm.noteLen(len(lo))
				r := cmapRange{lo: codeOf([]byte(lo)), hi: codeOf([]byte(hi))}
				switch dst := op.Operands[i+2].(type) {
				case contentstream.String:
					r.base = utf16Units([]byte(dst))
				case contentstream.Array:
					for _, d := range dst {
						s, _ := d.(contentstream.String)
						r.list = append(r.list, utf16String([]byte(s)))
					}
				default:
					continue
				}
				if r.hi >= r.lo {
					cm.ranges = append(cm.ranges, r)
				}
			}
		}
	}

	if len(cm.chars) == 0 && len(cm.ranges) == 0 {
		return nil, errors.New("text: CMap has no mappings")
	}
	if cm.codeLen == 0 {
		cm.codeLen = 1
	}
	return cm, nil
}

func (cm *CMap) noteLen(n int) {
	if cm.codeLen == 0 {
		cm.codeLen = n
	}
}

// CodeLen is the number of bytes per character code.
func (cm *CMap) CodeLen() int { return cm.codeLen }

// Lookup maps a single code. Unmapped codes return "".
func (cm *CMap) Lookup(code uint32) string {
	if s, ok := cm.chars[code]; ok {
		return s
	}
	for _, r := range cm.ranges {
		if code < r.lo || code > r.hi {
			continue
		}
		off := code - r.lo
		if r.list != nil {
			if int(off) < len(r.list) {
				return r.list[off]
			}
			return ""
		}
		if len(r.base) == 0 {
			return ""
		}
		units := append([]uint16(nil), r.base...)
		units[len(units)-1] += uint16(off)
		return string(utf16.Decode(units))
	}
	return ""
}

// Decode maps every code in b.
func (cm *CMap) Decode(b []byte) string {
	n := cm.codeLen
	var out []rune
	for i := 0; i+n <= len(b); i += n {
		out = append(out, []rune(cm.Lookup(codeOf(b[i:i+n])))...)
	}
	return string(out)
}

func codeOf(b []byte) uint32 {
	var c uint32
	for _, x := range b {
		c = c<<8 | uint32(x)
	}
	return c
}

func utf16Units(b []byte) []uint16 {
	units := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		units = append(units, uint16(b[i])<<8|uint16(b[i+1]))
	}
	if len(b)%2 == 1 {
		units = append(units, uint16(b[len(b)-1]))
	}
	return units
}

func utf16String(b []byte) string {
	return string(utf16.Decode(utf16Units(b)))
}
