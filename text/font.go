package text

import (
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// FontSpec is what the extractor needs to know about a font resource.
type FontSpec struct {
	BaseEncoding string          // /Encoding name or /BaseEncoding of an encoding dictionary
	Differences  map[byte]string // code to glyph name from /Differences
	ToUnicode    []byte          // decoded ToUnicode stream, if any
	Composite    bool            // Type0 font
}

// font decodes show-text strings for one font resource.
type font struct {
	cmap        *CMap
	charset     *encoding.Decoder
	differences map[byte]string
	composite   bool
}

func newFont(spec FontSpec) *font {
	f := &font{differences: spec.Differences, composite: spec.Composite}
	if len(spec.ToUnicode) > 0 {
		if cm, err := ParseCMap(spec.ToUnicode); err == nil {
			f.cmap = cm
		}
	}
	switch spec.BaseEncoding {
	case "MacRomanEncoding":
		f.charset = charmap.Macintosh.NewDecoder()
	default:
		// WinAnsi is a superset of Standard for the letters and digits
		// captions use, and the usual choice for unnamed encodings.
		f.charset = charmap.Windows1252.NewDecoder()
	}
	return f
}

func (f *font) decode(b []byte) string {
	if f.cmap != nil {
		return f.cmap.Decode(b)
	}
	if f.composite {
		return ""
	}

	var sb strings.Builder
	for _, c := range b {
		if name, ok := f.differences[c]; ok {
			if s, ok := glyphText(name); ok {
				sb.WriteString(s)
				continue
			}
		}
		s, err := f.charset.Bytes([]byte{c})
		if err != nil {
			continue
		}
		sb.Write(s)
	}
	return sb.String()
}

// glyphNames covers the non-letter glyphs common in captions.
var glyphNames = map[string]string{
	"space": " ", "hyphen": "-", "minus": "-", "endash": "–", "emdash": "—",
	"period": ".", "comma": ",", "colon": ":", "semicolon": ";",
	"parenleft": "(", "parenright": ")", "quoteright": "’", "quoteleft": "‘",
	"quotedblleft": "“", "quotedblright": "”", "quotesingle": "'",
	"fi": "fi", "fl": "fl", "ff": "ff", "ffi": "ffi", "ffl": "ffl",
	"slash": "/", "ampersand": "&", "percent": "%", "bullet": "•",
	"zero": "0", "one": "1", "two": "2", "three": "3", "four": "4",
	"five": "5", "six": "6", "seven": "7", "eight": "8", "nine": "9",
}

// glyphText maps an Adobe glyph name to text: single letters, the names
// above, and uniXXXX forms.
func glyphText(name string) (string, bool) {
	if s, ok := glyphNames[name]; ok {
		return s, true
	}
	if len(name) == 1 && (name[0] >= 'a' && name[0] <= 'z' || name[0] >= 'A' && name[0] <= 'Z') {
		return name, true
	}
	if strings.HasPrefix(name, "uni") && len(name) == 7 {
		if v, err := strconv.ParseUint(name[3:], 16, 32); err == nil {
			return string(rune(v)), true
		}
	}
	return "", false
}
