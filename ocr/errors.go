//go:build ocr

package ocr

import "errors"

// ErrOCRNotEnabled is returned when the binary was built without the ocr tag.
// Builds with OCR never return it; it exists so callers compile either way.
var ErrOCRNotEnabled = errors.New("ocr: support not enabled; rebuild with -tags ocr")
