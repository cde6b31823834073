package filters

import (
	"bytes"
	"io"

	"golang.org/x/image/ccitt"
)

// CCITTFaxDecode decodes Group 3 or Group 4 fax data into one bit per pixel
// rows, byte aligned, where 1 is white unless BlackIs1 is set.
//
// Parameters:
//   - K: -1 selects Group 4, anything else Group 3
//   - Columns: width in pixels (default 1728)
//   - Rows: height in pixels (default: detected)
//   - BlackIs1: maps to ccitt.Options.Invert
func CCITTFaxDecode(data []byte, params Params) ([]byte, error) {
	columns := getIntParam(params, "Columns", 1728)
	rows := getIntParam(params, "Rows", 0)
	k := getIntParam(params, "K", 0)
	blackIs1 := getBoolParam(params, "BlackIs1", false)

	sf := ccitt.Group3
	if k < 0 {
		sf = ccitt.Group4
	}
	if rows <= 0 {
		rows = ccitt.AutoDetectHeight
	}

	reader := ccitt.NewReader(bytes.NewReader(data), ccitt.MSB, sf, columns, rows, &ccitt.Options{Invert: blackIs1})
	return io.ReadAll(reader)
}
