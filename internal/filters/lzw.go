package filters

import (
	"bytes"
	"fmt"
	"io"

	"github.com/hhrutter/lzw"
)

// LZWDecode decompresses LZW data. EarlyChange defaults to 1 as in the PDF
// reference; the decoder's oneOff flag carries it.
func LZWDecode(data []byte, params Params) ([]byte, error) {
	early := getIntParam(params, "EarlyChange", 1) == 1

	rc := lzw.NewReader(bytes.NewReader(data), early)
	defer rc.Close()

	out, err := io.ReadAll(rc)
	if err != nil && len(out) == 0 {
		return nil, fmt.Errorf("lzw decompression failed: %w", err)
	}
	return applyPredictor(out, params)
}
