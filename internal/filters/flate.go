package filters

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

// FlateDecode decompresses zlib/deflate data and undoes any predictor named
// in params.
func FlateDecode(data []byte, params Params) ([]byte, error) {
	decompressed, err := zlibDecompress(data)
	if err != nil {
		return nil, fmt.Errorf("zlib decompression failed: %w", err)
	}
	return applyPredictor(decompressed, params)
}

// zlibDecompress inflates data. A truncated stream yields whatever was
// recovered before the damage, which is common in scanned books.
func zlibDecompress(data []byte) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create zlib reader: %w", err)
	}
	defer reader.Close()

	var buf bytes.Buffer
	_, err = io.Copy(&buf, reader)
	if err != nil {
		if buf.Len() > 0 && (err == io.ErrUnexpectedEOF || err == io.EOF) {
			return buf.Bytes(), nil
		}
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	return buf.Bytes(), nil
}

// predictorLayout describes the row geometry a predictor works on.
type predictorLayout struct {
	rowBytes      int // bytes of sample data per row
	bytesPerPixel int // distance to the "left" byte, at least 1
	colors        int
	bpc           int
}

func layoutFor(params Params) predictorLayout {
	columns := getIntParam(params, "Columns", 1)
	colors := getIntParam(params, "Colors", 1)
	bpc := getIntParam(params, "BitsPerComponent", 8)
	bpp := (colors*bpc + 7) / 8
	if bpp < 1 {
		bpp = 1
	}
	return predictorLayout{
		rowBytes:      (columns*colors*bpc + 7) / 8,
		bytesPerPixel: bpp,
		colors:        colors,
		bpc:           bpc,
	}
}

// applyPredictor undoes the predictor from params. Predictor 1 (or none) is
// the identity, 2 is TIFF Predictor 2, and 10-15 are the PNG predictors.
func applyPredictor(data []byte, params Params) ([]byte, error) {
	predictor := getIntParam(params, "Predictor", 1)
	switch {
	case predictor <= 1:
		return data, nil
	case predictor == 2:
		return applyTIFFPredictor2(data, layoutFor(params))
	case predictor >= 10 && predictor <= 15:
		return applyPNGPredictor(data, layoutFor(params))
	}
	return nil, fmt.Errorf("unsupported predictor: %d", predictor)
}

// applyTIFFPredictor2 adds each sample to the one to its left. Only 8 bit
// samples are handled; they are the only depth seen in practice.
func applyTIFFPredictor2(data []byte, l predictorLayout) ([]byte, error) {
	if l.bpc != 8 {
		return nil, fmt.Errorf("TIFF Predictor 2 only supports 8 bits per component, got %d", l.bpc)
	}
	if l.rowBytes <= 0 || len(data)%l.rowBytes != 0 {
		return nil, fmt.Errorf("data size %d is not a multiple of row size %d", len(data), l.rowBytes)
	}

	result := make([]byte, len(data))
	for rowStart := 0; rowStart < len(data); rowStart += l.rowBytes {
		for col := 0; col < l.rowBytes; col++ {
			idx := rowStart + col
			if col < l.colors {
				result[idx] = data[idx]
			} else {
				result[idx] = data[idx] + result[idx-l.colors]
			}
		}
	}
	return result, nil
}

// applyPNGPredictor decodes rows that each start with a PNG filter type byte.
// A trailing partial row is dropped.
func applyPNGPredictor(data []byte, l predictorLayout) ([]byte, error) {
	stride := l.rowBytes + 1
	numRows := len(data) / stride
	if numRows == 0 {
		return nil, fmt.Errorf("data size %d is smaller than row size %d", len(data), stride)
	}

	result := make([]byte, numRows*l.rowBytes)
	var prev []byte
	for row := 0; row < numRows; row++ {
		src := data[row*stride : (row+1)*stride]
		dst := result[row*l.rowBytes : (row+1)*l.rowBytes]
		if err := decodePNGRow(dst, src[1:], prev, src[0], l.bytesPerPixel); err != nil {
			return nil, fmt.Errorf("failed to decode row %d: %w", row, err)
		}
		prev = dst
	}
	return result, nil
}

// decodePNGRow writes the reconstruction of cur into dst. prev is the
// previous reconstructed row, nil for the first row.
func decodePNGRow(dst, cur, prev []byte, filter byte, bpp int) error {
	for i := range cur {
		var left, up, upLeft byte
		if i >= bpp {
			left = dst[i-bpp]
		}
		if prev != nil {
			up = prev[i]
			if i >= bpp {
				upLeft = prev[i-bpp]
			}
		}

		var predicted byte
		switch filter {
		case 0:
		case 1:
			predicted = left
		case 2:
			predicted = up
		case 3:
			predicted = byte((int(left) + int(up)) / 2)
		case 4:
			predicted = paethPredictor(left, up, upLeft)
		default:
			return fmt.Errorf("unknown PNG predictor: %d", filter)
		}
		dst[i] = cur[i] + predicted
	}
	return nil
}

// paethPredictor picks whichever of left, above and upper-left is closest to
// left+above-upperLeft.
func paethPredictor(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))

	if pa <= pb && pa <= pc {
		return a
	} else if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
