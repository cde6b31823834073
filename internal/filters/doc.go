// Package filters decodes the stream filters that PDF image XObjects are
// stored with.
//
// Decode runs a filter chain in the order the stream dictionary lists it:
//
//	out, codec, err := filters.Decode(raw, []string{"ASCII85Decode", "FlateDecode"}, nil)
//
// The general purpose filters (FlateDecode, LZWDecode, ASCIIHexDecode,
// ASCII85Decode, RunLengthDecode) and CCITTFaxDecode produce raw samples.
// DCTDecode and JPXDecode are image codecs: the chain stops in front of them
// and reports the codec name so the caller can hand the bytes to an image
// decoder.
//
// # Decode Parameters
//
// Each filter may carry a Params map taken from /DecodeParms:
//
//	params := filters.Params{
//	    "Predictor":        15,
//	    "Columns":          640,
//	    "Colors":           3,
//	    "BitsPerComponent": 8,
//	}
//	decoded, err := filters.FlateDecode(data, params)
//
// Flate and LZW both honour the TIFF (2) and PNG (10-15) predictors.
package filters
