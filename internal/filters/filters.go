package filters

import (
	"errors"
	"fmt"
)

// Params represents decode parameters from a /DecodeParms dictionary.
// Integer values are stored as int and booleans as bool.
type Params map[string]interface{}

// Codec filters are left for an image decoder.
const (
	CodecDCT = "DCTDecode"
	CodecJPX = "JPXDecode"
)

// ErrUnsupportedFilter is returned for filter names this package cannot decode.
var ErrUnsupportedFilter = errors.New("filters: unsupported filter")

// abbreviations maps the inline image short names onto the full filter names.
var abbreviations = map[string]string{
	"AHx": "ASCIIHexDecode",
	"A85": "ASCII85Decode",
	"LZW": "LZWDecode",
	"Fl":  "FlateDecode",
	"RL":  "RunLengthDecode",
	"CCF": "CCITTFaxDecode",
	"DCT": CodecDCT,
}

// Canonical returns the full filter name for an abbreviated one.
func Canonical(name string) string {
	if full, ok := abbreviations[name]; ok {
		return full
	}
	return name
}

// IsCodec reports whether name is an image codec that Decode stops at.
func IsCodec(name string) bool {
	switch Canonical(name) {
	case CodecDCT, CodecJPX:
		return true
	}
	return false
}

// Decode applies names to data in order. params is indexed like names and may
// be shorter or nil. If the chain reaches an image codec, Decode returns the
// bytes still encoded with it together with the codec name.
func Decode(data []byte, names []string, params []Params) ([]byte, string, error) {
	out := data
	for i, name := range names {
		var p Params
		if i < len(params) {
			p = params[i]
		}
		name = Canonical(name)
		if IsCodec(name) {
			if i != len(names)-1 {
				return nil, "", fmt.Errorf("filters: %s must be the last filter, got %d more", name, len(names)-1-i)
			}
			return out, name, nil
		}

		var err error
		out, err = apply(name, out, p)
		if err != nil {
			return nil, "", fmt.Errorf("filters: %s: %w", name, err)
		}
	}
	return out, "", nil
}

func apply(name string, data []byte, p Params) ([]byte, error) {
	switch name {
	case "FlateDecode":
		return FlateDecode(data, p)
	case "LZWDecode":
		return LZWDecode(data, p)
	case "ASCIIHexDecode":
		return ASCIIHexDecode(data)
	case "ASCII85Decode":
		return ASCII85Decode(data)
	case "RunLengthDecode":
		return RunLengthDecode(data)
	case "CCITTFaxDecode":
		return CCITTFaxDecode(data, p)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFilter, name)
}

// getIntParam extracts an integer parameter, returning defaultValue when the
// key is missing or holds something other than a number.
func getIntParam(params Params, key string, defaultValue int) int {
	if params == nil {
		return defaultValue
	}
	switch v := params[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	case float64:
		return int(v)
	}
	return defaultValue
}

// getBoolParam extracts a boolean parameter, returning defaultValue when the
// key is missing or not a bool.
func getBoolParam(params Params, key string, defaultValue bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return defaultValue
}
