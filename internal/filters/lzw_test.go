package filters

import (
	"bytes"
	"compress/lzw"
	"testing"
)

func TestLZWDecodeNoEarlyChange(t *testing.T) {
	original := bytes.Repeat([]byte("TOBEORNOTTOBEORTOBEORNOT"), 20)

	var buf bytes.Buffer
	w := lzw.NewWriter(&buf, lzw.MSB, 8)
	w.Write(original)
	w.Close()

	out, err := LZWDecode(buf.Bytes(), Params{"EarlyChange": 0})
	if err != nil {
		t.Fatalf("LZWDecode: %v", err)
	}
	if !bytes.Equal(out, original) {
		t.Errorf("got %q, want %q", out, original)
	}
}

func TestLZWDecodeViaChain(t *testing.T) {
	var buf bytes.Buffer
	w := lzw.NewWriter(&buf, lzw.MSB, 8)
	w.Write([]byte("abc"))
	w.Close()

	out, codec, err := Decode(buf.Bytes(), []string{"LZW"}, []Params{{"EarlyChange": 0}})
	if err != nil || codec != "" {
		t.Fatalf("Decode: %q, %v", codec, err)
	}
	if string(out) != "abc" {
		t.Errorf("got %q", out)
	}
}

func TestLZWDecodeGarbage(t *testing.T) {
	if _, err := LZWDecode([]byte{0xff, 0xff, 0xff, 0xff}, nil); err == nil {
		t.Error("expected error for invalid code stream")
	}
}
