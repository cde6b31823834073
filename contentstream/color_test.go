package contentstream

import "testing"

func TestScanColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		colored bool
		op      string
	}{
		{"fill rgb", "1 0 0 rg 0 0 10 10 re f", true, "rg"},
		{"stroke rgb", "0.2 0.4 0.6 RG", true, "RG"},
		{"gray triple", "0.5 0.5 0.5 rg 1 1 1 RG", false, ""},
		{"integer and real equal", "1 1.0 1 rg", false, ""},
		{"gray operator only", "0.3 g 0.7 G", false, ""},
		{"no colour operators", "BT (text) Tj ET", false, ""},
		{"too few operands", "0.5 0.2 rg", false, ""},
		{"name operand", "/CS0 cs 0.1 0.2 0.3 sc", false, ""},
		{"empty", "", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scan, _ := ScanColor([]byte(tt.input))
			if scan.Colored != tt.colored {
				t.Errorf("Colored = %v, want %v", scan.Colored, tt.colored)
			}
			if scan.Operator != tt.op {
				t.Errorf("Operator = %q, want %q", scan.Operator, tt.op)
			}
		})
	}
}

func TestScanColorStopsAtFirstColour(t *testing.T) {
	scan, err := ScanColor([]byte("0 0 0 rg 0 1 0 RG 1 0 0 rg"))
	if err != nil {
		t.Fatalf("ScanColor: %v", err)
	}
	if !scan.Colored || scan.Operator != "RG" {
		t.Fatalf("scan = %+v", scan)
	}
	if scan.RGB != [3]float64{0, 1, 0} {
		t.Errorf("RGB = %v", scan.RGB)
	}
	if scan.RGBOps != 2 {
		t.Errorf("RGBOps = %d, want 2", scan.RGBOps)
	}
}

func TestScanColorGrayLevelsNeverColour(t *testing.T) {
	scan, _ := ScanColor([]byte("0.3 g 0.5 g 0.25 G 0 g 1 G 0.9 g"))
	if scan.Colored {
		t.Error("gray levels marked the stream coloured")
	}
	if scan.GrayOps != 6 {
		t.Errorf("GrayOps = %d, want 6", scan.GrayOps)
	}
	if scan.MidGrays != 2 {
		t.Errorf("MidGrays = %d, want 2", scan.MidGrays)
	}
}

func TestScanColorSurvivesDamage(t *testing.T) {
	scan, err := ScanColor([]byte("\x80\x81} 0 0 1 rg"))
	if err == nil {
		t.Error("expected a syntax error for the damaged prefix")
	}
	if !scan.Colored {
		t.Error("colour after damaged bytes was not found")
	}
}
