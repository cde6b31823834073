package contentstream

// ColorScan summarizes the colour setting operators of a content stream.
type ColorScan struct {
	Colored  bool
	Operator string     // rg or RG that decided Colored
	RGB      [3]float64 // triple that decided Colored
	RGBOps   int        // rg/RG operators with three numeric operands seen
	GrayOps  int        // g/G operators with a numeric operand seen

	// MidGrays counts g/G levels strictly between 0 and 1 other than 0.25,
	// 0.5 and 0.75. Such levels are often a colour flattened to gray, but a
	// gray level alone never marks a page as coloured.
	MidGrays int
}

// ScanColor parses data and scans the result. A parse error does not stop
// the scan: the recovered operations are still inspected and the error is
// returned alongside.
func ScanColor(data []byte) (ColorScan, error) {
	ops, err := NewParser(data).Parse()
	return ScanOperations(ops), err
}

// ScanOperations looks for an rg or RG operator whose three components are
// not all equal and stops at the first one.
func ScanOperations(ops []Operation) ColorScan {
	var scan ColorScan
	for _, op := range ops {
		switch op.Operator {
		case "rg", "RG":
			rgb, ok := lastNumbers(op.Operands, 3)
			if !ok {
				continue
			}
			scan.RGBOps++
			if rgb[0] != rgb[1] || rgb[1] != rgb[2] {
				scan.Colored = true
				scan.Operator = op.Operator
				copy(scan.RGB[:], rgb)
				return scan
			}
		case "g", "G":
			v, ok := lastNumbers(op.Operands, 1)
			if !ok {
				continue
			}
			scan.GrayOps++
			if ambiguousGray(v[0]) {
				scan.MidGrays++
			}
		}
	}
	return scan
}

// lastNumbers returns the final n operands as numbers.
func lastNumbers(operands []Object, n int) ([]float64, bool) {
	if len(operands) < n {
		return nil, false
	}
	out := make([]float64, n)
	for i, o := range operands[len(operands)-n:] {
		v, ok := Number(o)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func ambiguousGray(v float64) bool {
	if v <= 0 || v >= 1 {
		return false
	}
	return v != 0.25 && v != 0.5 && v != 0.75
}
