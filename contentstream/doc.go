// Package contentstream tokenizes PDF content streams and scans them for
// colour setting operators.
//
// The parser turns stream bytes into operations, each an operator with the
// operands that preceded it:
//
//	ops, err := contentstream.NewParser(streamData).Parse()
//	for _, op := range ops {
//	    fmt.Printf("Operator: %s, Operands: %v\n", op.Operator, op.Operands)
//	}
//
// Parsing is lenient. A byte that cannot start a token is skipped and the
// operands collected so far are dropped, so a damaged stream still yields
// every operation around the damage. Parse reports the damage as a
// *SyntaxError next to the recovered operations. Inline image data between
// ID and EI is skipped without interpretation.
//
// # Operand Types
//
//   - Numbers (Int, Real)
//   - Strings (String, for both literal and hex forms)
//   - Names (Name)
//   - Arrays (Array) and dictionaries (Dict)
//   - Bool and Null
//
// # Colour Scanning
//
// ScanColor reports whether a stream sets a non-gray RGB colour with rg or
// RG:
//
//	scan, _ := contentstream.ScanColor(streamData)
//	if scan.Colored {
//	    fmt.Println(scan.Operator, scan.RGB)
//	}
package contentstream
