package contentstream

import "fmt"

// Object is a content stream operand: Int, Real, String, Name, Array, Dict,
// Bool or Null.
type Object interface{}

// Int is an integer operand.
type Int int64

// Real is a real number operand.
type Real float64

// String holds the decoded bytes of a literal or hex string.
type String string

// Name is a name operand without its leading slash.
type Name string

// Array is an array operand.
type Array []Object

// Dict is a dictionary operand, as used by BDC and inline images.
type Dict map[string]Object

// Bool is a boolean operand.
type Bool bool

// Null is the null operand.
type Null struct{}

// Number returns the numeric value of an Int or Real operand.
func Number(o Object) (float64, bool) {
	switch v := o.(type) {
	case Int:
		return float64(v), true
	case Real:
		return float64(v), true
	}
	return 0, false
}

// SyntaxError reports bytes the parser had to skip.
type SyntaxError struct {
	Pos     int   // offset of the first skipped byte
	Skipped int   // number of recovery points
	Err     error // cause at Pos
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("content stream: %d unparseable token(s), first at offset %d: %v", e.Skipped, e.Pos, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }
