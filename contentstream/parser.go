package contentstream

import (
	"bytes"
	"fmt"
	"strconv"
)

// Operation is a single operator with the operands that preceded it.
type Operation struct {
	Operator string   // e.g. "Tj", "rg", "q"
	Operands []Object // in stream order
}

// Parser parses a content stream into operations.
type Parser struct {
	data     []byte
	pos      int
	ops      []Operation
	operands []Object

	errPos  int
	err     error
	skipped int
}

// NewParser creates a parser over data. data is not modified.
func NewParser(data []byte) *Parser {
	return &Parser{data: data}
}

// Parse tokenizes the whole stream. The returned operations are complete
// even when err is non-nil; err is then a *SyntaxError describing what was
// skipped.
func (p *Parser) Parse() ([]Operation, error) {
	for {
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			break
		}
		start := p.pos
		if err := p.parseNext(); err != nil {
			p.recoverAt(start, err)
		}
	}

	if p.skipped > 0 {
		return p.ops, &SyntaxError{Pos: p.errPos, Skipped: p.skipped, Err: p.err}
	}
	return p.ops, nil
}

// recoverAt drops the pending operands and resumes one byte past start.
func (p *Parser) recoverAt(start int, err error) {
	if p.skipped == 0 {
		p.errPos, p.err = start, err
	}
	p.skipped++
	p.operands = p.operands[:0]
	p.pos = start + 1
}

// parseNext consumes one token: an operand is pushed, an operator emits an
// operation.
func (p *Parser) parseNext() error {
	c := p.data[p.pos]
	if isLetter(c) || c == '\'' || c == '"' {
		return p.parseOperator()
	}

	operand, err := p.parseOperand()
	if err != nil {
		return err
	}
	p.operands = append(p.operands, operand)
	return nil
}

// parseOperator reads an operator token. The keywords true, false and null
// are operands and are pushed instead.
func (p *Parser) parseOperator() error {
	start := p.pos
	if c := p.data[p.pos]; c == '\'' || c == '"' {
		p.pos++
	} else {
		for p.pos < len(p.data) {
			c := p.data[p.pos]
			if !isLetter(c) && !isDigit(c) && c != '*' {
				break
			}
			p.pos++
		}
	}

	operator := string(p.data[start:p.pos])
	switch operator {
	case "true":
		p.operands = append(p.operands, Bool(true))
		return nil
	case "false":
		p.operands = append(p.operands, Bool(false))
		return nil
	case "null":
		p.operands = append(p.operands, Null{})
		return nil
	}

	operands := make([]Object, len(p.operands))
	copy(operands, p.operands)
	p.ops = append(p.ops, Operation{Operator: operator, Operands: operands})
	p.operands = p.operands[:0]

	if operator == "ID" {
		p.skipInlineImageData()
	}
	return nil
}

// skipInlineImageData moves past the binary data of an inline image up to
// and including the EI operator. An unterminated image consumes the rest of
// the stream.
func (p *Parser) skipInlineImageData() {
	if p.pos < len(p.data) && isWhitespace(p.data[p.pos]) {
		p.pos++
	}
	for i := p.pos; i+1 < len(p.data); i++ {
		if p.data[i] != 'E' || p.data[i+1] != 'I' {
			continue
		}
		if i > 0 && !isWhitespace(p.data[i-1]) {
			continue
		}
		if i+2 < len(p.data) && !isWhitespace(p.data[i+2]) && !isDelimiter(p.data[i+2]) {
			continue
		}
		p.pos = i + 2
		p.ops = append(p.ops, Operation{Operator: "EI"})
		return
	}
	p.pos = len(p.data)
}

// parseOperand parses a number, string, name, array or dictionary.
func (p *Parser) parseOperand() (Object, error) {
	p.skipWhitespace()
	if p.pos >= len(p.data) {
		return nil, fmt.Errorf("unexpected end of stream")
	}

	c := p.data[p.pos]
	switch {
	case c == '-' || c == '+' || c == '.' || isDigit(c):
		return p.parseNumber()
	case c == '(':
		return p.parseString()
	case c == '<' && p.pos+1 < len(p.data) && p.data[p.pos+1] == '<':
		return p.parseDict()
	case c == '<':
		return p.parseHexString()
	case c == '/':
		return p.parseName(), nil
	case c == '[':
		return p.parseArray()
	case isLetter(c):
		// Only keywords may appear where an operand is required.
		start := p.pos
		for p.pos < len(p.data) && isLetter(p.data[p.pos]) {
			p.pos++
		}
		switch string(p.data[start:p.pos]) {
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		case "null":
			return Null{}, nil
		}
		return nil, fmt.Errorf("operator %q inside operand", p.data[start:p.pos])
	}
	return nil, fmt.Errorf("unexpected character %q", c)
}

// parseNumber parses an integer or real operand.
func (p *Parser) parseNumber() (Object, error) {
	start := p.pos
	hasDecimal := false

	if p.data[p.pos] == '+' || p.data[p.pos] == '-' {
		p.pos++
	}
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if isDigit(c) {
			p.pos++
		} else if c == '.' && !hasDecimal {
			hasDecimal = true
			p.pos++
		} else {
			break
		}
	}

	numStr := string(p.data[start:p.pos])
	if !hasDecimal {
		if val, err := strconv.ParseInt(numStr, 10, 64); err == nil {
			return Int(val), nil
		}
	}
	val, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", numStr)
	}
	return Real(val), nil
}

// parseString parses a literal string.
func (p *Parser) parseString() (Object, error) {
	out, next, err := readLiteral(p.data, p.pos+1)
	if err != nil {
		return nil, err
	}
	p.pos = next
	return String(out), nil
}

// readLiteral decodes a literal string body starting just after its opening
// parenthesis and returns the bytes and the offset after the closing one.
func readLiteral(data []byte, pos int) ([]byte, int, error) {
	var result bytes.Buffer
	depth := 1

	for pos < len(data) {
		c := data[pos]
		switch {
		case c == '\\' && pos+1 < len(data):
			pos++
			next := data[pos]
			pos++
			switch next {
			case 'n':
				result.WriteByte('\n')
			case 'r':
				result.WriteByte('\r')
			case 't':
				result.WriteByte('\t')
			case 'b':
				result.WriteByte('\b')
			case 'f':
				result.WriteByte('\f')
			case '\r':
				if pos < len(data) && data[pos] == '\n' {
					pos++
				}
			case '\n':
			case '0', '1', '2', '3', '4', '5', '6', '7':
				val := int(next - '0')
				for i := 0; i < 2 && pos < len(data) && data[pos] >= '0' && data[pos] <= '7'; i++ {
					val = val*8 + int(data[pos]-'0')
					pos++
				}
				result.WriteByte(byte(val))
			default:
				// \( \) \\ and unknown escapes keep the character.
				result.WriteByte(next)
			}
			continue
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return result.Bytes(), pos + 1, nil
			}
		}
		result.WriteByte(c)
		pos++
	}
	return nil, pos, fmt.Errorf("unclosed string")
}

// UnescapeLiteral decodes the body of a literal string, without its
// parentheses, as it appears in a PDF file.
func UnescapeLiteral(body string) []byte {
	out, _, err := readLiteral([]byte(body+")"), 0)
	if err != nil {
		return []byte(body)
	}
	return out
}

// parseHexString parses a hexadecimal string <...>. An odd final digit is
// padded with 0.
func (p *Parser) parseHexString() (Object, error) {
	p.pos++
	var result bytes.Buffer
	var hi byte
	half := false

	for p.pos < len(p.data) {
		c := p.data[p.pos]
		p.pos++
		if c == '>' {
			if half {
				result.WriteByte(hi << 4)
			}
			return String(result.String()), nil
		}
		if isWhitespace(c) {
			continue
		}
		if !isHexDigit(c) {
			return nil, fmt.Errorf("invalid hex digit %q", c)
		}
		if half {
			result.WriteByte(hi<<4 | hexValue(c))
		} else {
			hi = hexValue(c)
		}
		half = !half
	}
	return nil, fmt.Errorf("unclosed hex string")
}

// parseName parses /Name, decoding #xx escapes.
func (p *Parser) parseName() Object {
	p.pos++
	var result bytes.Buffer

	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if isWhitespace(c) || isDelimiter(c) {
			break
		}
		if c == '#' && p.pos+2 < len(p.data) && isHexDigit(p.data[p.pos+1]) && isHexDigit(p.data[p.pos+2]) {
			result.WriteByte(hexValue(p.data[p.pos+1])<<4 | hexValue(p.data[p.pos+2]))
			p.pos += 3
			continue
		}
		result.WriteByte(c)
		p.pos++
	}
	return Name(result.String())
}

// parseArray parses [...].
func (p *Parser) parseArray() (Object, error) {
	p.pos++
	arr := Array{}

	for {
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("unclosed array")
		}
		if p.data[p.pos] == ']' {
			p.pos++
			return arr, nil
		}
		obj, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		arr = append(arr, obj)
	}
}

// parseDict parses <<...>>.
func (p *Parser) parseDict() (Object, error) {
	p.pos += 2
	dict := Dict{}

	for {
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("unclosed dictionary")
		}
		if p.data[p.pos] == '>' && p.pos+1 < len(p.data) && p.data[p.pos+1] == '>' {
			p.pos += 2
			return dict, nil
		}
		if p.data[p.pos] != '/' {
			return nil, fmt.Errorf("dictionary key must be a name")
		}
		key := p.parseName().(Name)

		value, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		dict[string(key)] = value
	}
}

// skipWhitespace advances past whitespace and comments.
func (p *Parser) skipWhitespace() {
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if c == '%' {
			for p.pos < len(p.data) && p.data[p.pos] != '\n' && p.data[p.pos] != '\r' {
				p.pos++
			}
			continue
		}
		if !isWhitespace(c) {
			return
		}
		p.pos++
	}
}

// isWhitespace reports whether c is a PDF whitespace character.
func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isDelimiter reports whether c is a PDF delimiter character.
func isDelimiter(c byte) bool {
	return c == '(' || c == ')' || c == '<' || c == '>' ||
		c == '[' || c == ']' || c == '{' || c == '}' ||
		c == '/' || c == '%'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// hexValue returns the value of a hexadecimal digit.
func hexValue(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
