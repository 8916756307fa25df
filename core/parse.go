package core

import (
	"bytes"
	"fmt"
	"strconv"
)

// Parser parses PDF objects from a byte slice.
//
// The same parser handles both file-level objects (which may contain indirect
// references and streams) and content-stream operands. Indirect references
// are recognized by lookahead: two integers followed by the keyword R.
type Parser struct {
	data []byte
	pos  int

	// resolveLength resolves an indirect /Length value when reading stream
	// data. May be nil, in which case streams with indirect lengths fall back
	// to scanning for the endstream keyword.
	resolveLength func(IndirectRef) (Object, error)
}

// NewParser creates a parser over data starting at offset zero.
func NewParser(data []byte) *Parser {
	return &Parser{data: data}
}

// SetLengthResolver installs a resolver for indirect stream /Length values.
func (p *Parser) SetLengthResolver(fn func(IndirectRef) (Object, error)) {
	p.resolveLength = fn
}

// Pos returns the current byte offset.
func (p *Parser) Pos() int { return p.pos }

// Seek moves the parser to the given byte offset.
func (p *Parser) Seek(offset int) { p.pos = offset }

// ParseIndirectAt parses a complete indirect object ("N G obj ... endobj")
// beginning at offset. It returns the object number, generation, and body.
// When the body is a dictionary followed by the stream keyword, the raw
// stream data is read and a *Stream is returned.
func (p *Parser) ParseIndirectAt(offset int) (num, gen int, obj Object, err error) {
	p.pos = offset
	p.skipWhitespace()

	num, err = p.readInt()
	if err != nil {
		return 0, 0, nil, fmt.Errorf("object number at offset %d: %w", offset, err)
	}
	p.skipWhitespace()
	gen, err = p.readInt()
	if err != nil {
		return 0, 0, nil, fmt.Errorf("generation number at offset %d: %w", offset, err)
	}
	p.skipWhitespace()
	if !p.consumeKeyword("obj") {
		return 0, 0, nil, fmt.Errorf("expected obj keyword at offset %d", p.pos)
	}

	obj, err = p.ParseObject()
	if err != nil {
		return 0, 0, nil, err
	}

	// A dictionary followed by the stream keyword is a stream object.
	if dict, ok := obj.(Dict); ok {
		p.skipWhitespace()
		if p.consumeKeyword("stream") {
			stream, serr := p.readStreamData(dict)
			if serr != nil {
				return 0, 0, nil, serr
			}
			return num, gen, stream, nil
		}
	}

	return num, gen, obj, nil
}

// ParseObject parses the next object. Two integers followed by R collapse
// into an IndirectRef.
func (p *Parser) ParseObject() (Object, error) {
	p.skipWhitespace()
	if p.pos >= len(p.data) {
		return nil, fmt.Errorf("unexpected end of data")
	}

	c := p.data[p.pos]

	switch {
	case c == '/':
		return p.parseName()
	case c == '(':
		return p.parseLiteralString()
	case c == '[':
		return p.parseArray()
	case c == '<':
		if p.pos+1 < len(p.data) && p.data[p.pos+1] == '<' {
			return p.parseDict()
		}
		return p.parseHexString()
	case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
		return p.parseNumberOrRef()
	case p.consumeKeyword("true"):
		return Bool(true), nil
	case p.consumeKeyword("false"):
		return Bool(false), nil
	case p.consumeKeyword("null"):
		return Null{}, nil
	}

	return nil, fmt.Errorf("unexpected byte %q at offset %d", c, p.pos)
}

// parseNumberOrRef parses a number. An integer followed by another integer
// and the keyword R is collapsed into an IndirectRef; otherwise the parser
// position is restored and the plain number returned.
func (p *Parser) parseNumberOrRef() (Object, error) {
	obj, err := p.parseNumber()
	if err != nil {
		return nil, err
	}

	first, ok := obj.(Int)
	if !ok || first < 0 {
		return obj, nil
	}

	save := p.pos
	p.skipWhitespace()
	gen, err := p.readInt()
	if err != nil || gen < 0 {
		p.pos = save
		return obj, nil
	}
	p.skipWhitespace()
	if p.consumeKeyword("R") {
		return IndirectRef{Number: int(first), Generation: gen}, nil
	}
	p.pos = save
	return obj, nil
}

// parseNumber parses an integer or real number.
func (p *Parser) parseNumber() (Object, error) {
	start := p.pos
	hasDecimal := false

	if p.pos < len(p.data) && (p.data[p.pos] == '+' || p.data[p.pos] == '-') {
		p.pos++
	}

	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if c >= '0' && c <= '9' {
			p.pos++
		} else if c == '.' && !hasDecimal {
			hasDecimal = true
			p.pos++
		} else {
			break
		}
	}

	numStr := string(p.data[start:p.pos])

	if hasDecimal {
		val, err := strconv.ParseFloat(numStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid real number %q: %w", numStr, err)
		}
		return Real(val), nil
	}

	val, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid integer %q: %w", numStr, err)
	}
	return Int(val), nil
}

// parseLiteralString parses (...) with escape handling and nested parens.
func (p *Parser) parseLiteralString() (Object, error) {
	p.pos++ // skip '('

	var result bytes.Buffer
	depth := 1

	for p.pos < len(p.data) && depth > 0 {
		c := p.data[p.pos]

		switch {
		case c == '\\' && p.pos+1 < len(p.data):
			p.pos++
			next := p.data[p.pos]
			switch next {
			case 'n':
				result.WriteByte('\n')
				p.pos++
			case 'r':
				result.WriteByte('\r')
				p.pos++
			case 't':
				result.WriteByte('\t')
				p.pos++
			case 'b':
				result.WriteByte('\b')
				p.pos++
			case 'f':
				result.WriteByte('\f')
				p.pos++
			case '(', ')', '\\':
				result.WriteByte(next)
				p.pos++
			case '\r':
				// Line continuation.
				p.pos++
				if p.pos < len(p.data) && p.data[p.pos] == '\n' {
					p.pos++
				}
			case '\n':
				p.pos++
			case '0', '1', '2', '3', '4', '5', '6', '7':
				// Octal escape, up to three digits.
				val := int(next - '0')
				p.pos++
				for i := 0; i < 2 && p.pos < len(p.data); i++ {
					d := p.data[p.pos]
					if d < '0' || d > '7' {
						break
					}
					val = val*8 + int(d-'0')
					p.pos++
				}
				result.WriteByte(byte(val & 0xFF))
			default:
				// Unknown escape: the backslash is ignored.
				result.WriteByte(next)
				p.pos++
			}
		case c == '(':
			depth++
			result.WriteByte(c)
			p.pos++
		case c == ')':
			depth--
			if depth > 0 {
				result.WriteByte(c)
			}
			p.pos++
		default:
			result.WriteByte(c)
			p.pos++
		}
	}

	if depth != 0 {
		return nil, fmt.Errorf("unclosed string")
	}
	return String(result.String()), nil
}

// parseHexString parses <...>.
func (p *Parser) parseHexString() (Object, error) {
	p.pos++ // skip '<'

	var result bytes.Buffer
	var pending byte
	havePending := false

	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if c == '>' {
			p.pos++
			if havePending {
				// Odd digit count: trailing zero assumed.
				result.WriteByte(pending << 4)
			}
			return String(result.String()), nil
		}
		if isWhitespace(c) {
			p.pos++
			continue
		}
		if !isHexDigit(c) {
			return nil, fmt.Errorf("invalid hex digit %q at offset %d", c, p.pos)
		}
		if havePending {
			result.WriteByte(pending<<4 | hexValue(c))
			havePending = false
		} else {
			pending = hexValue(c)
			havePending = true
		}
		p.pos++
	}
	return nil, fmt.Errorf("unclosed hex string")
}

// parseName parses /Name with # escapes.
func (p *Parser) parseName() (Object, error) {
	p.pos++ // skip '/'

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
	return Name(result.String()), nil
}

// parseArray parses [...].
func (p *Parser) parseArray() (Object, error) {
	p.pos++ // skip '['

	var arr Array
	for {
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("unclosed array")
		}
		if p.data[p.pos] == ']' {
			p.pos++
			return arr, nil
		}
		obj, err := p.ParseObject()
		if err != nil {
			return nil, err
		}
		arr = append(arr, obj)
	}
}

// parseDict parses <<...>>.
func (p *Parser) parseDict() (Object, error) {
	p.pos += 2 // skip '<<'

	dict := make(Dict)
	for {
		p.skipWhitespace()
		if p.pos+1 < len(p.data) && p.data[p.pos] == '>' && p.data[p.pos+1] == '>' {
			p.pos += 2
			return dict, nil
		}
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("unclosed dictionary")
		}
		if p.data[p.pos] != '/' {
			return nil, fmt.Errorf("dictionary key must be a name at offset %d", p.pos)
		}
		key, err := p.parseName()
		if err != nil {
			return nil, err
		}
		value, err := p.ParseObject()
		if err != nil {
			return nil, err
		}
		dict[string(key.(Name))] = value
	}
}

// readStreamData reads raw stream bytes following the stream keyword. The
// keyword is followed by CRLF or LF; data length comes from /Length, falling
// back to an endstream scan when /Length is absent or unresolvable.
func (p *Parser) readStreamData(dict Dict) (*Stream, error) {
	if p.pos < len(p.data) && p.data[p.pos] == '\r' {
		p.pos++
	}
	if p.pos < len(p.data) && p.data[p.pos] == '\n' {
		p.pos++
	}

	length := -1
	switch v := dict.Get("Length").(type) {
	case Int:
		length = int(v)
	case IndirectRef:
		if p.resolveLength != nil {
			if obj, err := p.resolveLength(v); err == nil {
				if n, ok := obj.(Int); ok {
					length = int(n)
				}
			}
		}
	}

	start := p.pos
	if length >= 0 && start+length <= len(p.data) {
		p.pos = start + length
		data := p.data[start : start+length]
		p.skipWhitespace()
		p.consumeKeyword("endstream")
		p.skipWhitespace()
		p.consumeKeyword("endobj")
		return &Stream{Dict: dict, Data: data}, nil
	}

	// No usable length: scan for the endstream keyword.
	idx := bytes.Index(p.data[start:], []byte("endstream"))
	if idx < 0 {
		return nil, fmt.Errorf("stream at offset %d has no endstream", start)
	}
	end := start + idx
	// Trim the EOL that precedes endstream.
	for end > start && (p.data[end-1] == '\n' || p.data[end-1] == '\r') {
		end--
	}
	p.pos = start + idx + len("endstream")
	p.skipWhitespace()
	p.consumeKeyword("endobj")
	return &Stream{Dict: dict, Data: p.data[start:end]}, nil
}

// readInt reads an unsigned decimal integer.
func (p *Parser) readInt() (int, error) {
	start := p.pos
	for p.pos < len(p.data) && p.data[p.pos] >= '0' && p.data[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return 0, fmt.Errorf("expected integer at offset %d", start)
	}
	return strconv.Atoi(string(p.data[start:p.pos]))
}

// consumeKeyword consumes kw if it appears at the current position followed
// by whitespace, a delimiter, or end of data.
func (p *Parser) consumeKeyword(kw string) bool {
	if !bytes.HasPrefix(p.data[p.pos:], []byte(kw)) {
		return false
	}
	end := p.pos + len(kw)
	if end < len(p.data) {
		c := p.data[end]
		if !isWhitespace(c) && !isDelimiter(c) {
			return false
		}
	}
	p.pos = end
	return true
}

// SkipWhitespace advances past PDF whitespace and comments. It is exported
// for the content-stream parser, which interleaves operands with operators.
func (p *Parser) SkipWhitespace() { p.skipWhitespace() }

// Peek returns the byte at the current position without consuming it.
func (p *Parser) Peek() (byte, bool) {
	if p.pos >= len(p.data) {
		return 0, false
	}
	return p.data[p.pos], true
}

// skipWhitespace advances past PDF whitespace and comments.
func (p *Parser) skipWhitespace() {
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if isWhitespace(c) {
			p.pos++
			continue
		}
		if c == '%' {
			for p.pos < len(p.data) && p.data[p.pos] != '\n' && p.data[p.pos] != '\r' {
				p.pos++
			}
			continue
		}
		break
	}
}

// isWhitespace reports whether c is a PDF whitespace character.
func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

// isDelimiter reports whether c is a PDF delimiter character.
func isDelimiter(c byte) bool {
	return c == '(' || c == ')' || c == '<' || c == '>' ||
		c == '[' || c == ']' || c == '{' || c == '}' ||
		c == '/' || c == '%'
}

// isHexDigit reports whether c is a hexadecimal digit.
func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// hexValue returns the numeric value of a hexadecimal digit.
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
