package contentstream

import (
	"fmt"

	"github.com/ternpdf/tern/core"
)

// Operation is a single content stream operation: an operator and the
// operands that preceded it.
type Operation struct {
	Operator string
	Operands []core.Object
}

// Float returns operand i as a float64, or 0 when missing or non-numeric.
func (op Operation) Float(i int) float64 {
	if i < 0 || i >= len(op.Operands) {
		return 0
	}
	v, _ := core.ToFloat(op.Operands[i])
	return v
}

// Name returns operand i as a name string.
func (op Operation) Name(i int) (string, bool) {
	if i < 0 || i >= len(op.Operands) {
		return "", false
	}
	n, ok := op.Operands[i].(core.Name)
	return string(n), ok
}

// Parse tokenizes a decompressed content stream into operations. Operands
// that fail to parse abandon the remainder of the stream fragment but do not
// fail the call: everything recognized so far is returned.
func Parse(data []byte) ([]Operation, error) {
	p := core.NewParser(data)
	var ops []Operation
	var stack []core.Object

	for {
		p.SkipWhitespace()
		c, ok := p.Peek()
		if !ok {
			break
		}

		if isOperatorStart(c) {
			operator := readOperator(p)
			if operator == "" {
				return ops, fmt.Errorf("empty operator at offset %d", p.Pos())
			}
			// BI starts an inline image; its body is not operand syntax, so
			// skip to the EI terminator.
			if operator == "BI" {
				skipInlineImage(p)
				stack = stack[:0]
				continue
			}
			// Keyword operands share the operator alphabet.
			switch operator {
			case "true":
				stack = append(stack, core.Bool(true))
				continue
			case "false":
				stack = append(stack, core.Bool(false))
				continue
			case "null":
				stack = append(stack, core.Null{})
				continue
			}
			operands := make([]core.Object, len(stack))
			copy(operands, stack)
			ops = append(ops, Operation{Operator: operator, Operands: operands})
			stack = stack[:0]
			continue
		}

		obj, err := p.ParseObject()
		if err != nil {
			// Malformed fragment: stop here, keep what was recognized.
			return ops, nil
		}
		stack = append(stack, obj)
	}

	return ops, nil
}

// isOperatorStart reports whether c can begin an operator token. The true,
// false and null keywords also start with a letter; Parse reclassifies them
// as operands after reading the token.
func isOperatorStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '\'' || c == '"'
}

// readOperator reads an operator token: letters plus the *, ' and " forms.
func readOperator(p *core.Parser) string {
	var buf []byte
	for {
		c, ok := p.Peek()
		if !ok {
			break
		}
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '*' || c == '\'' || c == '"' || (len(buf) > 0 && c >= '0' && c <= '1') {
			buf = append(buf, c)
			p.Seek(p.Pos() + 1)
		} else {
			break
		}
	}
	return string(buf)
}

// skipInlineImage advances past an inline image body to the EI operator.
func skipInlineImage(p *core.Parser) {
	for {
		c, ok := p.Peek()
		if !ok {
			return
		}
		if c == 'E' {
			pos := p.Pos()
			p.Seek(pos + 1)
			if c2, ok := p.Peek(); ok && c2 == 'I' {
				p.Seek(pos + 2)
				return
			}
			continue
		}
		p.Seek(p.Pos() + 1)
	}
}
