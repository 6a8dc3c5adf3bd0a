package command

import (
	"fmt"
	"strconv"
	"strings"
)

// tryNumericAnswer extracts an arithmetic expression from free text (for
// example "what is 3+2?") and evaluates it. It returns the expression and the
// formatted result, or ok=false when the text holds no evaluable expression.
func tryNumericAnswer(text string) (expr, result string, ok bool) {
	expr = extractExpression(text)
	if expr == "" {
		return "", "", false
	}

	p := parser{input: expr}
	value, err := p.parseExpression()
	if err != nil || !p.atEnd() {
		return "", "", false
	}

	return expr, formatNumber(value), true
}

// extractExpression returns the longest run of arithmetic characters that
// contains both a digit and an operator, trimmed of surrounding whitespace.
func extractExpression(text string) string {
	best := ""
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		candidate := strings.TrimSpace(text[start:end])
		if len(candidate) > len(best) && hasDigit(candidate) && hasOperator(candidate) {
			best = candidate
		}
		start = -1
	}

	for i, r := range text {
		if isExprChar(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(text))
	return best
}

func isExprChar(r rune) bool {
	return r >= '0' && r <= '9' || r == '+' || r == '-' || r == '*' || r == '/' ||
		r == '(' || r == ')' || r == '.' || r == ' '
}

func hasDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}

func hasOperator(s string) bool {
	// A leading minus is a sign, not an operation.
	return strings.ContainsAny(strings.TrimPrefix(s, "-"), "+-*/")
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parser is a small recursive-descent evaluator over + - * / and parentheses.
type parser struct {
	input string
	pos   int
}

func (p *parser) parseExpression() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		switch p.peek() {
		case '+':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left += right
		case '-':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left -= right
		default:
			return left, nil
		}
	}
}

func (p *parser) parseTerm() (float64, error) {
	left, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		switch p.peek() {
		case '*':
			p.pos++
			right, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			left *= right
		case '/':
			p.pos++
			right, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			left /= right
		default:
			return left, nil
		}
	}
}

func (p *parser) parseFactor() (float64, error) {
	p.skipSpaces()
	switch {
	case p.peek() == '-':
		p.pos++
		v, err := p.parseFactor()
		return -v, err
	case p.peek() == '(':
		p.pos++
		v, err := p.parseExpression()
		if err != nil {
			return 0, err
		}
		p.skipSpaces()
		if p.peek() != ')' {
			return 0, fmt.Errorf("unbalanced parenthesis at %d", p.pos)
		}
		p.pos++
		return v, nil
	default:
		return p.parseNumber()
	}
}

func (p *parser) parseNumber() (float64, error) {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c >= '0' && c <= '9' || c == '.' {
			p.pos++
			continue
		}
		break
	}
	if start == p.pos {
		return 0, fmt.Errorf("expected number at %d", start)
	}
	return strconv.ParseFloat(p.input[start:p.pos], 64)
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *parser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) atEnd() bool {
	p.skipSpaces()
	return p.pos == len(p.input)
}
