package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"mytacism/evaluator-go/pkg/ast"
)

func (ctx *parseContext) parseNumber(node *sitter.Node) (ast.Expression, error) {
	raw := sliceContent(node, ctx.source)
	if strings.HasSuffix(raw, "n") {
		return ctx.raw(node), nil
	}
	value, err := parseNumericLiteral(raw)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid number %q: %w", raw, err)
	}
	lit := ast.Num(value)
	lit.Raw = raw
	return ctx.annotateExpression(lit, node), nil
}

func parseNumericLiteral(raw string) (float64, error) {
	text := strings.ReplaceAll(raw, "_", "")
	if len(text) > 1 && text[0] == '0' {
		base := 0
		digits := text[2:]
		switch text[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		default:
			if strings.Trim(text, "01234567") == "" {
				base, digits = 8, text[1:]
			}
		}
		if base != 0 {
			n, err := strconv.ParseUint(digits, base, 64)
			if err != nil {
				return 0, err
			}
			return float64(n), nil
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return f, nil
		}
		return 0, err
	}
	return f, nil
}

func (ctx *parseContext) parseString(node *sitter.Node) (ast.Expression, error) {
	raw := sliceContent(node, ctx.source)
	if len(raw) < 2 {
		return nil, fmt.Errorf("parser: malformed string %q", raw)
	}
	value, err := unescape(raw[1 : len(raw)-1])
	if err != nil {
		return nil, fmt.Errorf("parser: string %s: %w", raw, err)
	}
	lit := ast.Str(value)
	lit.Raw = raw
	return ctx.annotateExpression(lit, node), nil
}

func (ctx *parseContext) parseTemplate(node *sitter.Node) (ast.Expression, error) {
	var (
		quasis []string
		exprs  []ast.Expression
	)
	pos := int(node.StartByte()) + 1
	for _, child := range namedChildren(node) {
		if child.Kind() != "template_substitution" {
			continue
		}
		cooked, err := unescape(string(ctx.source[pos:child.StartByte()]))
		if err != nil {
			return nil, fmt.Errorf("parser: template: %w", err)
		}
		quasis = append(quasis, cooked)
		expr, err := ctx.parseExpressionList(namedChildren(child))
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
		pos = int(child.EndByte())
	}
	end := int(node.EndByte()) - 1
	if end < pos {
		end = pos
	}
	cooked, err := unescape(string(ctx.source[pos:end]))
	if err != nil {
		return nil, fmt.Errorf("parser: template: %w", err)
	}
	quasis = append(quasis, cooked)
	return ctx.annotateExpression(ast.NewTemplateLiteral(quasis, exprs), node), nil
}

// unescape decodes the escape sequences of a string or template body.
func unescape(s string) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}
	var (
		b       strings.Builder
		pending []uint16
	)
	flush := func() {
		if len(pending) > 0 {
			b.WriteString(string(utf16.Decode(pending)))
			pending = pending[:0]
		}
	}
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' {
			flush()
			r, size := utf8.DecodeRuneInString(s[i:])
			b.WriteRune(r)
			i += size
			continue
		}
		if i+1 >= len(s) {
			return "", fmt.Errorf("trailing backslash")
		}
		esc := s[i+1]
		i += 2
		switch esc {
		case 'n':
			flush()
			b.WriteByte('\n')
		case 't':
			flush()
			b.WriteByte('\t')
		case 'r':
			flush()
			b.WriteByte('\r')
		case 'b':
			flush()
			b.WriteByte('\b')
		case 'f':
			flush()
			b.WriteByte('\f')
		case 'v':
			flush()
			b.WriteByte('\v')
		case '0':
			flush()
			b.WriteByte(0)
		case '\n':
			flush()
		case '\r':
			flush()
			if i < len(s) && s[i] == '\n' {
				i++
			}
		case 'x':
			if i+2 > len(s) {
				return "", fmt.Errorf("short \\x escape")
			}
			n, err := strconv.ParseUint(s[i:i+2], 16, 8)
			if err != nil {
				return "", fmt.Errorf("invalid \\x escape")
			}
			flush()
			b.WriteRune(rune(n))
			i += 2
		case 'u':
			var hex string
			if i < len(s) && s[i] == '{' {
				end := strings.IndexByte(s[i:], '}')
				if end < 0 {
					return "", fmt.Errorf("unterminated \\u{ escape")
				}
				hex = s[i+1 : i+end]
				i += end + 1
			} else {
				if i+4 > len(s) {
					return "", fmt.Errorf("short \\u escape")
				}
				hex = s[i : i+4]
				i += 4
			}
			n, err := strconv.ParseUint(hex, 16, 32)
			if err != nil || n > utf8.MaxRune {
				return "", fmt.Errorf("invalid \\u escape")
			}
			if n <= 0xffff {
				pending = append(pending, uint16(n))
				continue
			}
			flush()
			b.WriteRune(rune(n))
		default:
			flush()
			r, size := utf8.DecodeRuneInString(s[i-1:])
			if r == 0x2028 || r == 0x2029 {
				i += size - 1
				continue
			}
			b.WriteRune(r)
			i += size - 1
		}
	}
	flush()
	return b.String(), nil
}
