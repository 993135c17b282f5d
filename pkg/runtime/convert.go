package runtime

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"
)

var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// Truthy applies the language's boolean coercion.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case nil, UndefinedValue, NullValue:
		return false
	case BoolValue:
		return val.Val
	case NumberValue:
		return val.Val != 0 && !math.IsNaN(val.Val)
	case StringValue:
		return val.Val != ""
	default:
		return true
	}
}

// TypeOf mirrors the typeof operator.
func TypeOf(v Value) string {
	switch v.(type) {
	case nil, UndefinedValue:
		return "undefined"
	case NullValue, *ArrayValue, *ObjectValue:
		return "object"
	case BoolValue:
		return "boolean"
	case NumberValue:
		return "number"
	case StringValue:
		return "string"
	case NativeFunctionValue:
		return "function"
	}
	return "undefined"
}

// ToNumber converts v the way unary plus does.
func ToNumber(v Value) float64 {
	switch val := v.(type) {
	case nil, UndefinedValue:
		return math.NaN()
	case NullValue:
		return 0
	case BoolValue:
		if val.Val {
			return 1
		}
		return 0
	case NumberValue:
		return val.Val
	case StringValue:
		return StringToNumber(val.Val)
	case *ArrayValue:
		return StringToNumber(ToString(val))
	default:
		return math.NaN()
	}
}

// StringToNumber parses numeric text. Anything that is not a complete
// numeric literal yields NaN; blank text yields 0.
func StringToNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		}
	}
	if !decimalLiteral.MatchString(s) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return f
		}
		return math.NaN()
	}
	return f
}

// ToString converts v the way string concatenation does.
func ToString(v Value) string {
	switch val := v.(type) {
	case nil, UndefinedValue:
		return "undefined"
	case NullValue:
		return "null"
	case BoolValue:
		if val.Val {
			return "true"
		}
		return "false"
	case NumberValue:
		return FormatNumber(val.Val)
	case StringValue:
		return val.Val
	case *ArrayValue:
		parts := make([]string, len(val.Elements))
		for i, el := range val.Elements {
			switch el.(type) {
			case nil, UndefinedValue, NullValue:
				parts[i] = ""
			default:
				parts[i] = ToString(el)
			}
		}
		return strings.Join(parts, ",")
	case *ObjectValue:
		return "[object Object]"
	case NativeFunctionValue:
		return "function " + val.Name + "() { [native code] }"
	}
	return ""
}

// ToPrimitive collapses aggregates to their string form and leaves
// primitives alone.
func ToPrimitive(v Value) Value {
	switch v.(type) {
	case *ArrayValue, *ObjectValue, NativeFunctionValue:
		return String(ToString(v))
	}
	return v
}

// FormatNumber renders f with the shortest round-tripping digits, switching
// to exponent notation outside [1e-6, 1e21).
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	case f < 0:
		return "-" + FormatNumber(-f)
	}
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	mant, expText, _ := strings.Cut(sci, "e")
	exp, _ := strconv.Atoi(expText)
	digits := strings.Replace(mant, ".", "", 1)
	k := len(digits)
	n := exp + 1
	switch {
	case k <= n && n <= 21:
		return digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		return digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		return "0." + strings.Repeat("0", -n) + digits
	}
	sign := "+"
	if n-1 < 0 {
		sign = "-"
	}
	e := n - 1
	if e < 0 {
		e = -e
	}
	if k == 1 {
		return digits + "e" + sign + strconv.Itoa(e)
	}
	return digits[:1] + "." + digits[1:] + "e" + sign + strconv.Itoa(e)
}

// ToInt32 applies the 32-bit integer conversion used by bitwise operators.
func ToInt32(f float64) int32 {
	return int32(ToUint32(f))
}

func ToUint32(f float64) uint32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	t := math.Trunc(f)
	m := math.Mod(t, 4294967296)
	if m < 0 {
		m += 4294967296
	}
	return uint32(m)
}

// units returns s as UTF-16 code units, the indexing model of string
// methods and the length property.
func units(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

func fromUnits(u []uint16) string {
	return string(utf16.Decode(u))
}

// StringLength is the length property of a string.
func StringLength(s string) int {
	return len(units(s))
}

// QuoteString renders s as a double-quoted string literal.
func QuoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\v':
			b.WriteString(`\v`)
		case 0x2028:
			b.WriteString(`\u2028`)
		case 0x2029:
			b.WriteString(`\u2029`)
		default:
			if r < 0x20 || r == 0x7f {
				b.WriteString(`\x`)
				b.WriteString(strconv.FormatInt(int64(r)>>4, 16))
				b.WriteString(strconv.FormatInt(int64(r)&0xf, 16))
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
