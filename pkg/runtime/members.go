package runtime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Property reads key from a static receiver. ok is false when the receiver
// has no such property.
func Property(receiver Value, key string) (Value, bool) {
	switch r := receiver.(type) {
	case *ObjectValue:
		v, ok := r.Fields[key]
		return v, ok
	case *ArrayValue:
		if key == "length" {
			return Number(float64(len(r.Elements))), true
		}
		if idx, ok := arrayIndex(key); ok && idx < len(r.Elements) {
			return r.Elements[idx], true
		}
	case StringValue:
		u := units(r.Val)
		if key == "length" {
			return Number(float64(len(u))), true
		}
		if idx, ok := arrayIndex(key); ok && idx < len(u) {
			return String(fromUnits(u[idx : idx+1])), true
		}
	}
	return nil, false
}

// PropertyKey converts a computed member key to its property name.
func PropertyKey(key Value) (string, bool) {
	switch key.(type) {
	case *ArrayValue, *ObjectValue, NativeFunctionValue:
		return "", false
	}
	return ToString(key), true
}

// Method resolves receiver.name to something callable: a function stored in
// an object, or one of the builtin string, array and number methods.
func Method(receiver Value, name string) (NativeFunctionValue, bool) {
	switch r := receiver.(type) {
	case *ObjectValue:
		if fn, ok := r.Fields[name].(NativeFunctionValue); ok {
			return fn, true
		}
		if name == "toString" {
			return bound(name, func([]Value) (Value, error) { return String(ToString(r)), nil }), true
		}
	case StringValue:
		if impl, ok := stringMethods[name]; ok {
			return bound(name, func(args []Value) (Value, error) { return impl(r.Val, args) }), true
		}
	case *ArrayValue:
		if impl, ok := arrayMethods[name]; ok {
			return bound(name, func(args []Value) (Value, error) { return impl(r, args) }), true
		}
	case NumberValue:
		if impl, ok := numberMethods[name]; ok {
			return bound(name, func(args []Value) (Value, error) { return impl(r.Val, args) }), true
		}
	case BoolValue:
		if name == "toString" {
			return bound(name, func([]Value) (Value, error) { return String(ToString(r)), nil }), true
		}
	}
	return NativeFunctionValue{}, false
}

// HasBuiltinMethod reports whether name is a builtin method of receiver's
// kind, regardless of arguments.
func HasBuiltinMethod(receiver Value, name string) bool {
	switch receiver.(type) {
	case StringValue:
		_, ok := stringMethods[name]
		return ok
	case *ArrayValue:
		_, ok := arrayMethods[name]
		return ok
	case NumberValue:
		_, ok := numberMethods[name]
		return ok
	}
	return name == "toString"
}

func bound(name string, impl NativeFunc) NativeFunctionValue {
	return NativeFunctionValue{Name: name, Arity: -1, Impl: impl}
}

func arg(args []Value, i int) Value {
	if i < len(args) {
		return args[i]
	}
	return Undefined
}

func hasArg(args []Value, i int) bool {
	if i >= len(args) {
		return false
	}
	_, undef := args[i].(UndefinedValue)
	return !undef
}

// relativeIndex resolves a possibly negative start/end argument against n.
func relativeIndex(v Value, n int, def int) int {
	if _, ok := v.(UndefinedValue); ok || v == nil {
		return def
	}
	f := ToNumber(v)
	if math.IsNaN(f) {
		return 0
	}
	f = math.Trunc(f)
	if f < 0 {
		f += float64(n)
		if f < 0 {
			f = 0
		}
	}
	if f > float64(n) {
		f = float64(n)
	}
	return int(f)
}

func clampIndex(v Value, n int, def int) int {
	if _, ok := v.(UndefinedValue); ok || v == nil {
		return def
	}
	f := ToNumber(v)
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > float64(n) {
		return n
	}
	return int(f)
}

func indexOfUnits(haystack, needle []uint16, from int) int {
	for i := from; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

const jsWhitespace = " \t\n\r\v\f\u00a0\ufeff"

type stringMethod func(s string, args []Value) (Value, error)

var stringMethods = map[string]stringMethod{
	"toUpperCase": func(s string, _ []Value) (Value, error) { return String(strings.ToUpper(s)), nil },
	"toLowerCase": func(s string, _ []Value) (Value, error) { return String(strings.ToLower(s)), nil },
	"trim":        func(s string, _ []Value) (Value, error) { return String(strings.TrimSpace(s)), nil },
	"trimStart": func(s string, _ []Value) (Value, error) {
		return String(strings.TrimLeft(s, jsWhitespace)), nil
	},
	"trimEnd": func(s string, _ []Value) (Value, error) {
		return String(strings.TrimRight(s, jsWhitespace)), nil
	},
	"toString": func(s string, _ []Value) (Value, error) { return String(s), nil },
	"charAt": func(s string, args []Value) (Value, error) {
		u := units(s)
		i := int(math.Trunc(ToNumber(arg(args, 0))))
		if !hasArg(args, 0) {
			i = 0
		}
		if i < 0 || i >= len(u) {
			return String(""), nil
		}
		return String(fromUnits(u[i : i+1])), nil
	},
	"slice": func(s string, args []Value) (Value, error) {
		u := units(s)
		start := relativeIndex(arg(args, 0), len(u), 0)
		end := relativeIndex(arg(args, 1), len(u), len(u))
		if start >= end {
			return String(""), nil
		}
		return String(fromUnits(u[start:end])), nil
	},
	"substring": func(s string, args []Value) (Value, error) {
		u := units(s)
		start := clampIndex(arg(args, 0), len(u), 0)
		end := clampIndex(arg(args, 1), len(u), len(u))
		if start > end {
			start, end = end, start
		}
		return String(fromUnits(u[start:end])), nil
	},
	"indexOf": func(s string, args []Value) (Value, error) {
		u := units(s)
		from := clampIndex(arg(args, 1), len(u), 0)
		return Number(float64(indexOfUnits(u, units(ToString(arg(args, 0))), from))), nil
	},
	"lastIndexOf": func(s string, args []Value) (Value, error) {
		u, needle := units(s), units(ToString(arg(args, 0)))
		last := -1
		for i := 0; ; {
			found := indexOfUnits(u, needle, i)
			if found < 0 {
				break
			}
			last = found
			i = found + 1
		}
		return Number(float64(last)), nil
	},
	"includes": func(s string, args []Value) (Value, error) {
		return Bool(strings.Contains(s, ToString(arg(args, 0)))), nil
	},
	"startsWith": func(s string, args []Value) (Value, error) {
		return Bool(strings.HasPrefix(s, ToString(arg(args, 0)))), nil
	},
	"endsWith": func(s string, args []Value) (Value, error) {
		return Bool(strings.HasSuffix(s, ToString(arg(args, 0)))), nil
	},
	"repeat": func(s string, args []Value) (Value, error) {
		n := ToNumber(arg(args, 0))
		if math.IsNaN(n) {
			n = 0
		}
		if n < 0 || math.IsInf(n, 0) {
			return nil, fmt.Errorf("invalid count value: %s", FormatNumber(n))
		}
		return String(strings.Repeat(s, int(n))), nil
	},
	"padStart": func(s string, args []Value) (Value, error) {
		return String(pad(s, args, true)), nil
	},
	"padEnd": func(s string, args []Value) (Value, error) {
		return String(pad(s, args, false)), nil
	},
	"concat": func(s string, args []Value) (Value, error) {
		var b strings.Builder
		b.WriteString(s)
		for _, a := range args {
			b.WriteString(ToString(a))
		}
		return String(b.String()), nil
	},
	"split": func(s string, args []Value) (Value, error) {
		if !hasArg(args, 0) {
			return NewArray(String(s)), nil
		}
		var parts []string
		sep := ToString(args[0])
		if sep == "" {
			for _, cu := range units(s) {
				parts = append(parts, fromUnits([]uint16{cu}))
			}
		} else {
			parts = strings.Split(s, sep)
		}
		if hasArg(args, 1) {
			limit := int(ToUint32(ToNumber(args[1])))
			if limit < len(parts) {
				parts = parts[:limit]
			}
		}
		out := make([]Value, len(parts))
		for i, p := range parts {
			out[i] = String(p)
		}
		return NewArray(out...), nil
	},
	"replace": func(s string, args []Value) (Value, error) {
		if _, ok := arg(args, 1).(NativeFunctionValue); ok {
			return nil, fmt.Errorf("replace with a callback is not static")
		}
		return String(strings.Replace(s, ToString(arg(args, 0)), ToString(arg(args, 1)), 1)), nil
	},
	"replaceAll": func(s string, args []Value) (Value, error) {
		if _, ok := arg(args, 1).(NativeFunctionValue); ok {
			return nil, fmt.Errorf("replaceAll with a callback is not static")
		}
		return String(strings.ReplaceAll(s, ToString(arg(args, 0)), ToString(arg(args, 1)))), nil
	},
}

func pad(s string, args []Value, start bool) string {
	target := int(ToNumber(arg(args, 0)))
	filler := " "
	if hasArg(args, 1) {
		filler = ToString(args[1])
	}
	u := units(s)
	if target <= len(u) || filler == "" {
		return s
	}
	fu := units(filler)
	need := target - len(u)
	padding := make([]uint16, 0, need)
	for len(padding) < need {
		padding = append(padding, fu[len(padding)%len(fu)])
	}
	if start {
		return fromUnits(padding) + s
	}
	return s + fromUnits(padding)
}

type arrayMethod func(a *ArrayValue, args []Value) (Value, error)

var arrayMethods = map[string]arrayMethod{
	"join": func(a *ArrayValue, args []Value) (Value, error) {
		sep := ","
		if hasArg(args, 0) {
			sep = ToString(args[0])
		}
		parts := make([]string, len(a.Elements))
		for i, el := range a.Elements {
			switch el.(type) {
			case UndefinedValue, NullValue:
			default:
				parts[i] = ToString(el)
			}
		}
		return String(strings.Join(parts, sep)), nil
	},
	"indexOf": func(a *ArrayValue, args []Value) (Value, error) {
		for i, el := range a.Elements {
			if StrictEquals(el, arg(args, 0)) {
				return Number(float64(i)), nil
			}
		}
		return Number(-1), nil
	},
	"lastIndexOf": func(a *ArrayValue, args []Value) (Value, error) {
		for i := len(a.Elements) - 1; i >= 0; i-- {
			if StrictEquals(a.Elements[i], arg(args, 0)) {
				return Number(float64(i)), nil
			}
		}
		return Number(-1), nil
	},
	"includes": func(a *ArrayValue, args []Value) (Value, error) {
		needle := arg(args, 0)
		for _, el := range a.Elements {
			if StrictEquals(el, needle) || (isNaN(el) && isNaN(needle)) {
				return True, nil
			}
		}
		return False, nil
	},
	"slice": func(a *ArrayValue, args []Value) (Value, error) {
		start := relativeIndex(arg(args, 0), len(a.Elements), 0)
		end := relativeIndex(arg(args, 1), len(a.Elements), len(a.Elements))
		if start >= end {
			return NewArray(), nil
		}
		return NewArray(append([]Value(nil), a.Elements[start:end]...)...), nil
	},
	"concat": func(a *ArrayValue, args []Value) (Value, error) {
		out := append([]Value(nil), a.Elements...)
		for _, v := range args {
			if nested, ok := v.(*ArrayValue); ok {
				out = append(out, nested.Elements...)
				continue
			}
			out = append(out, v)
		}
		return NewArray(out...), nil
	},
	"at": func(a *ArrayValue, args []Value) (Value, error) {
		i := int(math.Trunc(ToNumber(arg(args, 0))))
		if i < 0 {
			i += len(a.Elements)
		}
		if i < 0 || i >= len(a.Elements) {
			return Undefined, nil
		}
		return a.Elements[i], nil
	},
	"toString": func(a *ArrayValue, _ []Value) (Value, error) { return String(ToString(a)), nil },
}

type numberMethod func(f float64, args []Value) (Value, error)

var numberMethods = map[string]numberMethod{
	"toFixed": func(f float64, args []Value) (Value, error) {
		digits := 0
		if hasArg(args, 0) {
			digits = int(ToNumber(args[0]))
		}
		if digits < 0 || digits > 100 {
			return nil, fmt.Errorf("toFixed() digits argument must be between 0 and 100")
		}
		if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= 1e21 {
			return String(FormatNumber(f)), nil
		}
		return String(strconv.FormatFloat(f, 'f', digits, 64)), nil
	},
	"toString": func(f float64, args []Value) (Value, error) {
		if !hasArg(args, 0) {
			return String(FormatNumber(f)), nil
		}
		radix := int(ToNumber(args[0]))
		if radix < 2 || radix > 36 {
			return nil, fmt.Errorf("toString() radix must be between 2 and 36")
		}
		if radix == 10 || f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
			return String(FormatNumber(f)), nil
		}
		return String(strconv.FormatInt(int64(f), radix)), nil
	},
}
