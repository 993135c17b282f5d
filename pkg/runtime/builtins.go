package runtime

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
)

// builtins are host functions a project file can bind by name.
var builtins = map[string]NativeFunctionValue{}

func register(name string, arity int, impl NativeFunc) {
	builtins[name] = NativeFunctionValue{Name: name, Arity: arity, Impl: impl}
}

// Builtin looks up a host function by its registry name.
func Builtin(name string) (NativeFunctionValue, bool) {
	fn, ok := builtins[name]
	return fn, ok
}

// BuiltinNames lists the registry in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	math1 := func(name string, fn func(float64) float64) {
		register("math."+name, 1, func(args []Value) (Value, error) {
			return Number(fn(ToNumber(arg(args, 0)))), nil
		})
	}
	math1("abs", math.Abs)
	math1("ceil", math.Ceil)
	math1("floor", math.Floor)
	math1("sqrt", math.Sqrt)
	math1("trunc", math.Trunc)
	math1("round", func(f float64) float64 { return math.Floor(f + 0.5) })
	register("math.pow", 2, func(args []Value) (Value, error) {
		return Number(pow(ToNumber(arg(args, 0)), ToNumber(arg(args, 1)))), nil
	})
	register("math.max", -1, func(args []Value) (Value, error) {
		out := math.Inf(-1)
		for _, a := range args {
			f := ToNumber(a)
			if math.IsNaN(f) {
				return Number(f), nil
			}
			out = math.Max(out, f)
		}
		return Number(out), nil
	})
	register("math.min", -1, func(args []Value) (Value, error) {
		out := math.Inf(1)
		for _, a := range args {
			f := ToNumber(a)
			if math.IsNaN(f) {
				return Number(f), nil
			}
			out = math.Min(out, f)
		}
		return Number(out), nil
	})

	register("string.upper", 1, func(args []Value) (Value, error) {
		return String(strings.ToUpper(ToString(arg(args, 0)))), nil
	})
	register("string.lower", 1, func(args []Value) (Value, error) {
		return String(strings.ToLower(ToString(arg(args, 0)))), nil
	})
	register("string.trim", 1, func(args []Value) (Value, error) {
		return String(strings.TrimSpace(ToString(arg(args, 0)))), nil
	})
	register("string.concat", -1, func(args []Value) (Value, error) {
		var b strings.Builder
		for _, a := range args {
			b.WriteString(ToString(a))
		}
		return String(b.String()), nil
	})
	register("string.repeat", 2, func(args []Value) (Value, error) {
		return stringMethods["repeat"](ToString(arg(args, 0)), args[min(1, len(args)):])
	})

	register("array.range", 1, func(args []Value) (Value, error) {
		n := ToNumber(arg(args, 0))
		if math.IsNaN(n) || n < 0 || n > 1<<20 {
			return nil, fmt.Errorf("range length out of bounds: %s", FormatNumber(n))
		}
		out := make([]Value, int(n))
		for i := range out {
			out[i] = Number(float64(i))
		}
		return NewArray(out...), nil
	})
	register("array.length", 1, func(args []Value) (Value, error) {
		v, ok := Property(arg(args, 0), "length")
		if !ok {
			return nil, fmt.Errorf("value has no length")
		}
		return v, nil
	})

	register("json.stringify", 1, func(args []Value) (Value, error) {
		text, err := Stringify(arg(args, 0))
		if err != nil {
			return nil, err
		}
		return String(text), nil
	})
	register("json.parse", 1, func(args []Value) (Value, error) {
		var raw any
		if err := json.Unmarshal([]byte(ToString(arg(args, 0))), &raw); err != nil {
			return nil, err
		}
		return Normalize(raw)
	})

	register("env", 1, func(args []Value) (Value, error) {
		v, ok := os.LookupEnv(ToString(arg(args, 0)))
		if !ok {
			return Undefined, nil
		}
		return String(v), nil
	})
}

// Stringify renders v as JSON. Undefined and functions are dropped from
// objects and become null inside arrays; non-finite numbers become null.
func Stringify(v Value) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(jsonValue(v)); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func jsonValue(v Value) any {
	switch val := v.(type) {
	case NumberValue:
		if math.IsNaN(val.Val) || math.IsInf(val.Val, 0) {
			return nil
		}
		return val.Val
	case *ArrayValue:
		out := make([]any, len(val.Elements))
		for i, el := range val.Elements {
			out[i] = jsonValue(el)
		}
		return out
	case *ObjectValue:
		out := make(map[string]any, len(val.Fields))
		for k, el := range val.Fields {
			switch el.(type) {
			case UndefinedValue, NativeFunctionValue:
				continue
			}
			out[k] = jsonValue(el)
		}
		return out
	}
	return Export(v)
}
