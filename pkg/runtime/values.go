package runtime

import (
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/spf13/cast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
	KindNativeFunction
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindNativeFunction:
		return "native_function"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all compile-time values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type UndefinedValue struct{}

func (UndefinedValue) Kind() Kind { return KindUndefined }

type NullValue struct{}

func (NullValue) Kind() Kind { return KindNull }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

var (
	Undefined Value = UndefinedValue{}
	Null      Value = NullValue{}
	True      Value = BoolValue{Val: true}
	False     Value = BoolValue{Val: false}
)

func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

func Number(f float64) Value { return NumberValue{Val: f} }

func String(s string) Value { return StringValue{Val: s} }

//-----------------------------------------------------------------------------
// Aggregates
//-----------------------------------------------------------------------------

type ArrayValue struct {
	Elements []Value
}

func (v *ArrayValue) Kind() Kind { return KindArray }

func NewArray(elements ...Value) *ArrayValue {
	if elements == nil {
		elements = []Value{}
	}
	return &ArrayValue{Elements: elements}
}

// ObjectValue is a plain string-keyed record.
type ObjectValue struct {
	Fields map[string]Value
}

func (v *ObjectValue) Kind() Kind { return KindObject }

func NewObject(fields map[string]Value) *ObjectValue {
	if fields == nil {
		fields = map[string]Value{}
	}
	return &ObjectValue{Fields: fields}
}

// Keys returns the field names in sorted order.
func (v *ObjectValue) Keys() []string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

//-----------------------------------------------------------------------------
// Functions
//-----------------------------------------------------------------------------

type NativeFunc func(args []Value) (Value, error)

type NativeFunctionValue struct {
	Name  string
	Arity int
	Impl  NativeFunc
}

func (v NativeFunctionValue) Kind() Kind { return KindNativeFunction }

// Call invokes the function and normalizes whatever it returns.
func (v NativeFunctionValue) Call(args []Value) (Value, error) {
	if v.Impl == nil {
		return nil, fmt.Errorf("function %s has no implementation", v.Name)
	}
	out, err := v.Impl(args)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return Undefined, nil
	}
	return out, nil
}

//-----------------------------------------------------------------------------
// Normalization
//-----------------------------------------------------------------------------

// Normalize converts plain Go data (as produced by YAML decoding or supplied
// by embedding programs) into a Value. Integers and floats of every width
// become numbers, slices become arrays, string-keyed maps become objects and
// nil becomes null.
func Normalize(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Null, nil
	case Value:
		return v, nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case NativeFunc:
		return NativeFunctionValue{Impl: v}, nil
	case func([]Value) (Value, error):
		return NativeFunctionValue{Impl: v}, nil
	case []any:
		elems := make([]Value, len(v))
		for i, item := range v {
			conv, err := Normalize(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			elems[i] = conv
		}
		return NewArray(elems...), nil
	case map[string]any:
		fields := make(map[string]Value, len(v))
		for key, item := range v {
			conv, err := Normalize(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			fields[key] = conv
		}
		return NewObject(fields), nil
	case map[any]any:
		fields := make(map[string]Value, len(v))
		for key, item := range v {
			name, err := cast.ToStringE(key)
			if err != nil {
				return nil, fmt.Errorf("object key %v: %w", key, err)
			}
			conv, err := Normalize(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			fields[name] = conv
		}
		return NewObject(fields), nil
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(raw)
		if err != nil {
			return nil, err
		}
		return Number(f), nil
	case reflect.Slice, reflect.Array:
		elems := make([]Value, rv.Len())
		for i := range elems {
			conv, err := Normalize(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			elems[i] = conv
		}
		return NewArray(elems...), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("unsupported map key type %s", rv.Type().Key())
		}
		fields := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			conv, err := Normalize(iter.Value().Interface())
			if err != nil {
				return nil, fmt.Errorf("%s: %w", iter.Key().String(), err)
			}
			fields[iter.Key().String()] = conv
		}
		return NewObject(fields), nil
	case reflect.Pointer:
		if rv.IsNil() {
			return Null, nil
		}
		return Normalize(rv.Elem().Interface())
	}
	return nil, fmt.Errorf("unsupported value of type %T", raw)
}

// Export converts a Value back into plain Go data. Functions export as nil.
func Export(v Value) any {
	switch val := v.(type) {
	case nil, NullValue, UndefinedValue, NativeFunctionValue:
		return nil
	case BoolValue:
		return val.Val
	case NumberValue:
		return val.Val
	case StringValue:
		return val.Val
	case *ArrayValue:
		out := make([]any, len(val.Elements))
		for i, el := range val.Elements {
			out[i] = Export(el)
		}
		return out
	case *ObjectValue:
		out := make(map[string]any, len(val.Fields))
		for k, el := range val.Fields {
			out[k] = Export(el)
		}
		return out
	}
	return nil
}

// IsRepresentable reports whether v contains no functions anywhere.
func IsRepresentable(v Value) bool {
	switch val := v.(type) {
	case NativeFunctionValue:
		return false
	case *ArrayValue:
		for _, el := range val.Elements {
			if !IsRepresentable(el) {
				return false
			}
		}
	case *ObjectValue:
		for _, el := range val.Fields {
			if !IsRepresentable(el) {
				return false
			}
		}
	}
	return true
}

func isNaN(v Value) bool {
	n, ok := v.(NumberValue)
	return ok && math.IsNaN(n.Val)
}
