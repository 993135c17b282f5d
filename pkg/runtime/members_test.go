package runtime

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, receiver Value, name string, args ...Value) Value {
	t.Helper()
	fn, ok := Method(receiver, name)
	require.True(t, ok, "method %s not found", name)
	out, err := fn.Call(args)
	require.NoError(t, err)
	return out
}

func TestPropertyLookup(t *testing.T) {
	obj := NewObject(map[string]Value{"x": NewObject(map[string]Value{"y": Number(39)})})
	x, ok := Property(obj, "x")
	require.True(t, ok)
	y, ok := Property(x, "y")
	require.True(t, ok)
	assert.Equal(t, Number(39), y)

	_, ok = Property(obj, "missing")
	assert.False(t, ok)

	arr := NewArray(String("a"), String("b"))
	v, ok := Property(arr, "1")
	require.True(t, ok)
	assert.Equal(t, String("b"), v)
	v, ok = Property(arr, "length")
	require.True(t, ok)
	assert.Equal(t, Number(2), v)
	_, ok = Property(arr, "2")
	assert.False(t, ok)
	_, ok = Property(arr, "01")
	assert.False(t, ok)

	v, ok = Property(String("héllo"), "length")
	require.True(t, ok)
	assert.Equal(t, Number(5), v)
}

func TestStringMethods(t *testing.T) {
	assert.Equal(t, String("RED"), call(t, String("red"), "toUpperCase"))
	assert.Equal(t, String("ell"), call(t, String("hello"), "slice", Number(1), Number(-1)))
	assert.Equal(t, String("lo"), call(t, String("hello"), "slice", Number(-2)))
	assert.Equal(t, String("el"), call(t, String("hello"), "substring", Number(3), Number(1)))
	assert.Equal(t, Number(2), call(t, String("hello"), "indexOf", String("l")))
	assert.Equal(t, Number(3), call(t, String("hello"), "lastIndexOf", String("l")))
	assert.Equal(t, True, call(t, String("hello"), "startsWith", String("he")))
	assert.Equal(t, String("abab"), call(t, String("ab"), "repeat", Number(2)))
	assert.Equal(t, String("007"), call(t, String("7"), "padStart", Number(3), String("0")))
	assert.Equal(t, NewArray(String("a"), String("b"), String("c")), call(t, String("a,b,c"), "split", String(",")))
	assert.Equal(t, String("x-b-a"), call(t, String("a-b-a"), "replace", String("a"), String("x")))

	fn, ok := Method(String("ab"), "repeat")
	require.True(t, ok)
	_, err := fn.Call([]Value{Number(-1)})
	assert.Error(t, err)
}

func TestArrayMethods(t *testing.T) {
	arr := NewArray(Number(1), Number(2), Number(3))
	assert.Equal(t, String("1-2-3"), call(t, arr, "join", String("-")))
	assert.Equal(t, String("1,2,3"), call(t, arr, "join"))
	assert.Equal(t, Number(1), call(t, arr, "indexOf", Number(2)))
	assert.Equal(t, True, call(t, arr, "includes", Number(3)))
	assert.Equal(t, NewArray(Number(2), Number(3)), call(t, arr, "slice", Number(1)))
	assert.Equal(t, NewArray(Number(1), Number(2), Number(3), Number(4)), call(t, arr, "concat", NewArray(Number(4))))
	assert.Equal(t, Number(3), call(t, arr, "at", Number(-1)))
	assert.Len(t, arr.Elements, 3, "methods must not mutate the receiver")
}

func TestNumberMethods(t *testing.T) {
	assert.Equal(t, String("3.14"), call(t, Number(3.14159), "toFixed", Number(2)))
	assert.Equal(t, String("ff"), call(t, Number(255), "toString", Number(16)))
}

func TestObjectFunctionMethod(t *testing.T) {
	double := NativeFunctionValue{Name: "double", Impl: func(args []Value) (Value, error) {
		return Number(ToNumber(args[0]) * 2), nil
	}}
	obj := NewObject(map[string]Value{"double": double})
	assert.Equal(t, Number(8), call(t, obj, "double", Number(4)))

	failing := NewObject(map[string]Value{"boom": NativeFunctionValue{Name: "boom", Impl: func([]Value) (Value, error) {
		return nil, errors.New("boom")
	}}})
	fn, ok := Method(failing, "boom")
	require.True(t, ok)
	_, err := fn.Call(nil)
	assert.EqualError(t, err, "boom")

	_, ok = Method(obj, "missing")
	assert.False(t, ok)
	assert.True(t, HasBuiltinMethod(String(""), "trim"))
	assert.False(t, HasBuiltinMethod(String(""), "nope"))
}
