package runtime

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fold(t *testing.T, op string, left, right Value) Value {
	t.Helper()
	out, ok := BinaryOp(op, left, right)
	require.True(t, ok, "operator %s did not fold", op)
	return out
}

func TestBinaryArithmetic(t *testing.T) {
	tests := []struct {
		op          string
		left, right Value
		want        Value
	}{
		{"+", Number(1), Number(1), Number(2)},
		{"+", String("red"), Number(1), String("red1")},
		{"+", Number(1), String("2"), String("12")},
		{"+", True, Number(1), Number(2)},
		{"+", NewArray(Number(1), Number(2)), String("x"), String("1,2x")},
		{"+", Null, Number(1), Number(1)},
		{"-", String("5"), Number(2), Number(3)},
		{"/", Number(5), Number(10), Number(0.5)},
		{"%", Number(-7), Number(3), Number(-1)},
		{"**", Number(2), Number(10), Number(1024)},
		{"&", Number(6), Number(3), Number(2)},
		{"|", Number(4), Number(1), Number(5)},
		{"^", Number(5), Number(1), Number(4)},
		{"<<", Number(1), Number(33), Number(2)},
		{">>", Number(-8), Number(1), Number(-4)},
		{">>>", Number(-1), Number(0), Number(4294967295)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fold(t, tt.op, tt.left, tt.right), "%v %s %v", tt.left, tt.op, tt.right)
	}

	a, b := 0.1, 0.2
	assert.Equal(t, "0.30000000000000004", ToString(fold(t, "+", Number(a), Number(b))))
	assert.True(t, isNaN(fold(t, "**", Number(1), Number(math.Inf(1)))))
	assert.True(t, isNaN(fold(t, "%", Number(1), Number(0))))
	assert.Equal(t, Number(math.Inf(1)), fold(t, "/", Number(1), Number(0)))
}

func TestBinaryComparison(t *testing.T) {
	tests := []struct {
		op          string
		left, right Value
		want        bool
	}{
		{"==", Number(1), String("1"), true},
		{"==", Null, Undefined, true},
		{"==", Null, Number(0), false},
		{"==", True, Number(1), true},
		{"==", NewArray(Number(1)), String("1"), true},
		{"===", Number(1), String("1"), false},
		{"===", Undefined, Undefined, true},
		{"!==", Number(1), Number(2), true},
		{"===", Number(math.NaN()), Number(math.NaN()), false},
		{"<", Number(1), Number(2), true},
		{"<", String("a"), String("b"), true},
		{"<", String("10"), String("9"), true},
		{"<", String("10"), Number(9), false},
		{"<=", Number(2), Number(2), true},
		{">=", Number(1), Number(2), false},
		{">", Number(3), Number(2), true},
		{"<=", Number(math.NaN()), Number(1), false},
		{">=", Undefined, Undefined, false},
	}
	for _, tt := range tests {
		assert.Equal(t, Bool(tt.want), fold(t, tt.op, tt.left, tt.right), "%v %s %v", tt.left, tt.op, tt.right)
	}
}

func TestAggregateIdentity(t *testing.T) {
	arr := NewArray(Number(1))
	assert.Equal(t, True, fold(t, "===", arr, arr))
	assert.Equal(t, False, fold(t, "===", arr, NewArray(Number(1))))
}

func TestInOperator(t *testing.T) {
	obj := NewObject(map[string]Value{"a": Number(1)})
	assert.Equal(t, True, fold(t, "in", String("a"), obj))
	assert.Equal(t, False, fold(t, "in", String("b"), obj))
	arr := NewArray(Number(1), Number(2))
	assert.Equal(t, True, fold(t, "in", Number(1), arr))
	assert.Equal(t, False, fold(t, "in", Number(2), arr))
	assert.Equal(t, True, fold(t, "in", String("length"), arr))

	_, ok := BinaryOp("in", String("a"), String("abc"))
	assert.False(t, ok, "in on a primitive throws at runtime and must not fold")
}

func TestUnknownOperatorsDoNotFold(t *testing.T) {
	_, ok := BinaryOp("instanceof", NewObject(nil), NewObject(nil))
	assert.False(t, ok)
	_, ok = UnaryOp("delete", Number(1))
	assert.False(t, ok)
	assert.False(t, IsBinaryOperator("instanceof"))
	assert.True(t, IsUnaryOperator("typeof"))
}

func TestUnaryOp(t *testing.T) {
	tests := []struct {
		op   string
		in   Value
		want Value
	}{
		{"+", String("3"), Number(3)},
		{"-", Number(3), Number(-3)},
		{"~", Number(5), Number(-6)},
		{"!", String(""), True},
		{"!", Number(1), False},
		{"typeof", String("x"), String("string")},
		{"typeof", Null, String("object")},
		{"void", Number(0), Undefined},
	}
	for _, tt := range tests {
		out, ok := UnaryOp(tt.op, tt.in)
		require.True(t, ok)
		assert.Equal(t, tt.want, out, "%s %v", tt.op, tt.in)
	}
}
