package runtime

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	cases := map[float64]string{
		0:                   "0",
		math.Copysign(0, -1): "0",
		1:                   "1",
		-1:                  "-1",
		0.5:                 "0.5",
		0.3:                 "0.3",
		123456789:           "123456789",
		1e21:                "1e+21",
		1.5e21:              "1.5e+21",
		1e20:                "100000000000000000000",
		0.000001:            "0.000001",
		0.0000001:           "1e-7",
		1.25e-7:             "1.25e-7",
		math.Inf(1):         "Infinity",
		math.Inf(-1):        "-Infinity",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatNumber(in), "FormatNumber(%v)", in)
	}
	assert.Equal(t, "NaN", FormatNumber(math.NaN()))
}

func TestStringToNumber(t *testing.T) {
	cases := map[string]float64{
		"":          0,
		"  42  ":    42,
		"3.5":       3.5,
		".5":        0.5,
		"5.":        5,
		"-2e3":      -2000,
		"0x1f":      31,
		"0b101":     5,
		"0o17":      15,
		"Infinity":  math.Inf(1),
		"-Infinity": math.Inf(-1),
	}
	for in, want := range cases {
		assert.Equal(t, want, StringToNumber(in), "StringToNumber(%q)", in)
	}
	for _, bad := range []string{"abc", "1px", "0x", "inf", "NaN", "1_000", "0x1p3"} {
		assert.True(t, math.IsNaN(StringToNumber(bad)), "StringToNumber(%q) should be NaN", bad)
	}
}

func TestToStringAggregates(t *testing.T) {
	arr := NewArray(Number(1), Null, Undefined, String("x"), NewArray(Number(2), Number(3)))
	assert.Equal(t, "1,,,x,2,3", ToString(arr))
	assert.Equal(t, "[object Object]", ToString(NewObject(nil)))
	assert.Equal(t, "undefined", ToString(Undefined))
	assert.Equal(t, "null", ToString(Null))
}

func TestTruthyAndTypeOf(t *testing.T) {
	falsy := []Value{Undefined, Null, False, Number(0), Number(math.NaN()), String("")}
	for _, v := range falsy {
		assert.False(t, Truthy(v), "%#v", v)
	}
	truthy := []Value{True, Number(-1), String("0"), NewArray(), NewObject(nil)}
	for _, v := range truthy {
		assert.True(t, Truthy(v), "%#v", v)
	}

	assert.Equal(t, "undefined", TypeOf(Undefined))
	assert.Equal(t, "object", TypeOf(Null))
	assert.Equal(t, "object", TypeOf(NewArray()))
	assert.Equal(t, "number", TypeOf(Number(1)))
	assert.Equal(t, "string", TypeOf(String("")))
	assert.Equal(t, "boolean", TypeOf(True))
	assert.Equal(t, "function", TypeOf(NativeFunctionValue{Name: "f"}))
}

func TestToInt32(t *testing.T) {
	assert.Equal(t, int32(0), ToInt32(math.NaN()))
	assert.Equal(t, int32(-1), ToInt32(4294967295))
	assert.Equal(t, int32(-2147483648), ToInt32(2147483648))
	assert.Equal(t, int32(-3), ToInt32(-3.7))
	assert.Equal(t, uint32(4294967295), ToUint32(-1))
}

func TestQuoteString(t *testing.T) {
	assert.Equal(t, `"red"`, QuoteString("red"))
	assert.Equal(t, `"a\"b\\c\nd"`, QuoteString("a\"b\\c\nd"))
	assert.Equal(t, `"\x01"`, QuoteString("\x01"))
	assert.Equal(t, `"héllo"`, QuoteString("héllo"))
}
