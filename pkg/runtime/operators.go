package runtime

import (
	"math"
	"strconv"
)

// BinaryOperators lists every operator BinaryOp can fold.
var BinaryOperators = []string{
	"+", "-", "*", "/", "%", "**",
	"==", "!=", "===", "!==", "<", ">", "<=", ">=",
	"&", "|", "^", "<<", ">>", ">>>", "in",
}

// UnaryOperators lists every operator UnaryOp can fold.
var UnaryOperators = []string{"+", "-", "~", "!", "typeof", "void"}

// IsBinaryOperator reports whether op has a folding rule.
func IsBinaryOperator(op string) bool {
	for _, candidate := range BinaryOperators {
		if candidate == op {
			return true
		}
	}
	return false
}

func IsUnaryOperator(op string) bool {
	for _, candidate := range UnaryOperators {
		if candidate == op {
			return true
		}
	}
	return false
}

// BinaryOp applies op to two static operands. ok is false when the operator
// has no folding rule or the operands would throw at runtime.
func BinaryOp(op string, left, right Value) (Value, bool) {
	switch op {
	case "+":
		lp, rp := ToPrimitive(left), ToPrimitive(right)
		_, ls := lp.(StringValue)
		_, rs := rp.(StringValue)
		if ls || rs {
			return String(ToString(lp) + ToString(rp)), true
		}
		return Number(ToNumber(lp) + ToNumber(rp)), true
	case "-":
		return Number(ToNumber(left) - ToNumber(right)), true
	case "*":
		return Number(ToNumber(left) * ToNumber(right)), true
	case "/":
		return Number(ToNumber(left) / ToNumber(right)), true
	case "%":
		return Number(math.Mod(ToNumber(left), ToNumber(right))), true
	case "**":
		return Number(pow(ToNumber(left), ToNumber(right))), true
	case "==":
		return Bool(LooseEquals(left, right)), true
	case "!=":
		return Bool(!LooseEquals(left, right)), true
	case "===":
		return Bool(StrictEquals(left, right)), true
	case "!==":
		return Bool(!StrictEquals(left, right)), true
	case "<":
		return Bool(lessThan(left, right, false)), true
	case ">":
		return Bool(lessThan(right, left, false)), true
	case "<=":
		return Bool(lessThan(left, right, true)), true
	case ">=":
		return Bool(lessThan(right, left, true)), true
	case "&":
		return Number(float64(ToInt32(ToNumber(left)) & ToInt32(ToNumber(right)))), true
	case "|":
		return Number(float64(ToInt32(ToNumber(left)) | ToInt32(ToNumber(right)))), true
	case "^":
		return Number(float64(ToInt32(ToNumber(left)) ^ ToInt32(ToNumber(right)))), true
	case "<<":
		return Number(float64(ToInt32(ToNumber(left)) << (ToUint32(ToNumber(right)) & 31))), true
	case ">>":
		return Number(float64(ToInt32(ToNumber(left)) >> (ToUint32(ToNumber(right)) & 31))), true
	case ">>>":
		return Number(float64(ToUint32(ToNumber(left)) >> (ToUint32(ToNumber(right)) & 31))), true
	case "in":
		return hasProperty(right, left)
	}
	return nil, false
}

// UnaryOp applies op to a static operand.
func UnaryOp(op string, operand Value) (Value, bool) {
	switch op {
	case "+":
		return Number(ToNumber(operand)), true
	case "-":
		return Number(-ToNumber(operand)), true
	case "~":
		return Number(float64(^ToInt32(ToNumber(operand)))), true
	case "!":
		return Bool(!Truthy(operand)), true
	case "typeof":
		return String(TypeOf(operand)), true
	case "void":
		return Undefined, true
	}
	return nil, false
}

func pow(base, exp float64) float64 {
	if math.IsNaN(exp) {
		return math.NaN()
	}
	if math.IsInf(exp, 0) && math.Abs(base) == 1 {
		return math.NaN()
	}
	return math.Pow(base, exp)
}

// StrictEquals implements ===. Aggregates compare by identity.
func StrictEquals(left, right Value) bool {
	switch l := left.(type) {
	case nil, UndefinedValue:
		switch right.(type) {
		case nil, UndefinedValue:
			return true
		}
		return false
	case NullValue:
		_, ok := right.(NullValue)
		return ok
	case BoolValue:
		r, ok := right.(BoolValue)
		return ok && l.Val == r.Val
	case NumberValue:
		r, ok := right.(NumberValue)
		return ok && l.Val == r.Val
	case StringValue:
		r, ok := right.(StringValue)
		return ok && l.Val == r.Val
	case *ArrayValue:
		r, ok := right.(*ArrayValue)
		return ok && l == r
	case *ObjectValue:
		r, ok := right.(*ObjectValue)
		return ok && l == r
	}
	return false
}

// LooseEquals implements ==.
func LooseEquals(left, right Value) bool {
	if left == nil {
		left = Undefined
	}
	if right == nil {
		right = Undefined
	}
	if left.Kind() == right.Kind() {
		return StrictEquals(left, right)
	}
	lk, rk := left.Kind(), right.Kind()
	nullish := func(k Kind) bool { return k == KindNull || k == KindUndefined }
	switch {
	case nullish(lk) && nullish(rk):
		return true
	case nullish(lk) || nullish(rk):
		return false
	case lk == KindNumber && rk == KindString:
		return ToNumber(left) == ToNumber(right)
	case lk == KindString && rk == KindNumber:
		return ToNumber(left) == ToNumber(right)
	case lk == KindBool:
		return LooseEquals(Number(ToNumber(left)), right)
	case rk == KindBool:
		return LooseEquals(left, Number(ToNumber(right)))
	case isAggregate(left) && !isAggregate(right):
		return LooseEquals(ToPrimitive(left), right)
	case isAggregate(right) && !isAggregate(left):
		return LooseEquals(left, ToPrimitive(right))
	}
	return false
}

// lessThan computes a < b, or a <= b when orEqual is set by negating b < a.
// Any comparison involving NaN is false.
func lessThan(a, b Value, orEqual bool) bool {
	ap, bp := ToPrimitive(a), ToPrimitive(b)
	as, aok := ap.(StringValue)
	bs, bok := bp.(StringValue)
	if aok && bok {
		if orEqual {
			return !(compareUnits(bs.Val, as.Val) < 0)
		}
		return compareUnits(as.Val, bs.Val) < 0
	}
	x, y := ToNumber(ap), ToNumber(bp)
	if math.IsNaN(x) || math.IsNaN(y) {
		return false
	}
	if orEqual {
		return !(y < x)
	}
	return x < y
}

func compareUnits(a, b string) int {
	ua, ub := units(a), units(b)
	for i := 0; i < len(ua) && i < len(ub); i++ {
		if ua[i] != ub[i] {
			if ua[i] < ub[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(ua) < len(ub):
		return -1
	case len(ua) > len(ub):
		return 1
	}
	return 0
}

func isAggregate(v Value) bool {
	switch v.(type) {
	case *ArrayValue, *ObjectValue, NativeFunctionValue:
		return true
	}
	return false
}

// hasProperty implements `key in container`; it only folds when the
// container is an aggregate, since anything else throws.
func hasProperty(container, key Value) (Value, bool) {
	if isAggregate(key) {
		return nil, false
	}
	name := ToString(key)
	switch c := container.(type) {
	case *ObjectValue:
		_, ok := c.Fields[name]
		return Bool(ok), true
	case *ArrayValue:
		if name == "length" {
			return True, true
		}
		if idx, ok := arrayIndex(name); ok {
			return Bool(idx < len(c.Elements)), true
		}
		return False, true
	}
	return nil, false
}

// arrayIndex parses a canonical array index key.
func arrayIndex(name string) (int, bool) {
	if name == "" || (len(name) > 1 && name[0] == '0') {
		return 0, false
	}
	n, err := strconv.Atoi(name)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
