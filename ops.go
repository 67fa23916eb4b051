package timecalc

// binaryTable gives the result kind of each binary operation by left kind,
// operator, and right kind. A missing entry means the operation is
// unsupported.
var binaryTable = [kindCount][binopCount][kindCount]Kind{
	KindNum: {
		opAdd: {KindNum: KindNum},
		opSub: {KindNum: KindNum},
		opMul: {KindNum: KindNum, KindDuration: KindDuration},
		opDiv: {KindNum: KindNum},
	},
	KindDate: {
		opAdd: {KindDuration: KindDate},
		opSub: {KindDate: KindDuration, KindDuration: KindDate},
	},
	KindTime: {
		opAdd: {KindDuration: KindTime},
		opSub: {KindTime: KindDuration, KindDuration: KindTime},
	},
	KindDuration: {
		opAdd: {KindDate: KindDate, KindTime: KindTime, KindDuration: KindDuration},
		opSub: {KindDuration: KindDuration},
		opMul: {KindNum: KindDuration},
		opDiv: {KindNum: KindDuration, KindDuration: KindNum},
	},
}

// arith is the arithmetic of each binary operator on magnitudes.
var arith = [binopCount]func(x, y float64) float64{
	opAdd: func(x, y float64) float64 { return x + y },
	opSub: func(x, y float64) float64 { return x - y },
	opMul: func(x, y float64) float64 { return x * y },
	opDiv: func(x, y float64) float64 { return x / y },
}

// binary applies a binary operator. The result is false if the operation is
// unsupported. Division by zero is the caller's responsibility.
func binary(x Value, op opKind, y Value) (Value, bool) {
	if op < 0 || op >= binopCount {
		return Value{}, false
	}
	k := binaryTable[x.kind][op][y.kind]
	if k == kindNone {
		return Value{}, false
	}
	return Value{kind: k, v: arith[op](x.v, y.v)}, true
}

// unary applies a unary operator. The result is false if the operation is
// unsupported.
func unary(op opKind, x Value) (Value, bool) {
	if x.kind != KindNum && x.kind != KindDuration {
		return Value{}, false
	}
	switch op {
	case opAdd:
		return x, true
	case opSub:
		return Value{kind: x.kind, v: -x.v}, true
	default:
		return Value{}, false
	}
}

// implicit combines two adjacent values with no operator between them. If
// the kinds never combine, the result is false with an empty reason. If they
// combine in general but not these particular values, the result is false and
// reason explains why.
func implicit(x, y Value) (r Value, ok bool, reason string) {
	switch {
	case x.kind == KindDate && y.kind == KindTime:
		if !x.literal {
			return Value{}, false, "implicit addition of a time needs a date literal"
		}
		return Value{kind: KindDate, v: x.v + y.v}, true, ""
	case x.kind == KindDuration && y.kind == KindDuration:
		if x.suffix == NoUnit || y.suffix == NoUnit {
			return Value{}, false, "implicit addition of durations needs unit suffixes"
		}
		if x.suffix.Millis() <= y.suffix.Millis() {
			return Value{}, false, "implicit addition of durations must decrease in unit: " + x.suffix.String() + " then " + y.suffix.String()
		}
		// Keep the smaller unit so that chains like 1h 30m 15s continue.
		return suffixed(x.v+y.v, y.suffix), true, ""
	default:
		return Value{}, false, ""
	}
}
