package timecalc

import (
	"math"
	"strconv"
	"time"
)

// Kind is the semantic kind of a value.
type Kind int8

const (
	kindNone Kind = iota
	// KindNum is a dimensionless scalar.
	KindNum
	// KindDate is an instant in milliseconds since the Unix epoch, UTC.
	KindDate
	// KindTime is a time of day in milliseconds since midnight. It may fall
	// outside a single day.
	KindTime
	// KindDuration is a signed length of time in milliseconds.
	KindDuration

	kindCount
)

var kindNames = [...]string{
	kindNone:     "None",
	KindNum:      "Num",
	KindDate:     "Date",
	KindTime:     "Time",
	KindDuration: "Duration",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Value is a value of an expression. The zero Value is invalid.
//
// The literal and suffix fields record how a value was produced. They are
// never derived from v and only gate implicit combination of adjacent values.
type Value struct {
	kind Kind
	v    float64
	// literal is set on dates written as date literals.
	literal bool
	// suffix is the unit of a duration written as a number with a suffix.
	suffix Unit
}

// Num creates a scalar value.
func Num(x float64) Value {
	return Value{kind: KindNum, v: x}
}

// DateOf creates a date value from t. The result is not a literal, so it
// never combines implicitly with a following time.
func DateOf(t time.Time) Value {
	return Value{kind: KindDate, v: float64(t.UnixMilli())}
}

// TimeOfDay creates a time value d after midnight.
func TimeOfDay(d time.Duration) Value {
	return Value{kind: KindTime, v: float64(d) / float64(time.Millisecond)}
}

// DurationOf creates a duration value with no unit suffix.
func DurationOf(d time.Duration) Value {
	return Value{kind: KindDuration, v: float64(d) / float64(time.Millisecond)}
}

// Millis creates a value of the given kind from a number of milliseconds, or
// a plain scalar for KindNum. Panics if k is not a valid kind.
func Millis(k Kind, ms float64) Value {
	if k <= kindNone || k >= kindCount {
		panic("timecalc: invalid kind " + k.String())
	}
	return Value{kind: k, v: ms}
}

func dateLiteral(ms float64) Value {
	return Value{kind: KindDate, v: ms, literal: true}
}

func suffixed(ms float64, u Unit) Value {
	return Value{kind: KindDuration, v: ms, suffix: u}
}

// Kind returns the kind of v.
func (v Value) Kind() Kind {
	return v.kind
}

// Float returns the magnitude of v: milliseconds for dates, times, and
// durations, or the plain scalar for numbers.
func (v Value) Float() float64 {
	return v.v
}

// FromLiteral reports whether v is a date written as a date literal.
func (v Value) FromLiteral() bool {
	return v.literal
}

// FromSuffix returns the unit suffix a duration was written with, or NoUnit
// if v was computed.
func (v Value) FromSuffix() Unit {
	return v.suffix
}

// Time returns the instant of a date value. For other kinds, the result
// treats the magnitude as milliseconds since the epoch. If the magnitude does
// not fit in an int64, the result is the zero time.
func (v Value) Time() time.Time {
	ms, err := floorMillis(v.v)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

// Duration converts the magnitude of a time or duration value to a
// time.Duration, saturating at the limits of the type.
func (v Value) Duration() time.Duration {
	d := v.v * float64(time.Millisecond)
	switch {
	case d >= math.MaxInt64:
		return math.MaxInt64
	case d <= math.MinInt64:
		return math.MinInt64
	}
	return time.Duration(d)
}

// IsZero reports whether v is the invalid zero Value.
func (v Value) IsZero() bool {
	return v.kind == kindNone
}

// String is the same as Format.
func (v Value) String() string {
	return v.Format()
}
