package timecalc

import (
	"strconv"

	errors "gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrUnsupportedOperation is the kind of error from a binary operator
	// applied to kinds it does not support, e.g. Date * Date.
	ErrUnsupportedOperation = errors.NewKind("unsupported operation: %s %s %s")
	// ErrUnsupportedUnary is the kind of error from a unary operator applied
	// to a kind it does not support, e.g. -Date.
	ErrUnsupportedUnary = errors.NewKind("unsupported unary operation: %s%s")
	// ErrDivisionByZero is the kind of error from a division by a zero Num or
	// Duration.
	ErrDivisionByZero = errors.NewKind("cannot divide %s by zero")
	// ErrNotFinite is the kind of error from a number that is too large to
	// represent.
	ErrNotFinite = errors.NewKind("%s is not finite")
	// ErrInternal indicates a bug in timecalc rather than invalid input.
	ErrInternal = errors.NewKind("timecalc: internal error: %s")
)

// LexError indicates input that cannot be scanned as a token, either because
// no token starts with it or because it is an invalid literal such as a date
// with no such day. It implements InputError.
type LexError struct {
	// Offset is the byte offset of the start of the token.
	Offset int
	// Text is the offending text.
	Text string
	// Kind is the kind of token being scanned: "number", "date", "time",
	// "duration", or "keyword". It is the empty string for a character that
	// starts no token.
	Kind string
	// Reason describes why the token is invalid. It may be empty.
	Reason string
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Offset, "unrecognized character "+strconv.Quote(err.Text))
	}
	msg := "invalid " + err.Kind + " " + strconv.Quote(err.Text)
	if err.Reason != "" {
		msg += ": " + err.Reason
	}
	return errpos(err.Offset, msg)
}

func (err *LexError) Pos() int {
	return err.Offset
}

// OperatorError is an error indicating an operator where a value was
// expected. It implements InputError.
type OperatorError struct {
	// Offset is the position of the operator.
	Offset int
	// Operator is the operator.
	Operator string
}

func (err *OperatorError) Error() string {
	return errpos(err.Offset, "unexpected operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Offset
}

// BracketError is an error indicating mismatched parentheses in the input.
// It implements InputError.
type BracketError struct {
	// Offset is the position of the unmatched parenthesis.
	Offset int
	// Paren is the unmatched parenthesis.
	Paren string
}

func (err *BracketError) Error() string {
	if err.Paren == "(" {
		return errpos(err.Offset, "unmatched '('")
	}
	return errpos(err.Offset, "unmatched ')'")
}

func (err *BracketError) Pos() int {
	return err.Offset
}

// CallError is an error indicating an open parenthesis directly after a
// value, which would be a call if expressions had calls. It implements
// InputError.
type CallError struct {
	// Offset is the position of the parenthesis.
	Offset int
	// Kind is the kind of the value before the parenthesis.
	Kind Kind
}

func (err *CallError) Error() string {
	return errpos(err.Offset, "unexpected '(' after "+err.Kind.String())
}

func (err *CallError) Pos() int {
	return err.Offset
}

// AdjacentError is an error indicating two adjacent values that cannot be
// combined implicitly. It implements InputError.
type AdjacentError struct {
	// Offset is the position of the second value.
	Offset int
	// Left and Right are the kinds of the two values.
	Left, Right Kind
	// Reason explains why a combination that exists for the two kinds was
	// rejected. It is empty if the kinds never combine.
	Reason string
}

func (err *AdjacentError) Error() string {
	if err.Reason != "" {
		return errpos(err.Offset, err.Reason)
	}
	return errpos(err.Offset, "unexpected "+err.Right.String()+" after "+err.Left.String())
}

func (err *AdjacentError) Pos() int {
	return err.Offset
}

// EmptyExpressionError is an error indicating an input with no expression or
// one that ends with an operator. It implements InputError.
type EmptyExpressionError struct {
	// Offset is the position of the end of the input.
	Offset int
	// End is the operator that ended the input, or the empty string if the
	// input was empty.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		return errpos(err.Offset, "no expression")
	}
	return errpos(err.Offset, "expression cannot end with operator "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Offset
}

// MalformedError is an error indicating an expression that does not reduce
// to exactly one value, or an operator missing an operand. It implements
// InputError.
type MalformedError struct {
	// Offset is the position where the problem was found.
	Offset int
	// Values is the number of values that were left, or -1 for a missing
	// operand.
	Values int
}

func (err *MalformedError) Error() string {
	if err.Values < 0 {
		return errpos(err.Offset, "malformed expression: missing operand")
	}
	return errpos(err.Offset, "malformed expression: expected a single result, got "+strconv.Itoa(err.Values)+" values")
}

func (err *MalformedError) Pos() int {
	return err.Offset
}

// EvalError is an error from applying an operator. Err is always an error
// of one of the kinds ErrUnsupportedOperation, ErrUnsupportedUnary,
// ErrDivisionByZero, or ErrNotFinite, so callers can tell them apart:
//
//	var ee *timecalc.EvalError
//	if errors.As(err, &ee) && timecalc.ErrDivisionByZero.Is(ee.Err) {
//		...
//	}
//
// It implements InputError.
type EvalError struct {
	// Offset is the position of the operator or literal.
	Offset int
	// Err is the underlying error.
	Err error
}

func (err *EvalError) Error() string {
	return errpos(err.Offset, err.Err.Error())
}

func (err *EvalError) Unwrap() error {
	return err.Err
}

func (err *EvalError) Pos() int {
	return err.Offset
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the byte offset in the source of the token that caused
	// the error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*AdjacentError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*MalformedError)(nil)
	_ InputError = (*EvalError)(nil)
)
