package timecalc

// opKind is an operator token kind. The binary operators come first so that
// they can index the binary operation table.
type opKind int8

const (
	opAdd opKind = iota
	opSub
	opMul
	opDiv
	opOpen
	opClose

	// binopCount is the number of binary operators.
	binopCount = opOpen
)

// Operators contains the characters which are lexed as operators, in opKind
// order.
const Operators = "+-*/()"

// opPrec is the default precedence of each operator. Higher binds tighter.
var opPrec = [...]int8{
	opAdd:   1,
	opSub:   1,
	opMul:   2,
	opDiv:   2,
	opOpen:  0,
	opClose: 0,
}

// unaryPrec is the precedence of a unary + or -.
const unaryPrec = 3

func (op opKind) String() string {
	if op < 0 || int(op) >= len(Operators) {
		return "?"
	}
	return Operators[op : op+1]
}

// operator is an operator waiting on the parser's stack. Whether it is unary
// is decided before it is created, and it never changes afterward.
type operator struct {
	op    opKind
	prec  int8
	unary bool
	// pos is the position of the operator token.
	pos int
}

func newOperator(op opKind, unary bool, pos int) operator {
	p := opPrec[op]
	if unary {
		p = unaryPrec
	}
	return operator{op: op, prec: p, unary: unary, pos: pos}
}

// lexToken is a token scanned from the input: either a value or an operator.
type lexToken struct {
	// val is the value, if the token is a value.
	val Value
	// op is the operator kind, if val is the zero Value.
	op opKind
	// pos and end delimit the token's text.
	pos, end int
}

func (t lexToken) isValue() bool {
	return !t.val.IsZero()
}

// Token is a token of an expression as reported by Tokenize.
type Token struct {
	// Pos and End are the byte offsets of the start and end of the token's
	// text in the source.
	Pos, End int
	// Text is the token's source text.
	Text string
	// Value is the token's value. It is the zero Value for operators.
	Value Value
}

// IsOperator reports whether the token is an operator or parenthesis.
func (t Token) IsOperator() bool {
	return t.Value.IsZero()
}

func (t Token) String() string {
	if t.IsOperator() {
		return t.Text
	}
	return t.Value.Kind().String() + "(" + t.Value.Format() + ")"
}
