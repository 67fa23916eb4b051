package timecalc

import (
	"io"

	"github.com/sirupsen/logrus"
)

// run evaluates the tokens from l by operator precedence. Values and pending
// operators wait on the context's stacks until an operator of lower or equal
// precedence, a close parenthesis, or the end of input collapses them.
func (ctx *Context) run(l *lexer) (Value, error) {
	n := 0
	for {
		tok, err := l.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Value{}, err
		}
		n++
		ctx.trace(l, tok)
		if tok.isValue() {
			if err := ctx.value(tok); err != nil {
				return Value{}, err
			}
			continue
		}
		switch tok.op {
		case opOpen:
			if ctx.last {
				return Value{}, &CallError{Offset: tok.pos, Kind: ctx.top().kind}
			}
			ctx.ops = append(ctx.ops, newOperator(opOpen, false, tok.pos))
			ctx.last = false
		case opClose:
			if !ctx.last {
				// Either () or an operator right before ).
				return Value{}, &MalformedError{Offset: tok.pos, Values: -1}
			}
			for len(ctx.ops) > 0 && ctx.ops[len(ctx.ops)-1].op != opOpen {
				if err := ctx.collapse(); err != nil {
					return Value{}, err
				}
			}
			if len(ctx.ops) == 0 {
				return Value{}, &BracketError{Offset: tok.pos, Paren: ")"}
			}
			ctx.ops = ctx.ops[:len(ctx.ops)-1]
			ctx.last = true
		default:
			if err := ctx.operator(tok); err != nil {
				return Value{}, err
			}
		}
	}

	end := len(l.src)
	if n == 0 {
		return Value{}, &EmptyExpressionError{Offset: end}
	}
	if !ctx.last {
		// The last token was an operator, so it is on top of the stack.
		return Value{}, &EmptyExpressionError{Offset: end, End: ctx.ops[len(ctx.ops)-1].op.String()}
	}
	for len(ctx.ops) > 0 {
		if o := ctx.ops[len(ctx.ops)-1]; o.op == opOpen {
			return Value{}, &BracketError{Offset: o.pos, Paren: "("}
		}
		if err := ctx.collapse(); err != nil {
			return Value{}, err
		}
	}
	if len(ctx.vals) != 1 {
		return Value{}, &MalformedError{Offset: end, Values: len(ctx.vals)}
	}
	return ctx.vals[0], nil
}

// value handles a value token. A value directly after another value combines
// with it implicitly or not at all.
func (ctx *Context) value(tok lexToken) error {
	if !ctx.last {
		ctx.vals = append(ctx.vals, tok.val)
		ctx.last = true
		return nil
	}
	if len(ctx.vals) == 0 {
		return &MalformedError{Offset: tok.pos, Values: -1}
	}
	x := ctx.top()
	r, ok, reason := implicit(x, tok.val)
	if !ok {
		return &AdjacentError{Offset: tok.pos, Left: x.kind, Right: tok.val.kind, Reason: reason}
	}
	ctx.vals[len(ctx.vals)-1] = r
	return nil
}

// operator handles a +, -, *, or / token. Plus and minus are unary where a
// value is expected; times and divide are errors there.
func (ctx *Context) operator(tok lexToken) error {
	unary := !ctx.last
	if unary && tok.op != opAdd && tok.op != opSub {
		return &OperatorError{Offset: tok.pos, Operator: tok.op.String()}
	}
	o := newOperator(tok.op, unary, tok.pos)
	for len(ctx.ops) > 0 {
		top := ctx.ops[len(ctx.ops)-1]
		if top.op == opOpen {
			break
		}
		// Unary operators are right-associative; binary ones are left.
		if o.unary && top.prec <= o.prec || !o.unary && top.prec < o.prec {
			break
		}
		if err := ctx.collapse(); err != nil {
			return err
		}
	}
	ctx.ops = append(ctx.ops, o)
	ctx.last = false
	return nil
}

// collapse pops one operator and its operands and pushes the result.
func (ctx *Context) collapse() error {
	o := ctx.ops[len(ctx.ops)-1]
	ctx.ops = ctx.ops[:len(ctx.ops)-1]
	if o.op == opOpen || o.op == opClose {
		return ErrInternal.New("collapsed a parenthesis")
	}
	y, ok := ctx.pop()
	if !ok {
		return &MalformedError{Offset: o.pos, Values: -1}
	}
	var r Value
	if o.unary {
		r, ok = unary(o.op, y)
		if !ok {
			return &EvalError{Offset: o.pos, Err: ErrUnsupportedUnary.New(o.op, y.kind)}
		}
	} else {
		x, ok := ctx.pop()
		if !ok {
			return &MalformedError{Offset: o.pos, Values: -1}
		}
		if o.op == opDiv && y.v == 0 {
			return &EvalError{Offset: o.pos, Err: ErrDivisionByZero.New(x.Format())}
		}
		r, ok = binary(x, o.op, y)
		if !ok {
			return &EvalError{Offset: o.pos, Err: ErrUnsupportedOperation.New(x.kind, o.op, y.kind)}
		}
		if err := finite(r.v, x.Format()+" "+o.op.String()+" "+y.Format(), o.pos); err != nil {
			return err
		}
	}
	if ctx.cfg.log != nil {
		ctx.cfg.log.WithFields(logrus.Fields{
			"pos":    o.pos,
			"op":     o.op.String(),
			"unary":  o.unary,
			"result": r.Format(),
		}).Debug("collapse")
	}
	ctx.vals = append(ctx.vals, r)
	return nil
}

// trace logs a token if the context has a logger.
func (ctx *Context) trace(l *lexer, tok lexToken) {
	if ctx.cfg.log == nil {
		return
	}
	t := Token{Pos: tok.pos, End: tok.end, Text: l.src[tok.pos:tok.end], Value: tok.val}
	ctx.cfg.log.WithFields(logrus.Fields{
		"pos":   tok.pos,
		"token": t.String(),
	}).Debug("token")
}
