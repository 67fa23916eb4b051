package timecalc

// Context is a context for evaluating expressions. It holds the stacks used
// during evaluation, so it is not safe to use a Context concurrently.
// Separate contexts share nothing and may be used concurrently.
type Context struct {
	cfg  config
	vals []Value
	ops  []operator
	// last is whether the last token was a value or a close parenthesis.
	// It must start false so that a leading + or - is unary.
	last bool
}

// NewContext creates a new evaluation context.
func NewContext(opts ...Option) *Context {
	return &Context{cfg: newConfig(opts)}
}

// Eval evaluates an expression and returns its value. Any error from invalid
// input implements InputError.
func (ctx *Context) Eval(src string) (Value, error) {
	ctx.vals = ctx.vals[:0]
	ctx.ops = ctx.ops[:0]
	ctx.last = false
	return ctx.run(lex(src, &ctx.cfg))
}

// top returns the top of the value stack, or the zero Value if it is empty.
func (ctx *Context) top() Value {
	if len(ctx.vals) == 0 {
		return Value{}
	}
	return ctx.vals[len(ctx.vals)-1]
}

// pop removes the top of the value stack and returns it.
func (ctx *Context) pop() (Value, bool) {
	if len(ctx.vals) == 0 {
		return Value{}, false
	}
	v := ctx.vals[len(ctx.vals)-1]
	ctx.vals = ctx.vals[:len(ctx.vals)-1]
	return v, true
}

// Eval is a shortcut to evaluate an expression with a new context.
func Eval(src string, opts ...Option) (Value, error) {
	return NewContext(opts...).Eval(src)
}

// EvalString evaluates an expression and formats the result.
func EvalString(src string, opts ...Option) (string, error) {
	v, err := Eval(src, opts...)
	if err != nil {
		return "", err
	}
	return v.Format(), nil
}

// Show evaluates an expression for display. The result is the formatted
// value, or the error message if evaluation fails.
func Show(src string, opts ...Option) string {
	s, err := EvalString(src, opts...)
	if err != nil {
		return err.Error()
	}
	return s
}
