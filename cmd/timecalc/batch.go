package main

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/zephyrtronium/timecalc"
)

// result is the outcome of one expression.
type result struct {
	Input  string   `json:"input" yaml:"input"`
	Kind   string   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Value  *float64 `json:"value,omitempty" yaml:"value,omitempty"`
	Result string   `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string   `json:"error,omitempty" yaml:"error,omitempty"`
	Pos    *int     `json:"pos,omitempty" yaml:"pos,omitempty"`
}

func newResult(src string, v timecalc.Value, err error) result {
	r := result{Input: src}
	if err != nil {
		r.Error = err.Error()
		var ie timecalc.InputError
		if errors.As(err, &ie) {
			p := ie.Pos()
			r.Pos = &p
		}
		return r
	}
	f := v.Float()
	r.Kind = v.Kind().String()
	r.Value = &f
	r.Result = v.Format()
	return r
}

// evalAll evaluates each expression on up to workers goroutines. Results are
// in the same order as srcs. Each goroutine uses its own Context.
func evalAll(ctx context.Context, srcs []string, workers int, opts []timecalc.Option) ([]result, error) {
	if workers < 1 {
		workers = 1
	}
	if ctx == nil {
		ctx = context.Background()
	}
	preset := timecalc.Preset(opts...)
	res := make([]result, len(srcs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, src := range srcs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := timecalc.NewContext(preset).Eval(src)
			res[i] = newResult(src, v, err)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
