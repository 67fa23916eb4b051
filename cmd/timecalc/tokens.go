package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/timecalc"
)

func newTokensCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens expr",
		Short: "Print the tokens of an expression",
		Long: `tokens scans an expression without evaluating it and prints one token
per line with its byte offsets, its kind, and its value.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			eo, err := evalOptions(opts, log)
			if err != nil {
				return err
			}
			src := strings.Join(args, " ")
			toks, err := timecalc.Tokenize(src, eo...)
			w := cmd.OutOrStdout()
			p := newPalette(useColor(opts.color, w))
			width := 0
			for _, tok := range toks {
				width = max(width, runewidth.StringWidth(tok.Text))
			}
			for _, tok := range toks {
				kind := "Op"
				if !tok.IsOperator() {
					kind = tok.Value.Kind().String()
				}
				fmt.Fprintf(w, "%3d:%-3d %s  %-8s %s\n", tok.Pos, tok.End, runewidth.FillRight(tok.Text, width), kind, p.result.Sprint(tok))
			}
			if err != nil {
				var ie timecalc.InputError
				if errors.As(err, &ie) {
					p.input.Fprintln(w, src)
					p.caret.Fprintln(w, caret(src, ie.Pos()))
				}
				p.err.Fprintln(w, "error:", err)
				return errFailed
			}
			return nil
		},
	}
}
