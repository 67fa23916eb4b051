package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"
)

// useColor decides whether to colorize output written to w.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) && os.Getenv("NO_COLOR") == ""
}

type palette struct {
	input, result, err, caret *color.Color
}

func newPalette(on bool) palette {
	p := palette{
		input:  color.New(color.Faint),
		result: color.New(color.FgGreen),
		err:    color.New(color.FgRed, color.Bold),
		caret:  color.New(color.FgYellow, color.Bold),
	}
	for _, c := range []*color.Color{p.input, p.result, p.err, p.caret} {
		if on {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// caret returns a line that points at the given byte offset of src when
// printed under it. Wide characters count as two columns.
func caret(src string, pos int) string {
	pos = min(max(pos, 0), len(src))
	return strings.Repeat(" ", runewidth.StringWidth(src[:pos])) + "^"
}

func writeText(w io.Writer, res []result, echo, colorize bool) error {
	p := newPalette(colorize)
	for _, r := range res {
		if echo {
			if _, err := p.input.Fprintln(w, r.Input); err != nil {
				return err
			}
		}
		if r.Error == "" {
			if _, err := p.result.Fprintln(w, r.Result); err != nil {
				return err
			}
			continue
		}
		if r.Pos != nil {
			if !echo {
				if _, err := p.input.Fprintln(w, r.Input); err != nil {
					return err
				}
			}
			if _, err := p.caret.Fprintln(w, caret(r.Input, *r.Pos)); err != nil {
				return err
			}
		}
		if _, err := p.err.Fprintln(w, "error:", r.Error); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, res []result) error {
	b, err := json.MarshalIndent(res, "", "\t")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

func writeYAML(w io.Writer, res []result) error {
	b, err := yaml.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	_, err = w.Write(b)
	return err
}
