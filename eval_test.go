package timecalc_test

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/zephyrtronium/timecalc"
)

// jan1 is the instant the now keyword produces in tests.
var jan1 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func clock() time.Time {
	return jan1
}

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind timecalc.Kind
		r    string
	}{
		// numbers
		{"num", "1", timecalc.KindNum, "1"},
		{"frac", "0.25", timecalc.KindNum, "0.25"},
		{"precedence", "2+3*4", timecalc.KindNum, "14"},
		{"parens", "(2+3)*4", timecalc.KindNum, "20"},
		{"nested", "((2))", timecalc.KindNum, "2"},
		{"sub-left", "2-3-4", timecalc.KindNum, "-5"},
		{"div-left", "8/4/2", timecalc.KindNum, "1"},
		{"third", "1/3", timecalc.KindNum, "0.333"},
		{"neg", "-5", timecalc.KindNum, "-5"},
		{"plus", "+5", timecalc.KindNum, "5"},
		{"neg-neg", "--1", timecalc.KindNum, "1"},
		{"neg-parens", "-(2+3)", timecalc.KindNum, "-5"},
		{"neg-mul", "-2*3", timecalc.KindNum, "-6"},
		{"mul-neg", "2*-3", timecalc.KindNum, "-6"},
		{"sub-neg", "2 - -3", timecalc.KindNum, "5"},
		{"spaces", " 1 +\t2\n", timecalc.KindNum, "3"},
		// durations
		{"hours", "3h", timecalc.KindDuration, "3h"},
		{"chain", "1h30m", timecalc.KindDuration, "1h 30m"},
		{"chain-spaced", "1d 2h 30m", timecalc.KindDuration, "1d 2h 30m"},
		{"chain-underscore", "3h + 1d_30m", timecalc.KindDuration, "1d 3h 30m"},
		{"chain-neg", "-1h30m", timecalc.KindDuration, "-1h 30m"},
		{"week", "7d", timecalc.KindDuration, "1w"},
		{"seconds", "1.5s", timecalc.KindDuration, "1s 500ms"},
		{"fraction-ms", "0.5ms", timecalc.KindDuration, "0.5ms"},
		{"zero", "1h - 1h", timecalc.KindDuration, "0ms"},
		{"scale", "2 * 1h", timecalc.KindDuration, "2h"},
		{"scale-right", "1h * 2", timecalc.KindDuration, "2h"},
		{"halve", "1h / 2", timecalc.KindDuration, "30m"},
		{"ratio", "1h / 15m", timecalc.KindNum, "4"},
		{"third-ms", "1ms / 3", timecalc.KindDuration, "0.333ms"},
		{"years", "2.5y", timecalc.KindDuration, "2y 6mo"},
		{"all-units", "1d 1h 1m 1s 1ms", timecalc.KindDuration, "1d 1h 1m 1s 1ms"},
		{"float-residue", "1.1h", timecalc.KindDuration, "1h 6m 0ms"},
		{"sub-ms-date", "2024_01_01 + 0.5ms", timecalc.KindDate, "2024_01_01 00:00:00"},
		{"sub-ms-time", "midnight + 0.5ms", timecalc.KindTime, "00:00:00"},
		{"neg-duration", "-(2h)", timecalc.KindDuration, "-2h"},
		// dates
		{"date", "2024_01_01", timecalc.KindDate, "2024_01_01"},
		{"leap", "2024_02_29", timecalc.KindDate, "2024_02_29"},
		{"date-short", "2024_3_5", timecalc.KindDate, "2024_03_05"},
		{"date-hours", "2024_01_01 + 3h", timecalc.KindDate, "2024_01_01 03:00:00"},
		{"date-days", "2024_02_28 + 2d", timecalc.KindDate, "2024_03_01"},
		{"date-sub", "2024_03_01 - 1d", timecalc.KindDate, "2024_02_29"},
		{"duration-date", "1w + 2024_01_01", timecalc.KindDate, "2024_01_08"},
		{"date-time", "2024_01_31 9:30", timecalc.KindDate, "2024_01_31 09:30:00"},
		{"date-time-pm", "2024_01_31 9:30pm", timecalc.KindDate, "2024_01_31 21:30:00"},
		{"date-ms", "2024_01_01 + 1.5s", timecalc.KindDate, "2024_01_01 00:00:01.500"},
		{"date-diff", "2024_01_01 - 2024_01_02", timecalc.KindDuration, "-1d"},
		{"now", "now", timecalc.KindDate, "2024_01_01"},
		{"since", "now - 2020_06_15", timecalc.KindDuration, "3y 6mo 2w 2d 15h 37m 48s"},
		{"before-epoch", "1969_12_31 + 12h", timecalc.KindDate, "1969_12_31 12:00:00"},
		// times
		{"time", "9:30", timecalc.KindTime, "09:30:00"},
		{"noon", "NOON", timecalc.KindTime, "12:00:00"},
		{"midnight", "midnight", timecalc.KindTime, "00:00:00"},
		{"time-diff", "noon - 9:30", timecalc.KindDuration, "2h 30m"},
		{"time-wrap", "23:00 + 2h", timecalc.KindTime, "01:00:00 (+1 day)"},
		{"time-wrap-days", "23:00 + 50h", timecalc.KindTime, "01:00:00 (+3 days)"},
		{"time-back", "1:00 - 3h", timecalc.KindTime, "22:00:00 (-1 day)"},
		{"time-ms", "midnight + 5ms", timecalc.KindTime, "00:00:00.005"},
		{"duration-time", "2h + 9:00", timecalc.KindTime, "11:00:00"},
	}
	ctx := timecalc.NewContext(timecalc.Clock(clock))
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := ctx.Eval(c.src)
			if err != nil {
				t.Fatalf("%q failed: %v", c.src, err)
			}
			if r.Kind() != c.kind {
				t.Errorf("%q: wrong kind: want %v, got %v", c.src, c.kind, r.Kind())
			}
			if s := r.Format(); s != c.r {
				t.Errorf("%q: wrong result: want %q, got %q", c.src, c.r, s)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	var (
		lexErr   *timecalc.LexError
		opErr    *timecalc.OperatorError
		brErr    *timecalc.BracketError
		callErr  *timecalc.CallError
		adjErr   *timecalc.AdjacentError
		emptyErr *timecalc.EmptyExpressionError
		malErr   *timecalc.MalformedError
		evalErr  *timecalc.EvalError
	)
	cases := []struct {
		name string
		src  string
		as   interface{}
		pos  int
	}{
		{"empty", "", &emptyErr, 0},
		{"blank", "   ", &emptyErr, 3},
		{"trailing-op", "1+", &emptyErr, 2},
		{"leading-mul", "*2", &opErr, 0},
		{"double-mul", "2**2", &opErr, 2},
		{"unmatched-open", "(1", &brErr, 0},
		{"unmatched-open-inner", "((1)", &brErr, 0},
		{"unmatched-close", "1)", &brErr, 1},
		{"call", "2(3)", &callErr, 1},
		{"empty-parens", "()", &malErr, 1},
		{"paren-op", "(1+)", &malErr, 3},
		{"adjacent-nums", "5 5", &adjErr, 2},
		{"adjacent-times", "9:00 10:00", &adjErr, 5},
		{"chain-increasing", "30m1h", &adjErr, 3},
		{"chain-equal", "1h1h", &adjErr, 2},
		{"chain-derived", "(2024_01_02 - 2024_01_01) 1h", &adjErr, 26},
		{"now-time", "now 3:00", &adjErr, 4},
		{"computed-date-time", "(2024_01_01 + 1d) 3:00", &adjErr, 18},
		{"bad-leap", "2023_02_29", &lexErr, 0},
		{"bad-char", "1 # 2", &lexErr, 2},
		{"unsupported", "1h + 2", &evalErr, 3},
		{"date-mul", "2024_01_01 * 2024_01_01", &evalErr, 11},
		{"time-add", "9:00 + 10:00", &evalErr, 5},
		{"neg-date", "-2024_01_01", &evalErr, 0},
		{"div-zero", "1/0", &evalErr, 1},
		{"overflow", "99999999999999999999 * 99999999999999999999 * 99999999999999999999 * 99999999999999999999 * 99999999999999999999 * 99999999999999999999 * 99999999999999999999 * 99999999999999999999 * 99999999999999999999 * 99999999999999999999 * 99999999999999999999 * 99999999999999999999 * 99999999999999999999 * 99999999999999999999 * 99999999999999999999 * 99999999999999999999", &evalErr, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := timecalc.Eval(c.src, timecalc.Clock(clock))
			if err == nil {
				t.Fatalf("%q: expected error, got %v", c.src, r)
			}
			if !errors.As(err, c.as) {
				t.Fatalf("%q: wrong error type %T: %v", c.src, err, err)
			}
			var ie timecalc.InputError
			if !errors.As(err, &ie) {
				t.Fatalf("%q: %T is not an InputError", c.src, err)
			}
			if c.name == "overflow" {
				// The position is that of whichever multiplication overflowed.
				return
			}
			if ie.Pos() != c.pos {
				t.Errorf("%q: wrong position: want %d, got %d (%v)", c.src, c.pos, ie.Pos(), err)
			}
		})
	}
}

func TestEvalErrorKinds(t *testing.T) {
	cases := []struct {
		src  string
		kind interface{ Is(error) bool }
	}{
		{"1/0", timecalc.ErrDivisionByZero},
		{"1h / 0", timecalc.ErrDivisionByZero},
		{"1h / 0s", timecalc.ErrDivisionByZero},
		{"1h / (1h - 1h)", timecalc.ErrDivisionByZero},
		{"2024_01_01 / 0", timecalc.ErrDivisionByZero},
		{"1 / 1h", timecalc.ErrUnsupportedOperation},
		{"2024_01_01 + 2024_01_01", timecalc.ErrUnsupportedOperation},
		{"1h - 2024_01_01", timecalc.ErrUnsupportedOperation},
		{"9:00 * 2", timecalc.ErrUnsupportedOperation},
		{"-noon", timecalc.ErrUnsupportedUnary},
		{"+now", timecalc.ErrUnsupportedUnary},
	}
	for _, c := range cases {
		_, err := timecalc.Eval(c.src, timecalc.Clock(clock))
		var ee *timecalc.EvalError
		if !errors.As(err, &ee) {
			t.Errorf("%q: want *EvalError, got %T: %v", c.src, err, err)
			continue
		}
		if !c.kind.Is(ee.Err) {
			t.Errorf("%q: wrong error kind: %v", c.src, err)
		}
	}
}

func TestNumRoundTrip(t *testing.T) {
	for _, x := range []float64{0, 1, 2.5, 1234.125, -7, 0.001, -0.5, 1e15, 123456789.987} {
		s := timecalc.Num(x).Format()
		r, err := timecalc.Eval(s)
		if err != nil {
			t.Errorf("%v formatted as %q, which failed: %v", x, s, err)
			continue
		}
		if r.Kind() != timecalc.KindNum || r.Float() != x {
			t.Errorf("%v formatted as %q, which evaluated to %v %v", x, s, r.Kind(), r.Float())
		}
	}
}

func TestDurationRoundTrip(t *testing.T) {
	for _, ms := range []float64{1, 999, 1500, 90061001, 31556952000 * 2.5, -123456789, 0.25, 86400000*400 + 1.5, 1e13 + 0.125} {
		s := timecalc.Millis(timecalc.KindDuration, ms).Format()
		r, err := timecalc.Eval(s)
		if err != nil {
			t.Errorf("%v formatted as %q, which failed: %v", ms, s, err)
			continue
		}
		if r.Kind() != timecalc.KindDuration {
			t.Errorf("%v formatted as %q, which evaluated to %v", ms, s, r.Kind())
		}
		if d := math.Abs(r.Float() - ms); d > 5e-4+1e-12*math.Abs(ms) {
			t.Errorf("%v formatted as %q, which evaluated to %v", ms, s, r.Float())
		}
	}
}

func TestShow(t *testing.T) {
	cases := []struct {
		src string
		r   string
	}{
		{"1h30m", "1h 30m"},
		{"1/0", "1: cannot divide 1 by zero"},
		{"5 5", "2: unexpected Num after Num"},
		{"1+", "2: expression cannot end with operator \"+\""},
	}
	for _, c := range cases {
		if s := timecalc.Show(c.src); s != c.r {
			t.Errorf("%q: want %q, got %q", c.src, c.r, s)
		}
	}
}

func TestContextReuse(t *testing.T) {
	ctx := timecalc.NewContext()
	if _, err := ctx.Eval("(1 +"); err == nil {
		t.Fatal("expected error")
	}
	r, err := ctx.Eval("2 * 3")
	if err != nil {
		t.Fatal(err)
	}
	if r.Format() != "6" {
		t.Errorf("stale state after error: got %v", r)
	}
}

func TestConcurrentContexts(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx := timecalc.NewContext(timecalc.Clock(clock))
			for j := 0; j < 100; j++ {
				r, err := ctx.Eval("now + 1d 12h")
				if err != nil {
					t.Error(err)
					return
				}
				if s := r.Format(); s != "2024_01_02 12:00:00" {
					t.Errorf("wrong result %q", s)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestPreset(t *testing.T) {
	p := timecalc.Preset(timecalc.Clock(clock))
	s, err := timecalc.EvalString("now", p)
	if err != nil {
		t.Fatal(err)
	}
	if s != "2024_01_01" {
		t.Errorf("preset clock not applied: got %q", s)
	}
	defer func() {
		if recover() == nil {
			t.Error("preset after another option did not panic")
		}
	}()
	timecalc.Eval("now", timecalc.Clock(clock), p)
}

func TestValueConversions(t *testing.T) {
	d := timecalc.DurationOf(90 * time.Minute)
	if d.Kind() != timecalc.KindDuration || d.FromSuffix() != timecalc.NoUnit {
		t.Errorf("wrong duration value %+v", d)
	}
	if s := d.Format(); s != "1h 30m" {
		t.Errorf("DurationOf(90m) formatted as %q", s)
	}
	if r := d.Duration(); r != 90*time.Minute {
		t.Errorf("DurationOf(90m).Duration() = %v", r)
	}
	if r := timecalc.TimeOfDay(9 * time.Hour).Duration(); r != 9*time.Hour {
		t.Errorf("TimeOfDay(9h).Duration() = %v", r)
	}
	if r := timecalc.Millis(timecalc.KindDuration, 1e300).Duration(); r != math.MaxInt64 {
		t.Errorf("huge duration did not saturate: %v", r)
	}
	if r := timecalc.Millis(timecalc.KindDuration, -1e300).Duration(); r != math.MinInt64 {
		t.Errorf("huge negative duration did not saturate: %v", r)
	}
	if r := timecalc.DateOf(jan1).Time(); !r.Equal(jan1) {
		t.Errorf("DateOf(jan1).Time() = %v", r)
	}
	if r := timecalc.Millis(timecalc.KindDate, 1e300).Time(); !r.IsZero() {
		t.Errorf("out of range date gave %v", r)
	}
}
