package timecalc

import (
	"io"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// meridiem is a 12-hour clock suffix.
type meridiem int8

const (
	am meridiem = iota + 1
	pm
)

var meridiems = map[string]meridiem{
	"a":  am,
	"am": am,
	"p":  pm,
	"pm": pm,
}

// keywords maps lowercase keywords to their values.
var keywords = map[string]func(c *config) Value{
	"now": func(c *config) Value {
		return DateOf(c.now())
	},
	"noon": func(*config) Value {
		return TimeOfDay(12 * time.Hour)
	},
	"midday": func(*config) Value {
		return TimeOfDay(12 * time.Hour)
	},
	"midnight": func(*config) Value {
		return TimeOfDay(0)
	},
}

var (
	digits = `\d`

	numSpecs = []charSpec{
		pattern(digits, 0, unbounded),
		lit(".", 0, 1),
		pattern(digits, 0, unbounded),
	}
	dateSpecs = []charSpec{
		pattern(digits, 4, 4),
		lit("_", 1, 1),
		pattern(digits, 1, 2),
		lit("_", 1, 1),
		pattern(digits, 1, 2),
	}
	timeSpecs = []charSpec{
		pattern(digits, 1, 2),
		lit(":", 1, 1),
		pattern(digits, 2, 2),
		pattern(alternation(keys(meridiems)), 0, 1),
	}
	suffixSpec = pattern(alternation(keys(suffixUnits)), 1, 1)
	wordSpec   = pattern(`[A-Za-z]`, 1, unbounded)
)

// probe attempts to scan one kind of token at a position. If the input there
// is not that kind of token, the result is false with a nil error. If it is
// that kind of token but invalid, the error is non-nil.
type probe func(l *lexer, at int) (lexToken, bool, error)

// probes are tried in order, and the first match wins. Dates and times must
// precede durations and numbers, which would match their leading digits, and
// durations must precede numbers for the same reason.
var probes = [...]struct {
	name string
	scan probe
}{
	{"date", lexDate},
	{"time", lexTime},
	{"duration", lexDuration},
	{"number", lexNum},
	{"operator", lexOperator},
	{"keyword", lexKeyword},
}

// lexer scans tokens from a string one at a time. It is not restartable.
type lexer struct {
	src string
	pos int
	cfg *config
	// err is the error that stopped scanning, if any.
	err error
}

func lex(src string, cfg *config) *lexer {
	return &lexer{src: src, cfg: cfg}
}

// next scans the next token from the input. At the end of the input, the
// result is io.EOF. After any error, every later call returns the same error.
func (l *lexer) next() (lexToken, error) {
	if l.err != nil {
		return lexToken{}, l.err
	}
	l.skipSpace()
	if l.pos >= len(l.src) {
		l.err = io.EOF
		return lexToken{}, io.EOF
	}
	for _, p := range probes {
		tok, ok, err := p.scan(l, l.pos)
		if err != nil {
			l.err = err
			return lexToken{}, err
		}
		if !ok {
			continue
		}
		if tok.end <= l.pos {
			l.err = ErrInternal.New(p.name + " token at " + strconv.Itoa(l.pos) + " did not consume input")
			return lexToken{}, l.err
		}
		l.pos = tok.end
		return tok, nil
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	l.err = &LexError{Offset: l.pos, Text: string(r)}
	return lexToken{}, l.err
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		r, sz := utf8.DecodeRuneInString(l.src[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		l.pos += sz
	}
}

// finite returns an error if x is not finite.
func finite(x float64, text string, at int) error {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return &EvalError{Offset: at, Err: ErrNotFinite.New(strconv.Quote(text))}
	}
	return nil
}

func lexNum(l *lexer, at int) (lexToken, bool, error) {
	parts, end, ok := scanChars(l.src, at, numSpecs...)
	if !ok {
		return lexToken{}, false, nil
	}
	ip, dot, fp := parts[0], parts[1], parts[2]
	if dot != "" && fp == "" {
		return lexToken{}, false, nil
	}
	if ip == "" {
		ip = "0"
	}
	if fp == "" {
		fp = "0"
	}
	// The only possible error is a range error, which still gives inf.
	x, _ := strconv.ParseFloat(ip+"."+fp, 64)
	if err := finite(x, l.src[at:end], at); err != nil {
		return lexToken{}, false, err
	}
	return lexToken{val: Num(x), pos: at, end: end}, true, nil
}

func lexDate(l *lexer, at int) (lexToken, bool, error) {
	parts, end, ok := scanChars(l.src, at, dateSpecs...)
	if !ok {
		return lexToken{}, false, nil
	}
	// The parts are all digits, so these conversions succeed.
	year, _ := strconv.Atoi(parts[0])
	month, _ := strconv.Atoi(parts[2])
	day, _ := strconv.Atoi(parts[4])
	bad := func(reason string) error {
		return &LexError{Offset: at, Text: l.src[at:end], Kind: "date", Reason: reason}
	}
	if month < 1 || month > 12 {
		return lexToken{}, false, bad("invalid month number " + strconv.Itoa(month))
	}
	if day < 1 || day > daysIn(year, month) {
		return lexToken{}, false, bad("invalid day number " + strconv.Itoa(day) + " for month " + strconv.Itoa(month))
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return lexToken{val: dateLiteral(float64(t.UnixMilli())), pos: at, end: end}, true, nil
}

func lexTime(l *lexer, at int) (lexToken, bool, error) {
	parts, end, ok := scanChars(l.src, at, timeSpecs...)
	if !ok {
		return lexToken{}, false, nil
	}
	hour, _ := strconv.Atoi(parts[0])
	minute, _ := strconv.Atoi(parts[2])
	bad := func(reason string) error {
		return &LexError{Offset: at, Text: l.src[at:end], Kind: "time", Reason: reason}
	}
	if minute > 59 {
		return lexToken{}, false, bad("invalid minute " + strconv.Itoa(minute))
	}
	if parts[3] != "" {
		m := meridiems[strings.ToLower(parts[3])]
		if hour < 1 || hour > 12 {
			return lexToken{}, false, bad("invalid hour " + strconv.Itoa(hour) + " for 12-hour clock")
		}
		switch {
		case m == am && hour == 12:
			hour = 0
		case m == pm && hour != 12:
			hour += 12
		}
	} else if hour > 23 {
		return lexToken{}, false, bad("invalid hour " + strconv.Itoa(hour) + " for 24-hour clock")
	}
	ms := float64(hour)*msHour + float64(minute)*msMinute
	return lexToken{val: Value{kind: KindTime, v: ms}, pos: at, end: end}, true, nil
}

func lexDuration(l *lexer, at int) (lexToken, bool, error) {
	num, ok, err := lexNum(l, at)
	if !ok || err != nil {
		return lexToken{}, false, err
	}
	parts, end, ok := scanChars(l.src, num.end, suffixSpec)
	if !ok {
		if _, wend, ok := scanChars(l.src, num.end, wordSpec); ok {
			// A number followed by letters must be a duration.
			return lexToken{}, false, &LexError{
				Offset: at,
				Text:   l.src[at:wend],
				Kind:   "duration",
				Reason: "unknown unit " + strconv.Quote(l.src[num.end:wend]),
			}
		}
		return lexToken{}, false, nil
	}
	if _, wend, ok := scanChars(l.src, end, wordSpec); ok {
		// The suffix is the start of a longer word, e.g. hours.
		return lexToken{}, false, &LexError{
			Offset: at,
			Text:   l.src[at:wend],
			Kind:   "duration",
			Reason: "unknown unit " + strconv.Quote(l.src[num.end:wend]),
		}
	}
	u, ok := LookupUnit(parts[0])
	if !ok {
		panic("timecalc: suffix pattern matched unknown unit " + strconv.Quote(parts[0]))
	}
	ms := num.val.v * u.Millis()
	if err := finite(ms, l.src[at:end], at); err != nil {
		return lexToken{}, false, err
	}
	// An underscore may separate a duration from the next, as in 1d_12h.
	if end+1 < len(l.src) && l.src[end] == '_' && '0' <= l.src[end+1] && l.src[end+1] <= '9' {
		end++
	}
	return lexToken{val: suffixed(ms, u), pos: at, end: end}, true, nil
}

func lexOperator(l *lexer, at int) (lexToken, bool, error) {
	if at >= len(l.src) {
		return lexToken{}, false, nil
	}
	k := strings.IndexByte(Operators, l.src[at])
	if k < 0 {
		return lexToken{}, false, nil
	}
	return lexToken{op: opKind(k), pos: at, end: at + 1}, true, nil
}

func lexKeyword(l *lexer, at int) (lexToken, bool, error) {
	parts, end, ok := scanChars(l.src, at, wordSpec)
	if !ok {
		return lexToken{}, false, nil
	}
	kw := keywords[strings.ToLower(parts[0])]
	if kw == nil {
		return lexToken{}, false, &LexError{Offset: at, Text: parts[0], Kind: "keyword", Reason: "unknown keyword"}
	}
	return lexToken{val: kw(l.cfg), pos: at, end: end}, true, nil
}

// Tokenize scans all tokens of an expression without evaluating it.
func Tokenize(src string, opts ...Option) ([]Token, error) {
	cfg := newConfig(opts)
	l := lex(src, &cfg)
	var toks []Token
	for {
		tok, err := l.next()
		if err == io.EOF {
			return toks, nil
		}
		if err != nil {
			return toks, err
		}
		toks = append(toks, Token{Pos: tok.pos, End: tok.end, Text: src[tok.pos:tok.end], Value: tok.val})
	}
}
