package timecalc

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Unit is a duration unit.
type Unit int8

const (
	// NoUnit marks a duration that was not written with a unit suffix.
	NoUnit Unit = iota
	Year
	Month
	Week
	Day
	Hour
	Minute
	Second
	Millisecond
)

// units lists the duration units from largest to smallest.
var units = [...]Unit{Year, Month, Week, Day, Hour, Minute, Second, Millisecond}

const (
	msSecond = 1000
	msMinute = 60 * msSecond
	msHour   = 60 * msMinute
	msDay    = 24 * msHour
	msWeek   = 7 * msDay
	// msYear is the mean Gregorian year of 365.2425 days.
	msYear  = 31556952000
	msMonth = msYear / 12
)

var unitMillis = [...]float64{
	Year:        msYear,
	Month:       msMonth,
	Week:        msWeek,
	Day:         msDay,
	Hour:        msHour,
	Minute:      msMinute,
	Second:      msSecond,
	Millisecond: 1,
}

var unitSuffix = [...]string{
	Year:        "y",
	Month:       "mo",
	Week:        "w",
	Day:         "d",
	Hour:        "h",
	Minute:      "m",
	Second:      "s",
	Millisecond: "ms",
}

var unitNames = [...]string{
	NoUnit:      "none",
	Year:        "year",
	Month:       "month",
	Week:        "week",
	Day:         "day",
	Hour:        "hour",
	Minute:      "minute",
	Second:      "second",
	Millisecond: "millisecond",
}

// suffixUnits maps every accepted lowercase duration suffix to its unit.
var suffixUnits = map[string]Unit{
	"y":           Year,
	"year":        Year,
	"mo":          Month,
	"month":       Month,
	"w":           Week,
	"week":        Week,
	"d":           Day,
	"day":         Day,
	"h":           Hour,
	"hour":        Hour,
	"m":           Minute,
	"min":         Minute,
	"minute":      Minute,
	"s":           Second,
	"sec":         Second,
	"second":      Second,
	"ms":          Millisecond,
	"millis":      Millisecond,
	"millisec":    Millisecond,
	"millisecond": Millisecond,
}

// Millis returns the number of milliseconds in one u. Months and years use
// Gregorian averages.
func (u Unit) Millis() float64 {
	if u <= NoUnit || int(u) >= len(unitMillis) {
		return 0
	}
	return unitMillis[u]
}

// Suffix returns the suffix used to display amounts of u.
func (u Unit) Suffix() string {
	if u <= NoUnit || int(u) >= len(unitSuffix) {
		return ""
	}
	return unitSuffix[u]
}

func (u Unit) String() string {
	if u < NoUnit || int(u) >= len(unitNames) {
		return "Unit(" + strconv.Itoa(int(u)) + ")"
	}
	return unitNames[u]
}

// LookupUnit finds the unit for a duration suffix such as "h", "min", or
// "Millis". Matching is case-insensitive.
func LookupUnit(suffix string) (Unit, bool) {
	u, ok := suffixUnits[strings.ToLower(suffix)]
	return u, ok
}

// alternation builds a case-insensitive regular expression alternation of
// words, longest first so that the leftmost-first match is the longest.
func alternation(words []string) string {
	w := append([]string(nil), words...)
	sort.Slice(w, func(i, j int) bool {
		if len(w[i]) != len(w[j]) {
			return len(w[i]) > len(w[j])
		}
		return w[i] < w[j]
	})
	for i, s := range w {
		w[i] = regexp.QuoteMeta(s)
	}
	return "(?i:" + strings.Join(w, "|") + ")"
}

func keys[V any](m map[string]V) []string {
	r := make([]string, 0, len(m))
	for k := range m {
		r = append(r, k)
	}
	return r
}

func isLeapYear(year int) bool {
	return year%4 == 0 && year%100 != 0 || year%400 == 0
}

var monthDays = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// daysIn returns the number of days in a month, which must be in [1, 12].
func daysIn(year, month int) int {
	if month == 2 && isLeapYear(year) {
		return 29
	}
	return monthDays[month-1]
}

// trimFloat formats x rounded to three decimal places without trailing zeros.
func trimFloat(x float64) string {
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 3, 64), 64)
	if err != nil {
		// Only infinities fail to round-trip, and those never become values.
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	if r == 0 {
		// No negative zero.
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
