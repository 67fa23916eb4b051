// Package timecalc implements a calculator for dates, times of day, and
// durations.
//
// Expressions mix plain numbers with four kinds of literals:
//
//	2024_01_31    a date, at midnight UTC
//	9:30, 4:15pm  a time of day
//	3h, 1.5d      a duration; units are y, mo, w, d, h, m, s, and ms, and
//	              longer names like min, sec, or millis
//	now, noon, midday, midnight
//
// with +, -, *, /, and parentheses. "2024_01_31 + 3w" is a date, "now -
// 2020_06_15" is a duration, and "1h / 15m" is a number. Writing values next
// to each other adds them in two cases: a date literal followed by a time,
// as in "2024_01_31 9:30", and durations in strictly decreasing units, as in
// "1h 30m" or "1h30m". An underscore may also join durations, as in
// "1d_12h".
//
// All arithmetic is float64 milliseconds, in UTC.
package timecalc
