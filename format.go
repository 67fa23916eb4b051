package timecalc

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// Format formats v for display:
//
//	Num       trimmed to at most three decimals, e.g. 2.5
//	Date      YYYY_MM_DD, followed by the time of day if it is not midnight
//	Time      HH:MM:SS[.mmm], followed by a day offset like (+1 day) if the
//	          time is outside the first day
//	Duration  units from largest to smallest, e.g. 1d 2h 30m, or 0ms
func (v Value) Format() string {
	switch v.kind {
	case KindNum:
		return trimFloat(v.v)
	case KindDate:
		return formatDate(v.v)
	case KindTime:
		return formatTime(v.v)
	case KindDuration:
		return formatDuration(v.v)
	default:
		return "<invalid>"
	}
}

// floorMillis converts a millisecond magnitude to an integer, rounding down.
func floorMillis(ms float64) (int64, error) {
	return safecast.Convert[int64](math.Floor(ms))
}

// mod is the floored modulus, always in [0, m) for positive m.
func mod(x, m float64) float64 {
	return math.Mod(math.Mod(x, m)+m, m)
}

func formatDate(ms float64) string {
	if _, err := floorMillis(ms); err != nil {
		return "date(" + trimFloat(ms) + "ms)"
	}
	t := Value{v: ms}.Time()
	s := fmt.Sprintf("%04d_%02d_%02d", t.Year(), int(t.Month()), t.Day())
	// A fraction of a millisecond past midnight still prints the time, as
	// 00:00:00, to show the date is not exactly midnight.
	if rem := mod(ms, msDay); rem != 0 {
		s += " " + formatTime(rem)
	}
	return s
}

func formatTime(ms float64) string {
	days := math.Floor(ms / msDay)
	rem := mod(ms, msDay)
	hours := math.Floor(rem / msHour)
	minutes := math.Floor(mod(rem, msHour) / msMinute)
	seconds := math.Floor(mod(rem, msMinute) / msSecond)
	// Fractions of a millisecond are dropped.
	millis := math.Trunc(mod(rem, msSecond))

	var b strings.Builder
	fmt.Fprintf(&b, "%02d:%02d:%02d", int(hours), int(minutes), int(seconds))
	if millis > 0 {
		fmt.Fprintf(&b, ".%03d", int(millis))
	}
	if days == 0 {
		return b.String()
	}
	sign := "+"
	if days < 0 {
		sign = "-"
	}
	n := math.Abs(days)
	label := "days"
	if n == 1 {
		label = "day"
	}
	b.WriteString(" (" + sign + strconv.FormatFloat(n, 'f', -1, 64) + " " + label + ")")
	return b.String()
}

func formatDuration(ms float64) string {
	if ms == 0 {
		return "0ms"
	}
	var sign string
	if ms < 0 {
		sign = "-"
		ms = -ms
	}
	var parts []string
	for i, u := range units {
		mult := u.Millis()
		if i == len(units)-1 {
			// The smallest unit takes whatever fraction remains. Float residue
			// from larger units shows here, so 1.1h is 1h 6m 0ms.
			if ms != 0 {
				parts = append(parts, trimFloat(ms/mult)+u.Suffix())
			}
			break
		}
		if ms < mult {
			continue
		}
		whole := math.Floor(ms / mult)
		parts = append(parts, strconv.FormatFloat(whole, 'f', -1, 64)+u.Suffix())
		ms -= whole * mult
	}
	return sign + strings.Join(parts, " ")
}
