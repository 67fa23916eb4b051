package timecalc

import (
	"regexp"
	"strconv"
	"strings"
)

// unbounded is the max of a charSpec that may repeat any number of times.
const unbounded = -1

// charSpec describes one run of characters for scanChars. Exactly one of lit
// and re is set.
type charSpec struct {
	// lit is a literal string matched repeatedly.
	lit string
	// re matches the entire run at once. It is anchored and already carries
	// the repetition bounds.
	re *regexp.Regexp
	// min and max bound the number of repetitions, inclusive. max may be
	// unbounded.
	min, max int
}

// lit creates a spec matching s between min and max times.
func lit(s string, min, max int) charSpec {
	if s == "" {
		panic("timecalc: empty literal char spec")
	}
	return charSpec{lit: s, min: min, max: max}
}

// pattern creates a spec matching the regular expression expr between min
// and max times.
func pattern(expr string, min, max int) charSpec {
	var q string
	switch {
	case max == unbounded:
		q = "{" + strconv.Itoa(min) + ",}"
	case min == max:
		q = "{" + strconv.Itoa(min) + "}"
	default:
		q = "{" + strconv.Itoa(min) + "," + strconv.Itoa(max) + "}"
	}
	return charSpec{re: regexp.MustCompile("^(?:" + expr + ")" + q), min: min, max: max}
}

// scanChars matches each spec consecutively starting at src[at:]. It returns
// the substring consumed by each spec and the index after the last one. The
// match fails if any spec does not reach its minimum or if nothing at all was
// consumed.
func scanChars(src string, at int, specs ...charSpec) ([]string, int, bool) {
	parts := make([]string, len(specs))
	k := at
	for i, spec := range specs {
		start := k
		if spec.re != nil {
			loc := spec.re.FindStringIndex(src[k:])
			if loc == nil {
				return nil, at, false
			}
			k += loc[1]
		} else {
			n := 0
			for (spec.max == unbounded || n < spec.max) && strings.HasPrefix(src[k:], spec.lit) {
				k += len(spec.lit)
				n++
			}
			if n < spec.min {
				return nil, at, false
			}
		}
		parts[i] = src[start:k]
	}
	if k <= at {
		return nil, at, false
	}
	return parts, k, true
}
