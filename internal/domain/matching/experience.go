package matching

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	openEndedMaxYears = 20
	defaultMinYears   = 0
	defaultMaxYears   = 10
	bareRangeSpan     = 2
)

var nonRangeChars = regexp.MustCompile(`[^0-9+\-]`)

type ExperienceRange struct {
	Min int
	Max int
}

// ParseExperienceRange understands "N-M", "N+" and "N", ignoring any other
// text such as "years". Anything else yields the permissive 0-10 default.
func ParseExperienceRange(expr string) ExperienceRange {
	s := nonRangeChars.ReplaceAllString(strings.ToLower(expr), "")

	switch {
	case strings.Contains(s, "-"):
		parts := strings.Split(s, "-")
		lo, err1 := strconv.Atoi(parts[0])
		hi, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			return defaultRange()
		}
		return ExperienceRange{Min: lo, Max: hi}
	case strings.Contains(s, "+"):
		lo, err := strconv.Atoi(strings.ReplaceAll(s, "+", ""))
		if err != nil {
			return defaultRange()
		}
		return ExperienceRange{Min: lo, Max: openEndedMaxYears}
	default:
		n, err := strconv.Atoi(s)
		if err != nil {
			return defaultRange()
		}
		return ExperienceRange{Min: n, Max: n + bareRangeSpan}
	}
}

func defaultRange() ExperienceRange {
	return ExperienceRange{Min: defaultMinYears, Max: defaultMaxYears}
}

// ExperienceScore ramps linearly to 70 below the range, is 100 inside it and
// loses 10 points per extra year above it, never dropping under 70.
func ExperienceScore(required string, years int) float64 {
	if years < 0 {
		years = 0
	}
	r := ParseExperienceRange(required)

	switch {
	case years < r.Min:
		return float64(years) * 70 / float64(r.Min)
	case years <= r.Max:
		return 100
	default:
		excess := years - r.Max
		return math.Max(70, float64(100-excess*10))
	}
}
