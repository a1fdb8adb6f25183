package genome

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatIntervals renders intervals as "start-end;start-end".
func FormatIntervals(ivs []Interval) string {
	parts := make([]string, len(ivs))
	for i, iv := range ivs {
		parts[i] = strconv.FormatInt(iv.Start, 10) + "-" + strconv.FormatInt(iv.End, 10)
	}
	return strings.Join(parts, ";")
}

// ParseIntervals parses the FormatIntervals form. Negative coordinates are
// accepted ("-5-4").
func ParseIntervals(s string) ([]Interval, error) {
	if s == "" || s == "-" {
		return nil, nil
	}

	var ivs []Interval
	for _, part := range strings.Split(s, ";") {
		if len(part) < 3 {
			return nil, fmt.Errorf("parse interval %q", part)
		}
		// The separator is the first '-' that is not a leading sign.
		sep := strings.Index(part[1:], "-") + 1
		if sep == 0 {
			return nil, fmt.Errorf("parse interval %q", part)
		}
		start, err := strconv.ParseInt(part[:sep], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse interval %q: %w", part, err)
		}
		end, err := strconv.ParseInt(part[sep+1:], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse interval %q: %w", part, err)
		}
		ivs = append(ivs, Interval{Start: start, End: end})
	}
	return ivs, nil
}
