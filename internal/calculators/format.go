package calculators

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// humanize turns a category label into display text: obese_class_1 -> obese class 1
func humanize(label string) string {
	return strings.ReplaceAll(label, "_", " ")
}

// formatClock renders seconds as h:mm:ss, or m:ss below one hour.
func formatClock(seconds float64) string {
	total := int(math.Round(seconds))
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// parseClock accepts ss, m:ss or h:mm:ss and returns the number of seconds.
func parseClock(s string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) == 0 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time: %q", s)
	}

	total := 0.0
	for i, p := range parts {
		n, err := strconv.ParseFloat(p, 64)
		if err != nil || !finite(n) || n < 0 {
			return 0, fmt.Errorf("invalid time: %q", s)
		}
		if i > 0 && n >= 60 {
			return 0, fmt.Errorf("invalid time: %q", s)
		}
		total = total*60 + n
	}
	return total, nil
}

func finite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}
