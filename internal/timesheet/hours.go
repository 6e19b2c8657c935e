package timesheet

import (
	"fmt"
	"math"
	"strconv"
)

// ComputeHours returns the worked hours between two same-day clock times
// minus the break, rounded to two decimals (half to even). A break longer
// than the shift yields a negative result; that is accepted, not clamped.
func ComputeHours(start, end, breakMinutes string) (float64, error) {
	s, ok := clockMinutes(start)
	if !ok {
		return 0, fmt.Errorf("compute hours: bad start time %q", start)
	}
	e, ok := clockMinutes(end)
	if !ok {
		return 0, fmt.Errorf("compute hours: bad end time %q", end)
	}
	brk := 0.0
	if breakMinutes != "" {
		v, err := strconv.ParseFloat(breakMinutes, 64)
		if err != nil {
			return 0, fmt.Errorf("compute hours: bad break %q: %w", breakMinutes, err)
		}
		brk = v
	}
	hours := float64(e-s)/60.0 - brk/60.0
	return math.RoundToEven(hours*100) / 100, nil
}
