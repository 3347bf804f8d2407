package timeutil

import "time"

// Overlaps reports whether the intervals [aStart, aEnd] and [bStart, bEnd]
// overlap. With inclusive=true, touching endpoints count as an overlap
// (conflict detection); with inclusive=false they do not.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time, inclusive bool) bool {
	if inclusive {
		return !aStart.After(bEnd) && !bStart.After(aEnd)
	}
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Contains reports whether [outerStart, outerEnd] fully contains
// [innerStart, innerEnd]. Boundaries may touch.
func Contains(outerStart, outerEnd, innerStart, innerEnd time.Time) bool {
	return !outerStart.After(innerStart) && !outerEnd.Before(innerEnd)
}

// IsNightMinute reports whether the local time of day falls in the
// night window [22:00, 24:00) or [00:00, 06:00).
func IsNightMinute(t time.Time) bool {
	h := t.Hour()
	return h >= 22 || h < 6
}

// NightHours classifies the interval [in, out) minute by minute and
// returns the number of hours falling in the night window.
func NightHours(in, out time.Time) float64 {
	nightMinutes := 0
	for cursor := in; cursor.Before(out); cursor = cursor.Add(time.Minute) {
		if IsNightMinute(cursor) {
			nightMinutes++
		}
	}
	return float64(nightMinutes) / 60
}

// RestMinutes returns the unpaid rest-break deduction for a total
// worked duration: 60 minutes for shifts of 8h or more, 30 minutes
// for shifts of 4h or more, otherwise 0.
func RestMinutes(total time.Duration) int {
	switch {
	case total >= 8*time.Hour:
		return 60
	case total >= 4*time.Hour:
		return 30
	default:
		return 0
	}
}
