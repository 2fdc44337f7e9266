// Package interval provides comparisons for half-open time ranges.
// A booking occupies [start, end): touching intervals do not overlap.
package interval

import "time"

// Overlaps reports whether [s1,e1) and [s2,e2) intersect.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// IsValid reports whether the range is non-empty, i.e. end is strictly
// after start.
func IsValid(start, end time.Time) bool {
	return end.After(start)
}
