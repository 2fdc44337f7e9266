package interval

import (
	"testing"
	"time"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	at := func(minutes int) time.Time { return base.Add(time.Duration(minutes) * time.Minute) }

	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"identical intervals", at(0), at(60), at(0), at(60), true},
		{"partial overlap at end", at(0), at(60), at(30), at(90), true},
		{"partial overlap at start", at(30), at(90), at(0), at(60), true},
		{"fully contained", at(0), at(120), at(30), at(60), true},
		{"fully containing", at(30), at(60), at(0), at(120), true},
		{"touching, first ends as second starts", at(0), at(60), at(60), at(120), false},
		{"touching, second ends as first starts", at(60), at(120), at(0), at(60), false},
		{"disjoint with gap", at(0), at(30), at(60), at(90), false},
		{"one minute of overlap", at(0), at(61), at(60), at(120), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.s1, tt.e1, tt.s2, tt.e2); got != tt.want {
				t.Errorf("Overlaps(%v, %v, %v, %v) = %v, want %v", tt.s1, tt.e1, tt.s2, tt.e2, got, tt.want)
			}
			// Overlap is symmetric.
			if got := Overlaps(tt.s2, tt.e2, tt.s1, tt.e1); got != tt.want {
				t.Errorf("Overlaps is not symmetric for %s", tt.name)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	if !IsValid(base, base.Add(time.Minute)) {
		t.Error("expected interval with positive duration to be valid")
	}
	if IsValid(base, base) {
		t.Error("expected zero-length interval to be invalid")
	}
	if IsValid(base, base.Add(-time.Minute)) {
		t.Error("expected reversed interval to be invalid")
	}
}
