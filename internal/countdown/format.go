package countdown

import (
	"fmt"
	"time"
)

// Format renders remaining time as M:SS. Minutes are unpadded, seconds are
// zero-padded, and the sub-second part is truncated.
func Format(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}

	ms := remaining.Milliseconds()
	minutes := ms / 1000 / 60
	seconds := ms / 1000 % 60

	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// Fraction returns remaining/total clamped to [0, 1].
func Fraction(remaining, total time.Duration) float64 {
	if total <= 0 || remaining <= 0 {
		return 0
	}
	if remaining >= total {
		return 1
	}
	return float64(remaining) / float64(total)
}
