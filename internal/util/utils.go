package util

import (
	"fmt"
	"time"
)

// Clamp restricts a value to be between min and max
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ClampInt restricts an integer value to be between min and max
func ClampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// FormatDuration renders a duration as a short human-readable string,
// e.g. "1m23.4s" or "12.8s".
func FormatDuration(d time.Duration) string {
	if d >= time.Minute {
		m := d / time.Minute
		s := float64(d%time.Minute) / float64(time.Second)
		return fmt.Sprintf("%dm%.1fs", m, s)
	}
	return fmt.Sprintf("%.1fs", float64(d)/float64(time.Second))
}
