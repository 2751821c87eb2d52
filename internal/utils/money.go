package utils

import "math"

// Round2 rounds a monetary or duration value half-up to two decimal places.
// Stock prices and session durations are both stored as DECIMAL(x,2), so all
// derived values pass through here before being persisted.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
