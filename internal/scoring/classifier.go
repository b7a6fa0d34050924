package scoring

import "math"

// Band is one severity band: lower bound inclusive, upper bound exclusive.
type Band struct {
	Lower float64
	Upper float64
	Label string
}

// Bands are contiguous and exhaustive over [0, +inf): exactly one band
// matches any non-negative score.
var Bands = []Band{
	{0, 1.5, "Low concern"},
	{1.5, 3.0, "Mild concern"},
	{3.0, 4.5, "Moderate concern"},
	{4.5, 6.0, "High concern"},
	{6.0, math.Inf(1), "Severe concern"},
}

// Classify maps a score to its severity label. Negative scores fall back to
// the lowest band; given the band table this branch is unreachable for any
// score the scorer can produce.
func Classify(score float64) string {
	for _, b := range Bands {
		if b.Lower <= score && score < b.Upper {
			return b.Label
		}
	}
	return Bands[0].Label
}

// Meter hex colors for the three UI severity ranges.
const (
	MeterColorLow    = "#3498db"
	MeterColorMedium = "#f39c12"
	MeterColorHigh   = "#e74c3c"
)

// MeterPercent converts a score to a 0-100 meter fill.
func MeterPercent(score float64) float64 {
	p := score * 10
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// MeterColor returns the meter color for a score's percentage range.
func MeterColor(score float64) string {
	p := score * 10
	switch {
	case p < 30:
		return MeterColorLow
	case p < 60:
		return MeterColorMedium
	default:
		return MeterColorHigh
	}
}
