package turret

import "fmt"

// Config holds the mechanical limits of a turret. All angles are degrees and
// speeds are degrees per second.
type Config struct {
	ElevationSpeed float64
	// MaxElevation is the highest upward pitch of the barrels.
	MaxElevation float64
	// MaxDepression is the lowest downward pitch, as a positive number.
	MaxDepression float64

	TraverseSpeed float64
	// HasLimitedTraverse stops the base at LeftLimit/RightLimit instead of
	// letting it spin freely.
	HasLimitedTraverse bool
	LeftLimit          float64
	RightLimit         float64

	// AimedThreshold is the deviation under which the turret counts as aimed.
	AimedThreshold float64
}

func DefaultConfig() Config {
	return Config{
		ElevationSpeed: 30,
		MaxElevation:   60,
		MaxDepression:  5,
		TraverseSpeed:  60,
		LeftLimit:      120,
		RightLimit:     120,
		AimedThreshold: 5,
	}
}

// Validate lists values outside their intended ranges. The turret still runs
// with them.
func (c Config) Validate() []string {
	var warnings []string
	positive := func(name string, v float64) {
		if v <= 0 {
			warnings = append(warnings, fmt.Sprintf("%s should be positive, got %g", name, v))
		}
	}
	nonNegative := func(name string, v float64) {
		if v < 0 {
			warnings = append(warnings, fmt.Sprintf("%s should not be negative, got %g", name, v))
		}
	}
	limit := func(name string, v float64) {
		if v < 0 || v > 179 {
			warnings = append(warnings, fmt.Sprintf("%s should be within [0,179], got %g", name, v))
		}
	}

	positive("elevation_speed", c.ElevationSpeed)
	positive("traverse_speed", c.TraverseSpeed)
	nonNegative("max_elevation", c.MaxElevation)
	nonNegative("max_depression", c.MaxDepression)
	nonNegative("aimed_threshold", c.AimedThreshold)
	limit("left_limit", c.LeftLimit)
	limit("right_limit", c.RightLimit)
	return warnings
}
