package component

// RockingMotion rolls and pitches a transform like a boat on a swell.
// Strength is degrees, Speed is radians per second. Without HasOffset the
// phase is derived from the entity name on first use.
type RockingMotion struct {
	Strength  float64
	Speed     float64
	Offset    float64
	HasOffset bool
}

var RockingMotionComponent = NewComponent[RockingMotion]()
