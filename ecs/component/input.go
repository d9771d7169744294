package component

// Input stores the per-tick user actions. One entity holds it.
type Input struct {
	Toggle bool
	Copy   bool
}

var InputComponent = NewComponent[Input]()
