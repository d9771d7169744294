package component

import (
	"github.com/d5/tengo/v2"
	"github.com/jakecoffman/cp"
)

// Target marks an entity turrets can aim at.
type Target struct {
	Present bool
}

var TargetComponent = NewComponent[Target]()

// TargetScript drives a target's position from a tengo script. Compiled is
// built from Source on first run; clear it to pick up a new Source.
type TargetScript struct {
	Path     string
	Source   []byte
	Compiled *tengo.Compiled
	State    *tengo.Map
	// Err is the last script failure. A failing script stops running.
	Err error
}

var TargetScriptComponent = NewComponent[TargetScript]()

// TargetBody moves a target with a Chipmunk body on the XZ plane at a fixed
// height.
type TargetBody struct {
	Body   *cp.Body
	Shape  *cp.Shape
	Radius float64
	Height float64
}

var TargetBodyComponent = NewComponent[TargetBody]()
