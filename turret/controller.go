package turret

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gunturrets/logger"
)

var ErrMissingAim = errors.New("turret: controller requires an aim")

// TargetSource reports where the current target is. ok is false when there
// is no target.
type TargetSource interface {
	TargetPosition() (mgl64.Vec3, bool)
}

// Controller feeds an Aim from a TargetSource: no target means idle.
type Controller struct {
	aim    *Aim
	source TargetSource
	err    error
}

func NewController(name string, aim *Aim, source TargetSource) *Controller {
	c := &Controller{aim: aim, source: source}
	if aim == nil {
		c.err = ErrMissingAim
		logger.L().Error("turret controller disabled", "name", name, "error", c.err)
	}
	return c
}

func (c *Controller) Err() error { return c.err }

func (c *Controller) Aim() *Aim { return c.aim }

// SetSource replaces the target source; nil means no target.
func (c *Controller) SetSource(source TargetSource) { c.source = source }

// Update polls the target once. toggle flips idle regardless of whether a
// target exists.
func (c *Controller) Update(toggle bool) {
	if c.aim == nil {
		return
	}

	pos, ok := c.position()
	if !ok {
		c.aim.SetIdle(true)
	} else {
		c.aim.SetAimPosition(pos)
	}

	if toggle {
		c.aim.SetIdle(!c.aim.IsIdle())
	}
}

func (c *Controller) position() (mgl64.Vec3, bool) {
	if c.source == nil {
		return mgl64.Vec3{}, false
	}
	return c.source.TargetPosition()
}

// FixedTarget is a TargetSource that never moves.
type FixedTarget mgl64.Vec3

func (f FixedTarget) TargetPosition() (mgl64.Vec3, bool) {
	return mgl64.Vec3(f), true
}
