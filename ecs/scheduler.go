package ecs

// System updates a world once per tick.
type System interface {
	Update(w *World)
}

// Scheduler runs systems in registration order.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update advances the world clock by dt seconds and runs every system.
// Events from the previous tick are dropped first, so after Update returns
// the queue holds exactly what this tick produced.
func (s *Scheduler) Update(w *World, dt float64) {
	if w == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	w.events.flush()
	w.tick++
	w.dt = dt
	w.elapsed += dt
	for _, system := range s.systems {
		system.Update(w)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
