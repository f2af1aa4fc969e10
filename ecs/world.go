package ecs

import "github.com/milk9111/ropeclimb/ecs/component"

// World owns entities, their component stores and the per-tick clock.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store
	events   EventQueue

	frameTime float64
	curTime   float64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]store)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e and retires the handle. It
// reports false if e was not alive.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is still valid.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.live()
}

// Advance moves the world clock forward. Systems read the step through
// FrameTime.
func (w *World) Advance(dt float64) {
	if w == nil {
		return
	}
	w.frameTime = dt
	w.curTime += dt
}

// FrameTime is the real time elapsed since the previous tick.
func (w *World) FrameTime() float64 {
	if w == nil {
		return 0
	}
	return w.frameTime
}

// CurTime is the total time advanced so far.
func (w *World) CurTime() float64 {
	if w == nil {
		return 0
	}
	return w.curTime
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) entityFor(id entityID) Entity {
	return makeEntity(id, w.entities.gen[id-1])
}
