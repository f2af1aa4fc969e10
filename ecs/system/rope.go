package system

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/ropeclimb/ecs"
	"github.com/milk9111/ropeclimb/ecs/component"
	"github.com/milk9111/ropeclimb/ecs/entity"
	"github.com/milk9111/ropeclimb/prefabs"
)

// RopeSystem thinks every rope once per tick. It also services destroy and
// reload requests, and turns prefab edits into reload requests when a
// watcher is attached.
type RopeSystem struct {
	changes <-chan prefabs.Change
	log     *log.Logger
}

func NewRopeSystem(logger *log.Logger) *RopeSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &RopeSystem{log: logger}
}

// Watch feeds prefab edits into the system.
func (rs *RopeSystem) Watch(changes <-chan prefabs.Change) {
	if rs == nil {
		return
	}
	rs.changes = changes
}

func (rs *RopeSystem) Update(w *ecs.World) {
	if rs == nil || w == nil {
		return
	}

	rs.destroyPending(w)
	rs.drainChanges(w)
	rs.reloadRequested(w)

	dt := w.FrameTime()
	ecs.ForEach(w, component.RopeComponent.Kind(), func(_ ecs.Entity, rc *component.Rope) {
		if rc.Rope != nil {
			rc.Rope.Think(dt)
		}
	})
}

func (rs *RopeSystem) destroyPending(w *ecs.World) {
	ecs.ForEach(w, component.RopePendingDestroyComponent.Kind(), func(e ecs.Entity, _ *component.RopePendingDestroy) {
		if rc, ok := ecs.Get(w, e, component.RopeComponent.Kind()); ok && rc.Rope != nil {
			if occ, ok := rc.Rope.Occupant(); ok {
				if climber, ok := entity.OccupantEntity(occ); ok {
					w.Events().Push(ecs.Event{Type: ecs.EventRopeDetached, Data: ecs.RopeEvent{Rope: e, Climber: climber}})
				}
			}
			rc.Rope.Release()
		}
		ecs.DestroyEntity(w, e)
		rs.log.Debug("rope destroyed", "entity", e)
	})
}

func (rs *RopeSystem) drainChanges(w *ecs.World) {
	if rs.changes == nil {
		return
	}
	for {
		select {
		case change, ok := <-rs.changes:
			if !ok {
				rs.changes = nil
				return
			}
			rs.requestReload(w, change)
		default:
			return
		}
	}
}

// requestReload marks the ropes a change affects. Scripts are not tracked
// per rope, so a script edit reloads every rope.
func (rs *RopeSystem) requestReload(w *ecs.World, change prefabs.Change) {
	ecs.ForEach(w, component.RopeComponent.Kind(), func(e ecs.Entity, rc *component.Rope) {
		if !change.Script && prefabs.Base(rc.Prefab) != change.Name {
			return
		}
		_ = ecs.Add(w, e, component.RopeReloadRequestComponent.Kind(), &component.RopeReloadRequest{})
		rs.log.Info("prefab changed", "file", change.Name, "rope", e)
	})
}

func (rs *RopeSystem) reloadRequested(w *ecs.World) {
	ecs.ForEach(w, component.RopeReloadRequestComponent.Kind(), func(e ecs.Entity, _ *component.RopeReloadRequest) {
		ecs.Remove(w, e, component.RopeReloadRequestComponent.Kind())

		var climber ecs.Entity
		if rc, ok := ecs.Get(w, e, component.RopeComponent.Kind()); ok && rc.Rope != nil {
			if occ, ok := rc.Rope.Occupant(); ok {
				climber, _ = entity.OccupantEntity(occ)
			}
		}

		if err := entity.ReloadRope(w, e); err != nil {
			rs.log.Warn("rope reload failed; keeping old rope", "rope", e, "err", err)
			return
		}
		if climber.Valid() {
			w.Events().Push(ecs.Event{Type: ecs.EventRopeDetached, Data: ecs.RopeEvent{Rope: e, Climber: climber}})
		}
		w.Events().Push(ecs.Event{Type: ecs.EventRopeReloaded, Data: ecs.RopeEvent{Rope: e}})
		rs.log.Info("rope reloaded", "rope", e)
	})
}
