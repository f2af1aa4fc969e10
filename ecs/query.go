package ecs

import "github.com/milk9111/ropeclimb/ecs/component"

// snapshot copies the dense id list so callbacks may add or remove
// components while iterating.
func snapshot(ids []entityID) []entityID {
	return append([]entityID(nil), ids...)
}

// ForEach calls fn for every entity that has kind.
func ForEach[A any](w *World, ka component.ComponentKind[A], fn func(Entity, *A)) {
	sa := storeFor(w, ka, false)
	if sa == nil {
		return
	}
	for _, id := range snapshot(sa.dense) {
		a, ok := sa.get(id)
		if !ok {
			continue
		}
		fn(w.entityFor(id), a)
	}
}

// ForEach2 calls fn for every entity that has both kinds.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa := storeFor(w, ka, false)
	sb := storeFor(w, kb, false)
	if sa == nil || sb == nil {
		return
	}
	for _, id := range snapshot(sa.dense) {
		a, ok := sa.get(id)
		if !ok {
			continue
		}
		b, ok := sb.get(id)
		if !ok {
			continue
		}
		fn(w.entityFor(id), a, b)
	}
}

// ForEach3 calls fn for every entity that has all three kinds.
func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sa := storeFor(w, ka, false)
	sb := storeFor(w, kb, false)
	sc := storeFor(w, kc, false)
	if sa == nil || sb == nil || sc == nil {
		return
	}
	for _, id := range snapshot(sa.dense) {
		a, ok := sa.get(id)
		if !ok {
			continue
		}
		b, ok := sb.get(id)
		if !ok {
			continue
		}
		c, ok := sc.get(id)
		if !ok {
			continue
		}
		fn(w.entityFor(id), a, b, c)
	}
}

// First returns any entity carrying kind.
func First[A any](w *World, ka component.ComponentKind[A]) (Entity, bool) {
	sa := storeFor(w, ka, false)
	if sa == nil || len(sa.dense) == 0 {
		return 0, false
	}
	return w.entityFor(sa.dense[0]), true
}
