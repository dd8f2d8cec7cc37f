package meibo

import "unsafe"

// asPtr converts a raw cell pointer to a typed component pointer.
func asPtr[T any](p unsafe.Pointer) *T {
	return (*T)(p)
}

// Get retrieves a pointer to the component of type `T` for the given entity.
// It is the runtime-checked counterpart of Handle accessors, usable when the
// entity's shape is not statically known.
//
// If the entity is not registered, or `T` is not part of its shape, this
// function returns nil. The returned pointer is a borrow: it stays valid
// until the next structural mutation of the entity's archetype (a spawn or
// dispose in the same archetype may grow or compact the columns).
//
// Parameters:
//   - w: The World containing the entity.
//   - e: The Entity from which to retrieve the component.
//
// Returns:
//   - A pointer to the component data (*T), or nil if not found.
func Get[T any](w *World, e Entity) *T {
	id, ok := TryGetID[T]()
	if !ok {
		return nil
	}
	mask, ok := w.entities[e.ID]
	if !ok || !mask.containsBit(uint8(id)) {
		return nil
	}
	a := w.archetypes[mask]
	row, ok := a.rowOf(e.ID)
	if !ok {
		return nil
	}
	return asPtr[T](a.ptr(a.getSlot(id), row))
}

// Set overwrites the component of type `T` on the entity.
//
// An entity's component set is fixed at spawn time: if `T` is not part of the
// entity's shape, Set does nothing and returns false. It never moves the
// entity between archetypes.
//
// Parameters:
//   - w: The World containing the entity.
//   - e: The Entity to modify.
//   - val: The component value to write.
//
// Returns:
//   - true if the component was written, false otherwise.
func Set[T any](w *World, e Entity, val T) bool {
	id, ok := TryGetID[T]()
	if !ok {
		return false
	}
	mask, ok := w.entities[e.ID]
	if !ok || !mask.containsBit(uint8(id)) {
		return false
	}
	a := w.archetypes[mask]
	row, ok := a.rowOf(e.ID)
	if !ok {
		return false
	}
	*asPtr[T](a.ptr(a.getSlot(id), row)) = val
	return true
}

// Has reports whether the entity's registered component mask includes `T`.
// This is a runtime mask-and check against the entity registry.
func Has[T any](w *World, e Entity) bool {
	id, ok := TryGetID[T]()
	if !ok {
		return false
	}
	mask, ok := w.entities[e.ID]
	return ok && mask.containsBit(uint8(id))
}

// setCell writes a component value into a freshly added row, using the
// default when one was specified for the (shape, component) pair and the
// zero value otherwise.
func setCell[T any](a *archetype, slot, row int, def *T) {
	p := asPtr[T](a.ptr(slot, row))
	if def != nil {
		*p = *def
	} else {
		var zero T
		*p = zero
	}
}

// cellPtr fetches a typed pointer to the entity's cell, panicking if the
// entity is not stored in the archetype. Handles use this; a failed lookup
// means the handle outlived its entity, which is a logic bug in the caller.
func cellPtr[T any](a *archetype, slot int, eid uint64) *T {
	row, ok := a.rowOf(eid)
	if !ok {
		panic("meibo: entity not registered in its archetype")
	}
	return asPtr[T](a.ptr(slot, row))
}
