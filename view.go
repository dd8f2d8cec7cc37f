package meibo

import "unsafe"

// View provides a lazy, forward-only iterator over every entity whose
// component set is a superset of the queried set. It fuses the archetype
// index's superset walk with per-archetype column iteration: the trie prunes
// archetypes that lack a required component without inspecting them, and
// within a matching archetype the requested columns are walked in lockstep,
// one contiguous run per component type.
//
// This is the view for a single component. Views for multiple components
// (View2, View3, View4) follow the same pattern.
//
// A view reads shared world state: do not mutate the world between Next
// calls. Pointers returned by Get are valid until the next structural
// mutation of the yielded archetype.
type View[A any] struct {
	world    *World
	cur      *archetype
	baseA    unsafe.Pointer
	include  bitmask128
	archIter supersetIter
	curIdx   int
	curSize  int
	strideA  uintptr
	idA      ComponentID
	done     bool
}

// NewView creates a new View over all entities possessing at least the
// component of type `A`, registering the component type if needed.
//
// Parameters:
//   - w: The World to query.
//
// Returns:
//   - A pointer to the newly created View, positioned before the first row.
func NewView[A any](w *World) *View[A] {
	idA := RegisterComponent[A]()
	v := &View[A]{
		world:   w,
		include: makeMask([]ComponentID{idA}),
		idA:     idA,
	}
	v.Reset()
	return v
}

// Reset rewinds the view to the beginning. Archetypes created since the view
// was constructed are picked up, since the walk restarts from the index.
func (v *View[A]) Reset() {
	v.archIter = v.world.index.supersetsOf(v.include)
	v.cur = nil
	v.curIdx = -1
	v.curSize = 0
	v.done = false
}

// Next advances the view to the next matching entity. It returns true if an
// entity was found, and false if the iteration is complete. This method must
// be called before accessing the entity or its components.
//
// Example:
//
//	view := meibo.NewView[Position](world)
//	for view.Next() {
//	    // ... process view.Entity(), view.Get()
//	}
//
// Returns:
//   - true if another matching entity was found, false otherwise.
func (v *View[A]) Next() bool {
	v.curIdx++
	if v.curIdx < v.curSize {
		return true
	}
	for v.archIter.next() {
		a := v.world.archetypes[v.archIter.mask()]
		if a.len() == 0 {
			continue
		}
		v.cur = a
		colA := &a.columns[a.getSlot(v.idA)]
		v.baseA = colA.base
		v.strideA = colA.size
		v.curSize = a.len()
		v.curIdx = 0
		return true
	}
	v.done = true
	return false
}

// Entity returns the current entity. Only valid after Next returned true.
func (v *View[A]) Entity() Entity {
	return v.cur.entities[v.curIdx]
}

// Get returns a pointer to the A component of the current entity. Only valid
// after Next returned true.
func (v *View[A]) Get() *A {
	return asPtr[A](unsafe.Add(v.baseA, uintptr(v.curIdx)*v.strideA))
}

// Equal reports whether two views denote the same position: either both are
// finished, or every cursor field agrees.
func (v *View[A]) Equal(o *View[A]) bool {
	if v.done && o.done {
		return true
	}
	return v.world == o.world && v.include == o.include &&
		v.done == o.done && v.cur == o.cur && v.curIdx == o.curIdx
}

// View2 iterates entities having at least the components A and B.
type View2[A any, B any] struct {
	world    *World
	cur      *archetype
	baseA    unsafe.Pointer
	baseB    unsafe.Pointer
	include  bitmask128
	archIter supersetIter
	curIdx   int
	curSize  int
	strideA  uintptr
	strideB  uintptr
	idA      ComponentID
	idB      ComponentID
	done     bool
}

// NewView2 creates a new View2 over all entities possessing at least the
// components A and B. It panics if A and B are the same type.
func NewView2[A any, B any](w *World) *View2[A, B] {
	idA := RegisterComponent[A]()
	idB := RegisterComponent[B]()
	if idA == idB {
		panic("meibo: duplicate component types in View2")
	}
	v := &View2[A, B]{
		world:   w,
		include: makeMask([]ComponentID{idA, idB}),
		idA:     idA,
		idB:     idB,
	}
	v.Reset()
	return v
}

// Reset rewinds the view to the beginning.
func (v *View2[A, B]) Reset() {
	v.archIter = v.world.index.supersetsOf(v.include)
	v.cur = nil
	v.curIdx = -1
	v.curSize = 0
	v.done = false
}

// Next advances the view to the next matching entity.
func (v *View2[A, B]) Next() bool {
	v.curIdx++
	if v.curIdx < v.curSize {
		return true
	}
	for v.archIter.next() {
		a := v.world.archetypes[v.archIter.mask()]
		if a.len() == 0 {
			continue
		}
		v.cur = a
		colA := &a.columns[a.getSlot(v.idA)]
		colB := &a.columns[a.getSlot(v.idB)]
		v.baseA, v.strideA = colA.base, colA.size
		v.baseB, v.strideB = colB.base, colB.size
		v.curSize = a.len()
		v.curIdx = 0
		return true
	}
	v.done = true
	return false
}

// Entity returns the current entity. Only valid after Next returned true.
func (v *View2[A, B]) Entity() Entity {
	return v.cur.entities[v.curIdx]
}

// Get returns pointers to the A and B components of the current entity. The
// shared row order of the archetype's columns guarantees both pointers refer
// to the same entity.
func (v *View2[A, B]) Get() (*A, *B) {
	return asPtr[A](unsafe.Add(v.baseA, uintptr(v.curIdx)*v.strideA)),
		asPtr[B](unsafe.Add(v.baseB, uintptr(v.curIdx)*v.strideB))
}

// Equal reports whether two views denote the same position.
func (v *View2[A, B]) Equal(o *View2[A, B]) bool {
	if v.done && o.done {
		return true
	}
	return v.world == o.world && v.include == o.include &&
		v.done == o.done && v.cur == o.cur && v.curIdx == o.curIdx
}

// View3 iterates entities having at least the components A, B and C.
type View3[A any, B any, C any] struct {
	world    *World
	cur      *archetype
	bases    [3]unsafe.Pointer
	include  bitmask128
	archIter supersetIter
	curIdx   int
	curSize  int
	strides  [3]uintptr
	ids      [3]ComponentID
	done     bool
}

// NewView3 creates a new View3 over all entities possessing at least the
// components A, B and C. It panics on duplicate component types.
func NewView3[A any, B any, C any](w *World) *View3[A, B, C] {
	idA := RegisterComponent[A]()
	idB := RegisterComponent[B]()
	idC := RegisterComponent[C]()
	if idA == idB || idA == idC || idB == idC {
		panic("meibo: duplicate component types in View3")
	}
	v := &View3[A, B, C]{
		world:   w,
		include: makeMask([]ComponentID{idA, idB, idC}),
		ids:     [3]ComponentID{idA, idB, idC},
	}
	v.Reset()
	return v
}

// Reset rewinds the view to the beginning.
func (v *View3[A, B, C]) Reset() {
	v.archIter = v.world.index.supersetsOf(v.include)
	v.cur = nil
	v.curIdx = -1
	v.curSize = 0
	v.done = false
}

// Next advances the view to the next matching entity.
func (v *View3[A, B, C]) Next() bool {
	v.curIdx++
	if v.curIdx < v.curSize {
		return true
	}
	for v.archIter.next() {
		a := v.world.archetypes[v.archIter.mask()]
		if a.len() == 0 {
			continue
		}
		v.cur = a
		for i, id := range v.ids {
			col := &a.columns[a.getSlot(id)]
			v.bases[i], v.strides[i] = col.base, col.size
		}
		v.curSize = a.len()
		v.curIdx = 0
		return true
	}
	v.done = true
	return false
}

// Entity returns the current entity. Only valid after Next returned true.
func (v *View3[A, B, C]) Entity() Entity {
	return v.cur.entities[v.curIdx]
}

// Get returns pointers to the A, B and C components of the current entity.
func (v *View3[A, B, C]) Get() (*A, *B, *C) {
	return asPtr[A](unsafe.Add(v.bases[0], uintptr(v.curIdx)*v.strides[0])),
		asPtr[B](unsafe.Add(v.bases[1], uintptr(v.curIdx)*v.strides[1])),
		asPtr[C](unsafe.Add(v.bases[2], uintptr(v.curIdx)*v.strides[2]))
}

// Equal reports whether two views denote the same position.
func (v *View3[A, B, C]) Equal(o *View3[A, B, C]) bool {
	if v.done && o.done {
		return true
	}
	return v.world == o.world && v.include == o.include &&
		v.done == o.done && v.cur == o.cur && v.curIdx == o.curIdx
}

// View4 iterates entities having at least the components A, B, C and D.
type View4[A any, B any, C any, D any] struct {
	world    *World
	cur      *archetype
	bases    [4]unsafe.Pointer
	include  bitmask128
	archIter supersetIter
	curIdx   int
	curSize  int
	strides  [4]uintptr
	ids      [4]ComponentID
	done     bool
}

// NewView4 creates a new View4 over all entities possessing at least the
// components A, B, C and D. It panics on duplicate component types.
func NewView4[A any, B any, C any, D any](w *World) *View4[A, B, C, D] {
	idA := RegisterComponent[A]()
	idB := RegisterComponent[B]()
	idC := RegisterComponent[C]()
	idD := RegisterComponent[D]()
	ids := [4]ComponentID{idA, idB, idC, idD}
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if ids[i] == ids[j] {
				panic("meibo: duplicate component types in View4")
			}
		}
	}
	v := &View4[A, B, C, D]{
		world:   w,
		include: makeMask(ids[:]),
		ids:     ids,
	}
	v.Reset()
	return v
}

// Reset rewinds the view to the beginning.
func (v *View4[A, B, C, D]) Reset() {
	v.archIter = v.world.index.supersetsOf(v.include)
	v.cur = nil
	v.curIdx = -1
	v.curSize = 0
	v.done = false
}

// Next advances the view to the next matching entity.
func (v *View4[A, B, C, D]) Next() bool {
	v.curIdx++
	if v.curIdx < v.curSize {
		return true
	}
	for v.archIter.next() {
		a := v.world.archetypes[v.archIter.mask()]
		if a.len() == 0 {
			continue
		}
		v.cur = a
		for i, id := range v.ids {
			col := &a.columns[a.getSlot(id)]
			v.bases[i], v.strides[i] = col.base, col.size
		}
		v.curSize = a.len()
		v.curIdx = 0
		return true
	}
	v.done = true
	return false
}

// Entity returns the current entity. Only valid after Next returned true.
func (v *View4[A, B, C, D]) Entity() Entity {
	return v.cur.entities[v.curIdx]
}

// Get returns pointers to the A, B, C and D components of the current entity.
func (v *View4[A, B, C, D]) Get() (*A, *B, *C, *D) {
	return asPtr[A](unsafe.Add(v.bases[0], uintptr(v.curIdx)*v.strides[0])),
		asPtr[B](unsafe.Add(v.bases[1], uintptr(v.curIdx)*v.strides[1])),
		asPtr[C](unsafe.Add(v.bases[2], uintptr(v.curIdx)*v.strides[2])),
		asPtr[D](unsafe.Add(v.bases[3], uintptr(v.curIdx)*v.strides[3]))
}

// Equal reports whether two views denote the same position.
func (v *View4[A, B, C, D]) Equal(o *View4[A, B, C, D]) bool {
	if v.done && o.done {
		return true
	}
	return v.world == o.world && v.include == o.include &&
		v.done == o.done && v.cur == o.cur && v.curIdx == o.curIdx
}

// EntityView is the view over the empty component set. Every archetype is a
// superset of the empty set, so it visits every live entity exactly once,
// grouped by archetype.
type EntityView struct {
	world    *World
	cur      *archetype
	archIter supersetIter
	curIdx   int
	curSize  int
	done     bool
}

// NewEntityView creates a view over all live entities in the world.
func NewEntityView(w *World) *EntityView {
	v := &EntityView{world: w}
	v.Reset()
	return v
}

// Reset rewinds the view to the beginning.
func (v *EntityView) Reset() {
	v.archIter = v.world.index.supersetsOf(bitmask128{})
	v.cur = nil
	v.curIdx = -1
	v.curSize = 0
	v.done = false
}

// Next advances the view to the next live entity.
func (v *EntityView) Next() bool {
	v.curIdx++
	if v.curIdx < v.curSize {
		return true
	}
	for v.archIter.next() {
		a := v.world.archetypes[v.archIter.mask()]
		if a.len() == 0 {
			continue
		}
		v.cur = a
		v.curSize = a.len()
		v.curIdx = 0
		return true
	}
	v.done = true
	return false
}

// Entity returns the current entity. Only valid after Next returned true.
func (v *EntityView) Entity() Entity {
	return v.cur.entities[v.curIdx]
}

// Equal reports whether two views denote the same position.
func (v *EntityView) Equal(o *EntityView) bool {
	if v.done && o.done {
		return true
	}
	return v.world == o.world && v.done == o.done &&
		v.cur == o.cur && v.curIdx == o.curIdx
}
