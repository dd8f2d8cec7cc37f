package meibo

import "sort"

// A shape is the declared component set for a family of entities: the type
// parameter list of a Shape value IS the set. Entities spawned from the same
// shape land in the same archetype table, and their component set never
// changes afterwards.
//
// Shapes exist in arities 1 through 4 (Shape, Shape2, Shape3, Shape4),
// hand-expanded the same way the mask helpers are. Composing shapes out of
// fragments is done by listing the fragment's component types in the
// parameter list; the effective set is their union.

// specsFor resolves component IDs into sorted column specs. It panics if the
// same component type appears twice in a shape.
func specsFor(ids ...ComponentID) []compSpec {
	sorted := make([]ComponentID, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			panic("meibo: duplicate component types in shape")
		}
	}
	specs := make([]compSpec, len(sorted))
	for i, id := range sorted {
		specs[i] = specOf(id)
	}
	return specs
}

// Shape declares entities carrying the single component A.
type Shape[A any] struct {
	world *World
	arch  *archetype
	mask  bitmask128
	slotA int
	defA  *A
}

// NewShape registers the component type, derives the shape's mask and makes
// sure the matching archetype table exists.
//
// Parameters:
//   - w: The World entities of this shape will live in.
//
// Returns:
//   - A pointer to the newly created Shape.
func NewShape[A any](w *World) *Shape[A] {
	idA := RegisterComponent[A]()
	mask := makeMask([]ComponentID{idA})
	arch := w.getOrCreateArchetype(mask, specsFor(idA))
	return &Shape[A]{world: w, arch: arch, mask: mask, slotA: arch.getSlot(idA)}
}

// Default sets the value freshly spawned entities receive for A instead of
// the zero value. It returns the shape for chaining.
func (s *Shape[A]) Default(v A) *Shape[A] {
	s.defA = &v
	return s
}

// Spawn creates a new entity of this shape: it allocates an ID, inserts a row
// into the archetype table seeded with the shape's default (or zero) values,
// and records the entity in the registry.
//
// Returns:
//   - An owning Handle for the new entity.
func (s *Shape[A]) Spawn() Handle[A] {
	e := Entity{ID: s.world.AllocateID()}
	row := s.arch.addRow(e)
	setCell(s.arch, s.slotA, row, s.defA)
	s.world.register(e, s.mask)
	return Handle[A]{shape: s, ent: e}
}

// SpawnN creates count entities of this shape in one batch.
func (s *Shape[A]) SpawnN(count int) []Handle[A] {
	handles := make([]Handle[A], count)
	for i := range handles {
		handles[i] = s.Spawn()
	}
	return handles
}

// Handle is the owning handle for an entity of shape {A}. It is a small
// reference value: copies refer to the same entity, and exactly one Dispose
// call releases it. The entity ID is immutable.
//
// Accessors only exist for the shape's own component types, so access to a
// component outside the shape does not type-check at the handle level; the
// package-level Get/Set/Has functions are the runtime-checked alternative.
type Handle[A any] struct {
	shape *Shape[A]
	ent   Entity
}

// Entity returns the underlying entity.
func (h Handle[A]) Entity() Entity {
	return h.ent
}

// Alive reports whether the entity has not been disposed yet.
func (h Handle[A]) Alive() bool {
	return h.shape.world.Alive(h.ent)
}

// Get returns a copy of the entity's A component.
func (h Handle[A]) Get() A {
	return *cellPtr[A](h.shape.arch, h.shape.slotA, h.ent.ID)
}

// Set overwrites the entity's A component.
func (h Handle[A]) Set(v A) {
	*cellPtr[A](h.shape.arch, h.shape.slotA, h.ent.ID) = v
}

// Dispose erases the entity's row from every column of its archetype table
// and drops it from the entity registry. The table itself persists. Disposing
// an already-disposed handle is a no-op.
func (h Handle[A]) Dispose() {
	h.shape.world.RemoveEntity(h.ent)
}

// Shape2 declares entities carrying the components A and B.
type Shape2[A any, B any] struct {
	world *World
	arch  *archetype
	mask  bitmask128
	slotA int
	slotB int
	defA  *A
	defB  *B
}

// NewShape2 registers both component types, derives the shape's mask and
// makes sure the matching archetype table exists. It panics if A and B are
// the same type.
func NewShape2[A any, B any](w *World) *Shape2[A, B] {
	idA := RegisterComponent[A]()
	idB := RegisterComponent[B]()
	mask := makeMask([]ComponentID{idA, idB})
	arch := w.getOrCreateArchetype(mask, specsFor(idA, idB))
	return &Shape2[A, B]{
		world: w, arch: arch, mask: mask,
		slotA: arch.getSlot(idA), slotB: arch.getSlot(idB),
	}
}

// DefaultA sets the spawn-time default for A.
func (s *Shape2[A, B]) DefaultA(v A) *Shape2[A, B] {
	s.defA = &v
	return s
}

// DefaultB sets the spawn-time default for B.
func (s *Shape2[A, B]) DefaultB(v B) *Shape2[A, B] {
	s.defB = &v
	return s
}

// Spawn creates a new entity of this shape and returns its owning handle.
func (s *Shape2[A, B]) Spawn() Handle2[A, B] {
	e := Entity{ID: s.world.AllocateID()}
	row := s.arch.addRow(e)
	setCell(s.arch, s.slotA, row, s.defA)
	setCell(s.arch, s.slotB, row, s.defB)
	s.world.register(e, s.mask)
	return Handle2[A, B]{shape: s, ent: e}
}

// SpawnN creates count entities of this shape in one batch.
func (s *Shape2[A, B]) SpawnN(count int) []Handle2[A, B] {
	handles := make([]Handle2[A, B], count)
	for i := range handles {
		handles[i] = s.Spawn()
	}
	return handles
}

// Handle2 is the owning handle for an entity of shape {A, B}.
type Handle2[A any, B any] struct {
	shape *Shape2[A, B]
	ent   Entity
}

// Entity returns the underlying entity.
func (h Handle2[A, B]) Entity() Entity {
	return h.ent
}

// Alive reports whether the entity has not been disposed yet.
func (h Handle2[A, B]) Alive() bool {
	return h.shape.world.Alive(h.ent)
}

// Get returns copies of both components.
func (h Handle2[A, B]) Get() (A, B) {
	return *cellPtr[A](h.shape.arch, h.shape.slotA, h.ent.ID),
		*cellPtr[B](h.shape.arch, h.shape.slotB, h.ent.ID)
}

// GetA returns a copy of the entity's A component.
func (h Handle2[A, B]) GetA() A {
	return *cellPtr[A](h.shape.arch, h.shape.slotA, h.ent.ID)
}

// GetB returns a copy of the entity's B component.
func (h Handle2[A, B]) GetB() B {
	return *cellPtr[B](h.shape.arch, h.shape.slotB, h.ent.ID)
}

// SetA overwrites the entity's A component.
func (h Handle2[A, B]) SetA(v A) {
	*cellPtr[A](h.shape.arch, h.shape.slotA, h.ent.ID) = v
}

// SetB overwrites the entity's B component.
func (h Handle2[A, B]) SetB(v B) {
	*cellPtr[B](h.shape.arch, h.shape.slotB, h.ent.ID) = v
}

// Dispose releases the entity. Idempotent.
func (h Handle2[A, B]) Dispose() {
	h.shape.world.RemoveEntity(h.ent)
}

// Shape3 declares entities carrying the components A, B and C.
type Shape3[A any, B any, C any] struct {
	world *World
	arch  *archetype
	mask  bitmask128
	slotA int
	slotB int
	slotC int
	defA  *A
	defB  *B
	defC  *C
}

// NewShape3 registers the component types, derives the shape's mask and makes
// sure the matching archetype table exists. It panics on duplicate component
// types.
func NewShape3[A any, B any, C any](w *World) *Shape3[A, B, C] {
	idA := RegisterComponent[A]()
	idB := RegisterComponent[B]()
	idC := RegisterComponent[C]()
	mask := makeMask([]ComponentID{idA, idB, idC})
	arch := w.getOrCreateArchetype(mask, specsFor(idA, idB, idC))
	return &Shape3[A, B, C]{
		world: w, arch: arch, mask: mask,
		slotA: arch.getSlot(idA), slotB: arch.getSlot(idB), slotC: arch.getSlot(idC),
	}
}

// DefaultA sets the spawn-time default for A.
func (s *Shape3[A, B, C]) DefaultA(v A) *Shape3[A, B, C] {
	s.defA = &v
	return s
}

// DefaultB sets the spawn-time default for B.
func (s *Shape3[A, B, C]) DefaultB(v B) *Shape3[A, B, C] {
	s.defB = &v
	return s
}

// DefaultC sets the spawn-time default for C.
func (s *Shape3[A, B, C]) DefaultC(v C) *Shape3[A, B, C] {
	s.defC = &v
	return s
}

// Spawn creates a new entity of this shape and returns its owning handle.
func (s *Shape3[A, B, C]) Spawn() Handle3[A, B, C] {
	e := Entity{ID: s.world.AllocateID()}
	row := s.arch.addRow(e)
	setCell(s.arch, s.slotA, row, s.defA)
	setCell(s.arch, s.slotB, row, s.defB)
	setCell(s.arch, s.slotC, row, s.defC)
	s.world.register(e, s.mask)
	return Handle3[A, B, C]{shape: s, ent: e}
}

// SpawnN creates count entities of this shape in one batch.
func (s *Shape3[A, B, C]) SpawnN(count int) []Handle3[A, B, C] {
	handles := make([]Handle3[A, B, C], count)
	for i := range handles {
		handles[i] = s.Spawn()
	}
	return handles
}

// Handle3 is the owning handle for an entity of shape {A, B, C}.
type Handle3[A any, B any, C any] struct {
	shape *Shape3[A, B, C]
	ent   Entity
}

// Entity returns the underlying entity.
func (h Handle3[A, B, C]) Entity() Entity {
	return h.ent
}

// Alive reports whether the entity has not been disposed yet.
func (h Handle3[A, B, C]) Alive() bool {
	return h.shape.world.Alive(h.ent)
}

// Get returns copies of all three components.
func (h Handle3[A, B, C]) Get() (A, B, C) {
	return *cellPtr[A](h.shape.arch, h.shape.slotA, h.ent.ID),
		*cellPtr[B](h.shape.arch, h.shape.slotB, h.ent.ID),
		*cellPtr[C](h.shape.arch, h.shape.slotC, h.ent.ID)
}

// GetA returns a copy of the entity's A component.
func (h Handle3[A, B, C]) GetA() A {
	return *cellPtr[A](h.shape.arch, h.shape.slotA, h.ent.ID)
}

// GetB returns a copy of the entity's B component.
func (h Handle3[A, B, C]) GetB() B {
	return *cellPtr[B](h.shape.arch, h.shape.slotB, h.ent.ID)
}

// GetC returns a copy of the entity's C component.
func (h Handle3[A, B, C]) GetC() C {
	return *cellPtr[C](h.shape.arch, h.shape.slotC, h.ent.ID)
}

// SetA overwrites the entity's A component.
func (h Handle3[A, B, C]) SetA(v A) {
	*cellPtr[A](h.shape.arch, h.shape.slotA, h.ent.ID) = v
}

// SetB overwrites the entity's B component.
func (h Handle3[A, B, C]) SetB(v B) {
	*cellPtr[B](h.shape.arch, h.shape.slotB, h.ent.ID) = v
}

// SetC overwrites the entity's C component.
func (h Handle3[A, B, C]) SetC(v C) {
	*cellPtr[C](h.shape.arch, h.shape.slotC, h.ent.ID) = v
}

// Dispose releases the entity. Idempotent.
func (h Handle3[A, B, C]) Dispose() {
	h.shape.world.RemoveEntity(h.ent)
}

// Shape4 declares entities carrying the components A, B, C and D.
type Shape4[A any, B any, C any, D any] struct {
	world *World
	arch  *archetype
	mask  bitmask128
	slotA int
	slotB int
	slotC int
	slotD int
	defA  *A
	defB  *B
	defC  *C
	defD  *D
}

// NewShape4 registers the component types, derives the shape's mask and makes
// sure the matching archetype table exists. It panics on duplicate component
// types.
func NewShape4[A any, B any, C any, D any](w *World) *Shape4[A, B, C, D] {
	idA := RegisterComponent[A]()
	idB := RegisterComponent[B]()
	idC := RegisterComponent[C]()
	idD := RegisterComponent[D]()
	mask := makeMask([]ComponentID{idA, idB, idC, idD})
	arch := w.getOrCreateArchetype(mask, specsFor(idA, idB, idC, idD))
	return &Shape4[A, B, C, D]{
		world: w, arch: arch, mask: mask,
		slotA: arch.getSlot(idA), slotB: arch.getSlot(idB),
		slotC: arch.getSlot(idC), slotD: arch.getSlot(idD),
	}
}

// DefaultA sets the spawn-time default for A.
func (s *Shape4[A, B, C, D]) DefaultA(v A) *Shape4[A, B, C, D] {
	s.defA = &v
	return s
}

// DefaultB sets the spawn-time default for B.
func (s *Shape4[A, B, C, D]) DefaultB(v B) *Shape4[A, B, C, D] {
	s.defB = &v
	return s
}

// DefaultC sets the spawn-time default for C.
func (s *Shape4[A, B, C, D]) DefaultC(v C) *Shape4[A, B, C, D] {
	s.defC = &v
	return s
}

// DefaultD sets the spawn-time default for D.
func (s *Shape4[A, B, C, D]) DefaultD(v D) *Shape4[A, B, C, D] {
	s.defD = &v
	return s
}

// Spawn creates a new entity of this shape and returns its owning handle.
func (s *Shape4[A, B, C, D]) Spawn() Handle4[A, B, C, D] {
	e := Entity{ID: s.world.AllocateID()}
	row := s.arch.addRow(e)
	setCell(s.arch, s.slotA, row, s.defA)
	setCell(s.arch, s.slotB, row, s.defB)
	setCell(s.arch, s.slotC, row, s.defC)
	setCell(s.arch, s.slotD, row, s.defD)
	s.world.register(e, s.mask)
	return Handle4[A, B, C, D]{shape: s, ent: e}
}

// SpawnN creates count entities of this shape in one batch.
func (s *Shape4[A, B, C, D]) SpawnN(count int) []Handle4[A, B, C, D] {
	handles := make([]Handle4[A, B, C, D], count)
	for i := range handles {
		handles[i] = s.Spawn()
	}
	return handles
}

// Handle4 is the owning handle for an entity of shape {A, B, C, D}.
type Handle4[A any, B any, C any, D any] struct {
	shape *Shape4[A, B, C, D]
	ent   Entity
}

// Entity returns the underlying entity.
func (h Handle4[A, B, C, D]) Entity() Entity {
	return h.ent
}

// Alive reports whether the entity has not been disposed yet.
func (h Handle4[A, B, C, D]) Alive() bool {
	return h.shape.world.Alive(h.ent)
}

// Get returns copies of all four components.
func (h Handle4[A, B, C, D]) Get() (A, B, C, D) {
	return *cellPtr[A](h.shape.arch, h.shape.slotA, h.ent.ID),
		*cellPtr[B](h.shape.arch, h.shape.slotB, h.ent.ID),
		*cellPtr[C](h.shape.arch, h.shape.slotC, h.ent.ID),
		*cellPtr[D](h.shape.arch, h.shape.slotD, h.ent.ID)
}

// GetA returns a copy of the entity's A component.
func (h Handle4[A, B, C, D]) GetA() A {
	return *cellPtr[A](h.shape.arch, h.shape.slotA, h.ent.ID)
}

// GetB returns a copy of the entity's B component.
func (h Handle4[A, B, C, D]) GetB() B {
	return *cellPtr[B](h.shape.arch, h.shape.slotB, h.ent.ID)
}

// GetC returns a copy of the entity's C component.
func (h Handle4[A, B, C, D]) GetC() C {
	return *cellPtr[C](h.shape.arch, h.shape.slotC, h.ent.ID)
}

// GetD returns a copy of the entity's D component.
func (h Handle4[A, B, C, D]) GetD() D {
	return *cellPtr[D](h.shape.arch, h.shape.slotD, h.ent.ID)
}

// SetA overwrites the entity's A component.
func (h Handle4[A, B, C, D]) SetA(v A) {
	*cellPtr[A](h.shape.arch, h.shape.slotA, h.ent.ID) = v
}

// SetB overwrites the entity's B component.
func (h Handle4[A, B, C, D]) SetB(v B) {
	*cellPtr[B](h.shape.arch, h.shape.slotB, h.ent.ID) = v
}

// SetC overwrites the entity's C component.
func (h Handle4[A, B, C, D]) SetC(v C) {
	*cellPtr[C](h.shape.arch, h.shape.slotC, h.ent.ID) = v
}

// SetD overwrites the entity's D component.
func (h Handle4[A, B, C, D]) SetD(v D) {
	*cellPtr[D](h.shape.arch, h.shape.slotD, h.ent.ID) = v
}

// Dispose releases the entity. Idempotent.
func (h Handle4[A, B, C, D]) Dispose() {
	h.shape.world.RemoveEntity(h.ent)
}
