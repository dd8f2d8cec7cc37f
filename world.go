package meibo

import (
	"encoding/binary"
	"sort"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Entity represents a unique entity in the database. IDs are 64-bit, handed
// out by an atomic counter, and never reused within a process lifetime, so a
// bare Entity value is always unambiguous and needs no generation tag.
type Entity struct {
	ID uint64
}

// World is the ensemble of the archetype store, the archetype index and the
// entity registry. All component data lives here, grouped by archetype and by
// component type so that iteration over any component subset is contiguous
// per type.
//
// Mutating operations (spawning, disposing, Set) are single-threaded: the
// caller must serialize them externally if the World is shared between
// goroutines. The only internally synchronized operation is entity ID
// allocation.
type World struct {
	id         uuid.UUID
	logger     *zap.Logger
	bus        *EventBus
	archetypes map[bitmask128]*archetype // the archetype store
	index      maskTrie                  // the archetype index
	entities   map[uint64]bitmask128     // the entity registry
	capacity   int
	nextID     atomic.Uint64
}

// Option configures a World at construction time.
type Option func(*World)

// WithCapacity sets the initial number of rows allocated per archetype
// column. Choosing a suitable capacity can prevent re-allocations during
// runtime.
func WithCapacity(n int) Option {
	return func(w *World) {
		if n > 0 {
			w.capacity = n
		}
	}
}

// WithLogger attaches a structured logger. The World logs lifecycle events
// (archetype creation, clears) at debug level. Without this option a no-op
// logger is used.
func WithLogger(l *zap.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithEventBus attaches an event bus. When present, the World publishes
// EntitySpawned, EntityDisposed and ArchetypeCreated events.
func WithEventBus(bus *EventBus) Option {
	return func(w *World) {
		w.bus = bus
	}
}

// NewWorld creates and initializes a new, empty World.
//
// Parameters:
//   - opts: Optional configuration (capacity, logger, event bus).
//
// Returns:
//   - A pointer to the newly created World.
func NewWorld(opts ...Option) *World {
	w := &World{
		id:         uuid.New(),
		logger:     zap.NewNop(),
		archetypes: make(map[bitmask128]*archetype, 16),
		entities:   make(map[uint64]bitmask128, defaultInitialCapacity),
		capacity:   defaultInitialCapacity,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger.Debug("world created",
		zap.String("world", w.id.String()),
		zap.Int("capacity", w.capacity))
	return w
}

// ID returns the world's unique identifier. It only serves as a stable key
// for logs and diagnostics.
func (w *World) ID() uuid.UUID {
	return w.id
}

// AllocateID reserves the next entity ID. This is the sole operation that is
// safe to call concurrently; the subsequent registration of the entity is
// not synchronized.
func (w *World) AllocateID() uint64 {
	return w.nextID.Add(1) - 1
}

// Alive reports whether the entity is currently registered in the world.
func (w *World) Alive(e Entity) bool {
	_, ok := w.entities[e.ID]
	return ok
}

// Mask returns the component mask the entity is registered under, as a slice
// of component IDs in ascending order. The second return value is false if
// the entity is not registered.
func (w *World) Mask(e Entity) ([]ComponentID, bool) {
	mask, ok := w.entities[e.ID]
	if !ok {
		return nil, false
	}
	ids := make([]ComponentID, 0, mask.count())
	mask.eachBit(func(id ComponentID) {
		ids = append(ids, id)
	})
	return ids, true
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	return len(w.entities)
}

// ArchetypeCount returns the number of archetype tables ever created.
// Tables persist even when they become empty.
func (w *World) ArchetypeCount() int {
	return len(w.archetypes)
}

// getOrCreateArchetype returns the archetype table for the given mask,
// creating it and indexing the mask in the trie if it does not exist yet.
// The set of store keys and the set of indexed masks stay identical at all
// times.
func (w *World) getOrCreateArchetype(mask bitmask128, specs []compSpec) *archetype {
	if a, ok := w.archetypes[mask]; ok {
		return a
	}
	a := newArchetype(mask, specs, w.capacity)
	w.archetypes[mask] = a
	w.index.insert(mask)
	w.logger.Debug("archetype created",
		zap.String("world", w.id.String()),
		zap.Uint64("archetype", maskFingerprint(mask)),
		zap.Int("components", len(specs)))
	if w.bus != nil {
		Publish(w.bus, ArchetypeCreated{World: w, Components: len(specs)})
	}
	return a
}

// register links a freshly spawned entity to its archetype. The caller has
// already added the row.
func (w *World) register(e Entity, mask bitmask128) {
	w.entities[e.ID] = mask
	if w.bus != nil {
		Publish(w.bus, EntitySpawned{World: w, Entity: e})
	}
}

// RemoveEntity erases the entity's row from every column of its archetype
// table and drops it from the entity registry. The table itself persists,
// even if it becomes empty. Removing a dead or unknown entity is a no-op.
//
// Handle.Dispose routes here; use it in preference to calling this directly
// so that every spawn is paired with exactly one release.
func (w *World) RemoveEntity(e Entity) {
	mask, ok := w.entities[e.ID]
	if !ok {
		return
	}
	a := w.archetypes[mask]
	a.dropRow(e.ID)
	delete(w.entities, e.ID)
	if w.bus != nil {
		Publish(w.bus, EntityDisposed{World: w, Entity: e})
	}
}

// Clear removes all entities from the world while keeping the archetype
// tables and their storage. This is an efficient way to reset the world
// state without deallocating memory. Entity IDs are not reused.
func (w *World) Clear() {
	for _, a := range w.archetypes {
		a.clearRows()
	}
	clear(w.entities)
	w.logger.Debug("world cleared", zap.String("world", w.id.String()))
}

// ArchetypeStats describes one archetype table.
type ArchetypeStats struct {
	// Fingerprint is a stable 64-bit hash of the archetype's component mask,
	// usable as a compact identity in logs and metrics.
	Fingerprint uint64
	// Components is the number of component types in the archetype.
	Components int
	// Rows is the number of live entities stored in the table.
	Rows int
}

// WorldStats is a diagnostic snapshot of a World.
type WorldStats struct {
	World      uuid.UUID
	Entities   int
	Archetypes []ArchetypeStats
}

// Stats returns a diagnostic snapshot: the live entity count and per-table
// row counts. Archetypes are ordered by fingerprint so the output is stable.
func (w *World) Stats() WorldStats {
	s := WorldStats{
		World:      w.id,
		Entities:   len(w.entities),
		Archetypes: make([]ArchetypeStats, 0, len(w.archetypes)),
	}
	for mask, a := range w.archetypes {
		s.Archetypes = append(s.Archetypes, ArchetypeStats{
			Fingerprint: maskFingerprint(mask),
			Components:  len(a.compOrder),
			Rows:        a.len(),
		})
	}
	sort.Slice(s.Archetypes, func(i, j int) bool {
		return s.Archetypes[i].Fingerprint < s.Archetypes[j].Fingerprint
	})
	return s
}

// maskFingerprint hashes a 128-bit mask down to a stable 64-bit value.
func maskFingerprint(mask bitmask128) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], mask[0])
	binary.LittleEndian.PutUint64(buf[8:16], mask[1])
	return xxhash.Sum64(buf[:])
}
