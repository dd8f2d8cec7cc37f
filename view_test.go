package meibo_test

import (
	"testing"

	"github.com/edwinsyarief/meibo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewCountsAcrossArchetypes(t *testing.T) {
	w := setupWorld(t)
	shapeA := meibo.NewShape[Position](w)
	shapeB := meibo.NewShape2[Position, Velocity](w)

	shapeA.SpawnN(2)
	bs := shapeB.SpawnN(3)

	countPos := func() int {
		n := 0
		view := meibo.NewView[Position](w)
		for view.Next() {
			n++
		}
		return n
	}
	countPosVel := func() int {
		n := 0
		view := meibo.NewView2[Position, Velocity](w)
		for view.Next() {
			n++
		}
		return n
	}

	// {Position} matches both archetypes, {Position, Velocity} only one.
	assert.Equal(t, 5, countPos())
	assert.Equal(t, 3, countPosVel())

	bs[0].Dispose()

	assert.Equal(t, 4, countPos())
	assert.Equal(t, 2, countPosVel())
}

func TestViewYieldsEachEntityOnce(t *testing.T) {
	w := setupWorld(t)
	shapeA := meibo.NewShape[Position](w)
	shapeB := meibo.NewShape2[Position, Velocity](w)
	shapeC := meibo.NewShape3[Position, Velocity, Health](w)

	expected := make(map[uint64]bool)
	for _, h := range shapeA.SpawnN(4) {
		expected[h.Entity().ID] = true
	}
	for _, h := range shapeB.SpawnN(3) {
		expected[h.Entity().ID] = true
	}
	for _, h := range shapeC.SpawnN(2) {
		expected[h.Entity().ID] = true
	}

	seen := make(map[uint64]int)
	view := meibo.NewView[Position](w)
	for view.Next() {
		seen[view.Entity().ID]++
	}

	require.Len(t, seen, len(expected))
	for id, n := range seen {
		assert.True(t, expected[id])
		assert.Equal(t, 1, n, "entity %d yielded more than once", id)
	}
}

func TestViewGetWritesThrough(t *testing.T) {
	w := setupWorld(t)
	shape := meibo.NewShape2[Position, Velocity](w)
	handles := shape.SpawnN(3)
	for _, h := range handles {
		h.SetB(Velocity{VX: 1, VY: 2, VZ: 0})
	}

	view := meibo.NewView2[Position, Velocity](w)
	for view.Next() {
		p, v := view.Get()
		p.X += v.VX
		p.Y += v.VY
	}

	for _, h := range handles {
		assert.Equal(t, Position{X: 1, Y: 2}, h.GetA())
	}
}

func TestViewLockstepColumns(t *testing.T) {
	w := setupWorld(t)
	shape := meibo.NewShape3[Position, Velocity, Health](w)
	for i, h := range shape.SpawnN(6) {
		h.SetC(Health{Current: i, Max: 100})
	}

	// Iterating different column subsets of the same archetype must produce
	// the same entity-id sequence.
	var orderA, orderB []uint64
	va := meibo.NewView[Position](w)
	for va.Next() {
		orderA = append(orderA, va.Entity().ID)
	}
	vb := meibo.NewView2[Velocity, Health](w)
	for vb.Next() {
		orderB = append(orderB, vb.Entity().ID)
		_, hp := vb.Get()
		assert.Equal(t, int(vb.Entity().ID), hp.Current)
	}
	assert.Equal(t, orderA, orderB)
}

func TestViewSkipsNonMatchingArchetypes(t *testing.T) {
	w := setupWorld(t)
	meibo.NewShape[Position](w).SpawnN(5)
	meibo.NewShape[Health](w).SpawnN(4)
	vels := meibo.NewShape2[Velocity, Health](w).SpawnN(3)

	view := meibo.NewView[Velocity](w)
	n := 0
	for view.Next() {
		assert.True(t, meibo.Has[Velocity](w, view.Entity()))
		n++
	}
	assert.Equal(t, len(vels), n)
}

func TestViewResetPicksUpNewArchetypes(t *testing.T) {
	w := setupWorld(t)
	meibo.NewShape[Position](w).SpawnN(2)

	view := meibo.NewView[Position](w)
	n := 0
	for view.Next() {
		n++
	}
	assert.Equal(t, 2, n)

	// A new archetype containing Position appears after the view was built.
	meibo.NewShape2[Position, Velocity](w).SpawnN(3)

	view.Reset()
	n = 0
	for view.Next() {
		n++
	}
	assert.Equal(t, 5, n)
}

func TestViewDeterministicOrder(t *testing.T) {
	w := setupWorld(t)
	meibo.NewShape[Position](w).SpawnN(3)
	meibo.NewShape2[Position, Velocity](w).SpawnN(3)
	meibo.NewShape3[Position, Velocity, Health](w).SpawnN(3)

	collect := func() []uint64 {
		var order []uint64
		view := meibo.NewView[Position](w)
		for view.Next() {
			order = append(order, view.Entity().ID)
		}
		return order
	}

	// Two passes over an unchanged world yield the identical sequence.
	assert.Equal(t, collect(), collect())
}

func TestViewOverEmptyWorld(t *testing.T) {
	w := setupWorld(t)
	view := meibo.NewView[Position](w)
	assert.False(t, view.Next())
	assert.False(t, view.Next())
}

func TestEntityViewVisitsAllEntities(t *testing.T) {
	w := setupWorld(t)
	meibo.NewShape[Position](w).SpawnN(2)
	meibo.NewShape[Health](w).SpawnN(3)
	meibo.NewShape2[Velocity, Health](w).SpawnN(4)

	// The empty query matches every archetype.
	seen := make(map[uint64]int)
	view := meibo.NewEntityView(w)
	for view.Next() {
		seen[view.Entity().ID]++
	}

	require.Len(t, seen, 9)
	for id, n := range seen {
		assert.Equal(t, 1, n, "entity %d yielded more than once", id)
	}
}

func TestViewEqual(t *testing.T) {
	w := setupWorld(t)
	meibo.NewShape[Position](w).SpawnN(2)

	v1 := meibo.NewView[Position](w)
	v2 := meibo.NewView[Position](w)

	v1.Next()
	v2.Next()
	assert.True(t, v1.Equal(v2))

	v1.Next()
	assert.False(t, v1.Equal(v2))

	// Exhausted views compare equal regardless of how they got there.
	for v1.Next() {
	}
	for v2.Next() {
	}
	assert.True(t, v1.Equal(v2))
}

func TestView3AndView4(t *testing.T) {
	w := setupWorld(t)
	type Armor struct{ Rating int }

	shape := meibo.NewShape4[Position, Velocity, Health, Armor](w)
	shape.SpawnN(3)
	meibo.NewShape3[Position, Velocity, Health](w).SpawnN(2)

	v3 := meibo.NewView3[Position, Velocity, Health](w)
	n3 := 0
	for v3.Next() {
		p, v, hp := v3.Get()
		require.NotNil(t, p)
		require.NotNil(t, v)
		require.NotNil(t, hp)
		n3++
	}
	assert.Equal(t, 5, n3)

	v4 := meibo.NewView4[Position, Velocity, Health, Armor](w)
	n4 := 0
	for v4.Next() {
		_, _, _, ar := v4.Get()
		require.NotNil(t, ar)
		n4++
	}
	assert.Equal(t, 3, n4)
}
