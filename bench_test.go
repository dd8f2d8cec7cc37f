package meibo_test

import (
	"testing"

	"github.com/edwinsyarief/meibo"
)

type benchPos struct{ X, Y, Z float64 }
type benchVel struct{ X, Y, Z float64 }

// go test -bench . -benchmem -run ^$
func BenchmarkSpawnDispose(b *testing.B) {
	meibo.ResetGlobalRegistry()
	w := meibo.NewWorld(meibo.WithCapacity(b.N + 1))
	shape := meibo.NewShape2[benchPos, benchVel](w)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h := shape.Spawn()
		h.Dispose()
	}
}

func BenchmarkSpawnN(b *testing.B) {
	meibo.ResetGlobalRegistry()
	w := meibo.NewWorld(meibo.WithCapacity(1024))
	shape := meibo.NewShape2[benchPos, benchVel](w)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handles := shape.SpawnN(1024)
		b.StopTimer()
		for _, h := range handles {
			h.Dispose()
		}
		b.StartTimer()
	}
}

func BenchmarkViewIterate(b *testing.B) {
	meibo.ResetGlobalRegistry()
	const numEntities = 100000
	w := meibo.NewWorld(meibo.WithCapacity(numEntities))
	shape := meibo.NewShape2[benchPos, benchVel](w)
	shape.SpawnN(numEntities)
	view := meibo.NewView2[benchPos, benchVel](w)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		view.Reset()
		for view.Next() {
			p, v := view.Get()
			p.X += v.X
			p.Y += v.Y
			p.Z += v.Z
		}
	}
}

func BenchmarkViewIterateFragmented(b *testing.B) {
	meibo.ResetGlobalRegistry()
	const perArchetype = 10000
	w := meibo.NewWorld(meibo.WithCapacity(perArchetype))
	meibo.NewShape2[benchPos, benchVel](w).SpawnN(perArchetype)
	meibo.NewShape3[benchPos, benchVel, Health](w).SpawnN(perArchetype)
	meibo.NewShape4[benchPos, benchVel, Health, Tag](w).SpawnN(perArchetype)
	view := meibo.NewView2[benchPos, benchVel](w)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		view.Reset()
		for view.Next() {
			p, v := view.Get()
			p.X += v.X
		}
	}
}

func BenchmarkDynamicGet(b *testing.B) {
	meibo.ResetGlobalRegistry()
	w := meibo.NewWorld()
	shape := meibo.NewShape2[benchPos, benchVel](w)
	e := shape.Spawn().Entity()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := meibo.Get[benchPos](w, e)
		p.X++
	}
}

func BenchmarkSupersetQuery(b *testing.B) {
	meibo.ResetGlobalRegistry()
	w := meibo.NewWorld()
	// A spread of archetypes so the index walk has something to prune.
	meibo.NewShape[benchPos](w).Spawn()
	meibo.NewShape2[benchPos, benchVel](w).Spawn()
	meibo.NewShape3[benchPos, benchVel, Health](w).Spawn()
	meibo.NewShape2[Health, Tag](w).Spawn()
	meibo.NewShape[Velocity](w).Spawn()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		view := meibo.NewView2[benchPos, benchVel](w)
		for view.Next() {
		}
	}
}
