// Profiling:
// go build ./profile/entities
// go tool pprof -http=":8000" -nodefraction=0.001 ./entities mem.pprof

package main

import (
	"github.com/edwinsyarief/meibo"
	"github.com/pkg/profile"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

func main() {
	count := 50
	iters := 10000
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(count, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for i := 0; i < rounds; i++ {
		w := meibo.NewWorld(meibo.WithCapacity(numEntities))
		shape := meibo.NewShape2[comp1, comp2](w)
		view := meibo.NewView2[comp1, comp2](w)

		for j := 0; j < iters; j++ {
			handles := shape.SpawnN(numEntities)
			view.Reset()
			for view.Next() {
				c1, c2 := view.Get()
				c1.V += c2.V
				c1.W += c2.W
			}
			for _, h := range handles {
				h.Dispose()
			}
		}
	}
}
