// Profiling:
// go build ./profile/query
// go tool pprof -http=":8000" -nodefraction=0.001 ./query mem.prof

package main

import (
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/edwinsyarief/meibo"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

type comp3 struct {
	V int64
	W int64
}

type comp4 struct {
	V int64
	W int64
}

func main() {
	// CPU Profiling
	f, _ := os.Create("cpu.prof")
	_ = pprof.StartCPUProfile(f)
	defer pprof.StopCPUProfile()

	count := 50
	iters := 10000
	entities := 100000
	run(count, iters, entities)

	// Memory Profiling
	memFile, _ := os.Create("mem.prof")
	defer memFile.Close()
	runtime.GC() // Trigger garbage collection
	_ = pprof.WriteHeapProfile(memFile)
}

func run(rounds, iters, numEntities int) {
	for i := 0; i < rounds; i++ {
		w := meibo.NewWorld(meibo.WithCapacity(numEntities))
		shape := meibo.NewShape4[comp1, comp2, comp3, comp4](w)
		view := meibo.NewView4[comp1, comp2, comp3, comp4](w)
		shape.SpawnN(numEntities)

		for j := 0; j < iters; j++ {
			view.Reset()
			for view.Next() {
				c1, c2, _, _ := view.Get()
				c1.V += c2.V
				c1.W += c2.W
			}
		}
	}
}
