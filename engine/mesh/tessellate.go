package mesh

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/go-gl/mathgl/mgl32"
)

// Surface evaluates a parametric surface at (u, v) in [0, 1]², returning the point and normal.
type Surface func(u, v float32) (point, normal mgl32.Vec3)

// NewTessellationPool creates the bounded worker pool used by Tessellate.
//
// Parameters:
//   - workers: goroutine count; values below 1 use one less than the CPU count
//
// Returns:
//   - worker.DynamicWorkerPool: the pool
func NewTessellationPool(workers int) worker.DynamicWorkerPool {
	if workers < 1 {
		workers = max(runtime.NumCPU()-1, 1)
	}
	return worker.NewDynamicWorkerPool(workers, 256, 1*time.Second)
}

// Tessellate samples surface on a (res+1) x (res+1) grid and triangulates it.
// Each grid row is evaluated as one pool task and Tessellate returns only after every
// row is done. A nil pool evaluates rows on the calling goroutine.
//
// Parameters:
//   - res: grid cells per side (at least 1)
//   - surface: the surface to sample
//   - pool: the worker pool, or nil
//
// Returns:
//   - *Mesh: the tessellated mesh with normals and UVs
func Tessellate(res int, surface Surface, pool worker.DynamicWorkerPool) *Mesh {
	res = max(res, 1)
	side := res + 1
	m := &Mesh{
		Points:    make([]mgl32.Vec3, side*side),
		Normals:   make([]mgl32.Vec3, side*side),
		UVs:       make([]mgl32.Vec2, side*side),
		Triangles: make([][3]uint32, 0, 2*res*res),
	}

	row := func(j int) {
		v := float32(j) / float32(res)
		for i := range side {
			u := float32(i) / float32(res)
			k := j*side + i
			m.Points[k], m.Normals[k] = surface(u, v)
			m.UVs[k] = mgl32.Vec2{u, v}
		}
	}

	if pool == nil {
		for j := range side {
			row(j)
		}
	} else {
		// Rows write disjoint slices, so the barrier is the only synchronization needed.
		var wg sync.WaitGroup
		for j := range side {
			wg.Add(1)
			pool.SubmitTask(worker.Task{
				ID: j,
				Do: func() (any, error) {
					defer wg.Done()
					row(j)
					return nil, nil
				},
			})
		}
		wg.Wait()
	}

	for j := range res {
		for i := range res {
			a := uint32(j*side + i)
			b := a + 1
			c := a + uint32(side)
			d := c + 1
			m.Triangles = append(m.Triangles, [3]uint32{a, b, d}, [3]uint32{a, d, c})
		}
	}
	return m
}
