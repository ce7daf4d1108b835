package headless

import (
	"math"

	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world"
	"github.com/go-gl/mathgl/mgl64"
)

// faceEpsilon - отступ точки попадания внутрь блока
const faceEpsilon = 1e-6

// Raycaster проходит луч по сетке вокселей (Amanatides & Woo).
// Блок занимает клетку [c, c+1) по каждой оси.
type Raycaster struct {
	store *world.Store
}

// NewRaycaster создаёт трассировщик над хранилищем
func NewRaycaster(store *world.Store) *Raycaster {
	return &Raycaster{store: store}
}

// CastRay возвращает первое попадание в блок не дальше maxDistance.
// Position лежит внутри задетого блока у грани попадания.
func (r *Raycaster) CastRay(origin, direction mgl64.Vec3, maxDistance float64) (world.RayHit, bool) {
	if maxDistance <= 0 || direction.Len() == 0 {
		return world.RayHit{}, false
	}
	dir := direction.Normalize()
	cell := vec.Floor(origin)

	// Старт внутри блока
	if r.store.Contains(cell) {
		return world.RayHit{Position: clampInto(origin, cell), Distance: 0}, true
	}

	cur := [3]int{cell.X, cell.Y, cell.Z}
	var step [3]int
	var tMax, tDelta [3]float64

	for i := 0; i < 3; i++ {
		switch {
		case dir[i] > 0:
			step[i] = 1
			tMax[i] = (float64(cur[i]+1) - origin[i]) / dir[i]
			tDelta[i] = 1 / dir[i]
		case dir[i] < 0:
			step[i] = -1
			tMax[i] = (origin[i] - float64(cur[i])) / -dir[i]
			tDelta[i] = 1 / -dir[i]
		default:
			tMax[i] = math.Inf(1)
			tDelta[i] = math.Inf(1)
		}
	}

	for {
		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}

		t := tMax[axis]
		if t > maxDistance {
			return world.RayHit{}, false
		}

		cur[axis] += step[axis]
		tMax[axis] += tDelta[axis]

		hitCell := vec.Vec3{X: cur[0], Y: cur[1], Z: cur[2]}
		if !r.store.Contains(hitCell) {
			continue
		}

		var normal mgl64.Vec3
		normal[axis] = float64(-step[axis])
		point := origin.Add(dir.Mul(t))

		return world.RayHit{
			Position: clampInto(point, hitCell),
			Normal:   normal,
			Distance: t,
		}, true
	}
}

// clampInto сдвигает точку внутрь клетки, чтобы floor(p) == cell
func clampInto(p mgl64.Vec3, cell vec.Vec3) mgl64.Vec3 {
	c := [3]int{cell.X, cell.Y, cell.Z}
	for i := 0; i < 3; i++ {
		lo := float64(c[i]) + faceEpsilon
		hi := float64(c[i]+1) - faceEpsilon
		p[i] = math.Min(math.Max(p[i], lo), hi)
	}
	return p
}
