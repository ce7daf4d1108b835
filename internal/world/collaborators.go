package world

import (
	"errors"
	"time"

	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world/block"
	"github.com/go-gl/mathgl/mgl64"
)

// Ошибки мира
var (
	// ErrOutOfRange - генерация запрошена для неположительной ширины/высоты
	ErrOutOfRange = errors.New("world: размер генерации вне диапазона")
	// ErrMissingCollaborator - внешний коллаборатор не задан
	ErrMissingCollaborator = errors.New("world: коллаборатор не задан")
)

// Handle - непрозрачный идентификатор визуального представления блока
type Handle string

// Scene создаёт и уничтожает видимые представления блоков
type Scene interface {
	SpawnBlock(coord vec.Vec3, material block.MaterialID) (Handle, error)
	DestroyBlock(h Handle) error
}

// Audio проигрывает случайный звук из набора
type Audio interface {
	PlayRandomFrom(set SoundSet, volume float64) error
}

// Scheduler вызывает fn один раз после задержки.
// Вызов не отменяется.
type Scheduler interface {
	After(delay time.Duration, fn func()) error
}

// RayHit - результат пересечения луча с блоком.
// Position лежит внутри задетого блока у грани, Normal - внешняя нормаль грани.
type RayHit struct {
	Position mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
}

// Block возвращает координаты задетого блока
func (h RayHit) Block() vec.Vec3 {
	return vec.Floor(h.Position)
}

// Adjacent возвращает клетку перед гранью: floor(Position + Normal)
func (h RayHit) Adjacent() vec.Vec3 {
	return vec.Floor(h.Position.Add(h.Normal))
}

// Raycaster находит первый блок на пути луча
type Raycaster interface {
	CastRay(origin, direction mgl64.Vec3, maxDistance float64) (RayHit, bool)
}
