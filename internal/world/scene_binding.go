package world

import (
	"fmt"

	"github.com/annel0/voxel-sandbox/internal/logging"
	"github.com/annel0/voxel-sandbox/internal/vec"
)

// SceneBinding связывает координаты вокселей с их представлениями на сцене.
// Ошибки сцены логируются и не влияют на состояние Store.
type SceneBinding struct {
	scene   Scene
	handles map[vec.Vec3]Handle
	metrics *Metrics
}

// NewSceneBinding создаёт привязку к сцене; scene может быть nil
func NewSceneBinding(scene Scene, metrics *Metrics) *SceneBinding {
	return &SceneBinding{
		scene:   scene,
		handles: make(map[vec.Vec3]Handle),
		metrics: metrics,
	}
}

// Spawn просит сцену создать представление вокселя
func (b *SceneBinding) Spawn(v Voxel) {
	if b.scene == nil {
		b.fail(fmt.Errorf("spawn %s: %w", v.Coord, ErrMissingCollaborator))
		return
	}

	h, err := b.scene.SpawnBlock(v.Coord, v.Material)
	if err != nil {
		b.fail(fmt.Errorf("spawn %s: %w", v.Coord, err))
		return
	}

	// Старое представление при замене больше не нужно
	if old, exists := b.handles[v.Coord]; exists && old != h {
		if err := b.scene.DestroyBlock(old); err != nil {
			b.fail(fmt.Errorf("destroy replaced %s: %w", v.Coord, err))
		}
	}
	b.handles[v.Coord] = h
}

// Destroy уничтожает представление вокселя, если оно есть
func (b *SceneBinding) Destroy(coord vec.Vec3) {
	h, exists := b.handles[coord]
	if !exists {
		return
	}
	delete(b.handles, coord)

	if b.scene == nil {
		b.fail(fmt.Errorf("destroy %s: %w", coord, ErrMissingCollaborator))
		return
	}
	if err := b.scene.DestroyBlock(h); err != nil {
		b.fail(fmt.Errorf("destroy %s: %w", coord, err))
	}
}

// Handle возвращает представление по координатам
func (b *SceneBinding) Handle(coord vec.Vec3) (Handle, bool) {
	h, ok := b.handles[coord]
	return h, ok
}

// Len возвращает количество живых представлений
func (b *SceneBinding) Len() int {
	return len(b.handles)
}

func (b *SceneBinding) fail(err error) {
	b.metrics.incCollaboratorError("scene")
	logging.Warn("Ошибка сцены: %v", err)
}
