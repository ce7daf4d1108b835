package headless

import (
	"fmt"

	"github.com/annel0/voxel-sandbox/internal/logging"
	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world"
	"github.com/annel0/voxel-sandbox/internal/world/block"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// SceneBlock - визуальное представление блока без рендера
type SceneBlock struct {
	Coord   vec.Vec3
	Texture string
}

// SceneModel - визуальное представление модели (моба)
type SceneModel struct {
	Name     string
	Position mgl64.Vec3
}

// Scene - сцена без рендера: выдаёт UUID-хэндлы и пишет в лог.
// Используется из одного потока игрового цикла.
type Scene struct {
	blocks map[world.Handle]SceneBlock
	models map[world.Handle]SceneModel
}

// NewScene создаёт пустую сцену
func NewScene() *Scene {
	return &Scene{
		blocks: make(map[world.Handle]SceneBlock),
		models: make(map[world.Handle]SceneModel),
	}
}

// SpawnBlock создаёт представление блока
func (s *Scene) SpawnBlock(coord vec.Vec3, material block.MaterialID) (world.Handle, error) {
	props, ok := block.Get(material)
	if !ok {
		return "", fmt.Errorf("нет текстуры для материала %s", material)
	}

	h := world.Handle(uuid.NewString())
	s.blocks[h] = SceneBlock{Coord: coord, Texture: props.Texture}
	logging.Trace("Сцена: блок %s (%s) -> %s", coord, props.Texture, h)
	return h, nil
}

// DestroyBlock уничтожает представление блока
func (s *Scene) DestroyBlock(h world.Handle) error {
	if _, ok := s.blocks[h]; !ok {
		return fmt.Errorf("неизвестный хэндл блока %s", h)
	}
	delete(s.blocks, h)
	logging.Trace("Сцена: блок %s уничтожен", h)
	return nil
}

// SpawnModel создаёт представление модели
func (s *Scene) SpawnModel(name string, pos mgl64.Vec3) (world.Handle, error) {
	if name == "" {
		return "", fmt.Errorf("имя модели не задано")
	}
	h := world.Handle(uuid.NewString())
	s.models[h] = SceneModel{Name: name, Position: pos}
	logging.Trace("Сцена: модель %s в %v -> %s", name, pos, h)
	return h, nil
}

// DestroyModel уничтожает представление модели
func (s *Scene) DestroyModel(h world.Handle) error {
	if _, ok := s.models[h]; !ok {
		return fmt.Errorf("неизвестный хэндл модели %s", h)
	}
	delete(s.models, h)
	return nil
}

// Block возвращает представление блока по хэндлу
func (s *Scene) Block(h world.Handle) (SceneBlock, bool) {
	b, ok := s.blocks[h]
	return b, ok
}

// Blocks возвращает количество блоков на сцене
func (s *Scene) Blocks() int {
	return len(s.blocks)
}

// Models возвращает количество моделей на сцене
func (s *Scene) Models() int {
	return len(s.models)
}
