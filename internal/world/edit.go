package world

import (
	"fmt"
	"time"

	"github.com/annel0/voxel-sandbox/internal/logging"
	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world/block"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultCooldown - пауза после установки блока
const DefaultCooldown = 250 * time.Millisecond

// EditState - состояние контроллера редактирования
type EditState uint8

const (
	StatePlaceable EditState = iota // Можно ставить блок
	StateCooling                    // Пауза после установки
)

// String возвращает имя состояния
func (s EditState) String() string {
	switch s {
	case StatePlaceable:
		return "placeable"
	case StateCooling:
		return "cooling"
	default:
		return "unknown"
	}
}

// PlaceResult - исход попытки установки
type PlaceResult uint8

const (
	Placed                        PlaceResult = iota
	PlaceDeclinedCooling                      // Контроллер в паузе
	PlaceDeclinedOccupied                     // Клетка занята
	PlaceDeclinedInvalidMaterial              // Неизвестный материал
)

// String возвращает имя исхода
func (r PlaceResult) String() string {
	switch r {
	case Placed:
		return "placed"
	case PlaceDeclinedCooling:
		return "cooling"
	case PlaceDeclinedOccupied:
		return "occupied"
	case PlaceDeclinedInvalidMaterial:
		return "invalid_material"
	default:
		return "unknown"
	}
}

// BreakResult - исход попытки разрушения
type BreakResult uint8

const (
	Broken              BreakResult = iota
	BreakNothing                    // Клетка пуста
	BreakIndestructible             // Блок неразрушаем
)

// String возвращает имя исхода
func (r BreakResult) String() string {
	switch r {
	case Broken:
		return "broken"
	case BreakNothing:
		return "nothing"
	case BreakIndestructible:
		return "indestructible"
	default:
		return "unknown"
	}
}

// EditConfig задает параметры контроллера
type EditConfig struct {
	Cooldown    time.Duration
	Volume      float64
	PlaceSounds SoundSet
	BreakSounds SoundSet
	HitSounds   SoundSet // Удар по неразрушаемому блоку; пустой набор - без звука
}

// DefaultEditConfig возвращает параметры по умолчанию
func DefaultEditConfig() EditConfig {
	return EditConfig{
		Cooldown:    DefaultCooldown,
		Volume:      DefaultVolume,
		PlaceSounds: SoundsBlockPlace,
		BreakSounds: SoundsBlockBreak,
		HitSounds:   SoundsBlockHit,
	}
}

// EditController переводит события попадания луча в изменения Store.
// Конечный автомат: Placeable -> (Place) -> Cooling -> (таймер) -> Placeable.
type EditController struct {
	store     *Store
	scene     *SceneBinding
	audio     Audio
	scheduler Scheduler
	metrics   *Metrics
	cfg       EditConfig

	state      EditState
	generation uint64 // Отсекает устаревшие колбэки таймера
	closed     bool
}

// NewEditController создаёт контроллер в состоянии Placeable
func NewEditController(store *Store, scene *SceneBinding, audio Audio, scheduler Scheduler, cfg EditConfig, metrics *Metrics) *EditController {
	if cfg.Cooldown < 0 {
		cfg.Cooldown = 0
	}
	return &EditController{
		store:     store,
		scene:     scene,
		audio:     audio,
		scheduler: scheduler,
		metrics:   metrics,
		cfg:       cfg,
		state:     StatePlaceable,
	}
}

// State возвращает текущее состояние
func (ec *EditController) State() EditState {
	return ec.state
}

// Place ставит блок в клетку floor(hitPosition + hitNormal).
// В состоянии Cooling и при занятой клетке вызов ничего не меняет.
func (ec *EditController) Place(hitPosition, hitNormal mgl64.Vec3, material block.MaterialID) (vec.Vec3, PlaceResult) {
	target := vec.Floor(hitPosition.Add(hitNormal))

	if ec.closed || ec.state != StatePlaceable {
		ec.metrics.incDeclined(PlaceDeclinedCooling.String())
		return target, PlaceDeclinedCooling
	}
	if !block.IsValid(material) {
		ec.metrics.incDeclined(PlaceDeclinedInvalidMaterial.String())
		return target, PlaceDeclinedInvalidMaterial
	}
	if ec.store.Contains(target) {
		ec.metrics.incDeclined(PlaceDeclinedOccupied.String())
		return target, PlaceDeclinedOccupied
	}

	v := NewVoxel(target, material)
	ec.store.Put(target, v)
	ec.metrics.incPlaced()
	ec.metrics.setVoxels(ec.store.Len())

	if ec.scene != nil {
		ec.scene.Spawn(v)
	}
	ec.play(ec.cfg.PlaceSounds)
	ec.startCooldown()

	logging.Debug("Блок %s установлен в %s", material, target)
	return target, Placed
}

// Break удаляет блок по координатам. Доступно в любом состоянии.
func (ec *EditController) Break(coord vec.Vec3) BreakResult {
	v, exists := ec.store.Get(coord)
	if !exists {
		return BreakNothing
	}
	if !v.Destructible {
		if len(ec.cfg.HitSounds.Clips) > 0 {
			ec.play(ec.cfg.HitSounds)
		}
		return BreakIndestructible
	}

	ec.store.Remove(coord)
	ec.metrics.incBroken()
	ec.metrics.setVoxels(ec.store.Len())

	if ec.scene != nil {
		ec.scene.Destroy(coord)
	}
	ec.play(ec.cfg.BreakSounds)

	logging.Debug("Блок %s разрушен в %s", v.Material, coord)
	return Broken
}

// Close отключает контроллер; ожидающий колбэк паузы станет пустым
func (ec *EditController) Close() {
	ec.closed = true
	ec.generation++
}

func (ec *EditController) startCooldown() {
	ec.state = StateCooling
	ec.generation++
	gen := ec.generation

	if ec.scheduler == nil {
		ec.collaboratorFailed("scheduler", fmt.Errorf("cooldown: %w", ErrMissingCollaborator))
		ec.state = StatePlaceable
		return
	}

	err := ec.scheduler.After(ec.cfg.Cooldown, func() { ec.finishCooldown(gen) })
	if err != nil {
		// Без таймера контроллер навсегда остался бы в паузе
		ec.collaboratorFailed("scheduler", fmt.Errorf("cooldown: %w", err))
		ec.state = StatePlaceable
	}
}

func (ec *EditController) finishCooldown(gen uint64) {
	if ec.closed || gen != ec.generation {
		return
	}
	ec.state = StatePlaceable
}

func (ec *EditController) play(set SoundSet) {
	if ec.audio == nil {
		ec.collaboratorFailed("audio", fmt.Errorf("play %s: %w", set.Name, ErrMissingCollaborator))
		return
	}
	if err := ec.audio.PlayRandomFrom(set, ec.cfg.Volume); err != nil {
		ec.collaboratorFailed("audio", fmt.Errorf("play %s: %w", set.Name, err))
	}
}

func (ec *EditController) collaboratorFailed(name string, err error) {
	ec.metrics.incCollaboratorError(name)
	logging.Warn("Ошибка коллаборатора %s: %v", name, err)
}
