package world

import (
	"context"
	"testing"

	"github.com/annel0/voxel-sandbox/internal/noise"
	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world/block"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type editFixture struct {
	store     *Store
	scene     *fakeScene
	binding   *SceneBinding
	audio     *fakeAudio
	scheduler *manualScheduler
	metrics   *Metrics
	ctrl      *EditController
}

func newEditFixture(t *testing.T) *editFixture {
	t.Helper()
	f := &editFixture{
		store:     NewStore(),
		scene:     &fakeScene{},
		audio:     &fakeAudio{},
		scheduler: &manualScheduler{},
		metrics:   NewMetrics(prometheus.NewRegistry()),
	}
	f.binding = NewSceneBinding(f.scene, f.metrics)
	f.ctrl = NewEditController(f.store, f.binding, f.audio, f.scheduler, DefaultEditConfig(), f.metrics)
	return f
}

// up - попадание в верхнюю грань блока (x, y, z)
func up(x, y, z int) (mgl64.Vec3, mgl64.Vec3) {
	return mgl64.Vec3{float64(x) + 0.5, float64(y) + 0.999, float64(z) + 0.5}, mgl64.Vec3{0, 1, 0}
}

func TestEditController_PlaceCooldownCycle(t *testing.T) {
	f := newEditFixture(t)
	require.Equal(t, StatePlaceable, f.ctrl.State(), "начальное состояние - Placeable")

	pos, normal := up(0, 0, 0)
	target, res := f.ctrl.Place(pos, normal, block.MaterialStone)
	require.Equal(t, Placed, res)
	assert.Equal(t, vec.Vec3{X: 0, Y: 1, Z: 0}, target, "floor(hit + normal)")
	assert.True(t, f.store.Contains(target))
	assert.Equal(t, StateCooling, f.ctrl.State())
	assert.Len(t, f.scene.spawned, 1)
	assert.Equal(t, []string{"block_place"}, f.audio.played)
	require.Len(t, f.scheduler.delays, 1)
	assert.Equal(t, DefaultCooldown, f.scheduler.delays[0])

	// Второй вызов во время паузы ничего не делает
	pos2, normal2 := up(5, 0, 5)
	target2, res := f.ctrl.Place(pos2, normal2, block.MaterialStone)
	assert.Equal(t, PlaceDeclinedCooling, res)
	assert.False(t, f.store.Contains(target2))
	assert.Len(t, f.scene.spawned, 1)
	assert.Len(t, f.scheduler.pending, 1, "повторный таймер не ставится")

	// Пауза истекла
	f.scheduler.fire()
	assert.Equal(t, StatePlaceable, f.ctrl.State())

	_, res = f.ctrl.Place(pos2, normal2, block.MaterialStone)
	assert.Equal(t, Placed, res)
	assert.True(t, f.store.Contains(target2))

	assert.Equal(t, float64(2), testutil.ToFloat64(f.metrics.placed))
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.declined.WithLabelValues("cooling")))
}

func TestEditController_PlaceOnOccupied(t *testing.T) {
	f := newEditFixture(t)
	occupied := vec.Vec3{X: 0, Y: 1, Z: 0}
	f.store.Put(occupied, NewVoxel(occupied, block.MaterialDirt))

	pos, normal := up(0, 0, 0)
	_, res := f.ctrl.Place(pos, normal, block.MaterialStone)
	assert.Equal(t, PlaceDeclinedOccupied, res)
	assert.Equal(t, StatePlaceable, f.ctrl.State(), "состояние не меняется")

	got, _ := f.store.Get(occupied)
	assert.Equal(t, block.MaterialDirt, got.Material, "существующий блок не заменён")
	assert.Empty(t, f.scene.spawned)
	assert.Empty(t, f.audio.played)
	assert.Empty(t, f.scheduler.pending)
}

func TestEditController_PlaceInvalidMaterial(t *testing.T) {
	f := newEditFixture(t)
	pos, normal := up(0, 0, 0)
	_, res := f.ctrl.Place(pos, normal, block.MaterialNone)
	assert.Equal(t, PlaceDeclinedInvalidMaterial, res)
	assert.Equal(t, 0, f.store.Len())
}

func TestEditController_PlaceNegativeFaces(t *testing.T) {
	f := newEditFixture(t)
	// Попадание в грань -x блока (0,0,0): точка внутри блока у x=0
	pos := mgl64.Vec3{0.001, 0.5, 0.5}
	target, res := f.ctrl.Place(pos, mgl64.Vec3{-1, 0, 0}, block.MaterialStone)
	require.Equal(t, Placed, res)
	assert.Equal(t, vec.Vec3{X: -1, Y: 0, Z: 0}, target)
}

func TestEditController_Break(t *testing.T) {
	f := newEditFixture(t)
	c := vec.Vec3{X: 2, Y: 0, Z: 3}
	v := NewVoxel(c, block.MaterialGrass)
	f.store.Put(c, v)
	f.binding.Spawn(v)

	// Разрушение доступно и во время паузы
	pos, normal := up(9, 9, 9)
	_, res := f.ctrl.Place(pos, normal, block.MaterialStone)
	require.Equal(t, Placed, res)
	require.Equal(t, StateCooling, f.ctrl.State())
	f.audio.played = nil

	assert.Equal(t, Broken, f.ctrl.Break(c))
	assert.False(t, f.store.Contains(c))
	assert.Len(t, f.scene.destroyed, 1)
	assert.Equal(t, []string{"block_break"}, f.audio.played)
	assert.Equal(t, StateCooling, f.ctrl.State(), "Break не меняет состояние")
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.broken))
}

func TestEditController_BreakEmptyIsNoop(t *testing.T) {
	f := newEditFixture(t)

	assert.Equal(t, BreakNothing, f.ctrl.Break(vec.Vec3{X: 1, Y: 1, Z: 1}))
	assert.Empty(t, f.scene.destroyed, "сцена не вызывается")
	assert.Empty(t, f.audio.played, "звук не проигрывается")
	assert.Equal(t, StatePlaceable, f.ctrl.State())
	assert.Equal(t, float64(0), testutil.ToFloat64(f.metrics.broken))
}

func TestEditController_BreakIndestructible(t *testing.T) {
	f := newEditFixture(t)
	c := vec.Vec3{X: 0, Y: 0, Z: 0}
	f.store.Put(c, Voxel{Coord: c, Material: block.MaterialStone, Destructible: false})

	assert.Equal(t, BreakIndestructible, f.ctrl.Break(c))
	assert.True(t, f.store.Contains(c))
	assert.Equal(t, []string{"block_hit"}, f.audio.played, "только звук удара")
	assert.Equal(t, float64(0), testutil.ToFloat64(f.metrics.broken))

	f.ctrl.cfg.HitSounds = SoundSet{}
	f.ctrl.Break(c)
	assert.Len(t, f.audio.played, 1, "без набора удара звука нет")
}

func TestEditController_BreakGeneratedWater(t *testing.T) {
	f := newEditFixture(t)
	hf, err := NewHeightfield(noise.Constant(-0.5), DefaultFrequency, DefaultAmplitude)
	require.NoError(t, err)
	placed, err := NewWorldGenerator(f.store, hf, f.binding, f.metrics).Generate(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Equal(t, 6, placed, "h = -6 даёт шесть слоёв воды")

	c := vec.Vec3{X: 0, Y: 0, Z: 0}
	v, ok := f.store.Get(c)
	require.True(t, ok)
	require.Equal(t, block.MaterialWater, v.Material)

	assert.Equal(t, Broken, f.ctrl.Break(c))
	assert.False(t, f.store.Contains(c), "вода удалена из хранилища")
	assert.Equal(t, 5, f.store.Len())
	assert.Len(t, f.scene.destroyed, 1)
	assert.Equal(t, []string{"block_break"}, f.audio.played)
}

func TestEditController_CloseInvalidatesPendingCooldown(t *testing.T) {
	f := newEditFixture(t)
	pos, normal := up(0, 0, 0)
	_, res := f.ctrl.Place(pos, normal, block.MaterialStone)
	require.Equal(t, Placed, res)

	f.ctrl.Close()
	assert.NotPanics(t, f.scheduler.fire)
	assert.Equal(t, StateCooling, f.ctrl.State(), "колбэк закрытого контроллера ничего не делает")

	_, res = f.ctrl.Place(mgl64.Vec3{5.5, 0.999, 5.5}, mgl64.Vec3{0, 1, 0}, block.MaterialStone)
	assert.Equal(t, PlaceDeclinedCooling, res)
}

func TestEditController_SchedulerFailureDoesNotLock(t *testing.T) {
	f := newEditFixture(t)
	f.scheduler.fail = true

	pos, normal := up(0, 0, 0)
	_, res := f.ctrl.Place(pos, normal, block.MaterialStone)
	require.Equal(t, Placed, res)
	assert.Equal(t, StatePlaceable, f.ctrl.State(), "без таймера пауза снимается сразу")
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.collaboratorErrors.WithLabelValues("scheduler")))

	nilSched := NewEditController(f.store, f.binding, f.audio, nil, DefaultEditConfig(), f.metrics)
	_, res = nilSched.Place(mgl64.Vec3{3.5, 0.999, 3.5}, mgl64.Vec3{0, 1, 0}, block.MaterialStone)
	require.Equal(t, Placed, res)
	assert.Equal(t, StatePlaceable, nilSched.State())
}

func TestEditController_SideEffectFailuresAreNonFatal(t *testing.T) {
	f := newEditFixture(t)
	f.audio.fail = true
	f.scene.failSpawn = true

	pos, normal := up(0, 0, 0)
	target, res := f.ctrl.Place(pos, normal, block.MaterialStone)
	require.Equal(t, Placed, res)
	assert.True(t, f.store.Contains(target), "мутация не откатывается из-за звука или сцены")

	assert.Equal(t, Broken, f.ctrl.Break(target))
	assert.False(t, f.store.Contains(target))
	assert.Equal(t, float64(2), testutil.ToFloat64(f.metrics.collaboratorErrors.WithLabelValues("audio")))
}

func TestEditController_NilAudio(t *testing.T) {
	store := NewStore()
	ctrl := NewEditController(store, nil, nil, &manualScheduler{}, DefaultEditConfig(), nil)

	_, res := ctrl.Place(mgl64.Vec3{0.5, 0.999, 0.5}, mgl64.Vec3{0, 1, 0}, block.MaterialStone)
	assert.Equal(t, Placed, res)
	assert.Equal(t, 1, store.Len())
}

func TestEditEnumsString(t *testing.T) {
	assert.Equal(t, "cooling", StateCooling.String())
	assert.Equal(t, "occupied", PlaceDeclinedOccupied.String())
	assert.Equal(t, "indestructible", BreakIndestructible.String())
}
