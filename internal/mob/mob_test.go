package mob

import (
	"errors"
	"testing"

	"github.com/annel0/voxel-sandbox/internal/world"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	spawned   []string
	destroyed []world.Handle
	fail      bool
}

func (r *fakeRenderer) SpawnModel(name string, pos mgl64.Vec3) (world.Handle, error) {
	if r.fail {
		return "", errors.New("no gpu")
	}
	r.spawned = append(r.spawned, name)
	return world.Handle(name + "-handle"), nil
}

func (r *fakeRenderer) DestroyModel(h world.Handle) error {
	r.destroyed = append(r.destroyed, h)
	return nil
}

type fakeAudio struct {
	played []string
}

func (a *fakeAudio) PlayRandomFrom(set world.SoundSet, volume float64) error {
	a.played = append(a.played, set.Name)
	return nil
}

func TestDefaultRoster(t *testing.T) {
	specs := DefaultRoster()
	require.Len(t, specs, 9)

	hp := make(map[string]int)
	for _, s := range specs {
		hp[s.Name] = s.HP
		assert.Len(t, s.HurtSounds.Clips, 2)
		assert.Len(t, s.DeathSounds.Clips, 2)
	}
	assert.Equal(t, 10, hp["cow"])
	assert.Equal(t, 30, hp["enderman"])
	assert.Equal(t, 15, hp["spider"])
}

func TestRoster_DamageUntilDeath(t *testing.T) {
	renderer := &fakeRenderer{}
	audio := &fakeAudio{}
	r := NewRoster(renderer, audio)
	require.NoError(t, r.SpawnAll(DefaultRoster()))
	assert.Equal(t, 9, r.Len())
	assert.Len(t, renderer.spawned, 9)

	res, err := r.Damage("cow", 4)
	require.NoError(t, err)
	assert.Equal(t, DamageHurt, res)
	cow, ok := r.Get("cow")
	require.True(t, ok)
	assert.Equal(t, 6, cow.HP())
	assert.Equal(t, []string{"cow_hurt"}, audio.played)

	res, err = r.Damage("cow", 6)
	require.NoError(t, err)
	assert.Equal(t, DamageKilled, res)
	assert.True(t, cow.Dead())
	assert.Equal(t, []string{"cow_hurt", "cow_hurt", "cow_death"}, audio.played)
	assert.Equal(t, []world.Handle{"cow.gltf-handle"}, renderer.destroyed)

	_, ok = r.Get("cow")
	assert.False(t, ok, "мёртвый моб отвязан от ростера")
	assert.Equal(t, 8, r.Len())

	// Удар по мёртвому мобу ничего не делает
	assert.Equal(t, DamageAlreadyDead, cow.TakeDamage(5))
	assert.Len(t, audio.played, 3)

	_, err = r.Damage("cow", 1)
	assert.ErrorIs(t, err, ErrUnknownMob)
}

func TestRoster_IgnoresNonPositiveDamage(t *testing.T) {
	r := NewRoster(nil, nil)
	m, err := r.Spawn(spec("pig", 0, 0, 10))
	require.NoError(t, err)

	assert.Equal(t, DamageIgnored, m.TakeDamage(0))
	assert.Equal(t, DamageIgnored, m.TakeDamage(-3))
	assert.Equal(t, 10, m.HP())
}

func TestRoster_SpawnValidation(t *testing.T) {
	r := NewRoster(&fakeRenderer{fail: true}, nil)

	_, err := r.Spawn(spec("ghast", 0, 0, 25))
	require.NoError(t, err, "ошибка рендера не мешает появлению моба")

	_, err = r.Spawn(spec("ghast", 1, 1, 25))
	assert.ErrorIs(t, err, ErrDuplicateMob)

	_, err = r.Spawn(Spec{Name: "broken"})
	assert.Error(t, err)

	// Смерть моба без модели не трогает рендер
	res, err := r.Damage("ghast", 100)
	require.NoError(t, err)
	assert.Equal(t, DamageKilled, res)
}

func TestRoster_AliveOrder(t *testing.T) {
	r := NewRoster(nil, nil)
	require.NoError(t, r.SpawnAll(DefaultRoster()[:3]))
	_, err := r.Damage("zombie", 50)
	require.NoError(t, err)

	var names []string
	for _, m := range r.Alive() {
		names = append(names, m.Name())
	}
	assert.Equal(t, []string{"cow", "creeper"}, names)
	assert.Equal(t, "killed", DamageKilled.String())
}
