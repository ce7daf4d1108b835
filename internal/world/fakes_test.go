package world

import (
	"errors"
	"fmt"
	"time"

	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world/block"
)

var errFake = errors.New("fake collaborator failure")

type spawnCall struct {
	Coord    vec.Vec3
	Material block.MaterialID
}

// fakeScene записывает вызовы сцены
type fakeScene struct {
	spawned   []spawnCall
	destroyed []Handle
	failSpawn bool
	next      int
}

func (s *fakeScene) SpawnBlock(coord vec.Vec3, material block.MaterialID) (Handle, error) {
	if s.failSpawn {
		return "", errFake
	}
	s.next++
	s.spawned = append(s.spawned, spawnCall{Coord: coord, Material: material})
	return Handle(fmt.Sprintf("h-%d", s.next)), nil
}

func (s *fakeScene) DestroyBlock(h Handle) error {
	s.destroyed = append(s.destroyed, h)
	return nil
}

// fakeAudio записывает проигранные наборы
type fakeAudio struct {
	played []string
	fail   bool
}

func (a *fakeAudio) PlayRandomFrom(set SoundSet, volume float64) error {
	if a.fail {
		return errFake
	}
	a.played = append(a.played, set.Name)
	return nil
}

// manualScheduler запоминает колбэки до явного вызова fire
type manualScheduler struct {
	delays  []time.Duration
	pending []func()
	fail    bool
}

func (s *manualScheduler) After(delay time.Duration, fn func()) error {
	if s.fail {
		return errFake
	}
	s.delays = append(s.delays, delay)
	s.pending = append(s.pending, fn)
	return nil
}

func (s *manualScheduler) fire() {
	pending := s.pending
	s.pending = nil
	for _, fn := range pending {
		fn()
	}
}
