package headless

import (
	"fmt"
	"math/rand"

	"github.com/annel0/voxel-sandbox/internal/logging"
	"github.com/annel0/voxel-sandbox/internal/world"
)

// Audio выбирает случайный клип из набора и пишет его в лог вместо воспроизведения
type Audio struct {
	rng    *rand.Rand
	plays  uint64
	last   string
	volume float64
}

// NewAudio создаёт аудио с детерминированным генератором
func NewAudio(seed int64) *Audio {
	return &Audio{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// PlayRandomFrom "проигрывает" случайный клип из набора
func (a *Audio) PlayRandomFrom(set world.SoundSet, volume float64) error {
	if len(set.Clips) == 0 {
		return fmt.Errorf("набор звуков %q пуст", set.Name)
	}
	if volume < 0 || volume > 1 {
		return fmt.Errorf("громкость %.2f вне [0, 1]", volume)
	}

	clip := set.Clips[a.rng.Intn(len(set.Clips))]
	a.plays++
	a.last = clip
	a.volume = volume
	logging.Trace("🔊 %s (%s, громкость %.2f)", clip, set.Name, volume)
	return nil
}

// Plays возвращает количество проигранных звуков
func (a *Audio) Plays() uint64 {
	return a.plays
}

// Last возвращает последний клип и его громкость
func (a *Audio) Last() (string, float64) {
	return a.last, a.volume
}
