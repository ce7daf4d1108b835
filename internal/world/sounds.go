package world

// SoundSet - именованный набор взаимозаменяемых звуков
type SoundSet struct {
	Name  string
	Clips []string
}

// Наборы звуков блоков
var (
	SoundsBlockHit   = SoundSet{Name: "block_hit", Clips: []string{"sounds/block_hit_1.wav", "sounds/block_hit_2.wav", "sounds/block_hit_3.wav"}}
	SoundsBlockBreak = SoundSet{Name: "block_break", Clips: []string{"sounds/block_break_1.wav", "sounds/block_break_2.wav", "sounds/block_break_3.wav"}}
	SoundsBlockPlace = SoundSet{Name: "block_place", Clips: []string{"sounds/block_place_1.wav", "sounds/block_place_2.wav", "sounds/block_place_3.wav"}}
)

// DefaultVolume - громкость звуков установки и разрушения
const DefaultVolume = 0.5
