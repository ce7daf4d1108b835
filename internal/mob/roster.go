package mob

import (
	"fmt"

	"github.com/annel0/voxel-sandbox/internal/world"
	"github.com/go-gl/mathgl/mgl64"
)

// Spec описывает моба
type Spec struct {
	Name        string
	Model       string
	Texture     string
	Position    mgl64.Vec3
	Scale       float64
	HP          int
	HurtSounds  world.SoundSet
	DeathSounds world.SoundSet
}

func sounds(name, kind string) world.SoundSet {
	return world.SoundSet{
		Name: name + "_" + kind,
		Clips: []string{
			fmt.Sprintf("sounds/%s_%s_1.wav", name, kind),
			fmt.Sprintf("sounds/%s_%s_2.wav", name, kind),
		},
	}
}

func spec(name string, x, z float64, hp int) Spec {
	return Spec{
		Name:        name,
		Model:       name + ".gltf",
		Texture:     name + ".png",
		Position:    mgl64.Vec3{x, 0, z},
		Scale:       0.03,
		HP:          hp,
		HurtSounds:  sounds(name, "hurt"),
		DeathSounds: sounds(name, "death"),
	}
}

// DefaultRoster возвращает стандартный набор мобов
func DefaultRoster() []Spec {
	return []Spec{
		spec("cow", 10, 10, 10),
		spec("zombie", -10, 10, 20),
		spec("creeper", 10, -10, 15),
		spec("enderman", -10, -10, 30),
		spec("ghast", 0, 0, 25),
		spec("pig", 0, 10, 10),
		spec("sheep", 0, -10, 10),
		spec("skeleton", -10, 0, 20),
		spec("spider", 10, 0, 15),
	}
}
