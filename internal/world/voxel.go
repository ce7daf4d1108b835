package world

import (
	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world/block"
)

// Voxel представляет собой единичный блок в мире
type Voxel struct {
	Coord        vec.Vec3         // Координаты блока
	Material     block.MaterialID // Идентификатор материала
	Destructible bool             // Можно ли разрушить блок
}

// NewVoxel создаёт воксель со свойством разрушаемости по умолчанию для материала
func NewVoxel(coord vec.Vec3, material block.MaterialID) Voxel {
	return Voxel{
		Coord:        coord,
		Material:     material,
		Destructible: block.Destructible(material),
	}
}
