package world

import (
	"fmt"
	"math"

	"github.com/annel0/voxel-sandbox/internal/noise"
	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world/block"
)

// Параметры ландшафта по умолчанию
const (
	DefaultFrequency = 16.0
	DefaultAmplitude = 6
)

// ColumnKind - тип колонки, зависящий только от её высоты
type ColumnKind uint8

const (
	ColumnOpen      ColumnKind = iota // h == 0, блоков нет
	ColumnSubmerged                   // h < -1, вода
	ColumnBeach                       // h == -1, песок
	ColumnLand                        // h > 0, трава и земля
)

// String возвращает имя типа колонки
func (k ColumnKind) String() string {
	switch k {
	case ColumnOpen:
		return "open"
	case ColumnSubmerged:
		return "submerged"
	case ColumnBeach:
		return "beach"
	case ColumnLand:
		return "land"
	default:
		return "unknown"
	}
}

// KindForHeight определяет тип колонки по высоте
func KindForHeight(h int) ColumnKind {
	switch {
	case h < -1:
		return ColumnSubmerged
	case h == -1:
		return ColumnBeach
	case h > 0:
		return ColumnLand
	default:
		return ColumnOpen
	}
}

// Heightfield отображает координаты колонки в знаковую целую высоту.
// Чистая функция: состояние фиксируется при создании.
type Heightfield struct {
	source    noise.Source
	frequency float64
	amplitude int
}

// NewHeightfield создаёт поле высот
func NewHeightfield(source noise.Source, frequency float64, amplitude int) (*Heightfield, error) {
	if source == nil {
		return nil, fmt.Errorf("источник шума не задан")
	}
	if frequency <= 0 {
		return nil, fmt.Errorf("частота должна быть положительной: %v", frequency)
	}
	return &Heightfield{
		source:    source,
		frequency: frequency,
		amplitude: amplitude,
	}, nil
}

// Height возвращает floor(noise(x/f, z/f)) * amplitude
func (hf *Heightfield) Height(x, z int) int {
	n := hf.source.Noise2D(float64(x)/hf.frequency, float64(z)/hf.frequency)
	return int(math.Floor(n)) * hf.amplitude
}

// Column вычисляет производную колонку для (x, z)
func (hf *Heightfield) Column(x, z int) HeightColumn {
	h := hf.Height(x, z)
	return HeightColumn{X: x, Z: z, Height: h, Kind: KindForHeight(h)}
}

// HeightColumn - колонка с высотой и типом. Не хранится, пересчитывается по запросу.
type HeightColumn struct {
	X, Z   int
	Height int
	Kind   ColumnKind
}

// Layers возвращает воксели колонки.
// Для слоя i высота y = i - floor(h/2); i пробегает [0, h) для суши
// и [h, 0) для воды.
func (c HeightColumn) Layers() []Voxel {
	h := c.Height
	half := vec.FloorDiv(h, 2)

	switch c.Kind {
	case ColumnSubmerged:
		layers := make([]Voxel, 0, -h)
		for i := h; i < 0; i++ {
			layers = append(layers, NewVoxel(vec.Vec3{X: c.X, Y: i - half, Z: c.Z}, block.MaterialWater))
		}
		return layers

	case ColumnBeach:
		return []Voxel{NewVoxel(vec.Vec3{X: c.X, Y: 0, Z: c.Z}, block.MaterialSand)}

	case ColumnLand:
		layers := make([]Voxel, 0, h)
		for i := 0; i < h; i++ {
			material := block.MaterialDirt
			if i == h-1 {
				material = block.MaterialGrass
			}
			layers = append(layers, NewVoxel(vec.Vec3{X: c.X, Y: i - half, Z: c.Z}, material))
		}
		return layers

	default:
		return nil
	}
}
