package world

import (
	"testing"

	"github.com/annel0/voxel-sandbox/internal/noise"
	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeightfield_Deterministic(t *testing.T) {
	a, err := NewHeightfield(noise.NewPerlin(99, noise.DefaultPerlinParams()), DefaultFrequency, DefaultAmplitude)
	require.NoError(t, err)
	b, err := NewHeightfield(noise.NewPerlin(99, noise.DefaultPerlinParams()), DefaultFrequency, DefaultAmplitude)
	require.NoError(t, err)

	for x := -40; x < 40; x += 3 {
		for z := -40; z < 40; z += 3 {
			h := a.Height(x, z)
			assert.Equal(t, h, a.Height(x, z), "повторный вызов Height(%d,%d)", x, z)
			assert.Equal(t, h, b.Height(x, z), "тот же сид и конфиг дают ту же высоту")
			assert.Equal(t, 0, h%DefaultAmplitude, "высота кратна амплитуде")
		}
	}
}

func TestHeightfield_Formula(t *testing.T) {
	var gotX, gotY float64
	src := noise.Func(func(x, y float64) float64 {
		gotX, gotY = x, y
		return -0.25
	})
	hf, err := NewHeightfield(src, 16, 6)
	require.NoError(t, err)

	assert.Equal(t, -6, hf.Height(8, 32), "floor(-0.25) * 6")
	assert.Equal(t, 0.5, gotX, "x делится на частоту")
	assert.Equal(t, 2.0, gotY, "z делится на частоту")
}

func TestHeightfield_ConstantHalfIsFlat(t *testing.T) {
	hf, err := NewHeightfield(noise.Constant(0.5), 16, 6)
	require.NoError(t, err)

	for x := 0; x < 2; x++ {
		c := hf.Column(x, 0)
		assert.Equal(t, 0, c.Height, "floor(0.5) * 6 = 0")
		assert.Equal(t, ColumnOpen, c.Kind)
		assert.Empty(t, c.Layers())
	}
}

func TestNewHeightfield_Validation(t *testing.T) {
	_, err := NewHeightfield(nil, 16, 6)
	assert.Error(t, err)
	_, err = NewHeightfield(noise.Constant(0), 0, 6)
	assert.Error(t, err)
	_, err = NewHeightfield(noise.Constant(0), -1, 6)
	assert.Error(t, err)
}

func TestKindForHeight(t *testing.T) {
	cases := map[int]ColumnKind{
		-6: ColumnSubmerged,
		-2: ColumnSubmerged,
		-1: ColumnBeach,
		0:  ColumnOpen,
		1:  ColumnLand,
		6:  ColumnLand,
	}
	for h, want := range cases {
		assert.Equal(t, want, KindForHeight(h), "высота %d", h)
	}
	assert.Equal(t, "beach", ColumnBeach.String())
}

func coordsOf(voxels []Voxel) []vec.Vec3 {
	out := make([]vec.Vec3, 0, len(voxels))
	for _, v := range voxels {
		out = append(out, v.Coord)
	}
	return out
}

func TestHeightColumn_LandLayers(t *testing.T) {
	c := HeightColumn{X: 2, Z: 5, Height: 3, Kind: ColumnLand}
	layers := c.Layers()

	// y = i - floor(3/2) для i в [0, 3)
	assert.Equal(t, []vec.Vec3{
		{X: 2, Y: -1, Z: 5},
		{X: 2, Y: 0, Z: 5},
		{X: 2, Y: 1, Z: 5},
	}, coordsOf(layers))

	assert.Equal(t, block.MaterialDirt, layers[0].Material)
	assert.Equal(t, block.MaterialDirt, layers[1].Material)
	assert.Equal(t, block.MaterialGrass, layers[2].Material, "верхний слой - трава")
	for _, v := range layers {
		assert.True(t, v.Destructible)
	}
}

func TestHeightColumn_SubmergedLayers(t *testing.T) {
	c := HeightColumn{X: 0, Z: 0, Height: -3, Kind: ColumnSubmerged}
	layers := c.Layers()

	// i в [-3, 0), floor(-3/2) = -2, y = i + 2
	assert.Equal(t, []vec.Vec3{
		{X: 0, Y: -1, Z: 0},
		{X: 0, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
	}, coordsOf(layers))
	for _, v := range layers {
		assert.Equal(t, block.MaterialWater, v.Material)
		assert.True(t, v.Destructible)
	}

	deep := HeightColumn{Height: -6, Kind: ColumnSubmerged}.Layers()
	assert.Len(t, deep, 6, "abs(height) слоёв")
	assert.Equal(t, -3, deep[0].Coord.Y)
	assert.Equal(t, 2, deep[5].Coord.Y)
}

func TestHeightColumn_BeachAndOpen(t *testing.T) {
	beach := HeightColumn{X: 7, Z: 8, Height: -1, Kind: ColumnBeach}.Layers()
	require.Len(t, beach, 1)
	assert.Equal(t, vec.Vec3{X: 7, Y: 0, Z: 8}, beach[0].Coord)
	assert.Equal(t, block.MaterialSand, beach[0].Material)

	assert.Empty(t, HeightColumn{Height: 0, Kind: ColumnOpen}.Layers())
}
