package noise

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourcesAreDeterministic(t *testing.T) {
	sources := map[string]func() Source{
		AlgorithmPerlin:  func() Source { return NewPerlin(1337, DefaultPerlinParams()) },
		AlgorithmSimplex: func() Source { return NewSimplex(1337) },
	}

	for name, factory := range sources {
		t.Run(name, func(t *testing.T) {
			a, b := factory(), factory()
			for x := -20; x < 20; x++ {
				for y := -20; y < 20; y++ {
					fx, fy := float64(x)/16, float64(y)/16
					va := a.Noise2D(fx, fy)
					assert.Equal(t, va, a.Noise2D(fx, fy), "повторный вызов должен давать то же значение")
					assert.Equal(t, va, b.Noise2D(fx, fy), "одинаковый сид должен давать одинаковый шум")
					assert.True(t, va >= -1 && va <= 1, "значение %f вне [-1, 1]", va)
				}
			}
		})
	}
}

func TestSourcesAreCoherent(t *testing.T) {
	src := NewSimplex(7)
	const step = 1.0 / 16
	for x := 0; x < 64; x++ {
		v0 := src.Noise2D(float64(x)*step, 0.25)
		v1 := src.Noise2D(float64(x+1)*step, 0.25)
		assert.Less(t, math.Abs(v1-v0), 0.5, "соседние колонки не должны резко отличаться")
	}
}

func TestNew(t *testing.T) {
	src, err := New("", 1, DefaultPerlinParams())
	require.NoError(t, err)
	assert.IsType(t, &Perlin{}, src)

	src, err = New(AlgorithmSimplex, 1, DefaultPerlinParams())
	require.NoError(t, err)
	assert.IsType(t, &Simplex{}, src)

	_, err = New("worley", 1, DefaultPerlinParams())
	assert.Error(t, err)
}

func TestConstantAndFunc(t *testing.T) {
	assert.Equal(t, 0.5, Constant(0.5).Noise2D(100, -100))
	f := Func(func(x, y float64) float64 { return x - y })
	assert.Equal(t, 1.0, f.Noise2D(3, 2))
}
