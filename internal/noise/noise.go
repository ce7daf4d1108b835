package noise

import (
	"fmt"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Source описывает когерентный 2D шум.
// Значение детерминировано для фиксированного сида и ограничено отрезком [-1, 1].
type Source interface {
	Noise2D(x, y float64) float64
}

// Алгоритмы шума, доступные через конфигурацию
const (
	AlgorithmPerlin  = "perlin"
	AlgorithmSimplex = "simplex"
)

// PerlinParams задает параметры генератора Перлина
type PerlinParams struct {
	Alpha   float64 // Сглаживание шума
	Beta    float64 // Частота шума
	Octaves int32   // Количество октав
}

// DefaultPerlinParams возвращает параметры, дающие ландшафтоподобный шум
func DefaultPerlinParams() PerlinParams {
	return PerlinParams{Alpha: 2.0, Beta: 2.0, Octaves: 3}
}

// Perlin - источник шума Перлина
type Perlin struct {
	noise *perlin.Perlin
	seed  int64
}

// NewPerlin создаёт генератор шума Перлина с указанным сидом
func NewPerlin(seed int64, params PerlinParams) *Perlin {
	return &Perlin{
		noise: perlin.NewPerlin(params.Alpha, params.Beta, params.Octaves, seed),
		seed:  seed,
	}
}

// Noise2D возвращает значение шума Перлина (от -1 до 1)
func (p *Perlin) Noise2D(x, y float64) float64 {
	return clamp(p.noise.Noise2D(x, y))
}

// Seed возвращает сид генератора
func (p *Perlin) Seed() int64 {
	return p.seed
}

// Simplex - источник шума OpenSimplex
type Simplex struct {
	noise opensimplex.Noise
	seed  int64
}

// NewSimplex создаёт генератор OpenSimplex с указанным сидом
func NewSimplex(seed int64) *Simplex {
	return &Simplex{
		noise: opensimplex.New(seed),
		seed:  seed,
	}
}

// Noise2D возвращает значение шума OpenSimplex (от -1 до 1)
func (s *Simplex) Noise2D(x, y float64) float64 {
	return clamp(s.noise.Eval2(x, y))
}

// Seed возвращает сид генератора
func (s *Simplex) Seed() int64 {
	return s.seed
}

// Constant возвращает одно и то же значение для любых координат.
// Нужен для плоских миров и тестов.
type Constant float64

// Noise2D возвращает константу
func (c Constant) Noise2D(x, y float64) float64 {
	return float64(c)
}

// Func адаптирует функцию к интерфейсу Source
type Func func(x, y float64) float64

// Noise2D вызывает функцию
func (f Func) Noise2D(x, y float64) float64 {
	return f(x, y)
}

// New создаёт источник шума по имени алгоритма
func New(algorithm string, seed int64, params PerlinParams) (Source, error) {
	switch algorithm {
	case "", AlgorithmPerlin:
		return NewPerlin(seed, params), nil
	case AlgorithmSimplex:
		return NewSimplex(seed), nil
	default:
		return nil, fmt.Errorf("неизвестный алгоритм шума %q", algorithm)
	}
}

func clamp(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
