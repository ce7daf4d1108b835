package world

import (
	"sort"

	"github.com/annel0/voxel-sandbox/internal/vec"
)

// Store - разреженное хранилище вокселей по целочисленным координатам.
// Единственный источник правды о том, какой блок занимает координату.
//
// Store не синхронизирован: все обращения выполняются в одном потоке
// (см. game.Game).
type Store struct {
	voxels map[vec.Vec3]Voxel
}

// NewStore создаёт пустое хранилище
func NewStore() *Store {
	return &Store{
		voxels: make(map[vec.Vec3]Voxel),
	}
}

// Put вставляет или молча заменяет воксель.
// Координата записи всегда совпадает с ключом.
func (s *Store) Put(coord vec.Vec3, voxel Voxel) {
	voxel.Coord = coord
	s.voxels[coord] = voxel
}

// Get возвращает воксель по координатам
func (s *Store) Get(coord vec.Vec3) (Voxel, bool) {
	v, ok := s.voxels[coord]
	return v, ok
}

// Remove удаляет воксель и возвращает его прежнее значение
func (s *Store) Remove(coord vec.Vec3) (Voxel, bool) {
	v, ok := s.voxels[coord]
	if ok {
		delete(s.voxels, coord)
	}
	return v, ok
}

// Contains проверяет, занята ли координата
func (s *Store) Contains(coord vec.Vec3) bool {
	_, ok := s.voxels[coord]
	return ok
}

// Len возвращает количество вокселей
func (s *Store) Len() int {
	return len(s.voxels)
}

// Range обходит воксели в порядке map. Обход прекращается, если fn вернула false.
func (s *Store) Range(fn func(v Voxel) bool) {
	for _, v := range s.voxels {
		if !fn(v) {
			return
		}
	}
}

// Column возвращает воксели колонки (x, z), отсортированные по y
func (s *Store) Column(x, z int) []Voxel {
	var column []Voxel
	for coord, v := range s.voxels {
		if coord.X == x && coord.Z == z {
			column = append(column, v)
		}
	}
	sort.Slice(column, func(i, j int) bool { return column[i].Coord.Y < column[j].Coord.Y })
	return column
}
