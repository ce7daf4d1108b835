package block

import (
	"fmt"
	"strings"
)

// MaterialID представляет идентификатор материала блока.
// Ядро хранит только идентификатор, текстура выбирается снаружи.
type MaterialID uint16

// Константы материалов. Нулевое значение не является материалом.
const (
	MaterialNone  MaterialID = iota // 0
	MaterialGrass                   // 1
	MaterialDirt                    // 2
	MaterialSand                    // 3
	MaterialWater                   // 4
	MaterialStone                   // 5
)

// Properties описывает внешний вид и свойства материала
type Properties struct {
	Name         string
	Texture      string
	Translucent  bool // Полупрозрачный материал (вода)
	DoubleSided  bool // Рисовать обе стороны граней
	Destructible bool // Можно ли разрушить блок игроком
}

var registry = map[MaterialID]Properties{
	MaterialGrass: {Name: "grass", Texture: "grass.png", DoubleSided: true, Destructible: true},
	MaterialDirt:  {Name: "dirt", Texture: "dirt.png", DoubleSided: true, Destructible: true},
	MaterialSand:  {Name: "sand", Texture: "sand.png", DoubleSided: true, Destructible: true},
	MaterialWater: {Name: "water", Texture: "water.png", Translucent: true, DoubleSided: true, Destructible: true},
	MaterialStone: {Name: "stone", Texture: "textures/stone.png", DoubleSided: true, Destructible: true},
}

// Get возвращает свойства для указанного материала
func Get(id MaterialID) (Properties, bool) {
	props, exists := registry[id]
	return props, exists
}

// IsValid проверяет, является ли ID допустимым материалом
func IsValid(id MaterialID) bool {
	_, exists := registry[id]
	return exists
}

// Destructible возвращает свойство разрушаемости по умолчанию для материала
func Destructible(id MaterialID) bool {
	props, exists := registry[id]
	return exists && props.Destructible
}

// String возвращает имя материала
func (id MaterialID) String() string {
	if props, exists := registry[id]; exists {
		return props.Name
	}
	return fmt.Sprintf("material(%d)", uint16(id))
}

// Parse находит материал по имени (без учета регистра)
func Parse(name string) (MaterialID, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for id, props := range registry {
		if props.Name == name {
			return id, nil
		}
	}
	return MaterialNone, fmt.Errorf("неизвестный материал %q", name)
}
