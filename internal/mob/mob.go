package mob

import (
	"errors"
	"fmt"

	"github.com/annel0/voxel-sandbox/internal/logging"
	"github.com/annel0/voxel-sandbox/internal/world"
	"github.com/go-gl/mathgl/mgl64"
)

// Ошибки ростера
var (
	ErrUnknownMob   = errors.New("mob: неизвестный моб")
	ErrDuplicateMob = errors.New("mob: моб с таким именем уже есть")
)

// Renderer создаёт и уничтожает модели мобов
type Renderer interface {
	SpawnModel(name string, pos mgl64.Vec3) (world.Handle, error)
	DestroyModel(h world.Handle) error
}

// DamageResult - исход удара
type DamageResult uint8

const (
	DamageHurt        DamageResult = iota // Моб ранен
	DamageKilled                          // Моб умер от удара
	DamageAlreadyDead                     // Удар по мёртвому мобу
	DamageIgnored                         // Неположительный урон
)

// String возвращает имя исхода
func (r DamageResult) String() string {
	switch r {
	case DamageHurt:
		return "hurt"
	case DamageKilled:
		return "killed"
	case DamageAlreadyDead:
		return "already_dead"
	case DamageIgnored:
		return "ignored"
	default:
		return "unknown"
	}
}

// Mob - моб с запасом здоровья
type Mob struct {
	spec   Spec
	hp     int
	dead   bool
	handle world.Handle
	roster *Roster
}

// Name возвращает имя моба
func (m *Mob) Name() string { return m.spec.Name }

// HP возвращает текущее здоровье
func (m *Mob) HP() int { return m.hp }

// Dead возвращает true, если моб мёртв
func (m *Mob) Dead() bool { return m.dead }

// Position возвращает позицию появления
func (m *Mob) Position() mgl64.Vec3 { return m.spec.Position }

// TakeDamage уменьшает здоровье; при hp <= 0 моб умирает
func (m *Mob) TakeDamage(amount int) DamageResult {
	if m.dead {
		return DamageAlreadyDead
	}
	if amount <= 0 {
		return DamageIgnored
	}

	m.hp -= amount
	m.roster.play(m.spec.HurtSounds)
	logging.Debug("Моб %s получил %d урона, hp=%d", m.spec.Name, amount, m.hp)

	if m.hp <= 0 {
		m.die()
		return DamageKilled
	}
	return DamageHurt
}

// die проигрывает звук смерти, убирает модель и отвязывает моба от ростера
func (m *Mob) die() {
	if m.dead {
		return
	}
	m.dead = true
	m.roster.play(m.spec.DeathSounds)
	m.roster.detach(m)
	logging.Info("💀 Моб %s погиб", m.spec.Name)
}

// Roster хранит живых мобов по имени.
// Используется из одного потока игрового цикла.
type Roster struct {
	renderer Renderer
	audio    world.Audio
	volume   float64
	mobs     map[string]*Mob
	order    []string
}

// NewRoster создаёт пустой ростер; renderer и audio могут быть nil
func NewRoster(renderer Renderer, audio world.Audio) *Roster {
	return &Roster{
		renderer: renderer,
		audio:    audio,
		volume:   world.DefaultVolume,
		mobs:     make(map[string]*Mob),
	}
}

// Spawn добавляет моба и создаёт его модель
func (r *Roster) Spawn(spec Spec) (*Mob, error) {
	if spec.Name == "" || spec.HP <= 0 {
		return nil, fmt.Errorf("некорректное описание моба %q (hp=%d)", spec.Name, spec.HP)
	}
	if _, exists := r.mobs[spec.Name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateMob, spec.Name)
	}

	m := &Mob{spec: spec, hp: spec.HP, roster: r}
	if r.renderer == nil {
		logging.Warn("Модель моба %s не создана: %v", spec.Name, world.ErrMissingCollaborator)
	} else if h, err := r.renderer.SpawnModel(spec.Model, spec.Position); err != nil {
		logging.Warn("Модель моба %s не создана: %v", spec.Name, err)
	} else {
		m.handle = h
	}

	r.mobs[spec.Name] = m
	r.order = append(r.order, spec.Name)
	return m, nil
}

// SpawnAll добавляет всех мобов из списка
func (r *Roster) SpawnAll(specs []Spec) error {
	for _, spec := range specs {
		if _, err := r.Spawn(spec); err != nil {
			return err
		}
	}
	return nil
}

// Get возвращает живого моба по имени
func (r *Roster) Get(name string) (*Mob, bool) {
	m, ok := r.mobs[name]
	return m, ok
}

// Damage наносит урон мобу по имени
func (r *Roster) Damage(name string, amount int) (DamageResult, error) {
	m, ok := r.mobs[name]
	if !ok {
		return DamageIgnored, fmt.Errorf("%w: %s", ErrUnknownMob, name)
	}
	return m.TakeDamage(amount), nil
}

// Alive возвращает живых мобов в порядке появления
func (r *Roster) Alive() []*Mob {
	out := make([]*Mob, 0, len(r.order))
	for _, name := range r.order {
		if m, ok := r.mobs[name]; ok {
			out = append(out, m)
		}
	}
	return out
}

// Len возвращает количество живых мобов
func (r *Roster) Len() int {
	return len(r.mobs)
}

func (r *Roster) detach(m *Mob) {
	delete(r.mobs, m.spec.Name)
	for i, name := range r.order {
		if name == m.spec.Name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	if m.handle == "" || r.renderer == nil {
		return
	}
	if err := r.renderer.DestroyModel(m.handle); err != nil {
		logging.Warn("Модель моба %s не уничтожена: %v", m.spec.Name, err)
	}
	m.handle = ""
}

func (r *Roster) play(set world.SoundSet) {
	if r.audio == nil {
		return
	}
	if err := r.audio.PlayRandomFrom(set, r.volume); err != nil {
		logging.Warn("Звук %s не проигран: %v", set.Name, err)
	}
}
