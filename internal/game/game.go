package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/annel0/voxel-sandbox/internal/config"
	"github.com/annel0/voxel-sandbox/internal/headless"
	"github.com/annel0/voxel-sandbox/internal/logging"
	"github.com/annel0/voxel-sandbox/internal/mob"
	"github.com/annel0/voxel-sandbox/internal/noise"
	"github.com/annel0/voxel-sandbox/internal/scheduler"
	"github.com/annel0/voxel-sandbox/internal/world"
	"github.com/prometheus/client_golang/prometheus"
)

// ErrStopped - игровой цикл завершён, команды больше не принимаются
var ErrStopped = errors.New("game: цикл остановлен")

type command struct {
	fn   func()
	done chan struct{}
}

// Game владеет миром и выполняет все его изменения в одном потоке.
// Внешние вызовы попадают в цикл через Do.
type Game struct {
	cfg *config.Config

	store     *world.Store
	field     *world.Heightfield
	scene     *headless.Scene
	audio     *headless.Audio
	binding   *world.SceneBinding
	generator *world.WorldGenerator
	editor    *world.EditController
	frame     *scheduler.Frame
	raycaster *headless.Raycaster
	roster    *mob.Roster
	metrics   *world.Metrics

	commands chan command
	stopped  chan struct{}
	tick     uint64
}

// New собирает мир по конфигурации. reg может быть nil.
func New(cfg *config.Config, reg prometheus.Registerer) (*Game, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	source, err := noise.New(cfg.World.Noise, cfg.World.Seed, cfg.World.PerlinParams())
	if err != nil {
		return nil, err
	}
	return newWithSource(cfg, reg, source)
}

func newWithSource(cfg *config.Config, reg prometheus.Registerer, source noise.Source) (*Game, error) {
	field, err := world.NewHeightfield(source, cfg.World.Frequency, cfg.World.Amplitude)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:      cfg,
		store:    world.NewStore(),
		field:    field,
		scene:    headless.NewScene(),
		audio:    headless.NewAudio(cfg.World.Seed),
		frame:    scheduler.NewFrame(),
		metrics:  world.NewMetrics(reg),
		commands: make(chan command, 256),
		stopped:  make(chan struct{}),
	}
	g.binding = world.NewSceneBinding(g.scene, g.metrics)
	g.generator = world.NewWorldGenerator(g.store, field, g.binding, g.metrics)
	g.raycaster = headless.NewRaycaster(g.store)
	g.roster = mob.NewRoster(g.scene, g.audio)

	editCfg := world.DefaultEditConfig()
	editCfg.Cooldown = cfg.Edit.Cooldown()
	editCfg.Volume = cfg.Edit.Volume
	g.editor = world.NewEditController(g.store, g.binding, g.audio, g.frame, editCfg, g.metrics)

	return g, nil
}

// Setup генерирует мир и расставляет мобов. Вызывается до Run.
func (g *Game) Setup(ctx context.Context) error {
	if _, err := g.generator.Generate(ctx, g.cfg.World.Width, g.cfg.World.Height); err != nil {
		return fmt.Errorf("генерация мира: %w", err)
	}

	if g.cfg.World.SpawnMobs {
		if err := g.roster.SpawnAll(mob.DefaultRoster()); err != nil {
			return fmt.Errorf("появление мобов: %w", err)
		}
		logging.Info("🐄 Мобов на карте: %d", g.roster.Len())
	}
	return nil
}

// Run крутит цикл с частотой tick_rate до отмены контекста.
// Каждый тик сначала выполняет накопившиеся команды, затем продвигает таймеры.
func (g *Game) Run(ctx context.Context) error {
	interval := g.cfg.Loop.TickInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer close(g.stopped)
	defer g.editor.Close()

	logging.Info("▶️ Игровой цикл запущен: %d тиков/с", g.cfg.Loop.TickRate)
	for {
		select {
		case <-ctx.Done():
			logging.Info("⏹️ Игровой цикл остановлен на тике %d", g.tick)
			return nil
		case <-ticker.C:
			g.step(interval)
		}
	}
}

// Do ставит fn в очередь цикла и ждёт её выполнения
func (g *Game) Do(ctx context.Context, fn func()) error {
	cmd := command{fn: fn, done: make(chan struct{})}

	select {
	case g.commands <- cmd:
	case <-ctx.Done():
		return ctx.Err()
	case <-g.stopped:
		return ErrStopped
	}

	select {
	case <-cmd.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-g.stopped:
		select {
		case <-cmd.done:
			return nil
		default:
			return ErrStopped
		}
	}
}

// step выполняет один тик: очередь команд, затем таймеры
func (g *Game) step(dt time.Duration) {
	g.tick++
	g.drain()
	if fired := g.frame.Advance(dt); fired > 0 {
		logging.Trace("Тик %d: сработало таймеров %d", g.tick, fired)
	}
}

func (g *Game) drain() {
	for {
		select {
		case cmd := <-g.commands:
			cmd.fn()
			close(cmd.done)
		default:
			return
		}
	}
}
