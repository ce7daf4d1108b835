package game

import (
	"context"

	"github.com/annel0/voxel-sandbox/internal/mob"
	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world"
	"github.com/annel0/voxel-sandbox/internal/world/block"
	"github.com/go-gl/mathgl/mgl64"
)

// EditOutcome - результат редактирования по лучу
type EditOutcome struct {
	Hit    bool     `json:"hit"`
	Coord  vec.Vec3 `json:"coord"`
	Result string   `json:"result"`
}

// VoxelInfo - публичное представление вокселя
type VoxelInfo struct {
	Coord        vec.Vec3 `json:"coord"`
	Material     string   `json:"material"`
	Destructible bool     `json:"destructible"`
}

// ColumnInfo - колонка поля высот вместе с фактически стоящими вокселями
type ColumnInfo struct {
	X      int         `json:"x"`
	Z      int         `json:"z"`
	Height int         `json:"height"`
	Kind   string      `json:"kind"`
	Voxels []VoxelInfo `json:"voxels"`
}

// MobInfo - состояние моба
type MobInfo struct {
	Name     string     `json:"name"`
	HP       int        `json:"hp"`
	Position [3]float64 `json:"position"`
}

// Stats - сводка по миру
type Stats struct {
	Tick          uint64 `json:"tick"`
	Voxels        int    `json:"voxels"`
	SceneBlocks   int    `json:"scene_blocks"`
	EditState     string `json:"edit_state"`
	PendingTimers int    `json:"pending_timers"`
	Mobs          int    `json:"mobs"`
	SoundsPlayed  uint64 `json:"sounds_played"`
}

// Reach возвращает дальность луча редактирования
func (g *Game) Reach() float64 {
	return g.cfg.Edit.Reach
}

// PlaceFromRay ставит каменный блок на грань, в которую попал луч
func (g *Game) PlaceFromRay(ctx context.Context, origin, direction mgl64.Vec3) (EditOutcome, error) {
	var out EditOutcome
	err := g.Do(ctx, func() {
		hit, ok := g.raycaster.CastRay(origin, direction, g.cfg.Edit.Reach)
		if !ok {
			out.Result = "miss"
			return
		}
		coord, res := g.editor.Place(hit.Position, hit.Normal, block.MaterialStone)
		out = EditOutcome{Hit: true, Coord: coord, Result: res.String()}
	})
	return out, err
}

// BreakFromRay разрушает блок, в который попал луч
func (g *Game) BreakFromRay(ctx context.Context, origin, direction mgl64.Vec3) (EditOutcome, error) {
	var out EditOutcome
	err := g.Do(ctx, func() {
		hit, ok := g.raycaster.CastRay(origin, direction, g.cfg.Edit.Reach)
		if !ok {
			out.Result = "miss"
			return
		}
		coord := hit.Block()
		out = EditOutcome{Hit: true, Coord: coord, Result: g.editor.Break(coord).String()}
	})
	return out, err
}

// Voxel возвращает воксель по координатам
func (g *Game) Voxel(ctx context.Context, coord vec.Vec3) (VoxelInfo, bool, error) {
	var (
		info  VoxelInfo
		found bool
	)
	err := g.Do(ctx, func() {
		v, ok := g.store.Get(coord)
		if ok {
			info, found = voxelInfo(v), true
		}
	})
	return info, found, err
}

// Column возвращает колонку поля высот и её текущее содержимое
func (g *Game) Column(ctx context.Context, x, z int) (ColumnInfo, error) {
	var info ColumnInfo
	err := g.Do(ctx, func() {
		c := g.field.Column(x, z)
		info = ColumnInfo{X: c.X, Z: c.Z, Height: c.Height, Kind: c.Kind.String()}
		for _, v := range g.store.Column(x, z) {
			info.Voxels = append(info.Voxels, voxelInfo(v))
		}
	})
	return info, err
}

// Stats возвращает сводку по миру
func (g *Game) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := g.Do(ctx, func() {
		s = Stats{
			Tick:          g.tick,
			Voxels:        g.store.Len(),
			SceneBlocks:   g.scene.Blocks(),
			EditState:     g.editor.State().String(),
			PendingTimers: g.frame.Pending(),
			Mobs:          g.roster.Len(),
			SoundsPlayed:  g.audio.Plays(),
		}
	})
	return s, err
}

// Mobs возвращает живых мобов
func (g *Game) Mobs(ctx context.Context) ([]MobInfo, error) {
	var out []MobInfo
	err := g.Do(ctx, func() {
		for _, m := range g.roster.Alive() {
			out = append(out, mobInfo(m))
		}
	})
	return out, err
}

// DamageMob наносит урон мобу по имени
func (g *Game) DamageMob(ctx context.Context, name string, amount int) (mob.DamageResult, error) {
	var (
		res    mob.DamageResult
		dmgErr error
	)
	if err := g.Do(ctx, func() { res, dmgErr = g.roster.Damage(name, amount) }); err != nil {
		return mob.DamageIgnored, err
	}
	return res, dmgErr
}

func voxelInfo(v world.Voxel) VoxelInfo {
	return VoxelInfo{Coord: v.Coord, Material: v.Material.String(), Destructible: v.Destructible}
}

func mobInfo(m *mob.Mob) MobInfo {
	p := m.Position()
	return MobInfo{Name: m.Name(), HP: m.HP(), Position: [3]float64{p.X(), p.Y(), p.Z()}}
}
