package world

import (
	"context"
	"fmt"

	"github.com/annel0/voxel-sandbox/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// WorldGenerator заполняет Store по полю высот, колонка за колонкой
type WorldGenerator struct {
	store   *Store
	field   *Heightfield
	scene   *SceneBinding
	metrics *Metrics
	tracer  trace.Tracer
}

// NewWorldGenerator создаёт новый генератор мира
func NewWorldGenerator(store *Store, field *Heightfield, scene *SceneBinding, metrics *Metrics) *WorldGenerator {
	return &WorldGenerator{
		store:   store,
		field:   field,
		scene:   scene,
		metrics: metrics,
		tracer:  otel.Tracer("github.com/annel0/voxel-sandbox/internal/world"),
	}
}

// Generate заполняет колонки [0, width) x [0, height).
// Обход детерминирован: x во внешнем цикле, z во внутреннем.
// Возвращает количество размещённых вокселей.
func (wg *WorldGenerator) Generate(ctx context.Context, width, height int) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrOutOfRange, width, height)
	}

	ctx, span := wg.tracer.Start(ctx, "world.generate", trace.WithAttributes(
		attribute.Int("world.width", width),
		attribute.Int("world.height", height),
	))
	defer span.End()

	placed := 0
	kinds := make(map[ColumnKind]int)

	for x := 0; x < width; x++ {
		// Проверяем отмену раз на ряд колонок
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "cancelled")
			return placed, fmt.Errorf("генерация прервана на x=%d: %w", x, err)
		}

		for z := 0; z < height; z++ {
			column := wg.field.Column(x, z)
			kinds[column.Kind]++

			for _, v := range column.Layers() {
				wg.store.Put(v.Coord, v)
				if wg.scene != nil {
					wg.scene.Spawn(v)
				}
				placed++
			}
		}
	}

	wg.metrics.setVoxels(wg.store.Len())
	span.SetAttributes(attribute.Int("world.voxels", placed))

	logging.Info("🌍 Мир %dx%d сгенерирован: %d вокселей (суша=%d, вода=%d, пляж=%d, пусто=%d)",
		width, height, placed,
		kinds[ColumnLand], kinds[ColumnSubmerged], kinds[ColumnBeach], kinds[ColumnOpen])

	return placed, nil
}
