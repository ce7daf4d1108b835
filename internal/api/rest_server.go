package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/annel0/voxel-sandbox/internal/game"
	"github.com/annel0/voxel-sandbox/internal/logging"
	"github.com/annel0/voxel-sandbox/internal/middleware"
	"github.com/annel0/voxel-sandbox/internal/mob"
	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/gin-gonic/gin"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// World - то, что REST API знает об игровом мире.
// Все вызовы выполняются в потоке игрового цикла.
type World interface {
	PlaceFromRay(ctx context.Context, origin, direction mgl64.Vec3) (game.EditOutcome, error)
	BreakFromRay(ctx context.Context, origin, direction mgl64.Vec3) (game.EditOutcome, error)
	Voxel(ctx context.Context, coord vec.Vec3) (game.VoxelInfo, bool, error)
	Column(ctx context.Context, x, z int) (game.ColumnInfo, error)
	Stats(ctx context.Context) (game.Stats, error)
	Mobs(ctx context.Context) ([]game.MobInfo, error)
	DamageMob(ctx context.Context, name string, amount int) (mob.DamageResult, error)
}

// RestServer представляет отладочный REST API
type RestServer struct {
	router     *gin.Engine
	world      World
	addr       string
	metrics    *ServerMetrics
	prom       *middleware.PrometheusMiddleware
	httpServer *http.Server
}

// Config содержит конфигурацию для REST сервера
type Config struct {
	Addr        string                // адрес для запуска сервера
	World       World                 // игровой мир
	ServiceName string                // имя сервиса для трассировки
	Registerer  prometheus.Registerer // nil - дефолтный регистр
	Gatherer    prometheus.Gatherer   // nil - дефолтный регистр
	Logger      *logging.Logger       // nil - глобальный лог
}

// NewRestServer создает новый REST API сервер
func NewRestServer(config Config) *RestServer {
	if config.Addr == "" {
		config.Addr = ":8088"
	}
	if config.ServiceName == "" {
		config.ServiceName = "voxel-sandbox"
	}

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	// === Observability middleware ===
	router.Use(otelgin.Middleware(config.ServiceName))
	router.Use(middleware.NewRequestLogger(config.Logger).Handler())

	promMw := middleware.NewPrometheusMiddleware("voxel_api", config.Registerer)
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router, config.Gatherer)

	server := &RestServer{
		router:  router,
		world:   config.World,
		addr:    config.Addr,
		metrics: NewServerMetrics(),
		prom:    promMw,
	}
	server.setupRoutes()
	return server
}

// setupRoutes настраивает маршруты REST API
func (rs *RestServer) setupRoutes() {
	rs.router.GET("/health", rs.handleHealth)

	api := rs.router.Group("/api")
	{
		api.GET("/stats", rs.handleStats)
		api.GET("/server", rs.handleServerInfo)
		api.GET("/voxels/:x/:y/:z", rs.handleGetVoxel)
		api.GET("/columns/:x/:z", rs.handleGetColumn)

		edit := api.Group("/edit")
		edit.POST("/place", rs.handlePlace)
		edit.POST("/break", rs.handleBreak)

		api.GET("/mobs", rs.handleGetMobs)
		api.POST("/mobs/:name/damage", rs.handleDamageMob)
	}
}

// GenericResponse представляет общий ответ API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// RayRequest - луч из точки origin в направлении direction
type RayRequest struct {
	Origin    *[3]float64 `json:"origin" binding:"required"`
	Direction *[3]float64 `json:"direction" binding:"required"`
}

// DamageRequest - урон мобу
type DamageRequest struct {
	Amount int `json:"amount" binding:"required"`
}

// handleHealth проверка состояния сервера
func (rs *RestServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

// handleStats возвращает сводку по миру
func (rs *RestServer) handleStats(c *gin.Context) {
	stats, err := rs.world.Stats(c.Request.Context())
	if err != nil {
		rs.worldUnavailable(c, err)
		return
	}
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Статистика получена",
		Data:    stats,
	})
}

// handleServerInfo возвращает метрики процесса
func (rs *RestServer) handleServerInfo(c *gin.Context) {
	snap := rs.metrics.Snapshot()
	if snap.CPUSource == "none" {
		logging.Debug("Загрузка CPU недоступна")
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Информация о сервере",
		Data: gin.H{
			"name":        "Voxel Sandbox",
			"process":     snap,
			"server_time": time.Now().Unix(),
		},
	})
}

// handleGetVoxel возвращает воксель по координатам
func (rs *RestServer) handleGetVoxel(c *gin.Context) {
	coords, ok := intParams(c, "x", "y", "z")
	if !ok {
		return
	}
	coord := vec.Vec3{X: coords[0], Y: coords[1], Z: coords[2]}

	info, found, err := rs.world.Voxel(c.Request.Context(), coord)
	if err != nil {
		rs.worldUnavailable(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, GenericResponse{
			Success: false,
			Message: "Вокселя нет в " + coord.String(),
		})
		return
	}
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Воксель найден", Data: info})
}

// handleGetColumn возвращает колонку поля высот
func (rs *RestServer) handleGetColumn(c *gin.Context) {
	coords, ok := intParams(c, "x", "z")
	if !ok {
		return
	}

	info, err := rs.world.Column(c.Request.Context(), coords[0], coords[1])
	if err != nil {
		rs.worldUnavailable(c, err)
		return
	}
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Колонка получена", Data: info})
}

// handlePlace ставит блок по лучу
func (rs *RestServer) handlePlace(c *gin.Context) {
	rs.handleEdit(c, "place", rs.world.PlaceFromRay)
}

// handleBreak разрушает блок по лучу
func (rs *RestServer) handleBreak(c *gin.Context) {
	rs.handleEdit(c, "break", rs.world.BreakFromRay)
}

func (rs *RestServer) handleEdit(c *gin.Context, action string, edit func(context.Context, mgl64.Vec3, mgl64.Vec3) (game.EditOutcome, error)) {
	var req RayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Неверный формат запроса: " + err.Error(),
		})
		return
	}
	direction := mgl64.Vec3(*req.Direction)
	if direction.Len() == 0 {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Нулевое направление луча",
		})
		return
	}

	out, err := edit(c.Request.Context(), mgl64.Vec3(*req.Origin), direction)
	if err != nil {
		rs.worldUnavailable(c, err)
		return
	}
	rs.prom.ObserveEdit(action, out.Result)

	// Отказ контроллера - штатный исход, а не ошибка запроса
	c.JSON(http.StatusOK, GenericResponse{
		Success: out.Result == "placed" || out.Result == "broken",
		Message: out.Result,
		Data:    out,
	})
}

// handleGetMobs возвращает живых мобов
func (rs *RestServer) handleGetMobs(c *gin.Context) {
	mobs, err := rs.world.Mobs(c.Request.Context())
	if err != nil {
		rs.worldUnavailable(c, err)
		return
	}
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Мобы получены",
		Data: map[string]interface{}{
			"mobs":  mobs,
			"total": len(mobs),
		},
	})
}

// handleDamageMob наносит урон мобу
func (rs *RestServer) handleDamageMob(c *gin.Context) {
	var req DamageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Неверный формат запроса: " + err.Error(),
		})
		return
	}

	name := c.Param("name")
	res, err := rs.world.DamageMob(c.Request.Context(), name, req.Amount)
	if errors.Is(err, mob.ErrUnknownMob) {
		c.JSON(http.StatusNotFound, GenericResponse{
			Success: false,
			Message: "Моб не найден: " + name,
		})
		return
	}
	if err != nil {
		rs.worldUnavailable(c, err)
		return
	}
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: res.String(),
		Data:    gin.H{"name": name, "result": res.String()},
	})
}

func (rs *RestServer) worldUnavailable(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusServiceUnavailable, GenericResponse{
		Success: false,
		Message: "Мир недоступен: " + err.Error(),
	})
}

// intParams разбирает целочисленные параметры пути; при ошибке отвечает 400
func intParams(c *gin.Context, names ...string) ([]int, bool) {
	out := make([]int, len(names))
	for i, name := range names {
		v, err := strconv.Atoi(c.Param(name))
		if err != nil {
			c.JSON(http.StatusBadRequest, GenericResponse{
				Success: false,
				Message: fmt.Sprintf("Параметр %s должен быть целым числом", name),
			})
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// Handler возвращает http.Handler сервера
func (rs *RestServer) Handler() http.Handler {
	return rs.router
}

// Start запускает REST сервер в отдельной горутине
func (rs *RestServer) Start() {
	rs.httpServer = &http.Server{
		Addr:              rs.addr,
		Handler:           rs.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := rs.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("❌ Ошибка REST API сервера: %v", err)
		}
	}()

	logging.Info("✅ REST API сервер запущен на http://localhost%s", rs.addr)
	logging.Info("📋 Доступные эндпоинты:")
	logging.Info("   GET  /health                  - Проверка состояния")
	logging.Info("   GET  /metrics                 - Метрики Prometheus")
	logging.Info("   GET  /api/stats               - Сводка по миру")
	logging.Info("   GET  /api/server              - Метрики процесса")
	logging.Info("   GET  /api/voxels/:x/:y/:z     - Воксель")
	logging.Info("   GET  /api/columns/:x/:z       - Колонка поля высот")
	logging.Info("   POST /api/edit/place|break    - Редактирование по лучу")
	logging.Info("   GET  /api/mobs                - Живые мобы")
	logging.Info("   POST /api/mobs/:name/damage   - Урон мобу")
}

// Shutdown останавливает REST сервер
func (rs *RestServer) Shutdown(ctx context.Context) error {
	if rs.httpServer == nil {
		return nil
	}
	logging.Info("🛑 Остановка REST API сервера...")
	if err := rs.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("остановка HTTP сервера: %w", err)
	}
	return nil
}
