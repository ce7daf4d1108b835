package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/voxel-sandbox/internal/api"
	"github.com/annel0/voxel-sandbox/internal/config"
	"github.com/annel0/voxel-sandbox/internal/game"
	"github.com/annel0/voxel-sandbox/internal/logging"
	"github.com/annel0/voxel-sandbox/internal/observability"
	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации (или VOXEL_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	if err := logging.InitDefaultLogger(cfg.Logging.Component); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	defer logging.GetLoggerManager().CloseAll()

	level := cfg.Logging.ConsoleLevel()
	logging.SetConsoleLevel(level)
	apiLogger := logging.GetAPILogger()
	if err := logging.GetLoggerManager().SetLogLevel(apiLogger.Component(), level, logging.TRACE); err != nil {
		logging.Warn("⚠️ Уровень логирования API не применён: %v", err)
	}

	logging.Info("🎮 Запуск Voxel Sandbox: мир %dx%d, шум=%s, сид=%d",
		cfg.World.Width, cfg.World.Height, cfg.World.Noise, cfg.World.Seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg.Telemetry)
	if err != nil {
		log.Fatalf("❌ Ошибка инициализации OpenTelemetry: %v", err)
	}

	// === МИР ===
	g, err := game.New(cfg, nil)
	if err != nil {
		log.Fatalf("❌ Ошибка создания мира: %v", err)
	}
	start := time.Now()
	if err := g.Setup(ctx); err != nil {
		log.Fatalf("❌ Ошибка подготовки мира: %v", err)
	}
	logging.Debug("Мир подготовлен за %s", time.Since(start))

	loopDone := make(chan error, 1)
	go func() { loopDone <- g.Run(ctx) }()

	// === REST API ===
	gin.SetMode(gin.ReleaseMode)
	restServer := api.NewRestServer(api.Config{
		Addr:        cfg.Server.RESTAddr(),
		World:       g,
		ServiceName: cfg.Telemetry.ServiceName,
		Logger:      apiLogger,
	})
	restServer.Start()

	logging.Info("✅ Все сервисы запущены")
	logging.Info("   ❤️  Health check: http://localhost%s/health", cfg.Server.RESTAddr())
	logging.Info("💡 curl -X POST http://localhost%s/api/edit/place -H 'Content-Type: application/json' -d '{\"origin\":[16.5,20,16.5],\"direction\":[0,-1,0]}'", cfg.Server.RESTAddr())

	<-ctx.Done()
	logging.Info("📡 Получен сигнал завершения, останавливаемся...")

	// === GRACEFUL SHUTDOWN ===
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		logging.Error("❌ Ошибка остановки REST API: %v", err)
	}
	if err := <-loopDone; err != nil {
		logging.Error("❌ Игровой цикл завершился с ошибкой: %v", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logging.Error("❌ Ошибка остановки OpenTelemetry: %v", err)
	}

	logging.Info("👋 Сервер успешно остановлен")
}
