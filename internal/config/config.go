package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/annel0/voxel-sandbox/internal/logging"
	"github.com/annel0/voxel-sandbox/internal/noise"
	"github.com/annel0/voxel-sandbox/internal/world"
	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации приложения.
// Читается один раз при старте и дальше не меняется.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Edit      EditConfig      `yaml:"edit"`
	Loop      LoopConfig      `yaml:"loop"`
	Server    ServerConfig    `yaml:"server"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type WorldConfig struct {
	Seed      int64   `yaml:"seed"`
	Noise     string  `yaml:"noise"` // perlin | simplex
	Frequency float64 `yaml:"frequency"`
	Amplitude int     `yaml:"amplitude"`
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"` // Количество колонок по z
	Perlin    struct {
		Alpha   float64 `yaml:"alpha"`
		Beta    float64 `yaml:"beta"`
		Octaves int32   `yaml:"octaves"`
	} `yaml:"perlin"`
	SpawnMobs bool `yaml:"spawn_mobs"`
}

type EditConfig struct {
	CooldownSeconds float64 `yaml:"cooldown_seconds"`
	Reach           float64 `yaml:"reach"`
	Volume          float64 `yaml:"volume"`
}

type LoopConfig struct {
	TickRate int `yaml:"tick_rate"`
}

type ServerConfig struct {
	RESTPort int `yaml:"rest_port"`
}

type TelemetryConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Endpoint    string  `yaml:"endpoint"`     // host:port коллектора; пусто - OTEL_EXPORTER_OTLP_ENDPOINT или localhost:4318
	SampleRatio float64 `yaml:"sample_ratio"` // Доля корневых трейсов, 0..1
}

type LoggingConfig struct {
	Component string `yaml:"component"`
	Level     string `yaml:"level"` // Уровень вывода в консоль: trace, debug, info, warn, error
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	cfg := &Config{}
	cfg.World.Seed = 1
	cfg.World.Noise = noise.AlgorithmPerlin
	cfg.World.Frequency = world.DefaultFrequency
	cfg.World.Amplitude = world.DefaultAmplitude
	cfg.World.Width = 32
	cfg.World.Height = 32
	p := noise.DefaultPerlinParams()
	cfg.World.Perlin.Alpha = p.Alpha
	cfg.World.Perlin.Beta = p.Beta
	cfg.World.Perlin.Octaves = p.Octaves
	cfg.World.SpawnMobs = true
	cfg.Edit.CooldownSeconds = world.DefaultCooldown.Seconds()
	cfg.Edit.Reach = 8
	cfg.Edit.Volume = world.DefaultVolume
	cfg.Loop.TickRate = 60
	cfg.Server.RESTPort = 8088
	cfg.Telemetry.ServiceName = "voxel-sandbox"
	cfg.Telemetry.SampleRatio = 1
	cfg.Logging.Component = "server"
	cfg.Logging.Level = "info"
	return cfg
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать из ENV VOXEL_CONFIG; без файла возвращает дефолты.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("VOXEL_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("чтение конфигурации %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("разбор конфигурации %s: %w", path, err)
		}
	}

	cfg.Server.RESTPort = getPortWithEnvFallback(cfg.Server.RESTPort, "VOXEL_REST_PORT", 8088)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет конфигурацию; ошибка означает отказ от запуска
func (c *Config) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("config: мир %dx%d: %w", c.World.Width, c.World.Height, world.ErrOutOfRange)
	}
	if c.World.Frequency <= 0 {
		return fmt.Errorf("config: частота должна быть положительной: %v", c.World.Frequency)
	}
	switch c.World.Noise {
	case "", noise.AlgorithmPerlin, noise.AlgorithmSimplex:
	default:
		return fmt.Errorf("config: неизвестный алгоритм шума %q", c.World.Noise)
	}
	if c.Edit.CooldownSeconds < 0 {
		return fmt.Errorf("config: отрицательная пауза %v", c.Edit.CooldownSeconds)
	}
	if c.Edit.Reach <= 0 {
		return fmt.Errorf("config: дальность должна быть положительной: %v", c.Edit.Reach)
	}
	if c.Edit.Volume < 0 || c.Edit.Volume > 1 {
		return fmt.Errorf("config: громкость %v вне [0, 1]", c.Edit.Volume)
	}
	if c.Loop.TickRate <= 0 {
		return fmt.Errorf("config: частота тиков должна быть положительной: %d", c.Loop.TickRate)
	}
	// Выше 1e9 Гц интервал округляется до нуля, а time.NewTicker(0) паникует
	if c.Loop.TickInterval() <= 0 {
		return fmt.Errorf("config: частота тиков %d слишком велика", c.Loop.TickRate)
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("config: доля сэмплирования %v вне [0, 1]", c.Telemetry.SampleRatio)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Cooldown возвращает паузу после установки блока
func (e EditConfig) Cooldown() time.Duration {
	return time.Duration(e.CooldownSeconds * float64(time.Second))
}

// PerlinParams возвращает параметры шума Перлина
func (w WorldConfig) PerlinParams() noise.PerlinParams {
	return noise.PerlinParams{Alpha: w.Perlin.Alpha, Beta: w.Perlin.Beta, Octaves: w.Perlin.Octaves}
}

// TickInterval возвращает длительность одного тика
func (l LoopConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(l.TickRate)
}

// ConsoleLevel возвращает уровень консольного вывода; неизвестное имя даёт INFO
func (l LoggingConfig) ConsoleLevel() logging.LogLevel {
	level, err := logging.ParseLevel(l.Level)
	if err != nil {
		return logging.INFO
	}
	return level
}

// RESTAddr возвращает адрес REST сервера
func (s ServerConfig) RESTAddr() string {
	return fmt.Sprintf(":%d", s.RESTPort)
}

// getPortWithEnvFallback возвращает порт с приоритетом: env -> config -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}
	if configPort > 0 {
		return configPort
	}
	return defaultPort
}
