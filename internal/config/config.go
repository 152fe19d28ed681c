package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/gig-conflicts/internal/domain"
)

// ErrInvalidConfig возвращается, когда значения конфигурации недопустимы
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Драйверы БД
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Провайдеры оценки переезда
const (
	TravelProviderHTTP      = "http"
	TravelProviderHaversine = "haversine"
)

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	BookingService BookingServiceConfig `toml:"booking_service"`
	Travel         TravelConfig         `toml:"travel"`
	Conflicts      ConflictsConfig      `toml:"conflicts"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к БД
type DatabaseConfig struct {
	Driver          string `toml:"driver"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	Path            string `toml:"path"` // файл SQLite
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// LogsConfig параметры логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig параметры Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingServiceConfig параметры сервиса бронирований (источник обязательств)
type BookingServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// TravelConfig параметры оценки переезда
type TravelConfig struct {
	Provider        string  `toml:"provider"`
	URL             string  `toml:"url"`
	TimeoutMs       int     `toml:"timeout_ms"`
	CacheSize       int     `toml:"cache_size"`
	CacheTTLSeconds int     `toml:"cache_ttl_seconds"`
	AverageSpeedKmh float64 `toml:"average_speed_kmh"`
	RoadFactor      float64 `toml:"road_factor"`
}

// ConflictsConfig пороги классификации и параметры сканирования
type ConflictsConfig struct {
	TravelBufferMinutes     int `toml:"travel_buffer_minutes"`
	UnknownTravelGapMinutes int `toml:"unknown_travel_gap_minutes"`
	ScanWindowDays          int `toml:"scan_window_days"`
	MaxParallelEstimates    int `toml:"max_parallel_estimates"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Driver:          DriverPostgres,
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			Path:            "conflicts.db",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "gig-conflicts",
		},
		BookingService: BookingServiceConfig{
			Timeout: 5,
		},
		Travel: TravelConfig{
			Provider:        TravelProviderHaversine,
			TimeoutMs:       int(domain.DefaultEstimatorTimeout / time.Millisecond),
			CacheSize:       1024,
			CacheTTLSeconds: 3600,
			AverageSpeedKmh: 40,
			RoadFactor:      1.3,
		},
		Conflicts: ConflictsConfig{
			TravelBufferMinutes:     domain.DefaultTravelBufferMinutes,
			UnknownTravelGapMinutes: domain.DefaultUnknownTravelGapMinutes,
			ScanWindowDays:          domain.DefaultScanWindowDays,
			MaxParallelEstimates:    domain.DefaultMaxParallelEstimates,
		},
	}
}

// Load читает конфигурацию из TOML файла поверх значений по умолчанию
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет допустимость значений
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database host and dbname are required for postgres", ErrInvalidConfig)
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("%w: database path is required for sqlite", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown database driver %q", ErrInvalidConfig, c.Database.Driver)
	}

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: http_port must be in 1..65535", ErrInvalidConfig)
	}

	if c.BookingService.URL == "" {
		return fmt.Errorf("%w: booking_service.url is required", ErrInvalidConfig)
	}
	if _, err := url.ParseRequestURI(c.BookingService.URL); err != nil {
		return fmt.Errorf("%w: booking_service.url: %v", ErrInvalidConfig, err)
	}

	switch c.Travel.Provider {
	case TravelProviderHTTP:
		if c.Travel.URL == "" {
			return fmt.Errorf("%w: travel.url is required for the http provider", ErrInvalidConfig)
		}
	case TravelProviderHaversine:
		if c.Travel.AverageSpeedKmh <= 0 || c.Travel.RoadFactor < 1 {
			return fmt.Errorf("%w: travel.average_speed_kmh must be positive and road_factor at least 1", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown travel provider %q", ErrInvalidConfig, c.Travel.Provider)
	}

	if c.Travel.TimeoutMs <= 0 || c.EstimatorTimeout() > domain.MaxEstimatorTimeout {
		return fmt.Errorf("%w: travel.timeout_ms must be in 1..%d", ErrInvalidConfig, domain.MaxEstimatorTimeout.Milliseconds())
	}
	if c.Travel.CacheSize < 0 || c.Travel.CacheTTLSeconds < 0 {
		return fmt.Errorf("%w: travel cache settings must not be negative", ErrInvalidConfig)
	}

	if c.Conflicts.TravelBufferMinutes < 0 || c.Conflicts.UnknownTravelGapMinutes < 0 {
		return fmt.Errorf("%w: conflict thresholds must not be negative", ErrInvalidConfig)
	}
	if c.Conflicts.ScanWindowDays < 0 || c.Conflicts.ScanWindowDays > domain.MaxScanWindowDays {
		return fmt.Errorf("%w: scan_window_days must be in 0..%d", ErrInvalidConfig, domain.MaxScanWindowDays)
	}
	if c.Conflicts.MaxParallelEstimates <= 0 {
		return fmt.Errorf("%w: max_parallel_estimates must be positive", ErrInvalidConfig)
	}

	return nil
}

// DSN возвращает строку подключения для выбранного драйвера
func (d DatabaseConfig) DSN() string {
	if d.Driver == DriverSQLite {
		return d.Path + "?_time_format=sqlite&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// EstimatorTimeout таймаут одного обращения к оценщику
func (c *Config) EstimatorTimeout() time.Duration {
	return time.Duration(c.Travel.TimeoutMs) * time.Millisecond
}

// CacheTTL время жизни закэшированной оценки
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Travel.CacheTTLSeconds) * time.Second
}
