package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/salabelleza/SLB-BookingService/internal/domain"
)

// Config конфигурация сервиса, загружается из TOML-файла
type Config struct {
	Server          ServerConfig          `toml:"server"`
	Database        DatabaseConfig        `toml:"database"`
	Logs            LogsConfig            `toml:"logs"`
	Metrics         MetricsConfig         `toml:"metrics"`
	Booking         BookingConfig         `toml:"booking"`
	CatalogService  IntegrationConfig     `toml:"catalog_service"`
	IdentityService IntegrationConfig     `toml:"identity_service"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig настройки слот-сетки и политик бронирования
type BookingConfig struct {
	WorkingDayStartHour      int  `toml:"working_day_start_hour"`
	WorkingDayEndHour        int  `toml:"working_day_end_hour"`
	SlotIntervalMinutes      int  `toml:"slot_interval_minutes"`
	StaffSlotIntervalMinutes int  `toml:"staff_slot_interval_minutes"`
	AdvanceBookingDays       int  `toml:"advance_booking_days"`

	// CancelledBlocksSlot сохраняет историческое поведение, при котором
	// отменённое бронирование продолжает занимать свой слот.
	// По умолчанию выключено: отменённые записи слот освобождают.
	CancelledBlocksSlot bool `toml:"cancelled_blocks_slot"`
}

// IntegrationConfig настройки клиента внешнего сервиса
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды

	// Политика повторов для read-only запросов
	RetryAttempts int `toml:"retry_attempts"`
	RetryDelayMS  int `toml:"retry_delay_ms"`
	CacheTTL      int `toml:"cache_ttl"` // секунды
}

// Load читает и валидирует конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			File:  "logs/booking-service.log",
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "slb-booking-service",
		},
		Booking: BookingConfig{
			WorkingDayStartHour:      domain.DefaultWorkingDayStartHour,
			WorkingDayEndHour:        domain.DefaultWorkingDayEndHour,
			SlotIntervalMinutes:      domain.DefaultSlotIntervalMinutes,
			StaffSlotIntervalMinutes: domain.StaffSlotIntervalMinutes,
			AdvanceBookingDays:       domain.DefaultAdvanceBookingDays,
		},
		CatalogService: IntegrationConfig{
			Timeout:       5,
			RetryAttempts: 3,
			RetryDelayMS:  500,
			CacheTTL:      300,
		},
		IdentityService: IntegrationConfig{
			Timeout:       5,
			RetryAttempts: 3,
			RetryDelayMS:  500,
			CacheTTL:      60,
		},
	}
}

func (c *Config) validate() error {
	if c.Booking.WorkingDayEndHour <= c.Booking.WorkingDayStartHour {
		return fmt.Errorf("config: working_day_end_hour must be greater than working_day_start_hour")
	}
	if c.Booking.SlotIntervalMinutes <= 0 || c.Booking.SlotIntervalMinutes > 60 {
		return fmt.Errorf("config: slot_interval_minutes must be in (0, 60]")
	}
	if c.Booking.StaffSlotIntervalMinutes <= 0 || c.Booking.StaffSlotIntervalMinutes > 60 {
		return fmt.Errorf("config: staff_slot_interval_minutes must be in (0, 60]")
	}
	if c.CatalogService.URL == "" {
		return fmt.Errorf("config: catalog_service.url is required")
	}
	if c.IdentityService.URL == "" {
		return fmt.Errorf("config: identity_service.url is required")
	}
	return nil
}
