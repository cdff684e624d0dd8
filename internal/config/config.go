package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	PaymentProviderStripe = "stripe"
	PaymentProviderFake   = "fake"
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Redis         RedisConfig         `toml:"redis"`
	Auth          AuthConfig          `toml:"auth"`
	Payment       PaymentConfig       `toml:"payment"`
	Booking       BookingConfig       `toml:"booking"`
	PendingExpiry PendingExpiryConfig `toml:"pending_expiry"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

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

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL строка подключения для golang-migrate
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type RedisConfig struct {
	Enabled     bool   `toml:"enabled"`
	Addr        string `toml:"addr"`
	Password    string `toml:"password"`
	DB          int    `toml:"db"`
	TemplateTTL int    `toml:"template_ttl"` // секунды
}

// TTL время жизни шаблона расписания в кэше
func (c RedisConfig) TTL() time.Duration {
	return time.Duration(c.TemplateTTL) * time.Second
}

type AuthConfig struct {
	// Пустой секрет: user id берется из X-User-ID от шлюза
	JWTSecret     string `toml:"jwt_secret"`
	InternalToken string `toml:"internal_token"`
}

type PaymentConfig struct {
	Provider         string `toml:"provider"` // stripe | fake
	SecretKey        string `toml:"secret_key"`
	WebhookSecret    string `toml:"webhook_secret"`
	WebhookTolerance int    `toml:"webhook_tolerance"` // секунды
	Currency         string `toml:"currency"`
	SuccessURL       string `toml:"success_url"`
	CancelURL        string `toml:"cancel_url"`
}

type BookingConfig struct {
	Timezone string `toml:"timezone"`
}

// Location часовой пояс, в котором трактуются даты и время шаблонов
func (c BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

type PendingExpiryConfig struct {
	Enabled    bool `toml:"enabled"`
	TTLMinutes int  `toml:"ttl_minutes"`
}

// TTL возраст, после которого неоплаченная запись отменяется
func (c PendingExpiryConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// Load читает TOML, подгружает .env (если есть) и накладывает секреты из окружения
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "vet-booking-service",
		},
		Redis: RedisConfig{
			Addr:        "localhost:6379",
			TemplateTTL: 300,
		},
		Payment: PaymentConfig{
			Provider:         PaymentProviderFake,
			WebhookTolerance: 300,
			Currency:         "usd",
		},
		Booking: BookingConfig{Timezone: "UTC"},
		PendingExpiry: PendingExpiryConfig{
			TTLMinutes: 30,
		},
	}
}

func applyEnv(cfg *Config) {
	override := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	override(&cfg.Database.Password, "DB_PASSWORD")
	override(&cfg.Auth.JWTSecret, "JWT_SECRET")
	override(&cfg.Auth.InternalToken, "INTERNAL_TOKEN")
	override(&cfg.Payment.SecretKey, "STRIPE_SECRET_KEY")
	override(&cfg.Payment.WebhookSecret, "STRIPE_WEBHOOK_SECRET")
	override(&cfg.Redis.Password, "REDIS_PASSWORD")
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		problems = append(problems, "database.host, database.user and database.dbname are required")
	}
	if _, err := c.Booking.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("booking.timezone: %v", err))
	}
	if c.Redis.Enabled && c.Redis.TemplateTTL <= 0 {
		problems = append(problems, "redis.template_ttl must be positive")
	}
	if c.PendingExpiry.Enabled && c.PendingExpiry.TTLMinutes <= 0 {
		problems = append(problems, "pending_expiry.ttl_minutes must be positive")
	}

	switch c.Payment.Provider {
	case PaymentProviderStripe:
		if c.Payment.SecretKey == "" || c.Payment.WebhookSecret == "" {
			problems = append(problems, "payment.secret_key and payment.webhook_secret are required for stripe")
		}
		if c.Payment.SuccessURL == "" || c.Payment.CancelURL == "" {
			problems = append(problems, "payment.success_url and payment.cancel_url are required for stripe")
		}
	case PaymentProviderFake:
		if c.Payment.WebhookSecret == "" {
			problems = append(problems, "payment.webhook_secret is required")
		}
	default:
		problems = append(problems, fmt.Sprintf("payment.provider %q is not supported", c.Payment.Provider))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
