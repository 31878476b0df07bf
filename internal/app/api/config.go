package api

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"
	"go.yaml.in/yaml/v4"

	bookingevents "github.com/Apurer/pan-logistics-api/internal/domains/bookings/adapters/events"
	notificationsapp "github.com/Apurer/pan-logistics-api/internal/domains/notifications/application"
	"github.com/Apurer/pan-logistics-api/internal/domains/users/adapters/tokens"
	platformmail "github.com/Apurer/pan-logistics-api/internal/platform/mail"
)

// DevelopmentJWTSecret signs tokens when no secret is configured and the
// process runs on in-memory storage.
const DevelopmentJWTSecret = "pan-logistics-development-secret"

// Config carries file- and environment-driven settings for the API process.
type Config struct {
	Port              string              `yaml:"port"`
	LogLevel          string              `yaml:"log_level"`
	Environment       string              `yaml:"environment"`
	TracesStdout      bool                `yaml:"traces_stdout"`
	PostgresDSN       string              `yaml:"postgres_dsn"`
	JWTSecret         string              `yaml:"jwt_secret"`
	JWTExpiresIn      time.Duration       `yaml:"jwt_expires_in"`
	CORSOrigins       []string            `yaml:"cors_origins"`
	FrontendURL       string              `yaml:"frontend_url"`
	SMTP              platformmail.Config `yaml:"smtp"`
	TemporalAddress   string              `yaml:"temporal_address"`
	TemporalNamespace string              `yaml:"temporal_namespace"`
	TemporalDisabled  bool                `yaml:"temporal_disabled"`
	KafkaBrokers      []string            `yaml:"kafka_brokers"`
	KafkaTopic        string              `yaml:"kafka_booking_events_topic"`
	RedisAddr         string              `yaml:"redis_addr"`
	RateLimitPerMin   int64               `yaml:"rate_limit_per_minute"`
	Admin             AdminSeed           `yaml:"admin"`

	// JWTSecretDefaulted is set when DevelopmentJWTSecret was applied.
	JWTSecretDefaulted bool `yaml:"-"`
}

// AdminSeed describes the account created by cmd/seed-admin.
type AdminSeed struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

func defaultConfig() Config {
	return Config{
		Port:              "8080",
		LogLevel:          "info",
		Environment:       "local",
		JWTExpiresIn:      tokens.DefaultTTL,
		CORSOrigins:       []string{"*"},
		FrontendURL:       notificationsapp.DefaultFrontendURL,
		TemporalAddress:   client.DefaultHostPort,
		TemporalNamespace: client.DefaultNamespace,
		KafkaTopic:        bookingevents.DefaultTopic,
		RateLimitPerMin:   30,
		Admin:             AdminSeed{Name: "Administrator"},
	}
}

// LoadConfig reads the optional CONFIG_FILE, overlays environment variables,
// applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := defaultConfig()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Port, "PORT")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.Environment, "ENVIRONMENT")
	setString(&cfg.PostgresDSN, "POSTGRES_DSN")
	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.FrontendURL, "FRONTEND_URL")
	setString(&cfg.SMTP.Host, "SMTP_HOST")
	setString(&cfg.SMTP.Port, "SMTP_PORT")
	setString(&cfg.SMTP.Username, "SMTP_USER")
	setString(&cfg.SMTP.Password, "SMTP_PASS")
	setString(&cfg.SMTP.From, "EMAIL_FROM")
	setString(&cfg.TemporalAddress, "TEMPORAL_ADDRESS")
	setString(&cfg.TemporalNamespace, "TEMPORAL_NAMESPACE")
	setString(&cfg.KafkaTopic, "KAFKA_BOOKING_EVENTS_TOPIC")
	setString(&cfg.RedisAddr, "REDIS_ADDR")
	setString(&cfg.Admin.Email, "ADMIN_EMAIL")
	setString(&cfg.Admin.Password, "ADMIN_PASSWORD")
	setString(&cfg.Admin.Name, "ADMIN_NAME")
	if raw, ok := lookup("TEMPORAL_DISABLED"); ok {
		cfg.TemporalDisabled = isTruthy(raw)
	}
	if raw, ok := lookup("TRACES_STDOUT"); ok {
		cfg.TracesStdout = isTruthy(raw)
	}
	if raw, ok := lookup("CORS_ORIGINS"); ok {
		cfg.CORSOrigins = splitList(raw)
	}
	if raw, ok := lookup("KAFKA_BROKERS"); ok {
		cfg.KafkaBrokers = splitList(raw)
	}
	if raw, ok := lookup("JWT_EXPIRES_IN"); ok {
		ttl, err := parseTTL(raw)
		if err != nil {
			return fmt.Errorf("JWT_EXPIRES_IN: %w", err)
		}
		cfg.JWTExpiresIn = ttl
	}
	if raw, ok := lookup("RATE_LIMIT_PER_MINUTE"); ok {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || limit <= 0 {
			return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be a positive integer")
		}
		cfg.RateLimitPerMin = limit
	}
	return nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("PORT must not be empty")
	}
	if c.JWTExpiresIn <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}
	if c.RateLimitPerMin <= 0 {
		return errors.New("rate_limit_per_minute must be positive")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		if c.PostgresDSN != "" {
			return errors.New("JWT_SECRET is required when POSTGRES_DSN is set")
		}
		c.JWTSecret = DevelopmentJWTSecret
		c.JWTSecretDefaulted = true
	}
	return nil
}

// parseTTL accepts Go durations plus a day suffix such as "7d".
func parseTTL(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if days, ok := strings.CutSuffix(raw, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid day count %q", raw)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %q", raw)
	}
	return ttl, nil
}

func setString(dst *string, key string) {
	if value, ok := lookup(key); ok {
		*dst = value
	}
}

func lookup(key string) (string, bool) {
	value := strings.TrimSpace(os.Getenv(key))
	return value, value != ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
