package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Session storage backends.
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// Seed sources for the catalog.
const (
	SeedSourceFixtures = "fixtures"
	SeedSourcePostgres = "postgres"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	CORS     CORSConfig
	Log      LogConfig
	Seed     SeedConfig
	Latency  LatencyConfig
	Activity ActivityConfig
	Portal   PortalConfig
	Metrics  MetricsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host      string
	Port      int
	Password  string
	DB        int
	KeyPrefix string
}

// SessionConfig controls where client session records live and how clients are identified.
type SessionConfig struct {
	Backend      string
	CookieName   string
	CookieSecret string
	CookieTTL    time.Duration
	IdleTTL      time.Duration
	MaxClients   int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SeedConfig selects the source the catalog is populated from at boot.
type SeedConfig struct {
	Source string
}

// LatencyConfig holds the artificial delays applied before mutations complete.
type LatencyConfig struct {
	Login time.Duration
	Save  time.Duration
}

// ActivityConfig sizes the activity feed worker pool and ring buffer.
type ActivityConfig struct {
	Workers  int
	Buffer   int
	Capacity int
}

// PortalConfig carries presentation defaults shared by both portals.
type PortalConfig struct {
	DemoPassword    string
	DefaultSemester string
	TablePageSize   int
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:      v.GetString("REDIS_HOST"),
		Port:      v.GetInt("REDIS_PORT"),
		Password:  v.GetString("REDIS_PASSWORD"),
		DB:        v.GetInt("REDIS_DB"),
		KeyPrefix: v.GetString("REDIS_KEY_PREFIX"),
	}

	cfg.Session = SessionConfig{
		Backend:      strings.ToLower(v.GetString("SESSION_BACKEND")),
		CookieName:   v.GetString("SESSION_COOKIE_NAME"),
		CookieSecret: v.GetString("SESSION_COOKIE_SECRET"),
		CookieTTL:    parseDuration(v.GetString("SESSION_COOKIE_TTL"), 30*24*time.Hour),
		IdleTTL:      parseDuration(v.GetString("SESSION_IDLE_TTL"), 30*time.Minute),
		MaxClients:   v.GetInt("SESSION_MAX_CLIENTS"),
	}
	if cfg.Session.IdleTTL > cfg.Session.CookieTTL {
		cfg.Session.IdleTTL = cfg.Session.CookieTTL
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Seed = SeedConfig{Source: strings.ToLower(v.GetString("SEED_SOURCE"))}

	cfg.Latency = LatencyConfig{
		Login: parseDuration(v.GetString("LATENCY_LOGIN"), time.Second),
		Save:  parseDuration(v.GetString("LATENCY_SAVE"), time.Second),
	}

	cfg.Activity = ActivityConfig{
		Workers:  v.GetInt("ACTIVITY_WORKERS"),
		Buffer:   v.GetInt("ACTIVITY_BUFFER"),
		Capacity: v.GetInt("ACTIVITY_CAPACITY"),
	}

	cfg.Portal = PortalConfig{
		DemoPassword:    v.GetString("DEMO_PASSWORD"),
		DefaultSemester: v.GetString("DEFAULT_SEMESTER"),
		TablePageSize:   v.GetInt("TABLE_PAGE_SIZE"),
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "campus_portal")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_KEY_PREFIX", "portal:client")

	v.SetDefault("SESSION_BACKEND", SessionBackendMemory)
	v.SetDefault("SESSION_COOKIE_NAME", "portal_client")
	v.SetDefault("SESSION_COOKIE_SECRET", "dev_cookie_secret")
	v.SetDefault("SESSION_COOKIE_TTL", "720h")
	v.SetDefault("SESSION_IDLE_TTL", "30m")
	v.SetDefault("SESSION_MAX_CLIENTS", 10000)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SEED_SOURCE", SeedSourceFixtures)

	v.SetDefault("LATENCY_LOGIN", "1s")
	v.SetDefault("LATENCY_SAVE", "1s")

	v.SetDefault("ACTIVITY_WORKERS", 1)
	v.SetDefault("ACTIVITY_BUFFER", 64)
	v.SetDefault("ACTIVITY_CAPACITY", 50)

	v.SetDefault("DEMO_PASSWORD", "changeme123")
	v.SetDefault("DEFAULT_SEMESTER", "Spring 2025")
	v.SetDefault("TABLE_PAGE_SIZE", 10)

	v.SetDefault("ENABLE_METRICS", true)
}

// isMissingFile reports the os-level error viper returns when SetConfigFile points at a missing path.
func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
