package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Admin    AdminConfig
	SMTP     SMTPConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values. URL wins when set; otherwise
// the discrete fields are assembled into a DSN.
type PostgresConfig struct {
	URL               string
	Host              string
	Port              string
	User              string
	Password          string
	Name              string
	DisableSSL        bool
	SSLDir            string
	MaxConns          int32
	MinConns          int32
	AcquireTimeoutSec int32
	ConnMaxIdleSec    int32
	RunMigrations     bool
}

// RedisConfig holds cache connection values. An empty Addr disables the
// advisory cache entirely.
type RedisConfig struct {
	Addr            string
	Password        string
	DB              int
	CacheTTLSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level              string
	BufferCap          int
	BufferKeep         int
	AlertThreshold     int
	AlertCooldownMin   int
	RotateIntervalHour int
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret         string
	SessionTTLHours   int
	BcryptCost        int
	GeneratedPassword int
}

// AdminConfig carries the platform super-admin settings. SuperEmail is the
// one hard-wired admin address: it can never be deleted and is the only
// address accepted when bootstrapping the first admin account.
type AdminConfig struct {
	SuperEmail string
}

// SMTPConfig configures the outbound mailer. An empty Host selects the
// no-op mailer (emails are logged, not sent).
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	UseTLS   bool
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "justjoin-backend"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			URL:               os.Getenv("DATABASE_URL"),
			Host:              getEnv("DB_HOST", "127.0.0.1"),
			Port:              getEnv("DB_PORT", "5432"),
			User:              getEnv("DB_USER", "postgres"),
			Password:          os.Getenv("DB_PASSWORD"),
			Name:              getEnv("DB_NAME", "justjoin"),
			DisableSSL:        getEnvAsBool("DISABLE_SSL", false),
			SSLDir:            getEnv("DB_SSL_DIR", "ssl"),
			MaxConns:          int32(getEnvAsInt("DB_MAX_CONNS", 5)),
			MinConns:          int32(getEnvAsInt("DB_MIN_CONNS", 1)),
			AcquireTimeoutSec: int32(getEnvAsInt("DB_ACQUIRE_TIMEOUT_SECONDS", 10)),
			ConnMaxIdleSec:    int32(getEnvAsInt("DB_CONN_MAX_IDLE_SECONDS", 30)),
			RunMigrations:     getEnvAsBool("DB_RUN_MIGRATIONS", true),
		},
		Redis: RedisConfig{
			Addr:            os.Getenv("REDIS_ADDR"),
			Password:        os.Getenv("REDIS_PASSWORD"),
			DB:              redisDB,
			CacheTTLSeconds: getEnvAsInt("CACHE_TTL_SECONDS", 300),
		},
		Logger: LoggerConfig{
			Level:              getEnv("LOG_LEVEL", "info"),
			BufferCap:          getEnvAsInt("LOG_BUFFER_CAP", 500),
			BufferKeep:         getEnvAsInt("LOG_BUFFER_KEEP", 100),
			AlertThreshold:     getEnvAsInt("LOG_ALERT_THRESHOLD", 10),
			AlertCooldownMin:   getEnvAsInt("LOG_ALERT_COOLDOWN_MINUTES", 60),
			RotateIntervalHour: getEnvAsInt("LOG_ROTATE_INTERVAL_HOURS", 24),
		},
		Auth: AuthConfig{
			JWTSecret:         getEnv("AUTH_JWT_SECRET", "dev-secret"),
			SessionTTLHours:   getEnvAsInt("AUTH_SESSION_TTL_HOURS", 8),
			BcryptCost:        getEnvAsInt("AUTH_BCRYPT_COST", 10),
			GeneratedPassword: getEnvAsInt("AUTH_GENERATED_PASSWORD_LENGTH", 12),
		},
		Admin: AdminConfig{
			SuperEmail: getEnv("ADMIN_EMAIL", "admin@justjoin.jp"),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getEnv("SMTP_FROM", "noreply@justjoin.jp"),
			UseTLS:   getEnvAsBool("SMTP_USE_TLS", false),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Development reports whether the service runs in development mode.
// Debug log entries are suppressed outside development.
func (a AppConfig) Development() bool {
	return a.Env == "development"
}

// SessionTTL returns the session lifetime.
func (a AuthConfig) SessionTTL() time.Duration {
	if a.SessionTTLHours <= 0 {
		return 8 * time.Hour
	}
	return time.Duration(a.SessionTTLHours) * time.Hour
}

// CacheTTL returns the advisory cache entry lifetime.
func (r RedisConfig) CacheTTL() time.Duration {
	if r.CacheTTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(r.CacheTTLSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
