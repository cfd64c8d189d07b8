package configs

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// =======================
// CONFIG STRUCT
// =======================
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	Midtrans  MidtransConfig
	Scheduler SchedulerConfig
	Reports   ReportsConfig
}

type AppConfig struct {
	Name            string        `env:"APP_NAME" env-default:"zakatconnect"`
	Env             string        `env:"APP_ENV" env-default:"development"`
	Port            string        `env:"PORT" env-default:"3000"`
	RequestTimeout  time.Duration `env:"APP_REQUEST_TIMEOUT" env-default:"5s"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type DatabaseConfig struct {
	Host               string        `env:"DB_HOST" env-default:"localhost"`
	Port               string        `env:"DB_PORT" env-default:"5432"`
	User               string        `env:"DB_USER" env-default:"postgres"`
	Password           string        `env:"DB_PASSWORD"`
	Name               string        `env:"DB_NAME" env-default:"zakatconnect"`
	SSLMode            string        `env:"DB_SSLMODE" env-default:"require"`
	MaxOpenConns       int           `env:"DB_MAX_OPEN_CONNS" env-default:"20"`
	MaxIdleConns       int           `env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	ConnMaxLifetime    time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"10m"`
	ConnMaxIdleTime    time.Duration `env:"DB_CONN_MAX_IDLE_TIME" env-default:"60s"`
	StatementTimeoutMS int           `env:"DB_STATEMENT_TIMEOUT_MS" env-default:"3000"`
	RunMigrations      bool          `env:"DB_RUN_MIGRATIONS" env-default:"true"`
	RunSeeds           bool          `env:"DB_RUN_SEEDS" env-default:"false"`
	SeedDir            string        `env:"DB_SEED_DIR" env-default:"internals/seeds/data"`
}

type JWTConfig struct {
	Secret    string        `env:"JWT_SECRET" env-required:"true"`
	AccessTTL time.Duration `env:"JWT_ACCESS_TTL" env-default:"24h"`
}

type CORSConfig struct {
	AllowOrigins string `env:"CORS_ALLOW_ORIGINS" env-default:"http://localhost:5173"`
}

type RateLimitConfig struct {
	Max         int           `env:"RATE_LIMIT_MAX" env-default:"100"`
	Window      time.Duration `env:"RATE_LIMIT_WINDOW" env-default:"1m"`
	LoginMax    int           `env:"RATE_LIMIT_LOGIN_MAX" env-default:"5"`
	LoginWindow time.Duration `env:"RATE_LIMIT_LOGIN_WINDOW" env-default:"1m"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"console"`
}

type MidtransConfig struct {
	ServerKey  string `env:"MIDTRANS_SERVER_KEY"`
	Production bool   `env:"MIDTRANS_USE_PROD" env-default:"false"`
}

type SchedulerConfig struct {
	BlacklistCleanupSpec string        `env:"BLACKLIST_CLEANUP_SPEC" env-default:"0 3 * * *"`
	BlacklistTTL         time.Duration `env:"TOKEN_BLACKLIST_TTL" env-default:"168h"`
	Timezone             string        `env:"APP_TIMEZONE" env-default:"Asia/Jakarta"`
}

type ReportsConfig struct {
	// matikan kalau dashboard lebih suka tampil kosong
	TrendFallback bool `env:"REPORTS_TREND_FALLBACK" env-default:"true"`
}

// =======================
// ENV LOADER
// =======================

// LoadEnv memuat .env (kalau ada) lalu membaca Config dari ENV.
func LoadEnv() (*Config, error) {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		}
	}
	return Load()
}

// Load membaca Config dari ENV + default tag.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return fmt.Errorf("JWT_SECRET is empty")
	}
	if c.JWT.AccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be positive")
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be console or json, got %q", c.Log.Format)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Env, "production")
}

// Location dipakai scheduler & default tanggal; fallback ke UTC.
func (c *Config) Location() *time.Location {
	if loc, err := time.LoadLocation(c.Scheduler.Timezone); err == nil {
		return loc
	}
	return time.UTC
}

// DSN: URL postgres + statement_timeout (selaras dengan request timeout).
func (d DatabaseConfig) DSN(appName string) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   d.Host + ":" + d.Port,
		Path:   "/" + d.Name,
	}
	q := url.Values{}
	q.Set("sslmode", d.SSLMode)
	q.Set("application_name", appName)
	if d.StatementTimeoutMS > 0 {
		q.Set("options", fmt.Sprintf("-c statement_timeout=%d", d.StatementTimeoutMS))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
