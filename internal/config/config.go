package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"competency-exam"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Postgres Postgres
	Redis    Redis
	Security Security
	Exam     Exam
	Admin    Admin
	Report   Report
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host     string `env:"PG_HOST,notEmpty"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER,notEmpty"`
	Password string `env:"PG_PASSWORD,notEmpty"`
	Database string `env:"PG_DATABASE,notEmpty"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
}

// Redis holds cache configuration.
type Redis struct {
	Addr     string `env:"REDIS_ADDR,notEmpty"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Security stores secrets for signing and auth.
type Security struct {
	JWTSecret string `env:"JWT_SECRET,notEmpty"`
}

// Exam groups exam pipeline policies.
type Exam struct {
	// InvalidAnswerPolicy decides how a submission referencing an unknown
	// answer id is handled: "zero" records it with score 0, "reject"
	// refuses it.
	InvalidAnswerPolicy string `env:"EXAM_INVALID_ANSWER_POLICY" envDefault:"zero"`
}

// Admin governs dashboard caching.
type Admin struct {
	StatsRefreshInterval time.Duration `env:"ADMIN_STATS_REFRESH_INTERVAL" envDefault:"1m"`
	StatsTTL             time.Duration `env:"ADMIN_STATS_TTL" envDefault:"2m"`
	ReferenceTTL         time.Duration `env:"ADMIN_REFERENCE_TTL" envDefault:"10m"`
}

// Report configures PDF rendering.
type Report struct {
	Enabled bool          `env:"REPORT_PDF_ENABLED" envDefault:"true"`
	Timeout time.Duration `env:"REPORT_PDF_TIMEOUT" envDefault:"30s"`
}

// Load parses environment variables into App config.
func Load() (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Exam.InvalidAnswerPolicy != "zero" && cfg.Exam.InvalidAnswerPolicy != "reject" {
		return nil, fmt.Errorf("EXAM_INVALID_ANSWER_POLICY must be zero or reject, got %q", cfg.Exam.InvalidAnswerPolicy)
	}
	return cfg, nil
}
