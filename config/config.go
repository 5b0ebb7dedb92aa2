package config

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as server settings, Postgres connection details, the query layer and the
// materialization scheduler.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=admin
//	POSTGRES_PASSWORD=secret
//	POSTGRES_DB=nsepulse
//	POSTGRES_SSLMODE=disable
//	SCHEDULER_CRON="0 0 * * *"
//	SCHEDULER_TIMEZONE=Asia/Kolkata
//	LOG_LEVEL=info
type Config struct {
	Server    ServerConfig    // HTTP server configuration
	Postgres  PostgresConfig  // PostgreSQL connection settings
	Query     QueryConfig     // Read path tuning
	Scheduler SchedulerConfig // Daily materialization trigger
	Log       LogConfig       // Logger output
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string        // The TCP port the HTTP server will listen on (e.g., "8080")
	RequestTimeout time.Duration // Deadline applied to every request
	RateRPS        float64       // Per-client requests per second, 0 disables limiting
	RateBurst      int           // Per-client burst size
	AdminEnabled   bool          // Mounts POST /api/admin/materialize/{date}
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - MaxOpenConns, MaxIdleConns, ConnMaxLifetime: pool limits of the shared *sql.DB.
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	URL             string
}

// QueryConfig bounds the read-only query operations.
type QueryConfig struct {
	Timeout          time.Duration
	LeaderboardSize  int
	DefaultTrendDays int
	MaxTrendDays     int
}

// SchedulerConfig drives the daily materialization.
type SchedulerConfig struct {
	Enabled            bool
	Cron               string // standard 5-field cron spec
	Timezone           string // IANA name or "Local"
	LagDays            int    // target date = today - LagDays
	SkipNonTradingDays bool
	CalendarMIC        string // exchange calendar, e.g. "xnse"
	MaxRetries         int    // in-tick retries of transient failures
	ReplayParallelism  int
}

// LogConfig selects the zerolog level and output format.
type LogConfig struct {
	Level  string
	Pretty bool
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
// All services should import this package and read from AppConfig instead of
// reloading environment variables directly.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Behavior:
//   - Sets defaults for all required fields.
//   - Reads environment variables automatically with viper.AutomaticEnv().
//   - Constructs the PostgreSQL connection string (DSN).
//   - Calls validateConfig() to ensure required fields are present and well-formed.
//
// Fatal exit:
//   - If required variables are missing or invalid, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	setDefaults()

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	// Populate global config instance
	AppConfig = Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			RequestTimeout: viper.GetDuration("SERVER_REQUEST_TIMEOUT"),
			RateRPS:        viper.GetFloat64("SERVER_RATE_RPS"),
			RateBurst:      viper.GetInt("SERVER_RATE_BURST"),
			AdminEnabled:   viper.GetBool("SERVER_ADMIN_ENABLED"),
		},
		Postgres: PostgresConfig{
			Host:            viper.GetString("POSTGRES_HOST"),
			Port:            viper.GetInt("POSTGRES_PORT"),
			User:            viper.GetString("POSTGRES_USER"),
			Password:        viper.GetString("POSTGRES_PASSWORD"),
			DBName:          viper.GetString("POSTGRES_DB"),
			SSLMode:         viper.GetString("POSTGRES_SSLMODE"),
			MaxOpenConns:    viper.GetInt("POSTGRES_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("POSTGRES_MAX_IDLE_CONNS"),
			ConnMaxLifetime: viper.GetDuration("POSTGRES_CONN_MAX_LIFETIME"),
		},
		Query: QueryConfig{
			Timeout:          viper.GetDuration("QUERY_TIMEOUT"),
			LeaderboardSize:  viper.GetInt("QUERY_LEADERBOARD_SIZE"),
			DefaultTrendDays: viper.GetInt("QUERY_TREND_DEFAULT_DAYS"),
			MaxTrendDays:     viper.GetInt("QUERY_TREND_MAX_DAYS"),
		},
		Scheduler: SchedulerConfig{
			Enabled:            viper.GetBool("SCHEDULER_ENABLED"),
			Cron:               viper.GetString("SCHEDULER_CRON"),
			Timezone:           viper.GetString("SCHEDULER_TIMEZONE"),
			LagDays:            viper.GetInt("SCHEDULER_LAG_DAYS"),
			SkipNonTradingDays: viper.GetBool("SCHEDULER_SKIP_NON_TRADING_DAYS"),
			CalendarMIC:        viper.GetString("SCHEDULER_CALENDAR_MIC"),
			MaxRetries:         viper.GetInt("SCHEDULER_MAX_RETRIES"),
			ReplayParallelism:  viper.GetInt("SCHEDULER_REPLAY_PARALLELISM"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Pretty: viper.GetBool("LOG_PRETTY"),
		},
	}

	// Construct Postgres DSN (used by database/sql)
	AppConfig.Postgres.URL = BuildDSN(AppConfig.Postgres)

	// Validate critical fields
	validateConfig()
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_REQUEST_TIMEOUT", "10s")
	viper.SetDefault("SERVER_RATE_RPS", 20)
	viper.SetDefault("SERVER_RATE_BURST", 40)
	viper.SetDefault("SERVER_ADMIN_ENABLED", true)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "nsepulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")
	viper.SetDefault("POSTGRES_MAX_OPEN_CONNS", 20)
	viper.SetDefault("POSTGRES_MAX_IDLE_CONNS", 5)
	viper.SetDefault("POSTGRES_CONN_MAX_LIFETIME", "30m")

	viper.SetDefault("QUERY_TIMEOUT", "5s")
	viper.SetDefault("QUERY_LEADERBOARD_SIZE", 5)
	viper.SetDefault("QUERY_TREND_DEFAULT_DAYS", 30)
	viper.SetDefault("QUERY_TREND_MAX_DAYS", 365)

	viper.SetDefault("SCHEDULER_ENABLED", true)
	viper.SetDefault("SCHEDULER_CRON", "0 0 * * *")
	viper.SetDefault("SCHEDULER_TIMEZONE", "Local")
	viper.SetDefault("SCHEDULER_LAG_DAYS", 0)
	viper.SetDefault("SCHEDULER_SKIP_NON_TRADING_DAYS", false)
	viper.SetDefault("SCHEDULER_CALENDAR_MIC", "xnse")
	viper.SetDefault("SCHEDULER_MAX_RETRIES", 3)
	viper.SetDefault("SCHEDULER_REPLAY_PARALLELISM", 2)

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_PRETTY", false)
}

// BuildDSN renders the postgres:// URL understood by lib/pq.
func BuildDSN(p PostgresConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// Location resolves SchedulerConfig.Timezone.
func (s SchedulerConfig) Location() (*time.Location, error) {
	if s.Timezone == "" || s.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(s.Timezone)
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing or invalid.
//
// This avoids unexpected runtime failures due to incomplete configuration.
//
// Behavior:
//   - Checks each critical field of AppConfig.
//   - Collects missing and invalid ones in slices.
//   - If any are found, logs them and terminates the app with log.Fatalf().
func validateConfig() {
	missing, invalid := checkConfig(AppConfig)

	if len(missing) > 0 {
		log.Fatalf("❌ Missing required environment variables: %v\n", missing)
	}
	if len(invalid) > 0 {
		log.Fatalf("❌ Invalid environment variables: %v\n", invalid)
	}
}

func checkConfig(c Config) (missing, invalid []string) {
	if c.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if c.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if c.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if c.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if c.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if c.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}

	if c.Server.RateRPS < 0 || c.Server.RateBurst < 0 {
		invalid = append(invalid, "SERVER_RATE_RPS/SERVER_RATE_BURST")
	}
	if c.Query.DefaultTrendDays < 1 || c.Query.MaxTrendDays < c.Query.DefaultTrendDays {
		invalid = append(invalid, "QUERY_TREND_DEFAULT_DAYS/QUERY_TREND_MAX_DAYS")
	}
	if c.Scheduler.LagDays < 0 {
		invalid = append(invalid, "SCHEDULER_LAG_DAYS")
	}
	if c.Scheduler.MaxRetries < 0 {
		invalid = append(invalid, "SCHEDULER_MAX_RETRIES")
	}
	if c.Scheduler.Enabled {
		if _, err := cron.ParseStandard(c.Scheduler.Cron); err != nil {
			invalid = append(invalid, "SCHEDULER_CRON")
		}
		if _, err := c.Scheduler.Location(); err != nil {
			invalid = append(invalid, "SCHEDULER_TIMEZONE")
		}
	}
	return missing, invalid
}
