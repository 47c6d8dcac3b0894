package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type DatabaseDriver string

const (
	DatabaseDriverSQLite DatabaseDriver = "sqlite" // Local SQLite file via gorm (default)
	DatabaseDriverMongo  DatabaseDriver = "mongo"  // MongoDB deployment
)

var (
	ErrJWTSecretRequired = errors.New("JWT_SECRET is required")
	ErrMongoURIRequired  = errors.New("MONGODB_URI is required when DATABASE_DRIVER=mongo")
	ErrUnknownDriver     = errors.New("unknown DATABASE_DRIVER")
	ErrInvalidExpiry     = errors.New("invalid EXPIRES_IN")
)

type (
	Config struct {
		HTTP
		Global
		Database
		Auth
		CORS
		Tasks
		Audit
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver        DatabaseDriver
		Path          string // SQLite file
		MongoURI      string
		MongoDatabase string
	}
	Auth struct {
		JWTSecret   string
		TokenExpiry time.Duration
		BcryptCost  int
	}
	CORS struct {
		AllowedOrigins []string // "*" allows every origin
	}
	Tasks struct {
		Enabled         bool
		DBPath          string // Derived from Database.Path when empty
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Audit struct {
		Retention       time.Duration // AUDIT_RETENTION_DAYS, in whole days
		CleanupSchedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
)

// NewConfig reads configuration from the environment.
func NewConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 5000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)

	// Storage defaults
	v.SetDefault("database_driver", "")
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("mongodb_uri", "")
	v.SetDefault("mongodb_database", DefaultMongoDatabase)

	// Auth defaults
	v.SetDefault("jwt_secret", "")
	v.SetDefault("expires_in", "1h")
	v.SetDefault("bcrypt_cost", 10)

	v.SetDefault("cors_allowed_origins", "*")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("tasks_db_path", "")
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("audit_cleanup_schedule", "0 3 * * *")

	expiry, err := ParseExpiry(v.GetString("EXPIRES_IN"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver:        resolveDriver(v.GetString("DATABASE_DRIVER"), v.GetString("MONGODB_URI")),
			Path:          v.GetString("DATABASE_PATH"),
			MongoURI:      v.GetString("MONGODB_URI"),
			MongoDatabase: v.GetString("MONGODB_DATABASE"),
		},
		Auth: Auth{
			JWTSecret:   v.GetString("JWT_SECRET"),
			TokenExpiry: expiry,
			BcryptCost:  v.GetInt("BCRYPT_COST"),
		},
		CORS: CORS{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			DBPath:          v.GetString("TASKS_DB_PATH"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Audit: Audit{
			Retention:       time.Duration(v.GetInt("AUDIT_RETENTION_DAYS")) * 24 * time.Hour,
			CleanupSchedule: v.GetString("AUDIT_CLEANUP_SCHEDULE"),
		},
	}

	if cfg.Tasks.DBPath == "" {
		cfg.Tasks.DBPath = TasksDBPath(cfg.Database.Path)
	}

	return cfg, nil
}

// Validate checks settings that the server cannot start without.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return ErrJWTSecretRequired
	}
	switch c.Database.Driver {
	case DatabaseDriverSQLite:
	case DatabaseDriverMongo:
		if c.Database.MongoURI == "" {
			return ErrMongoURIRequired
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Database.Driver)
	}
	return nil
}

// resolveDriver picks MongoDB when only a connection string was given, so
// deployments configured with MONGODB_URI alone keep working.
func resolveDriver(driver, mongoURI string) DatabaseDriver {
	if driver != "" {
		return DatabaseDriver(strings.ToLower(driver))
	}
	if mongoURI != "" {
		return DatabaseDriverMongo
	}
	return DatabaseDriverSQLite
}

var expiryPattern = regexp.MustCompile(`(?i)^(-?\d*\.?\d+) *(milliseconds?|msecs?|ms|seconds?|secs?|s|minutes?|mins?|m|hours?|hrs?|h|days?|d|weeks?|w|years?|yrs?|y)?$`)

var expiryUnits = map[string]time.Duration{
	"ms": time.Millisecond,
	"s":  time.Second,
	"m":  time.Minute,
	"h":  time.Hour,
	"d":  24 * time.Hour,
	"w":  7 * 24 * time.Hour,
	"y":  time.Duration(365.25 * float64(24*time.Hour)),
}

// expiryUnit maps a unit spelling ("mins", "hrs", "msec") to its key in expiryUnits.
func expiryUnit(unit string) string {
	unit = strings.ToLower(unit)
	switch {
	case unit == "":
		return "ms"
	case strings.HasPrefix(unit, "ms"), strings.HasPrefix(unit, "milli"):
		return "ms"
	case strings.HasPrefix(unit, "y"):
		return "y"
	}
	return unit[:1]
}

// ParseExpiry parses a token lifetime. A number with an optional unit is read
// the way token lifetimes are usually written ("2 days", "1w", "1.5h", "1y");
// a bare number counts milliseconds. Compound Go durations such as "1h30m"
// are accepted too. Lifetimes under a second are rejected because token
// expiry has second resolution.
func ParseExpiry(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidExpiry)
	}

	var d time.Duration
	if m := expiryPattern.FindStringSubmatch(s); m != nil {
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidExpiry, s)
		}
		d = time.Duration(n * float64(expiryUnits[expiryUnit(m[2])]))
	} else {
		var err error
		d, err = time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidExpiry, s)
		}
	}

	if d < time.Second {
		return 0, fmt.Errorf("%w: %q must be at least one second", ErrInvalidExpiry, s)
	}
	return d, nil
}

// TasksDBPath places the task queue database next to the main database
// with a "-tasks" suffix.
func TasksDBPath(mainDBPath string) string {
	dir := filepath.Dir(mainDBPath)
	base := filepath.Base(mainDBPath)
	ext := filepath.Ext(base)
	name := base[:len(base)-len(ext)]
	if ext == "" {
		ext = ".db"
	}
	return filepath.Join(dir, name+"-tasks"+ext)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
