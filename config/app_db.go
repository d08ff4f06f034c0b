package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/akeren/creatorchain/internal/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var ErrDatabaseNotConfigured = errors.New("database is not configured")

// DBConfig describes the optional submission audit database.
type DBConfig struct {
	Driver          string
	URL             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	SQLitePath      string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

func NewDBConfigFromEnv() *DBConfig {
	env := func(key string) string {
		return sanitizeEnv(GetValueFromEnvironmentVariable(key, ""))
	}

	cfg := &DBConfig{
		Driver:          strings.ToLower(env("DATABASE_DRIVER")),
		URL:             env("APP_DATABASE_URL"),
		Host:            env("POSTGRES_HOST"),
		Port:            env("POSTGRES_PORT"),
		User:            env("POSTGRES_USER"),
		Password:        env("POSTGRES_PASSWORD"),
		Name:            env("POSTGRES_DB_NAME"),
		SSLMode:         env("POSTGRES_SSLMODE"),
		SQLitePath:      env("SQLITE_PATH"),
		MaxIdleConns:    10,
		MaxOpenConns:    25,
		ConnMaxLifetime: 5 * time.Minute,
	}
	if cfg.Driver == "" {
		cfg.Driver = DriverPostgres
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "require"
	}
	return cfg
}

func (cfg *DBConfig) IsConfigured() bool {
	if cfg.Driver == DriverSQLite {
		return cfg.SQLitePath != ""
	}
	return cfg.URL != "" || cfg.Host != ""
}

func (cfg *DBConfig) postgresDSN() (string, error) {
	if cfg.URL != "" {
		return cfg.URL, nil
	}

	var missing []string
	for name, value := range map[string]string{
		"POSTGRES_HOST":    cfg.Host,
		"POSTGRES_PORT":    cfg.Port,
		"POSTGRES_USER":    cfg.User,
		"POSTGRES_DB_NAME": cfg.Name,
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("missing required database env vars: %s", strings.Join(missing, ", "))
	}

	port, err := strconv.Atoi(cfg.Port)
	if err != nil {
		return "", fmt.Errorf("invalid POSTGRES_PORT %q: %w", cfg.Port, err)
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
	), nil
}

func (cfg *DBConfig) dialector() (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverSQLite:
		return sqlite.Open(cfg.SQLitePath), nil
	case DriverPostgres:
		dsn, err := cfg.postgresDSN()
		if err != nil {
			return nil, err
		}
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.Driver)
	}
}

func NewDatabase(logger *log.Logger, cfg *DBConfig) (*gorm.DB, error) {
	if cfg == nil {
		cfg = NewDBConfigFromEnv()
	}
	if !cfg.IsConfigured() {
		return nil, ErrDatabaseNotConfigured
	}

	dialector, err := cfg.dialector()
	if err != nil {
		logger.Error("Invalid database configuration", "error", err)
		return nil, err
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	logger.Info("Database connection established", "driver", cfg.Driver)
	return gdb, nil
}

// NewDatabaseOrNil returns nil when no database is configured. A configured
// but unreachable database is still an error.
func NewDatabaseOrNil(logger *log.Logger, cfg *DBConfig) (*gorm.DB, error) {
	db, err := NewDatabase(logger, cfg)
	if errors.Is(err, ErrDatabaseNotConfigured) {
		logger.Info("Database is not configured; submission audit disabled")
		return nil, nil
	}
	return db, err
}

func sanitizeEnv(v string) string {
	s := strings.TrimSpace(v)

	if len(s) >= 2 && ((s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'')) {
		s = s[1 : len(s)-1]
	}

	return s
}

func AutoMigrate(logger *log.Logger, db *gorm.DB, models ...interface{}) error {
	if db == nil {
		return fmt.Errorf("cannot migrate: db is empty")
	}

	if err := db.AutoMigrate(models...); err != nil {
		logger.Error("Database migration failed", "error", err)
		return fmt.Errorf("auto-migrate failed: %w", err)
	}

	logger.Info("Database migration completed", "models", len(models))
	return nil
}

func CloseDatabase(db *gorm.DB, logger *log.Logger) {
	if db == nil {
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Failed to get SQL DB instance", "error", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("Failed to close database", "error", err)
		return
	}
	logger.Info("Database closed")
}
