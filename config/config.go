package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pizza-deprizza/models"
)

// Config is the process configuration, read from the environment (and .env).
type Config struct {
	Port     string
	DSN      string
	GinMode  string
	LogLevel string
	LogFmt   string

	APIBaseURL  string
	HTTPTimeout time.Duration

	RefreshInterval  time.Duration
	RefreshGuard     time.Duration
	DerivedInterval  time.Duration
	StatsInterval    time.Duration
	DeliveryInterval time.Duration

	TicketDir string
}

// DefaultDSN keeps the backend in memory; the cache is shared so every pooled
// connection sees the same database.
const DefaultDSN = "file::memory:?cache=shared"

// Load reads .env files (a missing file is not an error) and the environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Config{
		Port:       getEnv("PORT", "5000"),
		DSN:        getEnv("DB_DSN", DefaultDSN),
		GinMode:    getEnv("GIN_MODE", "release"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFmt:     getEnv("LOG_FORMAT", "json"),
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:5000"),
		TicketDir:  getEnv("TICKET_DIR", "."),
	}

	durations := []struct {
		key      string
		fallback time.Duration
		dst      *time.Duration
	}{
		{"HTTP_TIMEOUT", 10 * time.Second, &cfg.HTTPTimeout},
		{"KITCHEN_REFRESH_INTERVAL", 10 * time.Second, &cfg.RefreshInterval},
		{"KITCHEN_REFRESH_GUARD", 5 * time.Second, &cfg.RefreshGuard},
		{"KITCHEN_DERIVED_INTERVAL", time.Minute, &cfg.DerivedInterval},
		{"KITCHEN_STATS_INTERVAL", 5 * time.Second, &cfg.StatsInterval},
		{"DELIVERY_POLL_INTERVAL", 30 * time.Second, &cfg.DeliveryInterval},
	}
	for _, d := range durations {
		v, err := getDuration(d.key, d.fallback)
		if err != nil {
			return Config{}, err
		}
		*d.dst = v
	}

	if p, err := strconv.Atoi(cfg.Port); err != nil || p < 1 || p > 65535 {
		return Config{}, fmt.Errorf("invalid PORT %q: must be between 1 and 65535", cfg.Port)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, v)
	}
	return d, nil
}

// OpenDB connects to SQLite and migrates the backend tables.
func OpenDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&models.MenuItem{},
		&models.OrderRecord{},
		&models.OrderStatusHistory{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}
