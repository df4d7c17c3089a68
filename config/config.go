package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Layout   LayoutConfig   `yaml:"layout"`
	Persist  PersistConfig  `yaml:"persist"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port              int           `yaml:"port"`
	// RequestIPHeader names a header set by a trusted proxy; empty uses the peer address.
	RequestIPHeader   string        `yaml:"request_ip_header"`
	RateLimitPerSec   float64       `yaml:"rate_limit_per_sec"`
	RateLimitBurst    int           `yaml:"rate_limit_burst"`
	CacheTTLSeconds   int           `yaml:"cache_ttl_seconds"`
	SessionTTLMinutes int           `yaml:"session_ttl_minutes"`
	SessionTTL        time.Duration `yaml:"-"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	// Driver is "sqlite" (local file) or "postgres" (shared server).
	Driver                 string `yaml:"driver"`
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	SnapshotKey            string `yaml:"snapshot_key"`
}

// LayoutConfig holds the hall editor settings.
type LayoutConfig struct {
	GridPitch float64 `yaml:"grid_pitch"`
	CanvasX   float64 `yaml:"canvas_max_x"`
	CanvasY   float64 `yaml:"canvas_max_y"`
	MaxTables int     `yaml:"max_tables"`
}

// PersistConfig holds the settings of the snapshot writer.
type PersistConfig struct {
	Buffer int `yaml:"buffer"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 30
	}
	if cfg.Server.SessionTTLMinutes <= 0 {
		cfg.Server.SessionTTLMinutes = 30
	}
	cfg.Server.SessionTTL = time.Duration(cfg.Server.SessionTTLMinutes) * time.Minute

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" {
		if cfg.Database.Driver == "postgres" {
			log.Printf("database.dsn is empty for postgres; connecting with libpq defaults")
		} else {
			cfg.Database.DSN = "floor.db"
		}
	}
	if cfg.Database.SnapshotKey == "" {
		cfg.Database.SnapshotKey = "restaurant-data"
	}

	if cfg.Layout.GridPitch <= 0 {
		cfg.Layout.GridPitch = 10
	}
	if cfg.Layout.CanvasX <= 0 {
		cfg.Layout.CanvasX = 580
	}
	if cfg.Layout.CanvasY <= 0 {
		cfg.Layout.CanvasY = 520
	}
	if cfg.Layout.MaxTables <= 0 {
		cfg.Layout.MaxTables = 50
	}

	if cfg.Persist.Buffer <= 0 {
		log.Printf("persist.buffer is not set or invalid; defaulting to 16")
		cfg.Persist.Buffer = 16
	}
}
