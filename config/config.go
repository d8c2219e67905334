package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Session    SessionConfig    `yaml:"session"`
	Realtime   RealtimeConfig   `yaml:"realtime"`
	Memory     MemoryConfig     `yaml:"memory"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the database connection configuration. A DSN with a
// "postgres://" prefix selects the postgres driver; anything else is treated
// as a sqlite file path.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// SessionConfig controls the conversational session store and its sweep.
type SessionConfig struct {
	SweepIntervalMinutes int           `yaml:"sweep_interval_minutes"`
	MaxIdleMinutes       int           `yaml:"max_idle_minutes"`
	StartupSweepDelaySec int           `yaml:"startup_sweep_delay_seconds"`
	SweepInterval        time.Duration `yaml:"-"`
	MaxIdle              time.Duration `yaml:"-"`
	StartupSweepDelay    time.Duration `yaml:"-"`
}

// RealtimeConfig describes the external realtime speech API used to mint
// ephemeral browser credentials. The API key comes from the environment.
type RealtimeConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	Voice   string `yaml:"voice"`
	APIKey  string `yaml:"-"`
}

// MemoryConfig describes the optional long-term memory service. An empty
// base URL (or a missing MEMORY_API_KEY) disables the integration.
type MemoryConfig struct {
	BaseURL         string `yaml:"base_url"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	APIKey          string `yaml:"-"`
}

// PushConfig holds the VAPID keys for order-ready web push notifications.
// Empty keys disable push.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// Load reads the configuration from the given path and applies defaults.
// Secrets are read from the environment, not the file.
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
	cfg.Realtime.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Memory.APIKey = os.Getenv("MEMORY_API_KEY")

	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 3001
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 60
	}

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "cafe.db"
	}

	if cfg.Session.SweepIntervalMinutes <= 0 {
		cfg.Session.SweepIntervalMinutes = 15
	}
	if cfg.Session.MaxIdleMinutes <= 0 {
		cfg.Session.MaxIdleMinutes = 30
	}
	if cfg.Session.StartupSweepDelaySec <= 0 {
		cfg.Session.StartupSweepDelaySec = 5
	}
	cfg.Session.SweepInterval = time.Duration(cfg.Session.SweepIntervalMinutes) * time.Minute
	cfg.Session.MaxIdle = time.Duration(cfg.Session.MaxIdleMinutes) * time.Minute
	cfg.Session.StartupSweepDelay = time.Duration(cfg.Session.StartupSweepDelaySec) * time.Second

	if cfg.Realtime.BaseURL == "" {
		cfg.Realtime.BaseURL = "https://api.openai.com"
	}
	if cfg.Realtime.Model == "" {
		cfg.Realtime.Model = "gpt-4o-realtime-preview-2024-12-17"
	}
	if cfg.Realtime.Voice == "" {
		cfg.Realtime.Voice = "alloy"
	}

	if cfg.Memory.CacheTTLSeconds <= 0 {
		cfg.Memory.CacheTTLSeconds = 30
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}
}
