package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete service configuration. Values come from an optional
// YAML file, overridden by environment variables; anything unset falls back
// to defaults.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Events EventsConfig `yaml:"events"`
	Index  IndexConfig  `yaml:"index"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type EventsConfig struct {
	// APIURL is the upstream events API. Empty means the built-in sample
	// catalog is used.
	APIURL  string        `yaml:"api_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type IndexConfig struct {
	// Path is the SQLite index location. Empty keeps the index in memory.
	Path            string        `yaml:"path"`
	Collection      string        `yaml:"collection"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	BatchSize       int           `yaml:"batch_size"`
	Embedder        string        `yaml:"embedder"` // tfidf (default) or word2vec
}

// Default returns the configuration used when nothing is supplied.
func Default() Config {
	return Config{
		Server: ServerConfig{Port: "8000"},
		Events: EventsConfig{Timeout: 10 * time.Second},
		Index: IndexConfig{
			Collection:      "event_content",
			RefreshInterval: 30 * time.Minute,
			BatchSize:       20,
		},
	}
}

// Load reads the config file at path (or $EVENTSCOUT_CONFIG, or
// .eventscout.yml) and applies environment overrides. A missing file is not
// an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("EVENTSCOUT_CONFIG")
	}
	if path == "" {
		path = ".eventscout.yml"
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getString("EVENTSCOUT_PORT", cfg.Server.Port)
	cfg.Events.APIURL = getString("EVENTSCOUT_EVENTS_API_URL", cfg.Events.APIURL)
	cfg.Events.Timeout = getDuration("EVENTSCOUT_EVENTS_TIMEOUT", cfg.Events.Timeout)
	cfg.Index.Path = getString("EVENTSCOUT_INDEX_PATH", cfg.Index.Path)
	cfg.Index.Collection = getString("EVENTSCOUT_COLLECTION", cfg.Index.Collection)
	cfg.Index.RefreshInterval = getDuration("EVENTSCOUT_REFRESH_INTERVAL", cfg.Index.RefreshInterval)
	cfg.Index.BatchSize = getInt("EVENTSCOUT_BATCH_SIZE", cfg.Index.BatchSize)
	cfg.Index.Embedder = getString("EVENTSCOUT_EMBEDDER", cfg.Index.Embedder)
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
