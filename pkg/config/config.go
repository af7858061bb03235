// Package config handles loading and managing glucoscope configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for glucoscope.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Blob   BlobConfig   `yaml:"blob"`
	Events EventsConfig `yaml:"events"`
	Log    LogConfig    `yaml:"log"`
	Client ClientConfig `yaml:"client"`
}

// ServerConfig controls the HTTP service.
type ServerConfig struct {
	Port            string   `yaml:"port"`
	StaticDir       string   `yaml:"static_dir"` // built UI; empty disables static serving
	CORSOrigins     []string `yaml:"cors_origins"`
	ShutdownTimeout int      `yaml:"shutdown_timeout"` // seconds
}

// Store backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendBlob     = "blob"
)

// StoreConfig selects and configures the record store.
type StoreConfig struct {
	Backend     string `yaml:"backend"`
	DatabaseURL string `yaml:"database_url"`
	CacheSize   int    `yaml:"cache_size"` // LRU entries in front of Get; 0 disables
}

// Blob providers.
const (
	ProviderLocal = "local"
	ProviderS3    = "s3"
	ProviderGCS   = "gcs"
)

// BlobConfig configures object storage for the blob record store.
type BlobConfig struct {
	Provider  string `yaml:"provider"`
	Dir       string `yaml:"dir"` // local provider root
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"` // S3-compatible endpoint, e.g. MinIO
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// EventsConfig configures the assessment event stream. No brokers means
// events are dropped.
type EventsConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// LogConfig controls logger construction.
type LogConfig struct {
	Mode string `yaml:"mode"` // development | production
}

// ClientConfig is read by the CLI.
type ClientConfig struct {
	Server string `yaml:"server"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			CORSOrigins:     []string{"*"},
			ShutdownTimeout: 10,
		},
		Store: StoreConfig{
			Backend:   BackendMemory,
			CacheSize: 256,
		},
		Blob: BlobConfig{
			Provider: ProviderLocal,
			Dir:      "data",
		},
		Events: EventsConfig{
			Topic: "assessments",
		},
		Log: LogConfig{
			Mode: "development",
		},
		Client: ClientConfig{
			Server: "http://localhost:8080",
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from environment variables. Unset variables leave
// the current value in place.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	set(&c.Server.Port, "PORT")
	set(&c.Server.StaticDir, "STATIC_DIR")
	set(&c.Store.Backend, "STORE_BACKEND")
	set(&c.Store.DatabaseURL, "DATABASE_URL")
	set(&c.Blob.Provider, "BLOB_PROVIDER")
	set(&c.Blob.Bucket, "BLOB_BUCKET")
	set(&c.Blob.Dir, "BLOB_DIR")
	set(&c.Blob.Region, "AWS_REGION")
	set(&c.Blob.Endpoint, "S3_ENDPOINT")
	set(&c.Blob.AccessKey, "S3_ACCESS_KEY")
	set(&c.Blob.SecretKey, "S3_SECRET_KEY")
	set(&c.Events.Topic, "KAFKA_TOPIC")
	set(&c.Log.Mode, "LOG_MODE")

	if v := getenv("KAFKA_BROKERS"); v != "" {
		c.Events.Brokers = splitList(v)
	}
	if v := getenv("RECORD_CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RECORD_CACHE_SIZE: %w", err)
		}
		c.Store.CacheSize = n
	}
	return nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory:
	case BackendPostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("store backend %q requires database_url", c.Store.Backend)
		}
	case BackendBlob:
		switch c.Blob.Provider {
		case ProviderLocal:
			if c.Blob.Dir == "" {
				return fmt.Errorf("blob provider %q requires dir", c.Blob.Provider)
			}
		case ProviderS3, ProviderGCS:
			if c.Blob.Bucket == "" {
				return fmt.Errorf("blob provider %q requires bucket", c.Blob.Provider)
			}
		default:
			return fmt.Errorf("unknown blob provider %q", c.Blob.Provider)
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}

	if c.Store.CacheSize < 0 {
		return fmt.Errorf("cache_size must not be negative, got %d", c.Store.CacheSize)
	}
	if len(c.Events.Brokers) > 0 && c.Events.Topic == "" {
		return fmt.Errorf("events brokers set without a topic")
	}
	return nil
}

// FindConfigFile looks for .glucoscope/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".glucoscope", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
