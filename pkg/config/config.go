// Package config loads service configuration from an optional YAML file
// with environment-variable overrides. Environment always wins, so a
// deployment can override a checked-in config file without editing it.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "30s" parse. Bare
// integers are treated as seconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, perr := time.ParseDuration(s)
		if perr != nil {
			return fmt.Errorf("config: invalid duration %q: %w", s, perr)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return err
	}
	*d = Duration(time.Duration(n) * time.Second)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the full service configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Index  IndexConfig  `yaml:"index"`
	Score  ScoreConfig  `yaml:"score"`
	Data   DataConfig   `yaml:"data"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Port            int      `yaml:"port"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
	CORSOrigins     []string `yaml:"cors_origins"`
}

type IndexConfig struct {
	MinEntries      int      `yaml:"min_entries"`
	MaxEntries      int      `yaml:"max_entries"`
	BulkLoad        bool     `yaml:"bulk_load"`
	RefreshInterval Duration `yaml:"refresh_interval"`
}

type ScoreConfig struct {
	DefaultRadiusMiles float64  `yaml:"default_radius_miles"`
	CacheTTL           Duration `yaml:"cache_ttl"`
}

// DataConfig selects where the property inventory loads from. Sources are
// tried in order: snapshot, postgres, S3; the first configured source wins.
type DataConfig struct {
	SnapshotDir string `yaml:"snapshot_dir"`
	PostgresURL string `yaml:"postgres_url"`
	S3Bucket    string `yaml:"s3_bucket"`
	S3Key       string `yaml:"s3_key"`
	S3Region    string `yaml:"s3_region"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     Duration(15 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Index: IndexConfig{
			MinEntries:      4,
			MaxEntries:      9,
			BulkLoad:        true,
			RefreshInterval: Duration(24 * time.Hour),
		},
		Score: ScoreConfig{
			DefaultRadiusMiles: 5,
			CacheTTL:           Duration(24 * time.Hour),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the config file at path (if path is non-empty and the file
// exists), then applies environment overrides on top of it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	envInt("PORT", &c.Server.Port)
	envInt("FEDLEASE_INDEX_MIN_ENTRIES", &c.Index.MinEntries)
	envInt("FEDLEASE_INDEX_MAX_ENTRIES", &c.Index.MaxEntries)
	envBool("FEDLEASE_INDEX_BULK_LOAD", &c.Index.BulkLoad)
	envDuration("FEDLEASE_INDEX_REFRESH_INTERVAL", &c.Index.RefreshInterval)
	envFloat("FEDLEASE_SCORE_RADIUS_MILES", &c.Score.DefaultRadiusMiles)
	envDuration("FEDLEASE_SCORE_CACHE_TTL", &c.Score.CacheTTL)
	envString("FEDLEASE_SNAPSHOT_DIR", &c.Data.SnapshotDir)
	envString("DATABASE_URL", &c.Data.PostgresURL)
	envString("FEDLEASE_S3_BUCKET", &c.Data.S3Bucket)
	envString("FEDLEASE_S3_KEY", &c.Data.S3Key)
	envString("AWS_REGION", &c.Data.S3Region)
	envString("LOG_LEVEL", &c.Log.Level)
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Server.Port)
	}
	if c.Index.MinEntries < 2 {
		return fmt.Errorf("config: index min_entries %d, need >= 2", c.Index.MinEntries)
	}
	if c.Index.MaxEntries < 2*c.Index.MinEntries {
		return fmt.Errorf("config: index max_entries %d, need >= 2*min_entries (%d)",
			c.Index.MaxEntries, 2*c.Index.MinEntries)
	}
	if c.Score.DefaultRadiusMiles <= 0 {
		return fmt.Errorf("config: default radius %.1f, need > 0", c.Score.DefaultRadiusMiles)
	}
	return nil
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envFloat(key string, dst *float64) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func envBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func envDuration(key string, dst *Duration) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = Duration(d)
		}
	}
}
