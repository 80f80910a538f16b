// Package config provides the YAML run configuration of the lloyd CLI.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/codec"
	"github.com/hupe1980/lloyd/distance"
	"github.com/hupe1980/lloyd/pointio"
)

// Config holds a complete clustering run.
type Config struct {
	Input      string `yaml:"input"`
	Output     string `yaml:"output"`
	Membership string `yaml:"membership"`

	Dimensions int `yaml:"dimensions"`
	Points     int `yaml:"points"`
	Clusters   int `yaml:"clusters"`
	// PointsPerCluster makes Points a per-cluster count: the run reads
	// Points*Clusters points.
	PointsPerCluster bool `yaml:"points_per_cluster"`

	MaxRounds   int    `yaml:"max_rounds"`
	Kernel      string `yaml:"kernel"`
	Format      string `yaml:"format"`
	Compression string `yaml:"compression"`
	Codec       string `yaml:"codec"`

	Log    LogConfig    `yaml:"log"`
	Limits LimitsConfig `yaml:"limits"`
	S3     S3Config     `yaml:"s3"`
	MinIO  MinIOConfig  `yaml:"minio"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// LimitsConfig holds resource limits. Sizes accept suffixes such as
// "64MB"; "0" or "unlimited" disables a limit.
type LimitsConfig struct {
	IOPerSecond string `yaml:"io_per_second"`
	Memory      string `yaml:"memory"`
}

// S3Config holds settings for s3:// locations.
type S3Config struct {
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	PathStyle bool   `yaml:"path_style"`
}

// MinIOConfig holds settings for minio:// locations.
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Region    string `yaml:"region"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// Load reads and parses the config file at path and applies defaults.
// Relative local locations are resolved against the directory of path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(cfg)

	configDir := filepath.Dir(path)
	cfg.Input = expandPath(cfg.Input, configDir)
	cfg.Output = expandPath(cfg.Output, configDir)
	cfg.Membership = expandPath(cfg.Membership, configDir)

	return cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath resolves a relative local path against configDir.
// Remote locations and empty values are returned unchanged.
func expandPath(path, configDir string) string {
	if path == "" || strings.Contains(path, "://") || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(configDir, path)
}

// Shape returns the clustering shape of the run.
func (c *Config) Shape() lloyd.Config {
	points := c.Points
	if c.PointsPerCluster {
		points *= c.Clusters
	}
	return lloyd.Config{
		Dimensions: c.Dimensions,
		Points:     points,
		Clusters:   c.Clusters,
	}
}

// Validate reports the first invalid setting. Shape errors wrap the
// lloyd sentinels in the order dimensions, points, clusters.
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.New("input location is required")
	}
	if c.Output == "" {
		return errors.New("output location is required")
	}
	if c.Dimensions < 1 {
		return fmt.Errorf("%w: %d", lloyd.ErrInvalidDimension, c.Dimensions)
	}
	if c.Points < 1 {
		return fmt.Errorf("%w: %d", lloyd.ErrInvalidPointCount, c.Points)
	}
	if c.Clusters < 1 {
		return fmt.Errorf("%w: %d", lloyd.ErrInvalidK, c.Clusters)
	}
	if c.MaxRounds < 0 {
		return fmt.Errorf("invalid max_rounds: %d", c.MaxRounds)
	}

	for _, loc := range []string{c.Input, c.Output, c.Membership} {
		if loc == "" {
			continue
		}
		if _, err := ParseLocation(loc); err != nil {
			return err
		}
	}

	if _, err := distance.ParseKernel(c.Kernel); err != nil {
		return err
	}
	if _, err := pointio.ParseFormat(c.Format); err != nil {
		return err
	}
	if _, err := pointio.ParseCompression(c.Compression); err != nil {
		return err
	}
	if _, err := codec.ByName(c.Codec); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	if _, err := ParseSize(c.Limits.IOPerSecond); err != nil {
		return fmt.Errorf("limits.io_per_second: %w", err)
	}
	if _, err := ParseSize(c.Limits.Memory); err != nil {
		return fmt.Errorf("limits.memory: %w", err)
	}
	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return level, nil
}

// String returns a representation of the config that is safe for logging.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Input: %s, Output: %s, D: %d, N: %d, K: %d, MaxRounds: %d}",
		c.Input, c.Output, c.Dimensions, c.Shape().Points, c.Clusters, c.MaxRounds,
	)
}
