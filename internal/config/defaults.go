package config

import "os"

// Default returns a config with every optional field set.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Kernel == "" {
		cfg.Kernel = "scalar"
	}
	if cfg.Format == "" {
		cfg.Format = "auto"
	}
	if cfg.Compression == "" {
		cfg.Compression = "auto"
	}
	if cfg.Codec == "" {
		cfg.Codec = "go-json"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Limits.IOPerSecond == "" {
		cfg.Limits.IOPerSecond = "unlimited"
	}
	if cfg.Limits.Memory == "" {
		cfg.Limits.Memory = "unlimited"
	}
	if cfg.MinIO.AccessKey == "" {
		cfg.MinIO.AccessKey = os.Getenv("MINIO_ACCESS_KEY")
	}
	if cfg.MinIO.SecretKey == "" {
		cfg.MinIO.SecretKey = os.Getenv("MINIO_SECRET_KEY")
	}
	if cfg.MinIO.Endpoint == "" {
		cfg.MinIO.Endpoint = os.Getenv("MINIO_ENDPOINT")
	}
}
