// Package config defines the service configuration.
//
// Configuration is an explicit value constructed once at startup and passed
// to components at construction time; nothing in this codebase reads ambient
// global state after boot.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultHTTPPort     = 8310
	DefaultReadTimeout  = 120 * time.Second
	DefaultWriteTimeout = 120 * time.Second

	// DefaultCallbackDelay is the fixed delay before a deferred callback fires.
	DefaultCallbackDelay = 15 * time.Second

	// DefaultSleepDelay is the fixed delay of the /api/sleep liveness route.
	DefaultSleepDelay = 75 * time.Second

	// DefaultMaxBodyBytes caps inbound request bodies (50 MB).
	DefaultMaxBodyBytes = 50 << 20
)

// BlobStoreConfig holds credentials and addressing for the S3-compatible
// object store used for callback audit records. All fields empty means the
// blob store is disabled and audit routes degrade gracefully.
type BlobStoreConfig struct {
	Endpoint   string `yaml:"endpoint"`
	AccessKey  string `yaml:"accessKey"`
	SecretKey  string `yaml:"secretKey"`
	Region     string `yaml:"region"`
	Bucket     string `yaml:"bucket"`
	UseSSL     bool   `yaml:"useSSL"`
	InstanceID string `yaml:"instanceId"`
}

// Enabled reports whether enough is configured to build a client.
func (c BlobStoreConfig) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

// Config is the top-level service configuration.
type Config struct {
	HTTPPort     int           `yaml:"httpPort"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`

	CallbackDelay time.Duration `yaml:"callbackDelay"`
	SleepDelay    time.Duration `yaml:"sleepDelay"`
	MaxBodyBytes  int64         `yaml:"maxBodyBytes"`

	// DocsDir is an optional directory of JSON documents served by /api/docs.
	DocsDir string `yaml:"docsDir"`

	LogLevel  string `yaml:"logLevel"`
	LogFormat string `yaml:"logFormat"`

	BlobStore BlobStoreConfig `yaml:"blobStore"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		HTTPPort:      DefaultHTTPPort,
		ReadTimeout:   DefaultReadTimeout,
		WriteTimeout:  DefaultWriteTimeout,
		CallbackDelay: DefaultCallbackDelay,
		SleepDelay:    DefaultSleepDelay,
		MaxBodyBytes:  DefaultMaxBodyBytes,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// LoadFile reads a YAML configuration file over the defaults.
// Zero-valued fields in the file keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s", path)
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// FromEnv applies environment overrides for the object-store settings.
// These are the variables the mock API has always honored.
func (c *Config) FromEnv() {
	c.BlobStore.AccessKey = envOr("MOCK_API_S3_AWS_ACCESS_KEY_ID", c.BlobStore.AccessKey)
	c.BlobStore.SecretKey = envOr("MOCK_API_S3_AWS_SECRET_ACCESS_KEY", c.BlobStore.SecretKey)
	c.BlobStore.Region = envOr("MOCK_API_S3_REGION", c.BlobStore.Region)
	c.BlobStore.Bucket = envOr("MOCK_API_S3_BUCKET_NAME", c.BlobStore.Bucket)
	c.BlobStore.Endpoint = envOr("MOCK_API_S3_ENDPOINT", c.BlobStore.Endpoint)
	c.BlobStore.InstanceID = envOr("MOCK_API_INSTANCE_ID", c.BlobStore.InstanceID)
}

func (c *Config) applyDefaults() {
	if c.HTTPPort == 0 {
		c.HTTPPort = DefaultHTTPPort
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	if c.CallbackDelay == 0 {
		c.CallbackDelay = DefaultCallbackDelay
	}
	if c.SleepDelay == 0 {
		c.SleepDelay = DefaultSleepDelay
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
