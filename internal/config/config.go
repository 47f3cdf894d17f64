// Package config loads service configuration from YAML, .env and the environment.
package config

import "time"

// Config is the root configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Payload PayloadConfig `mapstructure:"payload"`
	Render  RenderConfig  `mapstructure:"render"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Refine  RefineConfig  `mapstructure:"refine"`
	IDCard  IDCardConfig  `mapstructure:"idcard"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	StaticDir       string        `mapstructure:"static_dir"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PayloadConfig controls payload formatting.
type PayloadConfig struct {
	// CountryCode is prepended to phone numbers that do not already start with it.
	CountryCode string `mapstructure:"country_code"`
}

type RenderConfig struct {
	ErrorCorrection     string        `mapstructure:"error_correction"`
	CardErrorCorrection string        `mapstructure:"card_error_correction"`
	CacheTTL            time.Duration `mapstructure:"cache_ttl"`
	MaxContentLength    int           `mapstructure:"max_content_length"`
	LogoDir             string        `mapstructure:"logo_dir"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool { return r.Address != "" }

type RefineConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxRetries  int           `mapstructure:"max_retries"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
}

// Enabled reports whether the refinement service is configured.
func (r RefineConfig) Enabled() bool { return r.BaseURL != "" }

type IDCardConfig struct {
	MaxPhotoBytes int64  `mapstructure:"max_photo_bytes"`
	FontPath      string `mapstructure:"font_path"`
}
