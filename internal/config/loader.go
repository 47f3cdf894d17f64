package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var validECLevels = map[string]bool{"L": true, "M": true, "Q": true, "H": true}

// Load reads config.yaml from ./configs or the working directory (optional),
// a .env file (optional) and environment overrides such as SERVER_PORT or REFINE_API_KEY.
func Load() (*Config, error) {
	return load("")
}

// LoadFromFile reads configuration from an explicit YAML file.
func LoadFromFile(path string) (*Config, error) {
	return load(path)
}

func load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read base config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// PORT is what most hosting platforms set.
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Server.Port = p
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.static_dir", "web/static")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("payload.country_code", "91")

	v.SetDefault("render.error_correction", "Q")
	v.SetDefault("render.card_error_correction", "M")
	v.SetDefault("render.cache_ttl", time.Hour)
	v.SetDefault("render.max_content_length", 4096)
	v.SetDefault("render.logo_dir", "uploads")

	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("refine.base_url", "")
	v.SetDefault("refine.api_key", "")
	v.SetDefault("refine.timeout", 60*time.Second)
	v.SetDefault("refine.max_retries", 2)
	v.SetDefault("refine.max_tokens", 512)
	v.SetDefault("refine.temperature", 0.2)

	v.SetDefault("idcard.max_photo_bytes", 2<<20)
	v.SetDefault("idcard.font_path", "")
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	for _, r := range c.Payload.CountryCode {
		if r < '0' || r > '9' {
			return fmt.Errorf("payload.country_code must be digits only, got %q", c.Payload.CountryCode)
		}
	}
	if !validECLevels[strings.ToUpper(c.Render.ErrorCorrection)] {
		return fmt.Errorf("render.error_correction must be one of L, M, Q, H, got %q", c.Render.ErrorCorrection)
	}
	if !validECLevels[strings.ToUpper(c.Render.CardErrorCorrection)] {
		return fmt.Errorf("render.card_error_correction must be one of L, M, Q, H, got %q", c.Render.CardErrorCorrection)
	}
	if c.Render.MaxContentLength <= 0 {
		return fmt.Errorf("render.max_content_length must be positive")
	}
	if c.Refine.MaxRetries < 0 {
		return fmt.Errorf("refine.max_retries must not be negative")
	}
	if c.Refine.Timeout <= 0 {
		return fmt.Errorf("refine.timeout must be positive")
	}
	if c.IDCard.MaxPhotoBytes <= 0 {
		return fmt.Errorf("idcard.max_photo_bytes must be positive")
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Server.Port)
}
