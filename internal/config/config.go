package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const configPathEnv = "CONFIG_FILE"

const defaultProfileTTL = 5 * time.Minute

// Config defines invoice service configuration. Values come from an
// optional YAML file (CONFIG_FILE) with environment variable overrides.
type Config struct {
	HTTP struct {
		Port string `yaml:"port"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn"`
	} `yaml:"database"`
	Redis struct {
		Addr       string `yaml:"addr"`
		Password   string `yaml:"password"`
		ProfileTTL string `yaml:"profile_ttl"`
	} `yaml:"redis"`
	Billing struct {
		CustomerPolicy string `yaml:"customer_policy"`
	} `yaml:"billing"`
	Auth struct {
		Enabled   bool   `yaml:"enabled"`
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8084"

	if path := os.Getenv(configPathEnv); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: decode yaml: %w", err)
		}
	}

	overrideString(&cfg.HTTP.Port, "INVOICE_HTTP_PORT")
	overrideString(&cfg.Database.DSN, "INVOICE_POSTGRES_DSN")
	overrideString(&cfg.Redis.Addr, "INVOICE_REDIS_ADDR")
	overrideString(&cfg.Redis.Password, "INVOICE_REDIS_PASSWORD")
	overrideString(&cfg.Redis.ProfileTTL, "INVOICE_PROFILE_CACHE_TTL")
	overrideString(&cfg.Billing.CustomerPolicy, "INVOICE_CUSTOMER_POLICY")
	overrideString(&cfg.Auth.JWTSecret, "INVOICE_JWT_SECRET")
	if v, ok := os.LookupEnv("INVOICE_AUTH_ENABLED"); ok {
		cfg.Auth.Enabled = strings.EqualFold(strings.TrimSpace(v), "true")
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	if cfg.Auth.Enabled && strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		return nil, errors.New("config: jwt secret required when auth is enabled")
	}
	if _, err := cfg.ProfileCacheTTL(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func overrideString(target *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*target = v
	}
}

// ProfileCacheTTL parses the rate-profile cache TTL, defaulting to 5m.
func (c *Config) ProfileCacheTTL() (time.Duration, error) {
	raw := strings.TrimSpace(c.Redis.ProfileTTL)
	if raw == "" {
		return defaultProfileTTL, nil
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: parse profile_ttl: %w", err)
	}
	return ttl, nil
}

// HTTPAddress returns :port style string.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8084"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
