package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"

	minSecretKeyLength = 32
)

var ErrInvalidConfig = errors.New("invalid config")

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
	"secret":                                     {},
	"changeme":                                   {},
}

type Config struct {
	Environment       string        `mapstructure:"ENVIRONMENT"`
	Port              string        `mapstructure:"PORT"`
	DBPath            string        `mapstructure:"DB_PATH"`
	Timezone          string        `mapstructure:"TZ"`
	SecretKey         string        `mapstructure:"SECRET_KEY"`
	RedisAddr         string        `mapstructure:"REDIS_ADDR"`
	RedisPassword     string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB           int           `mapstructure:"REDIS_DB"`
	DashboardCacheTTL time.Duration `mapstructure:"DASHBOARD_CACHE_TTL"`
	LogDir            string        `mapstructure:"LOG_DIR"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`

	Location *time.Location `mapstructure:"-"`
}

func (cfg Config) IsProduction() bool {
	return cfg.Environment == EnvironmentProduction
}

func (cfg Config) CacheEnabled() bool {
	return cfg.RedisAddr != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENVIRONMENT", EnvironmentDevelopment)
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_PATH", filepath.Join("data", "wellnest.db"))
	v.SetDefault("TZ", "UTC")
	v.SetDefault("SECRET_KEY", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("DASHBOARD_CACHE_TTL", "5m")
	v.SetDefault("LOG_DIR", "")
	v.SetDefault("LOG_LEVEL", "info")
}

// Load reads an optional .env file from path and then the environment,
// which takes precedence. An empty path reads the environment only.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.AddConfigPath(path)
		v.SetConfigName(".env")
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg *Config) normalize() error {
	cfg.Environment = strings.ToLower(strings.TrimSpace(cfg.Environment))
	if cfg.Environment != EnvironmentDevelopment && cfg.Environment != EnvironmentProduction {
		return fmt.Errorf("%w: ENVIRONMENT must be %s or %s", ErrInvalidConfig, EnvironmentDevelopment, EnvironmentProduction)
	}

	port, err := ResolvePort(cfg.Port)
	if err != nil {
		return err
	}
	cfg.Port = port

	secretKey, err := ResolveSecretKey(cfg.SecretKey)
	if err != nil {
		return err
	}
	cfg.SecretKey = secretKey

	cfg.DBPath = strings.TrimSpace(cfg.DBPath)
	if cfg.DBPath == "" {
		return fmt.Errorf("%w: DB_PATH is required", ErrInvalidConfig)
	}

	location, err := time.LoadLocation(strings.TrimSpace(cfg.Timezone))
	if err != nil {
		return fmt.Errorf("%w: TZ %q: %v", ErrInvalidConfig, cfg.Timezone, err)
	}
	cfg.Location = location

	if cfg.RedisDB < 0 {
		return fmt.Errorf("%w: REDIS_DB must not be negative", ErrInvalidConfig)
	}
	if cfg.DashboardCacheTTL < 0 {
		return fmt.Errorf("%w: DASHBOARD_CACHE_TTL must not be negative", ErrInvalidConfig)
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: LOG_LEVEL: %v", ErrInvalidConfig, err)
	}
	return nil
}

func ResolvePort(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "8080", nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("%w: PORT must be between 1 and 65535", ErrInvalidConfig)
	}
	return strconv.Itoa(port), nil
}

func ResolveSecretKey(raw string) (string, error) {
	secret := strings.TrimSpace(raw)
	if secret == "" {
		return "", fmt.Errorf("%w: SECRET_KEY is required", ErrInvalidConfig)
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return "", fmt.Errorf("%w: SECRET_KEY uses a placeholder value", ErrInvalidConfig)
	}
	if len(secret) < minSecretKeyLength {
		return "", fmt.Errorf("%w: SECRET_KEY must be at least %d characters", ErrInvalidConfig, minSecretKeyLength)
	}
	return secret, nil
}
