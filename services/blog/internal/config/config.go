package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default config file path.
const ConfigPath = "config.yaml"

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	Port     string `yaml:"port"`
	LogLevel string `yaml:"logLevel"`

	DatabaseURL   string `yaml:"databaseURL"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`

	GeminiAPIKey     string `yaml:"geminiAPIKey"`
	GeminiTextModel  string `yaml:"geminiTextModel"`
	GeminiImageModel string `yaml:"geminiImageModel"`

	AdminEmail        string `yaml:"adminEmail"`
	AdminPasswordHash string `yaml:"adminPasswordHash"`
	SessionBackend    string `yaml:"sessionBackend"`
	SessionSecret     string `yaml:"sessionSecret"`
	SessionTTL        string `yaml:"sessionTTL"`

	MinioEndpoint  string `yaml:"minioEndpoint"`
	MinioAccessKey string `yaml:"minioAccessKey"`
	MinioSecretKey string `yaml:"minioSecretKey"`
	MinioBucket    string `yaml:"minioBucket"`
	MinioUseSSL    bool   `yaml:"minioUseSSL"`

	AllowedOrigin       string   `yaml:"allowedOrigin"`
	TrustedProxies      []string `yaml:"trustedProxies"`
	GenerateRateLimit   int      `yaml:"generateRateLimit"`
	GenerateRateWindow  string   `yaml:"generateRateWindow"`
	DefaultPostCategory string   `yaml:"defaultPostCategory"`
}

// Load reads config from path (defaults to config.yaml).
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	// Override with environment variables
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.GeminiAPIKey = v
	}
	if v := os.Getenv("ADMIN_EMAIL"); v != "" {
		cfg.AdminEmail = v
	}
	if v := os.Getenv("ADMIN_PASSWORD_HASH"); v != "" {
		cfg.AdminPasswordHash = v
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		cfg.SessionSecret = v
	}
	if v := os.Getenv("MINIO_ENDPOINT"); v != "" {
		cfg.MinioEndpoint = v
	}
	if v := os.Getenv("MINIO_ACCESS_KEY"); v != "" {
		cfg.MinioAccessKey = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		cfg.MinioSecretKey = v
	}
	if v := os.Getenv("MINIO_BUCKET"); v != "" {
		cfg.MinioBucket = v
	}
	if v := os.Getenv("MINIO_USE_SSL"); v == "true" {
		cfg.MinioUseSSL = true
	}
	if v := os.Getenv("BLOG_GENERATE_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.GenerateRateLimit = n
		}
	}
	applyDefaults(&cfg)
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Session backend values.
const (
	SessionBackendJWT   = "jwt"
	SessionBackendRedis = "redis"
)

func applyDefaults(cfg *FileConfig) {
	if cfg.SessionBackend == "" {
		cfg.SessionBackend = SessionBackendJWT
	}
	if cfg.GeminiTextModel == "" {
		cfg.GeminiTextModel = "gemini-2.5-flash"
	}
	if cfg.GeminiImageModel == "" {
		cfg.GeminiImageModel = "gemini-2.5-flash-image"
	}
	if cfg.SessionTTL == "" {
		cfg.SessionTTL = "12h"
	}
	if cfg.GenerateRateLimit <= 0 {
		cfg.GenerateRateLimit = 5
	}
	if cfg.GenerateRateWindow == "" {
		cfg.GenerateRateWindow = "1m"
	}
	if cfg.DefaultPostCategory == "" {
		cfg.DefaultPostCategory = "Geral"
	}
}

func validateConfig(cfg FileConfig) error {
	if cfg.Port == "" {
		return errors.New("config: port is required (set in config.yaml)")
	}
	if cfg.DatabaseURL == "" {
		return errors.New("config: databaseURL is required (set in config.yaml or DATABASE_URL)")
	}
	if cfg.RedisAddr == "" {
		return errors.New("config: redisAddr is required (set in config.yaml or REDIS_ADDR)")
	}
	if cfg.GeminiAPIKey == "" {
		return errors.New("config: geminiAPIKey is required (set in config.yaml or GEMINI_API_KEY)")
	}
	if cfg.AdminEmail == "" {
		return errors.New("config: adminEmail is required (set in config.yaml or ADMIN_EMAIL)")
	}
	if cfg.AdminPasswordHash == "" {
		return errors.New("config: adminPasswordHash is required (set in config.yaml or ADMIN_PASSWORD_HASH)")
	}
	switch cfg.SessionBackend {
	case SessionBackendJWT:
		if cfg.SessionSecret == "" {
			return errors.New("config: sessionSecret is required for the jwt session backend (set in config.yaml or SESSION_SECRET)")
		}
	case SessionBackendRedis:
		// Sessions live server-side in Redis; no signing secret needed.
	default:
		return fmt.Errorf("config: sessionBackend must be %q or %q", SessionBackendJWT, SessionBackendRedis)
	}
	return nil
}

// ParseSessionTTL parses the session TTL duration string.
func ParseSessionTTL(raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse sessionTTL: %w", err)
	}
	if d <= 0 {
		return 0, errors.New("sessionTTL must be positive")
	}
	return d, nil
}

// ParseRateWindow parses the generate rate window duration string.
func ParseRateWindow(raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse generateRateWindow: %w", err)
	}
	if d <= 0 {
		return 0, errors.New("generateRateWindow must be positive")
	}
	return d, nil
}
