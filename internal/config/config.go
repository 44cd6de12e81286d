package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type Config struct {
	Server struct {
		Port            int           `yaml:"port"`
		CORSOrigins     []string      `yaml:"corsOrigins"`
		RateLimit       int           `yaml:"rateLimit"`       // burst per client
		RateRefill      int           `yaml:"rateRefill"`      // tokens per second
		ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	} `yaml:"server"`

	Log struct {
		Mode string `yaml:"mode"` // development | production
	} `yaml:"log"`

	Storage struct {
		Driver string `yaml:"driver"`
		// DSN is the sqlite path, or a full mysql/postgres DSN overriding Database.
		DSN string `yaml:"dsn"`
	} `yaml:"storage"`

	Database struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	OpenAI struct {
		APIKey  string `yaml:"apiKey"`
		Model   string `yaml:"model"`
		BaseURL string `yaml:"baseURL"`
	} `yaml:"openai"`

	License struct {
		BaseURL string        `yaml:"baseURL"`
		APIKey  string        `yaml:"apiKey"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"license"`

	Files struct {
		MaxUploadBytes int64    `yaml:"maxUploadBytes"`
		AllowedMIME    []string `yaml:"allowedMIME"`
	} `yaml:"files"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.Server.Port = 8080
	cfg.Server.CORSOrigins = []string{"http://localhost:5173"}
	cfg.Server.RateLimit = 10
	cfg.Server.RateRefill = 1
	cfg.Server.ShutdownTimeout = 10 * time.Second
	cfg.Log.Mode = "development"
	cfg.Storage.Driver = DriverSQLite
	cfg.Storage.DSN = "esg.db"
	cfg.Redis.Addr = "localhost:6379"
	cfg.OpenAI.Model = "gpt-4o-mini"
	cfg.License.Timeout = 30 * time.Second
	cfg.Files.MaxUploadBytes = 10 << 20
	cfg.Files.AllowedMIME = []string{
		"application/pdf",
		"image/*",
		"text/plain",
		"text/csv",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/msword",
		"application/vnd.ms-excel",
	}
	return &cfg
}

// Load baca file config, di atas default. File yang tidak ada = default.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	cfg.applyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv lets secrets and the backend choice come from the environment.
func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := getenv("LEMONSQUEEZY_API_KEY"); v != "" {
		c.License.APIKey = v
	}
	if v := getenv("ESG_STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := getenv("ESG_STORAGE_DSN"); v != "" {
		c.Storage.DSN = v
	}
}

func (c *Config) Validate() error {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case DriverMemory, DriverSQLite, DriverMySQL, DriverPostgres, DriverRedis:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == DriverSQLite && c.Storage.DSN == "" {
		return errors.New("storage.dsn (sqlite file path) is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Files.MaxUploadBytes <= 0 {
		return errors.New("files.maxUploadBytes must be positive")
	}
	return nil
}

// MinioEnabled reports whether blob bytes go to object storage.
func (c *Config) MinioEnabled() bool {
	return c.Minio.Endpoint != "" && c.Minio.BucketName != ""
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	if c.Storage.DSN != "" {
		return c.Storage.DSN
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// PostgresDSN builds a lib/pq keyword/value DSN.
func (c *Config) PostgresDSN() string {
	if c.Storage.DSN != "" {
		return c.Storage.DSN
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}
