package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Trends struct {
		BaseURL  string        `yaml:"base_url"`
		Language string        `yaml:"language"`
		Timezone int           `yaml:"timezone"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"trends"`
	RateLimit struct {
		Interval  time.Duration `yaml:"interval"`
		Exclusive bool          `yaml:"exclusive"`
	} `yaml:"rate_limit"`
	Chart struct {
		Path   string `yaml:"path"`
		Width  int    `yaml:"width"`
		Height int    `yaml:"height"`
	} `yaml:"chart"`
	Cache struct {
		Backend string        `yaml:"backend"` // none, memory or redis
		TTL     time.Duration `yaml:"ttl"`
		Redis   struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	History struct {
		Backend string `yaml:"backend"` // none, kafka or clickhouse
	} `yaml:"history"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Host         string        `yaml:"host"`
		Port         int           `yaml:"port"`
		Database     string        `yaml:"database"`
		User         string        `yaml:"user"`
		Password     string        `yaml:"password"`
		DialTimeout  time.Duration `yaml:"dial_timeout"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"clickhouse"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("PORT"); v != "" {
		fmt.Sscanf(v, "%d", &c.Server.Port)
	}
	if v := os.Getenv("TRENDS_BASE_URL"); v != "" {
		c.Trends.BaseURL = v
	}
	if v := os.Getenv("HISTORY_BACKEND"); v != "" {
		c.History.Backend = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}
	if v := os.Getenv("CLICKHOUSE_PASSWORD"); v != "" {
		c.ClickHouse.Password = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Trends.BaseURL == "" {
		c.Trends.BaseURL = "https://trends.google.com"
	}
	if c.Trends.Language == "" {
		c.Trends.Language = "en-US"
	}
	if c.Trends.Timeout == 0 {
		c.Trends.Timeout = 10 * time.Second
	}
	if c.RateLimit.Interval == 0 {
		c.RateLimit.Interval = 10 * time.Second
	}
	if c.Chart.Path == "" {
		c.Chart.Path = "web/static/chart.png"
	}
	if c.Chart.Width == 0 {
		c.Chart.Width = 1200
	}
	if c.Chart.Height == 0 {
		c.Chart.Height = 600
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 5 * time.Minute
	}
	if c.History.Backend == "" {
		c.History.Backend = "none"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	switch c.Cache.Backend {
	case "none", "memory", "redis":
	default:
		return fmt.Errorf("cache.backend must be 'none', 'memory' or 'redis', got '%s'", c.Cache.Backend)
	}
	switch c.History.Backend {
	case "none":
	case "kafka":
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka.brokers required when history.backend is 'kafka'")
		}
		if c.Kafka.Topic == "" {
			return fmt.Errorf("kafka.topic required when history.backend is 'kafka'")
		}
	case "clickhouse":
		if c.ClickHouse.Host == "" {
			return fmt.Errorf("clickhouse.host required when history.backend is 'clickhouse'")
		}
	default:
		return fmt.Errorf("history.backend must be 'none', 'kafka' or 'clickhouse', got '%s'", c.History.Backend)
	}
	if c.RateLimit.Interval < 0 {
		return fmt.Errorf("rate_limit.interval cannot be negative")
	}
	return nil
}
