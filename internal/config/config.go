package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Advisor/internal/catalog"
	"github.com/MikeSquared-Agency/Advisor/internal/scoring"
)

// Catalog sources.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceHTTP     = "http"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Sessions SessionsConfig `yaml:"sessions"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Database DatabaseConfig `yaml:"database"`
	Hermes   HermesConfig   `yaml:"hermes"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port        int `yaml:"port"`
	MetricsPort int `yaml:"metrics_port"`
	RateLimit   int `yaml:"rate_limit"`
}

type SessionsConfig struct {
	TTLMinutes      int `yaml:"ttl_minutes"`
	SweepIntervalMs int `yaml:"sweep_interval_ms"`
	Max             int `yaml:"max"`
}

type CatalogConfig struct {
	Path         string `yaml:"path"`
	Encoding     string `yaml:"encoding"`
	Source       string `yaml:"source"`
	DefaultBrand string `yaml:"default_brand"`
	// URL and Token locate a remote feed for the http source.
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

type ScoringConfig struct {
	Weights       ScoringWeights `yaml:"weights"`
	TopN          int            `yaml:"top_n"`
	Seed          uint64         `yaml:"seed"`
	ParetoEnabled bool           `yaml:"pareto_enabled"`
}

type ScoringWeights struct {
	Price      float64 `yaml:"price"`
	Horsepower float64 `yaml:"horsepower"`
	Seats      float64 `yaml:"seats"`
	Fuel       float64 `yaml:"fuel"`
	Brand      float64 `yaml:"brand"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Sessions.TTLMinutes) * time.Minute
}

func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.Sessions.SweepIntervalMs) * time.Millisecond
}

// Weights converts the configured weights into the scorer's table.
func (c *Config) Weights() scoring.WeightSet {
	w := c.Scoring.Weights
	return scoring.WeightSet{
		Price:      w.Price,
		Horsepower: w.Horsepower,
		Seats:      w.Seats,
		Fuel:       w.Fuel,
		Brand:      w.Brand,
	}
}

// BuildOptions returns the catalog cleaning options.
func (c *Config) BuildOptions() catalog.BuildOptions {
	return catalog.BuildOptions{DefaultBrand: c.Catalog.DefaultBrand}
}

// Validate rejects settings the advisor cannot run with.
func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case SourceCSV:
		if c.Catalog.Path == "" {
			return errors.New("catalog.path is required for the csv source")
		}
	case SourcePostgres:
		if c.Database.URL == "" {
			return errors.New("database.url is required for the postgres source")
		}
	case SourceHTTP:
		if c.Catalog.URL == "" {
			return errors.New("catalog.url is required for the http source")
		}
	default:
		return fmt.Errorf("unknown catalog source %q", c.Catalog.Source)
	}
	switch catalog.Encoding(c.Catalog.Encoding) {
	case catalog.EncodingLatin1, catalog.EncodingUTF8:
	default:
		return fmt.Errorf("unknown catalog encoding %q", c.Catalog.Encoding)
	}
	if c.Scoring.TopN <= 0 {
		return fmt.Errorf("scoring.top_n must be positive, got %d", c.Scoring.TopN)
	}
	if err := c.Weights().Validate(); err != nil {
		return fmt.Errorf("scoring.weights: %w", err)
	}
	return nil
}

// LoadEnvFile loads KEY=VALUE pairs from a .env file into the process
// environment without overriding variables that are already set. A missing
// file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
			RateLimit:   120,
		},
		Sessions: SessionsConfig{
			TTLMinutes:      30,
			SweepIntervalMs: 60000,
			Max:             10000,
		},
		Catalog: CatalogConfig{
			Path:     "data/vehicles.csv",
			Encoding: string(catalog.EncodingLatin1),
			Source:   SourceCSV,
		},
		Hermes: HermesConfig{
			URL: "nats://localhost:4222",
		},
		Scoring: ScoringConfig{
			Weights: ScoringWeights{
				Price:      0.35,
				Horsepower: 0.25,
				Seats:      0.15,
				Fuel:       0.15,
				Brand:      0.10,
			},
			TopN:          10,
			ParetoEnabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ADVISOR_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("ADVISOR_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("ADVISOR_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.RateLimit = n
		}
	}
	if v := os.Getenv("ADVISOR_SESSION_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Sessions.TTLMinutes = n
		}
	}
	if v := os.Getenv("ADVISOR_CATALOG_PATH"); v != "" {
		cfg.Catalog.Path = v
	}
	if v := os.Getenv("ADVISOR_CATALOG_ENCODING"); v != "" {
		cfg.Catalog.Encoding = v
	}
	if v := os.Getenv("ADVISOR_CATALOG_SOURCE"); v != "" {
		cfg.Catalog.Source = v
	}
	if v := os.Getenv("ADVISOR_CATALOG_URL"); v != "" {
		cfg.Catalog.URL = v
	}
	if v := os.Getenv("ADVISOR_CATALOG_TOKEN"); v != "" {
		cfg.Catalog.Token = v
	}
	if v := os.Getenv("ADVISOR_DEFAULT_BRAND"); v != "" {
		cfg.Catalog.DefaultBrand = v
	}
	if v := os.Getenv("ADVISOR_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("ADVISOR_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("ADVISOR_TOP_N"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scoring.TopN = n
		}
	}
	if v := os.Getenv("ADVISOR_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Scoring.Seed = n
		}
	}
	if v := os.Getenv("ADVISOR_PARETO_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Scoring.ParetoEnabled = b
		}
	}
	if v := os.Getenv("ADVISOR_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("ADVISOR_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
