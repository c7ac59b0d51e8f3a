package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds application configuration values.
type Config struct {
	Env         string        `mapstructure:"ENV"`
	LogLevel    string        `mapstructure:"LOG_LEVEL"`
	Secret      string        `mapstructure:"SECRET"`
	HTTPPort    string        `mapstructure:"HTTP_PORT"`
	DBDriver    string        `mapstructure:"DB_DRIVER"`
	DatabaseDSN string        `mapstructure:"DATABASE_DSN"`
	DataSource  string        `mapstructure:"DATA_SOURCE"`
	CSVDir      string        `mapstructure:"CSV_DIR"`
	MockSeed    int64         `mapstructure:"MOCK_SEED"`
	MockRows    int           `mapstructure:"MOCK_ROWS"`
	CatalogCSV  string        `mapstructure:"CATALOG_CSV"`
	Sink        string        `mapstructure:"SINK"`
	KafkaBroker []string      `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic  string        `mapstructure:"KAFKA_TOPIC"`
	SessionTTL  time.Duration `mapstructure:"SESSION_TTL"`
	CORSOrigins []string      `mapstructure:"CORS_ORIGINS"`
}

var keys = []string{
	"ENV", "LOG_LEVEL", "SECRET", "HTTP_PORT", "DB_DRIVER", "DATABASE_DSN",
	"DATA_SOURCE", "CSV_DIR", "MOCK_SEED", "MOCK_ROWS", "CATALOG_CSV", "SINK",
	"KAFKA_BROKERS", "KAFKA_TOPIC", "SESSION_TTL", "CORS_ORIGINS",
}

// Load reads configuration from .env and environment variables with
// reasonable defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SECRET", "dev_secret")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "file:hmis.db?_pragma=foreign_keys(1)")
	v.SetDefault("DATA_SOURCE", "mock")
	v.SetDefault("CSV_DIR", "assets/lists")
	v.SetDefault("MOCK_SEED", 42)
	v.SetDefault("MOCK_ROWS", 120)
	v.SetDefault("CATALOG_CSV", "assets/catalog.csv")
	v.SetDefault("SINK", "log")
	v.SetDefault("KAFKA_TOPIC", "hmis.orders")
	v.SetDefault("SESSION_TTL", "30m")
	v.SetDefault("CORS_ORIGINS", "*")

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.KafkaBroker = splitList(cfg.KafkaBroker, v.GetString("KAFKA_BROKERS"))
	cfg.CORSOrigins = splitList(cfg.CORSOrigins, v.GetString("CORS_ORIGINS"))

	// Validate that port is numeric.
	if _, err := strconv.Atoi(cfg.HTTPPort); err != nil {
		log.Warn().Str("value", cfg.HTTPPort).Msg("invalid HTTP_PORT, defaulting to 8080")
		cfg.HTTPPort = "8080"
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "pgx":
	default:
		return fmt.Errorf("DB_DRIVER must be \"sqlite\" or \"pgx\", got %q", c.DBDriver)
	}
	if strings.TrimSpace(c.DatabaseDSN) == "" {
		return fmt.Errorf("DATABASE_DSN is required")
	}
	switch c.DataSource {
	case "mock", "sql", "csv":
	default:
		return fmt.Errorf("DATA_SOURCE must be \"mock\", \"sql\" or \"csv\", got %q", c.DataSource)
	}
	switch c.Sink {
	case "log", "sql":
	case "kafka":
		if len(c.KafkaBroker) == 0 {
			return fmt.Errorf("KAFKA_BROKERS is required when SINK is \"kafka\"")
		}
		if c.KafkaTopic == "" {
			return fmt.Errorf("KAFKA_TOPIC is required when SINK is \"kafka\"")
		}
	default:
		return fmt.Errorf("SINK must be \"log\", \"sql\" or \"kafka\", got %q", c.Sink)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if !c.IsDev() && c.Secret == "dev_secret" {
		return fmt.Errorf("SECRET must be set outside development")
	}
	return nil
}

func splitList(parsed []string, raw string) []string {
	if len(parsed) == 1 && strings.Contains(parsed[0], ",") {
		parsed = nil
	}
	if len(parsed) == 0 && raw != "" {
		parsed = strings.Split(raw, ",")
	}
	out := parsed[:0]
	for _, p := range parsed {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
