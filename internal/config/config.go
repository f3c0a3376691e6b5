package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the ftfacade configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Search   SearchConfig   `yaml:"search"`
	Indexer  IndexerConfig  `yaml:"indexer"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds search engine connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // redis (default)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	WriteMode        string   `yaml:"write_mode"` // ftadd (default) | hash
	KeyPrefix        string   `yaml:"key_prefix"` // hash mode only
}

// SearchConfig names the index and suggestion dictionaries.
type SearchConfig struct {
	Index         string  `yaml:"index"`
	CompanyDict   string  `yaml:"company_dict"`
	ProductDict   string  `yaml:"product_dict"`
	SuggestWeight float64 `yaml:"suggest_weight"`
	DocScore      float64 `yaml:"doc_score"`
}

// IndexerConfig holds bulk indexing settings.
type IndexerConfig struct {
	Workers    int     `yaml:"workers"`
	RatePerSec float64 `yaml:"rate_per_sec"` // 0 = unlimited
	RateBurst  int     `yaml:"rate_burst"`
	MaxDocs    int     `yaml:"max_docs"`
	Seed       uint64  `yaml:"seed"` // 0 = random
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 5000
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 60
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "redis"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Database.WriteMode == "" {
		c.Database.WriteMode = "ftadd"
	}
	if c.Database.WriteMode == "hash" && c.Database.KeyPrefix == "" {
		c.Database.KeyPrefix = "doc:"
	}
	if c.Search.Index == "" {
		c.Search.Index = "searchIndex"
	}
	if c.Search.CompanyDict == "" {
		c.Search.CompanyDict = "autoCompanyIndex"
	}
	if c.Search.ProductDict == "" {
		c.Search.ProductDict = "autoProductIndex"
	}
	if c.Search.SuggestWeight <= 0 {
		c.Search.SuggestWeight = 100
	}
	if c.Search.DocScore <= 0 {
		c.Search.DocScore = 1
	}
	if c.Indexer.Workers <= 0 {
		c.Indexer.Workers = 16
	}
	if c.Indexer.RateBurst <= 0 {
		c.Indexer.RateBurst = c.Indexer.Workers
	}
	if c.Indexer.MaxDocs <= 0 {
		c.Indexer.MaxDocs = 100000
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if c.Database.Driver != "redis" {
		return fmt.Errorf("database.driver must be \"redis\", got %q", c.Database.Driver)
	}
	switch c.Database.WriteMode {
	case "ftadd":
	case "hash":
		if c.Database.KeyPrefix == "" {
			return fmt.Errorf("database.key_prefix is required when write_mode is \"hash\"")
		}
	default:
		return fmt.Errorf("database.write_mode must be \"ftadd\" or \"hash\", got %q", c.Database.WriteMode)
	}
	if c.Database.DB < 0 {
		return fmt.Errorf("database.db must not be negative, got %d", c.Database.DB)
	}
	if c.Indexer.RatePerSec < 0 {
		return fmt.Errorf("indexer.rate_per_sec must not be negative, got %v", c.Indexer.RatePerSec)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
