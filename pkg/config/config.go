// Package config loads harvester configuration from environment
// variables, an optional .env file, and built-in defaults.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/b33n-tech/scrapper-persee/pkg/logger"
	"github.com/b33n-tech/scrapper-persee/pkg/metadata"
	"github.com/b33n-tech/scrapper-persee/pkg/utils"
)

const (
	envPrefix = "PERSEE"

	// DefaultEndpoint is the Persée OAI-PMH base endpoint.
	DefaultEndpoint = "http://oai.persee.fr/oai"

	// DefaultPrefix is the metadata format requested from the repository.
	DefaultPrefix = "oai_dc"
)

// Config holds the configuration for the harvester.
type Config struct {
	// Endpoint is the OAI-PMH base URL.
	Endpoint string `mapstructure:"endpoint" validate:"required,url" comment:"OAI-PMH base endpoint"`

	// MetadataPrefix is the OAI metadata format.
	MetadataPrefix string `mapstructure:"metadata_prefix" validate:"required" comment:"OAI metadata format"`

	// Delay is slept before every ListIdentifiers page and GetRecord
	// request, including the first.
	Delay time.Duration `mapstructure:"delay" validate:"min=0" comment:"Politeness delay before each request"`

	// DiscoveryDelay is slept before every ListSets page.
	DiscoveryDelay time.Duration `mapstructure:"discovery_delay" validate:"min=0" comment:"Politeness delay before each ListSets page"`

	// Timeout bounds every single HTTP request.
	Timeout time.Duration `mapstructure:"timeout" validate:"min=1s" comment:"Per-request HTTP timeout"`

	// MaxRecords caps the number of records fetched, 0 = unlimited.
	MaxRecords int `mapstructure:"max_records" validate:"min=0" comment:"Cap on fetched records (0 = unlimited)"`

	// OutputDir is where the CSV/JSON exports are written.
	OutputDir string `mapstructure:"output_dir" validate:"required" comment:"Export directory"`

	LogLevel string `mapstructure:"log_level" validate:"required" comment:"Log level"`

	// URLRules map identifier naming conventions to source URLs. Not
	// environment-driven; defaults cover the Persée patterns.
	URLRules []metadata.URLRule `mapstructure:"-"`
}

// Init initializes Viper configuration
func Init() {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	setDefaults()
}

// setDefaults sets the default values for the configuration
func setDefaults() {
	viper.SetDefault("endpoint", DefaultEndpoint)
	viper.SetDefault("metadata_prefix", DefaultPrefix)
	viper.SetDefault("delay", time.Second)
	viper.SetDefault("discovery_delay", 500*time.Millisecond)
	viper.SetDefault("timeout", 30*time.Second)
	viper.SetDefault("max_records", 0)
	viper.SetDefault("output_dir", ".")
	viper.SetDefault("log_level", "info")
}

// Load loads the configuration from the environment variables and .env file
func Load() (*Config, error) {
	// Load .env if it exists
	if _, err := os.Stat(".env"); err == nil {
		logger.Info("Loading .env file")
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	// Unmarshal the configuration
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	if len(cfg.URLRules) == 0 {
		cfg.URLRules = metadata.DefaultURLRules()
	}

	// Validate the configuration
	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate validates the configuration
func validate(cfg *Config) error {
	if !utils.ValidateLogLevel(cfg.LogLevel) {
		return fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}
	validate := validator.New()
	return validate.Struct(cfg)
}
