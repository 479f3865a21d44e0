package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"logging.level"`
	LogFormat   string `mapstructure:"logging.format"`
	Backend     BackendConfig
	Warehouse   WarehouseConfig
	Sandbox     SandboxConfig
}

// BackendConfig holds the hosted backend connection settings
type BackendConfig struct {
	URL           string        `mapstructure:"backend.url"`
	APIKey        string        `mapstructure:"backend.api_key"`
	Timeout       time.Duration `mapstructure:"backend.timeout"`
	ExportTimeout time.Duration `mapstructure:"backend.export_timeout"`
	UserName      string        `mapstructure:"backend.user_name"`
}

// WarehouseConfig holds the current warehouse selection.
// The client operates against exactly one warehouse at a time.
type WarehouseConfig struct {
	ID    string `mapstructure:"warehouse.id"`
	Name  string `mapstructure:"warehouse.name"`
	Limit int    `mapstructure:"warehouse.fetch_limit"`
}

// SandboxConfig holds settings for the local sandbox backend
type SandboxConfig struct {
	Address  string `mapstructure:"sandbox.address"`
	DBDriver string `mapstructure:"sandbox.db_driver"` // sqlite or postgres
	DBDSN    string `mapstructure:"sandbox.db_dsn"`
	Seed     bool   `mapstructure:"sandbox.seed"`
}

// LoadConfig reads configuration from file or environment variables
func LoadConfig(path string) (Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Setup configuration paths
	v.AddConfigPath(path)
	v.AddConfigPath("./config")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
		// Continue without a config file - ENV vars and defaults still apply
	}

	// Enable environment variables to override config
	v.SetEnvPrefix("WAREHOUSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// Core settings
	v.SetDefault("environment", "development")

	// Backend settings
	v.SetDefault("backend.url", "http://localhost:8096")
	v.SetDefault("backend.api_key", "")
	v.SetDefault("backend.timeout", "15s")
	v.SetDefault("backend.export_timeout", "30s")
	v.SetDefault("backend.user_name", "")

	// Warehouse settings
	v.SetDefault("warehouse.id", "")
	v.SetDefault("warehouse.name", "")
	v.SetDefault("warehouse.fetch_limit", 1000)

	// Sandbox settings
	v.SetDefault("sandbox.address", "0.0.0.0:8096")
	v.SetDefault("sandbox.db_driver", "sqlite")
	v.SetDefault("sandbox.db_dsn", "warehouse-sandbox.db")
	v.SetDefault("sandbox.seed", false)

	// Logging settings
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}
