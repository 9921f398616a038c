package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultEnvFile is read from the working directory when present
const DefaultEnvFile = ".env"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config     *Config
	configFile string
	envFile    string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config:  NewConfig(),
		envFile: DefaultEnvFile,
	}
}

// WithConfigFile sets the YAML file to read. TM_CONFIG is used when empty.
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// WithEnvFile sets the dotenv file to read. An empty path skips it.
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envFile = path
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the YAML config file
// 3. Load the .env file into the environment (existing variables win)
// 4. Override with environment variables
// 5. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	path := l.configFile
	if path == "" {
		path = os.Getenv("TM_CONFIG")
	}
	if path != "" {
		if err := loadFile(path, l.config); err != nil {
			return nil, err
		}
	}

	if l.envFile != "" {
		if err := godotenv.Load(l.envFile); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			return nil, &ConfigError{Field: "env_file", Message: err.Error()}
		}
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

func loadFile(path string, cfg *Config) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return &ConfigError{Field: "config_file", Message: err.Error()}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return &ConfigError{Field: "config_file", Message: err.Error()}
	}
	return nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Server overrides
	Port       *int
	CORSOrigin *string

	// Store overrides
	StoreBackend *string
	MongoURI     *string
	SQLitePath   *string

	// Client overrides
	APIURL        *string
	ClientTimeout *time.Duration

	// Application overrides
	Debug   *bool
	LogFile *string
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.Port != nil {
		config.Server.Port = *overrides.Port
	}
	if overrides.CORSOrigin != nil {
		config.Server.CORSOrigin = *overrides.CORSOrigin
	}

	if overrides.StoreBackend != nil {
		config.Store.Backend = *overrides.StoreBackend
	}
	if overrides.MongoURI != nil {
		config.Store.MongoURI = *overrides.MongoURI
	}
	if overrides.SQLitePath != nil {
		config.Store.SQLitePath = *overrides.SQLitePath
	}

	if overrides.APIURL != nil {
		config.Client.BaseURL = *overrides.APIURL
	}
	if overrides.ClientTimeout != nil {
		config.Client.Timeout = *overrides.ClientTimeout
	}

	if overrides.Debug != nil {
		config.Application.Debug = *overrides.Debug
	}
	if overrides.LogFile != nil {
		config.Application.LogFile = *overrides.LogFile
	}
}
