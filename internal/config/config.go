package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Store backends
const (
	BackendMongo  = "mongo"
	BackendSQLite = "sqlite"
)

// Config holds all configuration options for the task manager
type Config struct {
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Store       StoreConfig       `yaml:"store" mapstructure:"store"`
	Client      ClientConfig      `yaml:"client" mapstructure:"client"`
	Validation  ValidationConfig  `yaml:"validation" mapstructure:"validation"`
	Application ApplicationConfig `yaml:"app" mapstructure:"app"`
}

// ServerConfig holds HTTP service configuration
type ServerConfig struct {
	Port            int           `yaml:"port" mapstructure:"port" env:"TM_PORT"`
	RequestTimeout  time.Duration `yaml:"request_timeout" mapstructure:"request_timeout" env:"TM_REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout" env:"TM_SHUTDOWN_TIMEOUT"`
	CORSOrigin      string        `yaml:"cors_origin" mapstructure:"cors_origin" env:"TM_CORS_ORIGIN"`
}

// StoreConfig holds persistence configuration
type StoreConfig struct {
	Backend        string        `yaml:"backend" mapstructure:"backend" env:"TM_STORE_BACKEND"`
	MongoURI       string        `yaml:"mongo_uri" mapstructure:"mongo_uri" env:"TM_MONGODB_URI"`
	Collection     string        `yaml:"collection" mapstructure:"collection" env:"TM_MONGODB_COLLECTION"`
	SQLitePath     string        `yaml:"sqlite_path" mapstructure:"sqlite_path" env:"TM_SQLITE_PATH"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" mapstructure:"connect_timeout" env:"TM_STORE_CONNECT_TIMEOUT"`
}

// ClientConfig holds REST client configuration
type ClientConfig struct {
	BaseURL string        `yaml:"base_url" mapstructure:"base_url" env:"TM_API_URL"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" env:"TM_CLIENT_TIMEOUT"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TitleMaxLength       int `yaml:"title_max_length" mapstructure:"title_max_length" env:"TM_TITLE_MAX"`
	DescriptionMaxLength int `yaml:"description_max_length" mapstructure:"description_max_length" env:"TM_DESCRIPTION_MAX"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Debug       bool   `yaml:"debug" mapstructure:"debug" env:"TM_DEBUG"`
	Environment string `yaml:"environment" mapstructure:"environment" env:"TM_ENV"`
	LogFile     string `yaml:"log_file" mapstructure:"log_file" env:"TM_LOG_FILE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            5000,
			RequestTimeout:  10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			CORSOrigin:      "http://localhost:3000",
		},
		Store: StoreConfig{
			Backend:        BackendMongo,
			MongoURI:       "mongodb://localhost:27017/taskmanager",
			Collection:     "tasks",
			SQLitePath:     "tm.db",
			ConnectTimeout: 10 * time.Second,
		},
		Client: ClientConfig{
			BaseURL: "http://localhost:5000/api/tasks",
			Timeout: 10 * time.Second,
		},
		Validation: ValidationConfig{
			TitleMaxLength:       0,
			DescriptionMaxLength: 0,
		},
		Application: ApplicationConfig{
			Debug:       false,
			Environment: "production",
		},
	}
}

// Addr returns the listen address for the HTTP service
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// IsDevelopment reports whether the app runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Application.Environment == "development"
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Server configuration
	if err := envInt("PORT", &c.Server.Port); err != nil {
		return err
	}
	if err := envInt("TM_PORT", &c.Server.Port); err != nil {
		return err
	}
	if err := envDuration("TM_REQUEST_TIMEOUT", &c.Server.RequestTimeout); err != nil {
		return err
	}
	if err := envDuration("TM_SHUTDOWN_TIMEOUT", &c.Server.ShutdownTimeout); err != nil {
		return err
	}
	envString("TM_CORS_ORIGIN", &c.Server.CORSOrigin)

	// Store configuration
	envString("TM_STORE_BACKEND", &c.Store.Backend)
	envString("MONGODB_URI", &c.Store.MongoURI)
	envString("TM_MONGODB_URI", &c.Store.MongoURI)
	envString("TM_MONGODB_COLLECTION", &c.Store.Collection)
	envString("TM_SQLITE_PATH", &c.Store.SQLitePath)
	if err := envDuration("TM_STORE_CONNECT_TIMEOUT", &c.Store.ConnectTimeout); err != nil {
		return err
	}

	// Client configuration
	envString("TM_API_URL", &c.Client.BaseURL)
	if err := envDuration("TM_CLIENT_TIMEOUT", &c.Client.Timeout); err != nil {
		return err
	}

	// Validation configuration
	if err := envInt("TM_TITLE_MAX", &c.Validation.TitleMaxLength); err != nil {
		return err
	}
	if err := envInt("TM_DESCRIPTION_MAX", &c.Validation.DescriptionMaxLength); err != nil {
		return err
	}

	// Application configuration
	if err := envBool("TM_DEBUG", &c.Application.Debug); err != nil {
		return err
	}
	envString("TM_ENV", &c.Application.Environment)
	envString("TM_LOG_FILE", &c.Application.LogFile)

	return nil
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return &ConfigError{Field: key, Message: fmt.Sprintf("invalid integer %q", v)}
	}
	*dst = n
	return nil
}

func envDuration(key string, dst *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return &ConfigError{Field: key, Message: fmt.Sprintf("invalid duration %q", v)}
	}
	*dst = d
	return nil
}

func envBool(key string, dst *bool) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return &ConfigError{Field: key, Message: fmt.Sprintf("invalid boolean %q", v)}
	}
	*dst = b
	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate server configuration
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return &ConfigError{Field: "server.port", Message: "port must be between 0 and 65535"}
	}
	if c.Server.RequestTimeout <= 0 {
		return &ConfigError{Field: "server.request_timeout", Message: "request timeout must be positive"}
	}
	if c.Server.ShutdownTimeout <= 0 {
		return &ConfigError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be positive"}
	}

	// Validate store configuration
	switch c.Store.Backend {
	case BackendMongo:
		if c.Store.MongoURI == "" {
			return &ConfigError{Field: "store.mongo_uri", Message: "mongo connection string cannot be empty"}
		}
	case BackendSQLite:
		if c.Store.SQLitePath == "" {
			return &ConfigError{Field: "store.sqlite_path", Message: "sqlite path cannot be empty"}
		}
	default:
		return &ConfigError{Field: "store.backend", Message: fmt.Sprintf("unknown backend %q (want %s or %s)", c.Store.Backend, BackendMongo, BackendSQLite)}
	}
	if c.Store.ConnectTimeout <= 0 {
		return &ConfigError{Field: "store.connect_timeout", Message: "connect timeout must be positive"}
	}

	// Validate client configuration
	if u, err := url.Parse(c.Client.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return &ConfigError{Field: "client.base_url", Message: "base url must be an absolute http url"}
	}
	if c.Client.Timeout <= 0 {
		return &ConfigError{Field: "client.timeout", Message: "client timeout must be positive"}
	}

	// Validate validation configuration
	if c.Validation.TitleMaxLength < 0 {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length cannot be negative"}
	}
	if c.Validation.DescriptionMaxLength < 0 {
		return &ConfigError{Field: "validation.description_max_length", Message: "description maximum length cannot be negative"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
