package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// PageSizes is the fixed set of selectable page sizes for the task table
var PageSizes = []int{5, 10, 20, 50}

// IsValidPageSize checks if a page size is one of the selectable values
func IsValidPageSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}
	return false
}

// Config holds all configuration options for the taskify client
type Config struct {
	Server      ServerConfig
	Storage     StorageConfig
	Table       TableConfig
	Application ApplicationConfig
}

// ServerConfig holds backend connection configuration
type ServerConfig struct {
	BaseURL        string        `env:"TASKIFY_SERVER_URL"`
	RequestTimeout time.Duration `env:"TASKIFY_SERVER_TIMEOUT"`
}

// StorageConfig holds local credential storage configuration
type StorageConfig struct {
	Dir            string        `env:"TASKIFY_STORAGE_DIR"`
	Filename       string        `env:"TASKIFY_STORAGE_FILENAME"`
	QueryTimeout   time.Duration `env:"TASKIFY_STORAGE_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `env:"TASKIFY_STORAGE_WRITE_TIMEOUT"`
	DirPermissions uint32        `env:"TASKIFY_STORAGE_DIR_PERMISSIONS"`
}

// TableConfig holds task table defaults
type TableConfig struct {
	DefaultPageSize int `env:"TASKIFY_TABLE_PAGE_SIZE"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"TASKIFY_APP_TIMEOUT"`
	Verbose bool          `env:"TASKIFY_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultStorageDir := filepath.Join(homeDir, ".taskify")

	return &Config{
		Server: ServerConfig{
			BaseURL:        "http://localhost:3000/api",
			RequestTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Dir:            defaultStorageDir,
			Filename:       "taskify.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0700,
		},
		Table: TableConfig{
			DefaultPageSize: 5,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetStoragePath returns the full path to the credential storage file
func (c *Config) GetStoragePath() string {
	return filepath.Join(c.Storage.Dir, c.Storage.Filename)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Server configuration
	if url := os.Getenv("TASKIFY_SERVER_URL"); url != "" {
		c.Server.BaseURL = url
	}
	if timeout := os.Getenv("TASKIFY_SERVER_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Server.RequestTimeout = d
		}
	}

	// Storage configuration
	if dir := os.Getenv("TASKIFY_STORAGE_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if filename := os.Getenv("TASKIFY_STORAGE_FILENAME"); filename != "" {
		c.Storage.Filename = filename
	}
	if timeout := os.Getenv("TASKIFY_STORAGE_QUERY_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Storage.QueryTimeout = d
		}
	}
	if timeout := os.Getenv("TASKIFY_STORAGE_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Storage.WriteTimeout = d
		}
	}
	if perms := os.Getenv("TASKIFY_STORAGE_DIR_PERMISSIONS"); perms != "" {
		if p, err := strconv.ParseUint(perms, 8, 32); err == nil {
			c.Storage.DirPermissions = uint32(p)
		}
	}

	// Table configuration
	if size := os.Getenv("TASKIFY_TABLE_PAGE_SIZE"); size != "" {
		if n, err := strconv.Atoi(size); err == nil && IsValidPageSize(n) {
			c.Table.DefaultPageSize = n
		}
	}

	// Application configuration
	if timeout := os.Getenv("TASKIFY_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}
	if verbose := os.Getenv("TASKIFY_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate server configuration
	if c.Server.BaseURL == "" {
		return &ConfigError{Field: "server.base_url", Message: "server base URL cannot be empty"}
	}
	if c.Server.RequestTimeout <= 0 {
		return &ConfigError{Field: "server.request_timeout", Message: "request timeout must be positive"}
	}

	// Validate storage configuration
	if c.Storage.Dir == "" {
		return &ConfigError{Field: "storage.dir", Message: "storage directory cannot be empty"}
	}
	if c.Storage.Filename == "" {
		return &ConfigError{Field: "storage.filename", Message: "storage filename cannot be empty"}
	}
	if c.Storage.QueryTimeout <= 0 {
		return &ConfigError{Field: "storage.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Storage.WriteTimeout <= 0 {
		return &ConfigError{Field: "storage.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate table configuration
	if !IsValidPageSize(c.Table.DefaultPageSize) {
		return &ConfigError{Field: "table.default_page_size", Message: "page size must be one of 5, 10, 20, 50"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
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
