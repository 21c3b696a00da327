// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// StoreConfig holds settings for the catalog database.
type StoreConfig struct {
	// Path is the SQLite database file path (e.g. "data/catalog.db").
	Path string `json:"path" yaml:"path"`

	// QueryTimeout bounds each store operation (default 5s). Timeouts
	// are reported the same way as connection failures.
	QueryTimeout time.Duration `json:"query_timeout" yaml:"query_timeout"`

	// MaxOpenConns caps the connection pool (default 8). Each in-flight
	// request checks out its own connection; connections are never
	// shared mutably across simultaneous requests.
	MaxOpenConns int `json:"max_open_conns" yaml:"max_open_conns"`
}

// SimilarityConfig locates the precomputed similarity matrices. Both
// files must cover the same article ordering.
type SimilarityConfig struct {
	// TitleMatrixPath is the title-similarity matrix YAML file.
	TitleMatrixPath string `json:"title_matrix_path" yaml:"title_matrix_path"`

	// OverviewMatrixPath is the overview/abstract-similarity matrix YAML file.
	OverviewMatrixPath string `json:"overview_matrix_path" yaml:"overview_matrix_path"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Addr is the listen address (default ":5000").
	Addr string `json:"addr" yaml:"addr"`

	// AllowedOrigins configures CORS for /api/* (default ["*"]).
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`

	// ShutdownTimeout bounds graceful shutdown (default 10s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level"`

	// Format is "json" or "console" (default json).
	Format string `json:"format" yaml:"format"`
}

// CatalogConfig groups all service configuration.
type CatalogConfig struct {
	Store      StoreConfig      `json:"store" yaml:"store"`
	Similarity SimilarityConfig `json:"similarity" yaml:"similarity"`
	Server     ServerConfig     `json:"server" yaml:"server"`
	Logging    LoggingConfig    `json:"logging" yaml:"logging"`
}

// WithDefaults returns a copy of cfg with zero values replaced by defaults.
func (c CatalogConfig) WithDefaults() CatalogConfig {
	if c.Store.Path == "" {
		c.Store.Path = "data/catalog.db"
	}
	if c.Store.QueryTimeout <= 0 {
		c.Store.QueryTimeout = 5 * time.Second
	}
	if c.Store.MaxOpenConns <= 0 {
		c.Store.MaxOpenConns = 8
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":5000"
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	return c
}
