// Package config loads client configuration from environment variables.
package config

import "os"

// Backend selects which record store driver the client talks to.
type Backend string

const (
	BackendHTTP   Backend = "http"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// Config holds all configuration for the storedesk client.
type Config struct {
	// Backend is the record store driver: http, sqlite, or memory.
	Backend Backend

	// Endpoint is the record-store API base URL (http backend).
	Endpoint string

	// Token is the bearer token for the record-store API, if any.
	Token string

	// DBPath is the SQLite database path (sqlite backend and `serve`).
	DBPath string

	// StoreCode is the store whose records the client scopes to.
	StoreCode string

	// UserRef is the opaque reference identifying the current user.
	UserRef string
}

// DefaultConfig returns a Config with sensible defaults: a local sqlite
// store under the user's home directory, scoped to store S1.
func DefaultConfig() Config {
	return Config{
		Backend:   BackendSQLite,
		Endpoint:  "http://localhost:8170",
		DBPath:    "", // resolved by main against the home directory
		StoreCode: "S1",
		UserRef:   "local",
	}
}

// LoadConfig reads configuration from environment variables, falling back
// to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("STOREDESK_BACKEND"); v != "" {
		switch Backend(v) {
		case BackendHTTP, BackendSQLite, BackendMemory:
			cfg.Backend = Backend(v)
		}
	}
	if v := os.Getenv("STOREDESK_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("STOREDESK_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("STOREDESK_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("STOREDESK_STORE_CODE"); v != "" {
		cfg.StoreCode = v
	}
	if v := os.Getenv("STOREDESK_USER"); v != "" {
		cfg.UserRef = v
	}

	return cfg
}
