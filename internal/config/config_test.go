package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "http://localhost:8170", cfg.Endpoint)
	assert.Equal(t, "S1", cfg.StoreCode)
	assert.Equal(t, "local", cfg.UserRef)
	assert.Empty(t, cfg.DBPath)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("STOREDESK_BACKEND", "http")
	t.Setenv("STOREDESK_ENDPOINT", "https://records.example.com")
	t.Setenv("STOREDESK_TOKEN", "secret")
	t.Setenv("STOREDESK_DB", "/tmp/test.db")
	t.Setenv("STOREDESK_STORE_CODE", "S7")
	t.Setenv("STOREDESK_USER", "user-42")

	cfg := LoadConfig()

	assert.Equal(t, BackendHTTP, cfg.Backend)
	assert.Equal(t, "https://records.example.com", cfg.Endpoint)
	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, "S7", cfg.StoreCode)
	assert.Equal(t, "user-42", cfg.UserRef)
}

func TestLoadConfig_IgnoresUnknownBackend(t *testing.T) {
	t.Setenv("STOREDESK_BACKEND", "carrier-pigeon")

	cfg := LoadConfig()
	assert.Equal(t, BackendSQLite, cfg.Backend, "unknown backends fall back to the default")
}
