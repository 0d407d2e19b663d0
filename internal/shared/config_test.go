package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()
		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}
		if config.YouTube.BaseURL != "https://www.googleapis.com" {
			t.Errorf("expected youtube base URL https://www.googleapis.com, got %s", config.YouTube.BaseURL)
		}
		if config.Sync.Backend != "memory" {
			t.Errorf("expected sync backend memory, got %s", config.Sync.Backend)
		}
		if config.Sync.Database != ":memory:" {
			t.Errorf("expected sync database :memory:, got %s", config.Sync.Database)
		}
		if config.Export.Workers != 5 || config.Export.RateLimit != 5.0 {
			t.Errorf("unexpected export defaults: %+v", config.Export)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Server.Port != DefaultConfig().Server.Port {
			t.Errorf("created config port doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		testConfig := `[youtube]
api_key = "test_api_key"
base_url = "http://localhost:9090"
timeout_seconds = 3

[server]
host = "0.0.0.0"
port = 8080

[sync]
backend = "sqlite"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.YouTube.APIKey != "test_api_key" {
			t.Errorf("expected api key test_api_key, got %s", config.YouTube.APIKey)
		}
		if config.Server.Addr() != "0.0.0.0:8080" {
			t.Errorf("expected addr 0.0.0.0:8080, got %s", config.Server.Addr())
		}
		if config.Sync.Backend != "sqlite" {
			t.Errorf("expected sqlite backend, got %s", config.Sync.Backend)
		}
		if config.Sync.Database != ":memory:" {
			t.Errorf("unset keys should keep defaults, got database %q", config.Sync.Database)
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("SaveConfig round trips", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "saved.toml")
		config := DefaultConfig()
		config.YouTube.APIKey = "saved-key"

		if err := SaveConfig(configPath, config); err != nil {
			t.Fatalf("SaveConfig failed: %v", err)
		}
		loaded, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if loaded.YouTube.APIKey != "saved-key" {
			t.Errorf("expected saved-key, got %s", loaded.YouTube.APIKey)
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "env-key")
		t.Setenv(EnvPort, "4000")

		config := DefaultConfig()
		if err := config.ApplyEnv(); err != nil {
			t.Fatalf("ApplyEnv failed: %v", err)
		}
		if config.YouTube.APIKey != "env-key" {
			t.Errorf("expected env-key, got %s", config.YouTube.APIKey)
		}
		if config.Server.Port != 4000 {
			t.Errorf("expected port 4000, got %d", config.Server.Port)
		}

		t.Setenv(EnvPort, "not-a-port")
		if err := config.ApplyEnv(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("LoadEnvFile", func(t *testing.T) {
		dir := t.TempDir()
		if err := LoadEnvFile(filepath.Join(dir, ".env")); err != nil {
			t.Errorf("missing .env should not be an error, got %v", err)
		}

		envPath := filepath.Join(dir, ".env")
		if err := os.WriteFile(envPath, []byte("YTLINK_TEST_ENV_VALUE=from-dotenv\n"), 0644); err != nil {
			t.Fatalf("failed to write .env: %v", err)
		}
		t.Cleanup(func() { os.Unsetenv("YTLINK_TEST_ENV_VALUE") })

		if err := LoadEnvFile(envPath); err != nil {
			t.Fatalf("LoadEnvFile failed: %v", err)
		}
		if got := os.Getenv("YTLINK_TEST_ENV_VALUE"); got != "from-dotenv" {
			t.Errorf("expected from-dotenv, got %q", got)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		config := DefaultConfig()
		if err := config.Validate(); !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}

		config.YouTube.APIKey = "key"
		if err := config.Validate(); err != nil {
			t.Errorf("expected valid config, got %v", err)
		}

		config.Sync.Backend = "redis"
		if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}
