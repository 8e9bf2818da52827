package config

import (
	"fmt"
	"os"
	"strings"
)

// Backend selects the durable-storage implementation.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	ListenAddr string

	Storage struct {
		Backend string
		Path    string
	}

	PrometheusEnabled bool
	TrustedProxies    []string
}

// Load reads configuration from the environment. The tool is single-user and
// offline-capable, so every value has a local default; nothing is required.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.ListenAddr = getenvDefault("APP_LISTEN_ADDR", "127.0.0.1:8190")
	cfg.Storage.Backend = strings.ToLower(getenvDefault("APP_DATA_BACKEND", BackendFile))
	cfg.PrometheusEnabled = getenvBool("APP_PROMETHEUS_ENDPOINT_ENABLED", false)
	cfg.TrustedProxies = getenvList("APP_TRUSTED_PROXIES")

	switch cfg.Storage.Backend {
	case BackendFile:
		cfg.Storage.Path = getenvDefault("APP_DATA_PATH", "elternrat.json")
	case BackendSQLite:
		cfg.Storage.Path = getenvDefault("APP_DATA_PATH", "elternrat.db")
	default:
		return nil, fmt.Errorf("APP_DATA_BACKEND must be %q or %q (got %q)", BackendFile, BackendSQLite, cfg.Storage.Backend)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return def
}

func getenvList(key string) []string {
	if v := os.Getenv(key); v != "" {
		var result []string
		for _, item := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return nil
}
