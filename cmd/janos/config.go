package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// config is the process configuration. Defaults are overridden first by
// an optional YAML file (JANOS_CONFIG), then by environment variables.
type config struct {
	Port         string `yaml:"port"`
	DownloadDir  string `yaml:"download_dir"`
	EventsDB     string `yaml:"events_db"`
	AuthHash     string `yaml:"auth_password_hash"` // bcrypt; empty disables the gate
	GeminiKey    string `yaml:"gemini_api_key"`
	ChromeURL    string `yaml:"chrome_url"` // remote DevTools URL; empty launches locally
	LogLevel     string `yaml:"log_level"`
	MCPTransport string `yaml:"mcp_transport"` // "stdio" or empty
}

func loadConfig() (config, error) {
	cfg := config{
		Port:        "8090",
		DownloadDir: "downloads",
		EventsDB:    "file:janos_events?mode=memory&cache=shared",
		LogLevel:    "info",
	}

	if path := os.Getenv("JANOS_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.Port = env("PORT", cfg.Port)
	cfg.DownloadDir = env("DOWNLOAD_DIR", cfg.DownloadDir)
	cfg.EventsDB = env("EVENTS_DB", cfg.EventsDB)
	cfg.AuthHash = env("AUTH_PASSWORD_HASH", cfg.AuthHash)
	cfg.GeminiKey = env("GEMINI_API_KEY", cfg.GeminiKey)
	cfg.ChromeURL = env("CHROME_URL", cfg.ChromeURL)
	cfg.LogLevel = env("LOG_LEVEL", cfg.LogLevel)
	cfg.MCPTransport = env("MCP_TRANSPORT", cfg.MCPTransport)
	return cfg, nil
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
