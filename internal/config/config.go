package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configDirName  = ".config/notion-mcp"
	configFileName = "config.yaml"

	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

type Config struct {
	API      APIConfig    `yaml:"api"`
	Server   ServerConfig `yaml:"server"`
	LogLevel string       `yaml:"log_level"`
}

type APIConfig struct {
	BaseURL       string `yaml:"base_url"`
	NotionVersion string `yaml:"notion_version"`
	// Token is only consulted in stdio mode; over HTTP each request
	// carries its own tenant token.
	Token string `yaml:"token"`
}

type ServerConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Transport string `yaml:"transport"`
}

func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:       "https://api.notion.com/v1",
			NotionVersion: "2022-06-28",
		},
		Server: ServerConfig{
			Host:      "localhost",
			Port:      8765,
			Transport: TransportStdio,
		},
		LogLevel: "info",
	}
}

// Load reads the config file if present, then applies environment overrides
// and normalization. A missing file is not an error.
func Load() (Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return cfg, err
	}

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return cfg, err
	}

	applyEnvOverrides(&cfg)
	normalize(&cfg)
	return cfg, nil
}

func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

func applyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}

	if s := os.Getenv("NOTION_API_BASE_URL"); s != "" {
		cfg.API.BaseURL = s
	}
	if s := os.Getenv("NOTION_API_VERSION"); s != "" {
		cfg.API.NotionVersion = s
	}
	if s := os.Getenv("NOTION_API_TOKEN"); s != "" {
		cfg.API.Token = s
	}
	if s := os.Getenv("NOTION_MCP_HOST"); s != "" {
		cfg.Server.Host = s
	}
	if s := os.Getenv("NOTION_MCP_PORT"); s != "" {
		if port, err := strconv.Atoi(s); err == nil {
			cfg.Server.Port = port
		}
	}
	if s := os.Getenv("NOTION_MCP_TRANSPORT"); s != "" {
		cfg.Server.Transport = s
	}
	if s := os.Getenv("NOTION_MCP_LOG_LEVEL"); s != "" {
		cfg.LogLevel = s
	}
}

func normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.API.BaseURL = strings.TrimSpace(cfg.API.BaseURL)
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://api.notion.com/v1"
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	cfg.API.NotionVersion = strings.TrimSpace(cfg.API.NotionVersion)
	if cfg.API.NotionVersion == "" {
		cfg.API.NotionVersion = "2022-06-28"
	}
	cfg.API.Token = strings.TrimSpace(cfg.API.Token)

	cfg.Server.Host = strings.TrimSpace(cfg.Server.Host)
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8765
	}

	cfg.Server.Transport = strings.ToLower(strings.TrimSpace(cfg.Server.Transport))
	switch cfg.Server.Transport {
	case TransportStdio, TransportHTTP:
	default:
		cfg.Server.Transport = TransportStdio
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}
