package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.API.BaseURL != "https://api.notion.com/v1" {
		t.Fatalf("base URL mismatch: %s", cfg.API.BaseURL)
	}
	if cfg.API.NotionVersion != "2022-06-28" {
		t.Fatalf("notion version mismatch: %s", cfg.API.NotionVersion)
	}
	if cfg.Server.Transport != TransportStdio {
		t.Fatalf("transport mismatch: %s", cfg.Server.Transport)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("log level mismatch: %s", cfg.LogLevel)
	}
}

func TestLoadReadsFileAndAppliesEnvOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, configDirName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	contents := []byte(`
api:
  base_url: https://notion.example.com/v1/
  token: file-token
server:
  transport: http
  port: 9000
log_level: debug
`)
	if err := os.WriteFile(filepath.Join(dir, configFileName), contents, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("NOTION_API_TOKEN", "env-token")
	t.Setenv("NOTION_MCP_PORT", "9100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.API.BaseURL != "https://notion.example.com/v1" {
		t.Fatalf("trailing slash should be trimmed: %s", cfg.API.BaseURL)
	}
	if cfg.API.Token != "env-token" {
		t.Fatalf("env should override file token: %s", cfg.API.Token)
	}
	if cfg.Server.Transport != TransportHTTP {
		t.Fatalf("transport mismatch: %s", cfg.Server.Transport)
	}
	if cfg.Server.Port != 9100 {
		t.Fatalf("env should override file port: %d", cfg.Server.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level mismatch: %s", cfg.LogLevel)
	}
}

func TestNormalizeRejectsUnknownTransport(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NOTION_MCP_TRANSPORT", "carrier-pigeon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Transport != TransportStdio {
		t.Fatalf("unknown transport should fall back to stdio: %s", cfg.Server.Transport)
	}
}
