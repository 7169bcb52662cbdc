package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"

	"github.com/lox/notion-mcp/internal/config"
	"github.com/lox/notion-mcp/internal/server"
)

type ServeCmd struct {
	Transport string `help:"Transport to serve on" enum:"stdio,http," default:""`
	Host      string `help:"Listen host for http transport"`
	Port      int    `help:"Listen port for http transport"`
}

func (c *ServeCmd) Run(cliCtx *Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.Transport != "" {
		cfg.Server.Transport = c.Transport
	}
	if c.Host != "" {
		cfg.Server.Host = c.Host
	}
	if c.Port > 0 {
		cfg.Server.Port = c.Port
	}

	// Stdout carries the protocol in stdio mode, so logs go to stderr.
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "notion-mcp",
		Level:  hclog.LevelFromString(cfg.LogLevel),
		Output: os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger, cliCtx.Version)

	switch cfg.Server.Transport {
	case config.TransportHTTP:
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := srv.ServeHTTP(ctx, addr); err != nil && err != context.Canceled {
			return err
		}
	default:
		if cfg.API.Token == "" {
			logger.Warn("no API token configured; every tool call will fail until NOTION_API_TOKEN is set")
		}
		if err := srv.ServeStdio(ctx); err != nil && err != context.Canceled {
			return err
		}
	}
	return nil
}
