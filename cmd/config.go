package cmd

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/lox/notion-mcp/internal/config"
)

type ConfigCmd struct{}

func (c *ConfigCmd) Run(ctx *Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cfg.API.Token != "" {
		cfg.API.Token = "(set)"
	}

	path, err := config.Path()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("# %s\n%s", path, data)
	return nil
}
