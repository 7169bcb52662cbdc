package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lox/notion-mcp/internal/config"
	"github.com/lox/notion-mcp/internal/output"
	"github.com/lox/notion-mcp/internal/server"
)

type CallCmd struct {
	Tool   string `arg:"" help:"Tool name, e.g. notion_get_page"`
	Args   string `help:"Tool arguments as a JSON object" short:"a" default:"{}"`
	Format string `help:"Response format" enum:"markdown,json" default:"markdown"`
	Plain  bool   `help:"Print raw text without terminal styling"`
}

func (c *CallCmd) Run(cliCtx *Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.API.Token == "" {
		output.PrintWarning("No API token configured; set NOTION_API_TOKEN or api.token in the config file.")
	}

	args := map[string]any{}
	if err := json.Unmarshal([]byte(c.Args), &args); err != nil {
		return fmt.Errorf("parse --args: %w", err)
	}
	args["format"] = c.Format

	srv := server.New(cfg, hclog.NewNullLogger(), cliCtx.Version)
	result, err := srv.CallLocal(context.Background(), c.Tool, args)
	if err != nil {
		output.PrintError(err)
		return err
	}

	text := extractText(result)
	if result.IsError {
		errStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
		fmt.Println(errStyle.Render("Tool returned an error"))
		fmt.Println(text)
		return fmt.Errorf("tool %s failed", c.Tool)
	}

	if c.Plain || c.Format == "json" {
		fmt.Println(text)
		return nil
	}
	return output.RenderMarkdownToTerminal(text)
}

func extractText(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}
	for _, content := range result.Content {
		if textContent, ok := content.(mcp.TextContent); ok {
			return textContent.Text
		}
	}
	return ""
}
