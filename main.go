package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/lox/notion-mcp/cmd"
)

var version = "dev"

func main() {
	cli := &cmd.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("notion-mcp"),
		kong.Description("A multi-tenant MCP server for the Notion API"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)
	err := ctx.Run(&cmd.Context{Version: version})
	ctx.FatalIfErrorf(err)
	os.Exit(0)
}
