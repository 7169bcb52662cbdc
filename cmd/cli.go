package cmd

import "fmt"

type CLI struct {
	Serve   ServeCmd   `cmd:"" help:"Run the MCP server"`
	Call    CallCmd    `cmd:"" help:"Invoke a tool against the Notion API and print the result"`
	Config  ConfigCmd  `cmd:"" help:"Show the effective configuration"`
	Version VersionCmd `cmd:"" help:"Print the version"`
}

// Context is passed to every command's Run method.
type Context struct {
	Version string
}

type VersionCmd struct{}

func (c *VersionCmd) Run(ctx *Context) error {
	fmt.Println(ctx.Version)
	return nil
}
