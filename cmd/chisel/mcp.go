package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/chiseltools/chisel/internal/mcpserver"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that exposes chisel's
operations as tools that LLMs can invoke.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "chisel": {
        "command": "chisel",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - parse_file       Concrete syntax tree of one source file
  - find_references  Every occurrence of an identifier across a file set
  - symbol_info      Kind, parameters, and docs of a symbol definition
  - rename_symbol    Cross-file textual rename with dry-run support`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "manifest",
				Usage: "Print the MCP server manifest (server.json) and exit",
			},
		},
		Action: runMCPCmd,
	}
}

func runMCPCmd(c *cli.Context) error {
	if c.Bool("manifest") {
		data, err := mcpserver.GenerateManifest(version)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	server := mcpserver.NewServer(version)
	return server.Run(c.Context)
}
