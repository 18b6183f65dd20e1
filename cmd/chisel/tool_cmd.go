package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/chiseltools/chisel/internal/service/code"
	"github.com/chiseltools/chisel/pkg/tool"
)

func toolCmd() *cli.Command {
	return &cli.Command{
		Name:      "tool",
		Usage:     "Invoke an operation through the tool dispatch contract",
		ArgsUsage: "<tool-name>",
		Description: `Dispatches one tool call the way an agent framework would and prints the
{success, output, error, metadata} result as JSON. Parameters are passed
as repeated --param key=value flags; list values are comma-separated and
booleans are true/false.

Examples:
  chisel tool parse_file --param path=main.py
  chisel tool find_references --param path=. --param name=calculate --param file_types=py
  chisel tool rename_symbol --param path=. --param old_name=a --param new_name=b --param dry_run=true

Run without a name to list available tools.`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "param",
				Aliases: []string{"p"},
				Usage:   "Tool parameter as key=value (repeatable)",
			},
		},
		Action: runToolCmd,
	}
}

// paramValue converts a flag value into the contract's parameter types
// based on the tool's declared parameter definition.
func paramValue(def tool.ParamDef, raw string) any {
	switch def.Type {
	case tool.ParamTypeBool:
		return raw == "true" || raw == "1"
	case tool.ParamTypeList:
		parts := strings.Split(raw, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	default:
		return raw
	}
}

func runToolCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	registry := tool.DefaultRegistry(code.New(code.WithConfig(cfg)))

	if c.Args().Len() == 0 {
		for _, name := range registry.Names() {
			t, _ := registry.Get(name)
			def := t.Definition()
			fmt.Printf("%-18s %s\n", name, def.Description)
			if required := def.RequiredParams(); len(required) > 0 {
				fmt.Printf("%-18s required: %s\n", "", strings.Join(required, ", "))
			}
		}
		return nil
	}

	name := c.Args().First()
	params := tool.Params{}
	if t, ok := registry.Get(name); ok {
		defs := t.Definition().Parameters
		for _, kv := range c.StringSlice("param") {
			key, value, found := strings.Cut(kv, "=")
			if !found {
				return fmt.Errorf("malformed --param %q, expected key=value", kv)
			}
			if def, ok := defs[key]; ok {
				params[key] = paramValue(def, value)
			} else {
				params[key] = value
			}
		}
	}

	result := registry.Dispatch(c.Context, name, params)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return err
	}
	if !result.Success {
		return cli.Exit("", 1)
	}
	return nil
}
