package main

import (
	"fmt"
	"os"

	"github.com/agiangrant/arbor"
	"github.com/agiangrant/arbor/cmd/arbor/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "render":
		err = commands.Render(args)
	case "defaults":
		err = commands.Defaults(args)
	case "init":
		err = commands.Init(args)
	case "version", "-v", "--version":
		fmt.Printf("arbor version %s\n", arbor.Version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`arbor - retained widget tree renderer

Usage: arbor <command> [options]

Commands:
  render     Lay out and paint a scene file to PNG
  defaults   Validate and print a default-property table
  init       Create arbor.toml with a starter scene
  version    Print version information
  help       Show this help message

Render options:
  -o DIR          Output directory
  -sizes WxH,...  Viewport sizes to render
  -defaults FILE  Default-property table (TOML or YAML)
  -config FILE    Project configuration (default arbor.toml)
  -v              Debug logging

Examples:
  arbor init                             Create a starter project
  arbor render scene.toml                Render at the scene's window size
  arbor render -sizes 375x667,1280x720 scene.yaml
  arbor defaults theme.yaml              Check a defaults table

Configuration:
  Projects can be configured via arbor.toml in the working directory.`)
}
