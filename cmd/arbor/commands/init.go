package commands

import (
	"flag"
	"fmt"
	"os"
)

// Init implements the 'arbor init' command
func Init(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	force := fs.Bool("force", false, "Overwrite existing files")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Check if arbor.toml already exists
	if _, err := os.Stat(ConfigFile); err == nil && !*force {
		return fmt.Errorf("%s already exists (use -force to overwrite)", ConfigFile)
	}

	config := DefaultConfig()
	config.Render.Sizes = []string{"800x600"}
	config.Render.Defaults = "defaults.toml"
	if err := SaveConfig(ConfigFile, config); err != nil {
		return err
	}
	fmt.Printf("  ✓ Created %s\n", ConfigFile)

	// Create defaults.toml and scene.toml if they don't exist
	for _, f := range []struct{ name, body string }{
		{"defaults.toml", defaultsToml},
		{"scene.toml", sceneToml},
	} {
		if _, err := os.Stat(f.name); err == nil && !*force {
			continue
		}
		if err := os.WriteFile(f.name, []byte(f.body), 0644); err != nil {
			return fmt.Errorf("failed to create %s: %w", f.name, err)
		}
		fmt.Printf("  ✓ Created %s\n", f.name)
	}

	fmt.Println("")
	fmt.Println("Next steps:")
	fmt.Println("  arbor render scene.toml")
	return nil
}

const defaultsToml = `# Default properties per widget kind.
# Widgets override these with their own properties.

[defaults.sized_box]
# background = "#1e1e2e"
border_width = 0
corner_radius = 4

[defaults.flex]
padding = [8, 12]

[defaults.image]
# corner_radius = 8
`

const sceneToml = `[window]
width = 800.0
height = 600.0

[root]
type = "column"
gap = 12.0
cross_align = "stretch"
props = { background = "#11111b" }

[[root.children]]
type = "box"
height = 64.0
props = { background = "#89b4fa", corner_radius = 8.0 }

[[root.children]]
type = "row"
flex = 1.0
gap = 12.0

[[root.children.children]]
type = "box"
flex = 1.0
props = { background = "#a6e3a1" }

[[root.children.children]]
type = "box"
flex = 2.0
props = { background = "#f9e2af", border_width = 2.0, border_color = "#fab387" }
`
