package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/agiangrant/arbor"
	"github.com/agiangrant/arbor/layout"
	"github.com/agiangrant/arbor/properties"
	"github.com/agiangrant/arbor/retained"
	"github.com/agiangrant/arbor/scene"
	"github.com/gogpu/gg"
	"golang.org/x/sync/errgroup"
)

// renderJob is one scene rendered at one viewport size.
type renderJob struct {
	scene    *scene.Scene
	defaults *properties.Table
	size     layout.Size
	surface  *gg.RGBA
	path     string
}

// Render implements the 'arbor render' command
func Render(args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	output := fs.String("o", "", "Output directory (default from arbor.toml)")
	sizes := fs.String("sizes", "", "Comma-separated viewport sizes, e.g. 800x600,375x667")
	defaults := fs.String("defaults", "", "Default-property table (TOML or YAML)")
	configPath := fs.String("config", ConfigFile, "Project configuration file")
	verbose := fs.Bool("v", false, "Log pass lifecycle at debug level")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: arbor render [options] <scene>")
	}

	config, err := LoadConfig(*configPath)
	if err != nil {
		return err
	}
	level := config.Log.Level
	if *verbose {
		level = "debug"
	}
	if err := setupLogging(level); err != nil {
		return err
	}

	s, err := scene.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	table, err := resolveDefaults(s, *defaults, config.Render.Defaults)
	if err != nil {
		return err
	}

	viewports, err := resolveSizes(s, *sizes, config.Render.Sizes)
	if err != nil {
		return err
	}

	var surface *gg.RGBA
	if config.Render.Clear != "" {
		p, err := properties.Decode(properties.KindBackground, config.Render.Clear)
		if err != nil {
			return fmt.Errorf("%s: render.clear: %w", *configPath, err)
		}
		c := p.(properties.Background).Color
		surface = &c
	}

	outDir := config.Render.OutputDir
	if *output != "" {
		outDir = *output
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", outDir, err)
	}

	base := strings.TrimSuffix(filepath.Base(fs.Arg(0)), filepath.Ext(fs.Arg(0)))
	jobs := make([]renderJob, len(viewports))
	for i, size := range viewports {
		jobs[i] = renderJob{
			scene:    s,
			defaults: table,
			size:     size,
			surface:  surface,
			path:     filepath.Join(outDir, fmt.Sprintf("%s-%gx%g.png", base, size.Width, size.Height)),
		}
	}

	if err := renderAll(context.Background(), jobs); err != nil {
		return err
	}
	for _, j := range jobs {
		fmt.Printf("  ✓ %s\n", j.path)
	}
	return nil
}

// renderAll renders every job, each with its own RenderRoot, in parallel.
func renderAll(ctx context.Context, jobs []renderJob) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return j.run()
		})
	}
	return g.Wait()
}

func (j renderJob) run() error {
	pod, err := j.scene.BuildFor(j.size)
	if err != nil {
		return err
	}
	root := retained.NewRenderRoot(pod,
		retained.WithSize(j.size),
		retained.WithDefaults(j.defaults),
	)

	dc := gg.NewContext(int(math.Ceil(j.size.Width)), int(math.Ceil(j.size.Height)))
	defer dc.Close()
	if j.surface != nil {
		dc.ClearWithColor(*j.surface)
	}

	update, err := root.RunCycle(dc)
	if err != nil {
		// Failed widgets are skipped; the rest of the frame is still useful.
		arbor.Logger().Warn("widgets failed while rendering", "path", j.path, "err", err)
	}
	arbor.Logger().Info("rendered",
		"path", j.path, "size", j.size, "widgets", root.Len(), "access_nodes", len(update.Nodes))

	if err := dc.SavePNG(j.path); err != nil {
		return fmt.Errorf("failed to write %s: %w", j.path, err)
	}
	return nil
}

// resolveDefaults picks the property table: the -defaults flag, then the
// scene's own table, then arbor.toml. Nil means the process default.
func resolveDefaults(s *scene.Scene, flagPath, configPath string) (*properties.Table, error) {
	switch {
	case flagPath != "":
		return properties.LoadTable(flagPath)
	case s.Defaults != "":
		return s.LoadDefaults()
	case configPath != "":
		return properties.LoadTable(configPath)
	}
	return nil, nil
}

// resolveSizes picks the viewports: the -sizes flag, then arbor.toml, then
// the scene's window.
func resolveSizes(s *scene.Scene, flagSizes string, configSizes []string) ([]layout.Size, error) {
	if flagSizes != "" {
		sizes, err := parseSizes(strings.Split(flagSizes, ","))
		if err != nil {
			return nil, fmt.Errorf("-sizes: %w", err)
		}
		if len(sizes) > 0 {
			return sizes, nil
		}
	}
	sizes, err := parseSizes(configSizes)
	if err != nil {
		return nil, err
	}
	if len(sizes) > 0 {
		return sizes, nil
	}
	return []layout.Size{s.Window.Size()}, nil
}
