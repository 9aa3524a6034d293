// Package arbor is a retained-mode widget tree engine.
//
// A tree of widgets lives in a [retained.RenderRoot]. The application edits
// it through mutation closures and then runs a cycle, which brings every
// node's derived state up to date by visiting only the dirty parts of the
// tree:
//
//	root := retained.NewRenderRoot(retained.NewPod(
//	    widgets.Column().
//	        WithGap(8).
//	        WithChild(widgets.Empty().Height(40)).
//	        WithSpacer(1),
//	), retained.WithSize(layout.Sz(320, 240)))
//
//	dc := gg.NewContext(320, 240)
//	update, err := root.RunCycle(dc)
//
// Sub-packages:
//   - layout: sizes, box constraints and object-fit
//   - properties: typed widget properties and default tables
//   - retained: the widget arena, passes and mutation
//   - widgets: SizedBox, Flex and Image
//   - scene: TOML and YAML scene files
package arbor

import (
	"log/slog"

	"github.com/agiangrant/arbor/internal/diag"
	"github.com/gogpu/gg"
)

// Version is the module version reported by the CLI.
const Version = "0.1.0"

// SetLogger configures logging for arbor and for the gg rasterizer it
// paints with. By default nothing is logged. Pass nil to restore that.
//
// Levels used:
//   - [slog.LevelDebug]: pass lifecycle and dropped deferred mutations
//   - [slog.LevelWarn]: widget callbacks that failed during a pass
//   - [slog.LevelError]: defects, when built with the arbor_release tag
func SetLogger(l *slog.Logger) {
	diag.SetLogger(l)
	gg.SetLogger(l)
}

// Logger returns the current arbor logger.
func Logger() *slog.Logger {
	return diag.Logger()
}
