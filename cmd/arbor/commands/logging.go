package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/agiangrant/arbor"
)

// setupLogging routes arbor's logger to stderr at the named level.
func setupLogging(level string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	arbor.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
	return nil
}
