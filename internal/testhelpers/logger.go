package testhelpers

import (
	"io"
	"log/slog"

	"github.com/planfit/planfit/internal/logging"
)

// NewLogger creates a debug-level logger suitable for tests, writing to w.
func NewLogger(w io.Writer) *slog.Logger {
	return slog.New(logging.NewContextHandler(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
}
