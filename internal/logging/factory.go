package logging

import (
	"fmt"
	"io"
)

// New returns a Logger for the named backend: "slog" (default) or "zap".
func New(backend string, w io.Writer, level string) (Logger, error) {
	switch backend {
	case "", "slog":
		return NewSlogJSON(w, level), nil
	case "zap":
		return NewZapJSON(w, level), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}
