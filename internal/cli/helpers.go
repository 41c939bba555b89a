package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/vignette/internal/logging"
)

// NewLogger returns a stderr logger at level, or a no-op logger when quiet.
func NewLogger(level string, quiet bool) (*slog.Logger, error) {
	if quiet {
		return logging.NewNop(), nil
	}
	l, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(l), nil
}

// PrintSystemMessage prints a standardized system message.
func PrintSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}
