//go:build windows

package stderr

import (
	"log/slog"
	"os"
)

// Capture is a no-op on Windows, whose audio backends do not write to fd 2.
type Capture struct{}

// Start is a no-op on Windows.
func Start(_ *slog.Logger) (*Capture, error) {
	return &Capture{}, nil
}

// WriteOriginal writes to stderr.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop is a no-op on Windows.
func (c *Capture) Stop() {}
