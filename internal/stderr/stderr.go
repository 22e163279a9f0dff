//go:build !windows

// Package stderr captures output that C audio libraries write directly to
// file descriptor 2 and forwards it to the structured log, so it cannot
// corrupt the TUI.
package stderr

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"golang.org/x/sys/unix"
)

// Capture owns the redirected stderr.
type Capture struct {
	orig   int
	r, w   *os.File
	wg     sync.WaitGroup
	once   sync.Once
	logger *slog.Logger
}

// Start redirects fd 2 into a pipe. Call it before initialising the audio
// backend. On error the program can continue with stderr untouched.
func Start(logger *slog.Logger) (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	orig, err := unix.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	if err := unix.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		unix.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{orig: orig, r: r, w: w, logger: logger}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		forward(r, logger)
	}()
	return c, nil
}

// forward logs each non-blank line read from r until EOF.
func forward(r io.Reader, logger *slog.Logger) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			logger.Debug("stderr", "line", line)
		}
	}
}

// WriteOriginal writes to the terminal's stderr, bypassing the capture.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = unix.Write(c.orig, []byte(msg))
}

// Stop restores the original stderr and waits for pending lines to be logged.
func (c *Capture) Stop() {
	c.once.Do(func() {
		_ = unix.Dup2(c.orig, int(os.Stderr.Fd()))
		_ = unix.Close(c.orig)
		c.w.Close()
		c.wg.Wait()
		c.r.Close()
	})
}
