package dropbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

const DefaultCommand = "dropbox"

// StatusSource yields the raw textual status of the sync client. It can be
// swapped out for a fake in tests.
type StatusSource interface {
	QueryStatus(ctx context.Context) (string, error)
}

// CLI queries the Dropbox client through its command line interface
// (`dropbox status`).
type CLI struct {
	command string
	log     *slog.Logger
}

type CLIOption func(*CLI)

// WithCommand overrides the dropbox binary name or path.
func WithCommand(name string) CLIOption {
	return func(c *CLI) {
		c.command = name
	}
}

func NewCLI(log *slog.Logger, opts ...CLIOption) *CLI {
	if log == nil {
		log = slog.Default()
	}
	c := &CLI{
		command: DefaultCommand,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// QueryStatus runs `dropbox status` and returns its stdout. Any stderr
// output, a non-zero exit, or empty stdout is reported as an error; the
// caller maps these to the unknown state rather than failing.
func (c *CLI) QueryStatus(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, c.command, "status")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if stderr.Len() > 0 {
		c.log.Warn("dropbox status returned error output", "stderr", strings.TrimSpace(stderr.String()))
		return "", fmt.Errorf("dropbox status: %s", strings.TrimSpace(stderr.String()))
	}
	if runErr != nil {
		return "", fmt.Errorf("dropbox status: %w", runErr)
	}
	if stdout.Len() == 0 {
		return "", errors.New("dropbox status produced no output")
	}
	return stdout.String(), nil
}
