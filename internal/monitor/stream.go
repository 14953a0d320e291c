package monitor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/endotronic/dropbox-monitoring/internal/status"
)

// StreamMonitor consumes status lines from a reader (normally stdin, fed by
// a process piping live status), echoes each line verbatim to a writer
// before parsing it, and folds every line into the running report. It can
// sit transparently in a pipeline.
type StreamMonitor struct {
	in     io.Reader
	out    io.Writer
	parser *status.Parser
	log    *slog.Logger

	mu      sync.Mutex
	current status.Report
}

func NewStream(in io.Reader, out io.Writer, log *slog.Logger) *StreamMonitor {
	if log == nil {
		log = slog.Default()
	}
	return &StreamMonitor{
		in:      in,
		out:     out,
		parser:  status.NewParser(log),
		log:     log,
		current: status.Zero(),
	}
}

// Snapshot returns the latest folded report.
func (s *StreamMonitor) Snapshot(context.Context) status.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Run reads lines until the source closes or ctx is cancelled. End of
// stream and cancellation are both clean stops, not errors. Reads happen on
// a separate goroutine so a cancelled ctx interrupts the blocking read path;
// with stdin the reader itself cannot be unblocked portably and may stay
// parked until the process exits.
func (s *StreamMonitor) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("stream interrupted, stopping")
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("read status stream: %w", err)
					}
				default:
				}
				s.log.Info("end of status stream")
				return nil
			}

			// Echo first so downstream consumers see every line even if
			// parsing ignores it.
			if _, err := fmt.Fprintln(s.out, line); err != nil {
				return fmt.Errorf("echo status line: %w", err)
			}
			s.fold(line)
		}
	}
}

func (s *StreamMonitor) fold(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = s.parser.Fold(s.current, line)
}
