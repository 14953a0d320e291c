package monitor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// Daemon ties a status source to the metrics server for the lifetime of the
// process. In stream mode it additionally drives the stdin read loop; the
// daemon stops when the stream ends or the context is cancelled.
type Daemon struct {
	srv    *Server
	stream *StreamMonitor
}

// NewDaemon builds a daemon exporting src on addr. The metric registry is
// instance-scoped; nothing is registered globally.
func NewDaemon(src Snapshotter, addr string) *Daemon {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		NewCollector(src),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	stream, _ := src.(*StreamMonitor)
	return &Daemon{
		srv:    NewServer(addr, SetupRoutes(registry)),
		stream: stream,
	}
}

// Start runs the daemon until ctx is cancelled (termination signal) or, in
// stream mode, until the input stream closes. Both are graceful stops.
func (d *Daemon) Start(ctx context.Context) error {
	slog.Info("monitor daemon start")

	eg, egCtx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(egCtx)
	defer cancel()

	eg.Go(func() error {
		return d.srv.Start(runCtx)
	})

	if d.stream != nil {
		eg.Go(func() error {
			// End of stream shuts the whole daemon down.
			defer cancel()
			return d.stream.Run(runCtx)
		})
	}

	eg.Go(func() error {
		<-runCtx.Done()
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		return d.srv.Stop(shutdownCtx)
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("monitor daemon failure", "error", err)
		return err
	}

	slog.Info("monitor daemon stopped")
	return nil
}
