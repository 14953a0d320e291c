package monitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/endotronic/dropbox-monitoring/internal/dropbox"
	"github.com/endotronic/dropbox-monitoring/internal/status"
)

// Snapshotter yields the current parsed status report. Implemented by both
// the poll Monitor and the StreamMonitor; the metrics collector reads
// through this interface only.
type Snapshotter interface {
	Snapshot(ctx context.Context) status.Report
}

// Monitor polls the Dropbox client lazily: the first snapshot after the
// minimum poll interval triggers exactly one fresh query, every other
// snapshot inside the window is answered from the cache. There is no
// background polling.
type Monitor struct {
	source          dropbox.StatusSource
	parser          *status.Parser
	minPollInterval time.Duration
	log             *slog.Logger

	// now is replaced in tests.
	now func() time.Time

	mu       sync.Mutex
	lastPoll time.Time
	cached   status.Report
}

func New(source dropbox.StatusSource, minPollInterval time.Duration, log *slog.Logger) *Monitor {
	if log == nil {
		log = slog.Default()
	}
	return &Monitor{
		source:          source,
		parser:          status.NewParser(log),
		minPollInterval: minPollInterval,
		log:             log,
		now:             time.Now,
		cached:          status.Zero(),
	}
}

// Snapshot returns the cached report, refreshing it first when the minimum
// poll interval has elapsed. The read-or-refresh sequence runs under one
// mutex so concurrent scrapes observe a consistent report and trigger at
// most one query per window.
func (m *Monitor) Snapshot(ctx context.Context) status.Report {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastPoll) > m.minPollInterval {
		m.refreshLocked(ctx, now)
	}
	return m.cached
}

func (m *Monitor) refreshLocked(ctx context.Context, now time.Time) {
	// The throttle window starts at the attempt, success or not; a failing
	// client is not retried any faster than a healthy one.
	m.lastPoll = now

	raw, err := m.source.QueryStatus(ctx)
	if err != nil {
		m.log.Warn("dropbox status query failed", "error", err)
		// Drop the stale report rather than keep exporting it.
		m.cached = status.Zero()
		return
	}

	m.cached = m.parser.Parse(raw)
	m.log.Debug("dropbox status refreshed", "state", m.cached.State)
}
