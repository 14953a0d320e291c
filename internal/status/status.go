package status

// SyncState is the aggregate status observed from the Dropbox client. The
// string values double as the label values exported on the status metric.
type SyncState string

const (
	StateStarting   SyncState = "starting"
	StateSyncing    SyncState = "syncing"
	StateUpToDate   SyncState = "up to date"
	StateNotRunning SyncState = "not running"
	StateUnknown    SyncState = "unknown"
)

// States returns every SyncState in export order.
func States() []SyncState {
	return []SyncState{
		StateStarting,
		StateSyncing,
		StateUpToDate,
		StateNotRunning,
		StateUnknown,
	}
}

// Count is an optional non-negative file count. Known reports whether the
// client mentioned the count at all; an unknown count must never be read as
// zero.
type Count struct {
	N     int
	Known bool
}

func known(n int) Count {
	return Count{N: n, Known: true}
}

// Report is the typed result of parsing a status report. It is a plain value;
// the parser returns fresh reports instead of mutating shared state.
type Report struct {
	State       SyncState
	Syncing     Count
	Downloading Count
	Uploading   Count
}

// Zero is the report before any status line has been seen: state unknown,
// no counts observed.
func Zero() Report {
	return Report{State: StateUnknown}
}
