package status

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// Observed lines from `dropbox status`:
//
//	Up to date
//	Syncing...
//	Syncing 176 files • 6 secs
//	Downloading 176 files (6 secs)
var filesPattern = regexp.MustCompile(`^(Syncing|Downloading|Uploading) (\d+) files`)

// Parser turns free-text status lines into Reports. The status text is
// best-effort by nature, so the parser never fails: anything it does not
// recognize is logged and ignored, and a report that matched nothing stays
// at state unknown.
type Parser struct {
	log *slog.Logger
}

func NewParser(log *slog.Logger) *Parser {
	if log == nil {
		log = slog.Default()
	}
	return &Parser{log: log}
}

// Fold applies a single status line to prev and returns the next report.
// It is a pure function of its inputs; prev is never modified.
func (p *Parser) Fold(prev Report, line string) Report {
	switch line {
	case "Up to date":
		return Report{
			State:       StateUpToDate,
			Syncing:     known(0),
			Downloading: known(0),
			Uploading:   known(0),
		}
	case "Syncing...":
		// Sync in progress but no counts reported yet.
		return Report{State: StateSyncing}
	}

	m := filesPattern.FindStringSubmatch(line)
	if m == nil {
		if strings.TrimSpace(line) != "" {
			p.log.Debug("ignoring status line", "line", line)
		}
		return prev
	}

	n, err := strconv.Atoi(m[2])
	if err != nil {
		p.log.Debug("malformed file count", "line", line, "error", err)
		return prev
	}

	next := prev
	next.State = StateSyncing
	switch m[1] {
	case "Syncing":
		next.Syncing = known(n)
	case "Downloading":
		next.Downloading = known(n)
	case "Uploading":
		next.Uploading = known(n)
	}
	return next
}

// Parse folds a complete multi-line status report starting from the zero
// report. "Up to date" is terminal: any lines after it are ignored. Counts
// for actions the report never mentioned stay unknown.
func (p *Parser) Parse(raw string) Report {
	report := Zero()
	for _, line := range strings.Split(raw, "\n") {
		report = p.Fold(report, strings.TrimRight(line, "\r"))
		if report.State == StateUpToDate {
			break
		}
	}
	return report
}
