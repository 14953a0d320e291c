package monitor

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/endotronic/dropbox-monitoring/internal/status"
)

// Collector exports the latest status report as Prometheus metrics. It is
// evaluated lazily: every scrape asks the Snapshotter, which decides whether
// the cache is fresh enough.
//
// Counts the client did not report are omitted from the scrape entirely, so
// the collector side can tell "no observation" apart from a reported zero.
type Collector struct {
	src Snapshotter

	statusDesc      *prometheus.Desc
	syncingDesc     *prometheus.Desc
	downloadingDesc *prometheus.Desc
	uploadingDesc   *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

func NewCollector(src Snapshotter) *Collector {
	return &Collector{
		src: src,
		statusDesc: prometheus.NewDesc(
			"dropbox_status",
			"Status reported by Dropbox client",
			[]string{"state"}, nil,
		),
		syncingDesc: prometheus.NewDesc(
			"dropbox_num_syncing",
			"Number of files currently syncing",
			nil, nil,
		),
		downloadingDesc: prometheus.NewDesc(
			"dropbox_num_downloading",
			"Number of files currently downloading",
			nil, nil,
		),
		uploadingDesc: prometheus.NewDesc(
			"dropbox_num_uploading",
			"Number of files currently uploading",
			nil, nil,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.statusDesc
	ch <- c.syncingDesc
	ch <- c.downloadingDesc
	ch <- c.uploadingDesc
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	report := c.src.Snapshot(context.Background())

	// State gauge: one sample per state, 1 for the active one.
	for _, state := range status.States() {
		var v float64
		if state == report.State {
			v = 1
		}
		ch <- prometheus.MustNewConstMetric(c.statusDesc, prometheus.GaugeValue, v, string(state))
	}

	c.collectCount(ch, c.syncingDesc, report.Syncing)
	c.collectCount(ch, c.downloadingDesc, report.Downloading)
	c.collectCount(ch, c.uploadingDesc, report.Uploading)
}

func (c *Collector) collectCount(ch chan<- prometheus.Metric, desc *prometheus.Desc, count status.Count) {
	if !count.Known {
		return
	}
	ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, float64(count.N))
}
