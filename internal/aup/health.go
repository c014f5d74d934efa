package internal

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Health struct {
	ReportFetches     prometheus.Counter
	ReportFetchErrors prometheus.Counter
	PeerFetches       prometheus.Counter
	PeerFetchErrors   prometheus.Counter
	MergeCacheHits    prometheus.Counter
	MergeCacheMisses  prometheus.Counter
	Restrictions      prometheus.Gauge
}

func NewHealth() *Health {
	return &Health{
		ReportFetches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aup_report_fetches",
			Help: "Total number of use plan report fetches",
		}),
		ReportFetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aup_report_fetch_errors",
			Help: "Total number of failed use plan report fetches",
		}),
		PeerFetches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aup_peer_fetches",
			Help: "Total number of vLARA feed fetches",
		}),
		PeerFetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aup_peer_fetch_errors",
			Help: "Total number of failed vLARA feed fetches",
		}),
		MergeCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aup_merge_cache_hits",
			Help: "Merged document requests served from cache",
		}),
		MergeCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aup_merge_cache_misses",
			Help: "Merged document requests that triggered recomputation",
		}),
		Restrictions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "aup_restrictions",
			Help: "Number of restrictions in the last parsed use plan",
		}),
	}
}

// MustRegister publishes the collectors on the default registry. Called once
// at serve time so tests can build services freely.
func (h *Health) MustRegister() {
	prometheus.MustRegister(
		h.ReportFetches,
		h.ReportFetchErrors,
		h.PeerFetches,
		h.PeerFetchErrors,
		h.MergeCacheHits,
		h.MergeCacheMisses,
		h.Restrictions,
	)
}
