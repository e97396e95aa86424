package notifier

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ingested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "casesync_notifications_ingested_total",
		Help: "Unique realtime notifications accepted into the canonical list.",
	})
	duplicates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "casesync_notifications_duplicate_total",
		Help: "Realtime notifications dropped by id dedup.",
	})
	parseFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "casesync_frame_parse_failures_total",
		Help: "Realtime frames discarded because they could not be decoded.",
	})
	sinkFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "casesync_sink_failures_total",
		Help: "Side-effect sink deliveries that failed (best effort, swallowed).",
	})
)
