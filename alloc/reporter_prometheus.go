package alloc

import "github.com/prometheus/client_golang/prometheus"

var (
	blocksCollected = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "btgc",
		Name:      "blocks_collected_total",
		Help:      "Total number of blocks finalized by the collector.",
	})
	episodeSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "btgc",
		Name:      "episode_size_blocks",
		Help:      "Number of blocks finalized per collection episode.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	})
)

// NewPrometheusReporter returns a Reporter that records collection
// episode sizes to Prometheus: a counter for the running total and a
// histogram for the per-episode distribution, so a host process can
// scrape collector behavior the same way it scrapes everything else.
func NewPrometheusReporter() Reporter {
	return func(collected int) {
		blocksCollected.Add(float64(collected))
		episodeSize.Observe(float64(collected))
	}
}

func init() {
	prometheus.MustRegister(blocksCollected, episodeSize)
	Register("prometheus", NewPrometheusReporter())
}
