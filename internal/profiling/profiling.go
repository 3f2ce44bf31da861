package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Lightweight per-run stage profiler. Totals accumulate in memory and every
// observation is also recorded in a Prometheus histogram.

var (
	mu        sync.Mutex
	runTotals = make(map[string]time.Duration)

	registry      = prometheus.NewRegistry()
	stageDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "planetgen",
		Name:      "stage_duration_seconds",
		Help:      "Wall time spent in each generation stage.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
	}, []string{"stage"})
)

func init() {
	registry.MustRegister(stageDuration)
}

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("world.BuildVolume")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		runTotals[name] += d
		mu.Unlock()
		stageDuration.WithLabelValues(name).Observe(d.Seconds())
	}
}

// Reset clears the in-memory totals. Histograms keep their samples.
func Reset() {
	mu.Lock()
	for k := range runTotals {
		delete(runTotals, k)
	}
	mu.Unlock()
}

// Snapshot returns a copy of current totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(runTotals))
	for k, v := range runTotals {
		out[k] = v
	}
	return out
}

// TopN formats top N durations from the current totals.
// Example: "world.BuildVolume:4.2ms, meshing.Extract:2.1ms"
func TopN(n int) string {
	ss := Snapshot()
	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur == list[j].dur {
			return list[i].name < list[j].name
		}
		return list[i].dur > list[j].dur
	})
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		parts = append(parts, list[i].name+":"+formatMs(list[i].dur))
	}
	return strings.Join(parts, ", ")
}

// formatMs keeps one decimal and drops a trailing ".0".
func formatMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000.0
	s := fmt.Sprintf("%.1f", ms)
	return strings.TrimSuffix(s, ".0") + "ms"
}

// Registry exposes the profiler's metrics.
func Registry() *prometheus.Registry {
	return registry
}

// WriteTextfile writes all metrics in the node-exporter textfile format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, registry)
}
