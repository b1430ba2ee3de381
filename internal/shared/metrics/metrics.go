package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	shortlistStartedTotal   atomic.Uint64
	shortlistCompletedTotal atomic.Uint64
	shortlistFailedTotal    atomic.Uint64
	shortlistDroppedTotal   atomic.Uint64

	shortlistDuration = newHistogram([]float64{1000, 5000, 15000, 60000, 300000, 900000, 1800000})
)

// IncShortlistStarted increments the started counter.
func IncShortlistStarted() {
	shortlistStartedTotal.Add(1)
}

// IncShortlistCompleted increments the completed counter.
func IncShortlistCompleted() {
	shortlistCompletedTotal.Add(1)
}

// IncShortlistFailed increments the failed counter.
func IncShortlistFailed() {
	shortlistFailedTotal.Add(1)
}

// AddShortlistDropped records candidates dropped during correlation.
func AddShortlistDropped(n int) {
	if n > 0 {
		shortlistDroppedTotal.Add(uint64(n))
	}
}

// ObserveShortlistDurationMs records an orchestration duration in milliseconds.
func ObserveShortlistDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	shortlistDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render returns the metrics exposition text.
func Render() string {
	var b strings.Builder
	writeCounter(&b, "cie_shortlist_started_total", shortlistStartedTotal.Load())
	writeCounter(&b, "cie_shortlist_completed_total", shortlistCompletedTotal.Load())
	writeCounter(&b, "cie_shortlist_failed_total", shortlistFailedTotal.Load())
	writeCounter(&b, "cie_shortlist_dropped_candidates_total", shortlistDroppedTotal.Load())
	shortlistDuration.render(&b, "cie_shortlist_duration_ms")
	return b.String()
}

func writeCounter(b *strings.Builder, name string, value uint64) {
	b.WriteString("# TYPE " + name + " counter\n")
	b.WriteString(name + " " + strconv.FormatUint(value, 10) + "\n")
}

type histogram struct {
	mu      sync.Mutex
	bounds  []float64
	buckets []uint64
	count   uint64
	sum     float64
}

func newHistogram(bounds []float64) *histogram {
	return &histogram{
		bounds:  bounds,
		buckets: make([]uint64, len(bounds)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.bounds {
		if value <= bound {
			h.buckets[i]++
		}
	}
}

func (h *histogram) render(b *strings.Builder, name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	b.WriteString("# TYPE " + name + " histogram\n")
	for i, bound := range h.bounds {
		fmt.Fprintf(b, "%s_bucket{le=\"%g\"} %d\n", name, bound, h.buckets[i])
	}
	fmt.Fprintf(b, "%s_bucket{le=\"+Inf\"} %d\n", name, h.count)
	fmt.Fprintf(b, "%s_sum %g\n", name, h.sum)
	fmt.Fprintf(b, "%s_count %d\n", name, h.count)
}
