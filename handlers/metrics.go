package handlers

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

// Metrics tracks in-process request counters. The service is
// stateless, so these reset on restart.
type Metrics struct {
	requestsTotal atomic.Int64
	errorsTotal   atomic.Int64
	latencySum    atomic.Int64
	latencyCount  atomic.Int64
}

func (m *Metrics) RecordRequest(duration time.Duration) {
	m.requestsTotal.Add(1)
	m.latencySum.Add(duration.Milliseconds())
	m.latencyCount.Add(1)
}

func (m *Metrics) RecordError() {
	m.errorsTotal.Add(1)
}

func (m *Metrics) AvgLatencyMillis() int64 {
	count := m.latencyCount.Load()
	if count == 0 {
		return 0
	}
	return m.latencySum.Load() / count
}

// MetricsHandler serves the counters as JSON.
func (h *Handler) MetricsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"requests_total": h.metrics.requestsTotal.Load(),
		"errors_total":   h.metrics.errorsTotal.Load(),
		"avg_latency_ms": h.metrics.AvgLatencyMillis(),
	})
}
