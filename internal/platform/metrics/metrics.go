package metrics

import (
	"net/http"
	"sync/atomic"
	"time"
)

// Collector keeps process-wide HTTP counters for the /metrics endpoint.
type Collector struct {
	started         time.Time
	requests        atomic.Uint64
	clientErrors    atomic.Uint64
	serverErrors    atomic.Uint64
	rateLimited     atomic.Uint64
	loginFailures   atomic.Uint64
	totalDurationMs atomic.Uint64
}

func New() *Collector {
	return &Collector{started: time.Now()}
}

func (c *Collector) Record(status int, duration time.Duration) {
	c.requests.Add(1)
	switch {
	case status == http.StatusTooManyRequests:
		c.rateLimited.Add(1)
		c.clientErrors.Add(1)
	case status >= 500:
		c.serverErrors.Add(1)
	case status >= 400:
		c.clientErrors.Add(1)
	}
	if ms := duration.Milliseconds(); ms > 0 {
		c.totalDurationMs.Add(uint64(ms))
	}
}

func (c *Collector) LoginFailed() {
	c.loginFailures.Add(1)
}

type Snapshot struct {
	RequestsTotal     uint64  `json:"requestsTotal"`
	ClientErrorsTotal uint64  `json:"clientErrorsTotal"`
	ServerErrorsTotal uint64  `json:"serverErrorsTotal"`
	RateLimitedTotal  uint64  `json:"rateLimitedTotal"`
	LoginFailures     uint64  `json:"loginFailuresTotal"`
	AvgDurationMs     float64 `json:"avgDurationMs"`
	UptimeSeconds     int64   `json:"uptimeSeconds"`
}

func (c *Collector) Snapshot() Snapshot {
	total := c.requests.Load()
	totalMs := c.totalDurationMs.Load()
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return Snapshot{
		RequestsTotal:     total,
		ClientErrorsTotal: c.clientErrors.Load(),
		ServerErrorsTotal: c.serverErrors.Load(),
		RateLimitedTotal:  c.rateLimited.Load(),
		LoginFailures:     c.loginFailures.Load(),
		AvgDurationMs:     avg,
		UptimeSeconds:     int64(time.Since(c.started).Seconds()),
	}
}
