package monitoring

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/process"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthReport is the body of the health endpoint.
type HealthReport struct {
	Status        string `json:"status"`
	DB            string `json:"db"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
	RSSBytes      uint64 `json:"rssBytes"`
	Goroutines    int    `json:"goroutines"`
}

// Healthy reports whether every dependency answered.
func (r HealthReport) Healthy() bool {
	return r.Status == "ok"
}

// HealthChecker reports store reachability and process statistics.
type HealthChecker struct {
	db      Pinger
	started time.Time
	now     func() time.Time
}

// NewHealthChecker creates a HealthChecker; uptime is measured from this call.
func NewHealthChecker(db Pinger) *HealthChecker {
	return &HealthChecker{db: db, started: time.Now(), now: time.Now}
}

// Check pings the store and samples the current process.
func (h *HealthChecker) Check(ctx context.Context) HealthReport {
	report := HealthReport{
		Status:        "ok",
		DB:            "ok",
		UptimeSeconds: int64(h.now().Sub(h.started) / time.Second),
		Goroutines:    runtime.NumGoroutine(),
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := h.db.PingContext(pingCtx); err != nil {
		log.Warn().Err(err).Msg("Health check: database ping failed")
		report.Status = "degraded"
		report.DB = "unreachable"
	}

	report.RSSBytes = residentMemory(ctx)
	return report
}

func residentMemory(ctx context.Context) uint64 {
	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		log.Debug().Err(err).Msg("Health check: process lookup failed")
		return 0
	}
	mem, err := proc.MemoryInfoWithContext(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("Health check: memory info unavailable")
		return 0
	}
	return mem.RSS
}
