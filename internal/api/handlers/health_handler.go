package handlers

import (
	"context"
	"net/http"

	"github.com/isdelr/devconnect-be/internal/monitoring"
)

// HealthChecker produces a health report.
type HealthChecker interface {
	Check(ctx context.Context) monitoring.HealthReport
}

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	checker HealthChecker
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Get returns 200 with the report, or 503 when the store is unreachable.
func (h *HealthHandler) Get(req *Request) Result {
	report := h.checker.Check(req.Context())
	if !report.Healthy() {
		return Result{Status: http.StatusServiceUnavailable, Body: report}
	}
	return OK(report)
}
