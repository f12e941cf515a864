package controllers

import (
	"context"
	"fmt"
	"net/http"
	"qrscan/internal/providers"
	"qrscan/internal/repository"
	"time"
)

const healthPingTimeout = 2 * time.Second

type HealthController struct {
	repo      repository.ScanRepositoryInterface
	logger    providers.Logger
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Storage       string  `json:"storage"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Storage:       "ok",
	}
	status := http.StatusOK

	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()
	if err := hc.repo.Ping(ctx); err != nil {
		hc.logger.Errorf(providers.TypeApp, "Health check storage ping failed: %s", err)
		resp.Status = "degraded"
		resp.Storage = "unavailable"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, resp)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(repo repository.ScanRepositoryInterface, logger providers.Logger) *HealthController {
	return &HealthController{
		repo:      repo,
		logger:    logger,
		startTime: time.Now(),
	}
}
