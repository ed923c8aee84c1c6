package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"taskorganizer/internal/adapter/http/middleware"
)

const (
	StatusOk        = "ok"
	StatusDown      = "down"
	StatusDisabled  = "disabled"
	healthDBTimeout = 2 * time.Second
)

// Pinger is satisfied by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// FallbackReporter is satisfied by the failover repositories.
type FallbackReporter interface {
	UsingFallback() bool
}

type HealthBasic struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type HealthServices struct {
	Remote string `json:"remote_store"`
	Local  string `json:"local_store"`
	Mode   string `json:"mode"`
}

type HealthAdvanced struct {
	AppName           string         `json:"app_name"`
	AppVersion        string         `json:"app_version"`
	CurrentSystemTime string         `json:"current_system_time"`
	Language          string         `json:"language"`
	Status            HealthServices `json:"status"`
}

type HealthHandler struct {
	remote    Pinger
	local     Pinger
	failovers []FallbackReporter
}

// NewHealthHandler takes the stores to report on. remote is nil when the
// process started on the local store.
func NewHealthHandler(remote, local Pinger, failovers ...FallbackReporter) *HealthHandler {
	return &HealthHandler{remote: remote, local: local, failovers: failovers}
}

// CheckHealth is a liveness probe. Storage always has a local fallback, so
// it does not depend on the remote store.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthBasic{
		Status:    StatusOk,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthHandler) CheckHealthReport(c *gin.Context) {
	ctx := c.Request.Context()

	services := HealthServices{
		Remote: StatusDisabled,
		Local:  pingStatus(ctx, h.local),
		Mode:   "remote",
	}
	if h.remote != nil {
		services.Remote = pingStatus(ctx, h.remote)
	}
	if h.remote == nil || h.usingFallback() {
		services.Mode = "local"
	}

	c.JSON(http.StatusOK, HealthAdvanced{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format("2006-01-02 15:04:05"),
		Language:          middleware.GetLang(c),
		Status:            services,
	})
}

func (h *HealthHandler) usingFallback() bool {
	for _, f := range h.failovers {
		if f.UsingFallback() {
			return true
		}
	}
	return false
}

func pingStatus(ctx context.Context, db Pinger) string {
	if db == nil {
		return StatusDown
	}
	// Avoid hanging health checks if the database stalls.
	timeoutCtx, cancel := context.WithTimeout(ctx, healthDBTimeout)
	defer cancel()
	if db.PingContext(timeoutCtx) != nil {
		return StatusDown
	}
	return StatusOk
}

func getAppVersion() string {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		return "dev"
	}
	return version
}
