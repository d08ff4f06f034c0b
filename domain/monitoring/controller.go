package monitoring

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/akeren/creatorchain/config/router"
	"github.com/akeren/creatorchain/internal/log"
	"github.com/akeren/creatorchain/internal/views"
	"github.com/akeren/creatorchain/pkg/constants"
	"github.com/akeren/creatorchain/pkg/ratelimit"
	"gorm.io/gorm"
)

const (
	healthCheckTimeout = 2 * time.Second
	// healthProbeViewID never exists; a lookup proves the store answers.
	healthProbeViewID = "health-probe"
)

type Cache interface {
	Ping(ctx context.Context) error
}

// Breaker reports the form backend circuit state.
type Breaker interface {
	State() string
}

type HealthStatus struct {
	Database    int    `json:"database"`     // 1 = healthy, 0 = unhealthy/not configured
	Cache       int    `json:"cache"`        // 1 = healthy, 0 = unhealthy/not configured
	Views       int    `json:"views"`        // 1 = healthy, 0 = unhealthy
	FormBackend string `json:"form_backend"` // circuit state: closed, half-open, open
	Uptime      int    `json:"uptime"`       // uptime in seconds
}

type MonitoringController struct {
	db        *gorm.DB
	cache     Cache
	views     views.Store
	breaker   Breaker
	startTime time.Time
}

// NewMonitoringController mounts /status and /health. db, cache and breaker
// may be nil when the service runs without them.
func NewMonitoringController(db *gorm.DB, cache Cache, store views.Store, breaker Breaker) *router.RESTController {
	ctrl := &MonitoringController{
		db:        db,
		cache:     cache,
		views:     store,
		breaker:   breaker,
		startTime: time.Now(),
	}

	return router.NewRESTController(
		"MonitoringController",
		"/",
		func(routerService *router.RouterService, controller *router.RESTController) {
			monitoringRateLimiter := createMonitoringRateLimiter()

			routerService.AddGetHandler(controller, monitoringRateLimiter, "status", ctrl.monitor(routerService))
			routerService.AddGetHandler(controller, monitoringRateLimiter, "health", ctrl.healthCheck)
		},
	)
}

func createMonitoringRateLimiter() ratelimit.RateLimiter {
	return ratelimit.NewRateLimiter(&ratelimit.RateLimitConfig{
		Requests: constants.MonitoringRequestsPerMinute,
		Window:   time.Minute,
	})
}

func (ctrl *MonitoringController) healthCheck(c *router.RequestContext) *router.ServiceResult {
	logger := router.GetLogger(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status, healthy := ctrl.performHealthChecks(ctx, logger)
	if !healthy {
		return router.ErrorResult(http.StatusServiceUnavailable, "creatorchain health check failed", status)
	}
	return router.OKResult(status, "creatorchain health check completed")
}

// StatusReport describes what the running service exposes.
type StatusReport struct {
	Uptime int            `json:"uptime"`
	Routes []router.Route `json:"routes"`
}

// monitor reads the route table at request time so it includes controllers
// mounted after this one.
func (ctrl *MonitoringController) monitor(rs *router.RouterService) router.HandlerFunction {
	return func(_ *router.RequestContext) *router.ServiceResult {
		return router.OKResult(StatusReport{
			Uptime: int(time.Since(ctrl.startTime).Seconds()),
			Routes: rs.Routes(),
		}, "Monitoring endpoint is operational.")
	}
}

// performHealthChecks reports healthy when every configured dependency
// answers. An open form-backend circuit degrades submissions but not the
// page, so it does not fail the check.
func (ctrl *MonitoringController) performHealthChecks(ctx context.Context, logger *log.Logger) (HealthStatus, bool) {
	status := HealthStatus{
		Uptime:      int(time.Since(ctrl.startTime).Seconds()),
		FormBackend: "unknown",
	}
	healthy := true

	if ctrl.db != nil {
		if ctrl.checkDatabase(ctx) {
			status.Database = 1
		} else {
			healthy = false
			logger.Error("Database health check failed")
		}
	}

	if ctrl.cache != nil {
		if ctrl.cache.Ping(ctx) == nil {
			status.Cache = 1
		} else {
			healthy = false
			logger.Error("Cache health check failed")
		}
	}

	if ctrl.checkViews(ctx) {
		status.Views = 1
	} else {
		healthy = false
		logger.Error("View store health check failed")
	}

	if ctrl.breaker != nil {
		status.FormBackend = ctrl.breaker.State()
		if status.FormBackend == "open" {
			logger.Warn("Form backend circuit is open")
		}
	}

	logger.Debug("Health check completed", "healthy", healthy)
	return status, healthy
}

func (ctrl *MonitoringController) checkDatabase(ctx context.Context) bool {
	sqlDB, err := ctrl.db.DB()
	if err != nil {
		return false
	}
	return sqlDB.PingContext(ctx) == nil
}

func (ctrl *MonitoringController) checkViews(ctx context.Context) bool {
	if ctrl.views == nil {
		return false
	}
	_, err := ctrl.views.Get(ctx, healthProbeViewID)
	return err == nil || errors.Is(err, views.ErrNotFound)
}
