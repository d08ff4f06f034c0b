package waitlist

import (
	"time"

	"github.com/akeren/creatorchain/config/router"
	"github.com/akeren/creatorchain/internal/log"
	"github.com/akeren/creatorchain/internal/views"
	"github.com/akeren/creatorchain/pkg/factory"
	"github.com/akeren/creatorchain/pkg/ratelimit"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type WaitlistServiceFactory interface {
	CreateService(reg prometheus.Registerer) WaitlistService
	CreateSubmitLimiter() ratelimit.RateLimiter
	CreateController(service WaitlistService, limiter ratelimit.RateLimiter) *router.RESTController
}

type Dependencies struct {
	DB             *gorm.DB
	Logger         *log.Logger
	FormID         string
	Backend        FormBackend
	Views          views.Store
	Limiters       factory.RateLimiterFactory
	RequestsPerMin int
}

type DefaultWaitlistServiceFactory struct {
	deps Dependencies
}

func NewWaitlistServiceFactory(deps Dependencies) WaitlistServiceFactory {
	return &DefaultWaitlistServiceFactory{deps: deps}
}

func (f *DefaultWaitlistServiceFactory) CreateService(reg prometheus.Registerer) WaitlistService {
	return NewWaitlistService(
		f.deps.Logger,
		f.deps.FormID,
		f.deps.Backend,
		f.deps.Views,
		NewSubmissionRepository(f.deps.DB),
		reg,
	)
}

// CreateSubmitLimiter is shared by the JSON endpoint and the page form so a
// client has one submit budget.
func (f *DefaultWaitlistServiceFactory) CreateSubmitLimiter() ratelimit.RateLimiter {
	return f.deps.Limiters.CreateRateLimiter("waitlist", f.deps.RequestsPerMin, time.Minute)
}

func (f *DefaultWaitlistServiceFactory) CreateController(service WaitlistService, limiter ratelimit.RateLimiter) *router.RESTController {
	return NewWaitlistController(service, limiter)
}
