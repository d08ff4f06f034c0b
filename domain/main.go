package domain

import (
	"time"

	"github.com/akeren/creatorchain/config"
	"github.com/akeren/creatorchain/domain/feedback"
	"github.com/akeren/creatorchain/domain/landing"
	"github.com/akeren/creatorchain/domain/monitoring"
	"github.com/akeren/creatorchain/domain/waitlist"
	"github.com/akeren/creatorchain/pkg/constants"
	"github.com/akeren/creatorchain/pkg/factory"
)

func SetupCoreDomain(appConfig *config.ApplicationConfig) error {
	rs := appConfig.RouterService
	logger := appConfig.Logger

	// Interfaces below stay nil when no cache is configured.
	var monitoringCache monitoring.Cache
	var feedbackCache feedback.Cache
	var limiterCache factory.Cache
	if appConfig.Cache != nil {
		monitoringCache = appConfig.Cache
		feedbackCache = appConfig.Cache
		limiterCache = appConfig.Cache
	}

	var breaker monitoring.Breaker
	if appConfig.FormClient != nil {
		breaker = appConfig.FormClient
	}

	rs.MountController(monitoring.NewMonitoringControllerFactory(monitoring.Dependencies{
		DB:      appConfig.DB,
		Cache:   monitoringCache,
		Views:   appConfig.Views,
		Breaker: breaker,
	}).CreateController())

	limiters := factory.NewDefaultRateLimiterFactory(limiterCache, logger)

	waitlistFactory := waitlist.NewWaitlistServiceFactory(waitlist.Dependencies{
		DB:             appConfig.DB,
		Logger:         logger,
		FormID:         appConfig.Waitlist.FormID,
		Backend:        appConfig.FormClient,
		Views:          appConfig.Views,
		Limiters:       limiters,
		RequestsPerMin: appConfig.Waitlist.RateLimit,
	})
	service := waitlistFactory.CreateService(rs.MetricsRegisterer())
	submitLimiter := waitlistFactory.CreateSubmitLimiter()
	rs.MountController(waitlistFactory.CreateController(service, submitLimiter))

	pageCopy, err := landing.LoadCopy(appConfig.Config.LandingCopyPath)
	if err != nil {
		return err
	}
	rs.MountController(landing.NewLandingController(pageCopy, service, submitLimiter))

	rs.MountController(feedback.NewFeedbackController(logger, feedbackCache,
		limiters.CreateRateLimiter("feedback", constants.FeedbackRequestsPerMinute, time.Minute)))

	logger.Info("Domains mounted",
		"controllers", []string{"monitoring", "waitlist", "landing", "feedback"},
		"shared_rate_limits", limiters.UsesRedis(),
	)
	return nil
}
