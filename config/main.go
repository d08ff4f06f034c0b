package config

import (
	"context"
	"time"

	"github.com/akeren/creatorchain/config/router"
	"github.com/akeren/creatorchain/internal/log"
	"github.com/akeren/creatorchain/internal/models"
	"github.com/akeren/creatorchain/internal/views"
	"github.com/akeren/creatorchain/pkg/constants"
	"github.com/akeren/creatorchain/pkg/formspree"
	"github.com/akeren/creatorchain/pkg/utils"
	"gorm.io/gorm"
)

type ApplicationConfig struct {
	// DB is nil when no database is configured or the audit is disabled.
	DB              *gorm.DB
	RouterService   *router.RouterService
	Logger          *log.Logger
	Cache           Cache
	Views           views.Store
	FormClient      *formspree.Client
	Config          *AppConfig
	Waitlist        *WaitlistConfig
	TracingShutdown func(context.Context) error
}

type AppConfig struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RequestTimeout    time.Duration
	// LandingCopyPath overrides the built-in landing page text.
	LandingCopyPath string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		RateLimitRequests: utils.GetEnvPositiveInt("RATE_LIMIT_REQUESTS", constants.DefaultRateLimitRequests),
		RateLimitWindow:   utils.GetEnvPositiveDuration("RATE_LIMIT_WINDOW", constants.DefaultRateLimitWindow()),
		RequestTimeout:    utils.GetEnvPositiveDuration("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		LandingCopyPath:   utils.GetEnvTrimmed("LANDING_COPY_PATH"),
	}
}

func (ac *ApplicationConfig) Cleanup() {
	if ac.TracingShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ac.TracingShutdown(ctx); err != nil {
			ac.Logger.Error("Failed to shutdown tracer provider", "error", err)
		}
	}

	if ac.Views != nil {
		if err := ac.Views.Close(); err != nil {
			ac.Logger.Error("Failed to close view store", "error", err)
		}
	}

	if ac.DB != nil {
		CloseDatabase(ac.DB, ac.Logger)
	}

	if ac.RouterService != nil {
		ac.RouterService.Cleanup()
	}

	if ac.Cache != nil {
		CloseCache(ac.Cache, ac.Logger)
	}

	ac.Logger.Info("Application cleanup completed")
}

// NewFormClient builds the form backend client from the waitlist settings.
func NewFormClient(logger *log.Logger, cfg *WaitlistConfig) (*formspree.Client, error) {
	return formspree.NewClient(formspree.Options{
		Endpoint:         cfg.Endpoint,
		Timeout:          cfg.SubmitTimeout,
		FailureThreshold: cfg.BreakerFailures,
		RecoveryTimeout:  cfg.BreakerRecovery,
		Logger:           logger,
	})
}

// NewViewStore shares views through Redis when the cache exposes a client and
// keeps them in process otherwise.
func NewViewStore(logger *log.Logger, cache Cache, keyPrefix string, cfg *WaitlistConfig) (views.Store, error) {
	if client := GetRedisClient(cache); client != nil {
		logger.Info("Page views stored in Redis", "ttl", cfg.ViewTTL.String())
		return views.NewRedisStore(client, keyPrefix, cfg.ViewTTL), nil
	}

	logger.Info("Page views stored in memory", "ttl", cfg.ViewTTL.String(), "cleanup_interval", cfg.CleanupInterval.String())
	store, err := views.NewMemoryStore(cfg.ViewTTL, cfg.CleanupInterval, logger)
	if err != nil {
		return nil, err
	}
	return store, nil
}

func LoadApplicationConfiguration(logger *log.Logger, autoMigrate bool) (*ApplicationConfig, error) {
	InitializeEnvFile(logger)

	if autoMigrate {
		appEnv := GetAppEnv()
		if err := ValidateAutoMigrateAllowed(appEnv); err != nil {
			return nil, err
		}
		if appEnv == "" {
			logger.Warn("APP_ENV not set; allowing --auto-migrate as development")
		}
	}

	waitlistCfg, err := LoadWaitlistConfig()
	if err != nil {
		return nil, err
	}

	tracingShutdown, err := SetupTracing(logger)
	if err != nil {
		return nil, err
	}

	ac := &ApplicationConfig{
		Logger:          logger,
		Config:          NewAppConfig(),
		Waitlist:        waitlistCfg,
		TracingShutdown: tracingShutdown,
	}

	if waitlistCfg.AuditEnabled {
		if ac.DB, err = NewDatabaseOrNil(logger, NewDBConfigFromEnv()); err != nil {
			return ac.abort(err)
		}
	} else {
		logger.Info("Submission audit disabled by WAITLIST_AUDIT_ENABLED")
	}

	if autoMigrate && ac.DB != nil {
		if err := AutoMigrate(logger, ac.DB, models.ModelRegistry...); err != nil {
			return ac.abort(err)
		}
	}

	cacheCfg := NewCacheConfig()
	ac.Cache = cacheCfg.NewCacheOrNil(logger)

	if ac.Views, err = NewViewStore(logger, ac.Cache, cacheCfg.KeyPrefix, waitlistCfg); err != nil {
		return ac.abort(err)
	}

	if ac.FormClient, err = NewFormClient(logger, waitlistCfg); err != nil {
		return ac.abort(err)
	}

	ac.RouterService = router.CreateRouterService(logger, ac.Cache, &router.RouterConfig{
		RateLimitRequests: ac.Config.RateLimitRequests,
		RateLimitWindow:   ac.Config.RateLimitWindow,
		RequestTimeout:    ac.Config.RequestTimeout,
	})

	logger.Info("Application configuration loaded successfully",
		"form_id", waitlistCfg.FormID,
		"form_endpoint", waitlistCfg.Endpoint,
		"audit", ac.DB != nil,
	)

	return ac, nil
}

// abort releases whatever a failed load already opened.
func (ac *ApplicationConfig) abort(err error) (*ApplicationConfig, error) {
	ac.Cleanup()
	return nil, err
}
