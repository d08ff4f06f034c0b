package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// WaitlistConfig configures the early access form and its form backend.
type WaitlistConfig struct {
	FormID          string        `env:"WAITLIST_FORM_ID" envDefault:"xdkpgdlw"`
	Endpoint        string        `env:"WAITLIST_FORM_ENDPOINT" envDefault:"https://formspree.io/f"`
	SubmitTimeout   time.Duration `env:"WAITLIST_SUBMIT_TIMEOUT" envDefault:"10s"`
	ViewTTL         time.Duration `env:"WAITLIST_VIEW_TTL" envDefault:"24h"`
	CleanupInterval time.Duration `env:"WAITLIST_VIEW_CLEANUP_INTERVAL" envDefault:"5m"`
	RateLimit       int           `env:"WAITLIST_RATE_LIMIT" envDefault:"30"`
	BreakerFailures uint32        `env:"WAITLIST_BREAKER_FAILURES" envDefault:"5"`
	BreakerRecovery time.Duration `env:"WAITLIST_BREAKER_RECOVERY" envDefault:"30s"`
	AuditEnabled    bool          `env:"WAITLIST_AUDIT_ENABLED" envDefault:"true"`
}

func LoadWaitlistConfig() (*WaitlistConfig, error) {
	cfg := &WaitlistConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse waitlist env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *WaitlistConfig) Validate() error {
	if strings.TrimSpace(cfg.FormID) == "" {
		return fmt.Errorf("WAITLIST_FORM_ID must not be empty")
	}

	u, err := url.Parse(cfg.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("WAITLIST_FORM_ENDPOINT %q must be an absolute http(s) URL", cfg.Endpoint)
	}

	if cfg.SubmitTimeout <= 0 || cfg.ViewTTL <= 0 || cfg.CleanupInterval <= 0 {
		return fmt.Errorf("waitlist durations must be positive")
	}
	if cfg.RateLimit <= 0 {
		return fmt.Errorf("WAITLIST_RATE_LIMIT must be positive, got %d", cfg.RateLimit)
	}
	if cfg.BreakerFailures == 0 {
		return fmt.Errorf("WAITLIST_BREAKER_FAILURES must be positive")
	}
	return nil
}
