package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWaitlistConfig_Defaults(t *testing.T) {
	cfg, err := LoadWaitlistConfig()
	require.NoError(t, err)

	assert.Equal(t, "xdkpgdlw", cfg.FormID)
	assert.Equal(t, "https://formspree.io/f", cfg.Endpoint)
	assert.Equal(t, 10*time.Second, cfg.SubmitTimeout)
	assert.Equal(t, 24*time.Hour, cfg.ViewTTL)
	assert.Equal(t, 30, cfg.RateLimit)
	assert.Equal(t, uint32(5), cfg.BreakerFailures)
	assert.Equal(t, 30*time.Second, cfg.BreakerRecovery)
	assert.True(t, cfg.AuditEnabled)
}

func TestLoadWaitlistConfig_Overrides(t *testing.T) {
	t.Setenv("WAITLIST_FORM_ID", "abc123")
	t.Setenv("WAITLIST_FORM_ENDPOINT", "http://localhost:9999/f")
	t.Setenv("WAITLIST_SUBMIT_TIMEOUT", "2s")
	t.Setenv("WAITLIST_RATE_LIMIT", "5")

	cfg, err := LoadWaitlistConfig()
	require.NoError(t, err)

	assert.Equal(t, "abc123", cfg.FormID)
	assert.Equal(t, "http://localhost:9999/f", cfg.Endpoint)
	assert.Equal(t, 2*time.Second, cfg.SubmitTimeout)
	assert.Equal(t, 5, cfg.RateLimit)
}

func TestLoadWaitlistConfig_Rejects(t *testing.T) {
	cases := map[string]map[string]string{
		"relative endpoint": {"WAITLIST_FORM_ENDPOINT": "/f"},
		"ftp endpoint":      {"WAITLIST_FORM_ENDPOINT": "ftp://example.com/f"},
		"zero rate":         {"WAITLIST_RATE_LIMIT": "0"},
		"negative ttl":      {"WAITLIST_VIEW_TTL": "-1m"},
		"bad duration":      {"WAITLIST_SUBMIT_TIMEOUT": "soon"},
	}

	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := LoadWaitlistConfig()
			assert.Error(t, err)
		})
	}
}

func TestDBConfig_IsConfigured(t *testing.T) {
	assert.False(t, (&DBConfig{Driver: DriverPostgres}).IsConfigured())
	assert.True(t, (&DBConfig{Driver: DriverPostgres, Host: "db"}).IsConfigured())
	assert.True(t, (&DBConfig{Driver: DriverPostgres, URL: "postgres://x"}).IsConfigured())
	assert.False(t, (&DBConfig{Driver: DriverSQLite}).IsConfigured())
	assert.True(t, (&DBConfig{Driver: DriverSQLite, SQLitePath: ":memory:"}).IsConfigured())
}

func TestDBConfig_PostgresDSN(t *testing.T) {
	cfg := &DBConfig{Driver: DriverPostgres, Host: "db", Port: "5432", User: "u", Password: "p", Name: "cc", SSLMode: "disable"}
	dsn, err := cfg.postgresDSN()
	require.NoError(t, err)
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=cc sslmode=disable", dsn)

	_, err = (&DBConfig{Driver: DriverPostgres, Host: "db"}).postgresDSN()
	assert.ErrorContains(t, err, "POSTGRES_USER")
}

func TestSanitizeEnv(t *testing.T) {
	assert.Equal(t, "value", sanitizeEnv(`  "value" `))
	assert.Equal(t, "value", sanitizeEnv(`'value'`))
	assert.Equal(t, `"`, sanitizeEnv(`"`))
}
