package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, SessionBackendMemory, cfg.Session.Backend)
	assert.Equal(t, SeedSourceFixtures, cfg.Seed.Source)
	assert.Equal(t, time.Second, cfg.Latency.Login)
	assert.Equal(t, "Spring 2025", cfg.Portal.DefaultSemester)
	assert.Equal(t, 10, cfg.Portal.TablePageSize)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "REDIS")
	t.Setenv("LATENCY_SAVE", "0s")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, SessionBackendRedis, cfg.Session.Backend)
	assert.Equal(t, time.Duration(0), cfg.Latency.Save)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
	assert.Equal(t, 2*time.Second, parseDuration("2s", time.Minute))
}

func TestSessionIdleTTLNeverOutlivesCookie(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.Session.IdleTTL)
	assert.Equal(t, 10000, cfg.Session.MaxClients)

	t.Setenv("SESSION_COOKIE_TTL", "10m")
	t.Setenv("SESSION_IDLE_TTL", "2h")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, cfg.Session.IdleTTL)
}
