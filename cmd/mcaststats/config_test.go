package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-mcaststats/config"
)

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("MCAST_EMIT_ON_UPDATE", "false")
	t.Setenv("MCAST_POLL_INTERVAL", "30s")
	t.Setenv("MCAST_ROUTES", "239.1.1.1,10.0.0.1@100;239.1.1.2@none")
	t.Setenv("MCAST_METRICS_ADDR", ":9100")
	t.Setenv("MCAST_METRICS_NAMESPACE", "lab")

	cfg := config.NewConfig()
	require.NoError(t, applyEnvOverrides(cfg))

	assert.False(t, cfg.Statistics.EmitOnUpdate)
	assert.Equal(t, 30*time.Second, cfg.Poller.Interval.Duration())
	assert.True(t, cfg.Poller.Enabled)
	assert.Len(t, cfg.Poller.Routes, 2)
	assert.Equal(t, ":9100", cfg.Metrics.ListenAddr)
	assert.Equal(t, "lab", cfg.Metrics.Namespace)
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnvOverrides_Invalid(t *testing.T) {
	cases := map[string]string{
		"MCAST_EMIT_ON_UPDATE":  "maybe",
		"MCAST_POLL_INTERVAL":   "soon",
		"MCAST_ROUTES":          "10.0.0.1@1",
		"MCAST_METRICS_ENABLED": "nope",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			assert.Error(t, applyEnvOverrides(config.NewConfig()))
		})
	}
}

func TestApplyEnvOverrides_Empty(t *testing.T) {
	cfg := config.NewConfig()
	require.NoError(t, applyEnvOverrides(cfg))
	assert.Equal(t, config.NewConfig(), cfg)
}
