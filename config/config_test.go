package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/dep2p/go-mcaststats/pkg/types"
)

// TestNewConfig 测试创建默认配置
func TestNewConfig(t *testing.T) {
	cfg := NewConfig()
	require.NotNil(t, cfg)

	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.Statistics.EmitOnUpdate)
	assert.Equal(t, 64, cfg.EventBus.SinkBuffer)
	assert.False(t, cfg.Poller.Enabled)
	assert.Equal(t, 10*time.Second, cfg.Poller.Interval.Duration())
	assert.Equal(t, "mcast", cfg.Metrics.Namespace)
}

// TestConfig_Validate 测试配置验证
func TestConfig_Validate(t *testing.T) {
	t.Run("NegativeSinkBuffer", func(t *testing.T) {
		cfg := NewConfig()
		cfg.EventBus.SinkBuffer = -1
		assert.Error(t, cfg.Validate())
	})

	t.Run("ZeroInterval", func(t *testing.T) {
		cfg := NewConfig()
		cfg.Poller.Enabled = true
		cfg.Poller.Interval = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("BadRoute", func(t *testing.T) {
		cfg := NewConfig()
		cfg.Poller.Routes = []StaticRoute{{Group: "10.0.0.1"}}
		assert.ErrorIs(t, cfg.Validate(), types.ErrInvalidGroup)
	})

	t.Run("BadNamespace", func(t *testing.T) {
		cfg := NewConfig()
		cfg.Metrics.Namespace = "mcast-stats"
		assert.Error(t, cfg.Validate())

		cfg.Metrics.Enabled = false
		assert.NoError(t, cfg.Validate())
	})
}

// TestFromJSON 测试 JSON 加载
func TestFromJSON(t *testing.T) {
	cfg, err := FromJSON([]byte(`{
		"statistics": {"emit_on_update": false},
		"poller": {
			"enabled": true,
			"interval": "30s",
			"routes": [{"group": "239.1.1.1", "source": "10.0.0.1", "vlan": "100"}]
		}
	}`))
	require.NoError(t, err)

	assert.False(t, cfg.Statistics.EmitOnUpdate)
	assert.True(t, cfg.Poller.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Poller.Interval.Duration())
	// 未出现的字段保持默认
	assert.Equal(t, 64, cfg.EventBus.SinkBuffer)

	routes, err := cfg.Poller.ParseRoutes()
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, types.VlanID(100), routes[0].VlanID)
	assert.Equal(t, "(10.0.0.1, 239.1.1.1)/static", routes[0].Route.String())

	_, err = FromJSON([]byte(`{"poller": {"interval": "soon"}}`))
	assert.Error(t, err)
}

// TestFromYAML 测试 YAML 加载
func TestFromYAML(t *testing.T) {
	cfg, err := FromYAML([]byte(`
event_bus:
  sink_buffer: 8
poller:
  enabled: true
  interval: 2m
  clear_before_poll: true
  routes:
    - group: 239.2.2.2
      vlan: none
metrics:
  enabled: false
`))
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.EventBus.SinkBuffer)
	assert.Equal(t, 2*time.Minute, cfg.Poller.Interval.Duration())
	assert.True(t, cfg.Poller.ClearBeforePoll)
	assert.False(t, cfg.Metrics.Enabled)
	assert.True(t, cfg.Statistics.EmitOnUpdate)

	routes, err := cfg.Poller.ParseRoutes()
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.True(t, routes[0].Route.IsAnySource())
	assert.Equal(t, types.VlanNone, routes[0].VlanID)
}

// TestLoadFile 测试按扩展名加载文件
func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "cfg.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("poller:\n  interval: 5s\n"), 0o600))
	cfg, err := LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Poller.Interval.Duration())

	jsonPath := filepath.Join(dir, "cfg.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"event_bus": {"sink_buffer": -3}}`), 0o600))
	_, err = LoadFile(jsonPath)
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

// TestConfig_ToJSONRoundTrip 测试序列化后可重新加载
func TestConfig_ToJSONRoundTrip(t *testing.T) {
	cfg := NewConfig()
	cfg.Poller.Routes = []StaticRoute{{Group: "239.1.1.1", Vlan: "any"}}

	data, err := cfg.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"interval": "10s"`)

	loaded, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

// TestApplyPreset 测试预设
func TestApplyPreset(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, ApplyPreset(cfg, "minimal"))
	assert.False(t, cfg.Statistics.EmitOnUpdate)
	assert.False(t, cfg.Metrics.Enabled)

	assert.NoError(t, ApplyPreset(cfg, "default"))
	assert.Error(t, ApplyPreset(cfg, "server"))
	assert.Error(t, ApplyPreset(nil, "minimal"))
}

// TestParseStaticRoutes 测试命令行路由解析
func TestParseStaticRoutes(t *testing.T) {
	routes, err := ParseStaticRoutes("239.1.1.1,10.0.0.1@100; 239.1.1.2@none ;")
	require.NoError(t, err)
	require.Len(t, routes, 2)
	assert.Equal(t, StaticRoute{Group: "239.1.1.1", Source: "10.0.0.1", Vlan: "100"}, routes[0])
	assert.Equal(t, StaticRoute{Group: "239.1.1.2", Vlan: "none"}, routes[1])

	_, err = ParseStaticRoutes("239.1.1.1@5000")
	assert.ErrorIs(t, err, types.ErrInvalidVlan)
}

// TestCloneConfig 测试克隆
func TestCloneConfig(t *testing.T) {
	cfg := NewConfig()
	cfg.Poller.Routes = []StaticRoute{{Group: "239.1.1.1"}}

	cloned := CloneConfig(cfg)
	cloned.Poller.Routes[0].Group = "239.9.9.9"
	cloned.Statistics.EmitOnUpdate = false

	assert.Equal(t, "239.1.1.1", cfg.Poller.Routes[0].Group)
	assert.True(t, cfg.Statistics.EmitOnUpdate)
	assert.Nil(t, CloneConfig(nil))
}

// TestConfig_ValidateCollectsAll 测试验证汇总多个子配置错误
func TestConfig_ValidateCollectsAll(t *testing.T) {
	cfg := NewConfig()
	cfg.EventBus.SinkBuffer = -1
	cfg.Metrics.Enabled = true
	cfg.Metrics.Namespace = "bad name"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
}
