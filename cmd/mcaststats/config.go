package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dep2p/go-mcaststats/config"
)

// ============================================================================
//                              环境变量（CLI 专用）
// ============================================================================

// 环境变量名
const (
	envPrefix           = "MCAST_"
	envEmitOnUpdate     = "EMIT_ON_UPDATE"
	envPollInterval     = "POLL_INTERVAL"
	envRoutes           = "ROUTES"
	envMetricsAddr      = "METRICS_ADDR"
	envMetricsEnabled   = "METRICS_ENABLED"
	envMetricsNamespace = "METRICS_NAMESPACE"
)

// applyEnvOverrides 应用环境变量覆盖配置
//
// 环境变量优先级高于配置文件，但低于命令行参数。
//   - MCAST_EMIT_ON_UPDATE: 更新路径是否发布事件
//   - MCAST_POLL_INTERVAL: 轮询周期（如 30s）
//   - MCAST_ROUTES: 静态路由，启用轮询
//   - MCAST_METRICS_ADDR: /metrics 监听地址
//   - MCAST_METRICS_ENABLED: 是否注册指标
//   - MCAST_METRICS_NAMESPACE: 指标名前缀
func applyEnvOverrides(cfg *config.Config) error {
	if v := os.Getenv(envPrefix + envEmitOnUpdate); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, envEmitOnUpdate, err)
		}
		cfg.Statistics.EmitOnUpdate = b
	}

	if v := os.Getenv(envPrefix + envPollInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, envPollInterval, err)
		}
		cfg.Poller.Interval = config.Duration(d)
	}

	if v := os.Getenv(envPrefix + envRoutes); v != "" {
		routes, err := config.ParseStaticRoutes(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, envRoutes, err)
		}
		cfg.Poller.Routes = routes
		cfg.Poller.Enabled = true
	}

	if v := os.Getenv(envPrefix + envMetricsAddr); v != "" {
		cfg.Metrics.ListenAddr = v
	}

	if v := os.Getenv(envPrefix + envMetricsEnabled); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, envMetricsEnabled, err)
		}
		cfg.Metrics.Enabled = b
	}

	if v := os.Getenv(envPrefix + envMetricsNamespace); v != "" {
		cfg.Metrics.Namespace = v
	}

	return nil
}
