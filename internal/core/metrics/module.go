package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/multierr"

	"github.com/dep2p/go-mcaststats/config"
	"github.com/dep2p/go-mcaststats/internal/core/eventbus"
	pkgif "github.com/dep2p/go-mcaststats/pkg/interfaces"
	"github.com/dep2p/go-mcaststats/pkg/lib/log"
)

var logger = log.Logger("core/metrics")

// Config 指标配置
type Config struct {
	// Enabled 是否注册指标
	Enabled bool

	// Namespace 指标名前缀
	Namespace string
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		Namespace: "mcast",
	}
}

// ConfigFromUnified 从统一配置创建指标配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return Config{
		Enabled:   cfg.Metrics.Enabled,
		Namespace: cfg.Metrics.Namespace,
	}
}

// Module 是 metrics 的 Fx 模块
func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(
			prometheus.NewRegistry,
			ProvideCollectors,
		),
		fx.Invoke(registerLifecycle),
	)
}

// Params 采集器依赖参数
type Params struct {
	fx.In

	Service    pkgif.McastStatisticsService
	Bus        *eventbus.Bus  `optional:"true"`
	UnifiedCfg *config.Config `optional:"true"`
}

// Collectors 采集器集合；指标关闭时字段为 nil
//
// 宿主自带事件总线时 Bus 为 nil。
type Collectors struct {
	Stats  *StatsCollector
	Events *EventCounter
	Bus    *BusCollector
}

// ProvideCollectors 提供采集器
func ProvideCollectors(p Params) Collectors {
	cfg := ConfigFromUnified(p.UnifiedCfg)
	if !cfg.Enabled {
		return Collectors{}
	}
	c := Collectors{
		Stats:  NewStatsCollector(cfg.Namespace, p.Service),
		Events: NewEventCounter(cfg.Namespace),
	}
	if p.Bus != nil {
		c.Bus = NewBusCollector(cfg.Namespace, p.Bus)
	}
	return c
}

// all 返回需要注册的采集器
func (c Collectors) all() []prometheus.Collector {
	out := []prometheus.Collector{c.Stats, c.Events}
	if c.Bus != nil {
		out = append(out, c.Bus)
	}
	return out
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In

	LC         fx.Lifecycle
	Service    pkgif.McastStatisticsService
	Collectors Collectors
	Registry   *prometheus.Registry
	Registerer prometheus.Registerer `optional:"true"`
}

// registerLifecycle 启动时注册采集器与事件监听器，停止时注销
func registerLifecycle(input lifecycleInput) {
	c := input.Collectors
	if c.Stats == nil {
		return
	}

	var reg prometheus.Registerer = input.Registry
	if input.Registerer != nil {
		reg = input.Registerer
	}

	input.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			var registered []prometheus.Collector
			rollback := func() {
				for _, col := range registered {
					reg.Unregister(col)
				}
			}
			for _, col := range c.all() {
				if err := reg.Register(col); err != nil {
					rollback()
					return fmt.Errorf("register %T: %w", col, err)
				}
				registered = append(registered, col)
			}
			if err := input.Service.AddListener(c.Events); err != nil {
				rollback()
				return err
			}
			logger.Debug("已注册组播统计指标", "collectors", len(registered))
			return nil
		},
		OnStop: func(_ context.Context) error {
			input.Service.RemoveListener(c.Events)

			var err error
			for _, col := range c.all() {
				if !reg.Unregister(col) {
					err = multierr.Append(err, fmt.Errorf("%T was not registered", col))
				}
			}
			return err
		},
	})
}
