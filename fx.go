package mcaststats

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-mcaststats/config"
	"github.com/dep2p/go-mcaststats/internal/core/eventbus"
	statscore "github.com/dep2p/go-mcaststats/internal/core/mcaststats"
	"github.com/dep2p/go-mcaststats/internal/core/metrics"
	pkgif "github.com/dep2p/go-mcaststats/pkg/interfaces"
	"github.com/dep2p/go-mcaststats/pkg/lib/log"
)

var fxLogger = log.Logger("mcaststats/fx")

// buildFxApp 构建 Fx 应用
//
// 加载顺序：
//  1. 配置注入
//  2. 事件总线（宿主提供时跳过内置实现）
//  3. 统计管理器与轮询器
//  4. 指标（Metrics.Enabled 时）
//  5. 启动前监听器与用户自定义选项
func buildFxApp(cfg *config.Config, o *options, svc *Service) (*fx.App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	modules := []fx.Option{
		fx.Supply(cfg),
	}

	// ════════════════════════════════════════════════════════════════════════
	// 事件总线
	// ════════════════════════════════════════════════════════════════════════
	if o.eventBus != nil {
		bus := o.eventBus
		modules = append(modules, fx.Provide(func() pkgif.EventBus { return bus }))
	} else {
		modules = append(modules, eventbus.Module())
	}

	// ════════════════════════════════════════════════════════════════════════
	// 统计管理器
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules,
		statscore.Module(),
		fx.Populate(&svc.stats),
	)
	if o.routeSource != nil {
		src := o.routeSource
		modules = append(modules, fx.Provide(func() pkgif.RouteSource { return src }))
	}
	if o.clock != nil {
		c := o.clock
		modules = append(modules, fx.Provide(func() clock.Clock { return c }))
	}

	// ════════════════════════════════════════════════════════════════════════
	// 指标
	// ════════════════════════════════════════════════════════════════════════
	if cfg.Metrics.Enabled {
		modules = append(modules,
			metrics.Module(),
			fx.Populate(&svc.registry),
		)
		if o.registerer != nil {
			reg := o.registerer
			modules = append(modules, fx.Provide(func() prometheus.Registerer { return reg }))
		}
	}

	// ════════════════════════════════════════════════════════════════════════
	// 监听器与扩展
	// ════════════════════════════════════════════════════════════════════════
	if len(o.listeners) > 0 {
		listeners := o.listeners
		modules = append(modules, fx.Invoke(func(s pkgif.McastStatisticsService) error {
			for _, l := range listeners {
				if err := s.AddListener(l); err != nil {
					return err
				}
			}
			return nil
		}))
	}
	modules = append(modules, o.fxOptions...)

	modules = append(modules, fx.WithLogger(newFxEventLogger(o.fxDebug)))

	app := fx.New(modules...)
	if err := app.Err(); err != nil {
		return nil, fmt.Errorf("build fx app: %w", err)
	}
	return app, nil
}

// newFxEventLogger 返回 Fx 事件日志构造函数
//
// 默认丢弃 Fx 日志；debug 时使用 zap development logger。
func newFxEventLogger(debug bool) func() fxevent.Logger {
	return func() fxevent.Logger {
		if !debug {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}
		l, err := zap.NewDevelopment()
		if err != nil {
			fxLogger.Warn("创建 Fx 调试日志失败", "err", err)
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}
		return &fxevent.ZapLogger{Logger: l}
	}
}
