package mcaststats

import (
	"context"
	"fmt"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"
	"go.uber.org/multierr"

	"github.com/dep2p/go-mcaststats/config"
	pkgif "github.com/dep2p/go-mcaststats/pkg/interfaces"
)

// Module 返回 Fx 模块
//
// OnStart 激活管理器，OnStop 停用。配置启用轮询且存在路由来源时，
// 轮询器在管理器激活后启动、停用前停止。
func Module() fx.Option {
	return fx.Module("mcaststats",
		fx.Provide(
			ProvideManager,
			ProvideRouteSource,
			ProvidePoller,
		),
		fx.Invoke(registerLifecycle),
	)
}

// Params 管理器依赖参数
type Params struct {
	fx.In

	Bus        pkgif.EventBus
	UnifiedCfg *config.Config `optional:"true"`
}

// Result 管理器输出
type Result struct {
	fx.Out

	Manager *Manager
	Service pkgif.McastStatisticsService
}

// ProvideManager 提供统计管理器
func ProvideManager(p Params) Result {
	m := NewManager(p.Bus, ConfigFromUnified(p.UnifiedCfg))
	return Result{
		Manager: m,
		Service: m,
	}
}

// routeSourceInput 路由来源输入参数
type routeSourceInput struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// routeSourceResult 路由来源输出
//
// 使用命名值，宿主可通过 fx.Supply 未命名的 pkgif.RouteSource 覆盖静态配置。
type routeSourceResult struct {
	fx.Out

	Static *StaticRouteSource `name:"static_routes"`
}

// ProvideRouteSource 从配置的静态路由提供路由来源
func ProvideRouteSource(in routeSourceInput) (routeSourceResult, error) {
	if in.UnifiedCfg == nil || len(in.UnifiedCfg.Poller.Routes) == 0 {
		return routeSourceResult{}, nil
	}
	routes, err := in.UnifiedCfg.Poller.ParseRoutes()
	if err != nil {
		return routeSourceResult{}, fmt.Errorf("poller routes: %w", err)
	}
	return routeSourceResult{Static: NewStaticRouteSource(routes...)}, nil
}

// pollerInput 轮询器输入参数
type pollerInput struct {
	fx.In

	Manager    *Manager
	UnifiedCfg *config.Config     `optional:"true"`
	Source     pkgif.RouteSource  `optional:"true"`
	Static     *StaticRouteSource `name:"static_routes" optional:"true"`
	Clock      clock.Clock        `optional:"true"`
}

// ProvidePoller 提供轮询器
//
// 未启用轮询或没有路由来源时返回 nil。宿主提供的 RouteSource 优先于静态路由。
func ProvidePoller(in pollerInput) *Poller {
	if in.UnifiedCfg == nil || !in.UnifiedCfg.Poller.Enabled {
		return nil
	}

	var source pkgif.RouteSource
	switch {
	case in.Source != nil:
		source = in.Source
	case in.Static != nil:
		source = in.Static
	default:
		logger.Warn("已启用统计轮询但没有路由来源")
		return nil
	}

	var opts []PollerOption
	if in.Clock != nil {
		opts = append(opts, WithClock(in.Clock))
	}
	return NewPoller(in.Manager, source, PollerConfigFromUnified(in.UnifiedCfg), opts...)
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In

	LC      fx.Lifecycle
	Manager *Manager
	Poller  *Poller `optional:"true"`
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			if err := input.Manager.Activate(); err != nil {
				return err
			}
			if input.Poller == nil {
				return nil
			}
			if err := input.Poller.Start(); err != nil {
				// fx 不会调用启动失败的 hook 的 OnStop
				return multierr.Append(fmt.Errorf("start poller: %w", err), input.Manager.Deactivate())
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			if input.Poller != nil {
				_ = input.Poller.Stop()
			}
			return input.Manager.Deactivate()
		},
	})
}
