package mcaststats

import (
	"errors"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-mcaststats/config"
	pkgif "github.com/dep2p/go-mcaststats/pkg/interfaces"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	// 预设名称（default / minimal）
	preset string

	// 宿主提供的事件总线，为空时使用内置实现
	eventBus pkgif.EventBus

	// 宿主提供的路由来源
	routeSource pkgif.RouteSource

	// 启动前注册的监听器
	listeners []pkgif.StatisticsListener

	// 指标注册器，为空时使用独立 Registry
	registerer prometheus.Registerer

	// 轮询时钟
	clock clock.Clock

	// 输出 Fx 内部日志
	fxDebug bool

	// 用户自定义 Fx 选项
	fxOptions []fx.Option
}

// apply 应用选项到配置副本
func (o *options) apply(cfg *config.Config) (*config.Config, error) {
	out := config.CloneConfig(cfg)
	if out == nil {
		out = config.NewConfig()
	}
	if o.preset != "" {
		if err := config.ApplyPreset(out, o.preset); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// WithPreset 应用预设配置
func WithPreset(name string) Option {
	return func(o *options) error {
		o.preset = name
		return nil
	}
}

// WithEventBus 使用宿主的事件总线
func WithEventBus(bus pkgif.EventBus) Option {
	return func(o *options) error {
		if bus == nil {
			return errors.New("event bus is nil")
		}
		o.eventBus = bus
		return nil
	}
}

// WithRouteSource 设置轮询器的路由来源
//
// 优先于配置中的静态路由。
func WithRouteSource(src pkgif.RouteSource) Option {
	return func(o *options) error {
		if src == nil {
			return errors.New("route source is nil")
		}
		o.routeSource = src
		return nil
	}
}

// WithListener 在服务启动前注册监听器
func WithListener(l pkgif.StatisticsListener) Option {
	return func(o *options) error {
		if l == nil {
			return errors.New("listener is nil")
		}
		o.listeners = append(o.listeners, l)
		return nil
	}
}

// WithRegisterer 在指定的注册器上注册指标
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) error {
		o.registerer = reg
		return nil
	}
}

// WithClock 设置轮询时钟
func WithClock(c clock.Clock) Option {
	return func(o *options) error {
		o.clock = c
		return nil
	}
}

// WithFxDebug 输出 Fx 依赖注入日志
func WithFxDebug(enable bool) Option {
	return func(o *options) error {
		o.fxDebug = enable
		return nil
	}
}

// WithFxOptions 追加自定义 Fx 选项
func WithFxOptions(opts ...fx.Option) Option {
	return func(o *options) error {
		o.fxOptions = append(o.fxOptions, opts...)
		return nil
	}
}
