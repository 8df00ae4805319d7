package mcaststats

import (
	"context"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-mcaststats/config"
	pkgif "github.com/dep2p/go-mcaststats/pkg/interfaces"
	"github.com/dep2p/go-mcaststats/pkg/lib/log"
)

var logger = log.Logger("mcaststats")

// Service 组播统计服务
//
// 由 New 创建，Start 后统计接口可用。Stop 后服务不可再次启动。
type Service struct {
	mu      sync.Mutex
	cfg     *config.Config
	app     *fx.App
	started bool
	closed  bool

	// 由 Fx 注入
	stats    pkgif.McastStatisticsService
	registry *prometheus.Registry

	// 宿主注册器同时实现 Gatherer 时优先返回
	gatherer prometheus.Gatherer
}

// New 创建统计服务
//
// cfg 为 nil 时使用默认配置；cfg 不会被修改。
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	o := &options{}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	merged, err := o.apply(cfg)
	if err != nil {
		return nil, err
	}

	s := &Service{cfg: merged}
	app, err := buildFxApp(merged, o, s)
	if err != nil {
		return nil, err
	}
	s.app = app
	if g, ok := o.registerer.(prometheus.Gatherer); ok && merged.Metrics.Enabled {
		s.gatherer = g
	}
	return s, nil
}

// Start 启动服务，激活统计管理器
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrServiceClosed
	}
	if s.started {
		return ErrAlreadyStarted
	}

	if err := s.app.Start(ctx); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	s.started = true

	logger.Info("组播统计服务已启动",
		"emitOnUpdate", s.cfg.Statistics.EmitOnUpdate,
		"poller", s.cfg.Poller.Enabled,
		"metrics", s.cfg.Metrics.Enabled)
	return nil
}

// Stop 停止服务，停用统计管理器
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	if !s.started {
		return ErrNotStarted
	}

	s.closed = true
	s.started = false
	if err := s.app.Stop(ctx); err != nil {
		return fmt.Errorf("stop: %w", err)
	}

	logger.Info("组播统计服务已停止")
	return nil
}

// IsRunning 服务是否处于运行状态
func (s *Service) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Statistics 返回统计服务接口
//
// 启动前与停止后调用其方法返回 types.ErrNotActive。
func (s *Service) Statistics() pkgif.McastStatisticsService {
	return s.stats
}

// Gatherer 返回指标采集入口；指标关闭时为 nil
func (s *Service) Gatherer() prometheus.Gatherer {
	if s.gatherer != nil {
		return s.gatherer
	}
	if s.registry == nil {
		return nil
	}
	return s.registry
}

// Config 返回生效配置的副本
func (s *Service) Config() *config.Config {
	return config.CloneConfig(s.cfg)
}
