package mcaststats

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-mcaststats/internal/core/lifecycle"
	pkgif "github.com/dep2p/go-mcaststats/pkg/interfaces"
	"github.com/dep2p/go-mcaststats/pkg/types"
)

// ============================================================================
//                              Poller
// ============================================================================

// Poller 周期性统计任务
//
// 管理器处于 Active 时，每个周期从路由来源读取 (route, vlan)，
// 写入统计，然后通过委托推送一次全量 StatsReport 事件。
// 管理器停用后暂停，重新激活后继续。
type Poller struct {
	manager *Manager
	source  pkgif.RouteSource
	cfg     PollerConfig
	clock   clock.Clock

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// PollerOption 轮询器选项
type PollerOption func(*Poller)

// WithClock 设置时钟（测试使用 clock.NewMock）
func WithClock(c clock.Clock) PollerOption {
	return func(p *Poller) {
		p.clock = c
	}
}

// NewPoller 创建轮询器
func NewPoller(manager *Manager, source pkgif.RouteSource, cfg PollerConfig, opts ...PollerOption) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultPollerConfig().Interval
	}
	p := &Poller{
		manager: manager,
		source:  source,
		cfg:     cfg,
		clock:   clock.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start 启动轮询协程
func (p *Poller) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return errors.New("poller already started")
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	p.wg.Add(1)
	go p.run(ctx)

	logger.Info("启动统计轮询", "interval", p.cfg.Interval, "clearBeforePoll", p.cfg.ClearBeforePoll)
	return nil
}

// Stop 停止轮询并等待协程退出
func (p *Poller) Stop() error {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	p.wg.Wait()

	logger.Info("停止统计轮询")
	return nil
}

// PollOnce 执行一轮轮询
func (p *Poller) PollOnce(ctx context.Context) error {
	routes, err := p.source.McastRoutes(ctx)
	if err != nil {
		return fmt.Errorf("read routes: %w", err)
	}

	if p.cfg.ClearBeforePoll {
		if err := p.manager.ClearMcastRouteMap(); err != nil {
			return err
		}
	}

	for _, rv := range routes {
		if err := p.manager.SetMcastStatistics(rv.Route, rv.VlanID); err != nil {
			if errors.Is(err, types.ErrNotActive) {
				return err
			}
			logger.Warn("跳过无效路由", "route", rv.Route.String(), "err", err)
		}
	}

	stats, err := p.manager.GetMcastStats()
	if err != nil {
		return err
	}
	delegate, err := p.manager.GetStatsDelegate()
	if err != nil {
		return err
	}
	delegate.Notify(types.NewStatsReportEvent(stats))

	logger.Debug("统计轮询完成", "routes", len(routes), "groups", len(stats))
	return nil
}

func (p *Poller) run(ctx context.Context) {
	defer p.wg.Done()

	lc := p.manager.Lifecycle()
	for {
		if err := lc.WaitFor(ctx, lifecycle.PhaseActive); err != nil {
			return
		}
		if !p.runActive(ctx, lc.Done()) {
			return
		}
	}
}

// runActive 在一个 Active 周期内轮询；ctx 取消时返回 false
func (p *Poller) runActive(ctx context.Context, inactive <-chan struct{}) bool {
	ticker := p.clock.Ticker(p.cfg.Interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return false
		case <-inactive:
			return true
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	start := p.clock.Now()
	if err := p.PollOnce(ctx); err != nil {
		if errors.Is(err, types.ErrNotActive) || errors.Is(err, context.Canceled) {
			logger.Debug("统计轮询中止", "err", err)
			return
		}
		logger.Warn("统计轮询失败", "err", err)
		return
	}
	if elapsed := p.clock.Since(start); elapsed > p.cfg.Interval {
		logger.Warn("统计轮询耗时超过周期", "elapsed", elapsed.Round(time.Millisecond), "interval", p.cfg.Interval)
	}
}
