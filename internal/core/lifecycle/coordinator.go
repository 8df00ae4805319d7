// Package lifecycle 提供组件生命周期协调器
//
// 统计管理器只有两个状态：
//   - Inactive：激活前或停用后，存储未初始化、委托未设置
//   - Active：存储已初始化、委托已构造、事件汇已注册
//
// Inactive → Active 发生在激活时，Active → Inactive 发生在停用时。
// 没有终止状态，停用后可再次激活。
//
// 本模块的核心职责：
//  1. 追踪当前阶段，拒绝非法转换
//  2. 提供 Active gate（WaitFor），供后台任务等待激活
//  3. 通知阶段变更
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dep2p/go-mcaststats/pkg/lib/log"
)

var logger = log.Logger("core/lifecycle")

// ErrInvalidTransition 非法的阶段转换
var ErrInvalidTransition = errors.New("invalid lifecycle transition")

// ============================================================================
//                              阶段定义
// ============================================================================

// Phase 生命周期阶段
type Phase int

const (
	// PhaseInactive 未激活
	PhaseInactive Phase = iota

	// PhaseActive 已激活
	PhaseActive
)

// String 返回阶段字符串表示
func (p Phase) String() string {
	switch p {
	case PhaseInactive:
		return "inactive"
	case PhaseActive:
		return "active"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

func (p Phase) valid() bool {
	return p == PhaseInactive || p == PhaseActive
}

// ============================================================================
//                              生命周期协调器
// ============================================================================

// Coordinator 生命周期协调器
type Coordinator struct {
	mu sync.RWMutex

	// 当前阶段
	phase Phase

	// 阶段信号：当前阶段对应的 channel 已关闭，其余未关闭
	// 每次转换时为离开的阶段重建新 channel
	signals map[Phase]chan struct{}

	// 阶段变更回调
	onPhaseChange []func(old, new Phase)
}

// NewCoordinator 创建处于 Inactive 阶段的协调器
func NewCoordinator() *Coordinator {
	c := &Coordinator{
		phase: PhaseInactive,
		signals: map[Phase]chan struct{}{
			PhaseInactive: make(chan struct{}),
			PhaseActive:   make(chan struct{}),
		},
	}
	close(c.signals[PhaseInactive])
	return c
}

// Phase 返回当前阶段
func (c *Coordinator) Phase() Phase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.phase
}

// IsActive 检查是否处于 Active 阶段
func (c *Coordinator) IsActive() bool {
	return c.Phase() == PhaseActive
}

// Transition 从 from 转换到 to
//
// 当前阶段不是 from 时返回 ErrInvalidTransition，阶段保持不变。
// 回调在释放锁后按注册顺序同步调用。
func (c *Coordinator) Transition(from, to Phase) error {
	if !to.valid() || !from.valid() || from == to {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	c.mu.Lock()
	if c.phase != from {
		current := c.phase
		c.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s (current %s)", ErrInvalidTransition, from, to, current)
	}

	c.signals[from] = make(chan struct{})
	close(c.signals[to])
	c.phase = to

	callbacks := make([]func(old, new Phase), len(c.onPhaseChange))
	copy(callbacks, c.onPhaseChange)
	c.mu.Unlock()

	logger.Debug("生命周期阶段变更", "from", from.String(), "to", to.String())

	for _, cb := range callbacks {
		cb(from, to)
	}
	return nil
}

// WaitFor 等待进入指定阶段
//
// 已处于该阶段时立即返回；否则阻塞直到进入或上下文取消。
func (c *Coordinator) WaitFor(ctx context.Context, phase Phase) error {
	if !phase.valid() {
		return fmt.Errorf("invalid phase: %d", int(phase))
	}

	c.mu.RLock()
	ch := c.signals[phase]
	c.mu.RUnlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done 返回在离开当前 Active 阶段前保持打开的 channel
//
// 未激活时返回已关闭的 channel。
func (c *Coordinator) Done() <-chan struct{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.phase != PhaseActive {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return c.signals[PhaseInactive]
}

// OnPhaseChange 注册阶段变更回调
func (c *Coordinator) OnPhaseChange(cb func(old, new Phase)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onPhaseChange = append(c.onPhaseChange, cb)
}
