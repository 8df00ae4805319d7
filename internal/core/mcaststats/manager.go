package mcaststats

import (
	"fmt"
	"log/slog"
	"net/netip"
	"sync"

	"go.uber.org/multierr"

	"github.com/dep2p/go-mcaststats/internal/core/lifecycle"
	pkgif "github.com/dep2p/go-mcaststats/pkg/interfaces"
	"github.com/dep2p/go-mcaststats/pkg/lib/log"
	"github.com/dep2p/go-mcaststats/pkg/types"
)

var logger = log.Logger("core/mcaststats")

// ============================================================================
//                              Manager
// ============================================================================

// Manager 组播统计管理器
//
// 独占统计存储及其中的记录；监听器只能收到副本。
// 生命周期：Inactive（激活前/停用后）与 Active 两个状态，
// 除 Activate 外的服务接口在 Inactive 时返回 types.ErrNotActive。
//
// 事件投递与存储锁解耦：post 总是在存储锁释放后调用。
type Manager struct {
	cfg Config
	bus pkgif.EventBus
	lc  *lifecycle.Coordinator

	// mu 保护以下随激活/停用创建与销毁的字段
	mu       sync.RWMutex
	store    *Store
	delegate *internalDelegate
	emitter  pkgif.Emitter
	sink     pkgif.Subscription
	stop     chan struct{}
	stopped  chan struct{}

	listeners *listenerRegistry
}

var _ pkgif.McastStatisticsService = (*Manager)(nil)

// NewManager 创建未激活的统计管理器
//
// bus 是宿主提供的事件分发协作者。
func NewManager(bus pkgif.EventBus, cfg Config) *Manager {
	return &Manager{
		cfg:       cfg,
		bus:       bus,
		lc:        lifecycle.NewCoordinator(),
		listeners: newListenerRegistry(),
	}
}

// Lifecycle 返回管理器的生命周期协调器
func (m *Manager) Lifecycle() *lifecycle.Coordinator {
	return m.lc
}

// ============================================================================
//                              生命周期
// ============================================================================

// Activate 激活管理器
//
// 创建空存储和委托，向事件总线注册 StatisticsEvent 的发射器与阻塞事件汇，
// 并启动向监听器分发事件的协程。
func (m *Manager) Activate() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lc.IsActive() {
		return types.ErrAlreadyActive
	}

	emitter, err := m.bus.Emitter(new(types.StatisticsEvent))
	if err != nil {
		return fmt.Errorf("register statistics emitter: %w", err)
	}
	sink, err := m.bus.Subscribe(new(types.StatisticsEvent),
		pkgif.BufSize(m.cfg.SinkBuffer),
		pkgif.Blocking(),
		pkgif.SubscriberName("mcaststats-sink"),
	)
	if err != nil {
		emitter.Close()
		return fmt.Errorf("register statistics sink: %w", err)
	}

	m.store = NewStore()
	m.delegate = &internalDelegate{manager: m}
	m.emitter = emitter
	m.sink = sink
	m.stop = make(chan struct{})
	m.stopped = make(chan struct{})

	queue := make(chan types.StatisticsEvent)
	pumped := make(chan struct{})
	go m.pump(sink, queue, m.stop, pumped)
	go m.dispatch(queue, m.stop, pumped, m.stopped)

	if err := m.lc.Transition(lifecycle.PhaseInactive, lifecycle.PhaseActive); err != nil {
		return err
	}

	logger.Info("激活组播统计管理器", "emitOnUpdate", m.cfg.EmitOnUpdate, "sinkBuffer", m.cfg.SinkBuffer)
	return nil
}

// Deactivate 停用管理器
//
// 注销事件汇并等待分发协程退出，返回后不会再向监听器投递事件；
// 尚在队列中的事件被丢弃。不得在监听器回调内调用。
func (m *Manager) Deactivate() error {
	m.mu.Lock()
	if !m.lc.IsActive() {
		m.mu.Unlock()
		return fmt.Errorf("Deactivate: %w", types.ErrNotActive)
	}

	emitter, sink, stop, stopped := m.emitter, m.sink, m.stop, m.stopped
	m.store = nil
	m.delegate = nil
	m.emitter = nil
	m.sink = nil
	m.stop = nil
	m.stopped = nil

	err := m.lc.Transition(lifecycle.PhaseActive, lifecycle.PhaseInactive)
	m.mu.Unlock()

	// 先关闭事件汇：唤醒阻塞在其上的发布者，之后发射器才能释放 topic
	err = multierr.Append(err, sink.Close())
	close(stop)
	err = multierr.Append(err, emitter.Close())
	<-stopped

	logger.Info("停用组播统计管理器")
	return err
}

// ============================================================================
//                              服务接口
// ============================================================================

// ClearMcastRouteMap 清空所有组播组统计
//
// 不发布事件。
func (m *Manager) ClearMcastRouteMap() error {
	store, err := m.activeStore("ClearMcastRouteMap")
	if err != nil {
		return err
	}
	store.Clear()
	logger.Debug("清空组播统计")
	return nil
}

// GetMcastStats 返回当前统计快照（深拷贝）
func (m *Manager) GetMcastStats() (map[netip.Addr]types.McastStatistics, error) {
	store, err := m.activeStore("GetMcastStats")
	if err != nil {
		return nil, err
	}
	return store.Snapshot(), nil
}

// GetMcastStatsFor 返回单个组播组的统计
func (m *Manager) GetMcastStatsFor(group netip.Addr) (types.McastStatistics, bool, error) {
	store, err := m.activeStore("GetMcastStatsFor")
	if err != nil {
		return types.McastStatistics{}, false, err
	}
	rec, ok := store.Get(group)
	return rec, ok, nil
}

// SetMcastStatistics 记录一次观测
//
// 将 (route.Group, route.Source, vlan) 写入存储。EmitOnUpdate 开启时，
// 在释放存储锁后发布恰好一次 StatsUpdated 事件，主题为更新后的记录副本。
// route.Group 为零值时返回 types.ErrInvalidGroup。
func (m *Manager) SetMcastStatistics(route types.McastRoute, vlan types.VlanID) error {
	store, err := m.activeStore("SetMcastStatistics")
	if err != nil {
		return err
	}
	if !route.Group.IsValid() {
		return fmt.Errorf("SetMcastStatistics: %w: %s", types.ErrInvalidGroup, route.Group)
	}

	rec, seq := store.RecordObservation(route.Group, route.Source, vlan)
	if logger.Enabled(slog.LevelDebug) {
		logger.Debug("记录组播统计", "route", route.String(), "vlan", vlan.String(), "sources", rec.Len(), "seq", seq)
	}

	if m.cfg.EmitOnUpdate {
		if err := m.post(types.NewStatsUpdatedEvent(rec, seq)); err != nil {
			// 存储已更新；并发停用时事件不再投递
			logger.Debug("统计更新事件未投递", "route", route.String(), "err", err)
		}
	}
	return nil
}

// GetStatsDelegate 返回统计委托
func (m *Manager) GetStatsDelegate() (pkgif.StatisticsDelegate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.delegate == nil {
		return nil, fmt.Errorf("GetStatsDelegate: %w", types.ErrNotActive)
	}
	return m.delegate, nil
}

// AddListener 注册统计事件监听器
//
// 监听器注册与生命周期无关；停用期间注册的监听器在激活后开始接收事件。
// 重复注册同一监听器无效果。
func (m *Manager) AddListener(listener pkgif.StatisticsListener) error {
	return m.listeners.add(listener)
}

// RemoveListener 注销统计事件监听器
func (m *Manager) RemoveListener(listener pkgif.StatisticsListener) {
	m.listeners.remove(listener)
}

// ============================================================================
//                              内部方法
// ============================================================================

// activeStore 返回当前存储，未激活时返回前置条件错误
func (m *Manager) activeStore(op string) (*Store, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.store == nil {
		return nil, fmt.Errorf("%s: %w", op, types.ErrNotActive)
	}
	return m.store, nil
}

// post 向事件总线发布事件
//
// 不持有管理器锁发射：阻塞事件汇可能等待监听器，
// 而监听器可能回调管理器的读接口。
func (m *Manager) post(event types.StatisticsEvent) error {
	m.mu.RLock()
	emitter := m.emitter
	m.mu.RUnlock()

	if emitter == nil {
		return types.ErrNotActive
	}
	return emitter.Emit(event)
}

// pump 把事件汇中的事件移入无界 FIFO，再交给 dispatch
//
// pump 从不执行监听器代码，事件汇因此始终有消费者：
// 监听器回调中调用 SetMcastStatistics 或 Notify 不会反压到自身。
func (m *Manager) pump(sink pkgif.Subscription, out chan<- types.StatisticsEvent, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	var pending []types.StatisticsEvent
	in := sink.Out()
	for {
		var (
			send chan<- types.StatisticsEvent
			head types.StatisticsEvent
		)
		if len(pending) > 0 {
			send, head = out, pending[0]
		} else if in == nil {
			return
		}

		select {
		case <-stop:
			return
		case evt, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			if event, ok := evt.(types.StatisticsEvent); ok {
				pending = append(pending, event)
			}
		case send <- head:
			pending[0] = types.StatisticsEvent{}
			pending = pending[1:]
		}
	}
}

// dispatch 按序把事件分发给监听器
func (m *Manager) dispatch(queue <-chan types.StatisticsEvent, stop, pumped <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)
	defer func() { <-pumped }()

	for {
		select {
		case <-stop:
			return
		case <-pumped:
			return
		case event := <-queue:
			select {
			case <-stop:
				return
			default:
			}
			m.listeners.process(event)
		}
	}
}
