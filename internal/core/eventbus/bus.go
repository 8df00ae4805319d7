package eventbus

import (
	"errors"
	"reflect"
	"sort"
	"sync"

	pkgif "github.com/dep2p/go-mcaststats/pkg/interfaces"
	"github.com/dep2p/go-mcaststats/pkg/lib/log"
)

var logger = log.Logger("core/eventbus")

var (
	// ErrInvalidEventType 事件类型为 nil
	ErrInvalidEventType = errors.New("invalid event type")
	// ErrNonPointerType 事件类型参数不是指针
	ErrNonPointerType = errors.New("event type must be a pointer, e.g. new(T)")
	// ErrEmitterClosed 发射器已关闭
	ErrEmitterClosed = errors.New("emitter is closed")
)

// defaultBuffer 默认订阅缓冲区大小
const defaultBuffer = 16

// ============================================================================
//                              Bus
// ============================================================================

// Bus 进程内事件总线
//
// 按事件的动态类型路由。没有订阅者和发射器的 topic 会被回收。
type Bus struct {
	mu     sync.RWMutex
	topics map[reflect.Type]*topic
}

var _ pkgif.EventBus = (*Bus)(nil)

// NewBus 创建事件总线
func NewBus() *Bus {
	return &Bus{
		topics: make(map[reflect.Type]*topic),
	}
}

// Subscribe 订阅 eventType 所指类型的事件
//
// eventType 需为指针，例如 new(types.StatisticsEvent)。
func (b *Bus) Subscribe(eventType interface{}, opts ...pkgif.SubscriptionOpt) (pkgif.Subscription, error) {
	typ, err := typeOf(eventType)
	if err != nil {
		return nil, err
	}

	settings := pkgif.SubscriptionSettings{Buffer: defaultBuffer}
	for _, opt := range opts {
		opt(&settings)
	}

	sub := newSubscription(b, typ, settings)

	t := b.lockTopic(typ)
	t.attach(sub)
	t.mu.Unlock()

	logger.Debug("新增订阅", "type", typ.String(), "subscriber", sub.name, "blocking", sub.blocking)
	return sub, nil
}

// Emitter 获取 eventType 所指类型的发射器
func (b *Bus) Emitter(eventType interface{}, opts ...pkgif.EmitterOpt) (pkgif.Emitter, error) {
	typ, err := typeOf(eventType)
	if err != nil {
		return nil, err
	}

	var settings pkgif.EmitterSettings
	for _, opt := range opts {
		opt(&settings)
	}

	t := b.lockTopic(typ)
	t.emitters.Add(1)
	if settings.Stateful {
		t.stateful = true
	}
	t.mu.Unlock()

	return &Emitter{bus: b, topic: t}, nil
}

// GetAllEventTypes 返回当前存在 topic 的事件类型零值
func (b *Bus) GetAllEventTypes() []interface{} {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]interface{}, 0, len(b.topics))
	for typ := range b.topics {
		out = append(out, reflect.Zero(typ).Interface())
	}
	return out
}

// ============================================================================
//                              统计
// ============================================================================

// TopicStats 单个事件类型的计数
//
// topic 被回收后计数随之清零。
type TopicStats struct {
	Type        string
	Subscribers int
	Emitters    int
	Emitted     uint64
	Dropped     uint64
}

// Stats 返回所有事件类型的计数，按类型名排序
func (b *Bus) Stats() []TopicStats {
	b.mu.RLock()
	topics := make([]*topic, 0, len(b.topics))
	for _, t := range b.topics {
		topics = append(topics, t)
	}
	b.mu.RUnlock()

	out := make([]TopicStats, 0, len(topics))
	for _, t := range topics {
		out = append(out, t.stats())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// StatsFor 返回指定事件类型的计数
func (b *Bus) StatsFor(eventType interface{}) (TopicStats, bool) {
	typ, err := typeOf(eventType)
	if err != nil {
		return TopicStats{}, false
	}

	b.mu.RLock()
	t, ok := b.topics[typ]
	b.mu.RUnlock()
	if !ok {
		return TopicStats{}, false
	}
	return t.stats(), true
}

// ============================================================================
//                              内部方法
// ============================================================================

func typeOf(eventType interface{}) (reflect.Type, error) {
	if eventType == nil {
		return nil, ErrInvalidEventType
	}
	typ := reflect.TypeOf(eventType)
	if typ.Kind() != reflect.Ptr {
		return nil, ErrNonPointerType
	}
	return typ.Elem(), nil
}

// lockTopic 获取（必要时创建）topic 并返回时持有其 mu
//
// 在释放 b.mu 前锁住 topic，保证 topic 不会在使用前被回收。
func (b *Bus) lockTopic(typ reflect.Type) *topic {
	b.mu.Lock()
	t, ok := b.topics[typ]
	if !ok {
		t = newTopic(typ)
		b.topics[typ] = t
	}
	t.mu.Lock()
	b.mu.Unlock()
	return t
}

// release 回收空闲的 topic
func (b *Bus) release(t *topic) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.topics[t.typ] != t {
		return
	}
	t.mu.Lock()
	idle := t.idleLocked()
	t.mu.Unlock()

	if idle {
		delete(b.topics, t.typ)
	}
}

// unsubscribe 从 topic 移除订阅
func (b *Bus) unsubscribe(sub *Subscription) {
	b.mu.RLock()
	t, ok := b.topics[sub.typ]
	b.mu.RUnlock()
	if !ok {
		return
	}

	if t.detach(sub) {
		b.release(t)
	}
}
