package eventbus

import (
	"reflect"
	"sync"
	"sync/atomic"

	pkgif "github.com/dep2p/go-mcaststats/pkg/interfaces"
)

// ============================================================================
//                              Subscription
// ============================================================================

// Subscription 事件订阅
type Subscription struct {
	bus      *Bus
	typ      reflect.Type
	name     string
	blocking bool

	out  chan interface{}
	done chan struct{}

	dropped   atomic.Uint64
	closeOnce sync.Once
}

func newSubscription(b *Bus, typ reflect.Type, s pkgif.SubscriptionSettings) *Subscription {
	buf := s.Buffer
	if buf < 0 {
		buf = 0
	}
	name := s.Name
	if name == "" {
		name = typ.String()
	}
	return &Subscription{
		bus:      b,
		typ:      typ,
		name:     name,
		blocking: s.Blocking,
		out:      make(chan interface{}, buf),
		done:     make(chan struct{}),
	}
}

// Out 返回事件通道；Close 后通道被关闭
func (s *Subscription) Out() <-chan interface{} {
	return s.out
}

// Dropped 返回本订阅因缓冲区满被丢弃的事件数
func (s *Subscription) Dropped() uint64 {
	return s.dropped.Load()
}

// Close 取消订阅，可重复调用
//
// 先唤醒阻塞在本订阅上的发射者，再从 topic 移除；移除后不会再有写入，
// 剩余事件在后台排空后关闭 out。
func (s *Subscription) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.bus.unsubscribe(s)

		go func() {
			for range s.out {
			}
		}()
		close(s.out)
	})
	return nil
}

// ============================================================================
//                              Emitter
// ============================================================================

// Emitter 事件发射器
type Emitter struct {
	bus       *Bus
	topic     *topic
	closed    atomic.Bool
	closeOnce sync.Once
}

// Emit 发布事件
//
// 存在阻塞订阅时会等待其消费，调用方不应持有订阅者回调可能竞争的锁。
func (e *Emitter) Emit(event interface{}) error {
	if e.closed.Load() {
		return ErrEmitterClosed
	}
	e.topic.publish(event)
	return nil
}

// Close 关闭发射器，可重复调用
func (e *Emitter) Close() error {
	e.closeOnce.Do(func() {
		e.closed.Store(true)
		if e.topic.emitters.Add(-1) == 0 {
			e.bus.release(e.topic)
		}
	})
	return nil
}
