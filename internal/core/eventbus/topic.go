package eventbus

import (
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// dropWarnEvery 慢消费者警告的最小间隔
const dropWarnEvery = 5 * time.Second

// topic 单个事件类型的订阅者与发射器
//
// mu 在整个 publish 过程中持有，同一类型的事件按 Emit 顺序到达每个订阅者。
type topic struct {
	typ reflect.Type

	mu       sync.Mutex
	sinks    []*Subscription
	stateful bool
	last     interface{}
	hasLast  bool

	subscribers atomic.Int32
	emitters    atomic.Int32
	emitted     atomic.Uint64
	dropped     atomic.Uint64

	dropWarn *rate.Limiter
}

func newTopic(typ reflect.Type) *topic {
	return &topic{
		typ:      typ,
		dropWarn: rate.NewLimiter(rate.Every(dropWarnEvery), 1),
	}
}

// attach 加入订阅者；有状态 topic 向其回放最后一个事件。调用方持有 mu
func (t *topic) attach(sub *Subscription) {
	t.sinks = append(t.sinks, sub)
	t.subscribers.Store(int32(len(t.sinks)))
	if !t.stateful || !t.hasLast {
		return
	}
	select {
	case sub.out <- t.last:
	default:
	}
}

// detach 移除订阅者，返回 topic 是否已空闲
func (t *topic) detach(sub *Subscription) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, s := range t.sinks {
		if s == sub {
			t.sinks = append(t.sinks[:i:i], t.sinks[i+1:]...)
			t.subscribers.Store(int32(len(t.sinks)))
			break
		}
	}
	return t.idleLocked()
}

func (t *topic) idleLocked() bool {
	return len(t.sinks) == 0 && t.emitters.Load() == 0
}

// publish 投递事件
//
// 阻塞订阅等待消费或订阅关闭；非阻塞订阅缓冲区满时丢弃。
func (t *topic) publish(event interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.emitted.Add(1)
	if t.stateful {
		t.last, t.hasLast = event, true
	}

	for _, sub := range t.sinks {
		if sub.blocking {
			select {
			case sub.out <- event:
			case <-sub.done:
			}
			continue
		}

		select {
		case sub.out <- event:
		default:
			sub.dropped.Add(1)
			total := t.dropped.Add(1)
			if t.dropWarn.Allow() {
				logger.Warn("订阅者缓冲区已满，丢弃事件",
					"type", t.typ.String(),
					"subscriber", sub.name,
					"dropped", total)
			}
		}
	}
}

// stats 返回 topic 的计数快照，不获取 mu，阻塞投递期间也可读取
func (t *topic) stats() TopicStats {
	return TopicStats{
		Type:        t.typ.String(),
		Subscribers: int(t.subscribers.Load()),
		Emitters:    int(t.emitters.Load()),
		Emitted:     t.emitted.Load(),
		Dropped:     t.dropped.Load(),
	}
}
