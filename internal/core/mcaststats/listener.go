package mcaststats

import (
	"reflect"
	"sync"

	pkgif "github.com/dep2p/go-mcaststats/pkg/interfaces"
	"github.com/dep2p/go-mcaststats/pkg/types"
)

// listenerRegistry 监听器注册表
//
// 按注册顺序分发；单个监听器 panic 会被恢复并记录，不影响其他监听器。
type listenerRegistry struct {
	mu        sync.RWMutex
	listeners []pkgif.StatisticsListener
}

func newListenerRegistry() *listenerRegistry {
	return &listenerRegistry{}
}

func (r *listenerRegistry) add(listener pkgif.StatisticsListener) error {
	if listener == nil {
		return types.ErrNilListener
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range r.listeners {
		if sameListener(l, listener) {
			return nil
		}
	}
	r.listeners = append(r.listeners, listener)
	return nil
}

func (r *listenerRegistry) remove(listener pkgif.StatisticsListener) {
	if listener == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, l := range r.listeners {
		if sameListener(l, listener) {
			r.listeners = append(r.listeners[:i:i], r.listeners[i+1:]...)
			return
		}
	}
}

func (r *listenerRegistry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners)
}

// process 将事件按序投递给所有相关的监听器
func (r *listenerRegistry) process(event types.StatisticsEvent) {
	r.mu.RLock()
	listeners := make([]pkgif.StatisticsListener, len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.RUnlock()

	for _, l := range listeners {
		if f, ok := l.(pkgif.StatisticsEventFilter); ok && !safeRelevant(f, event) {
			continue
		}
		safeDeliver(l, event)
	}
}

func safeDeliver(l pkgif.StatisticsListener, event types.StatisticsEvent) {
	defer func() {
		if p := recover(); p != nil {
			logger.Error("监听器处理统计事件时 panic",
				"listener", reflect.TypeOf(l).String(),
				"event", event.ID,
				"panic", p)
		}
	}()
	l.Event(event)
}

func safeRelevant(f pkgif.StatisticsEventFilter, event types.StatisticsEvent) (relevant bool) {
	defer func() {
		if p := recover(); p != nil {
			logger.Error("监听器过滤统计事件时 panic",
				"listener", reflect.TypeOf(f).String(),
				"panic", p)
			relevant = false
		}
	}()
	return f.IsRelevant(event)
}

// sameListener 比较两个监听器；不可比较的动态类型视为不同
func sameListener(a, b pkgif.StatisticsListener) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
