package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	pkgif "github.com/dep2p/go-mcaststats/pkg/interfaces"
	"github.com/dep2p/go-mcaststats/pkg/types"
)

// EventCounter 按类型统计事件数的监听器
type EventCounter struct {
	events *prometheus.CounterVec
}

var (
	_ prometheus.Collector     = (*EventCounter)(nil)
	_ pkgif.StatisticsListener = (*EventCounter)(nil)
)

// NewEventCounter 创建事件计数器
func NewEventCounter(namespace string) *EventCounter {
	c := &EventCounter{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stats",
			Name:      "events_total",
			Help:      "Statistics events delivered to listeners, by type.",
		}, []string{"type"}),
	}
	// 预先创建标签，未收到事件时也导出 0
	for _, t := range []types.StatisticsEventType{types.StatsUpdated, types.StatsReport} {
		c.events.WithLabelValues(t.String())
	}
	return c
}

// Event 实现 StatisticsListener
func (c *EventCounter) Event(event types.StatisticsEvent) {
	c.events.WithLabelValues(event.Type.String()).Inc()
}

// Describe 实现 prometheus.Collector
func (c *EventCounter) Describe(ch chan<- *prometheus.Desc) {
	c.events.Describe(ch)
}

// Collect 实现 prometheus.Collector
func (c *EventCounter) Collect(ch chan<- prometheus.Metric) {
	c.events.Collect(ch)
}
