package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dep2p/go-mcaststats/internal/core/eventbus"
)

// BusStatsSource 提供事件总线 topic 计数
type BusStatsSource interface {
	Stats() []eventbus.TopicStats
}

// BusCollector 事件总线采集器
//
// topic 被回收后计数归零，Prometheus 将其视为计数器重置。
type BusCollector struct {
	src BusStatsSource

	emitted     *prometheus.Desc
	dropped     *prometheus.Desc
	subscribers *prometheus.Desc
}

var _ prometheus.Collector = (*BusCollector)(nil)

// NewBusCollector 创建事件总线采集器
func NewBusCollector(namespace string, src BusStatsSource) *BusCollector {
	label := []string{"type"}
	return &BusCollector{
		src: src,
		emitted: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "eventbus", "events_emitted_total"),
			"Events emitted on the in-process bus, by event type.",
			label, nil,
		),
		dropped: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "eventbus", "events_dropped_total"),
			"Events dropped because a non-blocking subscriber was full, by event type.",
			label, nil,
		),
		subscribers: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "eventbus", "subscribers"),
			"Current subscribers, by event type.",
			label, nil,
		),
	}
}

// Describe 实现 prometheus.Collector
func (c *BusCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.emitted
	ch <- c.dropped
	ch <- c.subscribers
}

// Collect 实现 prometheus.Collector
func (c *BusCollector) Collect(ch chan<- prometheus.Metric) {
	for _, st := range c.src.Stats() {
		ch <- prometheus.MustNewConstMetric(c.emitted, prometheus.CounterValue, float64(st.Emitted), st.Type)
		ch <- prometheus.MustNewConstMetric(c.dropped, prometheus.CounterValue, float64(st.Dropped), st.Type)
		ch <- prometheus.MustNewConstMetric(c.subscribers, prometheus.GaugeValue, float64(st.Subscribers), st.Type)
	}
}
