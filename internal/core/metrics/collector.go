package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	pkgif "github.com/dep2p/go-mcaststats/pkg/interfaces"
)

// StatsCollector 组播统计采集器
//
// 抓取时调用 GetMcastStats 获取快照；服务未激活时只导出组数量 0。
type StatsCollector struct {
	svc pkgif.McastStatisticsService

	groups  *prometheus.Desc
	sources *prometheus.Desc
	vlan    *prometheus.Desc
}

var _ prometheus.Collector = (*StatsCollector)(nil)

// NewStatsCollector 创建统计采集器
func NewStatsCollector(namespace string, svc pkgif.McastStatisticsService) *StatsCollector {
	return &StatsCollector{
		svc: svc,
		groups: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "groups"),
			"Number of multicast groups with statistics.",
			nil, nil,
		),
		sources: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "group", "sources"),
			"Number of distinct sources observed for a multicast group.",
			[]string{"group"}, nil,
		),
		vlan: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "group", "vlan"),
			"Most recently observed 802.1Q VLAN for a multicast group; absent when untagged or wildcard.",
			[]string{"group"}, nil,
		),
	}
}

// Describe 实现 prometheus.Collector
func (c *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.groups
	ch <- c.sources
	ch <- c.vlan
}

// Collect 实现 prometheus.Collector
func (c *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	stats, err := c.svc.GetMcastStats()
	if err != nil {
		logger.Debug("统计服务不可用，跳过组指标", "err", err)
		ch <- prometheus.MustNewConstMetric(c.groups, prometheus.GaugeValue, 0)
		return
	}

	ch <- prometheus.MustNewConstMetric(c.groups, prometheus.GaugeValue, float64(len(stats)))
	for group, rec := range stats {
		g := group.String()
		ch <- prometheus.MustNewConstMetric(c.sources, prometheus.GaugeValue, float64(rec.Len()), g)
		if rec.VlanID.IsTagged() {
			ch <- prometheus.MustNewConstMetric(c.vlan, prometheus.GaugeValue, float64(rec.VlanID), g)
		}
	}
}
