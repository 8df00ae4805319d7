// Package metrics 提供组播统计的 Prometheus 指标
//
// 采集器：
//   - StatsCollector: 每次抓取时读取统计快照，导出组数量、每组源数量与 VLAN
//   - EventCounter: 作为统计监听器按事件类型计数
//   - BusCollector: 内置事件总线的 topic 计数（宿主自带总线时不注册）
//
// 指标（以默认命名空间 mcast 为例）：
//
//	mcast_groups                      当前组播组数量
//	mcast_group_sources{group}        组内源数量（任意源计为一个）
//	mcast_group_vlan{group}           最近观测的 VLAN（未打标签或通配时不导出）
//	mcast_stats_events_total{type}    已投递的统计事件数
//	mcast_eventbus_events_emitted_total{type}
//	mcast_eventbus_events_dropped_total{type}
//	mcast_eventbus_subscribers{type}
//
// # Fx 模块
//
//	app := fx.New(
//	    eventbus.Module(),
//	    mcaststats.Module(),
//	    metrics.Module(),
//	)
//
// 宿主未提供 prometheus.Registerer 时，模块使用独立的 *prometheus.Registry，
// 可通过 fx.Populate 取出后交给 promhttp.HandlerFor。
package metrics
