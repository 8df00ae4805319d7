// Package mcaststats 实现组播统计管理器
//
// 管理器维护 组播组 -> (VLAN, 源集合) 的统计表，
// 并通过事件总线向注册的监听器发布统计事件。
//
// # 组件
//
//   - Store: 单锁保护的统计表，所有读取返回深拷贝
//   - Manager: Inactive/Active 生命周期，实现 interfaces.McastStatisticsService
//   - internalDelegate: 外部生产者推送已构造事件的入口
//   - Poller: 周期性读取路由来源并推送全量报告
//
// # 事件
//
// SetMcastStatistics 在更新后发布一次 StatsUpdated 事件（可通过
// StatisticsConfig.EmitOnUpdate 关闭）；委托转发的事件原样发布。
// ClearMcastRouteMap 不发布事件。
//
// 监听器在单一分发协程中按注册顺序调用。监听器回调内不得调用 Deactivate，
// 也不应同步调用 SetMcastStatistics：事件汇缓冲区满时会与分发协程互相等待。
//
// # Fx 使用
//
//	app := fx.New(
//	    eventbus.Module(),
//	    mcaststats.Module(),
//	)
package mcaststats
