// Package types 定义 mcaststats 的公共数据结构
//
// 这是整个系统的最底层包，不依赖任何其他 mcaststats 内部包。
// 所有类型都是纯值类型，用于在各模块间传递数据。
//
// # 文件组织
//
// 基础类型:
//   - vlan.go       - VlanID 及保留值
//   - route.go      - McastRoute, McastRouteType, McastRouteVlan
//   - errors.go     - 公共错误定义
//
// 统计类型:
//   - stats.go      - McastStatistics（组播组统计记录）
//
// 事件类型:
//   - events.go     - StatisticsEvent, StatisticsEventType
//
// # 地址表示
//
// 组播组和源地址统一使用 net/netip.Addr。
// 源地址的零值（AnySource）表示"任意源"（ASM，*,G），
// 与 ONOS 中的 Optional.empty() 语义一致。
//
// # 值语义
//
// McastStatistics 内含 map，跨越模块边界时必须使用 Clone() 复制，
// 事件构造函数和快照接口都会返回副本。
package types
