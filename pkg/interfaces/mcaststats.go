// Package interfaces 定义 mcaststats 公共接口
//
// 本文件定义组播统计服务接口。
package interfaces

import (
	"context"
	"net/netip"

	"github.com/dep2p/go-mcaststats/pkg/types"
)

// McastStatisticsService 组播统计服务
//
// 所有方法在管理器未激活时返回 types.ErrNotActive。
type McastStatisticsService interface {
	// ClearMcastRouteMap 清空所有组播组统计
	//
	// 不发布任何事件。
	ClearMcastRouteMap() error

	// GetMcastStats 返回当前统计的快照
	//
	// 返回值为深拷贝，调用方修改不会影响服务内部状态。
	GetMcastStats() (map[netip.Addr]types.McastStatistics, error)

	// SetMcastStatistics 记录一次 (group, source, vlan) 观测
	SetMcastStatistics(route types.McastRoute, vlan types.VlanID) error

	// GetStatsDelegate 返回统计委托
	//
	// 外部生产者（如协议事件处理器）通过委托推送已构造好的事件。
	GetStatsDelegate() (StatisticsDelegate, error)

	// AddListener 注册统计事件监听器
	AddListener(listener StatisticsListener) error

	// RemoveListener 注销统计事件监听器
	RemoveListener(listener StatisticsListener)
}

// StatisticsDelegate 统计事件委托
type StatisticsDelegate interface {
	// Notify 转发统计事件
	//
	// 实现不得失败；下游投递错误由事件总线负责。
	Notify(event types.StatisticsEvent)
}

// StatisticsListener 统计事件监听器
type StatisticsListener interface {
	// Event 处理统计事件
	Event(event types.StatisticsEvent)
}

// StatisticsEventFilter 可选的事件过滤接口
//
// 监听器实现此接口时，只有 IsRelevant 返回 true 的事件才会投递。
type StatisticsEventFilter interface {
	IsRelevant(event types.StatisticsEvent) bool
}

// StatisticsListenerFunc 函数适配器
//
// 注意：函数值不可比较，使用 RemoveListener 注销时应保存返回的指针：
//
//	l := interfaces.StatisticsListenerFunc(fn)
//	svc.AddListener(&l)
//	defer svc.RemoveListener(&l)
type StatisticsListenerFunc func(event types.StatisticsEvent)

// Event 调用 f(event)
func (f *StatisticsListenerFunc) Event(event types.StatisticsEvent) {
	(*f)(event)
}

// RouteSource 组播路由来源
//
// 由宿主的组播路由服务实现，轮询器周期性读取。
type RouteSource interface {
	McastRoutes(ctx context.Context) ([]types.McastRouteVlan, error)
}
