package types

import (
	"fmt"
	"net/netip"
)

// AnySource 任意源
//
// netip.Addr 的零值，表示 (*, G) 路由，即未指定源地址。
var AnySource = netip.Addr{}

// ============================================================================
//                              McastRouteType - 路由来源
// ============================================================================

// McastRouteType 组播路由来源类型
type McastRouteType int

const (
	// RouteTypeStatic 静态配置
	RouteTypeStatic McastRouteType = iota
	// RouteTypeIGMP IGMP 学习
	RouteTypeIGMP
	// RouteTypePIM PIM 学习
	RouteTypePIM
)

// String 返回路由类型字符串表示
func (t McastRouteType) String() string {
	switch t {
	case RouteTypeStatic:
		return "static"
	case RouteTypeIGMP:
		return "igmp"
	case RouteTypePIM:
		return "pim"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// ============================================================================
//                              McastRoute - 组播路由
// ============================================================================

// McastRoute 组播路由
//
// 由组播组地址和可选的源地址组成。
// Source 为 AnySource 时表示任意源组播（ASM）。
type McastRoute struct {
	// Group 组播组地址
	Group netip.Addr

	// Source 源地址，AnySource 表示任意源
	Source netip.Addr

	// Type 路由来源
	Type McastRouteType
}

// NewMcastRoute 创建组播路由
//
// group 必须是组播地址；source 若指定，必须是单播地址，
// 且与 group 属于同一地址族。
func NewMcastRoute(group, source netip.Addr, typ McastRouteType) (McastRoute, error) {
	if !group.IsValid() || !group.IsMulticast() {
		return McastRoute{}, fmt.Errorf("%w: %s", ErrInvalidGroup, group)
	}
	if source.IsValid() {
		if source.IsMulticast() || source.IsUnspecified() {
			return McastRoute{}, fmt.Errorf("%w: %s", ErrInvalidSource, source)
		}
		if source.Is4() != group.Is4() {
			return McastRoute{}, fmt.Errorf("%w: %s (address family differs from group %s)",
				ErrInvalidSource, source, group)
		}
	}
	return McastRoute{Group: group, Source: source, Type: typ}, nil
}

// IsAnySource 检查是否为任意源路由
func (r McastRoute) IsAnySource() bool {
	return !r.Source.IsValid()
}

// String 返回 (S, G) 表示
func (r McastRoute) String() string {
	src := "*"
	if r.Source.IsValid() {
		src = r.Source.String()
	}
	return fmt.Sprintf("(%s, %s)/%s", src, r.Group, r.Type)
}

// McastRouteVlan 路由及其所在 VLAN
//
// 外部路由源一次性报告路由和 VLAN，供轮询器写入统计。
type McastRouteVlan struct {
	Route  McastRoute
	VlanID VlanID
}
