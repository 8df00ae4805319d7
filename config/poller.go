package config

import (
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/dep2p/go-mcaststats/pkg/types"
)

// PollerConfig 周期性路由轮询配置
//
// 轮询器周期性读取路由来源，写入统计，并通过委托推送全量报告。
type PollerConfig struct {
	// Enabled 是否启用轮询
	// 默认值: false
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Interval 轮询周期
	// 默认值: 10s
	Interval Duration `json:"interval" yaml:"interval"`

	// ClearBeforePoll 每轮轮询前清空统计
	//
	// 开启后统计只反映最近一轮的路由，已消失的组会被移除。
	// 默认值: false
	ClearBeforePoll bool `json:"clear_before_poll" yaml:"clear_before_poll"`

	// Routes 静态路由列表
	//
	// 未由宿主提供路由来源时使用。
	Routes []StaticRoute `json:"routes" yaml:"routes"`
}

// StaticRoute 静态组播路由配置
type StaticRoute struct {
	// Group 组播组地址
	Group string `json:"group" yaml:"group"`

	// Source 源地址，留空表示任意源
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// Vlan VLAN ID，支持数字、"none"、"any"
	Vlan string `json:"vlan,omitempty" yaml:"vlan,omitempty"`
}

// DefaultPollerConfig 返回默认的轮询配置
func DefaultPollerConfig() PollerConfig {
	return PollerConfig{
		Enabled:  false,
		Interval: Duration(10 * time.Second),
	}
}

// Validate 验证轮询配置
func (c *PollerConfig) Validate() error {
	if c.Enabled && c.Interval.Duration() <= 0 {
		return fmt.Errorf("poller: interval must be positive, got %s", c.Interval)
	}
	for i, r := range c.Routes {
		if _, err := r.Parse(); err != nil {
			return fmt.Errorf("poller: routes[%d]: %w", i, err)
		}
	}
	return nil
}

// ParseRoutes 解析全部静态路由
func (c *PollerConfig) ParseRoutes() ([]types.McastRouteVlan, error) {
	routes := make([]types.McastRouteVlan, 0, len(c.Routes))
	for i, r := range c.Routes {
		rv, err := r.Parse()
		if err != nil {
			return nil, fmt.Errorf("routes[%d]: %w", i, err)
		}
		routes = append(routes, rv)
	}
	return routes, nil
}

// Parse 解析为带 VLAN 的组播路由
func (r StaticRoute) Parse() (types.McastRouteVlan, error) {
	group, err := netip.ParseAddr(strings.TrimSpace(r.Group))
	if err != nil {
		return types.McastRouteVlan{}, fmt.Errorf("%w: %q", types.ErrInvalidGroup, r.Group)
	}

	source := types.AnySource
	if s := strings.TrimSpace(r.Source); s != "" && s != "*" {
		source, err = netip.ParseAddr(s)
		if err != nil {
			return types.McastRouteVlan{}, fmt.Errorf("%w: %q", types.ErrInvalidSource, r.Source)
		}
	}

	route, err := types.NewMcastRoute(group, source, types.RouteTypeStatic)
	if err != nil {
		return types.McastRouteVlan{}, err
	}

	vlan, err := types.ParseVlanID(r.Vlan)
	if err != nil {
		return types.McastRouteVlan{}, err
	}

	return types.McastRouteVlan{Route: route, VlanID: vlan}, nil
}

// ParseStaticRoutes 解析命令行路由描述
//
// 格式: group[,source]@vlan;group[,source]@vlan
// 示例: 239.1.1.1,10.0.0.1@100;239.1.1.2@none
func ParseStaticRoutes(list string) ([]StaticRoute, error) {
	var routes []StaticRoute
	for _, item := range strings.Split(list, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		addrs, vlan, _ := strings.Cut(item, "@")
		group, source, _ := strings.Cut(addrs, ",")
		r := StaticRoute{
			Group:  strings.TrimSpace(group),
			Source: strings.TrimSpace(source),
			Vlan:   strings.TrimSpace(vlan),
		}
		if _, err := r.Parse(); err != nil {
			return nil, fmt.Errorf("route %q: %w", item, err)
		}
		routes = append(routes, r)
	}
	return routes, nil
}
