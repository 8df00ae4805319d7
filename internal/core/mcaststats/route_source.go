package mcaststats

import (
	"context"
	"sync"

	pkgif "github.com/dep2p/go-mcaststats/pkg/interfaces"
	"github.com/dep2p/go-mcaststats/pkg/types"
)

// StaticRouteSource 固定路由来源
//
// 用于命令行与配置文件中的静态路由，可在运行时整体替换。
type StaticRouteSource struct {
	mu     sync.RWMutex
	routes []types.McastRouteVlan
}

var _ pkgif.RouteSource = (*StaticRouteSource)(nil)

// NewStaticRouteSource 创建静态路由来源
func NewStaticRouteSource(routes ...types.McastRouteVlan) *StaticRouteSource {
	s := &StaticRouteSource{}
	s.Set(routes)
	return s
}

// Set 替换路由列表
func (s *StaticRouteSource) Set(routes []types.McastRouteVlan) {
	cp := make([]types.McastRouteVlan, len(routes))
	copy(cp, routes)

	s.mu.Lock()
	s.routes = cp
	s.mu.Unlock()
}

// McastRoutes 返回路由列表副本
func (s *StaticRouteSource) McastRoutes(ctx context.Context) ([]types.McastRouteVlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	cp := make([]types.McastRouteVlan, len(s.routes))
	copy(cp, s.routes)
	return cp, nil
}
