// Package interfaces 定义 mcaststats 的公共接口
//
// 本包只包含接口与选项定义，实现位于 internal/core/*：
//   - mcaststats.go     - 组播统计服务、委托、监听器、路由来源
//   - eventbus.go       - 进程内事件总线（宿主提供的事件分发协作者）
//
// 依赖关系：
//   - 依赖：pkg/types
//   - 被依赖：internal/core/*, 根包
package interfaces
