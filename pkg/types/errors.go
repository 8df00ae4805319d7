// Package types 定义 mcaststats 的基础类型
//
// 本文件定义所有公共错误类型。
package types

import "errors"

// ============================================================================
//                              生命周期错误
// ============================================================================

var (
	// ErrNotActive 管理器未激活
	//
	// 在 Activate 之前或 Deactivate 之后调用服务接口时返回。
	// 属于前置条件违反，调用方不应静默忽略。
	ErrNotActive = errors.New("statistics manager not active")

	// ErrAlreadyActive 管理器已激活
	ErrAlreadyActive = errors.New("statistics manager already active")
)

// ============================================================================
//                              路由相关错误
// ============================================================================

var (
	// ErrInvalidGroup 无效的组播组地址
	ErrInvalidGroup = errors.New("invalid multicast group address")

	// ErrInvalidSource 无效的源地址
	ErrInvalidSource = errors.New("invalid multicast source address")

	// ErrInvalidVlan 无效的 VLAN ID
	ErrInvalidVlan = errors.New("invalid vlan id")
)

// ============================================================================
//                              监听器相关错误
// ============================================================================

var (
	// ErrNilListener 监听器为空
	ErrNilListener = errors.New("nil statistics listener")
)
