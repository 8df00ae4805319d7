package types

import (
	"fmt"
	"strconv"
	"strings"
)

// ============================================================================
//                              VlanID - VLAN 标识
// ============================================================================

// VlanID 802.1Q VLAN 标识
//
// 有效范围 0-4095，另外保留两个特殊值：
//   - VlanNone: 未打标签（untagged）
//   - VlanAny:  通配
type VlanID uint16

const (
	// VlanMax 最大合法 VLAN ID
	VlanMax VlanID = 4095

	// VlanAny 通配 VLAN
	VlanAny VlanID = 0xfffe

	// VlanNone 未打标签
	VlanNone VlanID = 0xffff
)

// IsValid 检查是否为合法 VLAN（含保留值）
func (v VlanID) IsValid() bool {
	return v <= VlanMax || v == VlanAny || v == VlanNone
}

// IsTagged 检查是否为具体的 VLAN 标签
func (v VlanID) IsTagged() bool {
	return v <= VlanMax
}

// String 返回 VLAN 的字符串表示
func (v VlanID) String() string {
	switch v {
	case VlanNone:
		return "None"
	case VlanAny:
		return "Any"
	default:
		return strconv.Itoa(int(v))
	}
}

// ParseVlanID 解析 VLAN 字符串
//
// 接受 "none"、"any"（不区分大小写）或 0-4095 的十进制数字。
func ParseVlanID(s string) (VlanID, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "none", "":
		return VlanNone, nil
	case "any":
		return VlanAny, nil
	}

	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil || VlanID(n) > VlanMax {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVlan, s)
	}
	return VlanID(n), nil
}
