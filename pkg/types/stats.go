package types

import (
	"net/netip"
	"sort"
	"strings"
)

// ============================================================================
//                              McastStatistics - 组播组统计
// ============================================================================

// McastStatistics 单个组播组的统计记录
//
// Sources 为集合语义：插入幂等，按地址相等去重，无顺序保证。
// AnySource 作为集合中的一个普通成员参与去重。
// VlanID 为最后一次写入的值。
type McastStatistics struct {
	// Group 组播组地址
	Group netip.Addr

	// VlanID 最近一次观测到的 VLAN
	VlanID VlanID

	// Sources 观测到的源地址集合
	Sources map[netip.Addr]struct{}
}

// NewMcastStatistics 创建仅含一个源的统计记录
func NewMcastStatistics(group, source netip.Addr, vlan VlanID) McastStatistics {
	return McastStatistics{
		Group:   group,
		VlanID:  vlan,
		Sources: map[netip.Addr]struct{}{source: {}},
	}
}

// Clone 深拷贝统计记录
func (s McastStatistics) Clone() McastStatistics {
	sources := make(map[netip.Addr]struct{}, len(s.Sources))
	for src := range s.Sources {
		sources[src] = struct{}{}
	}
	return McastStatistics{
		Group:   s.Group,
		VlanID:  s.VlanID,
		Sources: sources,
	}
}

// HasSource 检查源地址是否已观测到
func (s McastStatistics) HasSource(source netip.Addr) bool {
	_, ok := s.Sources[source]
	return ok
}

// Len 返回源地址数量
func (s McastStatistics) Len() int {
	return len(s.Sources)
}

// SourceList 返回排序后的源地址列表
//
// AnySource 排在最前（零值 Addr 在 netip 的排序中最小）。
func (s McastStatistics) SourceList() []netip.Addr {
	list := make([]netip.Addr, 0, len(s.Sources))
	for src := range s.Sources {
		list = append(list, src)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Less(list[j])
	})
	return list
}

// String 返回统计记录的可读表示
func (s McastStatistics) String() string {
	var b strings.Builder
	b.WriteString(s.Group.String())
	b.WriteString(" vlan=")
	b.WriteString(s.VlanID.String())
	b.WriteString(" sources=[")
	for i, src := range s.SourceList() {
		if i > 0 {
			b.WriteByte(' ')
		}
		if src.IsValid() {
			b.WriteString(src.String())
		} else {
			b.WriteByte('*')
		}
	}
	b.WriteByte(']')
	return b.String()
}
