// Package types 定义 mcaststats 公共类型
//
// 本文件定义事件相关类型。
package types

import (
	"fmt"
	"net/netip"
	"sort"
	"time"

	"github.com/google/uuid"
)

// ============================================================================
//                              StatisticsEventType - 事件类型
// ============================================================================

// StatisticsEventType 统计事件类型
type StatisticsEventType int

const (
	// StatsUpdated 单个组播组的统计已更新
	StatsUpdated StatisticsEventType = iota

	// StatsReport 全量统计报告（由外部生产者经委托推送）
	StatsReport
)

// String 返回事件类型字符串表示
func (t StatisticsEventType) String() string {
	switch t {
	case StatsUpdated:
		return "STATS_UPDATED"
	case StatsReport:
		return "STATS_REPORT"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(t))
	}
}

// ============================================================================
//                              StatisticsEvent - 统计事件
// ============================================================================

// StatisticsEvent 统计变更通知
//
// 事件发布后不可修改。Subject 中的记录均为副本，
// 监听器持有的永远不是管理器内部的可变记录。
type StatisticsEvent struct {
	// ID 事件唯一标识
	ID string

	// Type 事件类型
	Type StatisticsEventType

	// Time 事件创建时间
	Time time.Time

	// Seq 存储变更序号（StatsUpdated 时有效，StatsReport 为 0）
	//
	// 序号在存储锁内分配，可用于在并发生产者之间恢复变更顺序。
	Seq uint64

	// Subject 变更的统计记录
	Subject []McastStatistics
}

// NewStatsUpdatedEvent 创建单组更新事件
func NewStatsUpdatedEvent(rec McastStatistics, seq uint64) StatisticsEvent {
	return StatisticsEvent{
		ID:      uuid.NewString(),
		Type:    StatsUpdated,
		Time:    time.Now(),
		Seq:     seq,
		Subject: []McastStatistics{rec.Clone()},
	}
}

// NewStatsReportEvent 创建全量报告事件
//
// Subject 按组地址排序，便于日志与比对。
func NewStatsReportEvent(stats map[netip.Addr]McastStatistics) StatisticsEvent {
	subject := make([]McastStatistics, 0, len(stats))
	for _, s := range stats {
		subject = append(subject, s.Clone())
	}
	sort.Slice(subject, func(i, j int) bool {
		return subject[i].Group.Less(subject[j].Group)
	})
	return StatisticsEvent{
		ID:      uuid.NewString(),
		Type:    StatsReport,
		Time:    time.Now(),
		Subject: subject,
	}
}

// Groups 返回事件涉及的组播组
func (e StatisticsEvent) Groups() []netip.Addr {
	groups := make([]netip.Addr, 0, len(e.Subject))
	for _, s := range e.Subject {
		groups = append(groups, s.Group)
	}
	return groups
}

// String 返回事件摘要
func (e StatisticsEvent) String() string {
	return fmt.Sprintf("%s seq=%d groups=%d", e.Type, e.Seq, len(e.Subject))
}
