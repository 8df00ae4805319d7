package types

import (
	"net/netip"
	"testing"
	"time"
)

func TestStatisticsEventType_String(t *testing.T) {
	if StatsUpdated.String() != "STATS_UPDATED" {
		t.Errorf("StatsUpdated.String() = %q", StatsUpdated.String())
	}
	if StatsReport.String() != "STATS_REPORT" {
		t.Errorf("StatsReport.String() = %q", StatsReport.String())
	}
	if StatisticsEventType(42).String() != "UNKNOWN(42)" {
		t.Errorf("unknown type String() = %q", StatisticsEventType(42).String())
	}
}

func TestNewStatsUpdatedEvent(t *testing.T) {
	group := netip.MustParseAddr("239.1.1.1")
	rec := NewMcastStatistics(group, netip.MustParseAddr("10.0.0.1"), 10)

	evt := NewStatsUpdatedEvent(rec, 7)

	if evt.Type != StatsUpdated {
		t.Errorf("Type = %v, want %v", evt.Type, StatsUpdated)
	}
	if evt.Seq != 7 {
		t.Errorf("Seq = %d, want 7", evt.Seq)
	}
	if evt.ID == "" {
		t.Error("ID is empty")
	}
	if time.Since(evt.Time) > time.Second {
		t.Error("Time is too old")
	}
	if len(evt.Subject) != 1 || evt.Subject[0].Group != group {
		t.Fatalf("Subject = %v", evt.Subject)
	}

	// 事件持有副本
	rec.Sources[netip.MustParseAddr("10.0.0.2")] = struct{}{}
	if evt.Subject[0].Len() != 1 {
		t.Errorf("event subject mutated through original record: %d sources", evt.Subject[0].Len())
	}
}

func TestNewStatsReportEvent(t *testing.T) {
	g1 := netip.MustParseAddr("239.1.1.2")
	g2 := netip.MustParseAddr("239.1.1.1")
	stats := map[netip.Addr]McastStatistics{
		g1: NewMcastStatistics(g1, AnySource, 5),
		g2: NewMcastStatistics(g2, AnySource, 6),
	}

	evt := NewStatsReportEvent(stats)

	if evt.Type != StatsReport {
		t.Errorf("Type = %v, want %v", evt.Type, StatsReport)
	}
	groups := evt.Groups()
	if len(groups) != 2 || groups[0] != g2 || groups[1] != g1 {
		t.Errorf("Groups() = %v, want sorted [%s %s]", groups, g2, g1)
	}

	delete(stats, g1)
	if len(evt.Subject) != 2 {
		t.Error("event subject affected by input map mutation")
	}
}

func TestStatisticsEvent_UniqueIDs(t *testing.T) {
	rec := NewMcastStatistics(netip.MustParseAddr("239.1.1.1"), AnySource, 1)
	a := NewStatsUpdatedEvent(rec, 1)
	b := NewStatsUpdatedEvent(rec, 2)
	if a.ID == b.ID {
		t.Errorf("duplicate event IDs: %s", a.ID)
	}
}
