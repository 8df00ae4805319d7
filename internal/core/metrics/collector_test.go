package metrics

import (
	"net/netip"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgif "github.com/dep2p/go-mcaststats/pkg/interfaces"
	"github.com/dep2p/go-mcaststats/pkg/types"
)

// fakeService 固定返回统计快照的服务
type fakeService struct {
	stats     map[netip.Addr]types.McastStatistics
	err       error
	listeners []pkgif.StatisticsListener
}

func (s *fakeService) ClearMcastRouteMap() error { return s.err }

func (s *fakeService) GetMcastStats() (map[netip.Addr]types.McastStatistics, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.stats, nil
}

func (s *fakeService) SetMcastStatistics(types.McastRoute, types.VlanID) error { return s.err }

func (s *fakeService) GetStatsDelegate() (pkgif.StatisticsDelegate, error) { return nil, s.err }

func (s *fakeService) AddListener(l pkgif.StatisticsListener) error {
	s.listeners = append(s.listeners, l)
	return nil
}

func (s *fakeService) RemoveListener(l pkgif.StatisticsListener) {
	for i, x := range s.listeners {
		if x == l {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

func sampleStats() map[netip.Addr]types.McastStatistics {
	g1 := netip.MustParseAddr("239.1.1.1")
	g2 := netip.MustParseAddr("239.2.2.2")

	r1 := types.NewMcastStatistics(g1, netip.MustParseAddr("10.0.0.1"), 10)
	r1.Sources[netip.MustParseAddr("10.0.0.2")] = struct{}{}

	return map[netip.Addr]types.McastStatistics{
		g1: r1,
		g2: types.NewMcastStatistics(g2, types.AnySource, types.VlanNone),
	}
}

func TestStatsCollector_Collect(t *testing.T) {
	c := NewStatsCollector("mcast", &fakeService{stats: sampleStats()})

	expected := `
# HELP mcast_groups Number of multicast groups with statistics.
# TYPE mcast_groups gauge
mcast_groups 2
# HELP mcast_group_sources Number of distinct sources observed for a multicast group.
# TYPE mcast_group_sources gauge
mcast_group_sources{group="239.1.1.1"} 2
mcast_group_sources{group="239.2.2.2"} 1
# HELP mcast_group_vlan Most recently observed 802.1Q VLAN for a multicast group; absent when untagged or wildcard.
# TYPE mcast_group_vlan gauge
mcast_group_vlan{group="239.1.1.1"} 10
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected))
	require.NoError(t, err)
}

func TestStatsCollector_Inactive(t *testing.T) {
	c := NewStatsCollector("mcast", &fakeService{err: types.ErrNotActive})

	assert.Equal(t, 1, testutil.CollectAndCount(c))
	assert.Equal(t, float64(0), testutil.ToFloat64(c))
}

func TestStatsCollector_Namespace(t *testing.T) {
	c := NewStatsCollector("lab", &fakeService{stats: sampleStats()})

	assert.Equal(t, 1, testutil.CollectAndCount(c, "lab_groups"))
	assert.Equal(t, 2, testutil.CollectAndCount(c, "lab_group_sources"))
}

func TestStatsCollector_UntaggedHasNoVlan(t *testing.T) {
	g := netip.MustParseAddr("239.3.3.3")
	stats := map[netip.Addr]types.McastStatistics{
		g: types.NewMcastStatistics(g, types.AnySource, types.VlanAny),
	}
	c := NewStatsCollector("mcast", &fakeService{stats: stats})

	assert.Equal(t, 1, testutil.CollectAndCount(c, "mcast_group_sources"))
	assert.Equal(t, 0, testutil.CollectAndCount(c, "mcast_group_vlan"))
}

func TestEventCounter(t *testing.T) {
	c := NewEventCounter("mcast")

	assert.Equal(t, 2, testutil.CollectAndCount(c))

	c.Event(types.NewStatsUpdatedEvent(types.NewMcastStatistics(netip.MustParseAddr("239.1.1.1"), types.AnySource, 1), 1))
	c.Event(types.NewStatsUpdatedEvent(types.NewMcastStatistics(netip.MustParseAddr("239.1.1.1"), types.AnySource, 1), 2))
	c.Event(types.NewStatsReportEvent(nil))

	assert.Equal(t, float64(2), testutil.ToFloat64(c.events.WithLabelValues("STATS_UPDATED")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.events.WithLabelValues("STATS_REPORT")))
}
