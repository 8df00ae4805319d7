package mcaststats

import (
	"context"
	"errors"
	"net/netip"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-mcaststats/config"
	"github.com/dep2p/go-mcaststats/internal/core/eventbus"
	pkgif "github.com/dep2p/go-mcaststats/pkg/interfaces"
	"github.com/dep2p/go-mcaststats/pkg/types"
)

var (
	testGroup  = netip.MustParseAddr("239.10.0.1")
	testSource = netip.MustParseAddr("192.0.2.1")
)

type staticRoutes []types.McastRouteVlan

func (r staticRoutes) McastRoutes(context.Context) ([]types.McastRouteVlan, error) {
	return r, nil
}

func startService(t *testing.T, cfg *config.Config, opts ...Option) *Service {
	t.Helper()
	svc, err := New(cfg, opts...)
	require.NoError(t, err)
	require.NoError(t, svc.Start(context.Background()))
	t.Cleanup(func() { _ = svc.Stop(context.Background()) })
	return svc
}

func TestService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc, err := New(nil)
	require.NoError(t, err)

	_, err = svc.Statistics().GetMcastStats()
	assert.True(t, errors.Is(err, types.ErrNotActive))
	assert.True(t, errors.Is(svc.Stop(ctx), ErrNotStarted))

	require.NoError(t, svc.Start(ctx))
	assert.True(t, svc.IsRunning())
	assert.True(t, errors.Is(svc.Start(ctx), ErrAlreadyStarted))

	route, err := types.NewMcastRoute(testGroup, testSource, types.RouteTypeIGMP)
	require.NoError(t, err)
	require.NoError(t, svc.Statistics().SetMcastStatistics(route, 100))

	stats, err := svc.Statistics().GetMcastStats()
	require.NoError(t, err)
	require.Contains(t, stats, testGroup)
	assert.True(t, stats[testGroup].HasSource(testSource))

	require.NoError(t, svc.Stop(ctx))
	assert.False(t, svc.IsRunning())
	require.NoError(t, svc.Stop(ctx))
	assert.True(t, errors.Is(svc.Start(ctx), ErrServiceClosed))

	_, err = svc.Statistics().GetMcastStats()
	assert.True(t, errors.Is(err, types.ErrNotActive))
}

func TestService_ConfigNotMutated(t *testing.T) {
	cfg := config.NewConfig()

	svc, err := New(cfg, WithPreset("minimal"))
	require.NoError(t, err)

	assert.True(t, cfg.Statistics.EmitOnUpdate)
	assert.False(t, svc.Config().Statistics.EmitOnUpdate)
	assert.Nil(t, svc.Gatherer())
}

func TestService_InvalidConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.EventBus.SinkBuffer = -1

	_, err := New(cfg)
	assert.Error(t, err)

	_, err = New(nil, WithPreset("unknown"))
	assert.Error(t, err)

	_, err = New(nil, WithListener(nil))
	assert.Error(t, err)
}

func TestService_Listener(t *testing.T) {
	events := make(chan types.StatisticsEvent, 8)
	l := pkgif.StatisticsListenerFunc(func(e types.StatisticsEvent) { events <- e })

	svc := startService(t, nil, WithListener(&l))

	route, err := types.NewMcastRoute(testGroup, types.AnySource, types.RouteTypeStatic)
	require.NoError(t, err)
	require.NoError(t, svc.Statistics().SetMcastStatistics(route, types.VlanNone))

	select {
	case e := <-events:
		assert.Equal(t, types.StatsUpdated, e.Type)
		assert.Equal(t, []netip.Addr{testGroup}, e.Groups())
	case <-time.After(2 * time.Second):
		t.Fatal("no event delivered")
	}
}

func TestService_HostEventBus(t *testing.T) {
	bus := eventbus.NewBus()
	sub, err := bus.Subscribe(new(types.StatisticsEvent))
	require.NoError(t, err)
	defer sub.Close()

	svc := startService(t, nil, WithEventBus(bus))

	route, err := types.NewMcastRoute(testGroup, testSource, types.RouteTypeStatic)
	require.NoError(t, err)
	require.NoError(t, svc.Statistics().SetMcastStatistics(route, 1))

	select {
	case e := <-sub.Out():
		assert.Equal(t, types.StatsUpdated, e.(types.StatisticsEvent).Type)
	case <-time.After(2 * time.Second):
		t.Fatal("host subscriber did not receive event")
	}
}

func TestService_PollerReports(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Statistics.EmitOnUpdate = false
	cfg.Poller.Enabled = true
	cfg.Poller.Interval = config.Duration(time.Minute)

	events := make(chan types.StatisticsEvent, 8)
	l := pkgif.StatisticsListenerFunc(func(e types.StatisticsEvent) { events <- e })
	routes := staticRoutes{{
		Route:  types.McastRoute{Group: testGroup, Source: testSource},
		VlanID: 7,
	}}
	mock := clock.NewMock()

	startService(t, cfg, WithListener(&l), WithRouteSource(routes), WithClock(mock))

	for i := 0; i < 2; i++ {
		select {
		case e := <-events:
			assert.Equal(t, types.StatsReport, e.Type)
			require.Len(t, e.Subject, 1)
			assert.Equal(t, types.VlanID(7), e.Subject[0].VlanID)
		case <-time.After(2 * time.Second):
			t.Fatalf("report %d not delivered", i)
		}
		mock.Add(time.Minute)
	}
}

func TestService_Metrics(t *testing.T) {
	svc := startService(t, nil)

	route, err := types.NewMcastRoute(testGroup, testSource, types.RouteTypeStatic)
	require.NoError(t, err)
	require.NoError(t, svc.Statistics().SetMcastStatistics(route, 3))

	require.NotNil(t, svc.Gatherer())
	n, err := testutil.GatherAndCount(svc.Gatherer(), "mcast_groups", "mcast_group_sources", "mcast_group_vlan")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestService_HostRegisterer(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := startService(t, nil, WithRegisterer(reg))

	assert.Same(t, reg, svc.Gatherer())
	n, err := testutil.GatherAndCount(reg, "mcast_groups")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
