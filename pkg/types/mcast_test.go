package types

import (
	"errors"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// VlanID 测试
// ============================================================================

func TestVlanID(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "10", VlanID(10).String())
		assert.Equal(t, "None", VlanNone.String())
		assert.Equal(t, "Any", VlanAny.String())
	})

	t.Run("IsValid", func(t *testing.T) {
		assert.True(t, VlanID(0).IsValid())
		assert.True(t, VlanMax.IsValid())
		assert.True(t, VlanNone.IsValid())
		assert.True(t, VlanAny.IsValid())
		assert.False(t, VlanID(4096).IsValid())
		assert.False(t, VlanNone.IsTagged())
	})

	t.Run("Parse", func(t *testing.T) {
		v, err := ParseVlanID("100")
		require.NoError(t, err)
		assert.Equal(t, VlanID(100), v)

		v, err = ParseVlanID("NONE")
		require.NoError(t, err)
		assert.Equal(t, VlanNone, v)

		v, err = ParseVlanID("any")
		require.NoError(t, err)
		assert.Equal(t, VlanAny, v)

		_, err = ParseVlanID("4096")
		assert.True(t, errors.Is(err, ErrInvalidVlan))

		_, err = ParseVlanID("abc")
		assert.ErrorIs(t, err, ErrInvalidVlan)
	})
}

// ============================================================================
// McastRoute 测试
// ============================================================================

func TestNewMcastRoute(t *testing.T) {
	group := netip.MustParseAddr("239.1.1.1")

	t.Run("SourceSpecific", func(t *testing.T) {
		r, err := NewMcastRoute(group, netip.MustParseAddr("10.0.0.1"), RouteTypeIGMP)
		require.NoError(t, err)
		assert.False(t, r.IsAnySource())
		assert.Equal(t, "(10.0.0.1, 239.1.1.1)/igmp", r.String())
	})

	t.Run("AnySource", func(t *testing.T) {
		r, err := NewMcastRoute(group, AnySource, RouteTypeStatic)
		require.NoError(t, err)
		assert.True(t, r.IsAnySource())
		assert.Equal(t, "(*, 239.1.1.1)/static", r.String())
	})

	t.Run("IPv6", func(t *testing.T) {
		_, err := NewMcastRoute(netip.MustParseAddr("ff3e::1"), netip.MustParseAddr("2001:db8::1"), RouteTypePIM)
		assert.NoError(t, err)
	})

	t.Run("UnicastGroup", func(t *testing.T) {
		_, err := NewMcastRoute(netip.MustParseAddr("10.0.0.1"), AnySource, RouteTypeStatic)
		assert.ErrorIs(t, err, ErrInvalidGroup)
	})

	t.Run("InvalidGroup", func(t *testing.T) {
		_, err := NewMcastRoute(netip.Addr{}, AnySource, RouteTypeStatic)
		assert.ErrorIs(t, err, ErrInvalidGroup)
	})

	t.Run("MulticastSource", func(t *testing.T) {
		_, err := NewMcastRoute(group, netip.MustParseAddr("239.2.2.2"), RouteTypeStatic)
		assert.ErrorIs(t, err, ErrInvalidSource)
	})

	t.Run("FamilyMismatch", func(t *testing.T) {
		_, err := NewMcastRoute(group, netip.MustParseAddr("2001:db8::1"), RouteTypeStatic)
		assert.ErrorIs(t, err, ErrInvalidSource)
	})
}

// ============================================================================
// McastStatistics 测试
// ============================================================================

func TestMcastStatistics(t *testing.T) {
	group := netip.MustParseAddr("239.1.1.1")
	s1 := netip.MustParseAddr("10.0.0.2")
	s2 := netip.MustParseAddr("10.0.0.1")

	rec := NewMcastStatistics(group, s1, 10)
	rec.Sources[s2] = struct{}{}
	rec.Sources[AnySource] = struct{}{}

	t.Run("SourceList", func(t *testing.T) {
		assert.Equal(t, []netip.Addr{AnySource, s2, s1}, rec.SourceList())
		assert.Equal(t, 3, rec.Len())
		assert.True(t, rec.HasSource(AnySource))
	})

	t.Run("Clone", func(t *testing.T) {
		c := rec.Clone()
		c.Sources[netip.MustParseAddr("10.0.0.9")] = struct{}{}
		c.VlanID = 20
		assert.Equal(t, 3, rec.Len())
		assert.Equal(t, VlanID(10), rec.VlanID)
	})

	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "239.1.1.1 vlan=10 sources=[* 10.0.0.1 10.0.0.2]", rec.String())
	})
}
