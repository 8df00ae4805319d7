package mcaststats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-mcaststats/pkg/types"
)

// sliceListener 动态类型不可比较
type sliceListener []int

func (sliceListener) Event(types.StatisticsEvent) {}

type panicFilter struct {
	*recordingListener
}

func (panicFilter) IsRelevant(types.StatisticsEvent) bool {
	panic("filter failure")
}

func TestListenerRegistry_NonComparable(t *testing.T) {
	r := newListenerRegistry()

	assert.NotPanics(t, func() {
		require.NoError(t, r.add(sliceListener{1}))
		require.NoError(t, r.add(sliceListener{1}))
		r.remove(sliceListener{1})
	})
	// 不可比较的监听器无法去重或注销
	assert.Equal(t, 2, r.len())
}

func TestListenerRegistry_RemoveKeepsOrder(t *testing.T) {
	r := newListenerRegistry()
	a, b, c := newRecordingListener(), newRecordingListener(), newRecordingListener()
	require.NoError(t, r.add(a))
	require.NoError(t, r.add(b))
	require.NoError(t, r.add(c))

	r.remove(b)
	r.remove(nil)

	require.Equal(t, 2, r.len())
	assert.Same(t, a, r.listeners[0])
	assert.Same(t, c, r.listeners[1])
}

func TestListenerRegistry_FilterPanic(t *testing.T) {
	r := newListenerRegistry()
	bad := panicFilter{newRecordingListener()}
	good := newRecordingListener()
	require.NoError(t, r.add(bad))
	require.NoError(t, r.add(good))

	assert.NotPanics(t, func() {
		r.process(types.NewStatsReportEvent(nil))
	})
	assert.Len(t, bad.ch, 0)
	assert.Len(t, good.ch, 1)
}
