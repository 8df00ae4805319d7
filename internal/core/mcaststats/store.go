package mcaststats

import (
	"net/netip"
	"sync"

	"github.com/dep2p/go-mcaststats/pkg/types"
)

// Store 组播组统计存储
//
// 一把互斥锁保护整个映射：新组的创建会修改键集合，
// 按记录加锁无法防止两个并发观测各自创建一条记录。
// 所有读写都在锁内完成，读取返回副本。
type Store struct {
	mu      sync.Mutex
	records map[netip.Addr]*record
	seq     uint64
}

// record 存储内部的可变记录
type record struct {
	vlan    types.VlanID
	sources map[netip.Addr]struct{}
}

// NewStore 创建空存储
func NewStore() *Store {
	return &Store{
		records: make(map[netip.Addr]*record),
	}
}

// Clear 丢弃所有记录
//
// 不隐含任何事件，是否通知由调用方决定。
// 变更序号不重置。
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[netip.Addr]*record)
}

// Get 查询组播组的统计记录
func (s *Store) Get(group netip.Addr) (types.McastStatistics, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[group]
	if !ok {
		return types.McastStatistics{}, false
	}
	return r.export(group), true
}

// Snapshot 返回整个映射的时间点副本
//
// 之后对存储的修改不会反映到已返回的快照中。
func (s *Store) Snapshot() map[netip.Addr]types.McastStatistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[netip.Addr]types.McastStatistics, len(s.records))
	for group, r := range s.records {
		snapshot[group] = r.export(group)
	}
	return snapshot
}

// Len 返回组播组数量
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// RecordObservation 记录一次 (group, source, vlan) 观测
//
// 组不存在时创建记录，sources = {source}；已存在时把 source 加入集合
// （已存在则无变化），并无条件覆盖 vlan。
// 返回更新后的记录副本和本次变更的序号。不会失败。
func (s *Store) RecordObservation(group, source netip.Addr, vlan types.VlanID) (types.McastStatistics, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[group]
	if !ok {
		r = &record{sources: make(map[netip.Addr]struct{}, 1)}
		s.records[group] = r
	}
	r.sources[source] = struct{}{}
	r.vlan = vlan

	s.seq++
	return r.export(group), s.seq
}

// export 复制为公共值类型，调用方需持有锁
func (r *record) export(group netip.Addr) types.McastStatistics {
	sources := make(map[netip.Addr]struct{}, len(r.sources))
	for src := range r.sources {
		sources[src] = struct{}{}
	}
	return types.McastStatistics{
		Group:   group,
		VlanID:  r.vlan,
		Sources: sources,
	}
}
