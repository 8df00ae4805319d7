package mcaststats

import (
	"time"

	"github.com/dep2p/go-mcaststats/config"
)

// Config 统计管理器配置
type Config struct {
	// EmitOnUpdate SetMcastStatistics 成功后是否发布 StatsUpdated 事件
	EmitOnUpdate bool

	// SinkBuffer 事件汇缓冲区大小
	SinkBuffer int
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		EmitOnUpdate: true,
		SinkBuffer:   64,
	}
}

// ConfigFromUnified 从统一配置创建管理器配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return Config{
		EmitOnUpdate: cfg.Statistics.EmitOnUpdate,
		SinkBuffer:   cfg.EventBus.SinkBuffer,
	}
}

// PollerConfig 轮询器配置
type PollerConfig struct {
	// Interval 轮询周期
	Interval time.Duration

	// ClearBeforePoll 每轮轮询前清空统计
	ClearBeforePoll bool
}

// DefaultPollerConfig 返回默认轮询配置
func DefaultPollerConfig() PollerConfig {
	return PollerConfig{
		Interval: 10 * time.Second,
	}
}

// PollerConfigFromUnified 从统一配置创建轮询器配置
func PollerConfigFromUnified(cfg *config.Config) PollerConfig {
	if cfg == nil {
		return DefaultPollerConfig()
	}
	return PollerConfig{
		Interval:        cfg.Poller.Interval.Duration(),
		ClearBeforePoll: cfg.Poller.ClearBeforePoll,
	}
}
