package config

import "fmt"

// StatisticsConfig 统计管理器配置
type StatisticsConfig struct {
	// EmitOnUpdate SetMcastStatistics 是否发布 StatsUpdated 事件
	//
	// 开启时每次成功调用恰好发布一次事件，主题为更新后的记录副本。
	// 关闭时只有委托路径发布事件。
	// 默认值: true
	EmitOnUpdate bool `json:"emit_on_update" yaml:"emit_on_update"`
}

// DefaultStatisticsConfig 返回默认的统计配置
func DefaultStatisticsConfig() StatisticsConfig {
	return StatisticsConfig{
		EmitOnUpdate: true,
	}
}

// Validate 验证统计配置
func (c *StatisticsConfig) Validate() error {
	return nil
}

// EventBusConfig 事件总线配置
type EventBusConfig struct {
	// SinkBuffer 管理器事件汇的缓冲区大小
	//
	// 事件汇为阻塞订阅，缓冲区满时发布者等待监听器消费。
	// 默认值: 64
	SinkBuffer int `json:"sink_buffer" yaml:"sink_buffer"`
}

// DefaultEventBusConfig 返回默认的事件总线配置
func DefaultEventBusConfig() EventBusConfig {
	return EventBusConfig{
		SinkBuffer: 64,
	}
}

// Validate 验证事件总线配置
func (c *EventBusConfig) Validate() error {
	if c.SinkBuffer < 0 {
		return fmt.Errorf("event_bus: sink_buffer must be non-negative, got %d", c.SinkBuffer)
	}
	return nil
}
