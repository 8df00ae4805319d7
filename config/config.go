// Package config 提供统一的配置管理
//
// 本包采用混合配置模式：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义
//   - 支持从 JSON / YAML 加载和保存配置
//   - 支持预设配置（default/minimal）
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.Statistics.EmitOnUpdate = false
//
//	// 从文件加载（按扩展名选择 JSON 或 YAML）
//	cfg, err := config.LoadFile("mcaststats.yaml")
//
//	// 应用预设
//	config.ApplyPreset(cfg, "minimal")
package config

import "go.uber.org/multierr"

// Config 是 mcaststats 的完整配置结构
//
// 配置按照功能模块组织：
//   - Statistics: 统计管理器行为
//   - EventBus: 事件汇投递参数
//   - Poller: 周期性路由轮询
//   - Metrics: Prometheus 指标
type Config struct {
	// Statistics 统计管理器配置
	Statistics StatisticsConfig `json:"statistics" yaml:"statistics"`

	// EventBus 事件总线配置
	EventBus EventBusConfig `json:"event_bus" yaml:"event_bus"`

	// Poller 轮询器配置
	Poller PollerConfig `json:"poller" yaml:"poller"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Statistics: DefaultStatisticsConfig(),
		EventBus:   DefaultEventBusConfig(),
		Poller:     DefaultPollerConfig(),
		Metrics:    DefaultMetricsConfig(),
	}
}

// Validate 验证整个配置，返回所有子配置的错误
func (c *Config) Validate() error {
	return multierr.Combine(
		c.Statistics.Validate(),
		c.EventBus.Validate(),
		c.Poller.Validate(),
		c.Metrics.Validate(),
	)
}
