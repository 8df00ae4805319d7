// Package log 组件日志入口
//
// 各包在包级变量中取得带组件名的 logger：
//
//	var logger = log.Logger("core/mcaststats")
//
// 每次输出时才解析 slog.Default()，因此 internal/util/logger.Install
// 可以在组件 logger 创建之后再替换全局 handler。
package log

import (
	"context"
	"log/slog"
)

// ComponentKey 组件名属性
const ComponentKey = "component"

// SetDefault 替换全局 handler
func SetDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

// Component 带组件名的 logger
type Component struct {
	name string
}

// Logger 返回组件 logger
func Logger(component string) *Component {
	return &Component{name: component}
}

// Name 组件名
func (c *Component) Name() string { return c.name }

func (c *Component) slog() *slog.Logger {
	return slog.Default().With(ComponentKey, c.name)
}

func (c *Component) Debug(msg string, args ...any) { c.slog().Debug(msg, args...) }
func (c *Component) Info(msg string, args ...any)  { c.slog().Info(msg, args...) }
func (c *Component) Warn(msg string, args ...any)  { c.slog().Warn(msg, args...) }
func (c *Component) Error(msg string, args ...any) { c.slog().Error(msg, args...) }

// Enabled 报告该组件是否输出 level 级别的日志
func (c *Component) Enabled(level slog.Level) bool {
	return c.slog().Handler().Enabled(context.Background(), level)
}

// With 返回附加属性后的 slog.Logger，绑定调用时的全局 handler
func (c *Component) With(args ...any) *slog.Logger {
	return c.slog().With(args...)
}
