package logger

import (
	"io"
	"log/slog"

	"github.com/dep2p/go-mcaststats/pkg/lib/log"
)

// NewHandler 根据配置创建按组件分级的 Handler
func NewHandler(w io.Writer, cfg *Config) slog.Handler {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	opts := &slog.HandlerOptions{
		Level:     minLevel(cfg),
		AddSource: cfg.AddSource,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Key = "ts"
			}
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(levelToString(lvl))
				}
			}
			return a
		},
	}

	var inner slog.Handler
	if cfg.Format == FormatJSON {
		inner = slog.NewJSONHandler(w, opts)
	} else {
		inner = slog.NewTextHandler(w, opts)
	}

	return newComponentHandler(cfg, inner)
}

// Install 创建 Logger 并设置为全局默认
//
// 所有通过 pkg/lib/log.Logger() 获取的组件 logger 立即生效。
func Install(w io.Writer, cfg *Config) *slog.Logger {
	l := slog.New(NewHandler(w, cfg))
	log.SetDefault(l)
	return l
}

// Discard 返回一个丢弃所有日志的 Logger
func Discard() *slog.Logger {
	return slog.New(discardHandler{})
}
