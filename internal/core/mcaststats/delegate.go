package mcaststats

import (
	pkgif "github.com/dep2p/go-mcaststats/pkg/interfaces"
	"github.com/dep2p/go-mcaststats/pkg/types"
)

// internalDelegate 管理器内部委托
//
// 外部生产者持有的委托在管理器停用后仍可调用，此时事件被丢弃并记录。
type internalDelegate struct {
	manager *Manager
}

var _ pkgif.StatisticsDelegate = (*internalDelegate)(nil)

// Notify 记录事件并原样转发到事件总线
func (d *internalDelegate) Notify(event types.StatisticsEvent) {
	logger.Debug("组播源统计事件",
		"id", event.ID,
		"type", event.Type.String(),
		"groups", len(event.Subject))

	if err := d.manager.post(event); err != nil {
		logger.Warn("统计事件投递失败", "id", event.ID, "type", event.Type.String(), "err", err)
	}
}
