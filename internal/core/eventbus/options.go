package eventbus

import pkgif "github.com/dep2p/go-mcaststats/pkg/interfaces"

// 包内便捷别名，调用方无需同时导入 pkg/interfaces

var (
	BufSize        = pkgif.BufSize
	Blocking       = pkgif.Blocking
	SubscriberName = pkgif.SubscriberName
	Stateful       = pkgif.Stateful
)
