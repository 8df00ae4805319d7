// Package eventbus 进程内类型化事件总线
//
// 事件按动态类型分到各自的 topic，每个 topic 记录订阅者、发射器引用数
// 以及发射与丢弃计数，供 metrics 包导出。
//
//	bus := eventbus.NewBus()
//	sub, _ := bus.Subscribe(new(types.StatisticsEvent), eventbus.Blocking())
//	em, _ := bus.Emitter(new(types.StatisticsEvent))
//	em.Emit(types.NewStatsReportEvent(stats))
//
// 同一 topic 的投递在 topic 锁内串行完成，订阅者看到的顺序即 Emit 顺序。
// 非阻塞订阅缓冲区满时丢弃事件并限速告警；阻塞订阅使发射者等待，
// 直到订阅者消费或订阅关闭。
package eventbus
