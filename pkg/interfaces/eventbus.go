package interfaces

// ============================================================================
//                              事件总线
// ============================================================================

// EventBus 按事件类型路由的发布/订阅总线
//
// eventType 参数均为指向事件类型的指针，例如 new(types.StatisticsEvent)。
// 管理器激活时从总线获取发射器与阻塞订阅，停用时关闭二者。
type EventBus interface {
	Subscribe(eventType interface{}, opts ...SubscriptionOpt) (Subscription, error)
	Emitter(eventType interface{}, opts ...EmitterOpt) (Emitter, error)

	// GetAllEventTypes 返回当前有订阅者或发射器的事件类型
	GetAllEventTypes() []interface{}
}

// Subscription 订阅句柄，Close 后 Out 通道被关闭
type Subscription interface {
	Out() <-chan interface{}
	Close() error
}

// Emitter 发射器句柄
type Emitter interface {
	Emit(event interface{}) error
	Close() error
}

// ============================================================================
//                              选项
// ============================================================================

// SubscriptionSettings 订阅参数，供 EventBus 实现读取
type SubscriptionSettings struct {
	// Buffer 通道缓冲区大小
	Buffer int

	// Blocking 缓冲区满时让发射者等待，直到消费或订阅关闭
	Blocking bool

	// Name 出现在丢弃告警日志中，空时使用事件类型名
	Name string
}

// EmitterSettings 发射器参数
type EmitterSettings struct {
	// Stateful 保留最后一个事件并回放给之后的订阅者
	Stateful bool
}

type (
	SubscriptionOpt func(*SubscriptionSettings)
	EmitterOpt      func(*EmitterSettings)
)

func BufSize(size int) SubscriptionOpt {
	return func(s *SubscriptionSettings) { s.Buffer = size }
}

// Blocking 阻塞订阅不丢事件，用于需要有序、至少一次投递的事件汇
func Blocking() SubscriptionOpt {
	return func(s *SubscriptionSettings) { s.Blocking = true }
}

func SubscriberName(name string) SubscriptionOpt {
	return func(s *SubscriptionSettings) { s.Name = name }
}

func Stateful() EmitterOpt {
	return func(s *EmitterSettings) { s.Stateful = true }
}
