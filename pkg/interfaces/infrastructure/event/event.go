// Package event 定义事件总线接口
//
// 证明子系统通过事件总线向外通知 vigil 罚没、批量队列溢出等状态变化，
// 订阅方（审计、告警）与证明核心解耦。
package event

import "github.com/weisyn/zkattest/pkg/types"

// EventType 事件类型
type EventType = types.EventType

// EventBus 事件总线接口
//
// ⚠️ handler 为任意函数，参数需与 Publish 的 args 一一对应，
// 与 asaskevich/EventBus 的约定一致。
type EventBus interface {
	// Subscribe 同步订阅
	Subscribe(eventType EventType, handler interface{}) error

	// SubscribeAsync 异步订阅；transactional 为 true 时同一订阅者串行处理
	SubscribeAsync(eventType EventType, handler interface{}, transactional bool) error

	// Unsubscribe 取消订阅
	Unsubscribe(eventType EventType, handler interface{}) error

	// Publish 发布事件
	Publish(eventType EventType, args ...interface{})

	// HasCallback 是否存在订阅者
	HasCallback(eventType EventType) bool

	// WaitAsync 等待所有异步处理完成
	WaitAsync()
}
