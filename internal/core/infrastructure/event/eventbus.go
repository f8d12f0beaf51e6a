// Package event 基于asaskevich/EventBus的事件总线实现
package event

import (
	"fmt"
	"sync"

	evbus "github.com/asaskevich/EventBus"
	eventconfig "github.com/weisyn/zkattest/internal/config/event"
	"github.com/weisyn/zkattest/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/zkattest/pkg/interfaces/infrastructure/log"
)

// EventBus 包装 asaskevich/EventBus
// 事件系统未启用时订阅静默成功、发布直接丢弃
type EventBus struct {
	bus    evbus.Bus
	config *eventconfig.Config
	logger log.Logger

	mu          sync.Mutex
	subscribers map[event.EventType]int
}

// New 创建事件总线
func New(config *eventconfig.Config, logger log.Logger) event.EventBus {
	if config == nil {
		config = eventconfig.New(nil)
	}
	return &EventBus{
		bus:         evbus.New(),
		config:      config,
		logger:      logger,
		subscribers: make(map[event.EventType]int),
	}
}

func (eb *EventBus) reserve(eventType event.EventType) error {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	limit := eb.config.GetOptions().MaxSubscribers
	if limit > 0 && eb.subscribers[eventType] >= limit {
		return fmt.Errorf("事件 %s 订阅者数量已达上限 %d", eventType, limit)
	}
	eb.subscribers[eventType]++
	return nil
}

func (eb *EventBus) release(eventType event.EventType) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	if eb.subscribers[eventType] > 0 {
		eb.subscribers[eventType]--
	}
}

// Subscribe 实现同步订阅
func (eb *EventBus) Subscribe(eventType event.EventType, handler interface{}) error {
	if !eb.config.IsEnabled() {
		return nil
	}
	if err := eb.reserve(eventType); err != nil {
		return err
	}
	if err := eb.bus.Subscribe(string(eventType), handler); err != nil {
		eb.release(eventType)
		return err
	}
	return nil
}

// SubscribeAsync 实现异步订阅
func (eb *EventBus) SubscribeAsync(eventType event.EventType, handler interface{}, transactional bool) error {
	if !eb.config.IsEnabled() {
		return nil
	}
	if err := eb.reserve(eventType); err != nil {
		return err
	}
	if err := eb.bus.SubscribeAsync(string(eventType), handler, transactional); err != nil {
		eb.release(eventType)
		return err
	}
	return nil
}

// Unsubscribe 取消订阅
func (eb *EventBus) Unsubscribe(eventType event.EventType, handler interface{}) error {
	if !eb.config.IsEnabled() {
		return nil
	}
	if err := eb.bus.Unsubscribe(string(eventType), handler); err != nil {
		return err
	}
	eb.release(eventType)
	return nil
}

// Publish 发布事件
func (eb *EventBus) Publish(eventType event.EventType, args ...interface{}) {
	if !eb.config.IsEnabled() {
		return
	}
	if eb.logger != nil {
		eb.logger.Debugf("发布事件: %s", eventType)
	}
	eb.bus.Publish(string(eventType), args...)
}

// HasCallback 是否存在订阅者
func (eb *EventBus) HasCallback(eventType event.EventType) bool {
	if !eb.config.IsEnabled() {
		return false
	}
	return eb.bus.HasCallback(string(eventType))
}

// WaitAsync 等待所有异步处理完成
func (eb *EventBus) WaitAsync() {
	eb.bus.WaitAsync()
}
