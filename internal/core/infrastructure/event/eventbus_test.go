package event

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	eventconfig "github.com/weisyn/zkattest/internal/config/event"
	"github.com/weisyn/zkattest/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/zkattest/pkg/types"
)

// TestEventBus 测试同步、异步订阅与取消订阅
func TestEventBus(t *testing.T) {
	eventBus := New(eventconfig.New(nil), nil)

	var received string
	handler := func(data string) {
		received = data
	}
	require.NoError(t, eventBus.Subscribe(event.EventType("test-event"), handler))
	require.True(t, eventBus.HasCallback(event.EventType("test-event")))

	eventBus.Publish(event.EventType("test-event"), "hello world")
	require.Equal(t, "hello world", received)

	var asyncData string
	var wg sync.WaitGroup
	wg.Add(1)
	asyncHandler := func(data string) {
		time.Sleep(10 * time.Millisecond)
		asyncData = data
		wg.Done()
	}
	require.NoError(t, eventBus.SubscribeAsync(event.EventType("async-event"), asyncHandler, false))

	eventBus.Publish(event.EventType("async-event"), "async data")
	eventBus.WaitAsync()
	wg.Wait()
	require.Equal(t, "async data", asyncData)

	require.NoError(t, eventBus.Unsubscribe(event.EventType("test-event"), handler))
	require.False(t, eventBus.HasCallback(event.EventType("test-event")))
}

// TestEventBusSlashPayload 测试罚没事件负载传递
func TestEventBusSlashPayload(t *testing.T) {
	eventBus := New(eventconfig.New(nil), nil)

	var got types.SlashEvent
	require.NoError(t, eventBus.Subscribe(types.EventTypeVigilSlashed, func(e types.SlashEvent) {
		got = e
	}))

	eventBus.Publish(types.EventTypeVigilSlashed, types.SlashEvent{Principal: "agent-7", Amount: 100})
	require.Equal(t, "agent-7", got.Principal)
	require.Equal(t, uint64(100), got.Amount)
}

// TestDisabledEventBus 测试禁用时发布被丢弃
func TestDisabledEventBus(t *testing.T) {
	eventBus := New(eventconfig.New(&types.UserEventConfig{Enabled: types.BoolPtr(false)}), nil)

	called := false
	require.NoError(t, eventBus.Subscribe(event.EventType("noop"), func() { called = true }))
	eventBus.Publish(event.EventType("noop"))
	require.False(t, called)
	require.False(t, eventBus.HasCallback(event.EventType("noop")))
}

// TestSubscriberLimit 测试订阅者上限
func TestSubscriberLimit(t *testing.T) {
	cfg := eventconfig.New(nil)
	cfg.GetOptions().MaxSubscribers = 1
	eventBus := New(cfg, nil)

	require.NoError(t, eventBus.Subscribe(event.EventType("limited"), func() {}))
	require.Error(t, eventBus.Subscribe(event.EventType("limited"), func() {}))
}
