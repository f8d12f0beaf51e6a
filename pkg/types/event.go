// Package types provides event type definitions.
package types

import "time"

// EventType 事件类型
type EventType string

const (
	// EventTypeVigilSlashed 策略执行验证失败并已罚没
	EventTypeVigilSlashed EventType = "attestation.vigil.slashed"

	// EventTypeBatchEvicted 批量队列溢出丢弃了最早的未证明条目
	EventTypeBatchEvicted EventType = "attestation.batch.evicted"
)

// SlashEvent vigil 罚没事件负载
type SlashEvent struct {
	Principal string        `json:"principal"`
	Amount    uint64        `json:"amount"`
	Family    CircuitFamily `json:"family"`
	Result    VerifyResult  `json:"result"`
	Timestamp time.Time     `json:"timestamp"`
}
