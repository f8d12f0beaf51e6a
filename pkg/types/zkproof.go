// Package types provides zero-knowledge attestation type definitions.
package types

import (
	"fmt"
	"time"
)

// CircuitFamily 证明电路族
//
// 🎯 **封闭集合**：只支持下列固定电路族，不支持运行时定义的电路。
// 每个电路族在 internal/core/attestation/circuits 的规格表中对应
// {组合函数, 固定见证长度, 公开输入形态}。
//
// 📋 **取值说明**：
//   - GenesisPath：启动路径证明（滚动哈希）
//   - BiometricCommitment：生物特征身份证明（滚动哈希）
//   - PolicyAction：策略执行/异常检测证明（滚动哈希）
//   - DataIntegrity：存储状态证明（异或折叠）
type CircuitFamily uint16

const (
	GenesisPath CircuitFamily = iota + 1
	BiometricCommitment
	PolicyAction
	DataIntegrity
)

// AllCircuitFamilies 返回全部电路族（按固定顺序）
func AllCircuitFamilies() []CircuitFamily {
	return []CircuitFamily{GenesisPath, BiometricCommitment, PolicyAction, DataIntegrity}
}

// String 返回电路族的规范名称（同时用作密钥缓存文件名）
func (f CircuitFamily) String() string {
	switch f {
	case GenesisPath:
		return "genesis-path"
	case BiometricCommitment:
		return "biometric-commitment"
	case PolicyAction:
		return "policy-action"
	case DataIntegrity:
		return "data-integrity"
	default:
		return fmt.Sprintf("unknown-family(%d)", uint16(f))
	}
}

// IsValid 是否为已知电路族
func (f CircuitFamily) IsValid() bool {
	return f >= GenesisPath && f <= DataIntegrity
}

// ParseCircuitFamily 从规范名称解析电路族
func ParseCircuitFamily(name string) (CircuitFamily, error) {
	for _, f := range AllCircuitFamilies() {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("未知的电路族: %s", name)
}

// VerifyResult 证明验证结果（三态）
//
// 对外布尔接口把 Invalid 和 Malformed 都折叠为 false，
// 三态结果仅用于日志和指标，便于区分"证明不成立"与"证明数据损坏"。
type VerifyResult uint8

const (
	VerifyValid VerifyResult = iota + 1
	VerifyInvalid
	VerifyMalformed
)

// String 返回验证结果名称
func (r VerifyResult) String() string {
	switch r {
	case VerifyValid:
		return "valid"
	case VerifyInvalid:
		return "invalid"
	case VerifyMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// OK 是否验证通过
func (r VerifyResult) OK() bool {
	return r == VerifyValid
}

// BatchItem 批量队列条目：(见证, 公开承诺) 延迟证明
type BatchItem struct {
	ID         string
	Witness    []byte
	Commitment []byte
	QueuedAt   time.Time
}

// BatchProof 批量证明结果，顺序与入队顺序一致
type BatchProof struct {
	ItemID     string
	Commitment []byte
	Proof      []byte
}

// Attestation 一次证明的对外载体
//
// 只包含公开信息（电路族、承诺、证明），见证永远不会出现在这里。
type Attestation struct {
	Family     CircuitFamily `json:"family"`
	Commitment []byte        `json:"commitment"`
	Proof      []byte        `json:"proof"`
	CreatedAt  time.Time     `json:"created_at"`
}
