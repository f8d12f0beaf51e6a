// Package zkproof provides error definitions for zero-knowledge attestation.
package zkproof

import (
	"errors"
	"fmt"

	"github.com/weisyn/zkattest/internal/core/attestation/circuits"
	"github.com/weisyn/zkattest/pkg/types"
)

// ============================================================================
//                            零知识证明错误定义
// ============================================================================

var (
	// ErrSetupFailed 可信设置失败（对初始化是致命错误）
	ErrSetupFailed = errors.New("trusted setup failed")

	// ErrKeyCacheCorrupt 密钥缓存文件损坏或与当前电路不匹配
	ErrKeyCacheCorrupt = errors.New("key cache corrupt")

	// ErrKeysNotInitialized 电路族的密钥尚未就绪
	ErrKeysNotInitialized = errors.New("keys not initialized")

	// ErrProvingFailed 证明生成失败
	ErrProvingFailed = errors.New("proving failed")

	// ErrSerialization 证明或密钥序列化失败
	ErrSerialization = errors.New("serialization failed")

	// ErrQueueFull 批量队列已满（Reject 溢出策略）
	ErrQueueFull = errors.New("batch queue full")

	// 以下错误由电路目录产生，在此重新导出便于调用方只依赖本包
	ErrWitnessTooLong    = circuits.ErrWitnessTooLong
	ErrInvalidCommitment = circuits.ErrInvalidCommitment
	ErrUnsupportedFamily = circuits.ErrUnsupportedFamily
)

// ============================================================================
//                               错误包装函数
// ============================================================================

// WrapSetupFailedError 包装可信设置失败错误
func WrapSetupFailedError(family types.CircuitFamily, err error) error {
	return fmt.Errorf("%w: family=%s, cause=%w", ErrSetupFailed, family, err)
}

// WrapKeyCacheCorruptError 包装密钥缓存损坏错误
func WrapKeyCacheCorruptError(path, reason string) error {
	return fmt.Errorf("%w: path=%s, reason=%s", ErrKeyCacheCorrupt, path, reason)
}

// WrapKeysNotInitializedError 包装密钥未就绪错误
func WrapKeysNotInitializedError(family types.CircuitFamily) error {
	return fmt.Errorf("%w: family=%s", ErrKeysNotInitialized, family)
}

// WrapProvingFailedError 包装证明生成失败错误
func WrapProvingFailedError(family types.CircuitFamily, err error) error {
	return fmt.Errorf("%w: family=%s, cause=%w", ErrProvingFailed, family, err)
}

// WrapSerializationError 包装序列化错误
func WrapSerializationError(what string, err error) error {
	return fmt.Errorf("%w: %s, cause=%w", ErrSerialization, what, err)
}

// WrapQueueFullError 包装队列已满错误
func WrapQueueFullError(maxSize int) error {
	return fmt.Errorf("%w: max=%d", ErrQueueFull, maxSize)
}
