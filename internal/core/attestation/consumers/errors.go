// Package consumers 证明子系统的消费者适配器
//
// 每个消费者选择一个电路族，约定见证的构造方式，并用同一套规整规则在主机侧计算承诺：
//   - 启动路径：见证为启动路径标签，滚动哈希承诺
//   - 身份：见证为生物特征样本前 32 字节，滚动哈希承诺；DID 单独派生
//   - vigil：见证为动作字符串，滚动哈希承诺；验证失败时罚没
//   - 存储：见证为数据块（不足 64 字节补零，超长拒绝），异或折叠承诺，经批量队列证明
package consumers

import (
	"errors"
	"fmt"

	"github.com/weisyn/zkattest/pkg/types"
)

var (
	// ErrUnknownBootLabel 未登记的启动路径标签
	ErrUnknownBootLabel = errors.New("未知的启动路径标签")

	// ErrEmptySample 生物特征样本为空
	ErrEmptySample = errors.New("生物特征样本为空")

	// ErrCommitmentMismatch 证明携带的承诺与声明的见证不符
	ErrCommitmentMismatch = errors.New("承诺与声明内容不符")
)

// WrapCommitmentMismatchError 包装承诺不符错误
func WrapCommitmentMismatchError(family types.CircuitFamily) error {
	return fmt.Errorf("%w: family=%s", ErrCommitmentMismatch, family)
}

// WrapUnknownBootLabelError 包装未知启动标签错误
func WrapUnknownBootLabelError(label string) error {
	return fmt.Errorf("%w: %q", ErrUnknownBootLabel, label)
}
