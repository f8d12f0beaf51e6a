// Package attestation provides zero-knowledge attestation service interfaces.
package attestation

import (
	"context"

	"github.com/weisyn/zkattest/pkg/types"
)

// ════════════════════════════════════════════════════════════════════════════════════════════════
// 零知识证明服务接口（公共接口）
// ════════════════════════════════════════════════════════════════════════════════════════════════
//
// 📋 **接口说明**：
//   - 由 internal/core/attestation/zkproof 实现
//   - 消费者（启动路径、身份、vigil、存储）只依赖这些接口
//
// 🔒 **设计约束**：
//   - 只暴露 (电路族, 见证, 承诺, 证明) 这组通用类型
//   - 见证只出现在证明调用的参数里，不会出现在任何返回值中
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

// Prover 证明生成
type Prover interface {
	// Prove 为 (见证, 承诺) 生成 Groth16 证明
	//
	// ⚠️ 计算密集型操作，ctx 在开始证明前检查。
	Prove(ctx context.Context, family types.CircuitFamily, witness, commitment []byte) ([]byte, error)
}

// Verifier 证明验证
type Verifier interface {
	// Verify 验证证明；任何失败（包括格式错误）都返回 false
	Verify(family types.CircuitFamily, proof, commitment []byte) bool

	// Check 返回三态验证结果，用于日志和诊断
	Check(family types.CircuitFamily, proof, commitment []byte) types.VerifyResult
}

// BatchQueue 延迟证明队列
type BatchQueue interface {
	// Queue 入队一对 (见证, 承诺)
	Queue(witness, commitment []byte) error

	// IsReady 队列是否已满，可以批量证明
	IsReady() bool

	// Flush 取出并清空全部条目（入队顺序）
	Flush() []types.BatchItem

	// ProveBatch 取出全部条目并逐个证明，返回与入队顺序一致的证明
	ProveBatch(ctx context.Context) ([][]byte, error)

	// Status 返回 (当前长度, 容量)
	Status() (int, int)
}

// Manager 证明子系统门面
type Manager interface {
	Prover
	Verifier

	// Commit 在主机侧计算见证的公开承诺
	Commit(family types.CircuitFamily, witness []byte) ([]byte, error)

	// Attest 计算承诺并生成证明
	Attest(ctx context.Context, family types.CircuitFamily, witness []byte) (*types.Attestation, error)

	// Ready 电路族密钥是否就绪
	Ready(family types.CircuitFamily) bool
}
