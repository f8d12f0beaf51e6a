package zkproof

import (
	"context"
	"time"

	"github.com/weisyn/zkattest/internal/core/attestation/circuits"
	"github.com/weisyn/zkattest/pkg/interfaces/attestation"
	"github.com/weisyn/zkattest/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/zkattest/pkg/types"
)

// Manager 证明子系统门面
//
// 组合 KeyStore、Prover、Verifier，并提供主机侧承诺计算。
// 消费者只依赖 attestation.Manager 接口。
type Manager struct {
	logger   log.Logger
	keys     *KeyStore
	prover   *Prover
	verifier *Verifier
}

var _ attestation.Manager = (*Manager)(nil)

// NewManager 创建证明子系统门面
func NewManager(logger log.Logger, keys *KeyStore, prover *Prover, verifier *Verifier) *Manager {
	return &Manager{
		logger:   logger,
		keys:     keys,
		prover:   prover,
		verifier: verifier,
	}
}

// Init 初始化全部电路族密钥
func (m *Manager) Init(ctx context.Context) error {
	start := time.Now()
	if err := m.keys.InitAll(ctx); err != nil {
		return err
	}
	m.logger.Infof("证明子系统初始化完成: families=%d, 耗时=%v", len(circuits.Families()), time.Since(start))
	return nil
}

// Ready 电路族密钥是否就绪
func (m *Manager) Ready(family types.CircuitFamily) bool {
	return m.keys.Ready(family)
}

// Commit 在主机侧计算公开承诺，见证规整方式与证明器一致
func (m *Manager) Commit(family types.CircuitFamily, witness []byte) ([]byte, error) {
	return circuits.HostCommitment(family, witness, m.prover.NormalizeMode())
}

// Prove 生成证明
func (m *Manager) Prove(ctx context.Context, family types.CircuitFamily, witness, commitment []byte) ([]byte, error) {
	return m.prover.Prove(ctx, family, witness, commitment)
}

// Attest 计算承诺并生成证明
func (m *Manager) Attest(ctx context.Context, family types.CircuitFamily, witness []byte) (*types.Attestation, error) {
	commitment, err := m.Commit(family, witness)
	if err != nil {
		return nil, err
	}
	proof, err := m.prover.Prove(ctx, family, witness, commitment)
	if err != nil {
		return nil, err
	}
	return &types.Attestation{
		Family:     family,
		Commitment: commitment,
		Proof:      proof,
		CreatedAt:  time.Now(),
	}, nil
}

// Verify 验证证明
func (m *Manager) Verify(family types.CircuitFamily, proof, commitment []byte) bool {
	return m.verifier.Verify(family, proof, commitment)
}

// Check 返回三态验证结果
func (m *Manager) Check(family types.CircuitFamily, proof, commitment []byte) types.VerifyResult {
	return m.verifier.Check(family, proof, commitment)
}
