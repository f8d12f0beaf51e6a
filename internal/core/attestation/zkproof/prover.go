package zkproof

import (
	"bytes"
	"context"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"

	attestationconfig "github.com/weisyn/zkattest/internal/config/attestation"
	"github.com/weisyn/zkattest/internal/core/attestation/circuits"
	"github.com/weisyn/zkattest/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/zkattest/pkg/types"
)

// Prover ZK证明生成器
//
// 🎯 **专门职责**：为 (电路族, 见证, 公开承诺) 生成 Groth16 证明
//
// ⚠️ 日志只记录见证长度和耗时，不记录见证内容。
// 每次调用使用 gnark 内部从 crypto/rand 取得的新随机数，同一输入的两次证明字节不同。
type Prover struct {
	logger log.Logger
	keys   *KeyStore
	mode   circuits.NormalizeMode
}

// NewProver 创建证明生成器
func NewProver(logger log.Logger, keys *KeyStore, options *attestationconfig.AttestationOptions) *Prover {
	mode := circuits.RejectOverlong
	if options != nil && options.LegacyTruncate {
		mode = circuits.LegacyTruncate
	}
	return &Prover{
		logger: logger,
		keys:   keys,
		mode:   mode,
	}
}

// NormalizeMode 返回证明器使用的见证规整方式，主机侧计算承诺时必须保持一致
func (p *Prover) NormalizeMode() circuits.NormalizeMode {
	return p.mode
}

// Prove 生成零知识证明
//
// 错误：
//   - ErrKeysNotInitialized：电路族密钥未就绪
//   - ErrWitnessTooLong / ErrInvalidCommitment：输入不合法
//   - ErrProvingFailed：见证与承诺不满足关系、ctx 已取消或 gnark 内部错误
//   - ErrSerialization：证明序列化失败
func (p *Prover) Prove(ctx context.Context, family types.CircuitFamily, witness, commitment []byte) ([]byte, error) {
	proofBytes, err := p.prove(ctx, family, witness, commitment)
	if err != nil {
		proofsTotal.WithLabelValues(family.String(), "failure").Inc()
		return nil, err
	}
	proofsTotal.WithLabelValues(family.String(), "success").Inc()
	return proofBytes, nil
}

func (p *Prover) prove(ctx context.Context, family types.CircuitFamily, witness, commitment []byte) ([]byte, error) {
	startTime := time.Now()

	pair, err := p.keys.Keys(family)
	if err != nil {
		return nil, err
	}

	assignment, err := circuits.Build(family, witness, commitment, p.mode)
	if err != nil {
		return nil, err
	}

	fullWitness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return nil, WrapProvingFailedError(family, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, WrapProvingFailedError(family, err)
	}

	proof, err := groth16.Prove(pair.CS, pair.PK, fullWitness)
	if err != nil {
		p.logger.Debugf("证明生成失败: family=%s, witness_len=%d, err=%v", family, len(witness), err)
		return nil, WrapProvingFailedError(family, err)
	}

	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, WrapSerializationError("proof", err)
	}

	elapsed := time.Since(startTime)
	provingDuration.WithLabelValues(family.String()).Observe(elapsed.Seconds())
	p.logger.Debugf("ZK证明生成完成: family=%s, witness_len=%d, 耗时=%v, 大小=%d字节", family, len(witness), elapsed, buf.Len())

	return buf.Bytes(), nil
}
