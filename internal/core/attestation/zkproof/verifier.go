package zkproof

import (
	"bytes"
	"errors"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"

	"github.com/weisyn/zkattest/internal/core/attestation/circuits"
	"github.com/weisyn/zkattest/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/zkattest/pkg/types"
)

// Verifier ZK证明验证器
//
// 无状态；只读取已准备好的 VerifyingKey，可并发调用。
// 对外只暴露通过/不通过，不报告见证的哪一部分不匹配。
type Verifier struct {
	logger log.Logger
	keys   *KeyStore
	cache  *VerifyCache // 可选
}

// NewVerifier 创建验证器，cache 为 nil 时不缓存结果
func NewVerifier(logger log.Logger, keys *KeyStore, cache *VerifyCache) *Verifier {
	return &Verifier{
		logger: logger,
		keys:   keys,
		cache:  cache,
	}
}

// Verify 验证证明，仅 Valid 返回 true
func (v *Verifier) Verify(family types.CircuitFamily, proof, commitment []byte) bool {
	return v.Check(family, proof, commitment).OK()
}

// Check 验证证明并返回三态结果
//
//   - Malformed：证明无法解码、有多余字节、承诺编码错误或解码时 panic
//   - Invalid：证明格式正确但不成立，或电路族密钥未就绪
//   - 未知电路族按 Malformed 处理
//   - Valid：证明成立
func (v *Verifier) Check(family types.CircuitFamily, proof, commitment []byte) (result types.VerifyResult) {
	defer func() {
		if r := recover(); r != nil {
			v.logger.Warnf("验证过程中发生 panic，按格式错误处理: family=%s, panic=%v", family, r)
			result = types.VerifyMalformed
		}
		verificationsTotal.WithLabelValues(family.String(), result.String()).Inc()
	}()

	pair, err := v.keys.Keys(family)
	if errors.Is(err, circuits.ErrUnsupportedFamily) {
		return types.VerifyMalformed
	}
	if err != nil {
		v.logger.Warnf("验证失败，密钥不可用: family=%s, err=%v", family, err)
		return types.VerifyInvalid
	}

	if err := circuits.ValidateCommitment(family, commitment); err != nil {
		v.logger.Debugf("承诺格式错误: %v", err)
		return types.VerifyMalformed
	}

	if v.cache != nil {
		if cached, ok := v.cache.Get(family, proof, commitment); ok {
			verifyCacheHits.Inc()
			return cached
		}
	}

	groth16Proof := groth16.NewProof(ecc.BN254)
	r := bytes.NewReader(proof)
	if _, err := groth16Proof.ReadFrom(r); err != nil {
		v.logger.Debugf("证明解码失败: family=%s, proof_len=%d, err=%v", family, len(proof), err)
		return types.VerifyMalformed
	}
	if r.Len() != 0 {
		v.logger.Debugf("证明含多余字节: family=%s, trailing=%d", family, r.Len())
		return types.VerifyMalformed
	}

	assignment, err := circuits.PublicAssignment(family, commitment)
	if err != nil {
		return types.VerifyMalformed
	}
	publicWitness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return types.VerifyMalformed
	}

	result = types.VerifyValid
	if err := groth16.Verify(groth16Proof, pair.VK, publicWitness); err != nil {
		result = types.VerifyInvalid
	}

	if v.cache != nil {
		if err := v.cache.Put(family, proof, commitment, result); err != nil {
			v.logger.Debugf("写入验证结果缓存失败: %v", err)
		}
	}
	return result
}
