package consumers

import (
	"context"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/weisyn/zkattest/internal/core/attestation/circuits"
	"github.com/weisyn/zkattest/pkg/interfaces/attestation"
	"github.com/weisyn/zkattest/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/zkattest/pkg/types"
)

// DIDPrefix 去中心化身份标识前缀
const DIDPrefix = "did:wes:"

// DeriveDID 由完整生物特征样本派生 DID
//
// DID = "did:wes:" + base58(keccak256(sample))，与电路无关。
func DeriveDID(sample []byte) string {
	h := sha3.NewLegacyKeccak256()
	h.Write(sample)
	return DIDPrefix + base58.Encode(h.Sum(nil))
}

// Identity 身份登记结果
type Identity struct {
	DID         string             `json:"did"`
	Attestation *types.Attestation `json:"attestation"`
}

// IdentityAttestor 生物特征身份证明
type IdentityAttestor struct {
	logger  log.Logger
	manager attestation.Manager
}

// NewIdentityAttestor 创建身份证明器
func NewIdentityAttestor(logger log.Logger, manager attestation.Manager) *IdentityAttestor {
	return &IdentityAttestor{logger: logger, manager: manager}
}

// identityWitness 取样本前 32 字节（不足部分由规整补零）
func identityWitness(sample []byte) []byte {
	spec, _ := circuits.Lookup(types.BiometricCommitment)
	if len(sample) > spec.WitnessLen {
		return sample[:spec.WitnessLen]
	}
	return sample
}

// Enroll 登记身份：派生 DID 并证明持有样本
func (a *IdentityAttestor) Enroll(ctx context.Context, sample []byte) (*Identity, error) {
	if len(sample) == 0 {
		return nil, ErrEmptySample
	}
	att, err := a.manager.Attest(ctx, types.BiometricCommitment, identityWitness(sample))
	if err != nil {
		return nil, err
	}
	did := DeriveDID(sample)
	a.logger.Infof("身份登记完成: did=%s", did)
	return &Identity{DID: did, Attestation: att}, nil
}

// Authenticate 用新采集的样本验证身份证明
func (a *IdentityAttestor) Authenticate(sample []byte, identity *Identity) bool {
	if len(sample) == 0 || identity == nil || identity.Attestation == nil {
		return false
	}
	att := identity.Attestation
	if att.Family != types.BiometricCommitment || DeriveDID(sample) != identity.DID {
		return false
	}
	if err := matchCommitment(a.manager, types.BiometricCommitment, identityWitness(sample), att); err != nil {
		return false
	}
	return a.manager.Verify(types.BiometricCommitment, att.Proof, att.Commitment)
}
