package consumers

import (
	"bytes"

	"github.com/weisyn/zkattest/pkg/interfaces/attestation"
	"github.com/weisyn/zkattest/pkg/types"
)

// matchCommitment 检查证明携带的承诺是否由声明的见证算出
//
// 返回 ErrCommitmentMismatch 表示证明本身可能有效，但证明的不是声明的内容。
func matchCommitment(manager attestation.Manager, family types.CircuitFamily, witness []byte, att *types.Attestation) error {
	expected, err := manager.Commit(family, witness)
	if err != nil {
		return err
	}
	if !bytes.Equal(expected, att.Commitment) {
		return WrapCommitmentMismatchError(family)
	}
	return nil
}
