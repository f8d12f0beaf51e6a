package circuits

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/weisyn/zkattest/pkg/types"
)

// HostCommitment 在主机侧计算见证的公开承诺
//
// 与电路使用同一个 Normalize 和同一组合函数，结果总是 32 字节。
func HostCommitment(family types.CircuitFamily, witness []byte, mode NormalizeMode) ([]byte, error) {
	spec, err := Lookup(family)
	if err != nil {
		return nil, err
	}
	normalized, err := Normalize(family, witness, mode)
	if err != nil {
		return nil, err
	}

	switch spec.Kind {
	case KindRollingHash:
		return rollingHash(normalized), nil
	case KindXorFold:
		return xorFold(normalized), nil
	default:
		return nil, WrapUnsupportedFamilyError(family)
	}
}

// rollingHash 在 BN254 标量域内计算 acc = acc*R + b，返回大端序规范编码
func rollingHash(witness []byte) []byte {
	var acc, base, b fr.Element
	base.SetUint64(RollingHashBase)
	for _, x := range witness {
		acc.Mul(&acc, &base)
		b.SetUint64(uint64(x))
		acc.Add(&acc, &b)
	}
	out := acc.Bytes()
	return out[:]
}

// xorFold 异或折叠，结果在第 0 字节
func xorFold(witness []byte) []byte {
	out := make([]byte, CommitmentSize)
	for _, x := range witness {
		out[0] ^= x
	}
	return out
}

// ValidateCommitment 检查承诺的长度和编码
//
// 标量形态必须是小于域模数的规范编码；比特形态接受任意 32 字节，
// 不满足折叠形状（高 31 字节非零）的承诺由电路本身拒绝。
func ValidateCommitment(family types.CircuitFamily, commitment []byte) error {
	spec, err := Lookup(family)
	if err != nil {
		return err
	}
	if len(commitment) != CommitmentSize {
		return WrapInvalidCommitmentError(family, "commitment must be 32 bytes")
	}
	if spec.Shape == ShapeScalar {
		var e fr.Element
		if err := e.SetBytesCanonical(commitment); err != nil {
			return WrapInvalidCommitmentError(family, "non-canonical scalar")
		}
	}
	return nil
}
