package circuits

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	"github.com/weisyn/zkattest/pkg/types"
)

// AttestationCircuit 证明电路
//
// 🏗️ **电路结构**：
//   - Witness：私有输入，每个元素是一个见证字节（电路内做 8 比特范围检查）
//   - Commitment：公开输入，标量形态为 1 个变量，比特形态为 256 个变量
//
// Family 不参与电路的变量布局，只用于选择约束。
type AttestationCircuit struct {
	Family types.CircuitFamily `gnark:"-"`

	Witness    []frontend.Variable
	Commitment []frontend.Variable `gnark:",public"`
}

// Define 定义电路约束
func (c *AttestationCircuit) Define(api frontend.API) error {
	spec, err := Lookup(c.Family)
	if err != nil {
		return err
	}
	if len(c.Witness) != spec.WitnessLen {
		return fmt.Errorf("电路见证长度不匹配: family=%s, expected=%d, actual=%d", c.Family, spec.WitnessLen, len(c.Witness))
	}
	if len(c.Commitment) != spec.PublicInputs() {
		return fmt.Errorf("电路公开输入个数不匹配: family=%s, expected=%d, actual=%d", c.Family, spec.PublicInputs(), len(c.Commitment))
	}

	switch spec.Kind {
	case KindRollingHash:
		c.defineRollingHash(api)
	case KindXorFold:
		c.defineXorFold(api)
	default:
		return WrapUnsupportedFamilyError(c.Family)
	}
	return nil
}

// defineRollingHash acc = acc*R + b，最终 acc 等于标量承诺
func (c *AttestationCircuit) defineRollingHash(api frontend.API) {
	var acc frontend.Variable = 0
	for _, b := range c.Witness {
		// 范围检查：ToBinary 约束 b 可由 8 个比特重组
		api.ToBinary(b, bitsPerByte)
		acc = api.Add(api.Mul(acc, RollingHashBase), b)
	}
	api.AssertIsEqual(acc, c.Commitment[0])
}

// defineXorFold 所有见证字节按位异或，结果等于承诺第 0 字节，其余承诺比特为 0
func (c *AttestationCircuit) defineXorFold(api frontend.API) {
	fold := api.ToBinary(c.Witness[0], bitsPerByte)
	for _, b := range c.Witness[1:] {
		bits := api.ToBinary(b, bitsPerByte)
		for j := range fold {
			fold[j] = api.Xor(fold[j], bits[j])
		}
	}

	for i, bit := range c.Commitment {
		if i < bitsPerByte {
			api.AssertIsEqual(bit, fold[i])
		} else {
			api.AssertIsEqual(bit, 0)
		}
	}
}

// Placeholder 返回用于编译和 Setup 的电路实例（只分配变量槽位）
func Placeholder(family types.CircuitFamily) (*AttestationCircuit, error) {
	spec, err := Lookup(family)
	if err != nil {
		return nil, err
	}
	return &AttestationCircuit{
		Family:     family,
		Witness:    make([]frontend.Variable, spec.WitnessLen),
		Commitment: make([]frontend.Variable, spec.PublicInputs()),
	}, nil
}

// Compile 编译电路族的约束系统（BN254 + R1CS）
func Compile(family types.CircuitFamily) (constraint.ConstraintSystem, error) {
	placeholder, err := Placeholder(family)
	if err != nil {
		return nil, err
	}
	return frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, placeholder)
}

// Build 构造完整赋值（见证 + 承诺）
//
// 见证先经过 Normalize，承诺先经过 ValidateCommitment。
func Build(family types.CircuitFamily, witness, commitment []byte, mode NormalizeMode) (*AttestationCircuit, error) {
	normalized, err := Normalize(family, witness, mode)
	if err != nil {
		return nil, err
	}
	if err := ValidateCommitment(family, commitment); err != nil {
		return nil, err
	}

	assignment, err := PublicAssignment(family, commitment)
	if err != nil {
		return nil, err
	}
	for i, b := range normalized {
		assignment.Witness[i] = uint64(b)
	}
	return assignment, nil
}

// PublicAssignment 构造只含公开承诺的赋值，私有槽位填 0，用于构造公开见证
func PublicAssignment(family types.CircuitFamily, commitment []byte) (*AttestationCircuit, error) {
	spec, err := Lookup(family)
	if err != nil {
		return nil, err
	}
	if err := ValidateCommitment(family, commitment); err != nil {
		return nil, err
	}

	assignment, _ := Placeholder(family)
	for i := range assignment.Witness {
		assignment.Witness[i] = 0
	}

	switch spec.Shape {
	case ShapeScalar:
		assignment.Commitment[0] = new(big.Int).SetBytes(commitment)
	case ShapeBits:
		for i := range assignment.Commitment {
			assignment.Commitment[i] = uint64((commitment[i/bitsPerByte] >> (i % bitsPerByte)) & 1)
		}
	}
	return assignment, nil
}
