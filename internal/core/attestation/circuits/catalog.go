// Package circuits 定义证明电路目录
//
// 🎯 **封闭电路目录**：每个电路族对应一个固定关系
//
//	PublicCommitment = H(Witness)
//
// 其中 H 是两种组合函数之一（滚动哈希或异或折叠），见证长度固定。
// 电路族的全部参数集中在 familySpecs 一张表中，新增电路族只需修改这一处。
package circuits

import (
	"github.com/weisyn/zkattest/pkg/types"
)

// Kind 组合函数类型
type Kind uint8

const (
	// KindRollingHash acc = acc*R + byte，在 BN254 标量域内计算
	KindRollingHash Kind = iota + 1

	// KindXorFold 所有见证字节异或，结果放在承诺的第 0 字节，其余字节为 0
	KindXorFold
)

// String 返回组合函数名称
func (k Kind) String() string {
	switch k {
	case KindRollingHash:
		return "rolling-hash"
	case KindXorFold:
		return "xor-fold"
	default:
		return "unknown"
	}
}

// Shape 公开输入形态
type Shape uint8

const (
	// ShapeScalar 单个标量域元素（大端序 32 字节）
	ShapeScalar Shape = iota + 1

	// ShapeBits 256 个比特，比特 8*i+j 为第 i 字节的第 j 位（低位在前）
	ShapeBits
)

const (
	// CommitmentSize 承诺固定 32 字节
	CommitmentSize = 32

	// RollingHashBase 滚动哈希乘数 R
	RollingHashBase = 31

	// bitsPerByte 每个见证字节在电路内分解的比特数
	bitsPerByte = 8
)

// FamilySpec 电路族规格
type FamilySpec struct {
	Family     types.CircuitFamily
	Kind       Kind
	WitnessLen int
	Shape      Shape
}

// PublicInputs 公开输入变量个数
func (s FamilySpec) PublicInputs() int {
	if s.Shape == ShapeBits {
		return CommitmentSize * bitsPerByte
	}
	return 1
}

var familySpecs = map[types.CircuitFamily]FamilySpec{
	types.GenesisPath:         {Family: types.GenesisPath, Kind: KindRollingHash, WitnessLen: 32, Shape: ShapeScalar},
	types.BiometricCommitment: {Family: types.BiometricCommitment, Kind: KindRollingHash, WitnessLen: 32, Shape: ShapeScalar},
	types.PolicyAction:        {Family: types.PolicyAction, Kind: KindRollingHash, WitnessLen: 64, Shape: ShapeScalar},
	types.DataIntegrity:       {Family: types.DataIntegrity, Kind: KindXorFold, WitnessLen: 64, Shape: ShapeBits},
}

// Lookup 查找电路族规格
func Lookup(family types.CircuitFamily) (FamilySpec, error) {
	spec, ok := familySpecs[family]
	if !ok {
		return FamilySpec{}, WrapUnsupportedFamilyError(family)
	}
	return spec, nil
}

// Families 返回目录中的全部电路族（固定顺序）
func Families() []types.CircuitFamily {
	families := make([]types.CircuitFamily, 0, len(familySpecs))
	for _, f := range types.AllCircuitFamilies() {
		if _, ok := familySpecs[f]; ok {
			families = append(families, f)
		}
	}
	return families
}
