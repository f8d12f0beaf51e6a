package circuits

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/zkattest/pkg/types"
)

// ============================================================================
// 电路目录测试
// ============================================================================

// TestLookup 测试电路族规格表
func TestLookup(t *testing.T) {
	cases := []struct {
		family     types.CircuitFamily
		kind       Kind
		witnessLen int
		publics    int
	}{
		{types.GenesisPath, KindRollingHash, 32, 1},
		{types.BiometricCommitment, KindRollingHash, 32, 1},
		{types.PolicyAction, KindRollingHash, 64, 1},
		{types.DataIntegrity, KindXorFold, 64, 256},
	}
	for _, tc := range cases {
		spec, err := Lookup(tc.family)
		require.NoError(t, err)
		require.Equal(t, tc.kind, spec.Kind, tc.family.String())
		require.Equal(t, tc.witnessLen, spec.WitnessLen, tc.family.String())
		require.Equal(t, tc.publics, spec.PublicInputs(), tc.family.String())
	}

	_, err := Lookup(types.CircuitFamily(99))
	require.True(t, errors.Is(err, ErrUnsupportedFamily))
	require.Len(t, Families(), 4)
}

// TestNormalize 测试见证规整
func TestNormalize(t *testing.T) {
	out, err := Normalize(types.GenesisPath, []byte("genesis"), RejectOverlong)
	require.NoError(t, err)
	require.Len(t, out, 32)
	require.Equal(t, []byte("genesis"), out[:7])
	require.Equal(t, make([]byte, 25), out[7:])

	empty, err := Normalize(types.DataIntegrity, nil, RejectOverlong)
	require.NoError(t, err)
	require.Equal(t, make([]byte, 64), empty)

	long := bytes.Repeat([]byte{0xAB}, 40)
	_, err = Normalize(types.GenesisPath, long, RejectOverlong)
	require.True(t, errors.Is(err, ErrWitnessTooLong))

	truncated, err := Normalize(types.GenesisPath, long, LegacyTruncate)
	require.NoError(t, err)
	require.Equal(t, long[:32], truncated)

	// 返回值不与输入共享底层数组
	in := []byte{1, 2, 3}
	out, err = Normalize(types.GenesisPath, in, RejectOverlong)
	require.NoError(t, err)
	out[0] = 9
	require.Equal(t, byte(1), in[0])
}

// ============================================================================
// 主机侧哈希测试
// ============================================================================

// referenceRollingHash 用 big.Int 独立计算滚动哈希
func referenceRollingHash(witness []byte) []byte {
	modulus := fr.Modulus()
	acc := new(big.Int)
	for _, b := range witness {
		acc.Mul(acc, big.NewInt(RollingHashBase))
		acc.Add(acc, big.NewInt(int64(b)))
		acc.Mod(acc, modulus)
	}
	out := make([]byte, CommitmentSize)
	return acc.FillBytes(out)
}

// TestHostCommitmentRollingHash 测试滚动哈希与参考实现一致（含域回绕的 64 字节见证）
func TestHostCommitmentRollingHash(t *testing.T) {
	witnesses := map[types.CircuitFamily][]byte{
		types.GenesisPath:  []byte("safe-mode"),
		types.PolicyAction: []byte("DROP TABLE users; -- policy action"),
	}
	for family, witness := range witnesses {
		got, err := HostCommitment(family, witness, RejectOverlong)
		require.NoError(t, err)

		normalized, _ := Normalize(family, witness, RejectOverlong)
		require.Equal(t, referenceRollingHash(normalized), got, family.String())
		require.NoError(t, ValidateCommitment(family, got))
	}

	full := bytes.Repeat([]byte{0xFF}, 64)
	got, err := HostCommitment(types.PolicyAction, full, RejectOverlong)
	require.NoError(t, err)
	require.Equal(t, referenceRollingHash(full), got)
}

// TestHostCommitmentXorFold 测试异或折叠
func TestHostCommitmentXorFold(t *testing.T) {
	got, err := HostCommitment(types.DataIntegrity, []byte{0x01, 0x02, 0x04, 0xF0}, RejectOverlong)
	require.NoError(t, err)

	want := make([]byte, CommitmentSize)
	want[0] = 0xF7
	require.Equal(t, want, got)
}

// TestValidateCommitment 测试承诺校验
func TestValidateCommitment(t *testing.T) {
	require.True(t, errors.Is(ValidateCommitment(types.GenesisPath, make([]byte, 31)), ErrInvalidCommitment))
	require.True(t, errors.Is(ValidateCommitment(types.DataIntegrity, make([]byte, 33)), ErrInvalidCommitment))

	// 全 0xFF 大于 BN254 标量域模数
	require.True(t, errors.Is(ValidateCommitment(types.GenesisPath, bytes.Repeat([]byte{0xFF}, 32)), ErrInvalidCommitment))

	// 比特形态接受任意 32 字节
	require.NoError(t, ValidateCommitment(types.DataIntegrity, bytes.Repeat([]byte{0xFF}, 32)))
}

// ============================================================================
// 电路约束测试
// ============================================================================

// TestCircuitSolved 测试每个电路族的诚实赋值满足约束
func TestCircuitSolved(t *testing.T) {
	witnesses := map[types.CircuitFamily][]byte{
		types.GenesisPath:         []byte("genesis"),
		types.BiometricCommitment: bytes.Repeat([]byte{0x5A}, 32),
		types.PolicyAction:        []byte("rm -rf /var/lib/vigil"),
		types.DataIntegrity:       bytes.Repeat([]byte{0x11, 0x22, 0x33}, 21),
	}
	for family, witness := range witnesses {
		commitment, err := HostCommitment(family, witness, RejectOverlong)
		require.NoError(t, err)

		placeholder, err := Placeholder(family)
		require.NoError(t, err)
		assignment, err := Build(family, witness, commitment, RejectOverlong)
		require.NoError(t, err)

		require.NoError(t, test.IsSolved(placeholder, assignment, ecc.BN254.ScalarField()), family.String())
	}
}

// TestCircuitRejectsWrongCommitment 测试错误承诺不满足约束
func TestCircuitRejectsWrongCommitment(t *testing.T) {
	commitment, err := HostCommitment(types.GenesisPath, []byte("recovery"), RejectOverlong)
	require.NoError(t, err)

	placeholder, _ := Placeholder(types.GenesisPath)
	assignment, err := Build(types.GenesisPath, []byte("genesis"), commitment, RejectOverlong)
	require.NoError(t, err)
	require.Error(t, test.IsSolved(placeholder, assignment, ecc.BN254.ScalarField()))
}

// TestXorFoldRejectsHighBytes 测试折叠承诺高位字节非零时不满足约束
func TestXorFoldRejectsHighBytes(t *testing.T) {
	witness := []byte{0x0F, 0xF0}
	commitment, err := HostCommitment(types.DataIntegrity, witness, RejectOverlong)
	require.NoError(t, err)
	commitment[5] = 0x01

	placeholder, _ := Placeholder(types.DataIntegrity)
	assignment, err := Build(types.DataIntegrity, witness, commitment, RejectOverlong)
	require.NoError(t, err)
	require.Error(t, test.IsSolved(placeholder, assignment, ecc.BN254.ScalarField()))
}

// TestCircuitRangeCheck 测试见证字节超过 8 比特时不满足约束
func TestCircuitRangeCheck(t *testing.T) {
	placeholder, _ := Placeholder(types.GenesisPath)

	// [..., 0, 256] 与 [..., 1, 225] 的滚动哈希相同，范围检查必须拒绝 256
	honest := make([]byte, 32)
	honest[30], honest[31] = 1, 225
	commitment, err := HostCommitment(types.GenesisPath, honest, RejectOverlong)
	require.NoError(t, err)

	forged, err := PublicAssignment(types.GenesisPath, commitment)
	require.NoError(t, err)
	forged.Witness[31] = 256
	require.Error(t, test.IsSolved(placeholder, forged, ecc.BN254.ScalarField()))
}

// TestCompile 测试所有电路族可以编译
func TestCompile(t *testing.T) {
	for _, family := range Families() {
		ccs, err := Compile(family)
		require.NoError(t, err, family.String())
		require.Greater(t, ccs.GetNbConstraints(), 0)
	}

	_, err := Compile(types.CircuitFamily(0))
	require.True(t, errors.Is(err, ErrUnsupportedFamily))
}
