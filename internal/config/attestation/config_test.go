package attestation

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/weisyn/zkattest/pkg/types"
)

// TestDefaults 测试默认配置
func TestDefaults(t *testing.T) {
	cfg := New(nil)
	require.NoError(t, cfg.Validate())

	opts := cfg.GetOptions()
	require.Equal(t, "bn254", opts.Curve)
	require.Equal(t, 10, opts.BatchMaxSize)
	require.Equal(t, OverflowDropOldest, opts.OverflowPolicy)
	require.False(t, opts.LegacyTruncate)
	require.Equal(t, 10*time.Minute, opts.VerifyCacheLifeWindow)
}

// TestUserOverrides 测试用户配置覆盖
func TestUserOverrides(t *testing.T) {
	dir := "/var/lib/attest"
	size := 3
	policy := OverflowReject
	truncate := true
	window := "30s"
	slash := uint64(7)

	cfg := New(&types.UserAttestationConfig{
		KeyDir:                &dir,
		BatchMaxSize:          &size,
		OverflowPolicy:        &policy,
		LegacyTruncate:        &truncate,
		VerifyCacheLifeWindow: &window,
		SlashAmount:           &slash,
	})
	require.NoError(t, cfg.Validate())

	opts := cfg.GetOptions()
	require.Equal(t, 3, opts.BatchMaxSize)
	require.Equal(t, OverflowReject, opts.OverflowPolicy)
	require.True(t, opts.LegacyTruncate)
	require.Equal(t, 30*time.Second, opts.VerifyCacheLifeWindow)
	require.Equal(t, uint64(7), opts.SlashAmount)
	require.Equal(t, filepath.Join(dir, "policy-action.pk"), opts.KeyCachePath(types.PolicyAction))
}

// TestValidateRejects 测试非法配置
func TestValidateRejects(t *testing.T) {
	zero := 0
	require.Error(t, New(&types.UserAttestationConfig{BatchMaxSize: &zero}).Validate())

	policy := "drop_newest"
	require.Error(t, New(&types.UserAttestationConfig{OverflowPolicy: &policy}).Validate())

	curve := "bls12-381"
	require.Error(t, New(&types.UserAttestationConfig{Curve: &curve}).Validate())
}

// TestMemoryOnlyKeyDir 测试空目录表示仅内存
func TestMemoryOnlyKeyDir(t *testing.T) {
	empty := ""
	opts := New(&types.UserAttestationConfig{KeyDir: &empty}).GetOptions()
	require.Empty(t, opts.KeyCachePath(types.GenesisPath))
}
