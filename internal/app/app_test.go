package app

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weisyn/zkattest/internal/core/attestation/zkproof"
	"github.com/weisyn/zkattest/pkg/types"
)

type recordingLedger struct {
	mu      sync.Mutex
	slashed map[string]uint64
}

func (l *recordingLedger) Slash(principal string, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.slashed[principal] += amount
	return nil
}

func testAppConfig(keyDir string) *types.AppConfig {
	return &types.AppConfig{
		Log: &types.UserLogConfig{Level: types.StringPtr("error")},
		Attestation: &types.UserAttestationConfig{
			KeyDir:      types.StringPtr(keyDir),
			SlashAmount: func() *uint64 { v := uint64(7); return &v }(),
		},
	}
}

// TestStartPersistsKeys 测试启动生成密钥缓存，再次启动从缓存加载
func TestStartPersistsKeys(t *testing.T) {
	keyDir := t.TempDir()
	ledger := &recordingLedger{slashed: map[string]uint64{}}

	a, err := Start(context.Background(), WithAppConfig(testAppConfig(keyDir)), WithLedger(ledger))
	require.NoError(t, err)

	for _, family := range types.AllCircuitFamilies() {
		require.True(t, a.Manager().Ready(family))
		_, err := os.Stat(filepath.Join(keyDir, family.String()+".pk"))
		require.NoError(t, err)
	}

	att, err := a.Consumers().Boot.AttestBootPath(context.Background(), "genesis")
	require.NoError(t, err)

	// vigil 罚没数额来自配置
	verdict, err := a.Consumers().Vigil.Enforce("mallory", "withdraw", nil)
	require.NoError(t, err)
	require.True(t, verdict.Slashed)
	require.Equal(t, uint64(7), ledger.slashed["mallory"])

	require.NoError(t, a.Stop())

	b, err := Start(context.Background(), WithAppConfig(testAppConfig(keyDir)))
	require.NoError(t, err)
	defer func() { require.NoError(t, b.Stop()) }()

	pair, err := b.KeyStore().Keys(types.GenesisPath)
	require.NoError(t, err)
	require.Equal(t, zkproof.KeySourceCache, pair.Source)

	require.True(t, b.Consumers().Boot.VerifyBootPath("genesis", att))
}

// TestStartInvalidConfig 测试非法配置阻止启动
func TestStartInvalidConfig(t *testing.T) {
	cfg := testAppConfig("")
	cfg.Attestation.BatchMaxSize = types.IntPtr(0)

	_, err := Start(context.Background(), WithAppConfig(cfg))
	require.Error(t, err)
}

// TestOptionsOverrides 测试命令行覆盖项
func TestOptionsOverrides(t *testing.T) {
	opts := newOptions(WithKeyDir("/tmp/keys"), WithLogLevel("debug"))
	opts.applyOverrides()

	cfg := opts.GetAppConfig()
	require.Equal(t, "/tmp/keys", *cfg.Attestation.KeyDir)
	require.Equal(t, "debug", *cfg.Log.Level)
}

// TestConfigPathFromEnv 测试环境变量优先
func TestConfigPathFromEnv(t *testing.T) {
	t.Setenv(configPathEnv, "/etc/zkattest.json")
	require.Equal(t, "/etc/zkattest.json", getConfigFilePath("configs/attestation.json"))

	t.Setenv(configPathEnv, "")
	require.Equal(t, "configs/attestation.json", getConfigFilePath("configs/attestation.json"))
}

// TestOptionsEnableAPI 测试启用HTTP API
func TestOptionsEnableAPI(t *testing.T) {
	opts := newOptions(WithAPI(), WithHTTPPort(0))
	opts.applyOverrides()

	cfg := opts.GetAppConfig()
	require.True(t, *cfg.API.HTTPEnabled)
	require.Equal(t, 0, *cfg.API.HTTPPort)

	opts = newOptions(WithHTTPPort(9000))
	opts.applyOverrides()
	require.Nil(t, opts.GetAppConfig().API)
}

// TestLoadAppConfigFallback 测试配置文件缺失时使用嵌入配置
func TestLoadAppConfigFallback(t *testing.T) {
	t.Setenv(configPathEnv, "")
	embedded := []byte(`{"attestation":{"batch_max_size":3}}`)

	opts := newOptions(WithConfigFile(filepath.Join(t.TempDir(), "missing.json")), WithEmbeddedConfig(embedded))
	cfg, err := loadAppConfig(opts)
	require.NoError(t, err)
	require.Equal(t, 3, *cfg.Attestation.BatchMaxSize)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"attestation":{"batch_max_size":5}}`), 0o644))
	opts = newOptions(WithConfigFile(path), WithEmbeddedConfig(embedded))
	cfg, err = loadAppConfig(opts)
	require.NoError(t, err)
	require.Equal(t, 5, *cfg.Attestation.BatchMaxSize)
}
