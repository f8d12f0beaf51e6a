package zkproof

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	attestationconfig "github.com/weisyn/zkattest/internal/config/attestation"
	logimpl "github.com/weisyn/zkattest/internal/core/infrastructure/log"
	"github.com/weisyn/zkattest/pkg/types"
)

// 可信设置耗时，包内测试共享一份内存密钥
var (
	sharedKeysOnce sync.Once
	sharedKeys     *KeyStore
	sharedKeysErr  error
)

func memoryOptions() *attestationconfig.AttestationOptions {
	opts := attestationconfig.New(&types.UserAttestationConfig{KeyDir: types.StringPtr("")}).GetOptions()
	return opts
}

func testKeyStore(t *testing.T) *KeyStore {
	t.Helper()
	sharedKeysOnce.Do(func() {
		sharedKeys = NewKeyStore(logimpl.NewNop(), memoryOptions())
		sharedKeysErr = sharedKeys.InitAll(context.Background())
	})
	require.NoError(t, sharedKeysErr)
	return sharedKeys
}

func testProverVerifier(t *testing.T) (*Prover, *Verifier) {
	t.Helper()
	keys := testKeyStore(t)
	return NewProver(logimpl.NewNop(), keys, memoryOptions()), NewVerifier(logimpl.NewNop(), keys, nil)
}

func testManager(t *testing.T) *Manager {
	t.Helper()
	keys := testKeyStore(t)
	prover, verifier := testProverVerifier(t)
	return NewManager(logimpl.NewNop(), keys, prover, verifier)
}
