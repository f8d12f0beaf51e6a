package consumers

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	attestationconfig "github.com/weisyn/zkattest/internal/config/attestation"
	"github.com/weisyn/zkattest/internal/core/attestation/zkproof"
	logimpl "github.com/weisyn/zkattest/internal/core/infrastructure/log"
	"github.com/weisyn/zkattest/pkg/types"
)

var (
	managerOnce sync.Once
	manager     *zkproof.Manager
	managerErr  error
)

func testOptions() *attestationconfig.AttestationOptions {
	return attestationconfig.New(&types.UserAttestationConfig{KeyDir: types.StringPtr("")}).GetOptions()
}

func testManager(t *testing.T) *zkproof.Manager {
	t.Helper()
	managerOnce.Do(func() {
		logger := logimpl.NewNop()
		opts := testOptions()
		keys := zkproof.NewKeyStore(logger, opts)
		manager = zkproof.NewManager(logger, keys,
			zkproof.NewProver(logger, keys, opts),
			zkproof.NewVerifier(logger, keys, nil))
		managerErr = manager.Init(context.Background())
	})
	require.NoError(t, managerErr)
	return manager
}
