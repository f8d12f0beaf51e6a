package configs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weisyn/zkattest/pkg/types"
)

func TestDefaultConfigParses(t *testing.T) {
	var cfg types.AppConfig
	require.NoError(t, json.Unmarshal(GetDefaultConfig(), &cfg))
	require.NotNil(t, cfg.Attestation)
	require.Equal(t, 10, *cfg.Attestation.BatchMaxSize)
	require.Equal(t, "drop_oldest", *cfg.Attestation.OverflowPolicy)
	require.Nil(t, cfg.Attestation.KeyDir)
}
