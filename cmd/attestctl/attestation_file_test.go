package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/weisyn/zkattest/pkg/types"
)

func TestAttestationFileRoundTrip(t *testing.T) {
	att := &types.Attestation{
		Family:     types.PolicyAction,
		Commitment: []byte{0x01, 0x02},
		Proof:      []byte{0xAA, 0xBB, 0xCC},
		CreatedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	data, err := encodeAttestation(att)
	require.NoError(t, err)
	require.Contains(t, string(data), `"family": "policy-action"`)

	path := filepath.Join(t.TempDir(), "att.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	got, err := readAttestation(path)
	require.NoError(t, err)
	require.Equal(t, att.Family, got.Family)
	require.Equal(t, att.Commitment, got.Commitment)
	require.Equal(t, att.Proof, got.Proof)
	require.True(t, att.CreatedAt.Equal(got.CreatedAt))
}

func TestWitnessFlagsParse(t *testing.T) {
	w := witnessFlags{family: "data-integrity", witnessHex: "0x0102ff"}
	family, witness, err := w.parse()
	require.NoError(t, err)
	require.Equal(t, types.DataIntegrity, family)
	require.Equal(t, []byte{0x01, 0x02, 0xFF}, witness)

	w = witnessFlags{family: "genesis-path", witness: "recovery"}
	_, witness, err = w.parse()
	require.NoError(t, err)
	require.Equal(t, []byte("recovery"), witness)

	w = witnessFlags{family: "nope"}
	_, _, err = w.parse()
	require.Error(t, err)

	w = witnessFlags{family: "genesis-path", witnessHex: "zz"}
	_, _, err = w.parse()
	require.Error(t, err)
}
