package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/weisyn/zkattest/pkg/types"
)

// attestationFile 证明的文件格式，字节字段十六进制编码
type attestationFile struct {
	Family     string    `json:"family"`
	Commitment string    `json:"commitment"`
	Proof      string    `json:"proof"`
	CreatedAt  time.Time `json:"created_at"`
}

func encodeAttestation(att *types.Attestation) ([]byte, error) {
	return json.MarshalIndent(attestationFile{
		Family:     att.Family.String(),
		Commitment: hex.EncodeToString(att.Commitment),
		Proof:      hex.EncodeToString(att.Proof),
		CreatedAt:  att.CreatedAt,
	}, "", "  ")
}

func readAttestation(path string) (*types.Attestation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取证明文件失败: %w", err)
	}
	var f attestationFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("解析证明文件失败 %s: %w", path, err)
	}
	family, err := types.ParseCircuitFamily(f.Family)
	if err != nil {
		return nil, err
	}
	commitment, err := decodeHex(f.Commitment)
	if err != nil {
		return nil, fmt.Errorf("解析承诺: %w", err)
	}
	proof, err := decodeHex(f.Proof)
	if err != nil {
		return nil, fmt.Errorf("解析证明: %w", err)
	}
	return &types.Attestation{Family: family, Commitment: commitment, Proof: proof, CreatedAt: f.CreatedAt}, nil
}
