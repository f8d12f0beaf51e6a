package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/weisyn/zkattest/pkg/types"
)

var (
	verifyAttestation string
	verifyFamily      string
	verifyCommitment  string
	verifyProof       string
)

var errVerificationFailed = errors.New("验证失败")

// verifyCmd 验证证明
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "验证零知识证明",
	Long:  "从 --attestation 文件或 --family/--commitment/--proof 读取证明；验证失败时退出码非零",
	RunE: func(cmd *cobra.Command, args []string) error {
		att, err := verifyInput()
		if err != nil {
			return err
		}

		a, err := startApp(context.Background())
		if err != nil {
			return err
		}
		defer func() { _ = a.Stop() }()

		result := a.Manager().Check(att.Family, att.Proof, att.Commitment)
		if !result.OK() {
			pterm.Error.Printfln("family=%s result=%s", att.Family, result)
			return errVerificationFailed
		}
		pterm.Success.Printfln("family=%s result=%s", att.Family, result)
		return nil
	},
}

func verifyInput() (*types.Attestation, error) {
	if verifyAttestation != "" {
		return readAttestation(verifyAttestation)
	}
	if verifyFamily == "" || verifyCommitment == "" || verifyProof == "" {
		return nil, errors.New("需要 --attestation，或同时指定 --family、--commitment、--proof")
	}
	family, err := types.ParseCircuitFamily(verifyFamily)
	if err != nil {
		return nil, err
	}
	commitment, err := decodeHex(verifyCommitment)
	if err != nil {
		return nil, fmt.Errorf("解析 --commitment: %w", err)
	}
	proof, err := decodeHex(verifyProof)
	if err != nil {
		return nil, fmt.Errorf("解析 --proof: %w", err)
	}
	return &types.Attestation{Family: family, Commitment: commitment, Proof: proof}, nil
}

func init() {
	verifyCmd.Flags().StringVarP(&verifyAttestation, "attestation", "a", "", "证明文件 (prove --out 的输出)")
	verifyCmd.Flags().StringVarP(&verifyFamily, "family", "f", "", "电路族")
	verifyCmd.Flags().StringVar(&verifyCommitment, "commitment", "", "公开承诺（十六进制）")
	verifyCmd.Flags().StringVar(&verifyProof, "proof", "", "证明（十六进制）")
}
