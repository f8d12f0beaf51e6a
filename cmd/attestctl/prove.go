package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/weisyn/zkattest/pkg/types"
)

var (
	proveFlags      witnessFlags
	proveCommitment string
	proveOut        string
)

// proveCmd 生成证明
var proveCmd = &cobra.Command{
	Use:   "prove",
	Short: "为见证生成零知识证明",
	Long:  "未指定 --commitment 时在主机侧计算承诺；输出 JSON 格式的证明",
	RunE: func(cmd *cobra.Command, args []string) error {
		family, witness, err := proveFlags.parse()
		if err != nil {
			return err
		}

		ctx := context.Background()
		a, err := startApp(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = a.Stop() }()

		var att *types.Attestation
		if proveCommitment == "" {
			att, err = a.Manager().Attest(ctx, family, witness)
		} else {
			var commitment, proof []byte
			if commitment, err = decodeHex(proveCommitment); err != nil {
				return fmt.Errorf("解析 --commitment: %w", err)
			}
			if proof, err = a.Manager().Prove(ctx, family, witness, commitment); err == nil {
				att = &types.Attestation{Family: family, Commitment: commitment, Proof: proof, CreatedAt: time.Now()}
			}
		}
		if err != nil {
			return err
		}

		data, err := encodeAttestation(att)
		if err != nil {
			return err
		}
		if proveOut == "" {
			fmt.Println(string(data))
			return nil
		}
		return os.WriteFile(proveOut, data, 0o644)
	},
}

func init() {
	proveFlags.register(proveCmd)
	proveCmd.Flags().StringVar(&proveCommitment, "commitment", "", "公开承诺（十六进制）")
	proveCmd.Flags().StringVarP(&proveOut, "out", "o", "", "输出文件 (默认标准输出)")
}
