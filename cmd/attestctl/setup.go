package main

import (
	"context"
	"encoding/hex"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/weisyn/zkattest/internal/core/attestation/circuits"
	"github.com/weisyn/zkattest/pkg/types"
)

// setupCmd 生成或加载全部电路族密钥
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "生成或加载全部电路族的证明密钥",
	Long:  "为每个电路族加载密钥缓存；缓存缺失或损坏时执行可信设置并写入缓存",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := startApp(context.Background())
		if err != nil {
			return err
		}
		defer func() { _ = a.Stop() }()

		data := pterm.TableData{{"电路族", "见证长度", "公开输入", "来源", "指纹"}}
		for _, family := range types.AllCircuitFamilies() {
			pair, err := a.KeyStore().Keys(family)
			if err != nil {
				return err
			}
			spec, err := circuits.Lookup(family)
			if err != nil {
				return err
			}
			data = append(data, []string{
				family.String(),
				pterm.Sprint(spec.WitnessLen),
				pterm.Sprint(spec.PublicInputs()),
				string(pair.Source),
				hex.EncodeToString(pair.Fingerprint[:8]),
			})
		}

		if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
			return err
		}
		pterm.Success.Println("全部电路族密钥已就绪")
		return nil
	},
}
