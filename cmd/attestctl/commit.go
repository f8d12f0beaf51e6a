package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	configpkg "github.com/weisyn/zkattest/internal/config"
	"github.com/weisyn/zkattest/internal/core/attestation/circuits"
)

var commitFlags witnessFlags

// commitCmd 计算公开承诺，不需要密钥
var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "在主机侧计算见证的公开承诺",
	RunE: func(cmd *cobra.Command, args []string) error {
		family, witness, err := commitFlags.parse()
		if err != nil {
			return err
		}

		appConfig, err := configpkg.LoadAppConfig(globalFlags.ConfigFile)
		if err != nil {
			return err
		}
		mode := circuits.RejectOverlong
		if configpkg.NewProvider(appConfig).GetAttestation().LegacyTruncate {
			mode = circuits.LegacyTruncate
		}

		commitment, err := circuits.HostCommitment(family, witness, mode)
		if err != nil {
			return err
		}
		fmt.Println(hex.EncodeToString(commitment))
		return nil
	},
}

func init() {
	commitFlags.register(commitCmd)
}
