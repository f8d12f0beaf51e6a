package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weisyn/zkattest/internal/app/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "显示版本信息",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.GetFullVersion())
	},
}
