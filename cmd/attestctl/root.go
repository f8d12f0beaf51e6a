package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weisyn/zkattest/configs"
	"github.com/weisyn/zkattest/internal/app"
	"github.com/weisyn/zkattest/pkg/types"
)

// GlobalFlags 全局标志
type GlobalFlags struct {
	ConfigFile string // 配置文件
	KeyDir     string // 密钥缓存目录
	LogLevel   string // 日志级别
}

var globalFlags GlobalFlags

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "attestctl",
	Short: "零知识证明子系统命令行工具",
	Long: `attestctl - 零知识证明子系统运维工具

支持的电路族:
  genesis-path          启动路径证明
  biometric-commitment  生物特征身份证明
  policy-action         策略执行证明
  data-integrity        存储状态证明

常用流程:
  attestctl setup                                   # 生成或加载全部电路族密钥
  attestctl commit --family policy-action --witness "transfer"
  attestctl prove  --family policy-action --witness "transfer" --out att.json
  attestctl verify --attestation att.json`,
	SilenceUsage: true,
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigFile, "config", "c", "configs/attestation.json", "配置文件路径")
	rootCmd.PersistentFlags().StringVar(&globalFlags.KeyDir, "key-dir", "", "密钥缓存目录 (覆盖配置文件)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.LogLevel, "log-level", "", "日志级别: debug|info|warn|error")

	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(proveCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(versionCmd)
}

// appOptions 由全局标志构造应用选项
func appOptions() []app.Option {
	opts := []app.Option{
		app.WithConfigFile(globalFlags.ConfigFile),
		app.WithEmbeddedConfig(configs.GetDefaultConfig()),
	}
	if globalFlags.KeyDir != "" {
		opts = append(opts, app.WithKeyDir(globalFlags.KeyDir))
	}
	if globalFlags.LogLevel != "" {
		opts = append(opts, app.WithLogLevel(globalFlags.LogLevel))
	}
	return opts
}

// startApp 启动应用，调用方负责 Stop
func startApp(ctx context.Context) (app.App, error) {
	return app.Start(ctx, appOptions()...)
}

// witnessFlags 见证输入标志
type witnessFlags struct {
	family     string
	witness    string
	witnessHex string
}

func (w *witnessFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&w.family, "family", "f", "", "电路族")
	cmd.Flags().StringVarP(&w.witness, "witness", "w", "", "见证（UTF-8 字符串）")
	cmd.Flags().StringVar(&w.witnessHex, "witness-hex", "", "见证（十六进制）")
	_ = cmd.MarkFlagRequired("family")
	cmd.MarkFlagsMutuallyExclusive("witness", "witness-hex")
}

func (w *witnessFlags) parse() (types.CircuitFamily, []byte, error) {
	family, err := types.ParseCircuitFamily(w.family)
	if err != nil {
		return 0, nil, err
	}
	if w.witnessHex != "" {
		witness, err := decodeHex(w.witnessHex)
		if err != nil {
			return 0, nil, fmt.Errorf("解析 --witness-hex: %w", err)
		}
		return family, witness, nil
	}
	return family, []byte(w.witness), nil
}

func decodeHex(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
}
