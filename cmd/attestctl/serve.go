package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/weisyn/zkattest/internal/app"
)

var servePort int

// serveCmd 以服务方式运行：加载密钥并提供验证 HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动验证服务（HTTP API + Prometheus 指标）",
	Long: `加载全部电路族密钥后提供 HTTP 端点:
  GET  /health/live
  GET  /health/ready
  GET  /metrics
  GET  /api/v1/attestation/families
  POST /api/v1/attestation/verify`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := append(appOptions(), app.WithAPI())
		if cmd.Flags().Changed("port") {
			opts = append(opts, app.WithHTTPPort(servePort))
		}

		a, err := app.Start(context.Background(), opts...)
		if err != nil {
			return err
		}
		a.Wait()
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8089, "HTTP监听端口")
	rootCmd.AddCommand(serveCmd)
}
