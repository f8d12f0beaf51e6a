package http

import (
	"context"

	"go.uber.org/fx"

	logimpl "github.com/weisyn/zkattest/internal/core/infrastructure/log"
	"github.com/weisyn/zkattest/pkg/interfaces/attestation"
	"github.com/weisyn/zkattest/pkg/interfaces/config"
	"github.com/weisyn/zkattest/pkg/interfaces/infrastructure/log"
)

// ServerParams HTTP服务器依赖
type ServerParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Provider  config.Provider
	Logger    log.Logger
	Manager   attestation.Manager
}

// Module 返回HTTP API模块
func Module() fx.Option {
	return fx.Module("http",
		fx.Provide(ProvideServer),
	)
}

// ProvideServer 创建HTTP服务器；配置未启用时不监听
func ProvideServer(params ServerParams) *Server {
	options := params.Provider.GetAPI().HTTP
	server := NewServer(&options, logimpl.NewModuleLogger(params.Logger, "api"), params.Manager)

	if !options.Enabled {
		params.Logger.Info("HTTP API 在配置中被禁用")
		return server
	}

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return server.Start()
		},
		OnStop: func(ctx context.Context) error {
			return server.Stop(ctx)
		},
	})
	return server
}
