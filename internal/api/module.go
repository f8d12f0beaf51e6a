// Package api 组装对外 API 模块
package api

import (
	"go.uber.org/fx"

	"github.com/weisyn/zkattest/internal/api/http"
)

// Module 返回API模块
// fx.Invoke 保证服务器被构造，生命周期钩子随之注册
func Module() fx.Option {
	return fx.Module("api",
		http.Module(),
		fx.Invoke(func(*http.Server) {}),
	)
}
