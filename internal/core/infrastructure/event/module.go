package event

import (
	"context"

	"go.uber.org/fx"

	eventconfig "github.com/weisyn/zkattest/internal/config/event"
	"github.com/weisyn/zkattest/pkg/interfaces/config"
	eventInterface "github.com/weisyn/zkattest/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/zkattest/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/zkattest/pkg/types"
)

// ModuleInput 事件模块输入依赖
type ModuleInput struct {
	fx.In

	Provider  config.Provider
	Logger    log.Logger `optional:"true"`
	Lifecycle fx.Lifecycle
}

// ModuleOutput 事件模块输出服务
type ModuleOutput struct {
	fx.Out

	EventBus eventInterface.EventBus
}

// Module 返回事件模块
func Module() fx.Option {
	return fx.Module("event",
		fx.Provide(ProvideEventBus),
	)
}

// ProvideEventBus 创建事件总线，停止时等待异步订阅者处理完毕
func ProvideEventBus(input ModuleInput) ModuleOutput {
	var logger log.Logger
	if input.Logger != nil {
		logger = input.Logger.With("module", "event")
	}

	var userConfig *types.UserEventConfig
	if appConfig := input.Provider.GetAppConfig(); appConfig != nil {
		userConfig = appConfig.Event
	}
	bus := New(eventconfig.New(userConfig), logger)

	input.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			bus.WaitAsync()
			return nil
		},
	})

	return ModuleOutput{EventBus: bus}
}
