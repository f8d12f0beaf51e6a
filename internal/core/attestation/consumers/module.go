package consumers

import (
	"go.uber.org/fx"

	attestationconfig "github.com/weisyn/zkattest/internal/config/attestation"
	"github.com/weisyn/zkattest/internal/core/attestation/zkproof"
	logimpl "github.com/weisyn/zkattest/internal/core/infrastructure/log"
	"github.com/weisyn/zkattest/pkg/interfaces/attestation"
	"github.com/weisyn/zkattest/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/zkattest/pkg/interfaces/infrastructure/log"
)

// ModuleInput 消费者模块输入依赖
type ModuleInput struct {
	fx.In

	Logger       log.Logger
	Options      *attestationconfig.AttestationOptions
	Manager      attestation.Manager
	StorageBatch *zkproof.BatchQueue
	Ledger       Ledger         `optional:"true"`
	EventBus     event.EventBus `optional:"true"`
}

// ModuleOutput 消费者模块输出
type ModuleOutput struct {
	fx.Out

	Boot     *BootAttestor
	Identity *IdentityAttestor
	Vigil    *Vigil
	Storage  *StorageAttestor
}

// Module 返回消费者模块
func Module() fx.Option {
	return fx.Module("attestation_consumers",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 构造消费者适配器
func ProvideServices(input ModuleInput) ModuleOutput {
	logger := logimpl.NewModuleLogger(input.Logger, "attestation_consumers")
	if input.Ledger == nil {
		logger.Warn("未提供罚没账本，vigil 只发布罚没事件")
	}
	return ModuleOutput{
		Boot:     NewBootAttestor(logger, input.Manager),
		Identity: NewIdentityAttestor(logger, input.Manager),
		Vigil:    NewVigil(logger, input.Manager, input.Ledger, input.EventBus, input.Options.SlashAmount),
		Storage:  NewStorageAttestor(logger, input.Manager, input.StorageBatch),
	}
}
