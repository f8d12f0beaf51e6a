package zkproof

import (
	"context"

	"go.uber.org/fx"

	attestationconfig "github.com/weisyn/zkattest/internal/config/attestation"
	logimpl "github.com/weisyn/zkattest/internal/core/infrastructure/log"
	"github.com/weisyn/zkattest/pkg/interfaces/attestation"
	"github.com/weisyn/zkattest/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/zkattest/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/zkattest/pkg/types"
)

// ModuleInput 证明模块输入依赖
type ModuleInput struct {
	fx.In

	Lifecycle fx.Lifecycle
	Logger    log.Logger
	Options   *attestationconfig.AttestationOptions
	EventBus  event.EventBus `optional:"true"`
}

// ModuleOutput 证明模块输出服务
type ModuleOutput struct {
	fx.Out

	KeyStore     *KeyStore
	Manager      attestation.Manager
	Prover       attestation.Prover
	Verifier     attestation.Verifier
	BatchQueue   attestation.BatchQueue
	StorageBatch *BatchQueue
}

// Module 返回证明模块
//
// 启动时初始化全部电路族密钥；任一电路族 setup 失败会中止启动。
func Module() fx.Option {
	return fx.Module("attestation",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 构造证明子系统并注册生命周期钩子
func ProvideServices(input ModuleInput) (ModuleOutput, error) {
	logger := logimpl.NewModuleLogger(input.Logger, "attestation")
	options := input.Options

	keys := NewKeyStore(logger, options)
	prover := NewProver(logger, keys, options)

	var cache *VerifyCache
	if options.VerifyCacheEnabled {
		var err error
		cache, err = NewVerifyCache(context.Background(), options.VerifyCacheLifeWindow)
		if err != nil {
			return ModuleOutput{}, err
		}
	}
	verifier := NewVerifier(logger, keys, cache)
	manager := NewManager(logger, keys, prover, verifier)

	// 存储状态证明走批量队列
	queue, err := NewBatchQueue(logger, prover, input.EventBus, types.DataIntegrity, options.BatchMaxSize, OverflowPolicy(options.OverflowPolicy))
	if err != nil {
		return ModuleOutput{}, err
	}

	input.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return manager.Init(ctx)
		},
		OnStop: func(context.Context) error {
			if n, capacity := queue.Status(); n > 0 {
				logger.Warnf("停止时批量队列仍有未证明条目: pending=%d, max=%d", n, capacity)
			}
			if cache != nil {
				return cache.Close()
			}
			return nil
		},
	})

	return ModuleOutput{
		KeyStore:     keys,
		Manager:      manager,
		Prover:       prover,
		Verifier:     verifier,
		BatchQueue:   queue,
		StorageBatch: queue,
	}, nil
}
