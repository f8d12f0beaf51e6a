package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/fx"

	"github.com/weisyn/zkattest/internal/api"
	configpkg "github.com/weisyn/zkattest/internal/config"
	"github.com/weisyn/zkattest/internal/core/attestation/consumers"
	"github.com/weisyn/zkattest/internal/core/attestation/zkproof"
	eventimpl "github.com/weisyn/zkattest/internal/core/infrastructure/event"
	logimpl "github.com/weisyn/zkattest/internal/core/infrastructure/log"
	"github.com/weisyn/zkattest/pkg/interfaces/attestation"
	"github.com/weisyn/zkattest/pkg/interfaces/config"
	"github.com/weisyn/zkattest/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/zkattest/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/zkattest/pkg/types"
)

const (
	// 首次启动需要为全部电路族执行可信设置
	startTimeout = 5 * time.Minute
	stopTimeout  = 30 * time.Second

	// configPathEnv 配置文件路径环境变量，优先级高于 WithConfigFile
	configPathEnv = "WES_CONFIG_PATH"
)

// App 证明子系统应用的对外接口
type App interface {
	// Stop 停止应用
	Stop() error

	// Wait 等待退出信号后停止应用
	Wait()

	// Manager 证明子系统门面
	Manager() attestation.Manager

	// KeyStore 电路族密钥
	KeyStore() *zkproof.KeyStore

	// Consumers 消费者适配器
	Consumers() *Consumers

	// Logger 应用日志记录器
	Logger() log.Logger
}

// Consumers 消费者适配器集合
type Consumers struct {
	Boot     *consumers.BootAttestor
	Identity *consumers.IdentityAttestor
	Vigil    *consumers.Vigil
	Storage  *consumers.StorageAttestor
}

// internalApp 应用的内部实现
type internalApp struct {
	fxApp *fx.App

	logger    log.Logger
	manager   attestation.Manager
	keys      *zkproof.KeyStore
	events    event.EventBus
	consumers Consumers
}

// Stop 停止应用
func (a *internalApp) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	return a.fxApp.Stop(ctx)
}

// Wait 等待应用收到退出信号
func (a *internalApp) Wait() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	sig := <-signals
	a.logger.Infof("收到信号 %v，正在退出", sig)
	if err := a.Stop(); err != nil {
		a.logger.Errorf("停止应用时出错: %v", err)
	}
}

func (a *internalApp) Manager() attestation.Manager { return a.manager }

func (a *internalApp) KeyStore() *zkproof.KeyStore { return a.keys }

func (a *internalApp) Consumers() *Consumers { return &a.consumers }

func (a *internalApp) Logger() log.Logger { return a.logger }

// Start 加载配置、组装模块并启动应用
//
// 启动过程中为全部电路族加载或生成密钥，任一电路族失败都会使启动失败。
func Start(ctx context.Context, appOptions ...Option) (App, error) {
	opts := newOptions(appOptions...)

	if opts.appConfig == nil {
		appConfig, err := loadAppConfig(opts)
		if err != nil {
			return nil, err
		}
		opts.appConfig = appConfig
	}
	opts.applyOverrides()

	a := &internalApp{}
	fxOptions := []fx.Option{
		fx.NopLogger,
		fx.StartTimeout(startTimeout),
		fx.StopTimeout(stopTimeout),

		fx.Provide(func() config.AppOptions { return opts }),

		configpkg.Module(), // 1. 配置
		logimpl.Module(),   // 2. 日志
		eventimpl.Module(), // 3. 事件
		zkproof.Module(),   // 4. 证明核心
		consumers.Module(), // 5. 消费者适配器

		fx.Populate(
			&a.logger,
			&a.manager,
			&a.keys,
			&a.events,
			&a.consumers.Boot,
			&a.consumers.Identity,
			&a.consumers.Vigil,
			&a.consumers.Storage,
		),
	}
	if opts.enableAPI {
		fxOptions = append(fxOptions, api.Module()) // 6. HTTP API
	}
	if opts.ledger != nil {
		ledger := opts.ledger
		fxOptions = append(fxOptions, fx.Provide(func() consumers.Ledger { return ledger }))
	}

	a.fxApp = fx.New(fxOptions...)
	if err := a.fxApp.Err(); err != nil {
		return nil, fmt.Errorf("组装应用模块失败: %w", err)
	}

	if err := a.fxApp.Start(ctx); err != nil {
		return nil, fmt.Errorf("启动应用失败: %w", err)
	}
	return a, nil
}

// loadAppConfig 按 环境变量 > 配置文件 > 嵌入配置 的顺序加载
func loadAppConfig(opts *options) (*types.AppConfig, error) {
	path := getConfigFilePath(opts.configFilePath)
	if opts.embeddedConfig != nil {
		if _, err := os.Stat(path); path == "" || os.IsNotExist(err) {
			return configpkg.ParseAppConfig(opts.embeddedConfig)
		}
	}
	return configpkg.LoadAppConfig(path)
}

// getConfigFilePath 获取配置文件路径
func getConfigFilePath(configured string) string {
	if envPath := os.Getenv(configPathEnv); envPath != "" {
		return envPath
	}
	return configured
}
