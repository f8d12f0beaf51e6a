package app

import (
	"github.com/weisyn/zkattest/internal/core/attestation/consumers"
	"github.com/weisyn/zkattest/pkg/interfaces/config"
	"github.com/weisyn/zkattest/pkg/types"
)

// Option 应用程序选项函数类型
type Option func(*options)

// options 应用程序选项
// 实现config.AppOptions接口
type options struct {
	// 配置文件路径
	configFilePath string

	// 嵌入的配置内容，配置文件不存在时使用
	embeddedConfig []byte

	// 用户配置（显式设置时优先于配置文件）
	appConfig *types.AppConfig

	// 覆盖项，在配置文件加载之后应用
	keyDir   *string
	logLevel *string
	httpPort *int

	// HTTP API开关，默认禁用
	enableAPI bool

	// 罚没账本，未提供时 vigil 只发布事件
	ledger consumers.Ledger
}

// 编译时校验options是否实现了config.AppOptions接口
var _ config.AppOptions = (*options)(nil)

// WithConfigFile 设置配置文件路径
func WithConfigFile(configPath string) Option {
	return func(o *options) {
		o.configFilePath = configPath
	}
}

// WithEmbeddedConfig 设置嵌入的配置内容，配置文件不存在时使用
func WithEmbeddedConfig(configBytes []byte) Option {
	return func(o *options) {
		o.embeddedConfig = configBytes
	}
}

// WithAppConfig 直接使用给定配置，不读取配置文件
func WithAppConfig(appConfig *types.AppConfig) Option {
	return func(o *options) {
		o.appConfig = appConfig
	}
}

// WithKeyDir 覆盖密钥缓存目录
func WithKeyDir(dir string) Option {
	return func(o *options) {
		o.keyDir = &dir
	}
}

// WithLogLevel 覆盖日志级别
func WithLogLevel(level string) Option {
	return func(o *options) {
		o.logLevel = &level
	}
}

// WithAPI 启用HTTP API模块
func WithAPI() Option {
	return func(o *options) {
		o.enableAPI = true
	}
}

// WithHTTPPort 覆盖HTTP监听端口
func WithHTTPPort(port int) Option {
	return func(o *options) {
		o.httpPort = &port
	}
}

// WithLedger 注入罚没账本
func WithLedger(ledger consumers.Ledger) Option {
	return func(o *options) {
		o.ledger = ledger
	}
}

// newOptions 创建选项
func newOptions(opts ...Option) *options {
	options := &options{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// applyOverrides 把命令行覆盖项写入应用配置
func (o *options) applyOverrides() {
	if o.appConfig == nil {
		o.appConfig = &types.AppConfig{}
	}
	if o.keyDir != nil {
		if o.appConfig.Attestation == nil {
			o.appConfig.Attestation = &types.UserAttestationConfig{}
		}
		o.appConfig.Attestation.KeyDir = o.keyDir
	}
	if o.logLevel != nil {
		if o.appConfig.Log == nil {
			o.appConfig.Log = &types.UserLogConfig{}
		}
		o.appConfig.Log.Level = o.logLevel
	}
	if o.enableAPI {
		if o.appConfig.API == nil {
			o.appConfig.API = &types.UserAPIConfig{}
		}
		enabled := true
		o.appConfig.API.HTTPEnabled = &enabled
		if o.httpPort != nil {
			o.appConfig.API.HTTPPort = o.httpPort
		}
	}
}

// GetAppConfig 返回应用程序配置
func (o *options) GetAppConfig() *types.AppConfig {
	return o.appConfig
}
