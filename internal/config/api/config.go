// Package api 提供 HTTP API 配置
package api

import (
	"time"

	"github.com/weisyn/zkattest/pkg/types"
)

// APIOptions API服务配置选项
type APIOptions struct {
	HTTP HTTPConfig `json:"http"`
}

// HTTPConfig HTTP API配置
type HTTPConfig struct {
	Enabled bool   `json:"enabled"` // 是否启用HTTP服务
	Host    string `json:"host"`    // 监听地址
	Port    int    `json:"port"`    // 监听端口，0 表示由系统分配

	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`

	MaxRequestSize int64 `json:"max_request_size"` // 最大请求体(字节)
}

// Config API配置实现
type Config struct {
	options *APIOptions
}

// New 创建API配置实现
func New(userConfig *types.UserAPIConfig) *Config {
	options := createDefaultAPIOptions()
	if userConfig != nil {
		convertAndMergeUserConfig(options, userConfig)
	}
	return &Config{options: options}
}

func createDefaultAPIOptions() *APIOptions {
	return &APIOptions{
		HTTP: HTTPConfig{
			Enabled:        defaultHTTPEnabled,
			Host:           defaultHTTPHost,
			Port:           defaultHTTPPort,
			ReadTimeout:    defaultHTTPReadTimeout,
			WriteTimeout:   defaultHTTPWriteTimeout,
			MaxRequestSize: defaultMaxRequestSize,
		},
	}
}

// convertAndMergeUserConfig 将用户配置合并到默认配置
// 指针字段区分"未设置"和"设置为零值"
func convertAndMergeUserConfig(options *APIOptions, userConfig *types.UserAPIConfig) {
	if userConfig.HTTPEnabled != nil {
		options.HTTP.Enabled = *userConfig.HTTPEnabled
	}
	if userConfig.HTTPHost != nil {
		options.HTTP.Host = *userConfig.HTTPHost
	}
	if userConfig.HTTPPort != nil {
		options.HTTP.Port = *userConfig.HTTPPort
	}
}

// GetOptions 获取完整的API配置选项
func (c *Config) GetOptions() *APIOptions {
	return c.options
}
