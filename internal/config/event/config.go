package event

import "github.com/weisyn/zkattest/pkg/types"

// EventOptions 事件系统配置选项
type EventOptions struct {
	Enabled        bool `json:"enabled"`         // 是否启用事件系统
	MaxSubscribers int  `json:"max_subscribers"` // 单个主题最大订阅者数量
}

// Config 事件配置实现
type Config struct {
	options *EventOptions
}

// New 创建事件配置，userConfig 为 nil 时使用默认值
func New(userConfig *types.UserEventConfig) *Config {
	options := &EventOptions{
		Enabled:        defaultEnabled,
		MaxSubscribers: defaultMaxSubscribers,
	}
	if userConfig != nil && userConfig.Enabled != nil {
		options.Enabled = *userConfig.Enabled
	}
	return &Config{options: options}
}

// GetOptions 获取完整的事件配置选项
func (c *Config) GetOptions() *EventOptions {
	return c.options
}

// IsEnabled 是否启用事件总线
func (c *Config) IsEnabled() bool {
	return c.options.Enabled
}
