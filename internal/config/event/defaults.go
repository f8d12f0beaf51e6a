package event

// 事件系统默认配置值
const (
	// defaultEnabled 默认启用事件总线
	defaultEnabled = true

	// defaultMaxSubscribers 单个主题最大订阅者数量
	defaultMaxSubscribers = 64
)
