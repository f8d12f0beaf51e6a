// Package types provides configuration type definitions.
package types

// LogLevel 日志级别类型
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
)

// AppConfig 应用程序根配置
// 只包含JSON配置文件解析所需的结构，不包含任何内部字段
// 默认值和完整配置结构在 internal/config/*/defaults.go 和 internal/config/*/config.go 中定义
type AppConfig struct {
	// 应用程序基本信息
	AppName *string `json:"app_name,omitempty"` // 应用名称
	DataDir *string `json:"data_dir,omitempty"` // 数据目录路径

	// 日志配置 - 对应配置文件中的 log 字段
	Log *UserLogConfig `json:"log,omitempty"`

	// 事件配置 - 对应配置文件中的 event 字段
	Event *UserEventConfig `json:"event,omitempty"`

	// 证明子系统配置 - 对应配置文件中的 attestation 字段
	Attestation *UserAttestationConfig `json:"attestation,omitempty"`

	// API配置 - 对应配置文件中的 api 字段
	API *UserAPIConfig `json:"api,omitempty"`
}

// UserLogConfig 用户日志配置
// 只包含JSON配置文件中实际出现的字段
type UserLogConfig struct {
	Level    *string `json:"level,omitempty"`     // 日志级别：debug, info, warn, error, fatal
	FilePath *string `json:"file_path,omitempty"` // 日志文件路径
}

// UserEventConfig 用户事件配置
type UserEventConfig struct {
	Enabled *bool `json:"enabled,omitempty"` // 是否启用事件总线
}

// UserAttestationConfig 用户证明子系统配置
// 只包含JSON配置文件中实际出现的字段，缺省字段由 internal/config/attestation 填充默认值
type UserAttestationConfig struct {
	KeyDir                *string `json:"key_dir,omitempty"`                  // 证明密钥缓存目录
	Curve                 *string `json:"curve,omitempty"`                    // 椭圆曲线（目前仅 bn254）
	BatchMaxSize          *int    `json:"batch_max_size,omitempty"`           // 批量队列容量
	OverflowPolicy        *string `json:"overflow_policy,omitempty"`          // 队列溢出策略：drop_oldest | reject
	LegacyTruncate        *bool   `json:"legacy_truncate,omitempty"`          // 超长见证静默截断（兼容旧行为）
	VerifyCacheEnabled    *bool   `json:"verify_cache_enabled,omitempty"`     // 启用验证结果缓存
	VerifyCacheLifeWindow *string `json:"verify_cache_life_window,omitempty"` // 验证结果缓存有效期，如 "10m"
	SlashAmount           *uint64 `json:"slash_amount,omitempty"`             // vigil 违规罚没数量
}

// UserAPIConfig 用户API配置
type UserAPIConfig struct {
	HTTPEnabled *bool   `json:"http_enabled,omitempty"` // 是否启用HTTP API
	HTTPHost    *string `json:"http_host,omitempty"`    // 监听地址
	HTTPPort    *int    `json:"http_port,omitempty"`    // 监听端口
}

// StringPtr 返回字符串指针，便于构造用户配置
func StringPtr(s string) *string { return &s }

// BoolPtr 返回布尔指针
func BoolPtr(b bool) *bool { return &b }

// IntPtr 返回整数指针
func IntPtr(i int) *int { return &i }
