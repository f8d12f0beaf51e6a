// Package attestation 提供零知识证明子系统的配置
package attestation

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/weisyn/zkattest/pkg/types"
)

// AttestationOptions 证明子系统配置选项
type AttestationOptions struct {
	// === 密钥配置 ===
	KeyDir string `json:"key_dir"` // 密钥缓存目录，为空时只在内存中生成
	Curve  string `json:"curve"`   // 椭圆曲线

	// === 见证配置 ===
	LegacyTruncate bool `json:"legacy_truncate"` // 超长见证静默截断

	// === 批量队列配置 ===
	BatchMaxSize   int    `json:"batch_max_size"`
	OverflowPolicy string `json:"overflow_policy"` // drop_oldest | reject

	// === 验证缓存配置 ===
	VerifyCacheEnabled    bool          `json:"verify_cache_enabled"`
	VerifyCacheLifeWindow time.Duration `json:"verify_cache_life_window"`

	// === 消费者配置 ===
	SlashAmount uint64 `json:"slash_amount"`
}

// Config 证明子系统配置实现
type Config struct {
	options *AttestationOptions
}

// New 创建证明子系统配置
// 非法的用户值（如无法解析的时长）被忽略并保留默认值，Validate 负责报告语义错误
func New(userConfig *types.UserAttestationConfig) *Config {
	options := createDefaultAttestationOptions()
	if userConfig != nil {
		applyUserAttestationConfig(options, userConfig)
	}
	return &Config{options: options}
}

func createDefaultAttestationOptions() *AttestationOptions {
	return &AttestationOptions{
		KeyDir:                defaultKeyDir,
		Curve:                 defaultCurve,
		LegacyTruncate:        defaultLegacyTruncate,
		BatchMaxSize:          defaultBatchMaxSize,
		OverflowPolicy:        OverflowDropOldest,
		VerifyCacheEnabled:    defaultVerifyCacheEnabled,
		VerifyCacheLifeWindow: defaultVerifyCacheLifeWindow,
		SlashAmount:           defaultSlashAmount,
	}
}

func applyUserAttestationConfig(options *AttestationOptions, userConfig *types.UserAttestationConfig) {
	if userConfig.KeyDir != nil {
		options.KeyDir = *userConfig.KeyDir
	}
	if userConfig.Curve != nil {
		options.Curve = *userConfig.Curve
	}
	if userConfig.BatchMaxSize != nil {
		options.BatchMaxSize = *userConfig.BatchMaxSize
	}
	if userConfig.OverflowPolicy != nil {
		options.OverflowPolicy = *userConfig.OverflowPolicy
	}
	if userConfig.LegacyTruncate != nil {
		options.LegacyTruncate = *userConfig.LegacyTruncate
	}
	if userConfig.VerifyCacheEnabled != nil {
		options.VerifyCacheEnabled = *userConfig.VerifyCacheEnabled
	}
	if userConfig.VerifyCacheLifeWindow != nil {
		if d, err := time.ParseDuration(*userConfig.VerifyCacheLifeWindow); err == nil && d > 0 {
			options.VerifyCacheLifeWindow = d
		}
	}
	if userConfig.SlashAmount != nil {
		options.SlashAmount = *userConfig.SlashAmount
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.options.Curve != defaultCurve {
		return fmt.Errorf("不支持的曲线: %s（仅支持 %s）", c.options.Curve, defaultCurve)
	}
	if c.options.BatchMaxSize < 1 {
		return fmt.Errorf("batch_max_size 必须 >= 1，当前值: %d", c.options.BatchMaxSize)
	}
	switch c.options.OverflowPolicy {
	case OverflowDropOldest, OverflowReject:
	default:
		return fmt.Errorf("未知的队列溢出策略: %s", c.options.OverflowPolicy)
	}
	return nil
}

// GetOptions 获取完整的配置选项
func (c *Config) GetOptions() *AttestationOptions {
	return c.options
}

// KeyCachePath 返回电路族的密钥缓存路径，KeyDir 为空时返回空串（仅内存）
func (o *AttestationOptions) KeyCachePath(family types.CircuitFamily) string {
	if o.KeyDir == "" {
		return ""
	}
	return filepath.Join(o.KeyDir, family.String()+".pk")
}
