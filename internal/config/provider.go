package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/weisyn/zkattest/internal/config/api"
	"github.com/weisyn/zkattest/internal/config/attestation"
	"github.com/weisyn/zkattest/internal/config/event"
	"github.com/weisyn/zkattest/internal/config/log"
	"github.com/weisyn/zkattest/pkg/interfaces/config"
	"github.com/weisyn/zkattest/pkg/types"
)

// Provider 实现配置提供者接口
type Provider struct {
	appConfig *types.AppConfig
}

// NewProvider 创建配置提供者
func NewProvider(appConfig *types.AppConfig) config.Provider {
	if appConfig == nil {
		appConfig = &types.AppConfig{}
	}
	return &Provider{
		appConfig: appConfig,
	}
}

// GetLog 获取日志配置
func (p *Provider) GetLog() *log.LogOptions {
	return log.New(p.appConfig.Log).GetOptions()
}

// GetEvent 获取事件配置
func (p *Provider) GetEvent() *event.EventOptions {
	return event.New(p.appConfig.Event).GetOptions()
}

// GetAttestation 获取证明子系统配置
// 用户未显式设置 key_dir 且配置了 data_dir 时，密钥缓存放在 data_dir/zkkeys
func (p *Provider) GetAttestation() *attestation.AttestationOptions {
	options := attestation.New(p.appConfig.Attestation).GetOptions()

	explicitKeyDir := p.appConfig.Attestation != nil && p.appConfig.Attestation.KeyDir != nil
	if !explicitKeyDir && p.appConfig.DataDir != nil && *p.appConfig.DataDir != "" {
		options.KeyDir = filepath.Join(*p.appConfig.DataDir, "zkkeys")
	}
	return options
}

// GetAPI 获取API配置
func (p *Provider) GetAPI() *api.APIOptions {
	return api.New(p.appConfig.API).GetOptions()
}

// GetAppConfig 获取原始应用配置
func (p *Provider) GetAppConfig() *types.AppConfig {
	return p.appConfig
}

// LoadAppConfig 从JSON配置文件加载应用配置
// 文件不存在时返回空配置（全部使用默认值）
func LoadAppConfig(path string) (*types.AppConfig, error) {
	if path == "" {
		return &types.AppConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &types.AppConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	appConfig, err := ParseAppConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return appConfig, nil
}

// ParseAppConfig 解析JSON配置内容
func ParseAppConfig(data []byte) (*types.AppConfig, error) {
	var appConfig types.AppConfig
	if err := json.Unmarshal(data, &appConfig); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	return &appConfig, nil
}
