// Package config provides configuration provider interfaces.
package config

import (
	apiconfig "github.com/weisyn/zkattest/internal/config/api"
	attestationconfig "github.com/weisyn/zkattest/internal/config/attestation"
	eventconfig "github.com/weisyn/zkattest/internal/config/event"
	logconfig "github.com/weisyn/zkattest/internal/config/log"
	"github.com/weisyn/zkattest/pkg/types"
)

// Provider 配置提供者接口
type Provider interface {
	// GetLog 获取日志配置
	GetLog() *logconfig.LogOptions

	// GetEvent 获取事件配置
	GetEvent() *eventconfig.EventOptions

	// GetAttestation 获取证明子系统配置
	GetAttestation() *attestationconfig.AttestationOptions

	// GetAPI 获取API配置
	GetAPI() *apiconfig.APIOptions

	// GetAppConfig 获取原始应用配置
	GetAppConfig() *types.AppConfig
}
