package config

import (
	"fmt"

	"github.com/weisyn/zkattest/internal/config/attestation"
	"github.com/weisyn/zkattest/pkg/types"
)

// ValidationError 配置验证错误
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("配置验证失败 [%s]: %s", e.Field, e.Message)
}

// ValidateAppConfig 在启动时校验应用配置
func ValidateAppConfig(appConfig *types.AppConfig) error {
	if appConfig == nil {
		return nil
	}
	if err := attestation.New(appConfig.Attestation).Validate(); err != nil {
		return &ValidationError{Field: "attestation", Message: err.Error()}
	}
	if appConfig.Log != nil && appConfig.Log.Level != nil {
		switch types.LogLevel(*appConfig.Log.Level) {
		case types.DebugLevel, types.InfoLevel, types.WarnLevel, types.ErrorLevel, types.FatalLevel:
		default:
			return &ValidationError{Field: "log.level", Message: "未知的日志级别: " + *appConfig.Log.Level}
		}
	}
	return nil
}
