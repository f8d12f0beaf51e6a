// Package configs 嵌入默认配置文件
package configs

import _ "embed"

//go:embed attestation.json
var defaultConfig []byte

// GetDefaultConfig 获取嵌入的默认配置
func GetDefaultConfig() []byte {
	return defaultConfig
}
