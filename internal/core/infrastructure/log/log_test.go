package log

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	logconfig "github.com/weisyn/zkattest/internal/config/log"
	"github.com/weisyn/zkattest/pkg/types"
)

func newFileLogger(t *testing.T, level string) (*Logger, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "logs", "attest.log")
	cfg := logconfig.New(&types.UserLogConfig{Level: &level, FilePath: &path})
	logger, err := New(cfg)
	require.NoError(t, err)
	return logger.(*Logger), path
}

func readEntries(t *testing.T, path string) []map[string]interface{} {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

// TestFileLogging 测试JSON文件日志输出
func TestFileLogging(t *testing.T) {
	logger, path := newFileLogger(t, "info")

	logger.Infof("证明完成: witness_len=%d", 32)
	logger.Debug("不应出现")
	require.NoError(t, logger.Sync())

	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	require.Equal(t, "info", entries[0]["level"])
	require.Equal(t, "证明完成: witness_len=32", entries[0]["message"])
}

// TestModuleLogger 测试 module 字段附加
func TestModuleLogger(t *testing.T) {
	logger, path := newFileLogger(t, "debug")

	moduleLogger := NewModuleLogger(logger, "attestation")
	moduleLogger.With("family", "genesis-path").Warn("密钥缓存损坏")
	require.NoError(t, logger.Sync())

	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	require.Equal(t, "attestation", entries[0]["module"])
	require.Equal(t, "genesis-path", entries[0]["family"])
	require.Equal(t, "warn", entries[0]["level"])
}

// TestToZapFieldsOddArgs 测试奇数个参数时丢弃最后一个
func TestToZapFieldsOddArgs(t *testing.T) {
	fields := toZapFields("a", 1, "b")
	require.Len(t, fields, 1)
	require.Equal(t, "a", fields[0].Key)
}

// TestUnknownLevelFallsBackToInfo 测试未知日志级别回退
func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	level := "verbose"
	cfg := logconfig.New(&types.UserLogConfig{Level: &level})
	require.Equal(t, "info", cfg.GetZapLevel().String())
}

// TestNilModuleLogger 测试空 logger
func TestNilModuleLogger(t *testing.T) {
	require.Nil(t, NewModuleLogger(nil, "attestation"))
	require.NotNil(t, NewNop())
	NewNop().Errorf("丢弃: %v", "x")
}
