package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/weisyn/zkattest/pkg/interfaces/infrastructure/log"
)

// AccessLog 结构化访问日志
//
// 请求体里可能有见证，日志只记录路径、状态和耗时。
func AccessLog(logger log.Logger) gin.HandlerFunc {
	zl := logger.GetZapLogger()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("request_id", GetRequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			zl.Error("HTTP请求", fields...)
		case status >= 400:
			zl.Warn("HTTP请求", fields...)
		default:
			zl.Debug("HTTP请求", fields...)
		}
	}
}
