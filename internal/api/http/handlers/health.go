package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/weisyn/zkattest/pkg/interfaces/attestation"
	"github.com/weisyn/zkattest/pkg/types"
)

// HealthHandler 健康检查端点
//
//   - GET /health/live: 进程存活
//   - GET /health/ready: 全部电路族密钥就绪
type HealthHandler struct {
	manager   attestation.Manager
	startTime time.Time
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(manager attestation.Manager) *HealthHandler {
	return &HealthHandler{manager: manager, startTime: time.Now()}
}

// RegisterRoutes 注册健康检查路由
func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	health := r.Group("/health")
	health.GET("/live", h.GetLiveness)
	health.GET("/ready", h.GetReadiness)
}

// GetLiveness 存活检查
func (h *HealthHandler) GetLiveness(c *gin.Context) {
	respondOK(c, http.StatusOK, gin.H{
		"status": "alive",
		"uptime": time.Since(h.startTime).Round(time.Second).String(),
	})
}

// GetReadiness 就绪检查
func (h *HealthHandler) GetReadiness(c *gin.Context) {
	var pending []string
	for _, family := range types.AllCircuitFamilies() {
		if !h.manager.Ready(family) {
			pending = append(pending, family.String())
		}
	}
	if len(pending) > 0 {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, StandardAPIResponse{
			Success: false,
			Data:    gin.H{"pending": pending},
			Error:   &APIError{Code: ErrorCodeServiceUnavailable, Message: "电路族密钥未就绪"},
		})
		return
	}
	respondOK(c, http.StatusOK, gin.H{"status": "ready"})
}
