package handlers

import (
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/weisyn/zkattest/internal/core/attestation/circuits"
	"github.com/weisyn/zkattest/pkg/interfaces/attestation"
	"github.com/weisyn/zkattest/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/zkattest/pkg/types"
)

// AttestationHandlers 证明验证端点
//
// 🔒 只暴露公开数据的操作（验证、电路族信息），证明生成需要见证，只在本地进行。
type AttestationHandlers struct {
	manager attestation.Manager
	logger  log.Logger
}

// NewAttestationHandlers 创建证明端点处理器
func NewAttestationHandlers(manager attestation.Manager, logger log.Logger) *AttestationHandlers {
	return &AttestationHandlers{manager: manager, logger: logger}
}

// RegisterRoutes 注册路由
//
//   - GET  /attestation/families
//   - POST /attestation/verify
func (h *AttestationHandlers) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/attestation")
	group.GET("/families", h.ListFamilies)
	group.POST("/verify", h.Verify)
}

// FamilyInfo 电路族信息
type FamilyInfo struct {
	Name         string `json:"name"`
	WitnessLen   int    `json:"witness_len"`
	PublicInputs int    `json:"public_inputs"`
	Ready        bool   `json:"ready"`
}

// ListFamilies 列出电路族及其密钥状态
func (h *AttestationHandlers) ListFamilies(c *gin.Context) {
	infos := make([]FamilyInfo, 0, len(types.AllCircuitFamilies()))
	for _, family := range circuits.Families() {
		spec, err := circuits.Lookup(family)
		if err != nil {
			continue
		}
		infos = append(infos, FamilyInfo{
			Name:         family.String(),
			WitnessLen:   spec.WitnessLen,
			PublicInputs: spec.PublicInputs(),
			Ready:        h.manager.Ready(family),
		})
	}
	respondOK(c, http.StatusOK, infos)
}

// VerifyRequest 验证请求，字节字段十六进制编码
type VerifyRequest struct {
	Family     string `json:"family" binding:"required"`
	Commitment string `json:"commitment" binding:"required"`
	Proof      string `json:"proof" binding:"required"`
}

// VerifyResponse 验证结果
type VerifyResponse struct {
	Valid  bool   `json:"valid"`
	Result string `json:"result"`
}

// Verify 验证证明
//
// 证明不成立是正常业务结果，返回 200 + valid=false；只有请求本身不合法时返回 400。
func (h *AttestationHandlers) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrorCodeInvalidJSON, err.Error())
		return
	}

	family, err := types.ParseCircuitFamily(req.Family)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrorCodeInvalidParameter, err.Error())
		return
	}
	commitment, err := hex.DecodeString(strings.TrimPrefix(req.Commitment, "0x"))
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrorCodeInvalidParameter, "commitment 不是合法的十六进制")
		return
	}
	proof, err := hex.DecodeString(strings.TrimPrefix(req.Proof, "0x"))
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrorCodeInvalidParameter, "proof 不是合法的十六进制")
		return
	}

	result := h.manager.Check(family, proof, commitment)
	respondOK(c, http.StatusOK, VerifyResponse{Valid: result.OK(), Result: result.String()})
}
