// Package handlers provides HTTP API handlers for the attestation service
package handlers

import "github.com/gin-gonic/gin"

// StandardAPIResponse 标准API响应格式
type StandardAPIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError 标准错误结构
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	ErrorCodeInvalidJSON        = "INVALID_JSON"
	ErrorCodeInvalidParameter   = "INVALID_PARAMETER"
	ErrorCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, StandardAPIResponse{Success: true, Data: data})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, StandardAPIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: message},
	})
}
