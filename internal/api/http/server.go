// Package http 提供证明验证的 HTTP API
package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/weisyn/zkattest/internal/api/http/handlers"
	"github.com/weisyn/zkattest/internal/api/http/middleware"
	apiconfig "github.com/weisyn/zkattest/internal/config/api"
	"github.com/weisyn/zkattest/pkg/interfaces/attestation"
	"github.com/weisyn/zkattest/pkg/interfaces/infrastructure/log"
)

// Server HTTP服务器
//
// 路由：
//   - /health/live, /health/ready
//   - /metrics (Prometheus)
//   - /api/v1/attestation/*
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	options    *apiconfig.HTTPConfig
	logger     log.Logger
	manager    attestation.Manager

	mu       sync.Mutex
	listener net.Listener
}

// NewServer 创建HTTP服务器并注册路由
func NewServer(options *apiconfig.HTTPConfig, logger log.Logger, manager attestation.Manager) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(logger),
		middleware.Metrics(),
		limitBody(options.MaxRequestSize),
	)

	s := &Server{
		router:  router,
		options: options,
		logger:  logger,
		manager: manager,
	}
	s.setupRoutes()
	return s
}

func limitBody(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

// setupRoutes 设置HTTP路由
func (s *Server) setupRoutes() {
	handlers.NewHealthHandler(s.manager).RegisterRoutes(s.router)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/api/v1")
	handlers.NewAttestationHandlers(s.manager, s.logger).RegisterRoutes(v1)
}

// Handler 返回路由处理器
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start 监听并在后台提供服务
func (s *Server) Start() error {
	addr := net.JoinHostPort(s.options.Host, fmt.Sprintf("%d", s.options.Port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("HTTP服务器监听失败 %s: %w", addr, err)
	}

	s.mu.Lock()
	s.listener = listener
	s.httpServer = &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.options.ReadTimeout,
		WriteTimeout: s.options.WriteTimeout,
	}
	server := s.httpServer
	s.mu.Unlock()

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Errorf("HTTP服务器异常退出: %v", err)
		}
	}()

	s.logger.Infof("HTTP服务器已启动: http://%s", listener.Addr())
	return nil
}

// Addr 实际监听地址，未启动时为空
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop 优雅关闭
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	server := s.httpServer
	s.mu.Unlock()
	if server == nil {
		return nil
	}
	s.logger.Info("正在关闭HTTP服务器")
	return server.Shutdown(ctx)
}
