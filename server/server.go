// Package server expõe a consulta de CNPJ por HTTP: consulta única,
// lote via upload de CSV, health e métricas.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/robertatena/quem-assina-cnpj/internal/config"
	"github.com/robertatena/quem-assina-cnpj/registry"
	"github.com/robertatena/quem-assina-cnpj/server/middleware"
)

// Server servidor HTTP da consulta de CNPJ.
type Server struct {
	cfg        *config.Config
	engine     *gin.Engine
	resolver   *registry.Resolver
	cache      *registry.Cache
	metrics    *MetricsCollector
	logger     *slog.Logger
	httpServer *http.Server
}

// New monta o servidor sobre um resolvedor já construído. Usado
// diretamente pelos testes, que injetam provedores stub.
func New(cfg *config.Config, resolver *registry.Resolver, cache *registry.Cache, metrics *MetricsCollector) *Server {
	s := &Server{
		cfg:      cfg,
		resolver: resolver,
		cache:    cache,
		metrics:  metrics,
		logger:   slog.Default().With("component", "server"),
	}
	s.engine = s.buildEngine()
	return s
}

// Build monta o servidor com os clientes reais a partir da configuração.
func Build(cfg *config.Config) *Server {
	cache := registry.NewCache(cfg.CacheTTL, cfg.CacheMaxSize)
	metrics := NewMetricsCollector()
	resolver := registry.NewResolverFromConfig(cfg, cache, metrics)
	return New(cfg, resolver, cache, metrics)
}

func (s *Server) buildEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(s.requestLogger())

	api := engine.Group("/api")
	{
		api.GET("/cnpj/:id", s.handleLookup)
		api.POST("/batch", s.handleBatch)
		api.GET("/health", s.handleHealth)
		api.GET("/metrics", s.handleMetrics)
	}
	return engine
}

// requestLogger loga cada requisição com duração e request ID.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetRequestID(c))
	}
}

// Start sobe o servidor e bloqueia até ele ser derrubado.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("server starting",
		"port", s.cfg.Port,
		"gateway_configured", s.cfg.GatewayConfigured(),
		"alt_providers", s.cfg.EnableAltProviders)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown derruba o servidor esperando as requisições em andamento.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info("server shutting down")
	return s.httpServer.Shutdown(ctx)
}

// Engine expõe o roteador para os testes de handler.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
