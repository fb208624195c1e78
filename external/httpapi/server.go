// Package httpapi exposes the clinical pipeline over HTTP.
package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nicksboson/CeriNote/internal/audit"
	"github.com/nicksboson/CeriNote/internal/config"
	"github.com/nicksboson/CeriNote/internal/consent"
	"github.com/nicksboson/CeriNote/internal/pipeline"
	"github.com/nicksboson/CeriNote/internal/retention"
	"github.com/nicksboson/CeriNote/internal/risk"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	cfg       *config.Config
	orch      *pipeline.Orchestrator
	scanner   *risk.Scanner
	auditLog  audit.Log
	consents  consent.Ledger
	retention *retention.Policy
	gatherer  prometheus.Gatherer
}

func NewServer(cfg *config.Config, orch *pipeline.Orchestrator, scanner *risk.Scanner, auditLog audit.Log, consents consent.Ledger, policy *retention.Policy, gatherer prometheus.Gatherer) *Server {
	return &Server{
		cfg:       cfg,
		orch:      orch,
		scanner:   scanner,
		auditLog:  auditLog,
		consents:  consents,
		retention: policy,
		gatherer:  gatherer,
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	if !s.cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	router.Static("/uploads", s.cfg.UploadsDir)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	router.GET("/api/health", s.handleHealth)

	recordings := router.Group("/api/recordings")
	{
		recordings.POST("/upload", s.handleUpload)
		recordings.POST("/process", s.handleProcess)
		recordings.GET("", s.handleList)
		recordings.GET("/:id", s.handleGet)
		recordings.PATCH("/:id", s.handleRename)
		recordings.DELETE("/:id", s.handleDelete)
		recordings.GET("/:id/export", s.handleExport)
		recordings.POST("/:id/transcribe", s.handleTranscribe)
	}

	reports := router.Group("/api/reports")
	{
		reports.POST("/generate", s.handleGenerateReport)
		reports.POST("/soap", s.handleGenerateSOAP)
	}

	clinical := router.Group("/api/clinical")
	{
		clinical.POST("/icd-codes", s.handleSuggestCodes)
		clinical.POST("/scales", s.handleEstimateScales)
	}

	security := router.Group("/api/security")
	{
		security.POST("/consent", s.handleLogConsent)
		security.GET("/consent/:sessionId", s.handleGetConsent)
		security.GET("/consent/:sessionId/export", s.handleExportConsent)
		security.GET("/audit/:sessionId", s.handleSessionAudit)
		security.GET("/audit", s.handleFullAudit)
		security.GET("/storage", s.handleStorageStats)
		security.GET("/risk-categories", s.handleRiskCategories)
		security.GET("/medications", s.handleMedications)
		security.GET("/privacy-policy", s.handlePrivacyPolicy)
	}

	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Port),
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("http server listening", "port", s.cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
