// Package server exposes the HTTP API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	authdomain "github.com/ParthhMahajann/rera-quotation-system/internal/auth/domain"
	"github.com/ParthhMahajann/rera-quotation-system/internal/auth/session"
	"github.com/ParthhMahajann/rera-quotation-system/internal/authorization"
	"github.com/ParthhMahajann/rera-quotation-system/internal/config"
	obslogger "github.com/ParthhMahajann/rera-quotation-system/internal/observability/logger"
	obsmetrics "github.com/ParthhMahajann/rera-quotation-system/internal/observability/metrics"
	pricingdomain "github.com/ParthhMahajann/rera-quotation-system/internal/pricing/domain"
	"github.com/ParthhMahajann/rera-quotation-system/internal/providers/pdf"
	quotationdomain "github.com/ParthhMahajann/rera-quotation-system/internal/quotation/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine(httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware())
	r.Use(httpMetrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now().UTC().Format(time.RFC3339)})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	log          *zap.Logger
	authsvc      authdomain.Service
	sessions     *session.Manager
	authzSvc     authorization.Service
	pricingSvc   pricingdomain.Service
	quotationSvc quotationdomain.Service
	pdfProvider  pdf.Provider
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	Log          *zap.Logger
	Authsvc      authdomain.Service
	Sessions     *session.Manager
	AuthzSvc     authorization.Service
	PricingSvc   pricingdomain.Service
	QuotationSvc quotationdomain.Service
	PDFProvider  pdf.Provider
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		log:          p.Log.Named("http.server"),
		authsvc:      p.Authsvc,
		sessions:     p.Sessions,
		authzSvc:     p.AuthzSvc,
		pricingSvc:   p.PricingSvc,
		quotationSvc: p.QuotationSvc,
		pdfProvider:  p.PDFProvider,
	}
}

func registerRoutes(s *Server) {
	s.registerAuthRoutes()
	s.registerQuotationRoutes()
	s.registerAgentRoutes()
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/api/auth")
	auth.POST("/signup", s.Signup)
	auth.POST("/login", s.Login)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerQuotationRoutes() {
	api := s.engine.Group("/api", s.AuthRequired())

	api.POST("/quotations/calculate-pricing",
		s.authorize(authorization.ObjectPricing, authorization.ActionCalculate), s.CalculatePricing)

	api.GET("/quotations",
		s.authorize(authorization.ObjectQuotation, authorization.ActionView), s.ListQuotations)
	api.POST("/quotations",
		s.authorize(authorization.ObjectQuotation, authorization.ActionCreate), s.CreateQuotation)
	api.GET("/quotations/:id",
		s.authorize(authorization.ObjectQuotation, authorization.ActionView), s.GetQuotation)
	api.PUT("/quotations/:id",
		s.authorize(authorization.ObjectQuotation, authorization.ActionUpdate), s.UpdateQuotation)
	api.PUT("/quotations/:id/pricing",
		s.authorize(authorization.ObjectQuotation, authorization.ActionUpdate), s.UpdateQuotationPricing)
	api.PUT("/quotations/:id/terms",
		s.authorize(authorization.ObjectQuotation, authorization.ActionUpdate), s.UpdateQuotationTerms)
	api.POST("/quotations/:id/decision",
		s.authorize(authorization.ObjectQuotation, authorization.ActionDecide), s.DecideQuotation)
	api.DELETE("/quotations/:id",
		s.authorize(authorization.ObjectQuotation, authorization.ActionDelete), s.DeleteQuotation)
	api.GET("/quotations/:id/pdf",
		s.authorize(authorization.ObjectQuotation, authorization.ActionView), s.QuotationPDF)
}

func (s *Server) registerAgentRoutes() {
	api := s.engine.Group("/api", s.AuthRequired())

	api.GET("/agent-registrations",
		s.authorize(authorization.ObjectAgentRegistration, authorization.ActionView), s.ListAgentRegistrations)
	api.POST("/agent-registrations",
		s.authorize(authorization.ObjectAgentRegistration, authorization.ActionCreate), s.CreateAgentRegistration)
	api.GET("/agent-registrations/:id",
		s.authorize(authorization.ObjectAgentRegistration, authorization.ActionView), s.GetAgentRegistration)
	api.PUT("/agent-registrations/:id/services",
		s.authorize(authorization.ObjectAgentRegistration, authorization.ActionUpdate), s.UpdateAgentServices)
	api.PUT("/agent-registrations/:id/complete",
		s.authorize(authorization.ObjectAgentRegistration, authorization.ActionUpdate), s.CompleteAgentRegistration)
	api.PUT("/agent-registrations/:id/pricing",
		s.authorize(authorization.ObjectAgentRegistration, authorization.ActionUpdate), s.UpdateAgentPricing)
	api.DELETE("/agent-registrations/:id",
		s.authorize(authorization.ObjectAgentRegistration, authorization.ActionDelete), s.DeleteAgentRegistration)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
