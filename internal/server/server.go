package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/packlane/packlane/internal/calclog"
	calclogdomain "github.com/packlane/packlane/internal/calclog/domain"
	"github.com/packlane/packlane/internal/clock"
	"github.com/packlane/packlane/internal/compliance"
	compliancedomain "github.com/packlane/packlane/internal/compliance/domain"
	"github.com/packlane/packlane/internal/config"
	"github.com/packlane/packlane/internal/ecomod"
	ecomoddomain "github.com/packlane/packlane/internal/ecomod/domain"
	"github.com/packlane/packlane/internal/feeapi"
	"github.com/packlane/packlane/internal/feecalc"
	feecalcdomain "github.com/packlane/packlane/internal/feecalc/domain"
	"github.com/packlane/packlane/internal/jurisdiction"
	jurisdictiondomain "github.com/packlane/packlane/internal/jurisdiction/domain"
	"github.com/packlane/packlane/internal/obligation"
	obligationdomain "github.com/packlane/packlane/internal/obligation/domain"
	"github.com/packlane/packlane/internal/observability"
	obsmiddleware "github.com/packlane/packlane/internal/observability/logger"
	obsmetrics "github.com/packlane/packlane/internal/observability/metrics"
	obstracing "github.com/packlane/packlane/internal/observability/tracing"
	"github.com/packlane/packlane/internal/providers/pdf"
	"github.com/packlane/packlane/internal/ratelimit"
	"github.com/packlane/packlane/internal/ratetable"
	ratetabledomain "github.com/packlane/packlane/internal/ratetable/domain"
	"github.com/packlane/packlane/internal/realtime"
	realtimedomain "github.com/packlane/packlane/internal/realtime/domain"
	"github.com/packlane/packlane/internal/realtime/liveevents"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	config.Module,
	fx.Provide(registerGin),
	ratetable.Module,
	feecalc.Module,
	ecomod.Module,
	obligation.Module,
	compliance.Module,
	calclog.Module,
	realtime.Module,
	feeapi.Module,
	jurisdiction.Module,
	ratelimit.Module,
	pdf.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config
	clock  clock.Clock

	rateSvc       ratetabledomain.Service
	feeSvc        feecalcdomain.Service
	ecoSvc        ecomoddomain.Service
	obligationSvc obligationdomain.Service
	complianceSvc compliancedomain.Service
	realtimeSvc   realtimedomain.Service
	calclogSvc    calclogdomain.Service

	jurisdictionSvc jurisdictiondomain.Service
	remoteFees      *feeapi.Client
	calcLimiter     *ratelimit.CalcAPILimiter
	pdfProvider     pdf.Provider
	calcEvents      *liveevents.Hub
}

type ServerParams struct {
	fx.In

	Gin   *gin.Engine
	Cfg   config.Config
	Clock clock.Clock

	RateSvc       ratetabledomain.Service
	FeeSvc        feecalcdomain.Service
	EcoSvc        ecomoddomain.Service
	ObligationSvc obligationdomain.Service
	ComplianceSvc compliancedomain.Service
	RealtimeSvc   realtimedomain.Service
	CalclogSvc    calclogdomain.Service

	JurisdictionSvc jurisdictiondomain.Service
	RemoteFees      *feeapi.Client
	CalcLimiter     *ratelimit.CalcAPILimiter `optional:"true"`
	PDFProvider     pdf.Provider
	CalcEvents      *liveevents.Hub
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		clock:           p.Clock,
		rateSvc:         p.RateSvc,
		feeSvc:          p.FeeSvc,
		ecoSvc:          p.EcoSvc,
		obligationSvc:   p.ObligationSvc,
		complianceSvc:   p.ComplianceSvc,
		realtimeSvc:     p.RealtimeSvc,
		calclogSvc:      p.CalclogSvc,
		jurisdictionSvc: p.JurisdictionSvc,
		remoteFees:      p.RemoteFees,
		calcLimiter:     p.CalcLimiter,
		pdfProvider:     p.PDFProvider,
		calcEvents:      p.CalcEvents,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")
	api.Use(s.CalcRateLimit())

	// -------- Fees --------
	api.POST("/fees/calculate", s.CalculateFees)
	api.POST("/fees/single", s.CalculateSingleFee)
	api.POST("/fees/modulate", s.ModulateFee)
	api.POST("/fees/remote", s.CalculateRemoteFees)

	// -------- Compliance --------
	api.POST("/obligation/evaluate", s.EvaluateObligation)
	api.POST("/compliance/score", s.ScoreCompliance)
	api.POST("/compliance/dashboard", s.ComplianceDashboard)
	api.POST("/reports/compliance.pdf", s.ComplianceReportPDF)

	// -------- Reference data --------
	api.GET("/jurisdictions", s.ListJurisdictions)
	api.GET("/rates/:region", s.GetRegionalRates)

	// -------- Realtime --------
	api.POST("/realtime/calculate", s.RealtimeCalculate)
	api.DELETE("/realtime/cache", s.ClearRealtimeCache)
	api.GET("/realtime/stream/:productId", s.StreamCalculations)
	api.GET("/realtime/history/:productId", s.CalculationHistory)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
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
