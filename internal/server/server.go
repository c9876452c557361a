// Package server exposes the invoice editor over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/dhruvent/billing/internal/config"
	"github.com/dhruvent/billing/internal/export"
	domain "github.com/dhruvent/billing/internal/invoice/domain"
	"github.com/dhruvent/billing/internal/invoice/render"
	"github.com/dhruvent/billing/internal/observability"
	"github.com/dhruvent/billing/internal/observability/logger"
	"github.com/dhruvent/billing/internal/providers/pdf"
)

var Module = fx.Module("server",
	fx.Provide(
		NewEngine,
		NewServer,
	),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, obs observability.Config) *gin.Engine {
	if !obs.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		Debug:           obs.Debug(),
		ErrorClassifier: classifyError,
	}))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.AppName})
	})

	return r
}

type ServerParam struct {
	fx.In

	Cfg      config.Config
	Log      *zap.Logger
	Engine   *gin.Engine
	Service  domain.Service
	Renderer render.Renderer
	Exporter *export.Exporter
	Printer  pdf.Provider
}

type Server struct {
	cfg      config.Config
	log      *zap.Logger
	engine   *gin.Engine
	service  domain.Service
	renderer render.Renderer
	exporter *export.Exporter
	printer  pdf.Provider
}

func NewServer(p ServerParam) *Server {
	s := &Server{
		cfg:      p.Cfg,
		log:      p.Log.Named("server"),
		engine:   p.Engine,
		service:  p.Service,
		renderer: p.Renderer,
		exporter: p.Exporter,
		printer:  p.Printer,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/invoice/view", s.InvoiceView)

	api := s.engine.Group("/api/invoice")
	{
		api.GET("", s.GetInvoice)
		api.PATCH("/header", s.UpdateHeader)
		api.PUT("/parties/:kind", s.UpdateParty)
		api.POST("/parties/copy", s.CopyBillToShipTo)
		api.PUT("/bank-details", s.UpdateBankDetails)
		api.PUT("/tax-rates", s.UpdateTaxRates)
		api.POST("/items", s.AddLineItem)
		api.PATCH("/items/:id", s.UpdateLineItem)
		api.DELETE("/items/:id", s.RemoveLineItem)
		api.POST("/new", s.NewInvoice)
		api.POST("/export", s.ExportInvoice)
		api.GET("/print", s.PrintInvoice)
	}
}

func run(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			s.log.Info("server.listening", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.log.Error("server.serve_failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
