package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/facturio/facturio/internal/auth/domain"
	clientdomain "github.com/facturio/facturio/internal/client/domain"
	"github.com/facturio/facturio/internal/config"
	dashboarddomain "github.com/facturio/facturio/internal/dashboard/domain"
	invoicedomain "github.com/facturio/facturio/internal/invoice/domain"
	obslogger "github.com/facturio/facturio/internal/observability/logger"
	obsmetrics "github.com/facturio/facturio/internal/observability/metrics"
	obstracing "github.com/facturio/facturio/internal/observability/tracing"
	projectdomain "github.com/facturio/facturio/internal/project/domain"
	"github.com/facturio/facturio/internal/providers/pdf"
	settingsdomain "github.com/facturio/facturio/internal/settings/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(log, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
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

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	genID        *snowflake.Node
	authSvc      authdomain.Service
	clientSvc    clientdomain.Service
	projectSvc   projectdomain.Service
	invoiceSvc   invoicedomain.Service
	settingsSvc  settingsdomain.Service
	dashboardSvc dashboarddomain.Service
	pdfRenderer  pdf.Renderer
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	GenID        *snowflake.Node
	AuthSvc      authdomain.Service
	ClientSvc    clientdomain.Service
	ProjectSvc   projectdomain.Service
	InvoiceSvc   invoicedomain.Service
	SettingsSvc  settingsdomain.Service
	DashboardSvc dashboarddomain.Service
	PDFRenderer  pdf.Renderer
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		genID:        p.GenID,
		authSvc:      p.AuthSvc,
		clientSvc:    p.ClientSvc,
		projectSvc:   p.ProjectSvc,
		invoiceSvc:   p.InvoiceSvc,
		settingsSvc:  p.SettingsSvc,
		dashboardSvc: p.DashboardSvc,
		pdfRenderer:  p.PDFRenderer,
	}

	s.registerAuthRoutes()
	s.registerAPIRoutes()

	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/register", s.Register)
	auth.POST("/login", s.Login)
	auth.GET("/verify", s.Verify)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.AuthRequired())

	// -------- Clients --------
	api.GET("/clients", s.ListClients)
	api.POST("/clients", s.CreateClient)
	api.GET("/clients/:id", s.GetClientByID)
	api.PATCH("/clients/:id", s.UpdateClient)
	api.DELETE("/clients/:id", s.DeleteClient)

	// -------- Projects --------
	api.GET("/projects", s.ListProjects)
	api.POST("/projects", s.CreateProject)
	api.GET("/projects/:id", s.GetProjectByID)
	api.PATCH("/projects/:id", s.UpdateProject)
	api.DELETE("/projects/:id", s.DeleteProject)

	// -------- Invoices --------
	api.GET("/invoices", s.ListInvoices)
	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.PATCH("/invoices/:id", s.UpdateInvoice)
	api.DELETE("/invoices/:id", s.DeleteInvoice)
	api.GET("/invoices/:id/pdf", s.RenderInvoicePDF)

	// -------- Config --------
	api.GET("/config", s.GetSettings)
	api.PATCH("/config", s.AdminRequired(), s.UpdateSettings)

	// -------- Dashboard --------
	api.GET("/stats/dashboard", s.GetDashboardStats)

	// -------- Users (admin) --------
	api.GET("/users", s.AdminRequired(), s.ListUsers)
	api.POST("/users", s.AdminRequired(), s.CreateUser)
	api.GET("/users/:id", s.AdminRequired(), s.GetUserByID)
	api.PUT("/users/:id", s.AdminRequired(), s.UpdateUser)
	api.DELETE("/users/:id", s.AdminRequired(), s.DeleteUser)
}
