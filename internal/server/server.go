// Package server assembles repositories, services and handlers into the
// HTTP engine.
package server

import (
	"net/http"

	"buildledger/internal/domain/auth"
	"buildledger/internal/domain/catalog"
	"buildledger/internal/domain/client"
	"buildledger/internal/domain/dashboard"
	"buildledger/internal/domain/deletion"
	"buildledger/internal/domain/invoice"
	"buildledger/internal/domain/project"
	"buildledger/internal/domain/quotation"
	"buildledger/internal/domain/settings"
	"buildledger/internal/metrics"
	"buildledger/internal/middleware"
	"buildledger/internal/pkg/ids"
	"buildledger/internal/pkg/jwt"
	"buildledger/internal/realtime"
	"buildledger/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Deps struct {
	Store          *store.DB
	JWT            *jwt.Service
	IDs            *ids.Generator
	Metrics        *metrics.Metrics
	Log            *zap.Logger
	AllowedOrigins []string
}

// App is the wired application. Hub is exposed so callers can inspect or
// drain live subscribers.
type App struct {
	Engine *gin.Engine
	Hub    *realtime.Hub
}

func New(d Deps) *App {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	clientRepo := client.NewRepository(d.Store)
	projectRepo := project.NewRepository(d.Store, clientRepo)
	quotationRepo := quotation.NewRepository(d.Store, projectRepo, clientRepo)
	invoiceRepo := invoice.NewRepository(d.Store, projectRepo, clientRepo)
	settingsRepo := settings.NewRepository(d.Store)
	catalogRepo := catalog.NewRepository(d.Store)
	userRepo := auth.NewRepository(d.Store)
	deletionRepo := deletion.NewRepository(d.Store)

	hub := realtime.NewHub(log.Named("realtime"))

	authService := auth.NewService(userRepo, d.JWT, log.Named("auth"))
	clientService := client.NewService(clientRepo, d.IDs, log.Named("client"))
	projectService := project.NewService(projectRepo, clientRepo, d.IDs, log.Named("project"))
	settingsService := settings.NewService(settingsRepo, log.Named("settings"))
	quotationService := quotation.NewService(quotationRepo, projectRepo, settingsRepo, d.IDs, d.Metrics, log.Named("quotation"))
	invoiceService := invoice.NewService(invoiceRepo, projectRepo, quotationRepo, settingsRepo, d.IDs, d.Metrics, log.Named("invoice"))
	deletionService := deletion.NewService(deletionRepo, quotationRepo, invoiceRepo, d.IDs,
		realtime.NewDeletionNotifier(hub), d.Metrics, log.Named("deletion"))
	dashboardService := dashboard.NewService(quotationRepo, invoiceRepo, clientRepo, projectRepo)

	authHandler := auth.NewHandler(authService)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(log),
		middleware.RequestLogger(log.Named("http")),
		middleware.CORS(d.AllowedOrigins),
		d.Metrics.Middleware(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}
	realtime.NewHandler(hub, d.JWT, middleware.AllowedOrigins(d.AllowedOrigins), log.Named("realtime")).RegisterRoutes(r)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(d.JWT))
		{
			authHandler.RegisterProtectedRoutes(protected)
			client.NewHandler(clientService).RegisterRoutes(protected)
			project.NewHandler(projectService).RegisterRoutes(protected)
			catalog.NewHandler(catalogRepo).RegisterRoutes(protected)
			settings.NewHandler(settingsService).RegisterRoutes(protected)
			quotation.NewHandler(quotationService).RegisterRoutes(protected)
			invoice.NewHandler(invoiceService).RegisterRoutes(protected)
			deletion.NewHandler(deletionService).RegisterRoutes(protected)
			dashboard.NewHandler(dashboardService).RegisterRoutes(protected)
		}
	}

	return &App{Engine: r, Hub: hub}
}
