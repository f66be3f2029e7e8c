package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/titanhub-backend/internal/handlers"
)

type RouterConfig struct {
	ServiceName      string
	AllowOrigins     []string
	SessionHandler   *handlers.SessionHandler
	DashboardHandler *handlers.DashboardHandler
	SyncHandler      *handlers.SyncHandler
	AssistantHandler *handlers.AssistantHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware(cfg.ServiceName))

	// Cors
	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Requested-With", "X-Session-Token"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Session
		api.POST("/session/login", cfg.SessionHandler.Login)
		api.GET("/session", cfg.SessionHandler.Get)
		api.POST("/session/logout", cfg.SessionHandler.Logout)
		// Records
		api.GET("/records", cfg.DashboardHandler.ListRecords)
		api.GET("/members", cfg.DashboardHandler.ListMembers)
		api.GET("/members/:key", cfg.DashboardHandler.GetMember)
		api.GET("/trainers", cfg.DashboardHandler.ListTrainers)
		api.GET("/trainers/:name", cfg.DashboardHandler.GetTrainer)
		// Analytics
		api.GET("/analytics/distributions", cfg.DashboardHandler.GetDistributions)
		api.GET("/analytics/metrics", cfg.DashboardHandler.GetMetrics)
		api.GET("/analytics/rankings", cfg.DashboardHandler.GetRankings)
		// Sync
		api.GET("/sync/status", cfg.SyncHandler.GetStatus)
		api.POST("/sync/refresh", cfg.SyncHandler.Refresh)
		api.POST("/sync/demo", cfg.SyncHandler.LoadDemo)
		// Assistant
		api.POST("/assistant/chat", cfg.AssistantHandler.Chat)
	}

	return router
}
