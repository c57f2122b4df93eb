package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/fundrazor/fundrazor-backend/internal/handlers"
	"github.com/fundrazor/fundrazor-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName  string
	AllowOrigins []string

	AuthMiddleware *middleware.AuthMiddleware

	AuthHandler           *handlers.AuthHandler
	PersonHandler         *handlers.PersonHandler
	GiftHandler           *handlers.GiftHandler
	InteractionHandler    *handlers.InteractionHandler
	OpportunityHandler    *handlers.OpportunityHandler
	TaskHandler           *handlers.TaskHandler
	GrantHandler          *handlers.GrantHandler
	MeetingNoteHandler    *handlers.MeetingNoteHandler
	WorkflowHandler       *handlers.WorkflowHandler
	RecommendationHandler *handlers.RecommendationHandler
	DashboardHandler      *handlers.DashboardHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "fundrazor-backend"
	}
	router.Use(otelgin.Middleware(serviceName))
	router.Use(middleware.AttachTraceContext())

	allowOrigins := cfg.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	// Persons
	api.POST("/persons", cfg.PersonHandler.Create)
	api.GET("/persons", cfg.PersonHandler.List)
	api.GET("/persons/:id", cfg.PersonHandler.Get)
	api.PATCH("/persons/:id", cfg.PersonHandler.Update)
	api.DELETE("/persons/:id", cfg.PersonHandler.Delete)

	// Gifts
	api.POST("/gifts", cfg.GiftHandler.Create)
	api.GET("/gifts", cfg.GiftHandler.List)
	api.GET("/gifts/:id", cfg.GiftHandler.Get)
	api.PATCH("/gifts/:id", cfg.GiftHandler.Update)
	api.DELETE("/gifts/:id", cfg.GiftHandler.Delete)

	// Interactions
	api.POST("/interactions", cfg.InteractionHandler.Create)
	api.GET("/interactions", cfg.InteractionHandler.List)
	api.PATCH("/interactions/:id", cfg.InteractionHandler.Update)
	api.DELETE("/interactions/:id", cfg.InteractionHandler.Delete)

	// Opportunities
	api.POST("/opportunities", cfg.OpportunityHandler.Create)
	api.GET("/opportunities", cfg.OpportunityHandler.List)
	api.PATCH("/opportunities/:id", cfg.OpportunityHandler.Update)
	api.POST("/opportunities/:id/stage", cfg.OpportunityHandler.MoveStage)
	api.DELETE("/opportunities/:id", cfg.OpportunityHandler.Delete)

	// Tasks
	api.POST("/tasks", cfg.TaskHandler.Create)
	api.GET("/tasks", cfg.TaskHandler.List)
	api.PATCH("/tasks/:id", cfg.TaskHandler.Update)
	api.POST("/tasks/:id/complete", cfg.TaskHandler.Complete)
	api.DELETE("/tasks/:id", cfg.TaskHandler.Delete)

	// Grants
	api.POST("/grants", cfg.GrantHandler.Create)
	api.GET("/grants", cfg.GrantHandler.List)
	api.PATCH("/grants/:id", cfg.GrantHandler.Update)
	api.DELETE("/grants/:id", cfg.GrantHandler.Delete)

	// Meeting notes
	api.POST("/meeting-notes", cfg.MeetingNoteHandler.Create)
	api.GET("/meeting-notes", cfg.MeetingNoteHandler.List)
	api.DELETE("/meeting-notes/:id", cfg.MeetingNoteHandler.Delete)

	// Workflows
	api.POST("/workflows", cfg.WorkflowHandler.Create)
	api.GET("/workflows", cfg.WorkflowHandler.List)
	api.PATCH("/workflows/:id", cfg.WorkflowHandler.Update)
	api.DELETE("/workflows/:id", cfg.WorkflowHandler.Delete)

	// Recommendations
	api.POST("/recommendations/generate", cfg.RecommendationHandler.Generate)

	// Dashboards
	api.GET("/dashboard/giving", cfg.DashboardHandler.Giving)
	api.GET("/dashboard/pipeline", cfg.DashboardHandler.Pipeline)
	api.GET("/dashboard/tasks", cfg.DashboardHandler.Tasks)

	return router
}
