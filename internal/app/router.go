package app

import (
	"github.com/gin-gonic/gin"

	"github.com/fundrazor/fundrazor-backend/internal/server"
)

func wireRouter(cfg Config, handlerset Handlers, mw Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		ServiceName:  cfg.ServiceName,
		AllowOrigins: cfg.AllowOrigins,

		AuthMiddleware: mw.Auth,

		AuthHandler:           handlerset.Auth,
		PersonHandler:         handlerset.Person,
		GiftHandler:           handlerset.Gift,
		InteractionHandler:    handlerset.Interaction,
		OpportunityHandler:    handlerset.Opportunity,
		TaskHandler:           handlerset.Task,
		GrantHandler:          handlerset.Grant,
		MeetingNoteHandler:    handlerset.MeetingNote,
		WorkflowHandler:       handlerset.Workflow,
		RecommendationHandler: handlerset.Recommendation,
		DashboardHandler:      handlerset.Dashboard,
	})
}
