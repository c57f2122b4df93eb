package app

import (
	"github.com/fundrazor/fundrazor-backend/internal/handlers"
	"github.com/fundrazor/fundrazor-backend/internal/pkg/logger"
)

type Handlers struct {
	Auth           *handlers.AuthHandler
	Person         *handlers.PersonHandler
	Gift           *handlers.GiftHandler
	Interaction    *handlers.InteractionHandler
	Opportunity    *handlers.OpportunityHandler
	Task           *handlers.TaskHandler
	Grant          *handlers.GrantHandler
	MeetingNote    *handlers.MeetingNoteHandler
	Workflow       *handlers.WorkflowHandler
	Recommendation *handlers.RecommendationHandler
	Dashboard      *handlers.DashboardHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:           handlers.NewAuthHandler(services.Auth),
		Person:         handlers.NewPersonHandler(services.Person),
		Gift:           handlers.NewGiftHandler(services.Gift, services.Dashboard),
		Interaction:    handlers.NewInteractionHandler(services.Interaction),
		Opportunity:    handlers.NewOpportunityHandler(services.Opportunity, services.Dashboard),
		Task:           handlers.NewTaskHandler(services.Task, services.Dashboard),
		Grant:          handlers.NewGrantHandler(services.Grant),
		MeetingNote:    handlers.NewMeetingNoteHandler(services.MeetingNote),
		Workflow:       handlers.NewWorkflowHandler(services.Workflow),
		Recommendation: handlers.NewRecommendationHandler(services.Recommendation, services.Dashboard),
		Dashboard:      handlers.NewDashboardHandler(services.Dashboard),
	}
}
