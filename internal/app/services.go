package app

import (
	"gorm.io/gorm"

	"github.com/fundrazor/fundrazor-backend/internal/clients/redis"
	"github.com/fundrazor/fundrazor-backend/internal/pkg/logger"
	"github.com/fundrazor/fundrazor-backend/internal/services"
)

type Services struct {
	Auth           services.AuthService
	Person         services.PersonService
	Scoring        services.ScoringService
	Gift           services.GiftService
	Interaction    services.InteractionService
	Opportunity    services.OpportunityService
	Task           services.TaskService
	Grant          services.GrantService
	MeetingNote    services.MeetingNoteService
	Workflow       services.WorkflowService
	Recommendation services.RecommendationService
	Dashboard      services.DashboardService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, cache redis.Cache) Services {
	log.Info("Wiring services...")

	scoringService := services.NewScoringService(db, log, reposet.Person, reposet.Gift, reposet.Interaction)

	return Services{
		Auth:        services.NewAuthService(db, log, reposet.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Person:      services.NewPersonService(db, log, reposet.Person),
		Scoring:     scoringService,
		Gift:        services.NewGiftService(db, log, reposet.Gift, reposet.Person, scoringService),
		Interaction: services.NewInteractionService(db, log, reposet.Interaction, reposet.Person, scoringService),
		Opportunity: services.NewOpportunityService(db, log, reposet.Opportunity, reposet.Person),
		Task:        services.NewTaskService(db, log, reposet.Task, reposet.Person),
		Grant:       services.NewGrantService(db, log, reposet.Grant),
		MeetingNote: services.NewMeetingNoteService(db, log, reposet.MeetingNote, reposet.Person),
		Workflow:    services.NewWorkflowService(db, log, reposet.Workflow),
		Recommendation: services.NewRecommendationService(
			db,
			log,
			cfg.DefaultOwnerRole,
			reposet.Person,
			reposet.Gift,
			reposet.Interaction,
			reposet.Opportunity,
			reposet.Task,
			reposet.User,
		),
		Dashboard: services.NewDashboardService(
			db,
			log,
			reposet.Gift,
			reposet.Opportunity,
			reposet.Task,
			reposet.Person,
			cache,
			cfg.DashboardTTL,
		),
	}
}
