package app

import (
	"gorm.io/gorm"

	"github.com/fundrazor/fundrazor-backend/internal/pkg/logger"
	"github.com/fundrazor/fundrazor-backend/internal/repos"
)

type Repos struct {
	User        repos.UserRepo
	Person      repos.PersonRepo
	Gift        repos.GiftRepo
	Interaction repos.InteractionRepo
	Opportunity repos.OpportunityRepo
	Task        repos.TaskRepo
	Grant       repos.GrantRepo
	MeetingNote repos.MeetingNoteRepo
	Workflow    repos.WorkflowRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:        repos.NewUserRepo(db, log),
		Person:      repos.NewPersonRepo(db, log),
		Gift:        repos.NewGiftRepo(db, log),
		Interaction: repos.NewInteractionRepo(db, log),
		Opportunity: repos.NewOpportunityRepo(db, log),
		Task:        repos.NewTaskRepo(db, log),
		Grant:       repos.NewGrantRepo(db, log),
		MeetingNote: repos.NewMeetingNoteRepo(db, log),
		Workflow:    repos.NewWorkflowRepo(db, log),
	}
}
