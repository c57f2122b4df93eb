package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fundrazor/fundrazor-backend/internal/pkg/logger"
	"github.com/fundrazor/fundrazor-backend/internal/repos"
	"github.com/fundrazor/fundrazor-backend/internal/types"
)

var validStages = map[string]struct{}{
	types.StageProspect:    {},
	types.StageCultivation: {},
	types.StageAsk:         {},
	types.StageSteward:     {},
	types.StageRenewal:     {},
}

type OpportunityService interface {
	CreateOpportunity(ctx context.Context, opportunity *types.Opportunity) (*types.Opportunity, error)
	ListOpportunities(ctx context.Context, personID *uuid.UUID) ([]*types.Opportunity, error)
	UpdateOpportunity(ctx context.Context, opportunityID uuid.UUID, fields map[string]any) (*types.Opportunity, error)
	// MoveStage transitions an opportunity and resets its stage clock.
	MoveStage(ctx context.Context, opportunityID uuid.UUID, stage string) (*types.Opportunity, error)
	DeleteOpportunity(ctx context.Context, opportunityID uuid.UUID) error
}

type opportunityService struct {
	db              *gorm.DB
	log             *logger.Logger
	opportunityRepo repos.OpportunityRepo
	personRepo      repos.PersonRepo
	now             func() time.Time
}

func NewOpportunityService(db *gorm.DB, log *logger.Logger, opportunityRepo repos.OpportunityRepo, personRepo repos.PersonRepo) OpportunityService {
	serviceLog := log.With("service", "OpportunityService")
	return &opportunityService{
		db:              db,
		log:             serviceLog,
		opportunityRepo: opportunityRepo,
		personRepo:      personRepo,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (os *opportunityService) CreateOpportunity(ctx context.Context, opportunity *types.Opportunity) (*types.Opportunity, error) {
	if opportunity == nil {
		return nil, fmt.Errorf("opportunity required")
	}
	if opportunity.PersonID == uuid.Nil {
		return nil, fmt.Errorf("person_id required")
	}
	if opportunity.Name == "" {
		return nil, fmt.Errorf("name required")
	}
	if opportunity.Stage == "" {
		opportunity.Stage = types.StageProspect
	}
	if _, ok := validStages[opportunity.Stage]; !ok {
		return nil, fmt.Errorf("invalid stage %q", opportunity.Stage)
	}
	if opportunity.Probability < 0 || opportunity.Probability > 100 {
		return nil, fmt.Errorf("probability must be 0-100")
	}

	persons, err := os.personRepo.GetByIDs(ctx, nil, []uuid.UUID{opportunity.PersonID})
	if err != nil {
		return nil, fmt.Errorf("fetch person: %w", err)
	}
	if len(persons) == 0 {
		return nil, fmt.Errorf("person does not exist")
	}

	opportunity.ID = uuid.New()
	opportunity.StageEnteredAt = os.now()
	created, err := os.opportunityRepo.Create(ctx, nil, []*types.Opportunity{opportunity})
	if err != nil {
		return nil, fmt.Errorf("create opportunity: %w", err)
	}
	return created[0], nil
}

func (os *opportunityService) ListOpportunities(ctx context.Context, personID *uuid.UUID) ([]*types.Opportunity, error) {
	if personID != nil {
		return os.opportunityRepo.ListByPersonID(ctx, nil, *personID)
	}
	return os.opportunityRepo.List(ctx, nil)
}

func (os *opportunityService) UpdateOpportunity(ctx context.Context, opportunityID uuid.UUID, fields map[string]any) (*types.Opportunity, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("no updates provided")
	}
	// Stage moves go through MoveStage so the stage clock resets with them.
	if _, ok := fields["stage"]; ok {
		return nil, fmt.Errorf("use the stage move operation to change stage")
	}

	var out *types.Opportunity
	if err := os.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := os.opportunityRepo.GetByIDs(ctx, tx, []uuid.UUID{opportunityID})
		if err != nil {
			return fmt.Errorf("fetch opportunity: %w", err)
		}
		if len(found) == 0 {
			return fmt.Errorf("opportunity does not exist")
		}

		if err := os.opportunityRepo.UpdateFields(ctx, tx, opportunityID, fields); err != nil {
			return fmt.Errorf("update opportunity: %w", err)
		}

		reloaded, err := os.opportunityRepo.GetByIDs(ctx, tx, []uuid.UUID{opportunityID})
		if err != nil || len(reloaded) == 0 {
			return fmt.Errorf("reload opportunity after update")
		}
		out = reloaded[0]
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (os *opportunityService) MoveStage(ctx context.Context, opportunityID uuid.UUID, stage string) (*types.Opportunity, error) {
	if _, ok := validStages[stage]; !ok {
		return nil, fmt.Errorf("invalid stage %q", stage)
	}

	var out *types.Opportunity
	if err := os.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := os.opportunityRepo.GetByIDs(ctx, tx, []uuid.UUID{opportunityID})
		if err != nil {
			return fmt.Errorf("fetch opportunity: %w", err)
		}
		if len(found) == 0 {
			return fmt.Errorf("opportunity does not exist")
		}

		if err := os.opportunityRepo.MoveStage(ctx, tx, opportunityID, stage, os.now()); err != nil {
			return fmt.Errorf("move stage: %w", err)
		}

		reloaded, err := os.opportunityRepo.GetByIDs(ctx, tx, []uuid.UUID{opportunityID})
		if err != nil || len(reloaded) == 0 {
			return fmt.Errorf("reload opportunity after stage move")
		}
		out = reloaded[0]
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (os *opportunityService) DeleteOpportunity(ctx context.Context, opportunityID uuid.UUID) error {
	return os.opportunityRepo.Delete(ctx, nil, opportunityID)
}
