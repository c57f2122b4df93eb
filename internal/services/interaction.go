package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fundrazor/fundrazor-backend/internal/pkg/logger"
	"github.com/fundrazor/fundrazor-backend/internal/repos"
	"github.com/fundrazor/fundrazor-backend/internal/types"
)

var validInteractionTypes = map[string]struct{}{
	types.InteractionMeeting:    {},
	types.InteractionCall:       {},
	types.InteractionEmail:      {},
	types.InteractionEmailOpen:  {},
	types.InteractionEmailClick: {},
	types.InteractionEvent:      {},
	types.InteractionNote:       {},
	types.InteractionLetter:     {},
}

type InteractionService interface {
	CreateInteraction(ctx context.Context, interaction *types.Interaction) (*types.Interaction, error)
	ListInteractions(ctx context.Context, personID *uuid.UUID) ([]*types.Interaction, error)
	UpdateInteraction(ctx context.Context, interactionID uuid.UUID, fields map[string]any) (*types.Interaction, error)
	DeleteInteraction(ctx context.Context, interactionID uuid.UUID) error
}

type interactionService struct {
	db              *gorm.DB
	log             *logger.Logger
	interactionRepo repos.InteractionRepo
	personRepo      repos.PersonRepo
	scoringService  ScoringService
}

func NewInteractionService(db *gorm.DB, log *logger.Logger, interactionRepo repos.InteractionRepo, personRepo repos.PersonRepo, scoringService ScoringService) InteractionService {
	serviceLog := log.With("service", "InteractionService")
	return &interactionService{
		db:              db,
		log:             serviceLog,
		interactionRepo: interactionRepo,
		personRepo:      personRepo,
		scoringService:  scoringService,
	}
}

func (is *interactionService) CreateInteraction(ctx context.Context, interaction *types.Interaction) (*types.Interaction, error) {
	if interaction == nil {
		return nil, fmt.Errorf("interaction required")
	}
	if interaction.PersonID == uuid.Nil {
		return nil, fmt.Errorf("person_id required")
	}
	if _, ok := validInteractionTypes[interaction.Type]; !ok {
		return nil, fmt.Errorf("invalid interaction type %q", interaction.Type)
	}
	if interaction.OccurredAt.IsZero() {
		return nil, fmt.Errorf("occurred_at required")
	}

	var out *types.Interaction
	if err := is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		persons, err := is.personRepo.GetByIDs(ctx, tx, []uuid.UUID{interaction.PersonID})
		if err != nil {
			return fmt.Errorf("fetch person: %w", err)
		}
		if len(persons) == 0 {
			return fmt.Errorf("person does not exist")
		}

		interaction.ID = uuid.New()
		created, err := is.interactionRepo.Create(ctx, tx, []*types.Interaction{interaction})
		if err != nil {
			return fmt.Errorf("create interaction: %w", err)
		}
		out = created[0]

		return is.scoringService.RecomputeDonorScores(ctx, tx, interaction.PersonID)
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (is *interactionService) ListInteractions(ctx context.Context, personID *uuid.UUID) ([]*types.Interaction, error) {
	if personID != nil {
		return is.interactionRepo.ListByPersonID(ctx, nil, *personID)
	}
	return is.interactionRepo.List(ctx, nil)
}

func (is *interactionService) UpdateInteraction(ctx context.Context, interactionID uuid.UUID, fields map[string]any) (*types.Interaction, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("no updates provided")
	}
	if raw, ok := fields["type"]; ok {
		interactionType, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("invalid interaction type %v", raw)
		}
		if _, valid := validInteractionTypes[interactionType]; !valid {
			return nil, fmt.Errorf("invalid interaction type %q", interactionType)
		}
	}

	var out *types.Interaction
	if err := is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := is.interactionRepo.GetByIDs(ctx, tx, []uuid.UUID{interactionID})
		if err != nil {
			return fmt.Errorf("fetch interaction: %w", err)
		}
		if len(found) == 0 {
			return fmt.Errorf("interaction does not exist")
		}
		personID := found[0].PersonID

		if err := is.interactionRepo.UpdateFields(ctx, tx, interactionID, fields); err != nil {
			return fmt.Errorf("update interaction: %w", err)
		}

		reloaded, err := is.interactionRepo.GetByIDs(ctx, tx, []uuid.UUID{interactionID})
		if err != nil || len(reloaded) == 0 {
			return fmt.Errorf("reload interaction after update")
		}
		out = reloaded[0]

		return is.scoringService.RecomputeDonorScores(ctx, tx, personID)
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (is *interactionService) DeleteInteraction(ctx context.Context, interactionID uuid.UUID) error {
	return is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := is.interactionRepo.GetByIDs(ctx, tx, []uuid.UUID{interactionID})
		if err != nil {
			return fmt.Errorf("fetch interaction: %w", err)
		}
		if len(found) == 0 {
			return fmt.Errorf("interaction does not exist")
		}
		personID := found[0].PersonID

		if err := is.interactionRepo.Delete(ctx, tx, interactionID); err != nil {
			return fmt.Errorf("delete interaction: %w", err)
		}

		return is.scoringService.RecomputeDonorScores(ctx, tx, personID)
	})
}
