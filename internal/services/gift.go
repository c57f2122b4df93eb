package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fundrazor/fundrazor-backend/internal/pkg/logger"
	"github.com/fundrazor/fundrazor-backend/internal/repos"
	"github.com/fundrazor/fundrazor-backend/internal/types"
)

var validGiftTypes = map[string]struct{}{
	types.GiftTypeOneTime:   {},
	types.GiftTypeMajor:     {},
	types.GiftTypeRecurring: {},
	types.GiftTypePlanned:   {},
	types.GiftTypePledge:    {},
	types.GiftTypeInKind:    {},
}

// GiftService owns all gift mutations. Create, update, and delete each run
// inside one transaction together with the donor score recompute, so a
// committed gift mutation is never visible without its score side effect.
type GiftService interface {
	CreateGift(ctx context.Context, gift *types.Gift) (*types.Gift, error)
	GetGift(ctx context.Context, giftID uuid.UUID) (*types.Gift, error)
	ListGifts(ctx context.Context, personID *uuid.UUID) ([]*types.Gift, error)
	UpdateGift(ctx context.Context, giftID uuid.UUID, fields map[string]any) (*types.Gift, error)
	DeleteGift(ctx context.Context, giftID uuid.UUID) error
}

type giftService struct {
	db             *gorm.DB
	log            *logger.Logger
	giftRepo       repos.GiftRepo
	personRepo     repos.PersonRepo
	scoringService ScoringService
}

func NewGiftService(db *gorm.DB, log *logger.Logger, giftRepo repos.GiftRepo, personRepo repos.PersonRepo, scoringService ScoringService) GiftService {
	serviceLog := log.With("service", "GiftService")
	return &giftService{
		db:             db,
		log:            serviceLog,
		giftRepo:       giftRepo,
		personRepo:     personRepo,
		scoringService: scoringService,
	}
}

func (gs *giftService) CreateGift(ctx context.Context, gift *types.Gift) (*types.Gift, error) {
	if gift == nil {
		return nil, fmt.Errorf("gift required")
	}
	if gift.PersonID == uuid.Nil {
		return nil, fmt.Errorf("person_id required")
	}
	if err := validateAmount(gift.Amount); err != nil {
		return nil, err
	}
	if gift.GiftType == "" {
		gift.GiftType = types.GiftTypeOneTime
	}
	if _, ok := validGiftTypes[gift.GiftType]; !ok {
		return nil, fmt.Errorf("invalid gift_type %q", gift.GiftType)
	}
	if gift.ReceivedAt.IsZero() {
		return nil, fmt.Errorf("received_at required")
	}

	var out *types.Gift
	if err := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		persons, err := gs.personRepo.GetByIDs(ctx, tx, []uuid.UUID{gift.PersonID})
		if err != nil {
			return fmt.Errorf("fetch person: %w", err)
		}
		if len(persons) == 0 {
			return fmt.Errorf("person does not exist")
		}

		gift.ID = uuid.New()
		created, err := gs.giftRepo.Create(ctx, tx, []*types.Gift{gift})
		if err != nil {
			return fmt.Errorf("create gift: %w", err)
		}
		out = created[0]

		return gs.scoringService.RecomputeDonorScores(ctx, tx, gift.PersonID)
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (gs *giftService) GetGift(ctx context.Context, giftID uuid.UUID) (*types.Gift, error) {
	found, err := gs.giftRepo.GetByIDs(ctx, nil, []uuid.UUID{giftID})
	if err != nil {
		return nil, fmt.Errorf("fetch gift: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("gift does not exist")
	}
	return found[0], nil
}

func (gs *giftService) ListGifts(ctx context.Context, personID *uuid.UUID) ([]*types.Gift, error) {
	if personID != nil {
		return gs.giftRepo.ListByPersonID(ctx, nil, *personID)
	}
	return gs.giftRepo.List(ctx, nil)
}

func (gs *giftService) UpdateGift(ctx context.Context, giftID uuid.UUID, fields map[string]any) (*types.Gift, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("no updates provided")
	}
	if raw, ok := fields["amount"]; ok {
		amount, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("amount must be a decimal string")
		}
		if err := validateAmount(amount); err != nil {
			return nil, err
		}
	}
	if raw, ok := fields["gift_type"]; ok {
		giftType, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("invalid gift_type %v", raw)
		}
		if _, valid := validGiftTypes[giftType]; !valid {
			return nil, fmt.Errorf("invalid gift_type %q", giftType)
		}
	}

	var out *types.Gift
	if err := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := gs.giftRepo.GetByIDs(ctx, tx, []uuid.UUID{giftID})
		if err != nil {
			return fmt.Errorf("fetch gift: %w", err)
		}
		if len(found) == 0 {
			return fmt.Errorf("gift does not exist")
		}
		personID := found[0].PersonID

		if err := gs.giftRepo.UpdateFields(ctx, tx, giftID, fields); err != nil {
			return fmt.Errorf("update gift: %w", err)
		}

		reloaded, err := gs.giftRepo.GetByIDs(ctx, tx, []uuid.UUID{giftID})
		if err != nil || len(reloaded) == 0 {
			return fmt.Errorf("reload gift after update")
		}
		out = reloaded[0]

		return gs.scoringService.RecomputeDonorScores(ctx, tx, personID)
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (gs *giftService) DeleteGift(ctx context.Context, giftID uuid.UUID) error {
	return gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := gs.giftRepo.GetByIDs(ctx, tx, []uuid.UUID{giftID})
		if err != nil {
			return fmt.Errorf("fetch gift: %w", err)
		}
		if len(found) == 0 {
			return fmt.Errorf("gift does not exist")
		}
		personID := found[0].PersonID

		if err := gs.giftRepo.Delete(ctx, tx, giftID); err != nil {
			return fmt.Errorf("delete gift: %w", err)
		}

		return gs.scoringService.RecomputeDonorScores(ctx, tx, personID)
	})
}

func validateAmount(amount string) error {
	if amount == "" {
		return fmt.Errorf("amount required")
	}
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("amount is not a valid decimal: %w", err)
	}
	if parsed.IsNegative() || parsed.IsZero() {
		return fmt.Errorf("amount must be positive")
	}
	return nil
}
