package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fundrazor/fundrazor-backend/internal/pkg/logger"
	"github.com/fundrazor/fundrazor-backend/internal/repos"
	"github.com/fundrazor/fundrazor-backend/internal/types"
)

var validGrantStatuses = map[string]struct{}{
	types.GrantStatusProspect:  {},
	types.GrantStatusApplied:   {},
	types.GrantStatusAwarded:   {},
	types.GrantStatusDeclined:  {},
	types.GrantStatusReporting: {},
	types.GrantStatusClosed:    {},
}

type GrantService interface {
	CreateGrant(ctx context.Context, grant *types.Grant) (*types.Grant, error)
	ListGrants(ctx context.Context, status string) ([]*types.Grant, error)
	UpdateGrant(ctx context.Context, grantID uuid.UUID, fields map[string]any) (*types.Grant, error)
	DeleteGrant(ctx context.Context, grantID uuid.UUID) error
}

type grantService struct {
	db        *gorm.DB
	log       *logger.Logger
	grantRepo repos.GrantRepo
}

func NewGrantService(db *gorm.DB, log *logger.Logger, grantRepo repos.GrantRepo) GrantService {
	serviceLog := log.With("service", "GrantService")
	return &grantService{db: db, log: serviceLog, grantRepo: grantRepo}
}

func (gs *grantService) CreateGrant(ctx context.Context, grant *types.Grant) (*types.Grant, error) {
	if grant == nil {
		return nil, fmt.Errorf("grant required")
	}
	grant.Funder = strings.TrimSpace(grant.Funder)
	grant.Title = strings.TrimSpace(grant.Title)
	if grant.Funder == "" {
		return nil, fmt.Errorf("funder required")
	}
	if grant.Title == "" {
		return nil, fmt.Errorf("title required")
	}
	if grant.Status == "" {
		grant.Status = types.GrantStatusProspect
	}
	if _, ok := validGrantStatuses[grant.Status]; !ok {
		return nil, fmt.Errorf("invalid status %q", grant.Status)
	}
	if grant.Amount != "" {
		amount, err := decimal.NewFromString(grant.Amount)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q", grant.Amount)
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("amount must not be negative")
		}
	}

	grant.ID = uuid.New()
	created, err := gs.grantRepo.Create(ctx, nil, []*types.Grant{grant})
	if err != nil {
		return nil, fmt.Errorf("create grant: %w", err)
	}
	return created[0], nil
}

func (gs *grantService) ListGrants(ctx context.Context, status string) ([]*types.Grant, error) {
	if status != "" {
		if _, ok := validGrantStatuses[status]; !ok {
			return nil, fmt.Errorf("invalid status %q", status)
		}
	}
	return gs.grantRepo.List(ctx, nil, status)
}

func (gs *grantService) UpdateGrant(ctx context.Context, grantID uuid.UUID, fields map[string]any) (*types.Grant, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("no updates provided")
	}
	if raw, ok := fields["status"]; ok {
		status, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("invalid status %v", raw)
		}
		if _, valid := validGrantStatuses[status]; !valid {
			return nil, fmt.Errorf("invalid status %q", status)
		}
	}
	if raw, ok := fields["amount"]; ok {
		amountStr, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("amount must be a decimal string")
		}
		if amountStr != "" {
			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return nil, fmt.Errorf("invalid amount %q", amountStr)
			}
			if amount.IsNegative() {
				return nil, fmt.Errorf("amount must not be negative")
			}
		}
	}

	var out *types.Grant
	if err := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := gs.grantRepo.GetByIDs(ctx, tx, []uuid.UUID{grantID})
		if err != nil {
			return fmt.Errorf("fetch grant: %w", err)
		}
		if len(found) == 0 {
			return fmt.Errorf("grant does not exist")
		}

		if err := gs.grantRepo.UpdateFields(ctx, tx, grantID, fields); err != nil {
			return fmt.Errorf("update grant: %w", err)
		}

		reloaded, err := gs.grantRepo.GetByIDs(ctx, tx, []uuid.UUID{grantID})
		if err != nil || len(reloaded) == 0 {
			return fmt.Errorf("reload grant after update")
		}
		out = reloaded[0]
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (gs *grantService) DeleteGrant(ctx context.Context, grantID uuid.UUID) error {
	return gs.grantRepo.Delete(ctx, nil, grantID)
}
