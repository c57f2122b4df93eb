package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fundrazor/fundrazor-backend/internal/pkg/logger"
	"github.com/fundrazor/fundrazor-backend/internal/repos"
	"github.com/fundrazor/fundrazor-backend/internal/types"
)

const (
	engagementWindowDays = 90
	engagementSaturation = 5
	recencyDecayPerYear  = 20
)

// ScoringService recomputes a person's derived relationship scores and giving
// summary from their full gift and interaction history. Every gift and
// interaction mutation path calls RecomputeDonorScores so the derived fields
// never drift further than the latest write.
type ScoringService interface {
	RecomputeDonorScores(ctx context.Context, tx *gorm.DB, personID uuid.UUID) error
}

type scoringService struct {
	db              *gorm.DB
	log             *logger.Logger
	personRepo      repos.PersonRepo
	giftRepo        repos.GiftRepo
	interactionRepo repos.InteractionRepo
	now             func() time.Time
}

func NewScoringService(db *gorm.DB, log *logger.Logger, personRepo repos.PersonRepo, giftRepo repos.GiftRepo, interactionRepo repos.InteractionRepo) ScoringService {
	serviceLog := log.With("service", "ScoringService")
	return &scoringService{
		db:              db,
		log:             serviceLog,
		personRepo:      personRepo,
		giftRepo:        giftRepo,
		interactionRepo: interactionRepo,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (ss *scoringService) RecomputeDonorScores(ctx context.Context, tx *gorm.DB, personID uuid.UUID) error {
	found, err := ss.personRepo.GetByIDs(ctx, tx, []uuid.UUID{personID})
	if err != nil {
		return fmt.Errorf("fetch person for scoring: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		// Best-effort hook: a vanished person is not an error.
		ss.log.Warn("Score recompute requested for missing person, skipping", "person_id", personID)
		return nil
	}

	gifts, err := ss.giftRepo.ListByPersonID(ctx, tx, personID)
	if err != nil {
		return fmt.Errorf("fetch gifts for scoring: %w", err)
	}
	interactions, err := ss.interactionRepo.ListByPersonID(ctx, tx, personID)
	if err != nil {
		return fmt.Errorf("fetch interactions for scoring: %w", err)
	}

	now := ss.now()
	engagement := engagementScore(interactions, now)
	capacity := capacityScore(gifts)
	affinity := affinityScore(engagement, capacity, gifts, now)
	total := totalLifetimeGiving(gifts)

	fields := map[string]any{
		"engagement_score":      engagement,
		"capacity_score":        capacity,
		"affinity_score":        affinity,
		"total_lifetime_giving": total.String(),
	}
	if len(gifts) > 0 {
		fields["last_gift_date"] = gifts[0].ReceivedAt
		fields["last_gift_amount"] = gifts[0].Amount
	} else {
		fields["last_gift_date"] = nil
		fields["last_gift_amount"] = "0"
	}

	if err := ss.personRepo.UpdateFields(ctx, tx, personID, fields); err != nil {
		return fmt.Errorf("persist recomputed scores: %w", err)
	}

	ss.log.Debug("Recomputed donor scores",
		"person_id", personID,
		"engagement", engagement,
		"capacity", capacity,
		"affinity", affinity,
	)
	return nil
}

// engagementScore saturates at 100 once the person has had five or more
// interactions inside the trailing 90-day window.
func engagementScore(interactions []*types.Interaction, now time.Time) int {
	if len(interactions) == 0 {
		return 0
	}
	cutoff := now.AddDate(0, 0, -engagementWindowDays)
	recent := 0
	for _, it := range interactions {
		if it == nil {
			continue
		}
		if !it.OccurredAt.Before(cutoff) {
			recent++
		}
	}
	score := int(math.Round(float64(recent) / engagementSaturation * 100))
	if score > 100 {
		score = 100
	}
	return score
}

// capacityScore is a step function of the average historical gift size.
// Bands are inclusive at the lower bound, evaluated top-down.
func capacityScore(gifts []*types.Gift) int {
	if len(gifts) == 0 {
		return 0
	}
	total := totalLifetimeGiving(gifts)
	avg := total.Div(decimal.NewFromInt(int64(len(gifts))))
	switch {
	case avg.GreaterThanOrEqual(decimal.NewFromInt(10000)):
		return 100
	case avg.GreaterThanOrEqual(decimal.NewFromInt(5000)):
		return 85
	case avg.GreaterThanOrEqual(decimal.NewFromInt(1000)):
		return 70
	case avg.GreaterThanOrEqual(decimal.NewFromInt(500)):
		return 55
	case avg.GreaterThanOrEqual(decimal.NewFromInt(100)):
		return 40
	default:
		return 25
	}
}

// affinityScore blends engagement, capacity, and giving recency. Gifts must
// be ordered newest first; gifts[0] anchors the recency decay.
func affinityScore(engagement, capacity int, gifts []*types.Gift, now time.Time) int {
	if len(gifts) == 0 {
		return 0
	}
	avgScore := float64(engagement+capacity) / 2

	years := now.Sub(gifts[0].ReceivedAt).Hours() / (24 * 365)
	if years < 0 {
		years = 0
	}
	recency := 100 - years*recencyDecayPerYear
	if recency < 0 {
		recency = 0
	}

	return int(math.Round((avgScore + recency) / 2))
}

// totalLifetimeGiving sums gift amounts exactly. Unparseable amounts count
// as zero rather than poisoning the whole summary.
func totalLifetimeGiving(gifts []*types.Gift) decimal.Decimal {
	total := decimal.Zero
	for _, g := range gifts {
		if g == nil {
			continue
		}
		amount, err := decimal.NewFromString(g.Amount)
		if err != nil {
			continue
		}
		total = total.Add(amount)
	}
	return total
}
