package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fundrazor/fundrazor-backend/internal/clients/redis"
	"github.com/fundrazor/fundrazor-backend/internal/pkg/logger"
	"github.com/fundrazor/fundrazor-backend/internal/pkg/pointers"
	"github.com/fundrazor/fundrazor-backend/internal/repos"
	"github.com/fundrazor/fundrazor-backend/internal/types"
)

const (
	cacheKeyGiving   = "dashboard:giving"
	cacheKeyPipeline = "dashboard:pipeline"
	cacheKeyTasks    = "dashboard:tasks"
)

// GivingSummary aggregates receipts for the current and prior calendar year.
// Amounts are decimal strings.
type GivingSummary struct {
	YearTotal      string         `json:"year_total"`
	YearGiftCount  int            `json:"year_gift_count"`
	PriorYearTotal string         `json:"prior_year_total"`
	LifetimeTotal  string         `json:"lifetime_total"`
	ByGiftType     map[string]int `json:"by_gift_type"`
	DonorCount     int            `json:"donor_count"`
}

type PipelineStage struct {
	Stage        string `json:"stage"`
	Count        int    `json:"count"`
	TotalAsk     string `json:"total_ask"`
	WeightedAsk  string `json:"weighted_ask"`
	StalledCount int    `json:"stalled_count"`
}

type PipelineSummary struct {
	Stages      []PipelineStage `json:"stages"`
	TotalAsk    string          `json:"total_ask"`
	WeightedAsk string          `json:"weighted_ask"`
}

type TaskSummary struct {
	OpenCount      int            `json:"open_count"`
	OverdueCount   int            `json:"overdue_count"`
	ByPriority     map[string]int `json:"by_priority"`
	GeneratedCount int            `json:"generated_count"`
}

type DashboardService interface {
	GivingDashboard(ctx context.Context) (*GivingSummary, error)
	PipelineDashboard(ctx context.Context) (*PipelineSummary, error)
	TaskDashboard(ctx context.Context) (*TaskSummary, error)
	// InvalidateAll drops the cached dashboard payloads after a write that
	// affects them.
	InvalidateAll(ctx context.Context)
}

type dashboardService struct {
	db              *gorm.DB
	log             *logger.Logger
	giftRepo        repos.GiftRepo
	opportunityRepo repos.OpportunityRepo
	taskRepo        repos.TaskRepo
	personRepo      repos.PersonRepo
	cache           redis.Cache
	cacheTTL        time.Duration
	now             func() time.Time
}

func NewDashboardService(
	db *gorm.DB,
	log *logger.Logger,
	giftRepo repos.GiftRepo,
	opportunityRepo repos.OpportunityRepo,
	taskRepo repos.TaskRepo,
	personRepo repos.PersonRepo,
	cache redis.Cache,
	cacheTTL time.Duration,
) DashboardService {
	serviceLog := log.With("service", "DashboardService")
	return &dashboardService{
		db:              db,
		log:             serviceLog,
		giftRepo:        giftRepo,
		opportunityRepo: opportunityRepo,
		taskRepo:        taskRepo,
		personRepo:      personRepo,
		cache:           cache,
		cacheTTL:        cacheTTL,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (ds *dashboardService) GivingDashboard(ctx context.Context) (*GivingSummary, error) {
	if cached, ok := ds.fromCache(ctx, cacheKeyGiving); ok {
		var out GivingSummary
		if err := json.Unmarshal(cached, &out); err == nil {
			return &out, nil
		}
	}

	gifts, err := ds.giftRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	currentYear := ds.now().Year()
	yearTotal := decimal.Zero
	priorTotal := decimal.Zero
	lifetime := decimal.Zero
	yearCount := 0
	byType := map[string]int{}
	donors := map[string]struct{}{}

	for _, gift := range gifts {
		amount, err := decimal.NewFromString(gift.Amount)
		if err != nil {
			ds.log.Warn("Skipping gift with unparseable amount", "gift_id", gift.ID, "amount", gift.Amount)
			continue
		}
		lifetime = lifetime.Add(amount)
		donors[gift.PersonID.String()] = struct{}{}
		byType[gift.GiftType]++
		switch gift.ReceivedAt.Year() {
		case currentYear:
			yearTotal = yearTotal.Add(amount)
			yearCount++
		case currentYear - 1:
			priorTotal = priorTotal.Add(amount)
		}
	}

	out := &GivingSummary{
		YearTotal:      yearTotal.String(),
		YearGiftCount:  yearCount,
		PriorYearTotal: priorTotal.String(),
		LifetimeTotal:  lifetime.String(),
		ByGiftType:     byType,
		DonorCount:     len(donors),
	}
	ds.toCache(ctx, cacheKeyGiving, out)
	return out, nil
}

func (ds *dashboardService) PipelineDashboard(ctx context.Context) (*PipelineSummary, error) {
	if cached, ok := ds.fromCache(ctx, cacheKeyPipeline); ok {
		var out PipelineSummary
		if err := json.Unmarshal(cached, &out); err == nil {
			return &out, nil
		}
	}

	opportunities, err := ds.opportunityRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	stageOrder := []string{
		types.StageProspect,
		types.StageCultivation,
		types.StageAsk,
		types.StageSteward,
		types.StageRenewal,
	}
	byStage := map[string]*PipelineStage{}
	for _, stage := range stageOrder {
		byStage[stage] = &PipelineStage{Stage: stage, TotalAsk: "0", WeightedAsk: "0"}
	}

	grandTotal := decimal.Zero
	grandWeighted := decimal.Zero
	stageTotals := map[string]decimal.Decimal{}
	stageWeighted := map[string]decimal.Decimal{}

	now := ds.now()
	for _, opp := range opportunities {
		entry, ok := byStage[opp.Stage]
		if !ok {
			continue
		}
		entry.Count++
		if stageAge(opp, now) > stalledOpportunityDays {
			entry.StalledCount++
		}
		if opp.AskAmount == "" {
			continue
		}
		ask, err := decimal.NewFromString(opp.AskAmount)
		if err != nil {
			ds.log.Warn("Skipping opportunity with unparseable ask", "opportunity_id", opp.ID, "ask_amount", opp.AskAmount)
			continue
		}
		weighted := ask.Mul(decimal.NewFromInt(int64(opp.Probability))).Div(decimal.NewFromInt(100))
		stageTotals[opp.Stage] = stageTotals[opp.Stage].Add(ask)
		stageWeighted[opp.Stage] = stageWeighted[opp.Stage].Add(weighted)
		grandTotal = grandTotal.Add(ask)
		grandWeighted = grandWeighted.Add(weighted)
	}

	stages := make([]PipelineStage, 0, len(stageOrder))
	for _, stage := range stageOrder {
		entry := byStage[stage]
		entry.TotalAsk = stageTotals[stage].String()
		entry.WeightedAsk = stageWeighted[stage].String()
		stages = append(stages, *entry)
	}

	out := &PipelineSummary{
		Stages:      stages,
		TotalAsk:    grandTotal.String(),
		WeightedAsk: grandWeighted.String(),
	}
	ds.toCache(ctx, cacheKeyPipeline, out)
	return out, nil
}

func (ds *dashboardService) TaskDashboard(ctx context.Context) (*TaskSummary, error) {
	if cached, ok := ds.fromCache(ctx, cacheKeyTasks); ok {
		var out TaskSummary
		if err := json.Unmarshal(cached, &out); err == nil {
			return &out, nil
		}
	}

	tasks, err := ds.taskRepo.List(ctx, nil, repos.TaskFilter{Completed: pointers.Ptr(false)})
	if err != nil {
		return nil, err
	}

	now := ds.now()
	out := &TaskSummary{ByPriority: map[string]int{}}
	for _, task := range tasks {
		out.OpenCount++
		out.ByPriority[task.Priority]++
		if task.DueDate != nil && task.DueDate.Before(now) {
			out.OverdueCount++
		}
		if task.RuleKey != "" {
			out.GeneratedCount++
		}
	}

	ds.toCache(ctx, cacheKeyTasks, out)
	return out, nil
}

func (ds *dashboardService) InvalidateAll(ctx context.Context) {
	if ds.cache == nil {
		return
	}
	ds.cache.Invalidate(ctx, cacheKeyGiving, cacheKeyPipeline, cacheKeyTasks)
}

func (ds *dashboardService) fromCache(ctx context.Context, key string) ([]byte, bool) {
	if ds.cache == nil {
		return nil, false
	}
	return ds.cache.Get(ctx, key)
}

func (ds *dashboardService) toCache(ctx context.Context, key string, val any) {
	if ds.cache == nil {
		return
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return
	}
	ds.cache.Set(ctx, key, raw, ds.cacheTTL)
}
