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

const (
	RuleLYBUNT             = "lybunt"
	RuleCultivationStall   = "cultivation_stall"
	RuleEventFollowup      = "event_followup"
	RuleStalledOpportunity = "stalled_opportunity"
	RuleWarmProspect       = "warm_prospect"
)

const (
	cultivationStallDays  = 180
	eventFollowupDays     = 7
	stalledOpportunityDays = 90
	warmProspectWindowDays = 30
	warmProspectMinTouches = 3
	warmCapacityFloor      = 60
)

// RecommendationService scans the donor population and emits next-best-action
// tasks. Each rule fires at most once per person per pass; a rule is skipped
// while the person still has an open task generated by that rule.
type RecommendationService interface {
	GenerateNextBestActions(ctx context.Context, ownerID *uuid.UUID) ([]*types.Task, error)
}

type recommendationService struct {
	db               *gorm.DB
	log              *logger.Logger
	defaultOwnerRole string
	personRepo       repos.PersonRepo
	giftRepo         repos.GiftRepo
	interactionRepo  repos.InteractionRepo
	opportunityRepo  repos.OpportunityRepo
	taskRepo         repos.TaskRepo
	userRepo         repos.UserRepo
	now              func() time.Time
}

func NewRecommendationService(
	db *gorm.DB,
	log *logger.Logger,
	defaultOwnerRole string,
	personRepo repos.PersonRepo,
	giftRepo repos.GiftRepo,
	interactionRepo repos.InteractionRepo,
	opportunityRepo repos.OpportunityRepo,
	taskRepo repos.TaskRepo,
	userRepo repos.UserRepo,
) RecommendationService {
	serviceLog := log.With("service", "RecommendationService")
	return &recommendationService{
		db:               db,
		log:              serviceLog,
		defaultOwnerRole: defaultOwnerRole,
		personRepo:       personRepo,
		giftRepo:         giftRepo,
		interactionRepo:  interactionRepo,
		opportunityRepo:  opportunityRepo,
		taskRepo:         taskRepo,
		userRepo:         userRepo,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// taskDraft is a rule firing before persistence.
type taskDraft struct {
	ruleKey     string
	title       string
	description string
	reason      string
	priority    string
	dueInDays   int
	ownerID     *uuid.UUID
}

func (rs *recommendationService) GenerateNextBestActions(ctx context.Context, ownerID *uuid.UUID) ([]*types.Task, error) {
	defaultOwner, err := rs.resolveOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if defaultOwner == uuid.Nil {
		rs.log.Info("No eligible task owner, skipping next-best-action pass", "role", rs.defaultOwnerRole)
		return []*types.Task{}, nil
	}

	persons, err := rs.personRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}

	created := []*types.Task{}
	for _, person := range persons {
		if person == nil {
			continue
		}
		tasks, err := rs.evaluatePerson(ctx, person, defaultOwner)
		if err != nil {
			// One person's bad data must not abort the whole batch. Tasks
			// written before the failure are still real, keep them.
			rs.log.Warn("Next-best-action evaluation failed for person", "person_id", person.ID, "error", err)
		}
		created = append(created, tasks...)
	}

	rs.log.Info("Next-best-action pass complete", "persons", len(persons), "tasks_created", len(created))
	return created, nil
}

func (rs *recommendationService) resolveOwner(ctx context.Context, ownerID *uuid.UUID) (uuid.UUID, error) {
	if ownerID != nil && *ownerID != uuid.Nil {
		return *ownerID, nil
	}
	owners, err := rs.userRepo.ListByRole(ctx, nil, rs.defaultOwnerRole)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve default owner: %w", err)
	}
	if len(owners) == 0 || owners[0] == nil {
		return uuid.Nil, nil
	}
	return owners[0].ID, nil
}

func (rs *recommendationService) evaluatePerson(ctx context.Context, person *types.Person, defaultOwner uuid.UUID) ([]*types.Task, error) {
	gifts, err := rs.giftRepo.ListByPersonID(ctx, nil, person.ID)
	if err != nil {
		return nil, fmt.Errorf("list gifts: %w", err)
	}
	interactions, err := rs.interactionRepo.ListByPersonID(ctx, nil, person.ID)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	opportunities, err := rs.opportunityRepo.ListByPersonID(ctx, nil, person.ID)
	if err != nil {
		return nil, fmt.Errorf("list opportunities: %w", err)
	}

	now := rs.now()
	drafts := []*taskDraft{}
	appendIf := func(d *taskDraft) {
		if d != nil {
			drafts = append(drafts, d)
		}
	}
	appendIf(ruleLYBUNT(person, gifts, now))
	appendIf(ruleCultivationStall(person, now))
	appendIf(ruleEventFollowup(person, interactions, now))
	appendIf(ruleStalledOpportunity(person, opportunities, now))
	appendIf(ruleWarmProspect(person, interactions, opportunities, now))

	created := []*types.Task{}
	for _, draft := range drafts {
		exists, err := rs.taskRepo.OpenRuleTaskExists(ctx, nil, person.ID, draft.ruleKey)
		if err != nil {
			return created, fmt.Errorf("check open task for rule %s: %w", draft.ruleKey, err)
		}
		if exists {
			continue
		}

		owner := defaultOwner
		if draft.ownerID != nil && *draft.ownerID != uuid.Nil {
			owner = *draft.ownerID
		}
		due := now.AddDate(0, 0, draft.dueInDays)
		task := &types.Task{
			ID:          uuid.New(),
			PersonID:    person.ID,
			OwnerID:     &owner,
			Title:       draft.title,
			Description: draft.description,
			Reason:      draft.reason,
			Priority:    draft.priority,
			RuleKey:     draft.ruleKey,
			DueDate:     &due,
		}
		saved, err := rs.taskRepo.Create(ctx, nil, []*types.Task{task})
		if err != nil {
			return created, fmt.Errorf("create task for rule %s: %w", draft.ruleKey, err)
		}
		created = append(created, saved...)
	}
	return created, nil
}

// ruleLYBUNT fires for donors who gave in the prior calendar year but not in
// the current one.
func ruleLYBUNT(person *types.Person, gifts []*types.Gift, now time.Time) *taskDraft {
	currentYear := now.Year()
	var priorYearGift *types.Gift
	gaveThisYear := false
	for _, g := range gifts {
		if g == nil {
			continue
		}
		switch g.ReceivedAt.Year() {
		case currentYear:
			gaveThisYear = true
		case currentYear - 1:
			if priorYearGift == nil {
				priorYearGift = g
			}
		}
	}
	if priorYearGift == nil || gaveThisYear {
		return nil
	}

	description := fmt.Sprintf("%s gave in %d but has not given yet in %d. Reach out before year end.",
		person.FirstName, currentYear-1, currentYear)
	if priorYearGift.Amount != "" {
		description = fmt.Sprintf("%s gave $%s in %d but has not given yet in %d. Reach out before year end.",
			person.FirstName, priorYearGift.Amount, currentYear-1, currentYear)
	}
	return &taskDraft{
		ruleKey:     RuleLYBUNT,
		title:       fmt.Sprintf("LYBUNT outreach: %s %s", person.FirstName, person.LastName),
		description: description,
		reason:      "Gave last year but not this year",
		priority:    types.PriorityHigh,
		dueInDays:   7,
	}
}

// ruleCultivationStall fires for highly engaged donors whose last gift is
// more than 180 days old.
func ruleCultivationStall(person *types.Person, now time.Time) *taskDraft {
	if person.EngagementScore < 70 || person.LastGiftDate == nil {
		return nil
	}
	daysSince := int(now.Sub(*person.LastGiftDate).Hours() / 24)
	if daysSince <= cultivationStallDays {
		return nil
	}
	return &taskDraft{
		ruleKey:     RuleCultivationStall,
		title:       fmt.Sprintf("Schedule cultivation call: %s %s", person.FirstName, person.LastName),
		description: fmt.Sprintf("Engagement is high but the last gift was %d days ago. Time for a cultivation call.", daysSince),
		reason:      "High engagement, no recent gift",
		priority:    types.PriorityHigh,
		dueInDays:   3,
	}
}

// ruleEventFollowup fires when a high-capacity person attended an event in
// the last week.
func ruleEventFollowup(person *types.Person, interactions []*types.Interaction, now time.Time) *taskDraft {
	if person.CapacityScore < warmCapacityFloor {
		return nil
	}
	cutoff := now.AddDate(0, 0, -eventFollowupDays)
	attended := false
	for _, it := range interactions {
		if it != nil && it.Type == types.InteractionEvent && !it.OccurredAt.Before(cutoff) {
			attended = true
			break
		}
	}
	if !attended {
		return nil
	}
	return &taskDraft{
		ruleKey:     RuleEventFollowup,
		title:       fmt.Sprintf("Follow up after event: %s %s", person.FirstName, person.LastName),
		description: "Attended an event in the last 7 days and has strong giving capacity. Follow up while it is fresh.",
		reason:      "Recent event attendance, high capacity",
		priority:    types.PriorityUrgent,
		dueInDays:   2,
	}
}

// stageAge reports how many whole days an opportunity has sat in its current
// stage. The clock runs from stage_entered_at; days_in_stage only wins when a
// migration or manual edit set it past the derived value.
func stageAge(opp *types.Opportunity, now time.Time) int {
	days := opp.DaysInStage
	if !opp.StageEnteredAt.IsZero() {
		if elapsed := int(now.Sub(opp.StageEnteredAt).Hours() / 24); elapsed > days {
			days = elapsed
		}
	}
	return days
}

// ruleStalledOpportunity fires when any of the person's opportunities has sat
// in its stage for more than 90 days (strictly greater).
func ruleStalledOpportunity(person *types.Person, opportunities []*types.Opportunity, now time.Time) *taskDraft {
	for _, opp := range opportunities {
		if opp == nil {
			continue
		}
		days := stageAge(opp, now)
		if days <= stalledOpportunityDays {
			continue
		}
		return &taskDraft{
			ruleKey: RuleStalledOpportunity,
			title:   fmt.Sprintf("Advance opportunity: %s", opp.Name),
			description: fmt.Sprintf("%q has been in the %s stage for %d days. Move it forward or close it.",
				opp.Name, opp.Stage, days),
			reason:    "Opportunity stalled in stage",
			priority:  types.PriorityMedium,
			dueInDays: 5,
			ownerID:   opp.OwnerID,
		}
	}
	return nil
}

// ruleWarmProspect fires for high-capacity people showing recent email intent
// with no opportunity on the board.
func ruleWarmProspect(person *types.Person, interactions []*types.Interaction, opportunities []*types.Opportunity, now time.Time) *taskDraft {
	if person.CapacityScore < warmCapacityFloor || len(opportunities) > 0 {
		return nil
	}
	cutoff := now.AddDate(0, 0, -warmProspectWindowDays)
	touches := 0
	for _, it := range interactions {
		if it == nil {
			continue
		}
		if it.Type != types.InteractionEmailOpen && it.Type != types.InteractionEmailClick {
			continue
		}
		if !it.OccurredAt.Before(cutoff) {
			touches++
		}
	}
	if touches < warmProspectMinTouches {
		return nil
	}
	return &taskDraft{
		ruleKey:     RuleWarmProspect,
		title:       fmt.Sprintf("Create opportunity: %s %s", person.FirstName, person.LastName),
		description: fmt.Sprintf("%d email touches in the last 30 days, strong capacity, and no open opportunity. Start a pipeline conversation.", touches),
		reason:      "Warm prospect with no pipeline",
		priority:    types.PriorityMedium,
		dueInDays:   7,
	}
}
