package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fundrazor/fundrazor-backend/internal/pkg/logger"
	"github.com/fundrazor/fundrazor-backend/internal/types"
)

type engineFixture struct {
	service      *recommendationService
	personRepo   *fakePersonRepo
	giftRepo     *fakeGiftRepo
	interactions *fakeInteractionRepo
	opportunity  *fakeOpportunityRepo
	taskRepo     *fakeTaskRepo
	userRepo     *fakeUserRepo
	owner        *types.User
	now          time.Time
}

func newEngineFixture(t *testing.T, persons ...*types.Person) *engineFixture {
	t.Helper()
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	owner := &types.User{ID: uuid.New(), Email: "mgo@example.org", Role: types.RoleMGO}

	fx := &engineFixture{
		personRepo:   newFakePersonRepo(persons...),
		giftRepo:     newFakeGiftRepo(),
		interactions: newFakeInteractionRepo(),
		opportunity:  newFakeOpportunityRepo(),
		taskRepo:     newFakeTaskRepo(),
		userRepo:     newFakeUserRepo(owner),
		owner:        owner,
		now:          now,
	}
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}
	svc := NewRecommendationService(
		nil,
		log,
		types.RoleMGO,
		fx.personRepo,
		fx.giftRepo,
		fx.interactions,
		fx.opportunity,
		fx.taskRepo,
		fx.userRepo,
	).(*recommendationService)
	svc.now = func() time.Time { return now }
	fx.service = svc
	return fx
}

func taskKeys(tasks []*types.Task) map[string]bool {
	keys := map[string]bool{}
	for _, t := range tasks {
		keys[t.RuleKey] = true
	}
	return keys
}

func TestGenerateNextBestActionsLYBUNT(t *testing.T) {
	person := &types.Person{ID: uuid.New(), FirstName: "Ada", LastName: "Meyer"}
	fx := newEngineFixture(t, person)
	fx.giftRepo.add(person.ID, &types.Gift{
		PersonID:   person.ID,
		Amount:     "500",
		ReceivedAt: time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC),
	})

	tasks, err := fx.service.GenerateNextBestActions(context.Background(), nil)
	if err != nil {
		t.Fatalf("GenerateNextBestActions() error = %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	task := tasks[0]
	if task.RuleKey != RuleLYBUNT {
		t.Errorf("rule key = %q, want %q", task.RuleKey, RuleLYBUNT)
	}
	if task.OwnerID == nil || *task.OwnerID != fx.owner.ID {
		t.Errorf("task not assigned to default owner")
	}
	if task.Priority != types.PriorityHigh {
		t.Errorf("priority = %q, want %q", task.Priority, types.PriorityHigh)
	}
}

func TestGenerateNextBestActionsLYBUNTSuppressedByCurrentYearGift(t *testing.T) {
	person := &types.Person{ID: uuid.New(), FirstName: "Ada", LastName: "Meyer"}
	fx := newEngineFixture(t, person)
	fx.giftRepo.add(person.ID,
		&types.Gift{PersonID: person.ID, Amount: "500", ReceivedAt: time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)},
		&types.Gift{PersonID: person.ID, Amount: "250", ReceivedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
	)

	tasks, err := fx.service.GenerateNextBestActions(context.Background(), nil)
	if err != nil {
		t.Fatalf("GenerateNextBestActions() error = %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks, got %d", len(tasks))
	}
}

func TestGenerateNextBestActionsIdempotent(t *testing.T) {
	person := &types.Person{ID: uuid.New(), FirstName: "Ada", LastName: "Meyer"}
	fx := newEngineFixture(t, person)
	fx.giftRepo.add(person.ID, &types.Gift{
		PersonID:   person.ID,
		Amount:     "500",
		ReceivedAt: time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC),
	})

	first, err := fx.service.GenerateNextBestActions(context.Background(), nil)
	if err != nil {
		t.Fatalf("first pass error = %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("first pass expected 1 task, got %d", len(first))
	}

	second, err := fx.service.GenerateNextBestActions(context.Background(), nil)
	if err != nil {
		t.Fatalf("second pass error = %v", err)
	}
	if len(second) != 0 {
		t.Fatalf("second pass expected 0 tasks, got %d", len(second))
	}

	// Completing the open task lets the rule fire again.
	if err := fx.taskRepo.Complete(context.Background(), nil, first[0].ID, fx.now); err != nil {
		t.Fatalf("complete task: %v", err)
	}
	third, err := fx.service.GenerateNextBestActions(context.Background(), nil)
	if err != nil {
		t.Fatalf("third pass error = %v", err)
	}
	if len(third) != 1 {
		t.Fatalf("third pass expected 1 task after completion, got %d", len(third))
	}
}

func TestGenerateNextBestActionsCultivationStall(t *testing.T) {
	lastGift := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	person := &types.Person{
		ID:              uuid.New(),
		FirstName:       "Ben",
		LastName:        "Okafor",
		EngagementScore: 75,
		LastGiftDate:    &lastGift,
	}
	fx := newEngineFixture(t, person)
	// A current-year gift keeps LYBUNT quiet.
	fx.giftRepo.add(person.ID, &types.Gift{
		PersonID:   person.ID,
		Amount:     "50",
		ReceivedAt: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
	})

	tasks, err := fx.service.GenerateNextBestActions(context.Background(), nil)
	if err != nil {
		t.Fatalf("GenerateNextBestActions() error = %v", err)
	}
	keys := taskKeys(tasks)
	if !keys[RuleCultivationStall] {
		t.Errorf("expected cultivation stall task, got %v", keys)
	}
}

func TestGenerateNextBestActionsEventFollowup(t *testing.T) {
	person := &types.Person{ID: uuid.New(), FirstName: "Cleo", LastName: "Park", CapacityScore: 80}
	fx := newEngineFixture(t, person)
	fx.interactions.add(person.ID, &types.Interaction{
		PersonID:   person.ID,
		Type:       types.InteractionEvent,
		OccurredAt: fx.now.AddDate(0, 0, -3),
	})

	tasks, err := fx.service.GenerateNextBestActions(context.Background(), nil)
	if err != nil {
		t.Fatalf("GenerateNextBestActions() error = %v", err)
	}
	keys := taskKeys(tasks)
	if !keys[RuleEventFollowup] {
		t.Errorf("expected event followup task, got %v", keys)
	}
}

func TestGenerateNextBestActionsEventFollowupRequiresCapacity(t *testing.T) {
	person := &types.Person{ID: uuid.New(), FirstName: "Cleo", LastName: "Park", CapacityScore: 40}
	fx := newEngineFixture(t, person)
	fx.interactions.add(person.ID, &types.Interaction{
		PersonID:   person.ID,
		Type:       types.InteractionEvent,
		OccurredAt: fx.now.AddDate(0, 0, -3),
	})

	tasks, err := fx.service.GenerateNextBestActions(context.Background(), nil)
	if err != nil {
		t.Fatalf("GenerateNextBestActions() error = %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks without capacity, got %d", len(tasks))
	}
}

func TestGenerateNextBestActionsStalledOpportunityBoundary(t *testing.T) {
	oppOwner := uuid.New()
	person := &types.Person{ID: uuid.New(), FirstName: "Dev", LastName: "Singh"}
	fx := newEngineFixture(t, person)

	tests := []struct {
		name        string
		daysInStage int
		wantTask    bool
	}{
		{name: "ninety days is not stalled", daysInStage: 90, wantTask: false},
		{name: "ninety one days is stalled", daysInStage: 91, wantTask: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx.opportunity.byPerson[person.ID] = []*types.Opportunity{{
				ID:          uuid.New(),
				PersonID:    person.ID,
				OwnerID:     &oppOwner,
				Name:        "Capital campaign ask",
				Stage:       types.StageCultivation,
				DaysInStage: tt.daysInStage,
			}}
			fx.taskRepo.tasks = nil

			tasks, err := fx.service.GenerateNextBestActions(context.Background(), nil)
			if err != nil {
				t.Fatalf("GenerateNextBestActions() error = %v", err)
			}
			keys := taskKeys(tasks)
			if keys[RuleStalledOpportunity] != tt.wantTask {
				t.Errorf("stalled task fired = %v, want %v", keys[RuleStalledOpportunity], tt.wantTask)
			}
			if tt.wantTask {
				if tasks[0].OwnerID == nil || *tasks[0].OwnerID != oppOwner {
					t.Errorf("stalled task should go to the opportunity owner")
				}
			}
		})
	}
}

func TestGenerateNextBestActionsStalledOpportunityByElapsedTime(t *testing.T) {
	person := &types.Person{ID: uuid.New(), FirstName: "Mara", LastName: "Holt"}
	fx := newEngineFixture(t, person)

	tests := []struct {
		name     string
		entered  time.Time
		wantTask bool
	}{
		{name: "entered ninety days ago", entered: fx.now.AddDate(0, 0, -90), wantTask: false},
		{name: "entered ninety one days ago", entered: fx.now.AddDate(0, 0, -91), wantTask: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// days_in_stage stays at its default, only the stage clock moves.
			fx.opportunity.byPerson[person.ID] = []*types.Opportunity{{
				ID:             uuid.New(),
				PersonID:       person.ID,
				Name:           "Endowment ask",
				Stage:          types.StageAsk,
				DaysInStage:    0,
				StageEnteredAt: tt.entered,
			}}
			fx.taskRepo.tasks = nil

			tasks, err := fx.service.GenerateNextBestActions(context.Background(), nil)
			if err != nil {
				t.Fatalf("GenerateNextBestActions() error = %v", err)
			}
			keys := taskKeys(tasks)
			if keys[RuleStalledOpportunity] != tt.wantTask {
				t.Errorf("stalled task fired = %v, want %v", keys[RuleStalledOpportunity], tt.wantTask)
			}
		})
	}
}

func TestGenerateNextBestActionsKeepsTasksBeforeMidPersonFailure(t *testing.T) {
	person := &types.Person{ID: uuid.New(), FirstName: "Iris", LastName: "Vance", EngagementScore: 80}
	fx := newEngineFixture(t, person)

	// Qualifies for LYBUNT and, via the old last gift, cultivation stall.
	lastGift := fx.now.AddDate(-1, 0, 0)
	person.LastGiftDate = &lastGift
	fx.giftRepo.add(person.ID, &types.Gift{
		PersonID:   person.ID,
		Amount:     "250",
		GiftType:   types.GiftTypeOneTime,
		ReceivedAt: lastGift,
	})

	// The second rule's insert blows up. The LYBUNT task written before it
	// must still come back from the batch.
	fx.taskRepo.createErrOnRule = RuleCultivationStall

	tasks, err := fx.service.GenerateNextBestActions(context.Background(), nil)
	if err != nil {
		t.Fatalf("GenerateNextBestActions() error = %v", err)
	}
	keys := taskKeys(tasks)
	if !keys[RuleLYBUNT] {
		t.Errorf("expected the LYBUNT task created before the failure in the result, got %v", keys)
	}
	if keys[RuleCultivationStall] {
		t.Errorf("failed insert must not appear in the result")
	}
	if len(fx.taskRepo.tasks) != 1 {
		t.Errorf("persisted tasks = %d, want 1", len(fx.taskRepo.tasks))
	}
}

func TestGenerateNextBestActionsWarmProspect(t *testing.T) {
	person := &types.Person{ID: uuid.New(), FirstName: "Eva", LastName: "Lind", CapacityScore: 65}
	fx := newEngineFixture(t, person)
	for i := 0; i < 3; i++ {
		fx.interactions.add(person.ID, &types.Interaction{
			PersonID:   person.ID,
			Type:       types.InteractionEmailOpen,
			OccurredAt: fx.now.AddDate(0, 0, -(i + 1)),
		})
	}

	tasks, err := fx.service.GenerateNextBestActions(context.Background(), nil)
	if err != nil {
		t.Fatalf("GenerateNextBestActions() error = %v", err)
	}
	keys := taskKeys(tasks)
	if !keys[RuleWarmProspect] {
		t.Errorf("expected warm prospect task, got %v", keys)
	}

	// An existing opportunity suppresses the rule.
	fx.opportunity.add(person.ID, &types.Opportunity{ID: uuid.New(), PersonID: person.ID, Name: "Annual fund"})
	fx.taskRepo.tasks = nil
	tasks, err = fx.service.GenerateNextBestActions(context.Background(), nil)
	if err != nil {
		t.Fatalf("GenerateNextBestActions() error = %v", err)
	}
	if taskKeys(tasks)[RuleWarmProspect] {
		t.Errorf("warm prospect should not fire with an open opportunity")
	}
}

func TestGenerateNextBestActionsNoDefaultOwner(t *testing.T) {
	person := &types.Person{ID: uuid.New(), FirstName: "Ada", LastName: "Meyer"}
	fx := newEngineFixture(t, person)
	fx.userRepo.users = nil
	fx.giftRepo.add(person.ID, &types.Gift{
		PersonID:   person.ID,
		Amount:     "500",
		ReceivedAt: time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC),
	})

	tasks, err := fx.service.GenerateNextBestActions(context.Background(), nil)
	if err != nil {
		t.Fatalf("GenerateNextBestActions() error = %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty result with no eligible owner, got %d", len(tasks))
	}
}

func TestGenerateNextBestActionsExplicitOwner(t *testing.T) {
	person := &types.Person{ID: uuid.New(), FirstName: "Ada", LastName: "Meyer"}
	fx := newEngineFixture(t, person)
	fx.giftRepo.add(person.ID, &types.Gift{
		PersonID:   person.ID,
		Amount:     "500",
		ReceivedAt: time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC),
	})

	explicit := uuid.New()
	tasks, err := fx.service.GenerateNextBestActions(context.Background(), &explicit)
	if err != nil {
		t.Fatalf("GenerateNextBestActions() error = %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].OwnerID == nil || *tasks[0].OwnerID != explicit {
		t.Errorf("task should go to the explicit owner")
	}
}
