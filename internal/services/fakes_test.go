package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fundrazor/fundrazor-backend/internal/pkg/errors"
	"github.com/fundrazor/fundrazor-backend/internal/repos"
	"github.com/fundrazor/fundrazor-backend/internal/types"
)

// In-memory repo fakes for exercising the scoring and rule engines without a
// database. Only the methods the engines call have real behavior.

type fakePersonRepo struct {
	persons []*types.Person
	updated map[uuid.UUID]map[string]any
}

func newFakePersonRepo(persons ...*types.Person) *fakePersonRepo {
	return &fakePersonRepo{persons: persons, updated: map[uuid.UUID]map[string]any{}}
}

func (f *fakePersonRepo) Create(ctx context.Context, tx *gorm.DB, persons []*types.Person) ([]*types.Person, error) {
	f.persons = append(f.persons, persons...)
	return persons, nil
}

func (f *fakePersonRepo) GetByIDs(ctx context.Context, tx *gorm.DB, personIDs []uuid.UUID) ([]*types.Person, error) {
	var out []*types.Person
	for _, p := range f.persons {
		for _, id := range personIDs {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (f *fakePersonRepo) GetWithHistory(ctx context.Context, tx *gorm.DB, personID uuid.UUID) (*types.Person, error) {
	for _, p := range f.persons {
		if p.ID == personID {
			return p, nil
		}
	}
	return nil, errors.ErrNotFound
}

func (f *fakePersonRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Person, error) {
	return f.persons, nil
}

func (f *fakePersonRepo) UpdateFields(ctx context.Context, tx *gorm.DB, personID uuid.UUID, fields map[string]any) error {
	f.updated[personID] = fields
	return nil
}

func (f *fakePersonRepo) Delete(ctx context.Context, tx *gorm.DB, personID uuid.UUID) error {
	return nil
}

type fakeGiftRepo struct {
	byPerson map[uuid.UUID][]*types.Gift
}

func newFakeGiftRepo() *fakeGiftRepo {
	return &fakeGiftRepo{byPerson: map[uuid.UUID][]*types.Gift{}}
}

func (f *fakeGiftRepo) add(personID uuid.UUID, gifts ...*types.Gift) {
	f.byPerson[personID] = append(f.byPerson[personID], gifts...)
}

func (f *fakeGiftRepo) Create(ctx context.Context, tx *gorm.DB, gifts []*types.Gift) ([]*types.Gift, error) {
	for _, g := range gifts {
		f.byPerson[g.PersonID] = append(f.byPerson[g.PersonID], g)
	}
	return gifts, nil
}

func (f *fakeGiftRepo) GetByIDs(ctx context.Context, tx *gorm.DB, giftIDs []uuid.UUID) ([]*types.Gift, error) {
	return nil, nil
}

func (f *fakeGiftRepo) ListByPersonID(ctx context.Context, tx *gorm.DB, personID uuid.UUID) ([]*types.Gift, error) {
	return f.byPerson[personID], nil
}

func (f *fakeGiftRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Gift, error) {
	var out []*types.Gift
	for _, gifts := range f.byPerson {
		out = append(out, gifts...)
	}
	return out, nil
}

func (f *fakeGiftRepo) UpdateFields(ctx context.Context, tx *gorm.DB, giftID uuid.UUID, fields map[string]any) error {
	return nil
}

func (f *fakeGiftRepo) Delete(ctx context.Context, tx *gorm.DB, giftID uuid.UUID) error {
	return nil
}

type fakeInteractionRepo struct {
	byPerson map[uuid.UUID][]*types.Interaction
}

func newFakeInteractionRepo() *fakeInteractionRepo {
	return &fakeInteractionRepo{byPerson: map[uuid.UUID][]*types.Interaction{}}
}

func (f *fakeInteractionRepo) add(personID uuid.UUID, interactions ...*types.Interaction) {
	f.byPerson[personID] = append(f.byPerson[personID], interactions...)
}

func (f *fakeInteractionRepo) Create(ctx context.Context, tx *gorm.DB, interactions []*types.Interaction) ([]*types.Interaction, error) {
	for _, it := range interactions {
		f.byPerson[it.PersonID] = append(f.byPerson[it.PersonID], it)
	}
	return interactions, nil
}

func (f *fakeInteractionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, interactionIDs []uuid.UUID) ([]*types.Interaction, error) {
	return nil, nil
}

func (f *fakeInteractionRepo) ListByPersonID(ctx context.Context, tx *gorm.DB, personID uuid.UUID) ([]*types.Interaction, error) {
	return f.byPerson[personID], nil
}

func (f *fakeInteractionRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Interaction, error) {
	return nil, nil
}

func (f *fakeInteractionRepo) UpdateFields(ctx context.Context, tx *gorm.DB, interactionID uuid.UUID, fields map[string]any) error {
	return nil
}

func (f *fakeInteractionRepo) Delete(ctx context.Context, tx *gorm.DB, interactionID uuid.UUID) error {
	return nil
}

type fakeOpportunityRepo struct {
	byPerson map[uuid.UUID][]*types.Opportunity
}

func newFakeOpportunityRepo() *fakeOpportunityRepo {
	return &fakeOpportunityRepo{byPerson: map[uuid.UUID][]*types.Opportunity{}}
}

func (f *fakeOpportunityRepo) add(personID uuid.UUID, opportunities ...*types.Opportunity) {
	f.byPerson[personID] = append(f.byPerson[personID], opportunities...)
}

func (f *fakeOpportunityRepo) Create(ctx context.Context, tx *gorm.DB, opportunities []*types.Opportunity) ([]*types.Opportunity, error) {
	for _, opp := range opportunities {
		f.byPerson[opp.PersonID] = append(f.byPerson[opp.PersonID], opp)
	}
	return opportunities, nil
}

func (f *fakeOpportunityRepo) GetByIDs(ctx context.Context, tx *gorm.DB, opportunityIDs []uuid.UUID) ([]*types.Opportunity, error) {
	return nil, nil
}

func (f *fakeOpportunityRepo) ListByPersonID(ctx context.Context, tx *gorm.DB, personID uuid.UUID) ([]*types.Opportunity, error) {
	return f.byPerson[personID], nil
}

func (f *fakeOpportunityRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Opportunity, error) {
	var out []*types.Opportunity
	for _, opps := range f.byPerson {
		out = append(out, opps...)
	}
	return out, nil
}

func (f *fakeOpportunityRepo) UpdateFields(ctx context.Context, tx *gorm.DB, opportunityID uuid.UUID, fields map[string]any) error {
	return nil
}

func (f *fakeOpportunityRepo) MoveStage(ctx context.Context, tx *gorm.DB, opportunityID uuid.UUID, stage string, at time.Time) error {
	return nil
}

func (f *fakeOpportunityRepo) Delete(ctx context.Context, tx *gorm.DB, opportunityID uuid.UUID) error {
	return nil
}

type fakeTaskRepo struct {
	tasks []*types.Task

	// createErrOnRule makes Create fail for tasks carrying this rule key,
	// simulating an insert error partway through a person.
	createErrOnRule string
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{}
}

func (f *fakeTaskRepo) Create(ctx context.Context, tx *gorm.DB, tasks []*types.Task) ([]*types.Task, error) {
	for _, t := range tasks {
		if f.createErrOnRule != "" && t.RuleKey == f.createErrOnRule {
			return nil, fmt.Errorf("insert task")
		}
	}
	f.tasks = append(f.tasks, tasks...)
	return tasks, nil
}

func (f *fakeTaskRepo) GetByIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) ([]*types.Task, error) {
	var out []*types.Task
	for _, t := range f.tasks {
		for _, id := range taskIDs {
			if t.ID == id {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) List(ctx context.Context, tx *gorm.DB, filter repos.TaskFilter) ([]*types.Task, error) {
	var out []*types.Task
	for _, t := range f.tasks {
		if filter.PersonID != nil && t.PersonID != *filter.PersonID {
			continue
		}
		if filter.Completed != nil && t.Completed != *filter.Completed {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTaskRepo) OpenRuleTaskExists(ctx context.Context, tx *gorm.DB, personID uuid.UUID, ruleKey string) (bool, error) {
	for _, t := range f.tasks {
		if t.PersonID == personID && t.RuleKey == ruleKey && !t.Completed {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTaskRepo) UpdateFields(ctx context.Context, tx *gorm.DB, taskID uuid.UUID, fields map[string]any) error {
	return nil
}

func (f *fakeTaskRepo) Complete(ctx context.Context, tx *gorm.DB, taskID uuid.UUID, at time.Time) error {
	for _, t := range f.tasks {
		if t.ID == taskID {
			t.Completed = true
			t.CompletedAt = &at
		}
	}
	return nil
}

func (f *fakeTaskRepo) Delete(ctx context.Context, tx *gorm.DB, taskID uuid.UUID) error {
	return nil
}

type fakeUserRepo struct {
	users []*types.User
}

func newFakeUserRepo(users ...*types.User) *fakeUserRepo {
	return &fakeUserRepo{users: users}
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
	f.users = append(f.users, users...)
	return users, nil
}

func (f *fakeUserRepo) GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error) {
	var out []*types.User
	for _, u := range f.users {
		for _, id := range userIDs {
			if u.ID == id {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (f *fakeUserRepo) GetByEmails(ctx context.Context, tx *gorm.DB, userEmails []string) ([]*types.User, error) {
	var out []*types.User
	for _, u := range f.users {
		for _, email := range userEmails {
			if u.Email == email {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, tx *gorm.DB, userEmail string) (bool, error) {
	for _, u := range f.users {
		if u.Email == userEmail {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) ListByRole(ctx context.Context, tx *gorm.DB, role string) ([]*types.User, error) {
	var out []*types.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}
