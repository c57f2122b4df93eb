package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fundrazor/fundrazor-backend/internal/repos/testutil"
	"github.com/fundrazor/fundrazor-backend/internal/types"
)

func TestPersonRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewPersonRepo(db, testutil.Logger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, tx, []*types.Person{
		{
			ID:        uuid.New(),
			FirstName: "Ada",
			LastName:  "Whitfield",
			Email:     "ada@example.com",
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 person, got %d", len(created))
	}

	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{created[0].ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 1 || got[0].ID != created[0].ID {
		t.Fatalf("GetByIDs: unexpected result: %+v", got)
	}

	lastGift := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	if err := repo.UpdateFields(ctx, tx, created[0].ID, map[string]any{
		"engagement_score":      80,
		"capacity_score":        70,
		"affinity_score":        75,
		"last_gift_date":        lastGift,
		"last_gift_amount":      "250.00",
		"total_lifetime_giving": "1250.00",
	}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}

	got, err = repo.GetByIDs(ctx, tx, []uuid.UUID{created[0].ID})
	if err != nil {
		t.Fatalf("GetByIDs (after update): %v", err)
	}
	p := got[0]
	if p.EngagementScore != 80 || p.CapacityScore != 70 || p.AffinityScore != 75 {
		t.Fatalf("UpdateFields: scores not persisted: %+v", p)
	}
	if p.LastGiftDate == nil || !p.LastGiftDate.Equal(lastGift) {
		t.Fatalf("UpdateFields: last gift date not persisted: %+v", p.LastGiftDate)
	}

	listed, err := repo.List(ctx, tx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) == 0 {
		t.Fatalf("List: expected at least 1 person")
	}

	if err := repo.Delete(ctx, tx, created[0].ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err = repo.GetByIDs(ctx, tx, []uuid.UUID{created[0].ID})
	if err != nil {
		t.Fatalf("GetByIDs (after delete): %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Delete: expected person gone, got %+v", got)
	}
}
