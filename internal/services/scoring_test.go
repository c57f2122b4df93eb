package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fundrazor/fundrazor-backend/internal/pkg/logger"
	"github.com/fundrazor/fundrazor-backend/internal/types"
)

func giftAt(amount string, receivedAt time.Time) *types.Gift {
	return &types.Gift{Amount: amount, ReceivedAt: receivedAt}
}

func interactionAt(occurredAt time.Time) *types.Interaction {
	return &types.Interaction{Type: types.InteractionEmail, OccurredAt: occurredAt}
}

func TestEngagementScore(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		interactions []*types.Interaction
		want         int
	}{
		{
			name:         "no interactions",
			interactions: nil,
			want:         0,
		},
		{
			name: "all interactions outside window",
			interactions: []*types.Interaction{
				interactionAt(now.AddDate(0, 0, -91)),
				interactionAt(now.AddDate(0, -6, 0)),
			},
			want: 0,
		},
		{
			name: "one recent interaction",
			interactions: []*types.Interaction{
				interactionAt(now.AddDate(0, 0, -10)),
			},
			want: 20,
		},
		{
			name: "three recent interactions",
			interactions: []*types.Interaction{
				interactionAt(now.AddDate(0, 0, -1)),
				interactionAt(now.AddDate(0, 0, -30)),
				interactionAt(now.AddDate(0, 0, -89)),
			},
			want: 60,
		},
		{
			name: "saturates at five",
			interactions: []*types.Interaction{
				interactionAt(now.AddDate(0, 0, -1)),
				interactionAt(now.AddDate(0, 0, -2)),
				interactionAt(now.AddDate(0, 0, -3)),
				interactionAt(now.AddDate(0, 0, -4)),
				interactionAt(now.AddDate(0, 0, -5)),
			},
			want: 100,
		},
		{
			name: "caps above five",
			interactions: []*types.Interaction{
				interactionAt(now.AddDate(0, 0, -1)),
				interactionAt(now.AddDate(0, 0, -2)),
				interactionAt(now.AddDate(0, 0, -3)),
				interactionAt(now.AddDate(0, 0, -4)),
				interactionAt(now.AddDate(0, 0, -5)),
				interactionAt(now.AddDate(0, 0, -6)),
				interactionAt(now.AddDate(0, 0, -7)),
			},
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engagementScore(tt.interactions, now)
			if got != tt.want {
				t.Errorf("engagementScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCapacityScore(t *testing.T) {
	received := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		gifts []*types.Gift
		want  int
	}{
		{name: "no gifts", gifts: nil, want: 0},
		{name: "average at 10000 boundary", gifts: []*types.Gift{giftAt("10000", received)}, want: 100},
		{name: "average just under 10000", gifts: []*types.Gift{giftAt("9999.99", received)}, want: 85},
		{name: "average at 5000 boundary", gifts: []*types.Gift{giftAt("5000", received)}, want: 85},
		{name: "average at 1000 boundary", gifts: []*types.Gift{giftAt("1000", received)}, want: 70},
		{name: "average just under 1000", gifts: []*types.Gift{giftAt("999.99", received)}, want: 55},
		{name: "average at 500 boundary", gifts: []*types.Gift{giftAt("500", received)}, want: 55},
		{name: "average at 100 boundary", gifts: []*types.Gift{giftAt("100", received)}, want: 40},
		{name: "average just under 100", gifts: []*types.Gift{giftAt("99.99", received)}, want: 25},
		{
			name: "average over multiple gifts",
			gifts: []*types.Gift{
				giftAt("100", received),
				giftAt("1900", received),
			},
			want: 70,
		},
		{
			name: "unparseable amount counts as zero",
			gifts: []*types.Gift{
				giftAt("not-a-number", received),
				giftAt("200", received),
			},
			want: 40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := capacityScore(tt.gifts)
			if got != tt.want {
				t.Errorf("capacityScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAffinityScore(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		engagement int
		capacity   int
		gifts      []*types.Gift
		want       int
	}{
		{
			name:       "no gifts",
			engagement: 80,
			capacity:   90,
			gifts:      nil,
			want:       0,
		},
		{
			name:       "gift today keeps full recency",
			engagement: 60,
			capacity:   40,
			gifts:      []*types.Gift{giftAt("100", now)},
			// ((60+40)/2 + 100) / 2
			want: 75,
		},
		{
			name:       "recency decays twenty points per year",
			engagement: 100,
			capacity:   100,
			gifts:      []*types.Gift{giftAt("100", now.Add(-2*365*24*time.Hour))},
			// (100 + 60) / 2
			want: 80,
		},
		{
			name:       "recency floors at zero after five years",
			engagement: 50,
			capacity:   50,
			gifts:      []*types.Gift{giftAt("100", now.Add(-6*365*24*time.Hour))},
			// (50 + 0) / 2
			want: 25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := affinityScore(tt.engagement, tt.capacity, tt.gifts, now)
			if got != tt.want {
				t.Errorf("affinityScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRecomputeDonorScores(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	person := &types.Person{ID: uuid.New(), FirstName: "Ada", LastName: "Meyer"}

	personRepo := newFakePersonRepo(person)
	giftRepo := newFakeGiftRepo()
	interactionRepo := newFakeInteractionRepo()

	// ListByPersonID contract: newest first.
	giftRepo.add(person.ID,
		giftAt("1500", now.AddDate(0, -1, 0)),
		giftAt("500", now.AddDate(-1, 0, 0)),
	)
	interactionRepo.add(person.ID,
		interactionAt(now.AddDate(0, 0, -5)),
		interactionAt(now.AddDate(0, 0, -20)),
	)

	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}
	svc := NewScoringService(nil, log, personRepo, giftRepo, interactionRepo).(*scoringService)
	svc.now = func() time.Time { return now }

	if err := svc.RecomputeDonorScores(context.Background(), nil, person.ID); err != nil {
		t.Fatalf("RecomputeDonorScores() error = %v", err)
	}

	fields, ok := personRepo.updated[person.ID]
	if !ok {
		t.Fatal("no fields persisted")
	}
	if got := fields["engagement_score"]; got != 40 {
		t.Errorf("engagement_score = %v, want 40", got)
	}
	if got := fields["capacity_score"]; got != 70 {
		t.Errorf("capacity_score = %v, want 70", got)
	}
	if got := fields["total_lifetime_giving"]; got != "2000" {
		t.Errorf("total_lifetime_giving = %v, want 2000", got)
	}
	if got := fields["last_gift_amount"]; got != "1500" {
		t.Errorf("last_gift_amount = %v, want 1500", got)
	}
}

func TestRecomputeDonorScoresNoGifts(t *testing.T) {
	person := &types.Person{ID: uuid.New(), FirstName: "Ada", LastName: "Meyer"}
	personRepo := newFakePersonRepo(person)

	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}
	svc := NewScoringService(nil, log, personRepo, newFakeGiftRepo(), newFakeInteractionRepo()).(*scoringService)

	if err := svc.RecomputeDonorScores(context.Background(), nil, person.ID); err != nil {
		t.Fatalf("RecomputeDonorScores() error = %v", err)
	}

	fields := personRepo.updated[person.ID]
	if fields == nil {
		t.Fatal("no fields persisted")
	}
	if got := fields["engagement_score"]; got != 0 {
		t.Errorf("engagement_score = %v, want 0", got)
	}
	if got := fields["capacity_score"]; got != 0 {
		t.Errorf("capacity_score = %v, want 0", got)
	}
	if got := fields["affinity_score"]; got != 0 {
		t.Errorf("affinity_score = %v, want 0", got)
	}
	if got := fields["last_gift_date"]; got != nil {
		t.Errorf("last_gift_date = %v, want nil", got)
	}
	if got := fields["last_gift_amount"]; got != "0" {
		t.Errorf("last_gift_amount = %v, want 0", got)
	}
}

func TestRecomputeDonorScoresMissingPerson(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}
	personRepo := newFakePersonRepo()
	svc := NewScoringService(nil, log, personRepo, newFakeGiftRepo(), newFakeInteractionRepo())

	// A vanished person is a no-op, not an error.
	if err := svc.RecomputeDonorScores(context.Background(), nil, uuid.New()); err != nil {
		t.Fatalf("RecomputeDonorScores() error = %v", err)
	}
	if len(personRepo.updated) != 0 {
		t.Errorf("expected no writes for a missing person")
	}
}

func TestTotalLifetimeGiving(t *testing.T) {
	received := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		gifts []*types.Gift
		want  string
	}{
		{name: "no gifts", gifts: nil, want: "0"},
		{
			name: "exact decimal sum",
			gifts: []*types.Gift{
				giftAt("0.1", received),
				giftAt("0.2", received),
			},
			want: "0.3",
		},
		{
			name: "skips unparseable amounts",
			gifts: []*types.Gift{
				giftAt("150.25", received),
				giftAt("garbage", received),
				giftAt("49.75", received),
			},
			want: "200",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := totalLifetimeGiving(tt.gifts)
			if got.String() != tt.want {
				t.Errorf("totalLifetimeGiving() = %s, want %s", got.String(), tt.want)
			}
		})
	}
}
