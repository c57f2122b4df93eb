package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/fundrazor/fundrazor-backend/internal/pkg/logger"
)

// Update payloads arrive as map[string]any from JSON, so a numeric amount
// decodes as float64. It must be rejected, not written raw to the column.
func TestUpdateGiftRejectsBadAmountValues(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}
	svc := NewGiftService(nil, log, nil, nil, nil)

	tests := []struct {
		name   string
		fields map[string]any
	}{
		{name: "numeric amount", fields: map[string]any{"amount": 125.5}},
		{name: "boolean amount", fields: map[string]any{"amount": true}},
		{name: "unparseable amount", fields: map[string]any{"amount": "lots"}},
		{name: "negative amount", fields: map[string]any{"amount": "-10"}},
		{name: "numeric gift type", fields: map[string]any{"gift_type": 3}},
		{name: "unknown gift type", fields: map[string]any{"gift_type": "crypto"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.UpdateGift(context.Background(), uuid.New(), tt.fields); err == nil {
				t.Errorf("UpdateGift(%v) expected an error", tt.fields)
			}
		})
	}
}

func TestUpdateGrantRejectsBadAmountValues(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}
	svc := NewGrantService(nil, log, nil)

	tests := []struct {
		name   string
		fields map[string]any
	}{
		{name: "numeric amount", fields: map[string]any{"amount": 50000}},
		{name: "negative amount", fields: map[string]any{"amount": "-1"}},
		{name: "numeric status", fields: map[string]any{"status": 1}},
		{name: "unknown status", fields: map[string]any{"status": "maybe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.UpdateGrant(context.Background(), uuid.New(), tt.fields); err == nil {
				t.Errorf("UpdateGrant(%v) expected an error", tt.fields)
			}
		})
	}
}
