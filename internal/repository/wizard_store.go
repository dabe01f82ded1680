package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/nurpe/booking-wizard/internal/wizard"
)

const wizardKeyPrefix = "booking:wizard:"

// WizardStore keeps per-session wizard progress in Redis as a JSON blob.
// Every write refreshes the key's TTL so progress lives as long as the session.
type WizardStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewWizardStore(client *redis.Client, ttl time.Duration) *WizardStore {
	return &WizardStore{client: client, ttl: ttl}
}

// Load returns a fresh progress when the session has none.
func (s *WizardStore) Load(ctx context.Context, sessionID uuid.UUID) (wizard.Progress, error) {
	data, err := s.client.Get(ctx, wizardKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return wizard.NewProgress(), nil
	}
	if err != nil {
		return wizard.Progress{}, fmt.Errorf("get wizard progress: %w", err)
	}

	var progress wizard.Progress
	if err := json.Unmarshal(data, &progress); err != nil {
		return wizard.Progress{}, fmt.Errorf("unmarshal wizard progress: %w", err)
	}
	return progress.Normalize(), nil
}

func (s *WizardStore) Save(ctx context.Context, sessionID uuid.UUID, progress wizard.Progress) error {
	data, err := json.Marshal(progress.Normalize())
	if err != nil {
		return fmt.Errorf("marshal wizard progress: %w", err)
	}
	if err := s.client.Set(ctx, wizardKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save wizard progress: %w", err)
	}
	return nil
}

func (s *WizardStore) Clear(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.client.Del(ctx, wizardKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear wizard progress: %w", err)
	}
	return nil
}

func wizardKey(sessionID uuid.UUID) string {
	return wizardKeyPrefix + sessionID.String()
}
