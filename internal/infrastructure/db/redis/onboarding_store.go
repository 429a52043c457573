package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cinemyst/onboarding-service/internal/core/domain"
)

const defaultOnboardingTTL = 7 * 24 * time.Hour

// OnboardingStore keeps each user's wizard as a JSON document that expires
// after ttl without activity. Key format: onboarding:<user_id>
type OnboardingStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewOnboardingStore(client *redis.Client, ttl time.Duration) *OnboardingStore {
	if ttl <= 0 {
		ttl = defaultOnboardingTTL
	}
	return &OnboardingStore{client: client, ttl: ttl}
}

func (s *OnboardingStore) Save(ctx context.Context, userID string, c *domain.Coordinator) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode onboarding: %w", err)
	}
	if err := s.client.Set(ctx, s.key(userID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save onboarding: %w", err)
	}
	return nil
}

func (s *OnboardingStore) Load(ctx context.Context, userID string) (*domain.Coordinator, error) {
	raw, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrOnboardingNotFound
		}
		return nil, fmt.Errorf("load onboarding: %w", err)
	}

	var c domain.Coordinator
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode onboarding: %w", err)
	}
	return &c, nil
}

func (s *OnboardingStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("delete onboarding: %w", err)
	}
	return nil
}

func (s *OnboardingStore) key(userID string) string {
	return "onboarding:" + userID
}
