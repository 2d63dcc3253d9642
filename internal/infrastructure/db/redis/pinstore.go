package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chiraitori/farm-management-api/internal/core/domain"
)

const pinTTL = 15 * time.Minute

// PinStore keeps password-reset PINs in Redis. The key TTL enforces the
// 15-minute expiry; an expired PIN simply no longer exists, so failed resets
// never touch the users collection.
// Key format: reset_pin:<email>
type PinStore struct {
	client *redis.Client
}

func NewPinStore(client *redis.Client) *PinStore {
	return &PinStore{client: client}
}

func (p *PinStore) Save(ctx context.Context, email, pin string) error {
	return p.client.Set(ctx, p.key(email), pin, pinTTL).Err()
}

// Get returns the stored PIN, or domain.ErrInvalidPin when none exists.
func (p *PinStore) Get(ctx context.Context, email string) (string, error) {
	pin, err := p.client.Get(ctx, p.key(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrInvalidPin
	}
	if err != nil {
		return "", fmt.Errorf("get reset pin: %w", err)
	}
	return pin, nil
}

func (p *PinStore) Consume(ctx context.Context, email string) error {
	return p.client.Del(ctx, p.key(email)).Err()
}

func (p *PinStore) key(email string) string {
	return "reset_pin:" + email
}
