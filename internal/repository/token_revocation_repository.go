package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revocationKeyPrefix = "auth:revoked:"

// TokenRevocationRepository records refresh tokens invalidated before their
// natural expiry. Access tokens are never revoked; they stay stateless until
// they expire.
type TokenRevocationRepository interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type redisTokenRevocationRepository struct {
	client *redis.Client
}

// NewTokenRevocationRepository returns a Redis-backed implementation. Entries
// carry a TTL equal to the token's remaining life so the denylist cleans
// itself up.
func NewTokenRevocationRepository(client *redis.Client) TokenRevocationRepository {
	return &redisTokenRevocationRepository{client: client}
}

func (r *redisTokenRevocationRepository) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revocationKeyPrefix+tokenID, "1", ttl).Err()
}

func (r *redisTokenRevocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, revocationKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
