package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist remembers revoked token IDs until they would have expired anyway.
type Denylist interface {
	// Revoke marks jti as revoked for ttl. It reports false when jti was
	// already revoked.
	Revoke(ctx context.Context, jti string, ttl time.Duration) (bool, error)
}

// NopDenylist never remembers anything: refresh tokens rotate but stay valid.
type NopDenylist struct{}

func (NopDenylist) Revoke(context.Context, string, time.Duration) (bool, error) { return true, nil }

// RedisDenylist stores revoked IDs as expiring Redis keys.
type RedisDenylist struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisDenylist(client redis.UniversalClient) *RedisDenylist {
	return &RedisDenylist{client: client, prefix: "auth:revoked:"}
}

func (d *RedisDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		// Already expired; signature validation rejects it from now on.
		return true, nil
	}
	ok, err := d.client.SetNX(ctx, d.prefix+jti, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return ok, nil
}
