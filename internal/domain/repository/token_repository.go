package repository

import (
	"context"
	"time"
)

// TokenRepository is the shared token blacklist. Entries expire together with the token they
// revoke.
type TokenRepository interface {
	Blacklist(ctx context.Context, tokenType string, tokenID string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, tokenType string, tokenID string) (bool, error)
}
