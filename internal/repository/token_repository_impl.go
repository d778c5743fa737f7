package repository

import (
	"context"
	"fmt"
	"time"

	domainRepo "uiu-clinic-api/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

const blacklistKeyPrefix = "blacklist"

type tokenRepository struct {
	redisClient *redis.Client
}

func NewTokenRepository(redisClient *redis.Client) domainRepo.TokenRepository {
	return &tokenRepository{redisClient: redisClient}
}

// BlacklistKey returns the Redis key revoking one token, e.g. blacklist:access_token:<jti>.
func BlacklistKey(tokenType, tokenID string) string {
	return fmt.Sprintf("%s:%s_token:%s", blacklistKeyPrefix, tokenType, tokenID)
}

// Blacklist revokes a token until ttl elapses. Tokens that are already expired need no entry.
func (r *tokenRepository) Blacklist(ctx context.Context, tokenType string, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.redisClient.Set(ctx, BlacklistKey(tokenType, tokenID), "revoked", ttl).Err()
}

func (r *tokenRepository) IsBlacklisted(ctx context.Context, tokenType string, tokenID string) (bool, error) {
	exists, err := r.redisClient.Exists(ctx, BlacklistKey(tokenType, tokenID)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}
