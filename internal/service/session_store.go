package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionStore reads the access-token keys written by the authentication
// service at login. A token is live while its key exists.
type SessionStore interface {
	IsActive(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error)
	Revoke(ctx context.Context, userID uuid.UUID, tokenID string) error
}

type sessionStore struct {
	redisClient *redis.Client
}

func NewSessionStore(redisClient *redis.Client) SessionStore {
	return &sessionStore{redisClient: redisClient}
}

func AccessTokenKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("access_token:%s:%s", userID.String(), tokenID)
}

func (s *sessionStore) IsActive(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	exists, err := s.redisClient.Exists(ctx, AccessTokenKey(userID, tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("check access token: %w", err)
	}
	return exists > 0, nil
}

func (s *sessionStore) Revoke(ctx context.Context, userID uuid.UUID, tokenID string) error {
	if err := s.redisClient.Del(ctx, AccessTokenKey(userID, tokenID)).Err(); err != nil {
		return fmt.Errorf("revoke access token: %w", err)
	}
	return nil
}
