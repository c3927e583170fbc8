package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go-clinic-access/internal/authz"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	RedisIdentityKeyPrefix           = "identity:"
	RedisIdentityGenerationKeyPrefix = "identity_gen:"
)

// IdentityCacheService keeps raw account snapshots in redis so that a
// navigation does not hit postgres on every request.
//
// Every user has a generation counter that Invalidate bumps. A snapshot is
// stamped with the generation read before the database was queried and is
// served only while that generation is still current.
type IdentityCacheService interface {
	// Get returns a nil account on a miss, together with the current
	// generation to pass to Set.
	Get(ctx context.Context, userID uuid.UUID) (*authz.RawAccount, int64, error)
	Set(ctx context.Context, userID uuid.UUID, generation int64, raw authz.RawAccount) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

type identitySnapshot struct {
	Generation int64            `json:"generation"`
	Account    authz.RawAccount `json:"account"`
}

type identityCacheService struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewIdentityCacheService(redisClient *redis.Client, ttl time.Duration) IdentityCacheService {
	return &identityCacheService{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func identityKey(userID uuid.UUID) string {
	return RedisIdentityKeyPrefix + userID.String()
}

func identityGenerationKey(userID uuid.UUID) string {
	return RedisIdentityGenerationKeyPrefix + userID.String()
}

func (s *identityCacheService) Get(ctx context.Context, userID uuid.UUID) (*authz.RawAccount, int64, error) {
	values, err := s.redisClient.MGet(ctx, identityKey(userID), identityGenerationKey(userID)).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("get identity snapshot for %s: %w", userID, err)
	}

	var generation int64
	if raw, ok := values[1].(string); ok {
		if generation, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, 0, fmt.Errorf("identity generation for %s: %w", userID, err)
		}
	}

	data, ok := values[0].(string)
	if !ok {
		return nil, generation, nil
	}
	var snapshot identitySnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		// A corrupt snapshot is treated as a miss and overwritten by the caller.
		return nil, generation, nil
	}
	if snapshot.Generation != generation {
		return nil, generation, nil
	}
	return &snapshot.Account, generation, nil
}

func (s *identityCacheService) Set(ctx context.Context, userID uuid.UUID, generation int64, raw authz.RawAccount) error {
	data, err := json.Marshal(identitySnapshot{Generation: generation, Account: raw})
	if err != nil {
		return err
	}
	if err := s.redisClient.Set(ctx, identityKey(userID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("set identity snapshot for %s: %w", userID, err)
	}
	return nil
}

func (s *identityCacheService) Invalidate(ctx context.Context, userID uuid.UUID) error {
	_, err := s.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, identityGenerationKey(userID))
		pipe.Del(ctx, identityKey(userID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate identity snapshot for %s: %w", userID, err)
	}
	return nil
}
