package service

import (
	"testing"
	"time"

	"go-clinic-access/internal/authz"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestIdentityCacheService_RoundTrip(t *testing.T) {
	mr, client := newRedis(t)
	svc := NewIdentityCacheService(client, time.Minute)
	ctx := t.Context()
	userID := uuid.New()

	raw, generation, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, raw)
	assert.Zero(t, generation)

	stored := authz.RawAccount{Role: "Receptionist", Permissions: map[string]bool{"suppliers": false}}
	require.NoError(t, svc.Set(ctx, userID, generation, stored))
	assert.Equal(t, time.Minute, mr.TTL(RedisIdentityKeyPrefix+userID.String()))

	raw, _, err = svc.Get(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, raw)
	assert.Equal(t, stored, *raw)

	require.NoError(t, svc.Invalidate(ctx, userID))
	assert.False(t, mr.Exists(RedisIdentityKeyPrefix+userID.String()))

	raw, generation, err = svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, raw)
	assert.Equal(t, int64(1), generation)
}

func TestIdentityCacheService_StaleGenerationIsMiss(t *testing.T) {
	_, client := newRedis(t)
	svc := NewIdentityCacheService(client, time.Minute)
	ctx := t.Context()
	userID := uuid.New()

	_, before, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, svc.Invalidate(ctx, userID))

	// Written after the invalidation with the generation read before it.
	require.NoError(t, svc.Set(ctx, userID, before, authz.RawAccount{Role: "Receptionist", Permissions: map[string]bool{}}))

	raw, current, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, raw)
	assert.Equal(t, before+1, current)

	require.NoError(t, svc.Set(ctx, userID, current, authz.RawAccount{Role: "Receptionist", Permissions: map[string]bool{"suppliers": false}}))
	raw, _, err = svc.Get(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, raw)
	assert.Equal(t, map[string]bool{"suppliers": false}, raw.Permissions)
}

func TestIdentityCacheService_KeepsLegacyNull(t *testing.T) {
	mr, client := newRedis(t)
	svc := NewIdentityCacheService(client, time.Minute)
	userID := uuid.New()

	require.NoError(t, svc.Set(t.Context(), userID, 0, authz.RawAccount{Role: "Receptionist"}))

	data, err := mr.Get(RedisIdentityKeyPrefix + userID.String())
	require.NoError(t, err)
	assert.JSONEq(t, `{"generation":0,"account":{"role":"Receptionist","permissions":null}}`, data)

	raw, _, err := svc.Get(t.Context(), userID)
	require.NoError(t, err)
	require.NotNil(t, raw)
	assert.Nil(t, raw.Permissions)
}

func TestIdentityCacheService_CorruptSnapshotIsMiss(t *testing.T) {
	mr, client := newRedis(t)
	svc := NewIdentityCacheService(client, time.Minute)
	userID := uuid.New()

	require.NoError(t, mr.Set(RedisIdentityKeyPrefix+userID.String(), "{not json"))

	raw, _, err := svc.Get(t.Context(), userID)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestIdentityCacheService_StoreDown(t *testing.T) {
	mr, client := newRedis(t)
	svc := NewIdentityCacheService(client, time.Minute)
	mr.Close()

	_, _, err := svc.Get(t.Context(), uuid.New())
	assert.Error(t, err)
	assert.Error(t, svc.Invalidate(t.Context(), uuid.New()))
}
