package opstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOperation(userId uint) *StagedOperation {
	return &StagedOperation{
		OperationId: NewOperationId(),
		Command:     "이 파일들을 마케팅폴더로 옮겨줘",
		Context: OperationContext{
			CurrentPath: "/work",
			SelectedFiles: []FileItem{
				{Id: "1", Name: "report.pdf", Type: "file", Path: "/work/report.pdf"},
			},
			Timestamp: time.Now().UTC().Truncate(time.Second),
		},
		Operation: Operation{
			Type:        KindMove,
			Targets:     FileItemList{{Id: "1", Name: "report.pdf", Type: "file", Path: "/work/report.pdf"}},
			Destination: "/work/marketing",
		},
		RequiresConfirmation: true,
		RiskLevel:            RiskMedium,
		Preview:              Preview{Description: "1개 항목을 '/work/marketing'(으)로 이동합니다.", Warnings: []string{}},
		UserId:               userId,
		CreatedAt:            time.Now().UTC().Truncate(time.Second),
	}
}

func runStoreSuite(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		op := sampleOperation(7)
		require.NoError(t, store.Store(ctx, op, time.Minute))

		got, err := store.Get(ctx, op.OperationId)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, op.OperationId, got.OperationId)
		assert.Equal(t, op.Command, got.Command)
		assert.Equal(t, KindMove, got.Operation.Type)
		assert.Equal(t, "/work/marketing", got.Operation.Destination)
		assert.Equal(t, uint(7), got.UserId)
		assert.Equal(t, RiskMedium, got.RiskLevel)
	})

	t.Run("missing key", func(t *testing.T) {
		got, err := store.Get(ctx, "op-missing")
		require.NoError(t, err)
		assert.Nil(t, got)

		ttl, err := store.TTL(ctx, "op-missing")
		require.NoError(t, err)
		assert.Equal(t, int64(-1), ttl)
	})

	t.Run("delete", func(t *testing.T) {
		op := sampleOperation(7)
		require.NoError(t, store.Store(ctx, op, time.Minute))

		deleted, err := store.Delete(ctx, op.OperationId)
		require.NoError(t, err)
		assert.True(t, deleted)

		got, err := store.Get(ctx, op.OperationId)
		require.NoError(t, err)
		assert.Nil(t, got)

		deleted, err = store.Delete(ctx, op.OperationId)
		require.NoError(t, err)
		assert.False(t, deleted, "second delete must report nothing removed")
	})

	t.Run("ttl countdown", func(t *testing.T) {
		op := sampleOperation(7)
		require.NoError(t, store.Store(ctx, op, 10*time.Minute))

		ttl, err := store.TTL(ctx, op.OperationId)
		require.NoError(t, err)
		assert.Greater(t, ttl, int64(590))
		assert.LessOrEqual(t, ttl, int64(600))
	})

	t.Run("extend", func(t *testing.T) {
		op := sampleOperation(7)
		require.NoError(t, store.Store(ctx, op, time.Minute))

		extended, err := store.Extend(ctx, op.OperationId, 10*time.Minute)
		require.NoError(t, err)
		assert.True(t, extended)

		ttl, err := store.TTL(ctx, op.OperationId)
		require.NoError(t, err)
		assert.Greater(t, ttl, int64(60), "ttl should have been reset past the original window")

		extended, err = store.Extend(ctx, "op-missing", 10*time.Minute)
		require.NoError(t, err)
		assert.False(t, extended)
	})

	t.Run("health check", func(t *testing.T) {
		assert.NoError(t, store.HealthCheck(ctx))
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, NewMemoryStore())
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	runStoreSuite(t, NewRedisStore(rdb))
}

func TestRedisStoreExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(rdb)
	ctx := context.Background()

	op := sampleOperation(7)
	require.NoError(t, store.Store(ctx, op, time.Minute))

	mr.FastForward(2 * time.Minute)

	got, err := store.Get(ctx, op.OperationId)
	require.NoError(t, err)
	assert.Nil(t, got, "record must expire with its ttl")
}

func TestMemoryStoreReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	op := sampleOperation(7)
	require.NoError(t, store.Store(ctx, op, time.Minute))

	got, err := store.Get(ctx, op.OperationId)
	require.NoError(t, err)
	require.NotNil(t, got)

	got.Command = "mutated"
	again, err := store.Get(ctx, op.OperationId)
	require.NoError(t, err)
	assert.Equal(t, op.Command, again.Command, "callers must not be able to mutate the stored record")
}
