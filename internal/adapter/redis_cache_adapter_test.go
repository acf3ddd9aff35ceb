package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"law-quiz/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCacheAdapter_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	key := "lawquiz:lawapi:articles:001706"

	t.Run("Success", func(t *testing.T) {
		mock.ExpectGet(key).SetVal("cached")
		val, err := adapter.Get(ctx, key)
		assert.NoError(t, err)
		assert.Equal(t, "cached", val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CacheMiss", func(t *testing.T) {
		mock.ExpectGet(key).SetErr(redis.Nil)
		val, err := adapter.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("connection reset")
		mock.ExpectGet(key).SetErr(redisErr)
		_, err := adapter.Get(ctx, key)
		assert.ErrorIs(t, err, redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_SetDeletePing(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	mock.ExpectSet("k", "v", time.Hour).SetVal("OK")
	assert.NoError(t, adapter.Set(ctx, "k", "v", time.Hour))

	mock.ExpectDel("k").SetVal(0)
	assert.NoError(t, adapter.Delete(ctx, "k"), "deleting a missing key is not an error")

	mock.ExpectPing().SetErr(errors.New("down"))
	assert.Error(t, adapter.Ping(ctx))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJSONHelpers(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheAdapter(db)
	ctx := context.Background()

	articles := []domain.Article{{Number: "1", Content: "제1조 목적", StatuteName: "민법"}}
	payload := `[{"num":"1","content":"제1조 목적","lawName":"민법"}]`

	mock.ExpectSet("k", payload, time.Minute).SetVal("OK")
	require.NoError(t, SetJSON(ctx, c, "k", articles, time.Minute))

	mock.ExpectGet("k").SetVal(payload)
	got, err := GetJSON[[]domain.Article](ctx, c, "k")
	require.NoError(t, err)
	assert.Equal(t, articles, got)

	mock.ExpectGet("k").SetVal("{not json")
	_, err = GetJSON[[]domain.Article](ctx, c, "k")
	assert.Error(t, err)

	mock.ExpectGet("k").SetErr(redis.Nil)
	_, err = GetJSON[[]domain.Article](ctx, c, "k")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	assert.NoError(t, mock.ExpectationsWereMet())
}
