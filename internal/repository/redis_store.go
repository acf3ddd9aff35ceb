package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"law-quiz/internal/cache"
	"law-quiz/internal/domain"
	"law-quiz/internal/repository/models"
	"law-quiz/internal/util"

	"github.com/redis/go-redis/v9"
)

// batchDocument is the stored form of a batch in redis.
type batchDocument struct {
	ID        string          `json:"id"`
	CreatedAt int64           `json:"createdAt"`
	Quizzes   json.RawMessage `json:"quizzes"`
}

// RedisBatchStore keeps batches in a sorted set scored by creation time.
type RedisBatchStore struct {
	client redis.Cmdable
	key    string
	newID  func() string
}

// NewRedisBatchStore creates a store under the given collection name.
func NewRedisBatchStore(client redis.Cmdable, collection string) *RedisBatchStore {
	return &RedisBatchStore{
		client: client,
		key:    cache.GenerateCacheKey("store", "batches", collection),
		newID:  util.NewULID,
	}
}

// Append implements domain.QuizStore
func (s *RedisBatchStore) Append(ctx context.Context, batch domain.QuizBatch) error {
	if batch.ID == "" {
		batch.ID = s.newID()
	}
	quizzes := batch.Quizzes
	if quizzes == nil {
		quizzes = []domain.Quiz{}
	}

	rawQuizzes, err := json.Marshal(quizzes)
	if err != nil {
		return fmt.Errorf("failed to encode quizzes: %w", err)
	}
	member, err := json.Marshal(batchDocument{ID: batch.ID, CreatedAt: batch.CreatedAt, Quizzes: rawQuizzes})
	if err != nil {
		return fmt.Errorf("failed to encode batch: %w", err)
	}

	if err := s.client.ZAdd(ctx, s.key, redis.Z{Score: float64(batch.CreatedAt), Member: string(member)}).Err(); err != nil {
		return fmt.Errorf("failed to append batch: %w", err)
	}
	return nil
}

// MostRecent implements domain.QuizStore
func (s *RedisBatchStore) MostRecent(ctx context.Context) (*domain.QuizBatch, error) {
	members, err := s.client.ZRevRange(ctx, s.key, 0, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read most recent batch: %w", err)
	}
	if len(members) == 0 {
		return nil, nil
	}

	var doc batchDocument
	if err := json.Unmarshal([]byte(members[0]), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode batch: %w", err)
	}

	var raw any
	if len(doc.Quizzes) > 0 {
		if err := json.Unmarshal(doc.Quizzes, &raw); err != nil {
			return nil, fmt.Errorf("failed to decode quizzes: %w", err)
		}
	}

	return &domain.QuizBatch{
		ID:        doc.ID,
		CreatedAt: doc.CreatedAt,
		Quizzes:   models.NormalizeQuizzes(raw),
	}, nil
}
