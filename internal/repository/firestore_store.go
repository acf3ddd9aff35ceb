package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"law-quiz/internal/domain"
	"law-quiz/internal/repository/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

const (
	fieldCreatedAt = "createdAt"
	fieldQuizzes   = "quizzes"
)

// FirestoreBatchStore keeps one document per batch in a collection.
type FirestoreBatchStore struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreBatchStore(client *firestore.Client, collection string) *FirestoreBatchStore {
	return &FirestoreBatchStore{client: client, collection: collection}
}

// Append implements domain.QuizStore
func (s *FirestoreBatchStore) Append(ctx context.Context, batch domain.QuizBatch) error {
	data, err := batchToDocument(batch)
	if err != nil {
		return err
	}

	col := s.client.Collection(s.collection)
	if batch.ID != "" {
		_, err = col.Doc(batch.ID).Set(ctx, data)
	} else {
		_, _, err = col.Add(ctx, data)
	}
	if err != nil {
		return fmt.Errorf("failed to add batch document: %w", err)
	}
	return nil
}

// MostRecent implements domain.QuizStore
func (s *FirestoreBatchStore) MostRecent(ctx context.Context) (*domain.QuizBatch, error) {
	iter := s.client.Collection(s.collection).
		OrderBy(fieldCreatedAt, firestore.Desc).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query most recent batch: %w", err)
	}

	batch := batchFromDocument(doc.Ref.ID, doc.Data())
	return &batch, nil
}

func (s *FirestoreBatchStore) Close() error {
	return s.client.Close()
}

// batchToDocument converts quizzes to plain maps so the document mirrors
// their JSON field names.
func batchToDocument(batch domain.QuizBatch) (map[string]any, error) {
	quizzes := batch.Quizzes
	if quizzes == nil {
		quizzes = []domain.Quiz{}
	}

	b, err := json.Marshal(quizzes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode quizzes: %w", err)
	}
	var plain []any
	if err := json.Unmarshal(b, &plain); err != nil {
		return nil, fmt.Errorf("failed to encode quizzes: %w", err)
	}

	return map[string]any{
		fieldCreatedAt: batch.CreatedAt,
		fieldQuizzes:   plain,
	}, nil
}

func batchFromDocument(id string, data map[string]any) domain.QuizBatch {
	return domain.QuizBatch{
		ID:        id,
		CreatedAt: millisFromValue(data[fieldCreatedAt]),
		Quizzes:   models.NormalizeQuizzes(data[fieldQuizzes]),
	}
}

// millisFromValue reads createdAt, which older documents may hold as a
// double or a timestamp.
func millisFromValue(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case time.Time:
		return t.UnixMilli()
	default:
		return 0
	}
}
