package domain

import "context"

// QuizBatch is the set of quizzes produced by one generation request.
// It is written once and only ever read back by recency.
type QuizBatch struct {
	ID        string `json:"id,omitempty"`
	CreatedAt int64  `json:"createdAt"` // epoch millis
	Quizzes   []Quiz `json:"quizzes"`
}

// QuizStore persists quiz batches.
type QuizStore interface {
	// Append persists a new batch.
	Append(ctx context.Context, batch QuizBatch) error

	// MostRecent returns the batch with the greatest CreatedAt, or nil
	// when nothing has been stored yet.
	MostRecent(ctx context.Context) (*QuizBatch, error)
}
