package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"law-quiz/internal/domain"
	"law-quiz/internal/repository/models"
	"law-quiz/internal/util"

	"github.com/jmoiron/sqlx"
)

const (
	insertBatchQuery = `INSERT INTO law_quiz_batches (id, created_at, quizzes) VALUES (?, ?, ?)`

	mostRecentBatchQuery = `SELECT
		id "id",
		created_at "created_at",
		quizzes "quizzes"
	FROM law_quiz_batches
	ORDER BY created_at DESC
	FETCH FIRST 1 ROWS ONLY`
)

// SQLBatchStore implements domain.QuizStore on Oracle or Postgres.
type SQLBatchStore struct {
	db    *sqlx.DB
	newID func() string
}

// NewSQLBatchStore creates a store over an open connection. The driver
// name on db decides the placeholder style.
func NewSQLBatchStore(db *sqlx.DB) *SQLBatchStore {
	return &SQLBatchStore{db: db, newID: util.NewULID}
}

// Append implements domain.QuizStore
func (s *SQLBatchStore) Append(ctx context.Context, batch domain.QuizBatch) error {
	row := models.QuizBatch{
		ID:        batch.ID,
		CreatedAt: batch.CreatedAt,
		Quizzes:   models.QuizList(batch.Quizzes),
	}
	if row.ID == "" {
		row.ID = s.newID()
	}

	if _, err := s.db.ExecContext(ctx, s.db.Rebind(insertBatchQuery), row.ID, row.CreatedAt, row.Quizzes); err != nil {
		return fmt.Errorf("failed to insert batch: %w", err)
	}
	return nil
}

// MostRecent implements domain.QuizStore
func (s *SQLBatchStore) MostRecent(ctx context.Context) (*domain.QuizBatch, error) {
	var row models.QuizBatch
	if err := s.db.GetContext(ctx, &row, mostRecentBatchQuery); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get most recent batch: %w", err)
	}

	return &domain.QuizBatch{
		ID:        row.ID,
		CreatedAt: row.CreatedAt,
		Quizzes:   []domain.Quiz(row.Quizzes),
	}, nil
}

// Close releases the connection pool.
func (s *SQLBatchStore) Close() error {
	return s.db.Close()
}
