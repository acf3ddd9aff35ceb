package service

import (
	"context"
	"errors"
	"time"

	"law-quiz/internal/domain"

	"go.uber.org/zap"
)

// LawQuizService serves the most recent batch and generates new ones.
type LawQuizService interface {
	Latest(ctx context.Context) ([]domain.Quiz, error)
	GenerateNew(ctx context.Context) ([]domain.Quiz, error)
}

// BatchBuilder is the part of BatchAssembler the service depends on.
type BatchBuilder interface {
	BuildBatch(ctx context.Context, slotCount int) ([]domain.Quiz, error)
}

type lawQuizService struct {
	store     domain.QuizStore
	builder   BatchBuilder
	slotCount int
	now       func() int64
	logger    *zap.Logger
}

// NewLawQuizService creates the service. store may be nil when the
// document store could not be initialized.
func NewLawQuizService(store domain.QuizStore, builder BatchBuilder, slotCount int, now func() int64, logger *zap.Logger) LawQuizService {
	if slotCount <= 0 {
		slotCount = DefaultSlotCount
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = func() int64 { return time.Now().UnixMilli() }
	}
	return &lawQuizService{
		store:     store,
		builder:   builder,
		slotCount: slotCount,
		now:       now,
		logger:    logger,
	}
}

func (s *lawQuizService) Latest(ctx context.Context) ([]domain.Quiz, error) {
	if s.store == nil {
		return nil, domain.NewStoreUnavailableError("quiz store is not configured")
	}

	batch, err := s.store.MostRecent(ctx)
	if err != nil {
		s.logger.Error("Failed to read latest quiz batch", zap.Error(err))
		return nil, domain.NewStoreError("failed to read latest quiz batch", err)
	}
	if batch == nil || batch.Quizzes == nil {
		return []domain.Quiz{}, nil
	}
	return batch.Quizzes, nil
}

func (s *lawQuizService) GenerateNew(ctx context.Context) ([]domain.Quiz, error) {
	if s.store == nil {
		return nil, domain.NewStoreUnavailableError("quiz store is not configured")
	}

	quizzes, err := s.builder.BuildBatch(ctx, s.slotCount)
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, domain.NewInternalError("failed to build quiz batch", err)
	}

	batch := domain.QuizBatch{CreatedAt: s.now(), Quizzes: quizzes}
	if err := s.store.Append(ctx, batch); err != nil {
		s.logger.Error("Failed to persist quiz batch", zap.Int("count", len(quizzes)), zap.Error(err))
		return nil, domain.NewStoreError("failed to persist quiz batch", err)
	}

	s.logger.Info("Persisted new quiz batch", zap.Int("count", len(quizzes)), zap.Int64("createdAt", batch.CreatedAt))
	return quizzes, nil
}
