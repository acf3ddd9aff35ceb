package service

import (
	"context"
	"sync"

	"law-quiz/internal/domain"
	"law-quiz/internal/util"

	"go.uber.org/zap"
)

// Deduplicator rejects questions whose embedding is too close to one
// already accepted in the same batch.
type Deduplicator struct {
	embedder  domain.EmbeddingService
	threshold float64
	logger    *zap.Logger
}

// NewDeduplicator returns nil when embedder is nil, which disables the check.
func NewDeduplicator(embedder domain.EmbeddingService, threshold float64, logger *zap.Logger) *Deduplicator {
	if embedder == nil {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Deduplicator{embedder: embedder, threshold: threshold, logger: logger}
}

// DedupSession tracks the questions accepted in one batch.
type DedupSession struct {
	d        *Deduplicator
	mu       sync.Mutex
	accepted [][]float32
}

func (d *Deduplicator) NewSession() *DedupSession {
	if d == nil {
		return nil
	}
	return &DedupSession{d: d}
}

// CheckAndAdd returns a DUPLICATE_QUIZ error when quiz is too similar to an
// accepted question; otherwise it records quiz as accepted. Embedding
// failures are logged and the quiz is treated as unique.
func (s *DedupSession) CheckAndAdd(ctx context.Context, quiz *domain.Quiz) error {
	vector, err := s.d.embedder.Generate(ctx, quiz.Question)
	if err != nil {
		s.d.logger.Warn("Failed to embed question, skipping similarity check",
			zap.String("question", quiz.Question), zap.Error(err))
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, other := range s.accepted {
		similarity, err := util.CosineSimilarity(vector, other)
		if err != nil {
			s.d.logger.Warn("Failed to calculate cosine similarity", zap.Error(err))
			continue
		}
		if similarity >= s.d.threshold {
			s.d.logger.Info("Generated quiz is too similar to an accepted one",
				zap.String("question", quiz.Question),
				zap.Float64("similarity", similarity),
				zap.Float64("threshold", s.d.threshold),
			)
			return domain.NewDuplicateQuizError(similarity)
		}
	}

	s.accepted = append(s.accepted, vector)
	return nil
}
