package service

import (
	"context"
	"fmt"
	"time"

	"law-quiz/internal/domain"
	"law-quiz/internal/metrics"
	"law-quiz/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultSlotCount = 5
	idSuffixSpace    = 10000
)

// BatchAssembler fills a fixed number of quiz slots, each from an
// independently drawn statute. Slots that exhaust their attempts are
// dropped.
type BatchAssembler struct {
	attempter   *QuizAttempter
	catalog     []domain.Statute
	dedup       *Deduplicator
	rng         util.RandomSource
	clock       func() time.Time
	concurrency int
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

type BatchOption func(*BatchAssembler)

func WithRandom(rng util.RandomSource) BatchOption {
	return func(b *BatchAssembler) { b.rng = rng }
}

func WithClock(clock func() time.Time) BatchOption {
	return func(b *BatchAssembler) { b.clock = clock }
}

// WithConcurrency sets how many slots are generated at once. 1 (the
// default) processes slots strictly in order.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchAssembler) { b.concurrency = n }
}

func WithDeduplicator(d *Deduplicator) BatchOption {
	return func(b *BatchAssembler) { b.dedup = d }
}

func WithCatalog(catalog []domain.Statute) BatchOption {
	return func(b *BatchAssembler) { b.catalog = catalog }
}

func WithMetrics(m *metrics.Metrics) BatchOption {
	return func(b *BatchAssembler) { b.metrics = m }
}

func NewBatchAssembler(attempter *QuizAttempter, logger *zap.Logger, opts ...BatchOption) *BatchAssembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &BatchAssembler{
		attempter:   attempter,
		catalog:     domain.StatuteCatalog(),
		rng:         util.DefaultRandom(),
		clock:       time.Now,
		concurrency: 1,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.concurrency < 1 {
		b.concurrency = 1
	}
	return b
}

// BuildBatch returns between 0 and slotCount quizzes in slot order. An
// empty result is reported as NO_QUIZZES_AVAILABLE.
func (b *BatchAssembler) BuildBatch(ctx context.Context, slotCount int) ([]domain.Quiz, error) {
	if slotCount <= 0 {
		return nil, domain.NewInvalidInputError("slot count must be positive")
	}
	if len(b.catalog) == 0 {
		return nil, domain.NewInternalError("statute catalog is empty", nil)
	}

	start := b.clock()
	batchTS := start.UnixMilli()
	b.logger.Info("Starting quiz batch generation",
		zap.Int("slotCount", slotCount),
		zap.Int("concurrency", b.concurrency),
		zap.Int64("batchTimestamp", batchTS),
	)

	var check QuizCheck
	if session := b.dedup.NewSession(); session != nil {
		check = session.CheckAndAdd
	}

	statutes := make([]domain.Statute, slotCount)
	for slot := range statutes {
		statutes[slot] = b.catalog[b.rng.IntN(len(b.catalog))]
	}

	results := make([]*domain.Quiz, slotCount)
	var g errgroup.Group
	g.SetLimit(b.concurrency)

	for slot, statute := range statutes {
		g.Go(func() error {
			quiz, err := b.attempter.AttemptWith(ctx, statute, check)
			if err != nil {
				b.metrics.ObserveSlot(false)
				b.logger.Warn("Skipping quiz slot after exhausting attempts",
					zap.Int("slot", slot),
					zap.String("statuteID", statute.ID),
					zap.String("lawName", statute.Name),
					zap.Error(err),
				)
				return nil
			}

			quiz.ID = fmt.Sprintf("%d-%d-%04d", batchTS, slot, b.rng.IntN(idSuffixSpace))
			results[slot] = quiz
			b.metrics.ObserveSlot(true)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	quizzes := make([]domain.Quiz, 0, slotCount)
	for _, q := range results {
		if q != nil {
			quizzes = append(quizzes, *q)
		}
	}

	b.metrics.ObserveBatch(b.clock().Sub(start))
	b.logger.Info("Finished quiz batch generation",
		zap.Int("generated", len(quizzes)),
		zap.Int("skipped", slotCount-len(quizzes)),
	)

	if len(quizzes) == 0 {
		return nil, domain.NewNoQuizzesAvailableError(slotCount)
	}
	return quizzes, nil
}
