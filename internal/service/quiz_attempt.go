package service

import (
	"context"
	"errors"

	"law-quiz/internal/domain"
	"law-quiz/internal/metrics"
	"law-quiz/internal/retry"

	"go.uber.org/zap"
)

const DefaultMaxAttempts = 3

var (
	errNoArticles = errors.New("statute returned no articles")
	errNilQuiz    = errors.New("generator returned no quiz")
)

// QuizCheck can reject an otherwise valid quiz; a rejection counts as a
// failed attempt.
type QuizCheck func(ctx context.Context, quiz *domain.Quiz) error

// QuizAttempter produces one quiz for a statute under a bounded retry
// policy. Each attempt fetches the statute, samples an article and
// generates from it.
type QuizAttempter struct {
	source    domain.StatuteSource
	sampler   *ArticleSampler
	generator domain.QuizGenerator
	policy    retry.Policy
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewQuizAttempter(
	source domain.StatuteSource,
	sampler *ArticleSampler,
	generator domain.QuizGenerator,
	policy retry.Policy,
	m *metrics.Metrics,
	logger *zap.Logger,
) *QuizAttempter {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = DefaultMaxAttempts
	}
	if sampler == nil {
		sampler = NewArticleSampler(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizAttempter{
		source:    source,
		sampler:   sampler,
		generator: generator,
		policy:    policy,
		metrics:   m,
		logger:    logger,
	}
}

// Attempt returns the first successful quiz, or an error wrapping
// retry.ErrAttemptsExhausted once every attempt has failed.
func (a *QuizAttempter) Attempt(ctx context.Context, statute domain.Statute) (*domain.Quiz, error) {
	return a.AttemptWith(ctx, statute, nil)
}

// AttemptWith is Attempt with an extra acceptance check.
func (a *QuizAttempter) AttemptWith(ctx context.Context, statute domain.Statute, check QuizCheck) (*domain.Quiz, error) {
	op := func(ctx context.Context, attempt int) (*domain.Quiz, error) {
		articles := a.source.FetchArticles(ctx, statute.ID)
		article, ok := a.sampler.PickRandom(articles)
		if !ok {
			return nil, errNoArticles
		}

		quiz, err := a.generator.Generate(ctx, article)
		if err != nil {
			return nil, err
		}
		if quiz == nil {
			return nil, errNilQuiz
		}

		if check != nil {
			if err := check(ctx, quiz); err != nil {
				return nil, err
			}
		}

		a.metrics.ObserveAttempt(true)
		return quiz, nil
	}

	onFailure := func(attempt int, err error) {
		a.metrics.ObserveAttempt(false)
		a.logger.Warn("Quiz generation attempt failed",
			zap.String("statuteID", statute.ID),
			zap.String("lawName", statute.Name),
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", a.policy.MaxAttempts),
			zap.Error(err),
		)
	}

	return retry.Do(ctx, a.policy, op, onFailure)
}
