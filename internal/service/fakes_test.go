package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"law-quiz/internal/domain"
)

// fakeSource returns one article per statute, named after the statute.
type fakeSource struct {
	names map[string]string
	empty bool
	calls atomic.Int32
}

func (s *fakeSource) FetchArticles(ctx context.Context, statuteID string) []domain.Article {
	s.calls.Add(1)
	if s.empty {
		return nil
	}
	name := s.names[statuteID]
	if name == "" {
		name = statuteID
	}
	return []domain.Article{{Number: "1", Content: "제1조 " + name, StatuteName: name}}
}

// fakeGenerator delegates to fn with a 1-based call counter.
type fakeGenerator struct {
	mu    sync.Mutex
	calls int
	fn    func(call int, article domain.Article) (*domain.Quiz, error)
}

func (g *fakeGenerator) Generate(ctx context.Context, article domain.Article) (*domain.Quiz, error) {
	g.mu.Lock()
	g.calls++
	call := g.calls
	g.mu.Unlock()
	return g.fn(call, article)
}

func (g *fakeGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

var errGeneration = errors.New("model returned prose")

func quizFor(question, category string) *domain.Quiz {
	return &domain.Quiz{
		Category: category,
		Question: question,
		Options: []domain.QuizOption{
			{Text: "가", IsCorrect: true},
			{Text: "나"},
			{Text: "다"},
			{Text: "라"},
		},
		Answer:       "가",
		Explanation:  "해설",
		TimerSeconds: 15,
	}
}

func alwaysSucceed(call int, article domain.Article) (*domain.Quiz, error) {
	return quizFor(article.StatuteName+" 문제", article.StatuteName), nil
}

func alwaysFail(call int, article domain.Article) (*domain.Quiz, error) {
	return nil, errGeneration
}

// sequenceRandom returns 0, 1, 2, ... modulo n.
type sequenceRandom struct {
	mu   sync.Mutex
	next int
}

func (r *sequenceRandom) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.next % n
	r.next++
	return v
}

// fakeEmbedder maps questions to fixed vectors.
type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (e *fakeEmbedder) Generate(ctx context.Context, text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.vectors[text], nil
}

type fakeStore struct {
	appended  []domain.QuizBatch
	latest    *domain.QuizBatch
	appendErr error
	readErr   error
}

func (s *fakeStore) Append(ctx context.Context, batch domain.QuizBatch) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.appended = append(s.appended, batch)
	return nil
}

func (s *fakeStore) MostRecent(ctx context.Context) (*domain.QuizBatch, error) {
	return s.latest, s.readErr
}

type fakeBuilder struct {
	quizzes []domain.Quiz
	err     error
	slots   int
}

func (b *fakeBuilder) BuildBatch(ctx context.Context, slotCount int) ([]domain.Quiz, error) {
	b.slots = slotCount
	return b.quizzes, b.err
}
