package domain

import "context"

// StatuteSource fetches the articles of a statute from the statute API.
// An empty result is its only failure signal.
type StatuteSource interface {
	FetchArticles(ctx context.Context, statuteID string) []Article
}

// QuizGenerator turns one article into one quiz. Any failure (bad input,
// model error, unparseable or invalid output) yields a nil quiz and an error.
type QuizGenerator interface {
	Generate(ctx context.Context, article Article) (*Quiz, error)
}
