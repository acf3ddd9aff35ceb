package service

import (
	"law-quiz/internal/domain"
	"law-quiz/internal/util"
)

// ArticleSampler draws one article uniformly at random.
type ArticleSampler struct {
	rng util.RandomSource
}

func NewArticleSampler(rng util.RandomSource) *ArticleSampler {
	if rng == nil {
		rng = util.DefaultRandom()
	}
	return &ArticleSampler{rng: rng}
}

// PickRandom returns false when articles is empty.
func (s *ArticleSampler) PickRandom(articles []domain.Article) (domain.Article, bool) {
	if len(articles) == 0 {
		return domain.Article{}, false
	}
	return articles[s.rng.IntN(len(articles))], true
}
