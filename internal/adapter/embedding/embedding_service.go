package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"law-quiz/internal/adapter"
	"law-quiz/internal/cache"
	"law-quiz/internal/domain"
	"law-quiz/internal/logger"

	"github.com/tmc/langchaingo/embeddings"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CachedEmbeddingService implements domain.EmbeddingService on top of a
// langchaingo embedder. Vectors are cached by text hash when a cache is set.
type CachedEmbeddingService struct {
	embedder embeddings.Embedder
	provider string
	cache    domain.Cache
	ttl      time.Duration
	sfGroup  singleflight.Group
}

func newCachedEmbeddingService(embedder embeddings.Embedder, provider string, c domain.Cache, ttl time.Duration) *CachedEmbeddingService {
	return &CachedEmbeddingService{
		embedder: embedder,
		provider: provider,
		cache:    c,
		ttl:      ttl,
	}
}

func hashString(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Generate creates an embedding for the given text.
func (s *CachedEmbeddingService) Generate(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("input text cannot be empty for embedding")
	}

	cacheKey := cache.GenerateCacheKey("embedding", s.provider, hashString(text))

	if s.cache != nil {
		cached, err := adapter.GetJSON[[]float32](ctx, s.cache, cacheKey)
		if err == nil && len(cached) > 0 {
			return cached, nil
		}
		if err != nil && !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Embedding cache read failed", zap.String("cacheKey", cacheKey), zap.Error(err))
		}
	}

	res, err, _ := s.sfGroup.Do(cacheKey, func() (interface{}, error) {
		raw, err := s.embedder.EmbedQuery(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("failed to generate embedding using %s: %w", s.provider, err)
		}
		if len(raw) == 0 {
			return nil, fmt.Errorf("received empty embedding from %s", s.provider)
		}
		vector := make([]float32, len(raw))
		for i, v := range raw {
			vector[i] = float32(v)
		}

		if s.cache != nil {
			if err := adapter.SetJSON(ctx, s.cache, cacheKey, vector, s.ttl); err != nil {
				logger.Get().Warn("Embedding cache write failed", zap.String("cacheKey", cacheKey), zap.Error(err))
			}
		}
		return vector, nil
	})
	if err != nil {
		return nil, err
	}

	vector, ok := res.([]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight.Do for embedding: %T", res)
	}
	return vector, nil
}

var _ domain.EmbeddingService = (*CachedEmbeddingService)(nil)
