// Package bootstrap wires config into the quiz generation pipeline shared
// by the API server and the batch command.
package bootstrap

import (
	"context"
	"time"

	"law-quiz/internal/adapter"
	"law-quiz/internal/adapter/embedding"
	"law-quiz/internal/adapter/lawapi"
	"law-quiz/internal/adapter/llm"
	"law-quiz/internal/adapter/quizgen"
	"law-quiz/internal/cache"
	"law-quiz/internal/config"
	"law-quiz/internal/domain"
	"law-quiz/internal/logger"
	"law-quiz/internal/metrics"
	"law-quiz/internal/repository"
	"law-quiz/internal/retry"
	"law-quiz/internal/service"
	"law-quiz/internal/util"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultArticleTTL = 24 * time.Hour

// Pipeline holds everything a process needs to serve or generate quizzes.
type Pipeline struct {
	Service service.LawQuizService
	Store   *repository.StoreHandle
	Metrics *metrics.Metrics

	redisClient *redis.Client
}

// Build never fails: missing optional pieces (redis, embeddings, the LLM)
// are logged and left out, and a broken store shows up as an unavailable
// handle.
func Build(ctx context.Context, cfg *config.Config) *Pipeline {
	l := logger.Get()
	m := metrics.New()
	p := &Pipeline{Metrics: m}

	var cacheAdapter domain.Cache
	var redisCmd redis.Cmdable
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			l.Warn("Redis unavailable, running without cache", zap.Error(err))
		} else {
			l.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
			p.redisClient = redisClient
			redisCmd = redisClient
			cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		}
	} else {
		l.Warn("Redis cache is not configured. Running without cache.")
	}

	p.Store = repository.Open(ctx, cfg, redisCmd)

	var source domain.StatuteSource = lawapi.NewClient(cfg.LawAPI, nil)
	if cacheAdapter != nil {
		source = lawapi.NewCachedSource(source, cacheAdapter, cfg.ParseTTLStringOrDefault(cfg.CacheTTLs.Article, defaultArticleTTL))
	}
	if cfg.LawAPI.OC == "" {
		l.Warn("LAW_GOV_OC is not set; statute lookups will return no articles")
	}

	model, err := llm.NewModel(ctx, cfg.LLM)
	if err != nil {
		l.Error("Failed to initialize LLM; every generation attempt will fail",
			zap.String("provider", cfg.LLM.Provider),
			zap.Error(err),
		)
		model = nil
	} else {
		l.Info("LLM initialized", zap.String("provider", cfg.LLM.Provider), zap.String("model", cfg.LLM.Model))
	}
	generator := quizgen.NewLLMQuizGenerator(model, cfg.LLM, cfg.Generation.TimerSeconds)

	embedder, err := embedding.NewService(cfg, cacheAdapter)
	if err != nil {
		l.Warn("Embedding service unavailable, near-duplicate filtering disabled", zap.Error(err))
		embedder = nil
	}

	attempter := service.NewQuizAttempter(
		source,
		service.NewArticleSampler(util.DefaultRandom()),
		generator,
		retry.Policy{MaxAttempts: cfg.Generation.MaxAttempts, Delay: cfg.Generation.RetryDelay},
		m,
		l,
	)
	assembler := service.NewBatchAssembler(attempter, l,
		service.WithConcurrency(cfg.Generation.Concurrency),
		service.WithDeduplicator(service.NewDeduplicator(embedder, cfg.Embedding.SimilarityThreshold, l)),
		service.WithMetrics(m),
	)

	store, _ := p.Store.Store()
	p.Service = service.NewLawQuizService(store, assembler, cfg.Generation.SlotCount, nil, l)
	return p
}

// Close releases the store and redis connections.
func (p *Pipeline) Close() {
	l := logger.Get()
	if err := p.Store.Close(); err != nil {
		l.Warn("Failed to close quiz store", zap.Error(err))
	}
	if p.redisClient != nil {
		if err := p.redisClient.Close(); err != nil {
			l.Warn("Failed to close redis client", zap.Error(err))
		}
	}
}
