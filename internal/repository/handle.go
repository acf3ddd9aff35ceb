package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"law-quiz/internal/config"
	"law-quiz/internal/database"
	"law-quiz/internal/domain"
	"law-quiz/internal/logger"

	"cloud.google.com/go/firestore"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// StoreHandle is either a ready store or the reason none could be opened.
type StoreHandle struct {
	store  domain.QuizStore
	reason string
}

func Ready(store domain.QuizStore) *StoreHandle {
	return &StoreHandle{store: store}
}

func Unavailable(reason string) *StoreHandle {
	return &StoreHandle{reason: reason}
}

// Store returns the store and whether it is usable.
func (h *StoreHandle) Store() (domain.QuizStore, bool) {
	if h == nil || h.store == nil {
		return nil, false
	}
	return h.store, true
}

// Reason explains why the handle is unavailable.
func (h *StoreHandle) Reason() string {
	if h == nil {
		return "store not initialized"
	}
	return h.reason
}

// Close releases the underlying client if it holds one.
func (h *StoreHandle) Close() error {
	if h == nil || h.store == nil {
		return nil
	}
	if c, ok := h.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Open builds the store selected by cfg.Store.Driver. Failures are logged
// and returned as an unavailable handle.
func Open(ctx context.Context, cfg *config.Config, redisClient redis.Cmdable) *StoreHandle {
	store, err := openStore(ctx, cfg, redisClient)
	if err != nil {
		logger.Get().Error("Failed to initialize quiz store",
			zap.String("driver", cfg.Store.Driver),
			zap.Error(err),
		)
		return Unavailable(err.Error())
	}

	logger.Get().Info("Quiz store initialized",
		zap.String("driver", cfg.Store.Driver),
		zap.String("collection", cfg.Store.Collection),
	)
	return Ready(store)
}

func openStore(ctx context.Context, cfg *config.Config, redisClient redis.Cmdable) (domain.QuizStore, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverFirestore, "":
		return openFirestore(ctx, cfg.Store)
	case config.StoreDriverRedis:
		if redisClient == nil {
			return nil, errors.New("redis store selected but redis is not configured")
		}
		return NewRedisBatchStore(redisClient, cfg.Store.Collection), nil
	case config.StoreDriverOracle, config.StoreDriverPostgres:
		db, err := database.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewSQLBatchStore(db), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

type serviceAccount struct {
	ProjectID string `json:"project_id"`
}

// parseServiceAccount checks the credential JSON and returns the project
// id to use.
func parseServiceAccount(cfg config.StoreConfig) ([]byte, string, error) {
	raw := strings.TrimSpace(cfg.FirestoreCredential)
	if raw == "" {
		return nil, "", errors.New("firestore service account key is not set")
	}

	var sa serviceAccount
	if err := json.Unmarshal([]byte(raw), &sa); err != nil {
		return nil, "", fmt.Errorf("firestore service account key is malformed: %w", err)
	}

	projectID := cfg.FirestoreProjectID
	if projectID == "" {
		projectID = sa.ProjectID
	}
	if projectID == "" {
		return nil, "", errors.New("firestore project id is not set")
	}
	return []byte(raw), projectID, nil
}

func openFirestore(ctx context.Context, cfg config.StoreConfig) (domain.QuizStore, error) {
	credJSON, projectID, err := parseServiceAccount(cfg)
	if err != nil {
		return nil, err
	}

	client, err := firestore.NewClient(ctx, projectID, option.WithCredentialsJSON(credJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return NewFirestoreBatchStore(client, cfg.Collection), nil
}
