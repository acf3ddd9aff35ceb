package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ENV", "test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 20*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "https://www.law.go.kr/DRF", cfg.LawAPI.BaseURL)
	assert.Equal(t, "eflaw", cfg.LawAPI.Target)
	assert.Equal(t, "googleai", cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.True(t, cfg.LLM.JSONMode)
	assert.Equal(t, 5, cfg.Generation.SlotCount)
	assert.Equal(t, 3, cfg.Generation.MaxAttempts)
	assert.Equal(t, time.Duration(0), cfg.Generation.RetryDelay)
	assert.Equal(t, 1, cfg.Generation.Concurrency)
	assert.Equal(t, 15, cfg.Generation.TimerSeconds)
	assert.Equal(t, StoreDriverFirestore, cfg.Store.Driver)
	assert.Equal(t, "law_quizzes", cfg.Store.Collection)
	assert.Equal(t, "none", cfg.Embedding.Source)
	assert.Equal(t, 24*time.Hour, cfg.ParseTTLStringOrDefault(cfg.CacheTTLs.Article, time.Minute))
}

func TestLoadConfig_LegacyEnvironmentNames(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("LAW_GOV_OC", " requester ")
	t.Setenv("LAW_QUIZ_GEMINI_KEY", "gemini-key")
	t.Setenv("FIREBASE_SERVICE_ACCOUNT_KEY", `{"project_id":"p"}`)
	t.Setenv("STORE_DRIVER", "Redis")
	t.Setenv("GENERATION_CONCURRENCY", "3")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "requester", cfg.LawAPI.OC)
	assert.Equal(t, "gemini-key", cfg.LLM.APIKey)
	assert.Equal(t, `{"project_id":"p"}`, cfg.Store.FirestoreCredential)
	assert.Equal(t, StoreDriverRedis, cfg.Store.Driver)
	assert.Equal(t, 3, cfg.Generation.Concurrency)
}

func TestParseTTLStringOrDefault(t *testing.T) {
	cfg := &Config{}
	def := time.Hour

	assert.Equal(t, def, cfg.ParseTTLStringOrDefault("", def))
	assert.Equal(t, def, cfg.ParseTTLStringOrDefault("soon", def))
	assert.Equal(t, def, cfg.ParseTTLStringOrDefault("-5m", def))
	assert.Equal(t, 30*time.Minute, cfg.ParseTTLStringOrDefault("30m", def))
}

func TestGetDSN(t *testing.T) {
	oracle := &Config{
		Store: StoreConfig{Driver: StoreDriverOracle},
		DB:    DBConfig{Host: "db", User: "u", Password: "p", DBName: "XEPDB1"},
	}
	assert.Equal(t, "oracle://u:p@db:1521/XEPDB1", oracle.GetDSN())

	postgres := &Config{
		Store: StoreConfig{Driver: StoreDriverPostgres},
		DB:    DBConfig{Host: "pg", User: "lawquiz", Password: "p@ss", DBName: "lawquiz"},
	}
	assert.Equal(t, "postgres://lawquiz:p%40ss@pg:5432/lawquiz?sslmode=disable", postgres.GetDSN())
}
