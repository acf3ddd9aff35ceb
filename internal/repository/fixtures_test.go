package repository

import (
	"encoding/json"
	"testing"

	"law-quiz/internal/domain"

	"github.com/stretchr/testify/require"
)

const testCreatedAt int64 = 1750000000000

func sampleQuizzes() []domain.Quiz {
	return []domain.Quiz{{
		ID:       "1750000000000-0-0042",
		Category: "민법",
		Question: "민법상 성년 연령은?",
		Options: []domain.QuizOption{
			{Text: "19세", IsCorrect: true},
			{Text: "18세"},
			{Text: "20세"},
			{Text: "21세"},
		},
		Answer:       "19세",
		Explanation:  "민법 제4조",
		TimerSeconds: 15,
	}}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
