package models

import (
	"encoding/json"
	"sort"
	"strconv"

	"law-quiz/internal/domain"
	"law-quiz/internal/logger"

	"go.uber.org/zap"
)

// NormalizeQuizzes reads the quizzes field of a stored batch. Older batches
// were written as keyed maps instead of arrays; their values are ordered
// with integer keys first (ascending) and then the remaining keys
// lexicographically. Entries that are not objects are skipped.
func NormalizeQuizzes(raw any) []domain.Quiz {
	quizzes := []domain.Quiz{}

	var entries []any
	switch v := raw.(type) {
	case nil:
		return quizzes
	case []any:
		entries = v
	case []map[string]any:
		for _, m := range v {
			entries = append(entries, m)
		}
	case map[string]any:
		entries = orderedValues(v)
	default:
		logger.Get().Warn("Stored quizzes have an unexpected shape", zap.String("type", typeName(raw)))
		return quizzes
	}

	for i, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok {
			logger.Get().Warn("Skipping stored quiz that is not an object",
				zap.Int("index", i),
				zap.String("type", typeName(entry)),
			)
			continue
		}

		quiz, err := decodeQuiz(obj)
		if err != nil {
			logger.Get().Warn("Skipping undecodable stored quiz", zap.Int("index", i), zap.Error(err))
			continue
		}
		quizzes = append(quizzes, quiz)
	}
	return quizzes
}

func decodeQuiz(obj map[string]any) (domain.Quiz, error) {
	var quiz domain.Quiz
	b, err := json.Marshal(obj)
	if err != nil {
		return quiz, err
	}
	err = json.Unmarshal(b, &quiz)
	return quiz, err
}

func orderedValues(m map[string]any) []any {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		ni, iIdx := arrayIndex(keys[i])
		nj, jIdx := arrayIndex(keys[j])
		switch {
		case iIdx && jIdx:
			return ni < nj
		case iIdx != jIdx:
			return iIdx
		default:
			return keys[i] < keys[j]
		}
	})

	values := make([]any, 0, len(keys))
	for _, k := range keys {
		values = append(values, m[k])
	}
	return values
}

// arrayIndex reports whether k is a canonical non-negative integer key.
func arrayIndex(k string) (uint64, bool) {
	n, err := strconv.ParseUint(k, 10, 32)
	if err != nil || strconv.FormatUint(n, 10) != k {
		return 0, false
	}
	return n, true
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case float64, int64, int:
		return "number"
	case bool:
		return "bool"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "other"
	}
}
