package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"law-quiz/internal/domain"
)

// QuizList stores a quiz slice as a JSON text column.
type QuizList []domain.Quiz

// Value implements the driver.Valuer interface
func (l QuizList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal([]domain.Quiz(l))
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (l *QuizList) Scan(value interface{}) error {
	if value == nil {
		*l = QuizList{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("QuizList Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*l = QuizList{}
		return nil
	}

	var raw any
	if err := json.Unmarshal(bytesToParse, &raw); err != nil {
		return fmt.Errorf("QuizList Scan: %w", err)
	}

	*l = QuizList(NormalizeQuizzes(raw))
	return nil
}

// QuizBatch is a row of law_quiz_batches.
type QuizBatch struct {
	ID        string   `db:"id"`
	CreatedAt int64    `db:"created_at"`
	Quizzes   QuizList `db:"quizzes"`
}

func (QuizBatch) TableName() string {
	return "law_quiz_batches"
}
