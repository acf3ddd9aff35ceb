package domain

import "fmt"

// RequiredOptionCount is the number of choices every quiz carries.
const RequiredOptionCount = 4

// ValidationError represents a validation error
type ValidationError struct {
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

func NewValidationError(message string) error {
	return &ValidationError{message: message}
}

// QuizOption is one choice of a multiple-choice quiz.
type QuizOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Quiz is a four-option multiple-choice question generated from one article.
type Quiz struct {
	ID           string       `json:"id"`
	Category     string       `json:"category"`
	Question     string       `json:"question"`
	Options      []QuizOption `json:"options"`
	Answer       string       `json:"answer"`
	Explanation  string       `json:"explanation"`
	TimerSeconds int          `json:"timer_sec"`
	// Article is the provision the quiz was generated from.
	Article *Article `json:"article,omitempty"`
}

// Validate checks the option invariant: exactly four options, exactly one
// marked correct, and that option's text equal to Answer.
func (q *Quiz) Validate() error {
	if q == nil {
		return NewValidationError("quiz is nil")
	}
	if len(q.Options) != RequiredOptionCount {
		return NewValidationError(fmt.Sprintf("quiz must have %d options, got %d", RequiredOptionCount, len(q.Options)))
	}

	correct := 0
	for _, opt := range q.Options {
		if opt.IsCorrect {
			correct++
		}
	}
	switch {
	case correct == 0:
		return NewValidationError("quiz has no correct option")
	case correct > 1:
		return NewValidationError("quiz has more than one correct option")
	}

	if opt, _ := q.CorrectOption(); opt.Text != q.Answer {
		return NewValidationError(fmt.Sprintf("answer %q does not match correct option %q", q.Answer, opt.Text))
	}
	return nil
}

// CorrectOption returns the option marked correct, if any.
func (q *Quiz) CorrectOption() (QuizOption, bool) {
	for _, opt := range q.Options {
		if opt.IsCorrect {
			return opt, true
		}
	}
	return QuizOption{}, false
}
