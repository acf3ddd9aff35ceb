package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"law-quiz/internal/config"
	"law-quiz/internal/domain"
	"law-quiz/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

const DefaultTimerSeconds = 15

var errModelNotConfigured = errors.New("llm model is not configured")

// LLMQuizGenerator implements domain.QuizGenerator with a langchaingo model.
type LLMQuizGenerator struct {
	model        llms.Model
	temperature  float64
	jsonMode     bool
	timeout      time.Duration
	timerSeconds int
}

// NewLLMQuizGenerator creates a generator. A nil model is accepted; every
// Generate call then fails with an LLM service error.
func NewLLMQuizGenerator(model llms.Model, cfg config.LLMConfig, timerSeconds int) *LLMQuizGenerator {
	if timerSeconds <= 0 {
		timerSeconds = DefaultTimerSeconds
	}
	return &LLMQuizGenerator{
		model:        model,
		temperature:  cfg.Temperature,
		jsonMode:     cfg.JSONMode,
		timeout:      cfg.Timeout,
		timerSeconds: timerSeconds,
	}
}

// llmQuizResponse mirrors the JSON the prompt asks for. The id is ignored;
// quiz ids are assigned when the batch is assembled.
type llmQuizResponse struct {
	ID          json.RawMessage     `json:"id"`
	Category    string              `json:"category"`
	Question    string              `json:"question"`
	Options     []domain.QuizOption `json:"options"`
	Answer      string              `json:"answer"`
	Explanation string              `json:"explanation"`
	TimerSec    int                 `json:"timer_sec"`
}

// Generate implements domain.QuizGenerator.
func (g *LLMQuizGenerator) Generate(ctx context.Context, article domain.Article) (*domain.Quiz, error) {
	l := logger.Get().With(zap.String("lawName", article.StatuteName), zap.String("articleNum", article.Number))

	if strings.TrimSpace(article.StatuteName) == "" || strings.TrimSpace(article.Number) == "" {
		return nil, domain.NewInvalidInputError("article must carry a statute name and an article number")
	}
	if g.model == nil {
		return nil, domain.NewLLMServiceError(errModelNotConfigured)
	}

	prompt := BuildPrompt(article, g.timerSeconds)

	raw, err := g.callLLM(ctx, prompt)
	if err != nil {
		l.Error("LLM call failed during quiz generation", zap.Error(err))
		return nil, domain.NewLLMServiceError(err)
	}
	l.Debug("Raw LLM response received", zap.String("raw_response", raw))

	cleaned := StripCodeFence(raw)
	if cleaned == "" {
		return nil, domain.NewGenerationFailedError("model returned an empty response", nil)
	}

	var resp llmQuizResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		l.Warn("Failed to unmarshal quiz JSON from LLM response", zap.Error(err), zap.String("cleaned_response", cleaned))
		return nil, domain.NewGenerationFailedError("model response is not a quiz object", err)
	}

	quiz := &domain.Quiz{
		Category:     strings.TrimSpace(resp.Category),
		Question:     strings.TrimSpace(resp.Question),
		Options:      trimOptions(resp.Options),
		Answer:       strings.TrimSpace(resp.Answer),
		Explanation:  resp.Explanation,
		TimerSeconds: resp.TimerSec,
		Article: &domain.Article{
			Number:      article.Number,
			Content:     article.Content,
			StatuteName: article.StatuteName,
		},
	}
	if quiz.TimerSeconds <= 0 {
		quiz.TimerSeconds = g.timerSeconds
	}
	if quiz.Category == "" {
		quiz.Category = article.StatuteName
	}

	if err := quiz.Validate(); err != nil {
		l.Warn("Generated quiz failed validation", zap.Error(err))
		return nil, domain.NewInvalidQuizError(err)
	}

	return quiz, nil
}

func trimOptions(options []domain.QuizOption) []domain.QuizOption {
	out := make([]domain.QuizOption, len(options))
	for i, opt := range options {
		out[i] = domain.QuizOption{Text: strings.TrimSpace(opt.Text), IsCorrect: opt.IsCorrect}
	}
	return out
}

func (g *LLMQuizGenerator) callLLM(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	opts := []llms.CallOption{llms.WithTemperature(g.temperature)}
	if g.jsonMode {
		opts = append(opts, llms.WithJSONMode())
	}

	response, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt, opts...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("LLM request timed out: %w", err)
		}
		return "", fmt.Errorf("LLM call failed: %w", err)
	}
	return response, nil
}

var _ domain.QuizGenerator = (*LLMQuizGenerator)(nil)
