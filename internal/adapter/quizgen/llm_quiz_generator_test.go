package quizgen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"law-quiz/internal/config"
	"law-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel is a canned llms.Model.
type fakeModel struct {
	response   string
	err        error
	lastPrompt string
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if len(messages) > 0 && len(messages[0].Parts) > 0 {
		if text, ok := messages[0].Parts[0].(llms.TextContent); ok {
			f.lastPrompt = text.Text
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.response}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

var civilArticle = domain.Article{
	Number:      "5",
	Content:     "① 미성년자가 법률행위를 함에는 법정대리인의 동의를 얻어야 한다.",
	StatuteName: "민법",
}

const validQuizJSON = `{
  "id": 1,
  "category": "민법",
  "question": "미성년자가 법률행위를 할 때 원칙적으로 필요한 것은?",
  "options": [
    {"text": "법원의 허가", "is_correct": false},
    {"text": "법정대리인의 동의", "is_correct": true},
    {"text": "친족회의 결의", "is_correct": false},
    {"text": "공증인의 인증", "is_correct": false}
  ],
  "answer": "법정대리인의 동의",
  "explanation": "민법 제5조 제1항에 따른다.",
  "timer_sec": 20
}`

func newTestGenerator(model llms.Model) *LLMQuizGenerator {
	return NewLLMQuizGenerator(model, config.LLMConfig{Temperature: 0.4, JSONMode: true}, 15)
}

func TestLLMQuizGenerator_Generate_Success(t *testing.T) {
	model := &fakeModel{response: "```json\n" + validQuizJSON + "\n```"}
	gen := newTestGenerator(model)

	quiz, err := gen.Generate(context.Background(), civilArticle)
	require.NoError(t, err)
	require.NotNil(t, quiz)

	assert.Equal(t, "민법", quiz.Category)
	assert.Len(t, quiz.Options, 4)
	assert.Equal(t, "법정대리인의 동의", quiz.Answer)
	assert.Equal(t, 20, quiz.TimerSeconds)
	assert.Empty(t, quiz.ID, "ids are assigned by the batch assembler")
	require.NotNil(t, quiz.Article)
	assert.Equal(t, civilArticle, *quiz.Article)

	assert.Contains(t, model.lastPrompt, "민법")
	assert.Contains(t, model.lastPrompt, "제5조")
	assert.Contains(t, model.lastPrompt, "법정대리인의 동의를 얻어야 한다")
}

func TestLLMQuizGenerator_Generate_Defaults(t *testing.T) {
	resp := strings.Replace(validQuizJSON, `"timer_sec": 20`, `"timer_sec": 0`, 1)
	resp = strings.Replace(resp, `"category": "민법"`, `"category": ""`, 1)
	resp = strings.Replace(resp, `"id": 1`, `"id": "q-1"`, 1)

	quiz, err := newTestGenerator(&fakeModel{response: resp}).Generate(context.Background(), civilArticle)
	require.NoError(t, err)
	assert.Equal(t, 15, quiz.TimerSeconds)
	assert.Equal(t, "민법", quiz.Category)
}

func TestLLMQuizGenerator_Generate_TrimsAnswerAndOptions(t *testing.T) {
	resp := strings.Replace(validQuizJSON, `"answer": "법정대리인의 동의"`, `"answer": "법정대리인의 동의 "`, 1)
	resp = strings.Replace(resp, `{"text": "법정대리인의 동의", "is_correct": true}`, `{"text": "  법정대리인의 동의", "is_correct": true}`, 1)

	quiz, err := newTestGenerator(&fakeModel{response: resp}).Generate(context.Background(), civilArticle)
	require.NoError(t, err)

	correct, ok := quiz.CorrectOption()
	require.True(t, ok)
	assert.Equal(t, "법정대리인의 동의", quiz.Answer)
	assert.Equal(t, quiz.Answer, correct.Text)
	assert.NoError(t, quiz.Validate())
}

func TestLLMQuizGenerator_Generate_Failures(t *testing.T) {
	threeOptions := strings.Replace(validQuizJSON, `{"text": "공증인의 인증", "is_correct": false}`, ``, 1)
	threeOptions = strings.Replace(threeOptions, `{"text": "친족회의 결의", "is_correct": false},`, `{"text": "친족회의 결의", "is_correct": false}`, 1)

	tests := []struct {
		name     string
		model    llms.Model
		article  domain.Article
		wantCode domain.ErrorCode
	}{
		{"model error", &fakeModel{err: errors.New("quota exceeded")}, civilArticle, domain.ErrLLMServiceError},
		{"nil model", nil, civilArticle, domain.ErrLLMServiceError},
		{"empty response", &fakeModel{response: "   "}, civilArticle, domain.ErrGenerationFailed},
		{"prose response", &fakeModel{response: "죄송하지만 만들 수 없습니다."}, civilArticle, domain.ErrGenerationFailed},
		{"prose-wrapped json", &fakeModel{response: "다음은 요청하신 퀴즈입니다:\n" + validQuizJSON + "\n도움이 되었길 바랍니다."}, civilArticle, domain.ErrGenerationFailed},
		{"truncated json object", &fakeModel{response: `{"question": "x",`}, civilArticle, domain.ErrGenerationFailed},
		{"three options", &fakeModel{response: threeOptions}, civilArticle, domain.ErrInvalidQuiz},
		{"answer mismatch", &fakeModel{response: strings.Replace(validQuizJSON, `"answer": "법정대리인의 동의"`, `"answer": "법원의 허가"`, 1)}, civilArticle, domain.ErrInvalidQuiz},
		{"missing statute name", &fakeModel{response: validQuizJSON}, domain.Article{Number: "5", Content: "x"}, domain.ErrInvalidInput},
		{"missing article number", &fakeModel{response: validQuizJSON}, domain.Article{StatuteName: "민법", Content: "x"}, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := newTestGenerator(tt.model)
			quiz, err := gen.Generate(context.Background(), tt.article)
			assert.Nil(t, quiz)
			require.Error(t, err)
			assert.True(t, domain.HasCode(err, tt.wantCode), "got %v", err)
		})
	}
}

func TestSanitizeContent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  제1조(목적)\n\t이 법은   국민의 \"권리\"를 보호한다. ", "제1조(목적) 이 법은 국민의 '권리'를 보호한다."},
		{"```json 탈출```", "json 탈출"},
		{"a\x00b\x07c", "abc"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeContent(tt.in))
	}
}

func TestArticleLabel(t *testing.T) {
	assert.Equal(t, "제3조", ArticleLabel("3"))
	assert.Equal(t, "제3조의2", ArticleLabel("제3조의2"))
	assert.Equal(t, "제3조의2", ArticleLabel("3의2"))
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	a := BuildPrompt(civilArticle, 15)
	assert.Equal(t, a, BuildPrompt(civilArticle, 15))
	assert.Contains(t, a, `"timer_sec": 15`)
	assert.Contains(t, a, "순수한 JSON만 출력")
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"think block", "<think>reasoning</think>\n{\"a\":1}", `{"a":1}`},
		{"whitespace", "  \n{\"a\":1}\n ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFence(tt.in))
		})
	}
}
