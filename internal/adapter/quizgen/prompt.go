package quizgen

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"law-quiz/internal/domain"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// SanitizeContent prepares article text for embedding in the prompt:
// whitespace runs collapse to one space, double quotes become single
// quotes, and backticks and control characters are dropped.
func SanitizeContent(content string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '`':
			return -1
		case r == '"':
			return '\''
		case unicode.IsSpace(r):
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, content)
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(cleaned, " "))
}

// ArticleLabel renders an article number as "제N조", or "제N조의M" for a
// branch article numbered "N의M".
func ArticleLabel(number string) string {
	number = strings.TrimSpace(number)
	if strings.HasPrefix(number, "제") {
		return number
	}
	if main, branch, ok := strings.Cut(number, "의"); ok && branch != "" {
		return fmt.Sprintf("제%s조의%s", main, branch)
	}
	return fmt.Sprintf("제%s조", number)
}

const promptTemplate = `당신은 한국 법률 조문을 바탕으로 객관식 4지선다 퀴즈를 만드는 출제자입니다.
아래 조문 하나만 근거로 문제 1개를 만드세요.

법령명: %s
조문: %s
조문내용: %s

다음 JSON 스키마를 정확히 따르세요.
{
  "id": "string",
  "category": "%s",
  "question": "string",
  "options": [
    {"text": "string", "is_correct": true},
    {"text": "string", "is_correct": false},
    {"text": "string", "is_correct": false},
    {"text": "string", "is_correct": false}
  ],
  "answer": "정답 보기의 text와 완전히 같은 문자열",
  "explanation": "조문을 근거로 한 해설",
  "timer_sec": %d
}

규칙:
1. options는 정확히 4개이고 is_correct가 true인 보기는 정확히 1개입니다.
2. answer는 정답 보기의 text를 그대로 옮깁니다.
3. 정답 보기의 위치는 무작위로 정합니다.
4. 마크다운 코드 블록이나 설명 문장 없이 순수한 JSON만 출력합니다.`

// BuildPrompt renders the generation instruction for one article.
func BuildPrompt(article domain.Article, timerSeconds int) string {
	return fmt.Sprintf(promptTemplate,
		article.StatuteName,
		ArticleLabel(article.Number),
		SanitizeContent(article.Content),
		article.StatuteName,
		timerSeconds,
	)
}

// StripCodeFence removes markdown code fences and <think> blocks that
// models wrap around their JSON output.
func StripCodeFence(raw string) string {
	cleaned := strings.TrimSpace(raw)

	if thinkStart := strings.Index(cleaned, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(cleaned, "</think>"); thinkEnd > thinkStart {
			cleaned = cleaned[:thinkStart] + cleaned[thinkEnd+len("</think>"):]
			cleaned = strings.TrimSpace(cleaned)
		}
	}

	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```JSON")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	}
	return strings.TrimSpace(cleaned)
}
