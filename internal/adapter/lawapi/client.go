package lawapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"law-quiz/internal/config"
	"law-quiz/internal/domain"
	"law-quiz/internal/logger"

	"go.uber.org/zap"
)

const (
	servicePath     = "/lawService.do"
	defaultTarget   = "eflaw"
	defaultTimeout  = 20 * time.Second
	maxResponseSize = 32 << 20
)

// Client fetches statute articles from the law.go.kr DRF service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	oc         string
	target     string
}

// NewClient creates a statute API client. httpClient may be nil.
func NewClient(cfg config.LawAPIConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	target := cfg.Target
	if target == "" {
		target = defaultTarget
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		oc:         cfg.OC,
		target:     target,
	}
}

// lawServiceResponse covers only the fields read from the DRF payload.
type lawServiceResponse struct {
	Law *struct {
		BasicInfo struct {
			NameKo string `json:"법령명_한글"`
		} `json:"기본정보"`
		Articles *struct {
			Units json.RawMessage `json:"조문단위"`
		} `json:"조문"`
	} `json:"법령"`
}

type articleUnit struct {
	Number     json.RawMessage `json:"조문번호"`
	Branch     json.RawMessage `json:"조문가지번호"`
	Kind       string          `json:"조문여부"`
	Content    json.RawMessage `json:"조문내용"`
	Paragraphs json.RawMessage `json:"항"`
}

// FetchArticles implements domain.StatuteSource. Every failure is logged
// and reported as an empty result.
func (c *Client) FetchArticles(ctx context.Context, statuteID string) []domain.Article {
	l := logger.Get().With(zap.String("statuteID", statuteID))

	if c.oc == "" {
		l.Error("Statute API requester id (OC) is not configured")
		return nil
	}

	body, err := c.fetch(ctx, statuteID)
	if err != nil {
		l.Warn("Failed to fetch statute", zap.Error(err))
		return nil
	}

	var resp lawServiceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		l.Warn("Failed to decode statute response", zap.Error(err))
		return nil
	}
	if resp.Law == nil || resp.Law.Articles == nil || len(resp.Law.Articles.Units) == 0 {
		l.Warn("Statute response has no article units")
		return nil
	}

	units, err := decodeUnits(resp.Law.Articles.Units)
	if err != nil {
		l.Warn("Failed to decode article units", zap.Error(err))
		return nil
	}

	statuteName := strings.TrimSpace(resp.Law.BasicInfo.NameKo)
	articles := make([]domain.Article, 0, len(units))
	for _, u := range units {
		// Chapter and section headings are listed as units with kind "전문".
		if u.Kind == "전문" {
			continue
		}
		number := scalarString(u.Number)
		if branch := scalarString(u.Branch); number != "" && branch != "" && branch != "0" {
			number += "의" + branch
		}
		content := joinText(u.Content, u.Paragraphs)
		if number == "" || content == "" {
			continue
		}
		articles = append(articles, domain.Article{
			Number:      number,
			Content:     content,
			StatuteName: statuteName,
		})
	}

	l.Debug("Fetched statute articles", zap.Int("count", len(articles)))
	return articles
}

func (c *Client) fetch(ctx context.Context, statuteID string) ([]byte, error) {
	q := url.Values{}
	q.Set("OC", c.oc)
	q.Set("type", "JSON")
	q.Set("target", c.target)
	q.Set("ID", statuteID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+servicePath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request statute: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("statute API returned status %d", res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read statute body: %w", err)
	}
	return body, nil
}

// decodeUnits accepts 조문단위 as a single object or an array of objects.
func decodeUnits(raw json.RawMessage) ([]articleUnit, error) {
	trimmed := strings.TrimSpace(string(raw))
	switch {
	case strings.HasPrefix(trimmed, "["):
		var units []articleUnit
		if err := json.Unmarshal(raw, &units); err != nil {
			return nil, err
		}
		return units, nil
	case strings.HasPrefix(trimmed, "{"):
		var unit articleUnit
		if err := json.Unmarshal(raw, &unit); err != nil {
			return nil, err
		}
		return []articleUnit{unit}, nil
	case trimmed == "null":
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected 조문단위 shape: %.20s", trimmed)
	}
}

// scalarString renders a JSON string or number as a plain string.
func scalarString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
			return strconv.FormatInt(i, 10)
		}
		return n.String()
	}
	return ""
}

// joinText flattens 조문내용 (string or nested arrays of strings) followed
// by paragraph texts into one space-separated string.
func joinText(parts ...json.RawMessage) string {
	var out []string
	for _, raw := range parts {
		if len(raw) == 0 {
			continue
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		collectText(v, &out)
	}
	return strings.Join(out, " ")
}

var textKeys = []string{"항내용", "호내용", "목내용"}
var childKeys = []string{"호", "목"}

func collectText(v any, out *[]string) {
	switch t := v.(type) {
	case string:
		if s := strings.Join(strings.Fields(t), " "); s != "" {
			*out = append(*out, s)
		}
	case []any:
		for _, item := range t {
			collectText(item, out)
		}
	case map[string]any:
		for _, k := range textKeys {
			if text, ok := t[k]; ok {
				collectText(text, out)
			}
		}
		for _, k := range childKeys {
			if child, ok := t[k]; ok {
				collectText(child, out)
			}
		}
	}
}

var _ domain.StatuteSource = (*Client)(nil)
