package aigateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
	"github.com/moodbrew/cafe-discovery/internal/domain/providers"
	"github.com/moodbrew/cafe-discovery/pkg/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const defaultHTTPTimeout = 20 * time.Second

// Client talks to the chat-completions AI gateway. It implements the
// MoodIntelligenceProvider boundary.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

var _ providers.MoodIntelligenceProvider = (*Client)(nil)

// NewClient creates a new AI gateway client.
func NewClient(cfg *config.AIGatewayConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("ai gateway api key is required")
	}
	return NewClientWithOptions(cfg, cfg.BaseURL, nil)
}

// NewClientWithOptions allows overriding base URL and HTTP client (used for tests).
func NewClientWithOptions(cfg *config.AIGatewayConfig, baseURL string, httpClient *http.Client) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("ai gateway config is required")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = cfg.BaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	model := cfg.Model
	if model == "" {
		model = "google/gemini-2.5-flash"
	}
	return &Client{
		apiKey:     cfg.APIKey,
		model:      model,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// AnalyzeReviews classifies review sentiment into mood scores. Malformed
// model output yields the neutral equal-weighted distribution, not an error.
func (c *Client) AnalyzeReviews(ctx context.Context, reviews []*entities.Review) (entities.MoodScores, error) {
	if len(reviews) == 0 {
		return entities.NeutralMoodScores(), nil
	}

	var sb strings.Builder
	for _, r := range reviews {
		if r.Content == "" {
			continue
		}
		sb.WriteString(r.Content)
		sb.WriteString("\n")
	}

	text, err := c.chatCompletion(ctx, moodSystemPrompt, buildMoodUserPrompt(sb.String()), 0.3)
	if err != nil {
		return entities.MoodScores{}, err
	}

	return parseMoodScores(text), nil
}

// RecommendFilters suggests filter combinations for a user profile.
// Malformed model output yields an empty recommendation list.
func (c *Client) RecommendFilters(ctx context.Context, profile providers.RecommendationProfile) ([]providers.RecommendedFilter, error) {
	userPrompt, err := buildRecommendationUserPrompt(profile)
	if err != nil {
		return nil, err
	}

	text, err := c.chatCompletion(ctx, recommendationSystemPrompt, userPrompt, 0.5)
	if err != nil {
		return nil, err
	}

	raw, ok := ExtractJSONObject(text)
	if !ok {
		return []providers.RecommendedFilter{}, nil
	}

	var payload struct {
		RecommendedFilters []providers.RecommendedFilter `json:"recommended_filters"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return []providers.RecommendedFilter{}, nil
	}
	if payload.RecommendedFilters == nil {
		return []providers.RecommendedFilter{}, nil
	}
	return payload.RecommendedFilters, nil
}

func (c *Client) chatCompletion(ctx context.Context, system, user string, temperature float64) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordGatewayMetric(ctx, c.model, 0, time.Since(start), err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := fmt.Errorf("status %d", resp.StatusCode)
		recordGatewayMetric(ctx, c.model, resp.StatusCode, time.Since(start), statusErr)
		switch resp.StatusCode {
		case http.StatusTooManyRequests:
			return "", fmt.Errorf("%w: gateway returned status %d", providers.ErrAIRateLimited, resp.StatusCode)
		case http.StatusPaymentRequired:
			return "", fmt.Errorf("%w: gateway returned status %d", providers.ErrAICreditsExhausted, resp.StatusCode)
		default:
			return "", fmt.Errorf("ai gateway request failed with status %d", resp.StatusCode)
		}
	}

	var envelope chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		recordGatewayMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return "", err
	}

	if len(envelope.Choices) == 0 {
		err := errors.New("ai gateway response missing choices")
		recordGatewayMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return "", err
	}

	recordGatewayMetric(ctx, c.model, resp.StatusCode, time.Since(start), nil)
	return envelope.Choices[0].Message.Content, nil
}

// parseMoodScores extracts mood scores from free-form model output, falling
// back to the neutral distribution when no parseable object is present.
func parseMoodScores(text string) entities.MoodScores {
	raw, ok := ExtractJSONObject(text)
	if !ok {
		return entities.NeutralMoodScores()
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return entities.NeutralMoodScores()
	}

	// Some model responses nest the scores under mood_score.
	if nested, ok := fields["mood_score"]; ok {
		var nestedFields map[string]json.RawMessage
		if err := json.Unmarshal(nested, &nestedFields); err == nil {
			fields = nestedFields
		}
	}

	scores := entities.MoodScores{}
	found := false
	read := func(keys ...string) (int, bool) {
		for _, key := range keys {
			if raw, ok := fields[key]; ok {
				var v float64
				if err := json.Unmarshal(raw, &v); err == nil {
					return clampScore(int(v)), true
				}
			}
		}
		return 0, false
	}

	if v, ok := read("calm"); ok {
		scores.Calm = v
		found = true
	}
	if v, ok := read("lively"); ok {
		scores.Lively = v
		found = true
	}
	if v, ok := read("romantic"); ok {
		scores.Romantic = v
		found = true
	}
	if v, ok := read("studyFriendly", "study_friendly"); ok {
		scores.StudyFriendly = v
		found = true
	}

	if !found {
		return entities.NeutralMoodScores()
	}
	return scores
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ExtractJSONObject returns the first balanced JSON object embedded in text.
// Braces inside string literals are ignored.
func ExtractJSONObject(text string) ([]byte, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil, false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				candidate := []byte(text[start : i+1])
				if json.Valid(candidate) {
					return candidate, true
				}
				return nil, false
			}
		}
	}
	return nil, false
}

var (
	gatewayMetricsInit    bool
	gatewayRequestCount   metric.Int64Counter
	gatewayRequestLatency metric.Float64Histogram
	gatewayRequestErrors  metric.Int64Counter
)

func ensureGatewayMetrics() {
	if gatewayMetricsInit {
		return
	}
	meter := otel.Meter("github.com/moodbrew/cafe-discovery/aigateway")

	requestCount, err := meter.Int64Counter(
		"ai.gateway.request.count",
		metric.WithDescription("Number of AI gateway requests"),
	)
	if err != nil {
		return
	}
	requestLatency, err := meter.Float64Histogram(
		"ai.gateway.request.duration",
		metric.WithDescription("AI gateway request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"ai.gateway.request.errors",
		metric.WithDescription("Number of AI gateway request errors"),
	)
	if err != nil {
		return
	}

	gatewayRequestCount = requestCount
	gatewayRequestLatency = requestLatency
	gatewayRequestErrors = requestErrors
	gatewayMetricsInit = true
}

func recordGatewayMetric(ctx context.Context, model string, statusCode int, duration time.Duration, err error) {
	ensureGatewayMetrics()
	if !gatewayMetricsInit {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.model", model),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	gatewayRequestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	gatewayRequestLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		gatewayRequestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
