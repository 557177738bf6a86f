package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang-filing-sentiment/internal/analyzer/config"
	"golang-filing-sentiment/internal/analyzer/dto"
	"golang-filing-sentiment/internal/sentiment"
	"golang-filing-sentiment/pkg/logger"
	"golang-filing-sentiment/pkg/ratelimit"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const (
	defaultClassifierBatchSize      = 25
	defaultClassifierRequestsPerMin = 10
)

// geminiClassifierRepository is a ClassifierRepository backed by the Google
// Gemini API.
type geminiClassifierRepository struct {
	client         *http.Client
	cfg            *config.Config
	logger         *logger.Logger
	tokenLimiter   *ratelimit.TokenLimiter
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
	batchSize      int
}

// NewGeminiClassifierRepository creates a new instance of geminiClassifierRepository.
// A missing API key is a configuration error: without a classifier no
// sentiment scores can be produced, so the service refuses to start.
func NewGeminiClassifierRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) (ClassifierRepository, error) {
	if cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	requestsPerMinute := cfg.Gemini.MaxRequestPerMinute
	if requestsPerMinute <= 0 {
		requestsPerMinute = defaultClassifierRequestsPerMin
	}
	secondsPerRequest := time.Minute / time.Duration(requestsPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	tokenLimiter := ratelimit.NewTokenLimiter(cfg.Gemini.MaxTokenPerMinute)

	batchSize := cfg.Gemini.BatchSize
	if batchSize <= 0 {
		batchSize = defaultClassifierBatchSize
	}

	return &geminiClassifierRepository{
		client: &http.Client{
			Timeout: 90 * time.Second,
		},
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
		tokenLimiter:   tokenLimiter,
		genAiClient:    genAiClient,
		batchSize:      batchSize,
	}, nil
}

// ClassifySentences scores sentences in batches and returns one classification
// per input sentence, in input order.
func (r *geminiClassifierRepository) ClassifySentences(ctx context.Context, sentences []string) ([]sentiment.Classification, error) {
	classifications := make([]sentiment.Classification, 0, len(sentences))

	for start := 0; start < len(sentences); start += r.batchSize {
		end := start + r.batchSize
		if end > len(sentences) {
			end = len(sentences)
		}
		batch := sentences[start:end]

		scores, err := r.classifyBatch(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("failed to classify sentences %d-%d: %w", start, end-1, err)
		}
		classifications = append(classifications, scores...)
	}

	return classifications, nil
}

func (r *geminiClassifierRepository) classifyBatch(ctx context.Context, batch []string) ([]sentiment.Classification, error) {
	prompt := BuildClassifySentencesPrompt(batch)

	geminiResp, err := r.executeGeminiRequest(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return r.parseClassificationResponse(geminiResp, len(batch))
}

func (r *geminiClassifierRepository) executeGeminiRequest(ctx context.Context, prompt string) (*dto.GeminiAPIResponse, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}
	geminiTokenResp, err := r.genAiClient.Models.CountTokens(ctx, r.cfg.Gemini.Model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count tokens: %w", err)
	}

	r.logger.Debug("Gemini token count",
		logger.IntField("total_tokens", int(geminiTokenResp.TotalTokens)),
		logger.IntField("remaining", r.tokenLimiter.GetRemaining()),
	)

	if err := r.tokenLimiter.Wait(ctx, int(geminiTokenResp.TotalTokens)); err != nil {
		return nil, fmt.Errorf("failed to wait for token limit: %w", err)
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	payload := dto.GeminiAPIRequest{
		Contents: []dto.Content{{Parts: []dto.Part{{Text: prompt}}}},
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	apiURL := fmt.Sprintf("%s/%s:generateContent?key=%s", r.cfg.Gemini.BaseURL, r.cfg.Gemini.Model, r.cfg.Gemini.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("Failed to send request to Gemini API", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to send request to Gemini API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		r.logger.Error("Received non-OK response from Gemini API", logger.IntField("status_code", resp.StatusCode))
		return nil, fmt.Errorf("received non-OK response from Gemini API: %d - %s", resp.StatusCode, string(body))
	}

	var geminiResp dto.GeminiAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	return &geminiResp, nil
}

func (r *geminiClassifierRepository) parseClassificationResponse(resp *dto.GeminiAPIResponse, want int) ([]sentiment.Classification, error) {
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("invalid response from Gemini API: no content found")
	}

	rawJSON := resp.Candidates[0].Content.Parts[0].Text
	rawJSON = strings.Trim(rawJSON, "`json\n`")

	var scores []dto.SentenceScore
	if err := json.Unmarshal([]byte(rawJSON), &scores); err != nil {
		r.logger.Error("Failed to unmarshal classification from Gemini response", logger.ErrorField(err), logger.StringField("response", rawJSON))
		return nil, fmt.Errorf("failed to unmarshal classification from Gemini response: %w", err)
	}

	if len(scores) != want {
		return nil, fmt.Errorf("classifier returned %d scores for %d sentences", len(scores), want)
	}

	classifications := make([]sentiment.Classification, len(scores))
	for i, score := range scores {
		classifications[i] = normalizeScore(score)
	}
	return classifications, nil
}

// normalizeScore rescales a score triple so the probabilities sum to one. A
// degenerate all-zero triple falls back to fully neutral.
func normalizeScore(score dto.SentenceScore) sentiment.Classification {
	sum := score.Positive + score.Negative + score.Neutral
	if sum <= 0 {
		return sentiment.Classification{Neutral: 1}
	}
	return sentiment.Classification{
		Positive: score.Positive / sum,
		Negative: score.Negative / sum,
		Neutral:  score.Neutral / sum,
	}
}
