package repository

import (
	"testing"

	"golang-filing-sentiment/internal/analyzer/config"
	"golang-filing-sentiment/internal/analyzer/dto"
	"golang-filing-sentiment/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClassifier(t *testing.T) *geminiClassifierRepository {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)
	return &geminiClassifierRepository{
		cfg:    &config.Config{},
		logger: log,
	}
}

func geminiResponse(text string) *dto.GeminiAPIResponse {
	return &dto.GeminiAPIResponse{
		Candidates: []dto.Candidate{
			{Content: dto.Content{Parts: []dto.Part{{Text: text}}}},
		},
	}
}

func TestNewGeminiClassifierRepository_RequiresAPIKey(t *testing.T) {
	log, err := logger.New("error", "json")
	require.NoError(t, err)

	_, err = NewGeminiClassifierRepository(&config.Config{}, log, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key")
}

func TestNewGeminiClassifierRepository_DefaultsRequestLimit(t *testing.T) {
	log, err := logger.New("error", "json")
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Gemini.APIKey = "test-key"

	repo, err := NewGeminiClassifierRepository(cfg, log, nil)
	require.NoError(t, err)
	assert.NotNil(t, repo)
}

func TestParseClassificationResponse(t *testing.T) {
	r := newTestClassifier(t)

	resp := geminiResponse("[{\"positive\":0.8,\"negative\":0.1,\"neutral\":0.1},{\"positive\":0.0,\"negative\":0.9,\"neutral\":0.1}]")
	scores, err := r.parseClassificationResponse(resp, 2)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.InDelta(t, 0.8, scores[0].Positive, 1e-9)
	assert.InDelta(t, 0.9, scores[1].Negative, 1e-9)
}

func TestParseClassificationResponse_StripsCodeFence(t *testing.T) {
	r := newTestClassifier(t)

	resp := geminiResponse("```json\n[{\"positive\":1.0,\"negative\":0.0,\"neutral\":0.0}]\n```")
	scores, err := r.parseClassificationResponse(resp, 1)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.InDelta(t, 1.0, scores[0].Positive, 1e-9)
}

func TestParseClassificationResponse_LengthMismatch(t *testing.T) {
	r := newTestClassifier(t)

	resp := geminiResponse("[{\"positive\":1.0,\"negative\":0.0,\"neutral\":0.0}]")
	_, err := r.parseClassificationResponse(resp, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 scores for 3 sentences")
}

func TestParseClassificationResponse_NoContent(t *testing.T) {
	r := newTestClassifier(t)

	_, err := r.parseClassificationResponse(&dto.GeminiAPIResponse{}, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no content found")
}

func TestNormalizeScore(t *testing.T) {
	scaled := normalizeScore(dto.SentenceScore{Positive: 2, Negative: 1, Neutral: 1})
	assert.InDelta(t, 0.5, scaled.Positive, 1e-9)
	assert.InDelta(t, 0.25, scaled.Negative, 1e-9)
	assert.InDelta(t, 0.25, scaled.Neutral, 1e-9)

	degenerate := normalizeScore(dto.SentenceScore{})
	assert.Equal(t, 1.0, degenerate.Neutral)
}

func TestBuildClassifySentencesPrompt(t *testing.T) {
	prompt := BuildClassifySentencesPrompt([]string{"Revenue grew.", "Costs rose."})
	assert.Contains(t, prompt, "2 sentences")
	assert.Contains(t, prompt, "1. Revenue grew.")
	assert.Contains(t, prompt, "2. Costs rose.")
	assert.Contains(t, prompt, "exactly 2 objects")
}
