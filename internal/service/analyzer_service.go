package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"redlight/internal/config"
	"redlight/internal/model"
)

// Analyzer produces an integrity assessment for one feedback text. An
// error means the caller must substitute FallbackAnalysis; analyzer
// failures are never surfaced to the citizen.
type Analyzer interface {
	Analyze(ctx context.Context, text, institutionName string) (*model.AIAnalysis, error)
}

// AnalyzerService calls the Gemini API, or a keyword heuristic when no
// API key is configured so that feedback capture works offline.
type AnalyzerService struct {
	config *config.AIConfig
	client *http.Client
}

// NewAnalyzerService creates a new analyzer service
func NewAnalyzerService(cfg *config.AIConfig) *AnalyzerService {
	return &AnalyzerService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// Enabled reports whether live AI analysis is configured.
func (s *AnalyzerService) Enabled() bool {
	return s.config.IsEnabled()
}

// Analyze assesses one feedback text. With no API key it runs the local
// heuristic and never fails. A Gemini error, timeout, or response that
// does not match the expected schema is returned as an error; there is no
// partial recovery from a malformed response.
func (s *AnalyzerService) Analyze(ctx context.Context, text, institutionName string) (*model.AIAnalysis, error) {
	if !s.config.IsEnabled() {
		return s.heuristic(text), nil
	}

	response, err := s.callGemini(ctx, s.buildPrompt(text, institutionName))
	if err != nil {
		return nil, err
	}

	return decodeAnalysis(response)
}

// analysisPayload mirrors the schema the prompt demands. Score and label
// fields are pointers so a missing field is a decode failure, not a zero.
type analysisPayload struct {
	CorruptionScore *float64 `json:"corruption_score"`
	FairnessScore   *float64 `json:"fairness_score"`
	NepotismScore   *float64 `json:"nepotism_score"`
	ServiceQuality  *float64 `json:"service_quality"`
	Sentiment       *string  `json:"sentiment"`
	MainIssue       *string  `json:"main_issue"`
	Keywords        []string `json:"keywords"`
	Confidence      *float64 `json:"confidence"`
}

// decodeAnalysis strictly decodes a model response. Any shape mismatch
// fails closed so the caller falls back.
func decodeAnalysis(response string) (*model.AIAnalysis, error) {
	var p analysisPayload
	if err := json.Unmarshal([]byte(response), &p); err != nil {
		return nil, fmt.Errorf("malformed analysis response: %w", err)
	}

	if p.CorruptionScore == nil || p.FairnessScore == nil || p.NepotismScore == nil ||
		p.ServiceQuality == nil || p.Sentiment == nil || p.MainIssue == nil {
		return nil, fmt.Errorf("analysis response missing required fields")
	}

	confidence := 0.0
	if p.Confidence != nil {
		confidence = *p.Confidence
	}

	return model.NewAnalysis(
		*p.CorruptionScore, *p.FairnessScore, *p.NepotismScore, *p.ServiceQuality,
		*p.Sentiment, *p.MainIssue, p.Keywords, confidence,
	), nil
}

// FallbackAnalysis is the neutral result recorded when AI analysis fails.
// Its scores put the single-record integrity score at exactly 50.
func FallbackAnalysis() *model.AIAnalysis {
	return model.NewAnalysis(0, 50, 0, 50, model.SentimentNeutral, "analysis failed", []string{}, 0)
}

// callGemini makes a request to the Gemini API
func (s *AnalyzerService) callGemini(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.ModelEndpoint(), bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	// Parse Gemini response structure
	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}

func (s *AnalyzerService) buildPrompt(text, institutionName string) string {
	return fmt.Sprintf(`You are an integrity analyst. Analyze this citizen feedback about "%s": "%s"
Return ONLY valid JSON matching this schema:
{
  "corruption_score": number 0-100,
  "fairness_score": number 0-100,
  "nepotism_score": number 0-100,
  "service_quality": number 0-100,
  "sentiment": "positive" or "neutral" or "negative",
  "main_issue": "short label for the dominant complaint",
  "keywords": ["keyword"],
  "confidence": number 0-100
}`, institutionName, text)
}

// heuristic is the offline analyzer used when no API key is configured.
// Keyword cues only; it exists so capture keeps working without the AI
// collaborator, not to be a real NLP pass.
func (s *AnalyzerService) heuristic(text string) *model.AIAnalysis {
	t := strings.ToLower(text)

	bribery := containsAny(t, "bribe", "kickback", "wasta")
	favoritism := bribery || containsAny(t, "nepotism", "favoritism", "connections")
	fairness := containsAny(t, "fair", "transparent")
	poorService := containsAny(t, "slow", "rude", "bad", "terrible")

	corruption, nepotism := 20.0, 20.0
	if bribery {
		corruption = 70
	}
	if favoritism {
		nepotism = 80
	}

	fairScore := 40.0
	if fairness {
		fairScore = 80
	}

	service := 60.0
	if poorService {
		service = 30
	}

	sentiment := model.SentimentPositive
	if bribery || poorService {
		sentiment = model.SentimentNegative
	}

	mainIssue := "general assessment"
	keywords := []string{"assessment"}
	if bribery {
		mainIssue = "bribery solicitation"
		keywords = []string{"bribery"}
	}

	return model.NewAnalysis(corruption, fairScore, nepotism, service, sentiment, mainIssue, keywords, 75)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
