package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"redlight/internal/model"
	"redlight/internal/repository"
	"redlight/internal/scoring"
)

// ValidationError reports a missing required submission field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " is required"
}

// FeedbackService handles feedback ingestion
type FeedbackService struct {
	repo     repository.FeedbackRepo
	analyzer Analyzer
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(repo repository.FeedbackRepo, analyzer Analyzer) *FeedbackService {
	return &FeedbackService{repo: repo, analyzer: analyzer}
}

// Submit validates and persists one feedback submission. The analyzer is
// best-effort: any failure is replaced by the fallback analysis and the
// record is still written, since feedback capture takes priority over AI
// quality. Exactly one document is persisted per successful call.
func (s *FeedbackService) Submit(ctx context.Context, req *model.SubmitFeedbackRequest) (*model.SubmitFeedbackResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	analysis, err := s.analyzer.Analyze(ctx, req.Text, req.InstitutionName)
	if err != nil {
		log.Printf("AI analysis failed for %q, recording fallback: %v", req.InstitutionName, err)
		analysis = FallbackAnalysis()
	}

	feedback := &model.Feedback{
		InstitutionName: req.InstitutionName,
		Timestamp:       *req.Timestamp,
		Text:            req.Text,
		AIAnalysis:      analysis,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, feedback); err != nil {
		return nil, fmt.Errorf("persist feedback: %w", err)
	}

	score := scoring.Normalize(analysis).Integrity()

	return &model.SubmitFeedbackResponse{
		Success:        true,
		ID:             feedback.ID.Hex(),
		Analysis:       analysis,
		IntegrityScore: score,
		Message:        fmt.Sprintf("Your feedback was analyzed. Integrity score: %d%%", score),
	}, nil
}

func validate(req *model.SubmitFeedbackRequest) error {
	if strings.TrimSpace(req.InstitutionName) == "" {
		return &ValidationError{Field: "institutionName"}
	}
	if req.Timestamp == nil || req.Timestamp.IsZero() {
		return &ValidationError{Field: "timestamp"}
	}
	if strings.TrimSpace(req.Text) == "" {
		return &ValidationError{Field: "text"}
	}
	return nil
}
