package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"redlight/internal/model"
	"redlight/internal/repository"
	"redlight/internal/scoring"
)

// AnalyticsService aggregates the feedback collection per institution.
// Every call recomputes from storage; nothing is cached, so results are
// always current. That full re-scan is a known scaling limit at large
// collections.
type AnalyticsService struct {
	repo repository.FeedbackRepo
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(repo repository.FeedbackRepo) *AnalyticsService {
	return &AnalyticsService{repo: repo}
}

// Overview builds the public dashboard across all institutions, ranked
// best integrity first.
func (s *AnalyticsService) Overview(ctx context.Context) (*model.OverviewResponse, error) {
	stats, err := s.repo.GroupByInstitution(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate institutions: %w", err)
	}

	summaries := make([]model.InstitutionSummary, 0, len(stats))
	resp := &model.OverviewResponse{
		TotalInstitutions:  len(stats),
		RankedInstitutions: []model.InstitutionSummary{},
		TopPerforming:      []model.InstitutionSummary{},
		NeedsAttention:     []model.InstitutionSummary{},
	}

	integritySum := 0
	for _, st := range stats {
		sum := buildSummary(st)
		summaries = append(summaries, sum)

		resp.TotalFeedbacks += st.TotalFeedbacks
		integritySum += sum.IntegrityScore
		if scoring.IsCritical(sum.IntegrityScore, st.AvgCorruption, st.AvgNepotism) {
			resp.AlertsCount++
		}
		resp.SentimentData.Positive += st.PositiveCount
		resp.SentimentData.Negative += st.NegativeCount
		resp.SentimentData.Neutral += st.NeutralCount
	}

	// Best first; ties keep group order.
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].IntegrityScore > summaries[j].IntegrityScore
	})

	resp.RankedInstitutions = summaries
	if len(summaries) > 0 {
		resp.AvgIntegrity = scoring.Round(float64(integritySum) / float64(len(summaries)))
	}

	top := summaries
	if len(top) > 5 {
		top = top[:5]
	}
	resp.TopPerforming = top

	for _, sum := range summaries {
		if sum.IntegrityScore < 40 {
			resp.NeedsAttention = append(resp.NeedsAttention, sum)
		}
	}

	return resp, nil
}

// PriorityList builds the admin institution list, worst integrity first.
// This is its own ascending sort, not a reversal of the overview ranking.
func (s *AnalyticsService) PriorityList(ctx context.Context) (*model.PriorityListResponse, error) {
	stats, err := s.repo.GroupByInstitution(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate institutions: %w", err)
	}

	resp := &model.PriorityListResponse{Institutions: []model.PriorityInstitution{}}
	for _, st := range stats {
		score := scoring.IntegrityScore(st.AvgFairness, st.AvgService, st.AvgCorruption, st.AvgNepotism)
		priority := scoring.PriorityFor(score)

		resp.Institutions = append(resp.Institutions, model.PriorityInstitution{
			Name:           st.Name,
			TotalFeedbacks: st.TotalFeedbacks,
			IntegrityScore: score,
			LastActivity:   st.LastUpdate,
			Priority:       priority,
		})

		resp.Summary.Total++
		switch priority {
		case scoring.PriorityHigh:
			resp.Summary.HighPriority++
		case scoring.PriorityMedium:
			resp.Summary.MediumPriority++
		default:
			resp.Summary.LowPriority++
		}
	}

	sort.SliceStable(resp.Institutions, func(i, j int) bool {
		return resp.Institutions[i].IntegrityScore < resp.Institutions[j].IntegrityScore
	})

	return resp, nil
}

// InstitutionReport builds the full per-institution admin report from the
// institution's raw documents. An unknown institution yields an empty
// report, not an error.
func (s *AnalyticsService) InstitutionReport(ctx context.Context, name string) (*model.InstitutionReport, error) {
	feedbacks, err := s.repo.FindByInstitution(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load feedback for %q: %w", name, err)
	}

	report := &model.InstitutionReport{
		Institution: name,
		ReportDate:  time.Now().UTC(),
	}

	if len(feedbacks) == 0 {
		report.Summary = "no feedback recorded for this institution"
		return report, nil
	}

	g := scoring.Summarize(feedbacks)

	// The composite score comes from the group's averaged scores, not
	// from averaging per-feedback integrity scores; the two differ.
	report.TotalFeedbacks = g.Total
	report.IntegrityScore = g.Avg.Integrity()

	risk := scoring.ClassifyRisk(report.IntegrityScore, g.Avg.Corruption)
	report.RiskLevel = risk.Level
	report.RiskColor = risk.Color

	report.Scores = &model.ScoreBreakdown{
		Corruption: scoring.Round(g.Avg.Corruption),
		Fairness:   scoring.Round(g.Avg.Fairness),
		Nepotism:   scoring.Round(g.Avg.Nepotism),
		Service:    scoring.Round(g.Avg.Service),
	}
	report.Sentiment = g.Sentiment
	report.DateRange = &model.DateRange{From: g.Oldest, To: g.Newest}
	report.TopIssues = scoring.TopIssues(feedbacks, 5)

	issueNames := make([]string, 0, len(report.TopIssues))
	for _, issue := range report.TopIssues {
		issueNames = append(issueNames, issue.Issue)
	}
	report.GeneratedSummary = fmt.Sprintf(
		"Automated analysis of %d feedback items. Integrity score: %d%%. Top issues: %s.",
		g.Total, report.IntegrityScore, strings.Join(issueNames, ", "))

	// feedbacks arrive newest first
	for _, f := range feedbacks {
		if len(report.RecentFeedbacks) == 3 {
			break
		}
		report.RecentFeedbacks = append(report.RecentFeedbacks, model.FeedbackExcerpt{
			Text:      excerpt(f.Text, 100),
			Sentiment: excerptSentiment(f),
			Date:      f.CreatedAt,
		})
	}

	return report, nil
}

func buildSummary(st model.InstitutionStats) model.InstitutionSummary {
	sum := model.InstitutionSummary{
		Name:            st.Name,
		TotalFeedbacks:  st.TotalFeedbacks,
		IntegrityScore:  scoring.IntegrityScore(st.AvgFairness, st.AvgService, st.AvgCorruption, st.AvgNepotism),
		CorruptionLevel: scoring.Round(st.AvgCorruption),
		FairnessLevel:   scoring.Round(st.AvgFairness),
		NepotismLevel:   scoring.Round(st.AvgNepotism),
		ServiceQuality:  scoring.Round(st.AvgService),
		LastUpdate:      st.LastUpdate,
	}
	if st.TotalFeedbacks > 0 {
		total := float64(st.TotalFeedbacks)
		sum.PositiveRatio = scoring.Round(float64(st.PositiveCount) / total * 100)
		sum.NegativeRatio = scoring.Round(float64(st.NegativeCount) / total * 100)
		sum.NeutralRatio = scoring.Round(float64(st.NeutralCount) / total * 100)
	}
	return sum
}

func excerpt(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}

func excerptSentiment(f *model.Feedback) string {
	if f.AIAnalysis == nil || f.AIAnalysis.Sentiment == "" {
		return model.SentimentNeutral
	}
	return f.AIAnalysis.Sentiment
}
