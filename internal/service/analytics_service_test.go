package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redlight/internal/model"
	"redlight/internal/scoring"
)

// statsRow builds a $group row whose integrity score works out to
// fairness/service - corruption/nepotism + 50 with a=fair=service and
// b=corruption=nepotism, i.e. a - b + 50.
func statsRow(name string, total int, a, b float64) model.InstitutionStats {
	return model.InstitutionStats{
		Name:           name,
		TotalFeedbacks: total,
		AvgFairness:    a,
		AvgService:     a,
		AvgCorruption:  b,
		AvgNepotism:    b,
		LastUpdate:     time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestOverviewRanking(t *testing.T) {
	repo := &fakeRepo{stats: []model.InstitutionStats{
		statsRow("Alpha", 10, 40, 25), // integrity 65
		statsRow("Beta", 5, 20, 45),   // integrity 25
		statsRow("Gamma", 8, 40, 25),  // integrity 65, ties with Alpha
	}}
	svc := NewAnalyticsService(repo)

	resp, err := svc.Overview(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.RankedInstitutions, 3)
	// best first; the Alpha/Gamma tie keeps original group order
	assert.Equal(t, "Alpha", resp.RankedInstitutions[0].Name)
	assert.Equal(t, "Gamma", resp.RankedInstitutions[1].Name)
	assert.Equal(t, "Beta", resp.RankedInstitutions[2].Name)

	assert.Equal(t, 23, resp.TotalFeedbacks)
	assert.Equal(t, 3, resp.TotalInstitutions)
	assert.Equal(t, 52, resp.AvgIntegrity) // round((65+25+65)/3)

	// only Beta is below the attention threshold
	require.Len(t, resp.NeedsAttention, 1)
	assert.Equal(t, "Beta", resp.NeedsAttention[0].Name)

	// Beta is critical (integrity < 30)
	assert.Equal(t, 1, resp.AlertsCount)

	assert.Len(t, resp.TopPerforming, 3)
}

func TestOverviewNepotismAlert(t *testing.T) {
	row := statsRow("Delta", 4, 60, 40) // integrity 70
	row.AvgNepotism = 75                // critical despite the decent score
	repo := &fakeRepo{stats: []model.InstitutionStats{row}}

	resp, err := NewAnalyticsService(repo).Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.AlertsCount)
}

func TestOverviewSentimentAndRatios(t *testing.T) {
	row := statsRow("Echo", 4, 50, 0)
	row.PositiveCount = 2
	row.NegativeCount = 1
	// one feedback has no recognized sentiment and is excluded
	repo := &fakeRepo{stats: []model.InstitutionStats{row}}

	resp, err := NewAnalyticsService(repo).Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.SentimentTotals{Positive: 2, Negative: 1, Neutral: 0}, resp.SentimentData)
	sum := resp.RankedInstitutions[0]
	assert.Equal(t, 50, sum.PositiveRatio)
	assert.Equal(t, 25, sum.NegativeRatio)
	assert.Equal(t, 0, sum.NeutralRatio)
}

func TestOverviewEmpty(t *testing.T) {
	resp, err := NewAnalyticsService(&fakeRepo{}).Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, resp.AvgIntegrity)
	assert.Empty(t, resp.RankedInstitutions)
	assert.Equal(t, 0, resp.TotalFeedbacks)
}

func TestPriorityListWorstFirst(t *testing.T) {
	repo := &fakeRepo{stats: []model.InstitutionStats{
		statsRow("Alpha", 10, 40, 25), // 65 -> medium
		statsRow("Beta", 5, 20, 45),   // 25 -> high
		statsRow("Gamma", 8, 40, 25),  // 65 -> medium, ties with Alpha
		statsRow("Delta", 2, 70, 25),  // 95 -> low
	}}
	svc := NewAnalyticsService(repo)

	resp, err := svc.PriorityList(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Institutions, 4)
	assert.Equal(t, "Beta", resp.Institutions[0].Name)
	assert.Equal(t, "Alpha", resp.Institutions[1].Name) // stable tie order
	assert.Equal(t, "Gamma", resp.Institutions[2].Name)
	assert.Equal(t, "Delta", resp.Institutions[3].Name)

	assert.Equal(t, scoring.PriorityHigh, resp.Institutions[0].Priority)
	assert.Equal(t, model.PrioritySummary{Total: 4, HighPriority: 1, MediumPriority: 2, LowPriority: 1}, resp.Summary)
}

func TestOrderingsAreDistinct(t *testing.T) {
	repo := &fakeRepo{stats: []model.InstitutionStats{
		statsRow("Worse", 3, 20, 45),  // 25
		statsRow("Better", 3, 40, 25), // 65
	}}
	svc := NewAnalyticsService(repo)

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	priority, err := svc.PriorityList(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Better", overview.RankedInstitutions[0].Name)
	assert.Equal(t, "Worse", priority.Institutions[0].Name)
}

func TestInstitutionReport(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, time.April, d, 0, 0, 0, 0, time.UTC)
	}

	// newest first, as the repository returns them
	repo := &fakeRepo{feedbacks: []*model.Feedback{
		{
			InstitutionName: "Land Registry",
			Text:            "Clerk asked for extra money to move the file along",
			CreatedAt:       day(4),
			AIAnalysis:      model.NewAnalysis(100, 0, 100, 0, model.SentimentNegative, "bribery", nil, 90),
		},
		{
			InstitutionName: "Land Registry",
			Text:            "Average visit",
			CreatedAt:       day(2),
			AIAnalysis:      model.NewAnalysis(0, 50, 0, 50, model.SentimentNeutral, "bribery", nil, 60),
		},
	}}
	svc := NewAnalyticsService(repo)

	report, err := svc.InstitutionReport(context.Background(), "Land Registry")
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalFeedbacks)

	// Scored from the averaged inputs (f=25, s=25, c=50, n=50 -> 25),
	// not from the mean of per-feedback scores (0 and 100 -> 50).
	assert.Equal(t, 25, report.IntegrityScore)
	assert.Equal(t, scoring.RiskVeryHigh, report.RiskLevel)
	assert.Equal(t, "#e74c3c", report.RiskColor)

	require.NotNil(t, report.Scores)
	assert.Equal(t, model.ScoreBreakdown{Corruption: 50, Fairness: 25, Nepotism: 50, Service: 25}, *report.Scores)

	require.Len(t, report.TopIssues, 1)
	assert.Equal(t, model.IssueCount{Issue: "bribery", Count: 2, Percentage: 100}, report.TopIssues[0])

	assert.Equal(t, model.SentimentTotals{Negative: 1, Neutral: 1}, report.Sentiment)

	require.NotNil(t, report.DateRange)
	assert.Equal(t, day(2), report.DateRange.From)
	assert.Equal(t, day(4), report.DateRange.To)

	require.Len(t, report.RecentFeedbacks, 2)
	assert.Equal(t, day(4), report.RecentFeedbacks[0].Date)
	assert.Contains(t, report.GeneratedSummary, "bribery")
	assert.Empty(t, report.Summary)
}

func TestInstitutionReportNoData(t *testing.T) {
	svc := NewAnalyticsService(&fakeRepo{})

	report, err := svc.InstitutionReport(context.Background(), "Unknown Office")
	require.NoError(t, err)

	assert.Equal(t, "Unknown Office", report.Institution)
	assert.Equal(t, 0, report.TotalFeedbacks)
	assert.NotEmpty(t, report.Summary)
	assert.Nil(t, report.Scores)
	assert.Nil(t, report.DateRange)
}

func TestInstitutionReportExcerptTruncation(t *testing.T) {
	long := make([]rune, 0, 150)
	for i := 0; i < 150; i++ {
		long = append(long, 'x')
	}
	repo := &fakeRepo{feedbacks: []*model.Feedback{{
		InstitutionName: "Archive",
		Text:            string(long),
		CreatedAt:       time.Now(),
	}}}

	report, err := NewAnalyticsService(repo).InstitutionReport(context.Background(), "Archive")
	require.NoError(t, err)

	require.Len(t, report.RecentFeedbacks, 1)
	ex := report.RecentFeedbacks[0]
	assert.Len(t, []rune(ex.Text), 103) // 100 chars + "..."
	assert.Equal(t, model.SentimentNeutral, ex.Sentiment)
}
