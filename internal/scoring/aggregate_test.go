package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redlight/internal/model"
)

func fbWithIssue(issue string) *model.Feedback {
	fb := &model.Feedback{InstitutionName: "Tax Office", Text: "..."}
	if issue != "" {
		fb.AIAnalysis = &model.AIAnalysis{MainIssue: issue}
	}
	return fb
}

func TestTopIssues(t *testing.T) {
	t.Run("counts and percentages", func(t *testing.T) {
		feedbacks := []*model.Feedback{
			fbWithIssue("bribery"),
			fbWithIssue("bribery"),
			fbWithIssue("slow service"),
			fbWithIssue("bribery"),
		}

		issues := TopIssues(feedbacks, 5)
		require.Len(t, issues, 2)
		assert.Equal(t, model.IssueCount{Issue: "bribery", Count: 3, Percentage: 75}, issues[0])
		assert.Equal(t, model.IssueCount{Issue: "slow service", Count: 1, Percentage: 25}, issues[1])
	})

	t.Run("missing label counts as unspecified", func(t *testing.T) {
		issues := TopIssues([]*model.Feedback{fbWithIssue(""), fbWithIssue("")}, 5)
		require.Len(t, issues, 1)
		assert.Equal(t, DefaultIssue, issues[0].Issue)
		assert.Equal(t, 100, issues[0].Percentage)
	})

	t.Run("ties keep first-seen order", func(t *testing.T) {
		feedbacks := []*model.Feedback{
			fbWithIssue("delays"),
			fbWithIssue("rudeness"),
			fbWithIssue("delays"),
			fbWithIssue("rudeness"),
		}
		issues := TopIssues(feedbacks, 5)
		require.Len(t, issues, 2)
		assert.Equal(t, "delays", issues[0].Issue)
		assert.Equal(t, "rudeness", issues[1].Issue)
	})

	t.Run("truncates to limit", func(t *testing.T) {
		feedbacks := []*model.Feedback{
			fbWithIssue("a"), fbWithIssue("b"), fbWithIssue("c"),
			fbWithIssue("d"), fbWithIssue("e"), fbWithIssue("f"),
		}
		assert.Len(t, TopIssues(feedbacks, 5), 5)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, TopIssues(nil, 5))
	})
}

func TestSummarize(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
	}

	feedbacks := []*model.Feedback{
		{
			CreatedAt: day(3),
			AIAnalysis: model.NewAnalysis(80, 20, 60, 40,
				model.SentimentNegative, "bribery", nil, 90),
		},
		{
			CreatedAt: day(1),
			// no analysis: defaults participate in the means
		},
		{
			CreatedAt:  day(2),
			AIAnalysis: &model.AIAnalysis{Sentiment: "mixed"},
		},
	}

	g := Summarize(feedbacks)
	assert.Equal(t, 3, g.Total)
	assert.InDelta(t, (80.0+0+0)/3, g.Avg.Corruption, 1e-9)
	assert.InDelta(t, (20.0+50+50)/3, g.Avg.Fairness, 1e-9)
	assert.InDelta(t, (60.0+0+0)/3, g.Avg.Nepotism, 1e-9)
	assert.InDelta(t, (40.0+50+50)/3, g.Avg.Service, 1e-9)

	// Unrecognized and missing sentiments are excluded everywhere.
	assert.Equal(t, model.SentimentTotals{Positive: 0, Negative: 1, Neutral: 0}, g.Sentiment)

	assert.Equal(t, day(1), g.Oldest)
	assert.Equal(t, day(3), g.Newest)
}

func TestSummarizeEmpty(t *testing.T) {
	g := Summarize(nil)
	assert.Equal(t, 0, g.Total)
	assert.Equal(t, ScoreSet{}, g.Avg)
}
