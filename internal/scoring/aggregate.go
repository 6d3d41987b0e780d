package scoring

import (
	"math"
	"sort"
	"time"

	"redlight/internal/model"
)

// DefaultIssue is the label counted for feedback without a main issue.
const DefaultIssue = "unspecified"

// GroupStats aggregates one institution's feedback in memory. Averages
// are unrounded; score defaults participate in the means.
type GroupStats struct {
	Total     int
	Avg       ScoreSet
	Sentiment model.SentimentTotals
	Oldest    time.Time
	Newest    time.Time
}

// Summarize computes group statistics over one institution's feedback.
// A zero GroupStats is returned for an empty slice.
func Summarize(feedbacks []*model.Feedback) GroupStats {
	var g GroupStats
	if len(feedbacks) == 0 {
		return g
	}

	var sum ScoreSet
	for i, f := range feedbacks {
		s := Normalize(f.AIAnalysis)
		sum.Corruption += s.Corruption
		sum.Fairness += s.Fairness
		sum.Nepotism += s.Nepotism
		sum.Service += s.Service

		if f.AIAnalysis != nil {
			switch f.AIAnalysis.Sentiment {
			case model.SentimentPositive:
				g.Sentiment.Positive++
			case model.SentimentNegative:
				g.Sentiment.Negative++
			case model.SentimentNeutral:
				g.Sentiment.Neutral++
			}
		}

		if i == 0 || f.CreatedAt.Before(g.Oldest) {
			g.Oldest = f.CreatedAt
		}
		if f.CreatedAt.After(g.Newest) {
			g.Newest = f.CreatedAt
		}
	}

	n := float64(len(feedbacks))
	g.Total = len(feedbacks)
	g.Avg = ScoreSet{
		Corruption: sum.Corruption / n,
		Fairness:   sum.Fairness / n,
		Nepotism:   sum.Nepotism / n,
		Service:    sum.Service / n,
	}
	return g
}

// TopIssues counts main-issue labels across a feedback set and returns the
// limit most frequent, ties broken by first appearance. Percentage is of
// the whole set, rounded.
func TopIssues(feedbacks []*model.Feedback, limit int) []model.IssueCount {
	if len(feedbacks) == 0 {
		return nil
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, f := range feedbacks {
		issue := DefaultIssue
		if f.AIAnalysis != nil && f.AIAnalysis.MainIssue != "" {
			issue = f.AIAnalysis.MainIssue
		}
		if _, seen := counts[issue]; !seen {
			order = append(order, issue)
		}
		counts[issue]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}

	total := float64(len(feedbacks))
	issues := make([]model.IssueCount, 0, len(order))
	for _, issue := range order {
		issues = append(issues, model.IssueCount{
			Issue:      issue,
			Count:      counts[issue],
			Percentage: int(math.Round(float64(counts[issue]) / total * 100)),
		})
	}
	return issues
}

// Round is the display rounding used for averaged score levels.
func Round(v float64) int {
	return int(math.Round(v))
}
