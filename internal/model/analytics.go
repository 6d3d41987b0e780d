package model

import "time"

// InstitutionStats is one $group row over the feedback collection, with
// score defaults already applied by the pipeline's $ifNull.
type InstitutionStats struct {
	Name           string    `json:"name" bson:"_id"`
	TotalFeedbacks int       `json:"totalFeedbacks" bson:"totalFeedbacks"`
	AvgCorruption  float64   `json:"-" bson:"avgCorruption"`
	AvgFairness    float64   `json:"-" bson:"avgFairness"`
	AvgNepotism    float64   `json:"-" bson:"avgNepotism"`
	AvgService     float64   `json:"-" bson:"avgService"`
	PositiveCount  int       `json:"-" bson:"positiveCount"`
	NegativeCount  int       `json:"-" bson:"negativeCount"`
	NeutralCount   int       `json:"-" bson:"neutralCount"`
	LastUpdate     time.Time `json:"lastUpdate" bson:"lastUpdate"`
}

// InstitutionSummary is one processed row of the overview ranking.
// Recomputed on every request, never persisted.
type InstitutionSummary struct {
	Name            string    `json:"name"`
	TotalFeedbacks  int       `json:"totalFeedbacks"`
	IntegrityScore  int       `json:"integrityScore"`
	CorruptionLevel int       `json:"corruptionLevel"`
	FairnessLevel   int       `json:"fairnessLevel"`
	NepotismLevel   int       `json:"nepotismLevel"`
	ServiceQuality  int       `json:"serviceQuality"`
	PositiveRatio   int       `json:"positiveRatio"`
	NegativeRatio   int       `json:"negativeRatio"`
	NeutralRatio    int       `json:"neutralRatio"`
	LastUpdate      time.Time `json:"lastUpdate"`
}

// SentimentTotals counts feedback items per sentiment label. Items with a
// missing or unrecognized sentiment are excluded from all three counts.
type SentimentTotals struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// OverviewResponse is the GET /api/analytics/overview payload.
type OverviewResponse struct {
	TotalFeedbacks     int                  `json:"totalFeedbacks"`
	TotalInstitutions  int                  `json:"totalInstitutions"`
	AvgIntegrity       int                  `json:"avgIntegrity"`
	AlertsCount        int                  `json:"alertsCount"`
	RankedInstitutions []InstitutionSummary `json:"rankedInstitutions"`
	TopPerforming      []InstitutionSummary `json:"topPerforming"`
	NeedsAttention     []InstitutionSummary `json:"needsAttention"`
	SentimentData      SentimentTotals      `json:"sentimentData"`
}

// IssueCount is one ranked entry of an institution's issue frequency list.
type IssueCount struct {
	Issue      string `json:"issue"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// ScoreBreakdown holds the rounded per-dimension averages shown in reports.
type ScoreBreakdown struct {
	Corruption int `json:"corruption"`
	Fairness   int `json:"fairness"`
	Nepotism   int `json:"nepotism"`
	Service    int `json:"service"`
}

// DateRange brackets the oldest and newest feedback in a report.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// FeedbackExcerpt is a truncated feedback sample included in reports.
type FeedbackExcerpt struct {
	Text      string    `json:"text"`
	Sentiment string    `json:"sentiment"`
	Date      time.Time `json:"date"`
}

// InstitutionReport is the full per-institution admin report. Summary is
// only set for institutions with no recorded feedback.
type InstitutionReport struct {
	Institution      string            `json:"institution"`
	ReportDate       time.Time         `json:"reportDate"`
	Summary          string            `json:"summary,omitempty"`
	TotalFeedbacks   int               `json:"totalFeedbacks"`
	DateRange        *DateRange        `json:"dateRange,omitempty"`
	IntegrityScore   int               `json:"integrityScore"`
	RiskLevel        string            `json:"riskLevel,omitempty"`
	RiskColor        string            `json:"riskColor,omitempty"`
	Scores           *ScoreBreakdown   `json:"scores"`
	Sentiment        SentimentTotals   `json:"sentiment"`
	TopIssues        []IssueCount      `json:"topIssues,omitempty"`
	GeneratedSummary string            `json:"aiGeneratedSummary,omitempty"`
	RecentFeedbacks  []FeedbackExcerpt `json:"recentFeedbacks,omitempty"`
}

// PriorityInstitution is one row of the admin priority list.
type PriorityInstitution struct {
	Name           string    `json:"name"`
	TotalFeedbacks int       `json:"totalFeedbacks"`
	IntegrityScore int       `json:"integrityScore"`
	LastActivity   time.Time `json:"lastActivity"`
	Priority       string    `json:"priority"`
}

// PrioritySummary counts institutions per priority bucket.
type PrioritySummary struct {
	Total          int `json:"total"`
	HighPriority   int `json:"highPriority"`
	MediumPriority int `json:"mediumPriority"`
	LowPriority    int `json:"lowPriority"`
}

// PriorityListResponse is the GET /api/admin/institutions payload,
// ordered worst integrity first.
type PriorityListResponse struct {
	Institutions []PriorityInstitution `json:"institutions"`
	Summary      PrioritySummary       `json:"summary"`
}
