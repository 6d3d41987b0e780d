package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sentiment labels the analyzer attaches to a feedback item.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// AIAnalysis is the structured integrity assessment for one feedback item.
// Scores are nominally 0-100 but stored exactly as the analyzer returned
// them. The four score fields are pointers so that documents written before
// a field existed still decode as "absent" rather than as zero.
type AIAnalysis struct {
	CorruptionScore *float64 `json:"corruption_score,omitempty" bson:"corruption_score,omitempty"`
	FairnessScore   *float64 `json:"fairness_score,omitempty" bson:"fairness_score,omitempty"`
	NepotismScore   *float64 `json:"nepotism_score,omitempty" bson:"nepotism_score,omitempty"`
	ServiceQuality  *float64 `json:"service_quality,omitempty" bson:"service_quality,omitempty"`
	Sentiment       string   `json:"sentiment,omitempty" bson:"sentiment,omitempty"`
	MainIssue       string   `json:"main_issue,omitempty" bson:"main_issue,omitempty"`
	Keywords        []string `json:"keywords" bson:"keywords"`
	Confidence      float64  `json:"confidence" bson:"confidence"`
}

// NewAnalysis builds a fully-populated analysis record.
func NewAnalysis(corruption, fairness, nepotism, service float64, sentiment, mainIssue string, keywords []string, confidence float64) *AIAnalysis {
	if keywords == nil {
		keywords = []string{}
	}
	return &AIAnalysis{
		CorruptionScore: &corruption,
		FairnessScore:   &fairness,
		NepotismScore:   &nepotism,
		ServiceQuality:  &service,
		Sentiment:       sentiment,
		MainIssue:       mainIssue,
		Keywords:        keywords,
		Confidence:      confidence,
	}
}

// Feedback is one citizen submission. Immutable after creation.
type Feedback struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	InstitutionName string             `json:"institutionName" bson:"institutionName"`
	Timestamp       time.Time          `json:"timestamp" bson:"timestamp"`
	Text            string             `json:"text" bson:"text"`
	AIAnalysis      *AIAnalysis        `json:"aiAnalysis,omitempty" bson:"aiAnalysis,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
}

// SubmitFeedbackRequest is the POST /api/feedback body.
type SubmitFeedbackRequest struct {
	InstitutionName string     `json:"institutionName"`
	Timestamp       *time.Time `json:"timestamp"`
	Text            string     `json:"text"`
}

// SubmitFeedbackResponse is returned after a successful ingestion.
type SubmitFeedbackResponse struct {
	Success        bool        `json:"success"`
	ID             string      `json:"id"`
	Analysis       *AIAnalysis `json:"analysis"`
	IntegrityScore int         `json:"integrityScore"`
	Message        string      `json:"message"`
}

// HealthResponse is the liveness probe payload.
type HealthResponse struct {
	OK               bool      `json:"ok"`
	Timestamp        time.Time `json:"timestamp"`
	AIEnabled        bool      `json:"aiEnabled"`
	StorageConnected bool      `json:"storageConnected"`
}
