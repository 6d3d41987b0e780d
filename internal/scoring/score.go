package scoring

import (
	"math"

	"redlight/internal/model"
)

// Defaults substituted for absent analyzer scores. Corruption and nepotism
// default to their harmless end of the scale, fairness and service quality
// to the neutral midpoint, so an unanalyzed feedback scores exactly 50.
const (
	DefaultCorruption = 0
	DefaultFairness   = 50
	DefaultNepotism   = 0
	DefaultService    = 50
)

// ScoreSet is a fully-defaulted set of the four analyzer scores.
type ScoreSet struct {
	Corruption float64
	Fairness   float64
	Nepotism   float64
	Service    float64
}

// Normalize fills a possibly-partial analysis into a complete score set.
// Inputs are not clamped; the analyzer is trusted and only the composite
// integrity score is bounded.
func Normalize(a *model.AIAnalysis) ScoreSet {
	s := ScoreSet{
		Corruption: DefaultCorruption,
		Fairness:   DefaultFairness,
		Nepotism:   DefaultNepotism,
		Service:    DefaultService,
	}
	if a == nil {
		return s
	}
	if a.CorruptionScore != nil {
		s.Corruption = *a.CorruptionScore
	}
	if a.FairnessScore != nil {
		s.Fairness = *a.FairnessScore
	}
	if a.NepotismScore != nil {
		s.Nepotism = *a.NepotismScore
	}
	if a.ServiceQuality != nil {
		s.Service = *a.ServiceQuality
	}
	return s
}

// IntegrityScore maps the four scores to one composite 0-100 score:
//
//	round((fairness+service)/2 - (corruption+nepotism)/2 + 50), clamped
//
// Rounding is half-away-from-zero (math.Round) and happens before the
// clamp; risk tiers are threshold-sensitive at the boundaries, so the
// order matters.
func IntegrityScore(fairness, service, corruption, nepotism float64) int {
	raw := (fairness+service)/2 - (corruption+nepotism)/2 + 50
	return clamp(int(math.Round(raw)), 0, 100)
}

// Integrity scores the set via IntegrityScore.
func (s ScoreSet) Integrity() int {
	return IntegrityScore(s.Fairness, s.Service, s.Corruption, s.Nepotism)
}

// Risk is a discrete severity classification with its dashboard color.
type Risk struct {
	Level string `json:"level"`
	Color string `json:"color"`
}

// Risk tier labels.
const (
	RiskVeryHigh = "very high"
	RiskHigh     = "high"
	RiskMedium   = "medium"
	RiskLow      = "low"
)

// Severity colors used by the dashboard.
const (
	colorRed    = "#e74c3c"
	colorOrange = "#f39c12"
	colorGreen  = "#27ae60"
)

// ClassifyRisk maps an integrity score and a corruption score to a risk
// tier. Tiers overlap, so evaluation order is part of the contract:
// the first matching tier wins.
func ClassifyRisk(integrityScore int, corruptionScore float64) Risk {
	switch {
	case integrityScore < 30 || corruptionScore > 70:
		return Risk{Level: RiskVeryHigh, Color: colorRed}
	case integrityScore < 50 || corruptionScore > 50:
		return Risk{Level: RiskHigh, Color: colorOrange}
	case integrityScore < 70:
		return Risk{Level: RiskMedium, Color: colorOrange}
	default:
		return Risk{Level: RiskLow, Color: colorGreen}
	}
}

// Priority bucket labels for the admin list.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// PriorityFor buckets an institution for the admin priority list.
func PriorityFor(integrityScore int) string {
	switch {
	case integrityScore < 40:
		return PriorityHigh
	case integrityScore < 70:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// IsCritical reports whether an institution needs an alert. The nepotism
// threshold here is deliberately separate from ClassifyRisk, which does
// not look at nepotism at all.
func IsCritical(integrityScore int, avgCorruption, avgNepotism float64) bool {
	return integrityScore < 30 || avgCorruption > 70 || avgNepotism > 70
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
