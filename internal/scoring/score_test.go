package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"redlight/internal/model"
)

func f64(v float64) *float64 { return &v }

func TestIntegrityScore(t *testing.T) {
	tests := []struct {
		name                                    string
		fairness, service, corruption, nepotism float64
		want                                    int
	}{
		{"neutral defaults", 50, 50, 0, 0, 50},
		{"best case clamps to 100", 100, 100, 0, 0, 100},
		{"worst case clamps to 0", 0, 0, 100, 100, 0},
		{"balanced", 80, 60, 40, 20, 90},
		{"penalties dominate", 20, 30, 90, 80, 0},
		{"half rounds away from zero", 51, 50, 50, 50, 51}, // 50.5 -> 51
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IntegrityScore(tt.fairness, tt.service, tt.corruption, tt.nepotism)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntegrityScoreBounded(t *testing.T) {
	for fairness := 0.0; fairness <= 100; fairness += 25 {
		for service := 0.0; service <= 100; service += 25 {
			for corruption := 0.0; corruption <= 100; corruption += 25 {
				for nepotism := 0.0; nepotism <= 100; nepotism += 25 {
					got := IntegrityScore(fairness, service, corruption, nepotism)
					assert.GreaterOrEqual(t, got, 0)
					assert.LessOrEqual(t, got, 100)
				}
			}
		}
	}
}

func TestNormalizeDefaults(t *testing.T) {
	t.Run("nil analysis", func(t *testing.T) {
		s := Normalize(nil)
		assert.Equal(t, ScoreSet{Corruption: 0, Fairness: 50, Nepotism: 0, Service: 50}, s)
		assert.Equal(t, 50, s.Integrity())
	})

	t.Run("partial analysis keeps present fields", func(t *testing.T) {
		s := Normalize(&model.AIAnalysis{
			CorruptionScore: f64(80),
			ServiceQuality:  f64(20),
		})
		assert.Equal(t, ScoreSet{Corruption: 80, Fairness: 50, Nepotism: 0, Service: 20}, s)
	})

	t.Run("no input clamping", func(t *testing.T) {
		s := Normalize(&model.AIAnalysis{FairnessScore: f64(250)})
		assert.Equal(t, 250.0, s.Fairness)
	})
}

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		name       string
		integrity  int
		corruption float64
		wantLevel  string
		wantColor  string
	}{
		{"score 20 very high", 20, 0, RiskVeryHigh, "#e74c3c"},
		{"score 40 high", 40, 0, RiskHigh, "#f39c12"},
		{"score 60 medium", 60, 0, RiskMedium, "#f39c12"},
		{"score 80 low", 80, 0, RiskLow, "#27ae60"},
		{"corruption over 70 overrides good score", 90, 75, RiskVeryHigh, "#e74c3c"},
		{"corruption over 50 overrides good score", 90, 55, RiskHigh, "#f39c12"},
		{"both very-high conditions", 25, 80, RiskVeryHigh, "#e74c3c"},
		{"boundary 30 is not very high", 30, 0, RiskHigh, "#f39c12"},
		{"boundary 70 is low", 70, 0, RiskLow, "#27ae60"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyRisk(tt.integrity, tt.corruption)
			assert.Equal(t, tt.wantLevel, got.Level)
			assert.Equal(t, tt.wantColor, got.Color)
		})
	}
}

func TestPriorityFor(t *testing.T) {
	assert.Equal(t, PriorityHigh, PriorityFor(25))
	assert.Equal(t, PriorityHigh, PriorityFor(39))
	assert.Equal(t, PriorityMedium, PriorityFor(40))
	assert.Equal(t, PriorityMedium, PriorityFor(69))
	assert.Equal(t, PriorityLow, PriorityFor(70))
}

func TestIsCritical(t *testing.T) {
	assert.True(t, IsCritical(25, 0, 0))
	assert.True(t, IsCritical(80, 75, 0))
	assert.True(t, IsCritical(80, 0, 75), "nepotism threshold is independent of the risk classifier")
	assert.False(t, IsCritical(30, 70, 70))
}
