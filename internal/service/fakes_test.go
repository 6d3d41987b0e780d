package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"redlight/internal/model"
)

// fakeRepo is an in-memory FeedbackRepo for service tests.
type fakeRepo struct {
	created   []*model.Feedback
	feedbacks []*model.Feedback
	stats     []model.InstitutionStats
	createErr error
	queryErr  error
}

func (r *fakeRepo) Create(_ context.Context, feedback *model.Feedback) error {
	if r.createErr != nil {
		return r.createErr
	}
	feedback.ID = primitive.NewObjectID()
	r.created = append(r.created, feedback)
	return nil
}

func (r *fakeRepo) FindByInstitution(_ context.Context, name string) ([]*model.Feedback, error) {
	if r.queryErr != nil {
		return nil, r.queryErr
	}
	var out []*model.Feedback
	for _, f := range r.feedbacks {
		if f.InstitutionName == name {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeRepo) GroupByInstitution(_ context.Context) ([]model.InstitutionStats, error) {
	if r.queryErr != nil {
		return nil, r.queryErr
	}
	return r.stats, nil
}

func (r *fakeRepo) Ping(_ context.Context) error { return nil }

// fakeAnalyzer returns a canned analysis or error.
type fakeAnalyzer struct {
	result *model.AIAnalysis
	err    error
	calls  int
}

func (a *fakeAnalyzer) Analyze(_ context.Context, _, _ string) (*model.AIAnalysis, error) {
	a.calls++
	return a.result, a.err
}

var errAnalyzerDown = errors.New("analyzer unavailable")
