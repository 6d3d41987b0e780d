package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"redlight/internal/model"
)

// FeedbackRepo is the storage collaborator for feedback documents.
// Feedback is immutable after Create; there are no update or delete
// operations.
type FeedbackRepo interface {
	Create(ctx context.Context, feedback *model.Feedback) error
	FindByInstitution(ctx context.Context, name string) ([]*model.Feedback, error)
	GroupByInstitution(ctx context.Context) ([]model.InstitutionStats, error)
	Ping(ctx context.Context) error
}

type feedbackRepo struct {
	collection *mongo.Collection
}

func NewFeedbackRepo(db *mongo.Database) FeedbackRepo {
	return &feedbackRepo{collection: db.Collection("feedbacks")}
}

func (r *feedbackRepo) Create(ctx context.Context, feedback *model.Feedback) error {
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, feedback)
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		feedback.ID = oid
	}

	return nil
}

// FindByInstitution returns one institution's feedback, newest first.
// The grouping key is the exact institution name, case-sensitive.
func (r *feedbackRepo) FindByInstitution(ctx context.Context, name string) ([]*model.Feedback, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"institutionName": name}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var feedbacks []*model.Feedback
	if err = cursor.All(ctx, &feedbacks); err != nil {
		return nil, err
	}

	return feedbacks, nil
}

// GroupByInstitution runs the aggregation pipeline behind the overview and
// admin list. Absent scores take their documented defaults via $ifNull so
// they participate in the averages; only the three known sentiment labels
// are counted.
func (r *feedbackRepo) GroupByInstitution(ctx context.Context) ([]model.InstitutionStats, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":            "$institutionName",
			"totalFeedbacks": bson.M{"$sum": 1},
			"avgCorruption":  bson.M{"$avg": bson.M{"$ifNull": bson.A{"$aiAnalysis.corruption_score", 0}}},
			"avgFairness":    bson.M{"$avg": bson.M{"$ifNull": bson.A{"$aiAnalysis.fairness_score", 50}}},
			"avgNepotism":    bson.M{"$avg": bson.M{"$ifNull": bson.A{"$aiAnalysis.nepotism_score", 0}}},
			"avgService":     bson.M{"$avg": bson.M{"$ifNull": bson.A{"$aiAnalysis.service_quality", 50}}},
			"positiveCount":  sentimentSum(model.SentimentPositive),
			"negativeCount":  sentimentSum(model.SentimentNegative),
			"neutralCount":   sentimentSum(model.SentimentNeutral),
			"lastUpdate":     bson.M{"$max": "$createdAt"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stats []model.InstitutionStats
	if err = cursor.All(ctx, &stats); err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *feedbackRepo) Ping(ctx context.Context) error {
	return r.collection.Database().Client().Ping(ctx, nil)
}

func sentimentSum(label string) bson.M {
	return bson.M{"$sum": bson.M{"$cond": bson.A{
		bson.M{"$eq": bson.A{"$aiAnalysis.sentiment", label}},
		1,
		0,
	}}}
}
