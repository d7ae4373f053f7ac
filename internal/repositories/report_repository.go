package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campusnet/backend/internal/apperrors"
	"github.com/campusnet/backend/internal/models"
)

// ReportRepository stores the moderation audit log. Records are append-only:
// there is no update or delete path, which is why they live outside the
// relational graph in MongoDB.
type ReportRepository interface {
	InsertReport(ctx context.Context, report *models.Report) error
	InsertSuggestedFeature(ctx context.Context, feature *models.SuggestedFeature) error
	GetReports(ctx context.Context, subject string, limit int64) ([]models.Report, error)
}

// MongoReportRepository implements ReportRepository over MongoDB
type MongoReportRepository struct {
	reports     *mongo.Collection
	suggestions *mongo.Collection
}

// NewMongoReportRepository creates a new MongoReportRepository
func NewMongoReportRepository(db *mongo.Database) *MongoReportRepository {
	return &MongoReportRepository{
		reports:     db.Collection("reports"),
		suggestions: db.Collection("suggested_features"),
	}
}

// InsertReport appends a moderation report.
func (r *MongoReportRepository) InsertReport(ctx context.Context, report *models.Report) error {
	report.CreatedAt = time.Now()
	if _, err := r.reports.InsertOne(ctx, report); err != nil {
		return apperrors.Wrap(apperrors.Internal, "failed to store report", err)
	}
	return nil
}

// InsertSuggestedFeature appends a feature suggestion.
func (r *MongoReportRepository) InsertSuggestedFeature(ctx context.Context, feature *models.SuggestedFeature) error {
	feature.CreatedAt = time.Now()
	if _, err := r.suggestions.InsertOne(ctx, feature); err != nil {
		return apperrors.Wrap(apperrors.Internal, "failed to store suggestion", err)
	}
	return nil
}

// GetReports returns recent reports for a subject kind, newest first.
func (r *MongoReportRepository) GetReports(ctx context.Context, subject string, limit int64) ([]models.Report, error) {
	opts := optionsFindNewest(limit)
	filter := bson.M{}
	if subject != "" {
		filter["subject"] = subject
	}
	cur, err := r.reports.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, "failed to read reports", err)
	}
	defer cur.Close(ctx)

	var reports []models.Report
	if err := cur.All(ctx, &reports); err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, "failed to decode reports", err)
	}
	return reports, nil
}
