package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report subjects
const (
	ReportSubjectUser    = "user"
	ReportSubjectPost    = "post"
	ReportSubjectComment = "comment"
	ReportSubjectProblem = "problem"
)

// Report is an immutable moderation audit record stored in MongoDB. There is
// no update path: once written, a report is only ever read by moderators.
type Report struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Subject      string             `json:"subject" bson:"subject"`               // user, post, comment, problem
	SubjectID    string             `json:"subject_id,omitempty" bson:"subject_id,omitempty"` // empty for problem reports
	ReportedByID string             `json:"reported_by_id" bson:"reported_by_id"`
	Reason       string             `json:"reason" bson:"reason"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}

// SuggestedFeature is an immutable feature suggestion, stored alongside
// reports in MongoDB.
type SuggestedFeature struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Feature       string             `json:"feature" bson:"feature"`
	SuggestedByID string             `json:"suggested_by_id" bson:"suggested_by_id"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
}

// CreateReportRequest defines the request body for reporting a user, post or
// comment. The subject ID comes from the URL, the reporter from the session.
type CreateReportRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=512"`
}

// CreateProblemReportRequest defines the request body for reporting a problem
// with the platform itself.
type CreateProblemReportRequest struct {
	Problem string `json:"problem" validate:"required,min=1,max=512"`
}

// SuggestFeatureRequest defines the request body for suggesting a feature.
type SuggestFeatureRequest struct {
	Feature string `json:"feature" validate:"required,min=1,max=512"`
}
