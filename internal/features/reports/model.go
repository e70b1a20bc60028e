// ================== internal/features/reports/model.go ==================
package reports

import "time"

// Severity is the effective tier used for dashboard bucketing
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityCritical Severity = "critical"
)

// Status governs report visibility and mutability
type Status string

const (
	StatusPending   Status = "pending"
	StatusValidated Status = "validated"
	StatusRejected  Status = "rejected"
	StatusResolved  Status = "resolved"
)

// Location is a resolved coordinate pair. A nil *Location means no
// location was recorded; {0,0} is a real coordinate, not a sentinel.
type Location struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Report represents a submitted incident report
type Report struct {
	ID              string     `bson:"_id" json:"id" example:"7f6f34c2-9d7e-4a89-b9a1-2f0f4a7d7c11"`
	SubmitterID     string     `bson:"submitterId" json:"submitterId"`
	Title           string     `bson:"title" json:"title" example:"Bridge collapsed"`
	Description     string     `bson:"description" json:"description"`
	Location        *Location  `bson:"location,omitempty" json:"location,omitempty"`
	Address         string     `bson:"address,omitempty" json:"address,omitempty"`
	City            string     `bson:"city,omitempty" json:"city,omitempty"`
	Country         string     `bson:"country,omitempty" json:"country,omitempty"`
	ImageURL        string     `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Severity        Severity   `bson:"severity" json:"severity" enums:"low,moderate,critical"`
	Status          Status     `bson:"status" json:"status" enums:"pending,validated,rejected,resolved"`
	AISeverityScore *float64   `bson:"aiSeverityScore,omitempty" json:"aiSeverityScore,omitempty"`
	AIAutoFlag      bool       `bson:"aiAutoFlag" json:"aiAutoFlag"`
	AnalyzedAt      *time.Time `bson:"analyzedAt,omitempty" json:"analyzedAt,omitempty"`
	CreatedAt       time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// Analyzed reports whether an AI severity score has been applied
func (r *Report) Analyzed() bool {
	return r.AISeverityScore != nil
}

// Active reports whether the report belongs in active dashboard views
func (r *Report) Active() bool {
	return r.Status == StatusPending || r.Status == StatusValidated
}

// CreateReportRequest represents report submission data
// @Description Data required to submit a new incident report
type CreateReportRequest struct {
	Title       string    `json:"title" binding:"required" example:"Bridge collapsed"`
	Description string    `json:"description" binding:"required"`
	Location    *Location `json:"location" binding:"required"`
	Address     string    `json:"address"`
	City        string    `json:"city" example:"Freetown"`
	Country     string    `json:"country" example:"Sierra Leone"`
	ImageURL    string    `json:"imageUrl"`
	Severity    Severity  `json:"severity" example:"moderate" enums:"low,moderate,critical"`
}

// UpdateStatusRequest represents an admin status transition
type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required" enums:"validated,rejected,resolved"`
}

// ApplyScoreRequest represents the AI analysis callback payload
type ApplyScoreRequest struct {
	Score float64 `json:"score" example:"0.82"`
}
