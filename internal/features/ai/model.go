package ai

import (
	"time"

	"github.com/crisiswatch/api/internal/features/reports"
)

// Update is one recorded analysis pass over a region's recent reports
type Update struct {
	ID           string            `bson:"_id" json:"id"`
	Region       string            `bson:"region" json:"region" enums:"city,country,world"`
	RegionName   string            `bson:"regionName" json:"regionName" example:"Freetown"`
	Summary      string            `bson:"summary" json:"summary"`
	SeverityData []IncidentSummary `bson:"severityData" json:"severityData"`
	LastRunAt    time.Time         `bson:"lastRunAt" json:"lastRunAt"`
}

// IncidentSummary is one scored incident inside an Update
type IncidentSummary struct {
	ReportID string           `bson:"reportId" json:"reportId"`
	Title    string           `bson:"title" json:"title"`
	Severity reports.Severity `bson:"severity" json:"severity"`
	Priority int              `bson:"priority" json:"priority"`
}

// AnalyzeResult is the response of a batch analysis run
type AnalyzeResult struct {
	CitiesAnalyzed  int `json:"citiesAnalyzed"`
	ReportsScored   int `json:"reportsScored"`
	UpdatesCreated  int `json:"updatesCreated"`
	ReportsSkipped  int `json:"reportsSkipped"`
}
