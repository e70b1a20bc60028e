package dashboard

import (
	"time"

	"github.com/crisiswatch/api/internal/features/ai"
	"github.com/crisiswatch/api/internal/features/reports"
	"github.com/crisiswatch/api/internal/features/shelters"
)

// HomeScope declares what counts as "local" for a dashboard. City and
// country match by name; reports without locality fall back to
// proximity against the reference coordinate when one is set.
type HomeScope struct {
	City    string
	Country string
	Ref     *reports.Location
}

// Entry is the dashboard view of one report inside a severity bucket
type Entry struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	City      string             `json:"city,omitempty"`
	Country   string             `json:"country,omitempty"`
	Severity  reports.Severity   `json:"severity"`
	AutoFlag  bool               `json:"autoFlag"`
	Location  *reports.Location  `json:"location,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}

// ScopeData holds the three severity buckets for one scope
type ScopeData struct {
	Critical []Entry `json:"critical"`
	Moderate []Entry `json:"moderate"`
	Low      []Entry `json:"low"`
}

// Snapshot is the complete result of one aggregation call. Immutable
// once produced; pollers swap whole snapshots, never patch them.
type Snapshot struct {
	Reports      []reports.Report   `json:"reports"`
	Shelters     []shelters.Shelter `json:"shelters"`
	AIUpdates    []ai.Update        `json:"aiUpdates"`
	CityData     ScopeData          `json:"cityData"`
	WorldData    ScopeData          `json:"worldData"`
	LastAIUpdate *time.Time         `json:"lastAiUpdate"`
	GeneratedAt  time.Time          `json:"generatedAt"`
}
