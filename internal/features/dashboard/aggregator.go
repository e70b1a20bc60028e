package dashboard

import (
	"sort"
	"strings"
	"time"

	h3 "github.com/uber/h3-go/v4"

	"github.com/crisiswatch/api/internal/features/ai"
	"github.com/crisiswatch/api/internal/features/reports"
	"github.com/crisiswatch/api/internal/features/shelters"
)

// bucketLimit caps each severity bucket; the dashboard is a summary
// surface and the listing endpoint serves the full set.
const bucketLimit = 5

// localityResolution is the H3 resolution used for proximity matching.
// Resolution 4 cells are roughly metropolitan-area sized.
const localityResolution = 4

// BuildSnapshot partitions the active reports into local and global
// scopes, buckets each scope by effective severity, and passes shelters
// and AI updates through untouched. Pure over its inputs: no stored
// state is read or written here.
func BuildSnapshot(allReports []reports.Report, shelterList []shelters.Shelter, updates []ai.Update, scope HomeScope) *Snapshot {
	snapshot := &Snapshot{
		Reports:     allReports,
		Shelters:    shelterList,
		AIUpdates:   updates,
		GeneratedAt: time.Now().UTC(),
	}

	// The analysis timestamp tracks every scored report, including ones
	// that have since been resolved or rejected.
	var lastAI *time.Time
	for i := range allReports {
		r := &allReports[i]
		if r.Analyzed() && r.AnalyzedAt != nil {
			if lastAI == nil || r.AnalyzedAt.After(*lastAI) {
				t := *r.AnalyzedAt
				lastAI = &t
			}
		}
	}
	snapshot.LastAIUpdate = lastAI

	var active []reports.Report
	for _, r := range allReports {
		if r.Active() {
			active = append(active, r)
		}
	}

	// Newest first; ties broken by ID so two polls over the same data
	// render identically.
	sort.Slice(active, func(i, j int) bool {
		if !active[i].CreatedAt.Equal(active[j].CreatedAt) {
			return active[i].CreatedAt.After(active[j].CreatedAt)
		}
		return active[i].ID < active[j].ID
	})

	for i := range active {
		r := &active[i]

		entry := Entry{
			ID:        r.ID,
			Title:     r.Title,
			City:      r.City,
			Country:   r.Country,
			Severity:  r.Severity,
			AutoFlag:  r.AIAutoFlag,
			Location:  r.Location,
			CreatedAt: r.CreatedAt,
		}

		if isLocal(r, scope) {
			addToBucket(&snapshot.CityData, entry)
		} else {
			addToBucket(&snapshot.WorldData, entry)
		}
	}

	return snapshot
}

// isLocal decides scope membership: named locality first, coordinate
// proximity as the fallback for reports with no city or country.
func isLocal(r *reports.Report, scope HomeScope) bool {
	if r.City != "" && scope.City != "" {
		return strings.EqualFold(r.City, scope.City)
	}
	if r.Country != "" && scope.Country != "" {
		return strings.EqualFold(r.Country, scope.Country)
	}
	if r.Location != nil && scope.Ref != nil {
		return sameCell(*r.Location, *scope.Ref)
	}
	return false
}

// sameCell reports whether two coordinates fall into the same H3 cell
// at metro resolution.
func sameCell(a, b reports.Location) bool {
	cellA := h3.LatLngToCell(h3.NewLatLng(a.Lat, a.Lng), localityResolution)
	cellB := h3.LatLngToCell(h3.NewLatLng(b.Lat, b.Lng), localityResolution)
	return cellA == cellB
}

func addToBucket(data *ScopeData, entry Entry) {
	switch entry.Severity {
	case reports.SeverityCritical:
		if len(data.Critical) < bucketLimit {
			data.Critical = append(data.Critical, entry)
		}
	case reports.SeverityModerate:
		if len(data.Moderate) < bucketLimit {
			data.Moderate = append(data.Moderate, entry)
		}
	default:
		if len(data.Low) < bucketLimit {
			data.Low = append(data.Low, entry)
		}
	}
}
