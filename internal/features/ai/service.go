package ai

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/crisiswatch/api/internal/features/reports"
	"github.com/crisiswatch/api/internal/pkg/logger"
)

// analysisWindow is how far back a batch run looks for reports to score
const analysisWindow = 24 * time.Hour

// ReportSource supplies reports for an analysis pass
type ReportSource interface {
	ListSince(ctx context.Context, cutoff time.Time) ([]reports.Report, error)
}

// ScoreApplier persists a score through the lifecycle controller so the
// classifier re-runs and severity stays consistent with the score
type ScoreApplier interface {
	ApplyAIScore(ctx context.Context, id string, score float64) (*reports.Report, error)
}

// UpdateSink records the per-region outcome of an analysis pass
type UpdateSink interface {
	Create(ctx context.Context, update *Update) error
}

// Analyzer runs a batch scoring pass over recent reports, grouped by city
type Analyzer struct {
	source  ReportSource
	applier ScoreApplier
	updates UpdateSink
	scorer  Scorer
}

func NewAnalyzer(source ReportSource, applier ScoreApplier, updates UpdateSink, scorer Scorer) *Analyzer {
	return &Analyzer{
		source:  source,
		applier: applier,
		updates: updates,
		scorer:  scorer,
	}
}

// Run scores every report created inside the analysis window and records
// one Update per city. A failing report is skipped, not fatal: the rest
// of the batch still lands.
func (a *Analyzer) Run(ctx context.Context) (*AnalyzeResult, error) {
	cutoff := time.Now().UTC().Add(-analysisWindow)

	recent, err := a.source.ListSince(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	result := &AnalyzeResult{}
	if len(recent) == 0 {
		return result, nil
	}

	byCity := make(map[string][]reports.Report)
	for _, report := range recent {
		city := report.City
		if city == "" {
			city = "Unknown"
		}
		byCity[city] = append(byCity[city], report)
	}

	type scored struct {
		report reports.Report
		score  float64
	}

	for city, group := range byCity {
		var scoredGroup []scored
		for _, report := range group {
			score, err := a.scorer.Score(ctx, &report)
			if err != nil {
				logger.Warn("scoring report %s failed: %v", report.ID, err)
				result.ReportsSkipped++
				continue
			}

			if _, err := a.applier.ApplyAIScore(ctx, report.ID, score); err != nil {
				logger.Warn("applying score to report %s failed: %v", report.ID, err)
				result.ReportsSkipped++
				continue
			}

			result.ReportsScored++
			scoredGroup = append(scoredGroup, scored{report: report, score: score})
		}

		if len(scoredGroup) == 0 {
			continue
		}

		sort.Slice(scoredGroup, func(i, j int) bool {
			if scoredGroup[i].score != scoredGroup[j].score {
				return scoredGroup[i].score > scoredGroup[j].score
			}
			return scoredGroup[i].report.ID < scoredGroup[j].report.ID
		})

		var incidents []IncidentSummary
		for i, s := range scoredGroup {
			if i == 3 {
				break
			}
			tier, _ := reports.Classify(s.report.Severity, &s.score)
			incidents = append(incidents, IncidentSummary{
				ReportID: s.report.ID,
				Title:    s.report.Title,
				Severity: tier,
				Priority: i + 1,
			})
		}

		update := &Update{
			ID:           uuid.NewString(),
			Region:       "city",
			RegionName:   city,
			Summary:      fmt.Sprintf("Monitoring %d incidents in %s.", len(group), city),
			SeverityData: incidents,
			LastRunAt:    time.Now().UTC(),
		}

		if err := a.updates.Create(ctx, update); err != nil {
			logger.Error("recording analysis update for %s failed: %v", city, err)
			continue
		}

		result.UpdatesCreated++
		result.CitiesAnalyzed++
	}

	return result, nil
}
