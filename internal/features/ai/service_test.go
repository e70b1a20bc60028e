package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/crisiswatch/api/internal/features/reports"
)

type fakeSource struct {
	reports []reports.Report
}

func (s *fakeSource) ListSince(ctx context.Context, cutoff time.Time) ([]reports.Report, error) {
	return s.reports, nil
}

type fakeApplier struct {
	applied map[string]float64
	fail    map[string]bool
}

func (a *fakeApplier) ApplyAIScore(ctx context.Context, id string, score float64) (*reports.Report, error) {
	if a.fail[id] {
		return nil, errors.New("boom")
	}
	if a.applied == nil {
		a.applied = make(map[string]float64)
	}
	a.applied[id] = score
	return &reports.Report{ID: id}, nil
}

type fakeSink struct {
	updates []*Update
}

func (s *fakeSink) Create(ctx context.Context, update *Update) error {
	s.updates = append(s.updates, update)
	return nil
}

func report(id, city, title, description string) reports.Report {
	return reports.Report{
		ID:          id,
		City:        city,
		Title:       title,
		Description: description,
		Severity:    reports.SeverityModerate,
		Status:      reports.StatusPending,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestAnalyzerScoresAndRecordsPerCity(t *testing.T) {
	source := &fakeSource{reports: []reports.Report{
		report("r1", "Freetown", "Building collapsed", "people trapped under rubble"),
		report("r2", "Freetown", "Road blocked", "fallen tree on main road"),
		report("r3", "Bo", "Market fire", "fire spreading through stalls"),
	}}
	applier := &fakeApplier{}
	sink := &fakeSink{}

	analyzer := NewAnalyzer(source, applier, sink, KeywordScorer{})
	result, err := analyzer.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 3, result.ReportsScored)
	require.Equal(t, 0, result.ReportsSkipped)
	require.Equal(t, 2, result.CitiesAnalyzed)
	require.Equal(t, 2, result.UpdatesCreated)
	require.Len(t, applier.applied, 3)

	for _, update := range sink.updates {
		require.Equal(t, "city", update.Region)
		require.NotEmpty(t, update.SeverityData)
		require.LessOrEqual(t, len(update.SeverityData), 3)
		require.Equal(t, 1, update.SeverityData[0].Priority)
	}
}

func TestAnalyzerSkipsFailedReports(t *testing.T) {
	source := &fakeSource{reports: []reports.Report{
		report("r1", "Freetown", "Flooded street", "water rising"),
		report("r2", "Freetown", "Power outage", "lines down"),
	}}
	applier := &fakeApplier{fail: map[string]bool{"r1": true}}
	sink := &fakeSink{}

	analyzer := NewAnalyzer(source, applier, sink, KeywordScorer{})
	result, err := analyzer.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, result.ReportsScored)
	require.Equal(t, 1, result.ReportsSkipped)
	require.Equal(t, 1, result.UpdatesCreated)
}

func TestAnalyzerEmptyWindow(t *testing.T) {
	analyzer := NewAnalyzer(&fakeSource{}, &fakeApplier{}, &fakeSink{}, KeywordScorer{})
	result, err := analyzer.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, result.ReportsScored)
	require.Equal(t, 0, result.UpdatesCreated)
}

func TestKeywordScorerDeterministic(t *testing.T) {
	r := report("r1", "Freetown", "Building collapsed", "people trapped")
	scorer := KeywordScorer{}

	s1, err := scorer.Score(context.Background(), &r)
	require.NoError(t, err)
	s2, err := scorer.Score(context.Background(), &r)
	require.NoError(t, err)

	require.Equal(t, s1, s2)
	require.GreaterOrEqual(t, s1, 0.0)
	require.LessOrEqual(t, s1, 1.0)

	// Severe language scores above a quiet report
	quiet := report("r2", "Bo", "Minor leak", "small water leak")
	sq, err := scorer.Score(context.Background(), &quiet)
	require.NoError(t, err)
	require.Greater(t, s1, sq)
}
