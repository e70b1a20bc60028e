package reports

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	errs "github.com/crisiswatch/api/pkg/errors"
)

// memStore is an in-memory Store with the same conditional-update
// semantics as the Mongo repository.
type memStore struct {
	mu      sync.Mutex
	reports map[string]*Report
}

func newMemStore() *memStore {
	return &memStore{reports: make(map[string]*Report)}
}

func (s *memStore) Create(ctx context.Context, report *Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *report
	s.reports[report.ID] = &cp
	return nil
}

func (s *memStore) GetByID(ctx context.Context, id string) (*Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (s *memStore) UpdateStatus(ctx context.Context, id string, expected, next Status) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	if !ok || r.Status != expected {
		return false, nil
	}
	r.Status = next
	r.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (s *memStore) UpdateAIFields(ctx context.Context, id string, score float64, severity Severity, autoFlag bool, analyzedAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	if !ok {
		return false, nil
	}
	r.AISeverityScore = &score
	r.Severity = severity
	r.AIAutoFlag = autoFlag
	r.AnalyzedAt = &analyzedAt
	r.UpdatedAt = analyzedAt
	return true, nil
}

func validDraft() *CreateReportRequest {
	return &CreateReportRequest{
		Title:       "Flooded underpass",
		Description: "Water level rising near the market road",
		Location:    &Location{Lat: 8.484, Lng: -13.234},
		City:        "Freetown",
		Country:     "Sierra Leone",
		Severity:    SeverityLow,
	}
}

func TestSubmitValidDraft(t *testing.T) {
	lc := NewLifecycle(newMemStore(), nil)

	report, err := lc.Submit(context.Background(), validDraft(), "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, report.ID)
	require.Equal(t, StatusPending, report.Status)
	require.Equal(t, SeverityLow, report.Severity)
	require.False(t, report.AIAutoFlag)
	require.Nil(t, report.AISeverityScore)
	require.Equal(t, "user-1", report.SubmitterID)
	require.False(t, report.CreatedAt.IsZero())
}

func TestSubmitDefaultsSeverity(t *testing.T) {
	draft := validDraft()
	draft.Severity = ""

	lc := NewLifecycle(newMemStore(), nil)
	report, err := lc.Submit(context.Background(), draft, "user-1")
	require.NoError(t, err)
	require.Equal(t, SeverityModerate, report.Severity)
}

func TestSubmitRejectsInvalidDrafts(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateReportRequest)
	}{
		{"empty title", func(r *CreateReportRequest) { r.Title = " " }},
		{"empty description", func(r *CreateReportRequest) { r.Description = "" }},
		{"missing location", func(r *CreateReportRequest) { r.Location = nil }},
		{"bad latitude", func(r *CreateReportRequest) { r.Location.Lat = 123 }},
		{"bad severity", func(r *CreateReportRequest) { r.Severity = "urgent" }},
	}

	lc := NewLifecycle(newMemStore(), nil)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := validDraft()
			tc.mutate(draft)
			_, err := lc.Submit(context.Background(), draft, "user-1")
			require.ErrorIs(t, err, errs.ErrValidation)
		})
	}
}

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusValidated, true},
		{StatusPending, StatusRejected, true},
		{StatusValidated, StatusResolved, true},
		{StatusPending, StatusResolved, false},
		{StatusValidated, StatusRejected, false},
		{StatusValidated, StatusPending, false},
		{StatusRejected, StatusValidated, false},
		{StatusRejected, StatusResolved, false},
		{StatusResolved, StatusPending, false},
		{StatusResolved, StatusValidated, false},
	}

	for _, tc := range cases {
		require.Equal(t, tc.allowed, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTransitionRequiresAdmin(t *testing.T) {
	store := newMemStore()
	lc := NewLifecycle(store, nil)

	report, err := lc.Submit(context.Background(), validDraft(), "user-1")
	require.NoError(t, err)

	_, err = lc.Transition(context.Background(), report.ID, StatusValidated, "user")
	require.ErrorIs(t, err, errs.ErrForbidden)

	// Status untouched
	stored, err := store.GetByID(context.Background(), report.ID)
	require.NoError(t, err)
	require.Equal(t, StatusPending, stored.Status)
}

func TestTransitionUnknownReport(t *testing.T) {
	lc := NewLifecycle(newMemStore(), nil)

	_, err := lc.Transition(context.Background(), "nope", StatusValidated, "admin")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestTransitionInvalidEdge(t *testing.T) {
	store := newMemStore()
	lc := NewLifecycle(store, nil)

	report, err := lc.Submit(context.Background(), validDraft(), "user-1")
	require.NoError(t, err)

	_, err = lc.Transition(context.Background(), report.ID, StatusResolved, "admin")
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestTransitionFullPath(t *testing.T) {
	store := newMemStore()
	lc := NewLifecycle(store, nil)

	report, err := lc.Submit(context.Background(), validDraft(), "user-1")
	require.NoError(t, err)

	updated, err := lc.Transition(context.Background(), report.ID, StatusValidated, "admin")
	require.NoError(t, err)
	require.Equal(t, StatusValidated, updated.Status)

	updated, err = lc.Transition(context.Background(), report.ID, StatusResolved, "admin")
	require.NoError(t, err)
	require.Equal(t, StatusResolved, updated.Status)

	// Resolved is terminal
	_, err = lc.Transition(context.Background(), report.ID, StatusValidated, "admin")
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestConcurrentTransitionsExactlyOneWinner(t *testing.T) {
	store := newMemStore()
	lc := NewLifecycle(store, nil)

	report, err := lc.Submit(context.Background(), validDraft(), "user-1")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errCh := make(chan error, 2)
	start := make(chan struct{})

	for _, next := range []Status{StatusValidated, StatusRejected} {
		wg.Add(1)
		go func(next Status) {
			defer wg.Done()
			<-start
			_, err := lc.Transition(context.Background(), report.ID, next, "admin")
			errCh <- err
		}(next)
	}

	close(start)
	wg.Wait()
	close(errCh)

	var wins, losses int
	for err := range errCh {
		if err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, errs.ErrInvalidTransition)
			losses++
		}
	}
	require.Equal(t, 1, wins)
	require.Equal(t, 1, losses)

	final, err := store.GetByID(context.Background(), report.ID)
	require.NoError(t, err)
	require.Contains(t, []Status{StatusValidated, StatusRejected}, final.Status)
}

func TestApplyAIScorePromotesReport(t *testing.T) {
	store := newMemStore()
	lc := NewLifecycle(store, nil)

	report, err := lc.Submit(context.Background(), validDraft(), "user-1")
	require.NoError(t, err)
	require.Equal(t, SeverityLow, report.Severity)

	updated, err := lc.ApplyAIScore(context.Background(), report.ID, 0.8)
	require.NoError(t, err)
	require.Equal(t, SeverityCritical, updated.Severity)
	require.True(t, updated.AIAutoFlag)
	require.NotNil(t, updated.AISeverityScore)
	require.Equal(t, 0.8, *updated.AISeverityScore)
	require.NotNil(t, updated.AnalyzedAt)

	// Status is not part of the AI update
	require.Equal(t, StatusPending, updated.Status)
}

func TestApplyAIScoreOutOfRange(t *testing.T) {
	lc := NewLifecycle(newMemStore(), nil)

	_, err := lc.ApplyAIScore(context.Background(), "any", 1.2)
	require.ErrorIs(t, err, errs.ErrValidation)

	_, err = lc.ApplyAIScore(context.Background(), "any", -0.1)
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestApplyAIScoreUnknownReport(t *testing.T) {
	lc := NewLifecycle(newMemStore(), nil)

	_, err := lc.ApplyAIScore(context.Background(), "missing", 0.5)
	require.ErrorIs(t, err, errs.ErrNotFound)
}
