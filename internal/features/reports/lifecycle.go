package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/crisiswatch/api/internal/pkg/observability"
	errs "github.com/crisiswatch/api/pkg/errors"
)

// Store is the persistence boundary the lifecycle controller writes
// through. Status updates are conditional on the expected current status
// so that concurrent transitions on the same report serialize: the
// single-document update either matches or it doesn't.
type Store interface {
	Create(ctx context.Context, report *Report) error
	GetByID(ctx context.Context, id string) (*Report, error)
	UpdateStatus(ctx context.Context, id string, expected, next Status) (bool, error)
	UpdateAIFields(ctx context.Context, id string, score float64, severity Severity, autoFlag bool, analyzedAt time.Time) (bool, error)
}

// transitions is the single source of truth for the report state machine.
// Anything not listed here is rejected, no matter who asks.
var transitions = map[Status][]Status{
	StatusPending:   {StatusValidated, StatusRejected},
	StatusValidated: {StatusResolved},
}

// CanTransition reports whether the edge (from, to) exists in the state machine
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Lifecycle owns report creation and every status mutation. Handlers and
// the AI analysis worker go through it; nothing else writes reports.
type Lifecycle struct {
	store   Store
	metrics *observability.Metrics
}

func NewLifecycle(store Store, metrics *observability.Metrics) *Lifecycle {
	return &Lifecycle{store: store, metrics: metrics}
}

// Submit validates a draft, classifies it, and persists it in pending state.
func (l *Lifecycle) Submit(ctx context.Context, req *CreateReportRequest, submitterID string) (*Report, error) {
	if err := ValidateCreateReport(req); err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrValidation, err.Error())
	}

	severity := req.Severity
	if severity == "" {
		severity = SeverityModerate
	}

	// No AI score yet, so the declared severity stands
	tier, autoFlag := Classify(severity, nil)

	now := time.Now().UTC()
	report := &Report{
		ID:          uuid.NewString(),
		SubmitterID: submitterID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Address:     req.Address,
		City:        req.City,
		Country:     req.Country,
		ImageURL:    req.ImageURL,
		Severity:    tier,
		Status:      StatusPending,
		AIAutoFlag:  autoFlag,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := l.store.Create(ctx, report); err != nil {
		return nil, err
	}

	if l.metrics != nil {
		l.metrics.ReportsSubmitted.Inc()
	}
	return report, nil
}

// Transition moves a report along one of the allowed state machine edges.
// Only admins may transition. Exactly one of two concurrent transitions
// on the same report wins; the loser gets ErrInvalidTransition because
// the status it checked is stale by the time its update runs.
func (l *Lifecycle) Transition(ctx context.Context, id string, next Status, actorRole string) (*Report, error) {
	if actorRole != "admin" {
		l.countTransition("", next, "denied")
		return nil, errs.ErrForbidden
	}
	if !ValidStatus(next) {
		return nil, fmt.Errorf("%w: unknown status %q", errs.ErrValidation, next)
	}

	report, err := l.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, errs.ErrNotFound
	}

	current := report.Status
	if !CanTransition(current, next) {
		l.countTransition(current, next, "conflict")
		return nil, fmt.Errorf("%w: %s -> %s", errs.ErrInvalidTransition, current, next)
	}

	ok, err := l.store.UpdateStatus(ctx, id, current, next)
	if err != nil {
		return nil, err
	}
	if !ok {
		// The conditional update missed: either the report vanished or a
		// concurrent transition got there first. Re-read to tell them apart.
		latest, err := l.store.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if latest == nil {
			return nil, errs.ErrNotFound
		}
		l.countTransition(current, next, "conflict")
		return nil, fmt.Errorf("%w: status is now %s", errs.ErrInvalidTransition, latest.Status)
	}

	l.countTransition(current, next, "ok")

	report.Status = next
	report.UpdatedAt = time.Now().UTC()
	return report, nil
}

// ApplyAIScore records an AI severity score and re-runs the classifier.
// Status is untouched; only severity, the flag, and the score change.
func (l *Lifecycle) ApplyAIScore(ctx context.Context, id string, score float64) (*Report, error) {
	if score < 0 || score > 1 {
		return nil, fmt.Errorf("%w: score must be within [0,1]", errs.ErrValidation)
	}

	report, err := l.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, errs.ErrNotFound
	}

	tier, autoFlag := Classify(report.Severity, &score)
	analyzedAt := time.Now().UTC()

	ok, err := l.store.UpdateAIFields(ctx, id, score, tier, autoFlag, analyzedAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.ErrNotFound
	}

	if l.metrics != nil {
		l.metrics.AIScoresApplied.Inc()
	}

	report.AISeverityScore = &score
	report.Severity = tier
	report.AIAutoFlag = autoFlag
	report.AnalyzedAt = &analyzedAt
	report.UpdatedAt = analyzedAt
	return report, nil
}

func (l *Lifecycle) countTransition(from, to Status, outcome string) {
	if l.metrics == nil {
		return
	}
	l.metrics.Transitions.WithLabelValues(string(from), string(to), outcome).Inc()
}
