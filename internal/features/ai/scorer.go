package ai

import (
	"context"
	"strings"

	"github.com/crisiswatch/api/internal/features/reports"
)

// Scorer produces a severity score in [0,1] for a report. The scoring
// model itself lives outside this service; this interface is the only
// coupling point.
type Scorer interface {
	Score(ctx context.Context, report *reports.Report) (float64, error)
}

// KeywordScorer is the built-in fallback scorer: a fixed keyword table
// over title and description. Deterministic, so repeated analysis runs
// produce identical scores for unchanged reports.
type KeywordScorer struct{}

var keywordWeights = map[string]float64{
	"explosion":  0.45,
	"collapse":   0.45,
	"collapsed":  0.45,
	"trapped":    0.4,
	"earthquake": 0.4,
	"fire":       0.35,
	"flood":      0.35,
	"flooded":    0.35,
	"landslide":  0.35,
	"injured":    0.3,
	"casualties": 0.3,
	"evacuate":   0.25,
	"blocked":    0.15,
	"outage":     0.1,
	"leak":       0.1,
}

func (KeywordScorer) Score(ctx context.Context, report *reports.Report) (float64, error) {
	text := strings.ToLower(report.Title + " " + report.Description)

	score := 0.2
	for keyword, weight := range keywordWeights {
		if strings.Contains(text, keyword) {
			score += weight
		}
	}

	if score > 1 {
		score = 1
	}
	return score, nil
}
