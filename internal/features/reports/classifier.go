package reports

// AI score thresholds for tier mapping. A score at or above
// autoFlagThreshold also marks the report for priority handling.
const (
	criticalThreshold = 0.75
	moderateThreshold = 0.4
)

// Classify maps a report's declared severity and optional AI score to its
// effective tier and auto-flag. Without a score the declared severity
// stands and the flag is off. With a score, the score is authoritative.
// Pure function: same inputs always produce the same outputs.
func Classify(declared Severity, aiScore *float64) (Severity, bool) {
	if aiScore == nil {
		return declared, false
	}

	score := *aiScore
	switch {
	case score >= criticalThreshold:
		return SeverityCritical, true
	case score >= moderateThreshold:
		return SeverityModerate, false
	default:
		return SeverityLow, false
	}
}
