package reports

import (
	"errors"
	"strings"

	"github.com/crisiswatch/api/internal/pkg/validator"
)

// ValidateCreateReport checks a submission draft before it reaches the
// lifecycle controller
func ValidateCreateReport(req *CreateReportRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return errors.New("title is required")
	}
	if len(req.Title) > 200 {
		return errors.New("title cannot exceed 200 characters")
	}
	if strings.TrimSpace(req.Description) == "" {
		return errors.New("description is required")
	}
	if len(req.Description) > 2000 {
		return errors.New("description cannot exceed 2000 characters")
	}
	if req.Location == nil {
		return errors.New("location is required")
	}
	if !validator.IsValidLatitude(req.Location.Lat) {
		return errors.New("latitude must be between -90 and 90")
	}
	if !validator.IsValidLongitude(req.Location.Lng) {
		return errors.New("longitude must be between -180 and 180")
	}
	if req.Severity != "" && !ValidSeverity(req.Severity) {
		return errors.New("severity must be one of: low, moderate, critical")
	}
	return nil
}

// ValidSeverity reports whether s is a known severity tier
func ValidSeverity(s Severity) bool {
	switch s {
	case SeverityLow, SeverityModerate, SeverityCritical:
		return true
	}
	return false
}

// ValidStatus reports whether s is a known report status
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusValidated, StatusRejected, StatusResolved:
		return true
	}
	return false
}
