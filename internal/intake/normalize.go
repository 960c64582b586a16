// Package intake is the single permissive boundary between the outside world
// and the fixed JobRecord shape. Everything downstream assumes rows have
// already been through Normalize.
package intake

import (
	"fmt"
	"strings"
	"time"

	"github.com/avismic/wrkbl/internal/dtos"
	"github.com/avismic/wrkbl/internal/models"
	"github.com/google/uuid"
)

// Normalize turns a permissive submission payload into a storable row:
//
//   - list fields join to comma-delimited strings (idempotent — a payload
//     that already carried delimited strings normalizes to itself);
//   - visa coerces to a real boolean;
//   - remote is recomputed from officeType, never trusted from the caller;
//   - type collapses to the one-character code, forced to internship when
//     experienceLevel is Intern;
//   - malformed numbers become 0 (postedAt: now) instead of failing;
//   - a missing id gets a freshly minted one.
//
// Normalize never rejects: incomplete rows are allowed to sit in requests.
// ValidateForPublish is the gate into jobs.
func Normalize(p dtos.SubmissionPayload) models.JobRecord {
	id := strings.TrimSpace(p.ID)
	if id == "" {
		id = uuid.NewString()
	}

	industry := models.JoinTags(p.Industries)
	if industry == "" {
		industry = models.JoinTags(models.SplitTags(p.Industry))
	}

	postedAt := int64(p.PostedAt)
	if postedAt <= 0 {
		postedAt = time.Now().UnixMilli()
	}

	expLevel := strings.TrimSpace(p.ExperienceLevel)
	typeCode := models.TypeCode(p.Type)
	if strings.EqualFold(expLevel, "Intern") {
		typeCode = models.TypeCodeInternship
	}

	currency := strings.TrimSpace(p.Currency)
	if currency == "" {
		currency = "$"
	}

	return models.JobRecord{
		ID:              id,
		Title:           strings.TrimSpace(p.Title),
		Company:         strings.TrimSpace(p.Company),
		City:            strings.TrimSpace(p.City),
		Country:         strings.TrimSpace(p.Country),
		OfficeType:      strings.TrimSpace(p.OfficeType),
		ExperienceLevel: expLevel,
		EmploymentType:  strings.TrimSpace(p.EmploymentType),
		Industry:        industry,
		Visa:            bool(p.Visa),
		Benefits:        models.JoinTags(p.Benefits),
		Skills:          models.JoinTags(p.Skills),
		URL:             strings.TrimSpace(p.URL),
		PostedAt:        postedAt,
		Remote:          models.IsRemote(p.OfficeType),
		Type:            typeCode,
		SalaryLow:       int(p.SalaryLow),
		SalaryHigh:      int(p.SalaryHigh),
		Currency:        currency,
	}
}

// ValidationError names the first missing required field.
type ValidationError struct {
	Field string
	ID    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("record %s: missing required field %s", e.ID, e.Field)
}

// ValidateForPublish enforces the fields a row must carry before it is
// written into the public jobs table. Requests and trash rows may be
// incomplete; published rows may not.
func ValidateForPublish(r models.JobRecord) error {
	switch {
	case strings.TrimSpace(r.Title) == "":
		return &ValidationError{Field: "title", ID: r.ID}
	case strings.TrimSpace(r.Company) == "":
		return &ValidationError{Field: "company", ID: r.ID}
	case len(models.SplitTags(r.Industry)) == 0:
		return &ValidationError{Field: "industries", ID: r.ID}
	case len(models.SplitTags(r.Skills)) == 0:
		return &ValidationError{Field: "skills", ID: r.ID}
	case strings.TrimSpace(r.URL) == "":
		return &ValidationError{Field: "url", ID: r.ID}
	case r.Type != models.TypeCodeJob && r.Type != models.TypeCodeInternship:
		return &ValidationError{Field: "type", ID: r.ID}
	}
	return nil
}
