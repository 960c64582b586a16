package dtos

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/avismic/wrkbl/internal/models"
)

// StringList accepts either a JSON array of strings or a single
// comma-delimited string. The CSV-import path sends the latter, the form the
// former; both collapse to the same list here so nothing past this boundary
// has to care.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if data[0] == '[' {
		var arr []string
		if err := json.Unmarshal(data, &arr); err != nil {
			return err
		}
		*l = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*l = models.SplitTags(s)
	return nil
}

// Truthy accepts a JSON boolean or the strings "true"/"false" (CSV cells
// arrive as strings). Anything else decodes to false.
type Truthy bool

func (t *Truthy) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*t = Truthy(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Truthy(strings.EqualFold(strings.TrimSpace(s), "true"))
		return nil
	}
	*t = false
	return nil
}

// FlexInt accepts a JSON number or a numeric string; malformed input decodes
// to zero instead of failing the whole payload.
type FlexInt int64

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexInt(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err == nil {
			*f = FlexInt(parsed)
			return nil
		}
	}
	*f = 0
	return nil
}

// SubmissionPayload is the permissive wire shape for a posted job or
// internship. It is the only place string-or-array and bool-or-string
// ambiguity is tolerated; intake.Normalize turns it into a models.JobRecord.
type SubmissionPayload struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Company         string     `json:"company"`
	City            string     `json:"city"`
	Country         string     `json:"country"`
	OfficeType      string     `json:"officeType"`
	ExperienceLevel string     `json:"experienceLevel"`
	EmploymentType  string     `json:"employmentType"`
	Industries      StringList `json:"industries"`
	Industry        string     `json:"industry"`
	Visa            Truthy     `json:"visa"`
	Benefits        StringList `json:"benefits"`
	Skills          StringList `json:"skills"`
	URL             string     `json:"url"`
	PostedAt        FlexInt    `json:"postedAt"`
	Remote          Truthy     `json:"remote"`
	Type            string     `json:"type"`
	SalaryLow       FlexInt    `json:"salaryLow"`
	SalaryHigh      FlexInt    `json:"salaryHigh"`
	Currency        string     `json:"currency"`
}

// JobView is the public listing shape: delimited columns expanded to lists,
// the stored type code expanded to "job"/"internship".
type JobView struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	City            string   `json:"city"`
	Country         string   `json:"country"`
	OfficeType      string   `json:"officeType"`
	ExperienceLevel string   `json:"experienceLevel"`
	EmploymentType  string   `json:"employmentType"`
	Industries      []string `json:"industries"`
	Visa            bool     `json:"visa"`
	Benefits        []string `json:"benefits"`
	Skills          []string `json:"skills"`
	URL             string   `json:"url"`
	PostedAt        int64    `json:"postedAt"`
	Remote          bool     `json:"remote"`
	Type            string   `json:"type"`
	SalaryLow       int      `json:"salaryLow"`
	SalaryHigh      int      `json:"salaryHigh"`
	Currency        string   `json:"currency"`
}

// ViewFromRecord converts a stored row to its API shape.
func ViewFromRecord(r models.JobRecord) JobView {
	return JobView{
		ID:              r.ID,
		Title:           r.Title,
		Company:         r.Company,
		City:            r.City,
		Country:         r.Country,
		OfficeType:      r.OfficeType,
		ExperienceLevel: r.ExperienceLevel,
		EmploymentType:  r.EmploymentType,
		Industries:      models.SplitTags(r.Industry),
		Visa:            r.Visa,
		Benefits:        models.SplitTags(r.Benefits),
		Skills:          models.SplitTags(r.Skills),
		URL:             r.URL,
		PostedAt:        r.PostedAt,
		Remote:          r.Remote,
		Type:            models.TypeLabel(r.Type),
		SalaryLow:       r.SalaryLow,
		SalaryHigh:      r.SalaryHigh,
		Currency:        r.Currency,
	}
}

// ViewsFromRecords maps a result set, never returning nil so the API always
// serializes an array.
func ViewsFromRecords(rows []models.JobRecord) []JobView {
	out := make([]JobView, 0, len(rows))
	for _, r := range rows {
		out = append(out, ViewFromRecord(r))
	}
	return out
}

// ReviewRequest is the body of the batched moderation endpoints.
type ReviewRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// ConsultationRequest is the consulting-intake form body.
type ConsultationRequest struct {
	Name    string `json:"name" binding:"required"`
	Company string `json:"company" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Message string `json:"message"`
}
