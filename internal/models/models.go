package models

import (
	"strings"
	"time"
)

// The three lifecycle tables share one row shape. A posting lives in exactly
// one of them at any moment: submitted into requests, published into jobs,
// rejected into trash.
const (
	TableRequests = "requests"
	TableJobs     = "jobs"
	TableTrash    = "trash"
)

// Type codes persisted in the single-character type column.
const (
	TypeCodeJob        = "j"
	TypeCodeInternship = "i"
)

// JobRecord is one posting row. The same struct is mapped onto requests,
// jobs and trash via db.Table(...), so it carries no TableName method.
// List-valued fields (industry, benefits, skills) are stored as
// comma-delimited strings; the id is minted at submission time and never
// changes while the row moves between tables.
type JobRecord struct {
	ID              string `gorm:"primaryKey" json:"id"`
	Title           string `gorm:"not null" json:"title"`
	Company         string `gorm:"not null" json:"company"`
	City            string `json:"city"`
	Country         string `json:"country"`
	OfficeType      string `json:"officeType"`
	ExperienceLevel string `json:"experienceLevel"`
	EmploymentType  string `json:"employmentType"`
	Industry        string `json:"industry"`
	Visa            bool   `json:"visa"`
	Benefits        string `json:"benefits"`
	Skills          string `json:"skills"`
	URL             string `gorm:"column:url" json:"url"`
	PostedAt        int64  `json:"postedAt"`
	Remote          bool   `json:"remote"`
	Type            string `gorm:"type:varchar(1);default:'j'" json:"type"`
	SalaryLow       int    `json:"salaryLow"`
	SalaryHigh      int    `json:"salaryHigh"`
	Currency        string `gorm:"default:'$'" json:"currency"`
}

// Consultation is the consulting-intake form row (unrelated to the posting
// lifecycle; shown on the admin dashboard only).
type Consultation struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Company     string    `gorm:"not null" json:"company"`
	Email       string    `gorm:"not null" json:"email"`
	Message     string    `gorm:"type:text" json:"message"`
	SubmittedAt time.Time `gorm:"autoCreateTime" json:"submittedAt"`
}

// SplitTags turns a comma-delimited column value into a list, trimming each
// entry and dropping empties.
func SplitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// JoinTags is the inverse of SplitTags.
func JoinTags(tags []string) string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, ",")
}

// IsRemote reports whether an office-type label counts as remote work.
// The remote column is always derived from this, never set directly.
func IsRemote(officeType string) bool {
	return strings.Contains(strings.ToLower(officeType), "remote")
}

// TypeCode collapses a caller-supplied type label to the stored code.
func TypeCode(t string) string {
	if strings.EqualFold(strings.TrimSpace(t), "internship") || t == TypeCodeInternship {
		return TypeCodeInternship
	}
	return TypeCodeJob
}

// TypeLabel expands the stored code back to the API label.
func TypeLabel(code string) string {
	if code == TypeCodeInternship {
		return "internship"
	}
	return "job"
}
