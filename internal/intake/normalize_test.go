package intake_test

import (
	"testing"

	"github.com/avismic/wrkbl/internal/dtos"
	"github.com/avismic/wrkbl/internal/intake"
	"github.com/avismic/wrkbl/internal/models"
)

func samplePayload() dtos.SubmissionPayload {
	return dtos.SubmissionPayload{
		ID:              "a1",
		Title:           "Backend Engineer",
		Company:         "Acme",
		City:            "Berlin",
		Country:         "Germany",
		OfficeType:      "Hybrid",
		ExperienceLevel: "Senior",
		EmploymentType:  "Full-time",
		Industries:      dtos.StringList{"Tech", "SaaS"},
		Visa:            true,
		Benefits:        dtos.StringList{"Health", "Stock"},
		Skills:          dtos.StringList{"Go", "Postgres"},
		URL:             "https://acme.com/jobs/1",
		PostedAt:        1700000000000,
		Type:            "job",
		SalaryLow:       80000,
		SalaryHigh:      120000,
		Currency:        "€",
	}
}

// payloadFromRecord feeds a normalized record back through the permissive
// wire shape, the way an admin edit round-trips a stored row.
func payloadFromRecord(r models.JobRecord) dtos.SubmissionPayload {
	return dtos.SubmissionPayload{
		ID:              r.ID,
		Title:           r.Title,
		Company:         r.Company,
		City:            r.City,
		Country:         r.Country,
		OfficeType:      r.OfficeType,
		ExperienceLevel: r.ExperienceLevel,
		EmploymentType:  r.EmploymentType,
		Industries:      dtos.StringList(models.SplitTags(r.Industry)),
		Visa:            dtos.Truthy(r.Visa),
		Benefits:        dtos.StringList(models.SplitTags(r.Benefits)),
		Skills:          dtos.StringList(models.SplitTags(r.Skills)),
		URL:             r.URL,
		PostedAt:        dtos.FlexInt(r.PostedAt),
		Remote:          dtos.Truthy(r.Remote),
		Type:            models.TypeLabel(r.Type),
		SalaryLow:       dtos.FlexInt(r.SalaryLow),
		SalaryHigh:      dtos.FlexInt(r.SalaryHigh),
		Currency:        r.Currency,
	}
}

func TestNormalize_Basics(t *testing.T) {
	rec := intake.Normalize(samplePayload())

	if rec.ID != "a1" {
		t.Errorf("id = %q", rec.ID)
	}
	if rec.Industry != "Tech,SaaS" {
		t.Errorf("industry = %q, want joined string", rec.Industry)
	}
	if rec.Skills != "Go,Postgres" || rec.Benefits != "Health,Stock" {
		t.Errorf("skills = %q, benefits = %q", rec.Skills, rec.Benefits)
	}
	if !rec.Visa {
		t.Error("visa lost in normalization")
	}
	if rec.Type != models.TypeCodeJob {
		t.Errorf("type = %q, want %q", rec.Type, models.TypeCodeJob)
	}
	if rec.PostedAt != 1700000000000 {
		t.Errorf("postedAt = %d", rec.PostedAt)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	once := intake.Normalize(samplePayload())
	twice := intake.Normalize(payloadFromRecord(once))
	if once != twice {
		t.Errorf("normalization not idempotent:\n once = %+v\ntwice = %+v", once, twice)
	}
}

func TestNormalize_RemoteDerivedFromOfficeType(t *testing.T) {
	cases := []struct {
		officeType string
		caller     bool
		want       bool
	}{
		{"Remote", false, true},
		{"Remote-Anywhere", false, true},
		{"remote (EU only)", false, true},
		{"Hybrid", true, false},
		{"In-Office", true, false},
	}
	for _, c := range cases {
		p := samplePayload()
		p.OfficeType = c.officeType
		p.Remote = dtos.Truthy(c.caller)
		if got := intake.Normalize(p).Remote; got != c.want {
			t.Errorf("officeType %q (caller sent %v): remote = %v, want %v", c.officeType, c.caller, got, c.want)
		}
	}
}

func TestNormalize_InternForcesInternship(t *testing.T) {
	p := samplePayload()
	p.ExperienceLevel = "Intern"
	p.Type = "job"
	if got := intake.Normalize(p).Type; got != models.TypeCodeInternship {
		t.Errorf("type = %q, want internship code regardless of caller input", got)
	}
}

func TestNormalize_TypeCollapsing(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"job", models.TypeCodeJob},
		{"internship", models.TypeCodeInternship},
		{"i", models.TypeCodeInternship},
		{"j", models.TypeCodeJob},
		{"", models.TypeCodeJob},
		{"gibberish", models.TypeCodeJob},
	}
	for _, c := range cases {
		p := samplePayload()
		p.Type = c.in
		if got := intake.Normalize(p).Type; got != c.want {
			t.Errorf("Normalize type %q = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalize_MintsMissingID(t *testing.T) {
	p := samplePayload()
	p.ID = ""
	rec := intake.Normalize(p)
	if rec.ID == "" {
		t.Error("missing id not minted")
	}
}

func TestNormalize_PostedAtFallback(t *testing.T) {
	p := samplePayload()
	p.PostedAt = 0
	rec := intake.Normalize(p)
	if rec.PostedAt <= 0 {
		t.Errorf("postedAt = %d, want current time fallback", rec.PostedAt)
	}
}

func TestNormalize_DelimitedStringInput(t *testing.T) {
	// The CSV path sends already-delimited strings; StringList decoding
	// turns them into lists, so joining must land on the same column value.
	p := samplePayload()
	p.Industries = dtos.StringList(models.SplitTags("Tech, SaaS"))
	p.Skills = dtos.StringList(models.SplitTags("Go,Postgres"))
	rec := intake.Normalize(p)
	if rec.Industry != "Tech,SaaS" || rec.Skills != "Go,Postgres" {
		t.Errorf("industry = %q, skills = %q", rec.Industry, rec.Skills)
	}
}

func TestValidateForPublish(t *testing.T) {
	if err := intake.ValidateForPublish(intake.Normalize(samplePayload())); err != nil {
		t.Fatalf("complete record rejected: %v", err)
	}

	cases := []struct {
		field  string
		mutate func(*dtos.SubmissionPayload)
	}{
		{"title", func(p *dtos.SubmissionPayload) { p.Title = "  " }},
		{"company", func(p *dtos.SubmissionPayload) { p.Company = "" }},
		{"industries", func(p *dtos.SubmissionPayload) { p.Industries = nil; p.Industry = "" }},
		{"skills", func(p *dtos.SubmissionPayload) { p.Skills = nil }},
		{"url", func(p *dtos.SubmissionPayload) { p.URL = "" }},
	}
	for _, c := range cases {
		p := samplePayload()
		c.mutate(&p)
		err := intake.ValidateForPublish(intake.Normalize(p))
		ve, ok := err.(*intake.ValidationError)
		if !ok {
			t.Errorf("%s: error = %v, want ValidationError", c.field, err)
			continue
		}
		if ve.Field != c.field {
			t.Errorf("validation flagged %q, want %q", ve.Field, c.field)
		}
	}
}

// Incomplete submissions must still normalize: requests accepts them.
func TestNormalize_NeverRejects(t *testing.T) {
	rec := intake.Normalize(dtos.SubmissionPayload{})
	if rec.ID == "" {
		t.Error("empty payload got no id")
	}
	if rec.PostedAt <= 0 {
		t.Error("empty payload got no timestamp")
	}
	if err := intake.ValidateForPublish(rec); err == nil {
		t.Error("empty record should not validate for publish")
	}
}
