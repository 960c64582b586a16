// Package moderation contains the pure review pipeline for submitted
// postings: prompt construction, tolerant verdict parsing, and the
// orchestrator that moves rows between the requests, jobs and trash tables
// based on the classifier's output. It is transport-agnostic and talks to
// storage and the model through narrow interfaces.
package moderation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avismic/wrkbl/internal/models"
)

// Store is the slice of the record store the orchestrator needs. Move must
// perform the insert-to-destination and delete-from-source for the whole id
// set inside one transaction; a partial move must never become visible.
type Store interface {
	FetchByIDs(ctx context.Context, table string, ids []string) ([]models.JobRecord, error)
	Move(ctx context.Context, source, dest string, ids []string) error
}

// Classifier sends one prompt to the text model and returns its raw output.
// It may fail; it never retries.
type Classifier interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Pipeline phases, used to locate a failure for the caller.
const (
	PhaseFetch  = "fetch"
	PhaseCommit = "commit"
)

var (
	// ErrNoIDs rejects an empty batch before any state transition.
	ErrNoIDs = errors.New("no ids supplied")
	// ErrNoRows means none of the requested ids exist in the source table.
	ErrNoRows = errors.New("ids not found in source table")
)

// PhaseError reports which phase, table and ids a storage failure touched,
// so the caller can retry the right half of a batch.
type PhaseError struct {
	Phase string
	Table string
	IDs   []string
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("moderation %s failed for %d row(s) in %s: %v", e.Phase, len(e.IDs), e.Table, e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }

// Result is the outcome of one batch review. Verdicts always covers every
// row that was actually classified; Degraded marks verdicts produced by the
// fallback path (classifier unreachable or output unparseable) so the admin
// UI can distinguish a model judgment from a system fault.
type Result struct {
	Verdicts     map[string]string `json:"verdicts"`
	Posted       []string          `json:"posted,omitempty"`
	MovedToTrash []string          `json:"movedToTrash,omitempty"`
	Degraded     bool              `json:"degraded,omitempty"`
}

// Orchestrator runs the review pipeline: fetch → prompt → classify → parse →
// commit. One instance is shared by all requests; it holds no per-batch
// state.
type Orchestrator struct {
	store      Store
	classifier Classifier
	timeout    time.Duration
	logger     *slog.Logger
}

func NewOrchestrator(store Store, classifier Classifier, timeout time.Duration, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{store: store, classifier: classifier, timeout: timeout, logger: logger}
}

// Moderate reviews a batch of ids sitting in source and moves them according
// to the verdicts:
//
//	requests: valid → jobs, spam → trash
//	trash:    valid → jobs, spam stays put
//	jobs:     spam → trash, valid stays put
//
// When the classifier fails or returns output the tolerant parser cannot
// recover, every fetched row falls back to "spam" — an unreviewable batch
// must not default to published. Rows whose id is missing from the parsed
// verdict map are left untouched in the source table.
//
// The valid and spam buckets commit in separate transactions; a storage
// failure in one bucket does not roll back the other. On such a failure the
// partial Result is returned alongside a *PhaseError.
func (o *Orchestrator) Moderate(ctx context.Context, ids []string, source string) (*Result, error) {
	if len(ids) == 0 {
		return nil, ErrNoIDs
	}
	dests, ok := destinations[source]
	if !ok {
		return nil, fmt.Errorf("unknown source table %q", source)
	}

	rows, err := o.store.FetchByIDs(ctx, source, ids)
	if err != nil {
		return nil, &PhaseError{Phase: PhaseFetch, Table: source, IDs: ids, Err: err}
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	verdicts, degraded := o.classify(ctx, rows, source)

	var validIDs, spamIDs []string
	for _, r := range rows {
		switch verdicts[r.ID] {
		case VerdictValid:
			validIDs = append(validIDs, r.ID)
		case VerdictSpam:
			spamIDs = append(spamIDs, r.ID)
		}
	}

	res := &Result{Verdicts: verdicts, Degraded: degraded}
	var commitErrs []error

	if dest := dests.valid; dest != "" && len(validIDs) > 0 {
		if err := o.store.Move(ctx, source, dest, validIDs); err != nil {
			commitErrs = append(commitErrs, &PhaseError{Phase: PhaseCommit, Table: dest, IDs: validIDs, Err: err})
		} else {
			res.Posted = validIDs
		}
	}
	if dest := dests.spam; dest != "" && len(spamIDs) > 0 {
		if err := o.store.Move(ctx, source, dest, spamIDs); err != nil {
			commitErrs = append(commitErrs, &PhaseError{Phase: PhaseCommit, Table: dest, IDs: spamIDs, Err: err})
		} else {
			res.MovedToTrash = spamIDs
		}
	}
	if len(commitErrs) > 0 {
		return res, errors.Join(commitErrs...)
	}
	return res, nil
}

// classify runs prompt → model → parse and returns the verdict map plus a
// degraded flag when the fallback path produced it.
func (o *Orchestrator) classify(ctx context.Context, rows []models.JobRecord, source string) (map[string]string, bool) {
	promptRows := make([]PromptRow, 0, len(rows))
	for _, r := range rows {
		promptRows = append(promptRows, PromptRow{
			ID:         r.ID,
			Title:      r.Title,
			Company:    r.Company,
			URL:        r.URL,
			SalaryLow:  r.SalaryLow,
			SalaryHigh: r.SalaryHigh,
		})
	}
	prompt := BuildPrompt(promptRows, source)

	cctx := ctx
	if o.timeout > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	raw, err := o.classifier.Generate(cctx, prompt)
	if err != nil {
		o.logger.Warn("classifier unavailable, falling back to spam", "source", source, "rows", len(rows), "err", err)
		return fallbackVerdicts(rows), true
	}
	verdicts := ParseVerdicts(raw)
	if verdicts == nil {
		o.logger.Warn("classifier output unparseable, falling back to spam", "source", source, "rows", len(rows))
		return fallbackVerdicts(rows), true
	}
	return verdicts, false
}

// fallbackVerdicts marks every fetched row as spam. The prompt biases the
// model toward "valid" when it is unsure, but a response the system cannot
// read is a fault, not a judgment, and must not publish anything.
func fallbackVerdicts(rows []models.JobRecord) map[string]string {
	verdicts := make(map[string]string, len(rows))
	for _, r := range rows {
		verdicts[r.ID] = VerdictSpam
	}
	return verdicts
}

// destinations maps a source table to where each verdict bucket goes; an
// empty destination means the bucket stays in place.
var destinations = map[string]struct{ valid, spam string }{
	models.TableRequests: {valid: models.TableJobs, spam: models.TableTrash},
	models.TableTrash:    {valid: models.TableJobs, spam: ""},
	models.TableJobs:     {valid: "", spam: models.TableTrash},
}
