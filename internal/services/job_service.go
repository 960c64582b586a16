package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/avismic/wrkbl/internal/database"
	"github.com/avismic/wrkbl/internal/dtos"
	"github.com/avismic/wrkbl/internal/intake"
	"github.com/avismic/wrkbl/internal/models"
)

// listingCacheKey holds the rendered public listing; it is dropped on every
// write that can touch the jobs table.
const listingCacheKey = "wrkbl:jobs:listing"

const listingCacheTTL = 60 * time.Second

// JobService composes the store and the optional listing cache for all
// posting CRUD: public listing reads, submission intake, admin edits, and
// the manual single-row publish/restore moves.
type JobService struct {
	store *database.Store
	cache *redis.Client
}

// NewJobService wires the service; cache may be nil, which disables caching.
func NewJobService(store *database.Store, cache *redis.Client) *JobService {
	return &JobService{store: store, cache: cache}
}

// ListJobs returns the public listing, served from Redis when warm.
func (s *JobService) ListJobs(ctx context.Context) ([]dtos.JobView, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, listingCacheKey).Bytes(); err == nil {
			var views []dtos.JobView
			if json.Unmarshal(cached, &views) == nil {
				return views, nil
			}
		}
	}

	rows, err := s.store.List(ctx, models.TableJobs)
	if err != nil {
		return nil, err
	}
	views := dtos.ViewsFromRecords(rows)

	if s.cache != nil {
		if payload, err := json.Marshal(views); err == nil {
			if err := s.cache.Set(ctx, listingCacheKey, payload, listingCacheTTL).Err(); err != nil {
				slog.Warn("listing cache set failed", "err", err)
			}
		}
	}
	return views, nil
}

// PublishJobs validates and upserts rows directly into the published table
// (admin add/edit and CSV import). Validation is enforced here and nowhere
// earlier: this is the gate into jobs.
func (s *JobService) PublishJobs(ctx context.Context, payloads []dtos.SubmissionPayload) (int, error) {
	rows := make([]models.JobRecord, 0, len(payloads))
	for _, p := range payloads {
		rec := intake.Normalize(p)
		if err := intake.ValidateForPublish(rec); err != nil {
			return 0, err
		}
		rows = append(rows, rec)
	}
	if err := s.store.UpsertJobs(ctx, rows); err != nil {
		return 0, err
	}
	s.InvalidateListing(ctx)
	return len(rows), nil
}

// SubmitRequests normalizes and stores incoming submissions. Incomplete
// rows are accepted; review happens later.
func (s *JobService) SubmitRequests(ctx context.Context, payloads []dtos.SubmissionPayload) ([]string, error) {
	rows := make([]models.JobRecord, 0, len(payloads))
	ids := make([]string, 0, len(payloads))
	for _, p := range payloads {
		rec := intake.Normalize(p)
		rows = append(rows, rec)
		ids = append(ids, rec.ID)
	}
	if err := s.store.InsertRequests(ctx, rows); err != nil {
		return nil, err
	}
	return ids, nil
}

// ListTable returns requests or trash rows for the admin console.
func (s *JobService) ListTable(ctx context.Context, table string) ([]dtos.JobView, error) {
	rows, err := s.store.List(ctx, table)
	if err != nil {
		return nil, err
	}
	return dtos.ViewsFromRecords(rows), nil
}

// UpdateRow re-normalizes an edited payload and writes it over the stored
// row. Used for admin edits of pending and trashed rows.
func (s *JobService) UpdateRow(ctx context.Context, table, id string, p dtos.SubmissionPayload) error {
	rec := intake.Normalize(p)
	return s.store.UpdateByID(ctx, table, id, rec)
}

// DeleteRow removes a row permanently.
func (s *JobService) DeleteRow(ctx context.Context, table, id string) error {
	if err := s.store.DeleteByIDs(ctx, table, []string{id}); err != nil {
		return err
	}
	if table == models.TableJobs {
		s.InvalidateListing(ctx)
	}
	return nil
}

// Publish moves one row from source (requests or trash) into jobs,
// validating it first. This is the manual admin override of the review
// pipeline; the move itself is the same transactional delete+insert.
func (s *JobService) Publish(ctx context.Context, source, id string) error {
	row, err := s.store.FetchByID(ctx, source, id)
	if err != nil {
		return err
	}
	if err := intake.ValidateForPublish(*row); err != nil {
		return err
	}
	if err := s.store.Move(ctx, source, models.TableJobs, []string{id}); err != nil {
		return err
	}
	s.InvalidateListing(ctx)
	return nil
}

// InvalidateListing drops the cached public listing. Safe to call with no
// cache configured.
func (s *JobService) InvalidateListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, listingCacheKey).Err(); err != nil && err != redis.Nil {
		slog.Warn("listing cache invalidation failed", "err", err)
	}
}
