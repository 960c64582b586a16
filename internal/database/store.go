// Package database owns the relational store. The Store is constructed
// explicitly and injected; nothing in the codebase reaches for a package
// global connection.
package database

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/avismic/wrkbl/internal/models"
)

// Store wraps the pooled connection and exposes the table operations the
// services and the moderation orchestrator need. All mutating batch
// operations are transactional.
type Store struct {
	db *gorm.DB
}

// Open connects, migrates the four tables and returns a ready Store.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	for _, table := range []string{models.TableRequests, models.TableJobs, models.TableTrash} {
		if err := db.Table(table).AutoMigrate(&models.JobRecord{}); err != nil {
			return nil, fmt.Errorf("migrate %s: %w", table, err)
		}
	}
	if err := db.AutoMigrate(&models.Consultation{}); err != nil {
		return nil, fmt.Errorf("migrate consultations: %w", err)
	}
	// Published rows dedup on url; the pending and rejected tables accept
	// duplicates so a resubmission never bounces.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_jobs_url ON jobs (url)`).Error; err != nil {
		return nil, fmt.Errorf("index jobs.url: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// List returns every row in a lifecycle table, newest first.
func (s *Store) List(ctx context.Context, table string) ([]models.JobRecord, error) {
	var rows []models.JobRecord
	err := s.db.WithContext(ctx).Table(table).Order("posted_at DESC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	return rows, nil
}

// FetchByIDs returns the rows for the given ids; ids with no row are simply
// absent from the result.
func (s *Store) FetchByIDs(ctx context.Context, table string, ids []string) ([]models.JobRecord, error) {
	var rows []models.JobRecord
	err := s.db.WithContext(ctx).Table(table).Where("id IN ?", ids).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch from %s: %w", table, err)
	}
	return rows, nil
}

// FetchByID returns one row or gorm.ErrRecordNotFound.
func (s *Store) FetchByID(ctx context.Context, table, id string) (*models.JobRecord, error) {
	var row models.JobRecord
	err := s.db.WithContext(ctx).Table(table).Where("id = ?", id).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Move copies the rows for ids from source into dest and deletes them from
// source, all in one transaction. Either every row lands in dest and leaves
// source, or nothing changes. The conflict policy is keyed by destination:
// jobs upserts on url, trash keeps whatever is already there.
func (s *Store) Move(ctx context.Context, source, dest string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []models.JobRecord
		if err := tx.Table(source).Where("id IN ?", ids).Find(&rows).Error; err != nil {
			return fmt.Errorf("move: fetch from %s: %w", source, err)
		}
		if len(rows) > 0 {
			if err := tx.Table(dest).Clauses(conflictClause(dest)).Create(&rows).Error; err != nil {
				return fmt.Errorf("move: insert into %s: %w", dest, err)
			}
		}
		if err := tx.Table(source).Where("id IN ?", ids).Delete(&models.JobRecord{}).Error; err != nil {
			return fmt.Errorf("move: delete from %s: %w", source, err)
		}
		return nil
	})
}

// DeleteByIDs removes rows permanently.
func (s *Store) DeleteByIDs(ctx context.Context, table string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Table(table).Where("id IN ?", ids).Delete(&models.JobRecord{}).Error
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	return nil
}

// UpdateByID overwrites a row's mutable columns in place. The id itself is
// immutable.
func (s *Store) UpdateByID(ctx context.Context, table, id string, rec models.JobRecord) error {
	res := s.db.WithContext(ctx).Table(table).Where("id = ?", id).Updates(map[string]any{
		"title":            rec.Title,
		"company":          rec.Company,
		"city":             rec.City,
		"country":          rec.Country,
		"office_type":      rec.OfficeType,
		"experience_level": rec.ExperienceLevel,
		"employment_type":  rec.EmploymentType,
		"industry":         rec.Industry,
		"visa":             rec.Visa,
		"benefits":         rec.Benefits,
		"skills":           rec.Skills,
		"url":              rec.URL,
		"posted_at":        rec.PostedAt,
		"remote":           rec.Remote,
		"type":             rec.Type,
		"salary_low":       rec.SalaryLow,
		"salary_high":      rec.SalaryHigh,
		"currency":         rec.Currency,
	})
	if res.Error != nil {
		return fmt.Errorf("update %s: %w", table, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// InsertRequests appends submissions to the pending table.
func (s *Store) InsertRequests(ctx context.Context, rows []models.JobRecord) error {
	if len(rows) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Table(models.TableRequests).Create(&rows).Error; err != nil {
		return fmt.Errorf("insert requests: %w", err)
	}
	return nil
}

// UpsertJobs writes rows directly into the published table, updating in
// place when the url already exists.
func (s *Store) UpsertJobs(ctx context.Context, rows []models.JobRecord) error {
	if len(rows) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Table(models.TableJobs).
		Clauses(conflictClause(models.TableJobs)).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("upsert jobs: %w", err)
	}
	return nil
}

// CreateConsultation stores one consulting-intake submission.
func (s *Store) CreateConsultation(ctx context.Context, c *models.Consultation) error {
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("insert consultation: %w", err)
	}
	return nil
}

// ListConsultations returns every consulting submission, newest first.
func (s *Store) ListConsultations(ctx context.Context) ([]models.Consultation, error) {
	var rows []models.Consultation
	err := s.db.WithContext(ctx).Order("submitted_at DESC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list consultations: %w", err)
	}
	return rows, nil
}

func conflictClause(dest string) clause.Expression {
	if dest == models.TableJobs {
		return clause.OnConflict{
			Columns: []clause.Column{{Name: "url"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "company", "city", "country",
				"office_type", "experience_level", "employment_type",
				"industry", "visa", "benefits", "skills",
				"posted_at", "remote", "type",
				"salary_low", "salary_high", "currency",
			}),
		}
	}
	return clause.OnConflict{DoNothing: true}
}
