// Package exports keeps the audit ledger of CSV exports: who exported which
// domain, for which period and tab, how many rows, and where the file went.
package exports

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"adminhub/pkg/models"
)

const (
	DefaultLimit = 20
	MaxLimit     = 200
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// Record stores job, filling in its ID and CreatedAt when unset.
func (r *Repo) Record(ctx context.Context, job models.ExportJob) (models.ExportJob, error) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	if job.Tab == "" {
		job.Tab = "all"
	}

	var operatorID any
	if job.OperatorID != "" {
		operatorID = job.OperatorID
	}

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO export_jobs (id, operator_id, domain, period, tab, row_count, location, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, job.ID, operatorID, job.Domain, job.Period, job.Tab, job.Rows, job.Location, job.CreatedAt)
	if err != nil {
		return models.ExportJob{}, fmt.Errorf("record export: %w", err)
	}
	return job, nil
}

// ListRecent returns the newest jobs first. limit is clamped to 1..MaxLimit,
// with DefaultLimit for non-positive values.
func (r *Repo) ListRecent(ctx context.Context, limit int) ([]models.ExportJob, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, operator_id, domain, period, tab, row_count, location, created_at
		FROM export_jobs
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	defer rows.Close()

	out := make([]models.ExportJob, 0, limit)
	for rows.Next() {
		var (
			job        models.ExportJob
			operatorID sql.NullString
		)
		if err := rows.Scan(&job.ID, &operatorID, &job.Domain, &job.Period, &job.Tab, &job.Rows, &job.Location, &job.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan export: %w", err)
		}
		job.OperatorID = operatorID.String
		out = append(out, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	return out, nil
}
