package storage

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/yurykabanov/logrot/pkg/domain"
)

const (
	sweepInsertQuery = `
		INSERT INTO sweeps (
			interval, exec_status,
			files_checked, files_rotated, files_failed, compressor_jobs,
			started_at, finished_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	sweepUpdateQuery = `
		UPDATE sweeps SET
			interval = ?, exec_status = ?,
			files_checked = ?, files_rotated = ?, files_failed = ?, compressor_jobs = ?,
			started_at = ?, finished_at = ?
		WHERE id = ?
	`

	sweepSelectLatest = `
		SELECT
			s.id,
			s.interval, s.exec_status,
			s.files_checked, s.files_rotated, s.files_failed, s.compressor_jobs,
			s.started_at, s.finished_at
		FROM sweeps s
		WHERE s.id = (
			SELECT MAX(l.id) FROM sweeps l
			WHERE l.interval = s.interval AND l.finished_at IS NOT NULL
		)
		ORDER BY s.interval
	`
)

type SweepRepository struct {
	db *sqlx.DB
}

func NewSweepRepository(db *sqlx.DB) *SweepRepository {
	return &SweepRepository{
		db: db,
	}
}

func (r *SweepRepository) Create(ctx context.Context, sweep domain.Sweep) (domain.Sweep, error) {
	res, err := r.db.ExecContext(
		ctx,
		sweepInsertQuery,
		sweep.Interval, sweep.ExecStatus,
		sweep.FilesChecked, sweep.FilesRotated, sweep.FilesFailed, sweep.CompressorJobs,
		sweep.StartedAt, sweep.FinishedAt,
	)
	if err != nil {
		return sweep, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return sweep, err
	}

	sweep.Id = id

	return sweep, nil
}

func (r *SweepRepository) Update(ctx context.Context, sweep domain.Sweep) error {
	_, err := r.db.ExecContext(
		ctx,
		sweepUpdateQuery,
		sweep.Interval, sweep.ExecStatus,
		sweep.FilesChecked, sweep.FilesRotated, sweep.FilesFailed, sweep.CompressorJobs,
		sweep.StartedAt, sweep.FinishedAt,
		sweep.Id,
	)

	return err
}

// FindLatestFinished returns the most recent finished sweep of every interval.
func (r *SweepRepository) FindLatestFinished(ctx context.Context) ([]domain.Sweep, error) {
	var sweeps []domain.Sweep

	err := r.db.SelectContext(ctx, &sweeps, sweepSelectLatest)
	if err != nil {
		return nil, err
	}

	return sweeps, nil
}

// DiscardSweepRepository is used when no journal database is configured.
type DiscardSweepRepository struct {
}

func (DiscardSweepRepository) Create(ctx context.Context, sweep domain.Sweep) (domain.Sweep, error) {
	return sweep, nil
}

func (DiscardSweepRepository) Update(ctx context.Context, sweep domain.Sweep) error {
	return nil
}

func (DiscardSweepRepository) FindLatestFinished(ctx context.Context) ([]domain.Sweep, error) {
	return nil, nil
}
