package repository

import (
	"context"
	"time"

	"github.com/gongsa-dev/daylabor-ledger/backend/internal/domain"
)

func (r *Repository) CreateWorker(ctx context.Context, worker *domain.Worker) error {
	query := `
		INSERT INTO workers (company_id, created_by, name, rrn_encrypted, rrn_hash, rrn_masked, phone, daily_rate, remarks, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		worker.CompanyID,
		worker.CreatedBy,
		worker.Name,
		worker.RRNEncrypted,
		worker.RRNHash,
		worker.RRNMasked,
		worker.Phone,
		worker.DailyRate,
		worker.Remarks,
		worker.Status,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&worker.ID, &worker.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetWorkerByID(ctx context.Context, companyID int64, id int64) (*domain.Worker, error) {
	query := `
		SELECT company_id, created_by, name, rrn_encrypted, rrn_hash, rrn_masked, phone, daily_rate, remarks, status, resigned_at, created_at
		FROM workers
		WHERE id = $1 AND company_id = $2
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	worker := &domain.Worker{
		ID: id,
	}

	dst := []any{
		&worker.CompanyID,
		&worker.CreatedBy,
		&worker.Name,
		&worker.RRNEncrypted,
		&worker.RRNHash,
		&worker.RRNMasked,
		&worker.Phone,
		&worker.DailyRate,
		&worker.Remarks,
		&worker.Status,
		&worker.ResignedAt,
		&worker.CreatedAt,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id, companyID).Scan(dst...); err != nil {
		return nil, err
	}

	return worker, nil
}

func (r *Repository) UpdateWorker(ctx context.Context, worker *domain.Worker) error {
	query := `
		UPDATE workers
		SET
			name = $1,
			phone = $2,
			daily_rate = $3,
			remarks = $4
		WHERE id = $5 AND company_id = $6
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		worker.Name,
		worker.Phone,
		worker.DailyRate,
		worker.Remarks,
		worker.ID,
		worker.CompanyID,
	}

	var id int64
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return err
	}

	return nil
}

// ResignWorker 는 행을 지우지 않고 상태만 resigned 로 바꾼다. 과거 근무일지의
// 이력이 근로자 행을 참조하기 때문이다.
func (r *Repository) ResignWorker(ctx context.Context, companyID int64, id int64, resignedAt time.Time) error {
	query := `
		UPDATE workers
		SET
			status = $1,
			resigned_at = $2
		WHERE id = $3 AND company_id = $4 AND status = $5
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		domain.WorkerStatusResigned,
		resignedAt,
		id,
		companyID,
		domain.WorkerStatusActive,
	}

	var updated int64
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&updated); err != nil {
		return err
	}

	return nil
}

func (r *Repository) ListWorkersByAuthor(ctx context.Context, companyID int64, authorID int64) ([]*domain.Worker, error) {
	query := `
		SELECT id, company_id, created_by, name, rrn_encrypted, rrn_hash, rrn_masked, phone, daily_rate, remarks, status, resigned_at, created_at
		FROM workers
		WHERE company_id = $1 AND created_by = $2
		ORDER BY status ASC, name ASC, id ASC
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, companyID, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workers := []*domain.Worker{}
	for rows.Next() {
		var worker domain.Worker
		dst := []any{
			&worker.ID,
			&worker.CompanyID,
			&worker.CreatedBy,
			&worker.Name,
			&worker.RRNEncrypted,
			&worker.RRNHash,
			&worker.RRNMasked,
			&worker.Phone,
			&worker.DailyRate,
			&worker.Remarks,
			&worker.Status,
			&worker.ResignedAt,
			&worker.CreatedAt,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		workers = append(workers, &worker)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return workers, nil
}

func (r *Repository) ActiveWorkerExistsByHash(ctx context.Context, authorID int64, rrnHash string, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM workers
			WHERE created_by = $1 AND rrn_hash = $2 AND status = $3 AND id <> $4
		)
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var exists bool
	if err := r.dbpool.QueryRowContext(ctx, query, authorID, rrnHash, domain.WorkerStatusActive, excludeID).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}
