package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gongsa-dev/daylabor-ledger/backend/internal/domain"
)

func (r *Repository) CreateWorkLog(ctx context.Context, log *domain.WorkLog) error {
	query := `
		INSERT INTO work_logs (company_id, site_id, worker_id, author_id, work_date, description, effort, daily_rate, payment_status, attachment_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		log.CompanyID,
		log.SiteID,
		log.WorkerID,
		log.AuthorID,
		log.WorkDate,
		log.Description,
		log.Effort,
		log.DailyRate,
		log.PaymentStatus,
		log.AttachmentURL,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&log.ID, &log.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetWorkLogByID(ctx context.Context, companyID int64, id int64) (*domain.WorkLog, error) {
	query := `
		SELECT company_id, site_id, worker_id, author_id, work_date, description, effort, daily_rate, payment_status, payment_date, paid_by, attachment_url, created_at
		FROM work_logs
		WHERE id = $1 AND company_id = $2
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	log := &domain.WorkLog{
		ID: id,
	}

	dst := []any{
		&log.CompanyID,
		&log.SiteID,
		&log.WorkerID,
		&log.AuthorID,
		&log.WorkDate,
		&log.Description,
		&log.Effort,
		&log.DailyRate,
		&log.PaymentStatus,
		&log.PaymentDate,
		&log.PaidBy,
		&log.AttachmentURL,
		&log.CreatedAt,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id, companyID).Scan(dst...); err != nil {
		return nil, err
	}

	return log, nil
}

// UpdateWorkLogIfUnpaid 는 미지급 행에만 변경을 적용한다. 조건이 맞는 행이
// 없으면 sql.ErrNoRows 를 반환하므로, 지급 처리와의 경쟁에서도 수정이
// 끼어들 수 없다.
func (r *Repository) UpdateWorkLogIfUnpaid(ctx context.Context, log *domain.WorkLog) error {
	query := `
		UPDATE work_logs
		SET
			description = $1,
			effort = $2,
			work_date = $3
		WHERE id = $4 AND company_id = $5 AND payment_status = $6
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		log.Description,
		log.Effort,
		log.WorkDate,
		log.ID,
		log.CompanyID,
		domain.PaymentStatusUnpaid,
	}

	var id int64
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteWorkLogIfUnpaid(ctx context.Context, companyID int64, id int64) error {
	query := `
		DELETE FROM work_logs
		WHERE id = $1 AND company_id = $2 AND payment_status = $3
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var deleted int64
	if err := r.dbpool.QueryRowContext(ctx, query, id, companyID, domain.PaymentStatusUnpaid).Scan(&deleted); err != nil {
		return err
	}

	return nil
}

func (r *Repository) ListWorkLogs(ctx context.Context, companyID int64, filter domain.WorkLogFilter) ([]*domain.WorkLog, error) {
	query := `
		SELECT
			wl.id,
			wl.company_id,
			wl.site_id,
			wl.worker_id,
			wl.author_id,
			wl.work_date,
			wl.description,
			wl.effort,
			wl.daily_rate,
			wl.payment_status,
			wl.payment_date,
			wl.paid_by,
			wl.attachment_url,
			wl.created_at,
			s.name,
			w.name,
			a.name
		FROM work_logs wl
		JOIN sites s ON wl.site_id = s.id
		JOIN workers w ON wl.worker_id = w.id
		JOIN authors a ON wl.author_id = a.id
		WHERE wl.company_id = $1
	`

	args := []any{companyID}
	if filter.SiteID != nil {
		args = append(args, *filter.SiteID)
		query += fmt.Sprintf(" AND wl.site_id = $%d", len(args))
	}
	if filter.WorkerID != nil {
		args = append(args, *filter.WorkerID)
		query += fmt.Sprintf(" AND wl.worker_id = $%d", len(args))
	}
	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		query += fmt.Sprintf(" AND wl.author_id = $%d", len(args))
	}
	if filter.WorkDate != nil {
		args = append(args, *filter.WorkDate)
		query += fmt.Sprintf(" AND wl.work_date = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND wl.work_date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND wl.work_date <= $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND wl.payment_status = $%d", len(args))
	}

	query += " ORDER BY wl.work_date DESC, wl.id DESC"

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []*domain.WorkLog{}
	for rows.Next() {
		var log domain.WorkLog
		dst := []any{
			&log.ID,
			&log.CompanyID,
			&log.SiteID,
			&log.WorkerID,
			&log.AuthorID,
			&log.WorkDate,
			&log.Description,
			&log.Effort,
			&log.DailyRate,
			&log.PaymentStatus,
			&log.PaymentDate,
			&log.PaidBy,
			&log.AttachmentURL,
			&log.CreatedAt,
			&log.SiteName,
			&log.WorkerName,
			&log.AuthorName,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		logs = append(logs, &log)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}

// MarkWorkLogsPaid 는 단일 트랜잭션 안에서 대상 행을 잠근 뒤 일괄 갱신한다.
// 잠근 행의 수가 요청한 수와 다르면(누락, 다른 회사, 이미 지급완료) 아무 행도
// 바꾸지 않고 domain.ErrNotFound 를 반환한다.
func (r *Repository) MarkWorkLogsPaid(ctx context.Context, companyID int64, actorID int64, ids []int64, paymentDate time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	placeholders := make([]string, len(ids))
	lockArgs := []any{companyID, domain.PaymentStatusUnpaid}
	for i, id := range ids {
		lockArgs = append(lockArgs, id)
		placeholders[i] = fmt.Sprintf("$%d", len(lockArgs))
	}

	// 동시에 들어온 지급 요청이나 수정이 끼어들지 못하도록 행을 잠근다
	query := fmt.Sprintf(`
		SELECT id FROM work_logs
		WHERE company_id = $1 AND payment_status = $2 AND id IN (%s)
		FOR UPDATE
	`, strings.Join(placeholders, ", "))

	rows, err := tx.QueryContext(ctx, query, lockArgs...)
	if err != nil {
		return err
	}

	locked := 0
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		locked++
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	if locked != len(ids) {
		return domain.ErrNotFound
	}

	updateArgs := []any{domain.PaymentStatusPaid, paymentDate, actorID, companyID}
	for i, id := range ids {
		updateArgs = append(updateArgs, id)
		placeholders[i] = fmt.Sprintf("$%d", len(updateArgs))
	}

	query = fmt.Sprintf(`
		UPDATE work_logs
		SET
			payment_status = $1,
			payment_date = $2,
			paid_by = $3
		WHERE company_id = $4 AND id IN (%s)
	`, strings.Join(placeholders, ", "))

	if _, err := tx.ExecContext(ctx, query, updateArgs...); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) CountWorkLogsBySite(ctx context.Context, companyID int64, siteID int64) (int64, error) {
	query := `
		SELECT COUNT(*) FROM work_logs WHERE company_id = $1 AND site_id = $2
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var count int64
	if err := r.dbpool.QueryRowContext(ctx, query, companyID, siteID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
