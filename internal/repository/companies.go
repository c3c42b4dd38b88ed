package repository

import (
	"context"
	"time"

	"github.com/gongsa-dev/daylabor-ledger/backend/internal/domain"
)

// CreateCompanyWithManager 는 회사 행과 대표 관리자 행을 한 트랜잭션으로
// 만든다. 둘 중 하나라도 실패하면 전부 되돌린다.
func (r *Repository) CreateCompanyWithManager(ctx context.Context, company *domain.Company, manager *domain.Author) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	companyQuery := `
		INSERT INTO companies (name, invite_code)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	if err := tx.QueryRowContext(ctx, companyQuery, company.Name, company.InviteCode).Scan(&company.ID, &company.CreatedAt); err != nil {
		return err
	}

	manager.CompanyID = company.ID

	authorQuery := `
		INSERT INTO authors (company_id, role, name, email, phone, password_hash, daily_rate, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	args := []any{
		manager.CompanyID,
		manager.Role,
		manager.Name,
		manager.Email,
		manager.Phone,
		manager.PasswordHash,
		manager.DailyRate,
		manager.IsActive,
	}
	if err := tx.QueryRowContext(ctx, authorQuery, args...).Scan(&manager.ID, &manager.CreatedAt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetCompanyByID(ctx context.Context, id int64) (*domain.Company, error) {
	query := `
		SELECT name, invite_code, created_at
		FROM companies
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	company := &domain.Company{
		ID: id,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&company.Name, &company.InviteCode, &company.CreatedAt); err != nil {
		return nil, err
	}

	return company, nil
}

func (r *Repository) GetCompanyByInviteCode(ctx context.Context, inviteCode string) (*domain.Company, error) {
	query := `
		SELECT id, name, created_at
		FROM companies
		WHERE invite_code = $1
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	company := &domain.Company{
		InviteCode: inviteCode,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, inviteCode).Scan(&company.ID, &company.Name, &company.CreatedAt); err != nil {
		return nil, err
	}

	return company, nil
}
