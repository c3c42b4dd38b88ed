package repository

import (
	"context"
	"time"

	"github.com/gongsa-dev/daylabor-ledger/backend/internal/domain"
)

func (r *Repository) CreateAuthor(ctx context.Context, author *domain.Author) error {
	query := `
		INSERT INTO authors (company_id, role, name, email, phone, password_hash, daily_rate, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		author.CompanyID,
		author.Role,
		author.Name,
		author.Email,
		author.Phone,
		author.PasswordHash,
		author.DailyRate,
		author.IsActive,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&author.ID, &author.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAuthorByID(ctx context.Context, id int64) (*domain.Author, error) {
	query := `
		SELECT company_id, role, name, email, phone, password_hash, daily_rate, is_active, created_at
		FROM authors
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	author := &domain.Author{
		ID: id,
	}

	dst := []any{
		&author.CompanyID,
		&author.Role,
		&author.Name,
		&author.Email,
		&author.Phone,
		&author.PasswordHash,
		&author.DailyRate,
		&author.IsActive,
		&author.CreatedAt,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return author, nil
}

// GetAuthorByLogin 은 이메일 또는 전화번호로 로그인 대상을 찾는다.
func (r *Repository) GetAuthorByLogin(ctx context.Context, login string) (*domain.Author, error) {
	query := `
		SELECT id, company_id, role, name, email, phone, password_hash, daily_rate, is_active, created_at
		FROM authors
		WHERE email = $1 OR phone = $1
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	author := &domain.Author{}

	dst := []any{
		&author.ID,
		&author.CompanyID,
		&author.Role,
		&author.Name,
		&author.Email,
		&author.Phone,
		&author.PasswordHash,
		&author.DailyRate,
		&author.IsActive,
		&author.CreatedAt,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, login).Scan(dst...); err != nil {
		return nil, err
	}

	return author, nil
}

func (r *Repository) GetAuthorByEmail(ctx context.Context, email string) (*domain.Author, error) {
	query := `
		SELECT id, company_id, role, name, email, phone, password_hash, daily_rate, is_active, created_at
		FROM authors
		WHERE email = $1
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	author := &domain.Author{}

	dst := []any{
		&author.ID,
		&author.CompanyID,
		&author.Role,
		&author.Name,
		&author.Email,
		&author.Phone,
		&author.PasswordHash,
		&author.DailyRate,
		&author.IsActive,
		&author.CreatedAt,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(dst...); err != nil {
		return nil, err
	}

	return author, nil
}

func (r *Repository) UpdateAuthorPassword(ctx context.Context, id int64, passwordHash string) error {
	query := `
		UPDATE authors
		SET password_hash = $1
		WHERE id = $2
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var updated int64
	if err := r.dbpool.QueryRowContext(ctx, query, passwordHash, id).Scan(&updated); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateAuthorPasswordByEmail(ctx context.Context, email string, passwordHash string) error {
	query := `
		UPDATE authors
		SET password_hash = $1
		WHERE email = $2
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var id int64
	if err := r.dbpool.QueryRowContext(ctx, query, passwordHash, email).Scan(&id); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateAuthorDailyRate(ctx context.Context, companyID int64, id int64, dailyRate int64) error {
	query := `
		UPDATE authors
		SET daily_rate = $1
		WHERE id = $2 AND company_id = $3
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var updated int64
	if err := r.dbpool.QueryRowContext(ctx, query, dailyRate, id, companyID).Scan(&updated); err != nil {
		return err
	}

	return nil
}

func (r *Repository) ListAuthorsByCompany(ctx context.Context, companyID int64) ([]*domain.Author, error) {
	query := `
		SELECT id, company_id, role, name, email, phone, password_hash, daily_rate, is_active, created_at
		FROM authors
		WHERE company_id = $1
		ORDER BY role ASC, name ASC, id ASC
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	authors := []*domain.Author{}
	for rows.Next() {
		var author domain.Author
		dst := []any{
			&author.ID,
			&author.CompanyID,
			&author.Role,
			&author.Name,
			&author.Email,
			&author.Phone,
			&author.PasswordHash,
			&author.DailyRate,
			&author.IsActive,
			&author.CreatedAt,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		authors = append(authors, &author)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return authors, nil
}
