package repository

import (
	"context"
	"time"

	"github.com/gongsa-dev/daylabor-ledger/backend/internal/domain"
)

func (r *Repository) CreateSite(ctx context.Context, site *domain.Site) error {
	query := `
		INSERT INTO sites (company_id, manager_id, name, address, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		site.CompanyID,
		site.ManagerID,
		site.Name,
		site.Address,
		site.Status,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&site.ID, &site.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetSiteByID(ctx context.Context, companyID int64, id int64) (*domain.Site, error) {
	query := `
		SELECT company_id, manager_id, name, address, status, created_at
		FROM sites
		WHERE id = $1 AND company_id = $2
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	site := &domain.Site{
		ID: id,
	}

	dst := []any{
		&site.CompanyID,
		&site.ManagerID,
		&site.Name,
		&site.Address,
		&site.Status,
		&site.CreatedAt,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id, companyID).Scan(dst...); err != nil {
		return nil, err
	}

	foremanQuery := `
		SELECT author_id FROM site_foremen WHERE site_id = $1 ORDER BY author_id ASC
	`

	rows, err := r.dbpool.QueryContext(ctx, foremanQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	site.ForemanIDs = []int64{}
	for rows.Next() {
		var authorID int64
		if err := rows.Scan(&authorID); err != nil {
			return nil, err
		}
		site.ForemanIDs = append(site.ForemanIDs, authorID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return site, nil
}

func (r *Repository) UpdateSite(ctx context.Context, site *domain.Site) error {
	query := `
		UPDATE sites
		SET
			name = $1,
			address = $2,
			status = $3
		WHERE id = $4 AND company_id = $5
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		site.Name,
		site.Address,
		site.Status,
		site.ID,
		site.CompanyID,
	}

	var id int64
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return err
	}

	return nil
}

// DeleteSite 는 근무일지나 지출이 현장을 참조하고 있으면 외래키 제약으로
// 실패한다. 핸들러에서 제약 이름을 보고 사용자 메시지로 바꾼다.
func (r *Repository) DeleteSite(ctx context.Context, companyID int64, id int64) error {
	query := `
		DELETE FROM sites
		WHERE id = $1 AND company_id = $2
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var deleted int64
	if err := r.dbpool.QueryRowContext(ctx, query, id, companyID).Scan(&deleted); err != nil {
		return err
	}

	return nil
}

func (r *Repository) ListSites(ctx context.Context, companyID int64) ([]*domain.Site, error) {
	query := `
		SELECT
			s.id,
			s.company_id,
			s.manager_id,
			s.name,
			s.address,
			s.status,
			s.created_at,
			sf.author_id
		FROM sites s
		LEFT JOIN site_foremen sf ON s.id = sf.site_id
		WHERE s.company_id = $1
		ORDER BY s.id ASC, sf.author_id ASC
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sites := []*domain.Site{}
	index := map[int64]*domain.Site{}
	for rows.Next() {
		var (
			site      domain.Site
			foremanID *int64
		)
		dst := []any{
			&site.ID,
			&site.CompanyID,
			&site.ManagerID,
			&site.Name,
			&site.Address,
			&site.Status,
			&site.CreatedAt,
			&foremanID,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		existing, ok := index[site.ID]
		if !ok {
			site.ForemanIDs = []int64{}
			sites = append(sites, &site)
			index[site.ID] = &site
			existing = &site
		}
		if foremanID != nil {
			existing.ForemanIDs = append(existing.ForemanIDs, *foremanID)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sites, nil
}

func (r *Repository) ListSitesByForeman(ctx context.Context, companyID int64, authorID int64) ([]*domain.Site, error) {
	query := `
		SELECT s.id, s.company_id, s.manager_id, s.name, s.address, s.status, s.created_at
		FROM sites s
		JOIN site_foremen sf ON s.id = sf.site_id
		WHERE s.company_id = $1 AND sf.author_id = $2
		ORDER BY s.id ASC
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, companyID, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sites := []*domain.Site{}
	for rows.Next() {
		var site domain.Site
		dst := []any{
			&site.ID,
			&site.CompanyID,
			&site.ManagerID,
			&site.Name,
			&site.Address,
			&site.Status,
			&site.CreatedAt,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		sites = append(sites, &site)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sites, nil
}

func (r *Repository) AssignForeman(ctx context.Context, siteID int64, authorID int64) error {
	query := `
		INSERT INTO site_foremen (site_id, author_id)
		VALUES ($1, $2)
		ON CONFLICT (site_id, author_id) DO NOTHING
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, siteID, authorID); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UnassignForeman(ctx context.Context, siteID int64, authorID int64) error {
	query := `
		DELETE FROM site_foremen WHERE site_id = $1 AND author_id = $2
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, siteID, authorID); err != nil {
		return err
	}

	return nil
}
