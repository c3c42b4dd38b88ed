package repository

import (
	"database/sql"

	"github.com/gongsa-dev/daylabor-ledger/backend/internal/config"
	"github.com/gongsa-dev/daylabor-ledger/backend/internal/service"
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

var (
	_ service.WorkLogStore = (*Repository)(nil)
	_ service.ExpenseStore = (*Repository)(nil)
	_ service.WorkerStore  = (*Repository)(nil)
	_ service.SiteStore    = (*Repository)(nil)
)
