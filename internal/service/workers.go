package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gongsa-dev/daylabor-ledger/backend/internal/domain"
	"github.com/gongsa-dev/daylabor-ledger/backend/internal/pii"
)

type WorkerService struct {
	store WorkerStore
	vault pii.Vault
}

func NewWorkerService(store WorkerStore, vault pii.Vault) *WorkerService {
	return &WorkerService{
		store: store,
		vault: vault,
	}
}

type CreateWorkerInput struct {
	Name      string
	RRN       string
	Phone     string
	DailyRate int64
	Remarks   string
}

// Create 는 근로자를 등록한다. 주민등록번호는 금고를 거쳐 암호문, 해시,
// 마스킹 형태로만 저장되고, 같은 팀장 아래에 같은 해시의 재직중 근로자가
// 이미 있으면 등록할 수 없다.
func (s *WorkerService) Create(ctx context.Context, companyID int64, authorID int64, in CreateWorkerInput) (*domain.Worker, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: 이름을 입력해 주세요", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(in.RRN) == "" {
		return nil, fmt.Errorf("%w: 주민등록번호를 입력해 주세요", domain.ErrInvalidArgument)
	}
	if in.DailyRate <= 0 {
		return nil, fmt.Errorf("%w: 일당은 0보다 커야 합니다", domain.ErrInvalidArgument)
	}

	rrnHash := s.vault.Hash(in.RRN)

	exists, err := s.store.ActiveWorkerExistsByHash(ctx, authorID, rrnHash, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: 이미 등록된 근로자입니다", domain.ErrConflict)
	}

	encrypted, err := s.vault.Encrypt(in.RRN)
	if err != nil {
		return nil, err
	}

	worker := &domain.Worker{
		CompanyID:    companyID,
		CreatedBy:    authorID,
		Name:         in.Name,
		RRNEncrypted: encrypted,
		RRNHash:      rrnHash,
		RRNMasked:    s.vault.Mask(in.RRN),
		Phone:        in.Phone,
		DailyRate:    in.DailyRate,
		Remarks:      in.Remarks,
		Status:       domain.WorkerStatusActive,
	}

	if err := s.store.CreateWorker(ctx, worker); err != nil {
		return nil, err
	}

	return worker, nil
}

type UpdateWorkerPatch struct {
	Name      *string
	Phone     *string
	DailyRate *int64
	Remarks   *string
}

// Update 는 근로자 정보를 수정한다. 일당을 바꿔도 이미 작성된 근무일지의
// 스냅샷에는 영향이 없다.
func (s *WorkerService) Update(ctx context.Context, companyID int64, authorID int64, id int64, patch UpdateWorkerPatch) (*domain.Worker, error) {
	worker, err := s.getOwnWorker(ctx, companyID, authorID, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		worker.Name = *patch.Name
	}
	if patch.Phone != nil {
		worker.Phone = *patch.Phone
	}
	if patch.DailyRate != nil {
		worker.DailyRate = *patch.DailyRate
	}
	if patch.Remarks != nil {
		worker.Remarks = *patch.Remarks
	}

	if strings.TrimSpace(worker.Name) == "" {
		return nil, fmt.Errorf("%w: 이름을 입력해 주세요", domain.ErrInvalidArgument)
	}
	if worker.DailyRate <= 0 {
		return nil, fmt.Errorf("%w: 일당은 0보다 커야 합니다", domain.ErrInvalidArgument)
	}

	if err := s.store.UpdateWorker(ctx, worker); err != nil {
		return nil, err
	}

	return worker, nil
}

// Resign 은 근로자를 퇴사 처리한다. 과거 근무일지의 참조를 보존하기 위해
// 행을 삭제하지 않으며, 퇴사는 되돌릴 수 없는 종결 상태이다.
func (s *WorkerService) Resign(ctx context.Context, companyID int64, authorID int64, id int64) (*domain.Worker, error) {
	worker, err := s.getOwnWorker(ctx, companyID, authorID, id)
	if err != nil {
		return nil, err
	}

	if worker.Status == domain.WorkerStatusResigned {
		return nil, fmt.Errorf("%w: 이미 퇴사 처리된 근로자입니다", domain.ErrConflict)
	}

	now := time.Now()
	if err := s.store.ResignWorker(ctx, companyID, id, now); err != nil {
		return nil, err
	}

	worker.Status = domain.WorkerStatusResigned
	worker.ResignedAt = &now

	return worker, nil
}

func (s *WorkerService) List(ctx context.Context, companyID int64, authorID int64) ([]*domain.Worker, error) {
	return s.store.ListWorkersByAuthor(ctx, companyID, authorID)
}

func (s *WorkerService) getOwnWorker(ctx context.Context, companyID int64, authorID int64, id int64) (*domain.Worker, error) {
	worker, err := s.store.GetWorkerByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: 근로자가 존재하지 않습니다", domain.ErrNotFound)
		}
		return nil, err
	}

	if worker.CreatedBy != authorID {
		return nil, fmt.Errorf("%w: 근로자가 존재하지 않습니다", domain.ErrNotFound)
	}

	return worker, nil
}
