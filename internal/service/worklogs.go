package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gongsa-dev/daylabor-ledger/backend/internal/domain"
)

type WorkLogService struct {
	store   WorkLogStore
	workers WorkerStore
	sites   SiteStore
}

func NewWorkLogService(store WorkLogStore, workers WorkerStore, sites SiteStore) *WorkLogService {
	return &WorkLogService{
		store:   store,
		workers: workers,
		sites:   sites,
	}
}

type CreateWorkLogInput struct {
	SiteID        int64
	WorkerID      int64
	WorkDate      time.Time
	Description   string
	Effort        float64
	AttachmentURL *string
}

// Create 는 근무일지를 작성한다. 근로자의 현재 일당을 읽어 행에 스냅샷으로
// 복사하며, 이후 근로자 일당이 바뀌어도 이 행의 금액은 변하지 않는다.
func (s *WorkLogService) Create(ctx context.Context, companyID int64, authorID int64, in CreateWorkLogInput) (*domain.WorkLog, error) {
	if in.Effort <= 0 {
		return nil, fmt.Errorf("%w: 공수는 0보다 커야 합니다", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: 작업 내용을 입력해 주세요", domain.ErrInvalidArgument)
	}
	if in.WorkDate.IsZero() {
		return nil, fmt.Errorf("%w: 근무일을 입력해 주세요", domain.ErrInvalidArgument)
	}

	if _, err := s.sites.GetSiteByID(ctx, companyID, in.SiteID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: 현장이 존재하지 않습니다", domain.ErrNotFound)
		}
		return nil, err
	}

	worker, err := s.workers.GetWorkerByID(ctx, companyID, in.WorkerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: 근로자가 존재하지 않습니다", domain.ErrNotFound)
		}
		return nil, err
	}

	log := &domain.WorkLog{
		CompanyID:     companyID,
		SiteID:        in.SiteID,
		WorkerID:      in.WorkerID,
		AuthorID:      authorID,
		WorkDate:      in.WorkDate,
		Description:   in.Description,
		Effort:        in.Effort,
		DailyRate:     worker.DailyRate, // 작성 시점 일당의 영구 스냅샷
		PaymentStatus: domain.PaymentStatusUnpaid,
		AttachmentURL: in.AttachmentURL,
	}

	if err := s.store.CreateWorkLog(ctx, log); err != nil {
		return nil, err
	}

	return log, nil
}

type UpdateWorkLogPatch struct {
	Description *string
	Effort      *float64
	WorkDate    *time.Time
}

// Update 는 미지급 상태의 근무일지에만 부분 수정을 적용한다.
// 일당 스냅샷은 이 경로로는 절대 바뀌지 않는다.
func (s *WorkLogService) Update(ctx context.Context, companyID int64, authorID int64, id int64, patch UpdateWorkLogPatch) (*domain.WorkLog, error) {
	log, err := s.getOwnWorkLog(ctx, companyID, authorID, id)
	if err != nil {
		return nil, err
	}

	if log.PaymentStatus == domain.PaymentStatusPaid {
		return nil, domain.ErrLocked
	}

	if patch.Description != nil {
		log.Description = *patch.Description
	}
	if patch.Effort != nil {
		log.Effort = *patch.Effort
	}
	if patch.WorkDate != nil {
		log.WorkDate = *patch.WorkDate
	}

	if log.Effort <= 0 {
		return nil, fmt.Errorf("%w: 공수는 0보다 커야 합니다", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(log.Description) == "" {
		return nil, fmt.Errorf("%w: 작업 내용을 입력해 주세요", domain.ErrInvalidArgument)
	}

	if err := s.store.UpdateWorkLogIfUnpaid(ctx, log); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// 조회와 갱신 사이에 지급 처리된 경우
			return nil, domain.ErrLocked
		}
		return nil, err
	}

	return log, nil
}

func (s *WorkLogService) Delete(ctx context.Context, companyID int64, authorID int64, id int64) error {
	log, err := s.getOwnWorkLog(ctx, companyID, authorID, id)
	if err != nil {
		return err
	}

	if log.PaymentStatus == domain.PaymentStatusPaid {
		return domain.ErrLocked
	}

	if err := s.store.DeleteWorkLogIfUnpaid(ctx, companyID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrLocked
		}
		return err
	}

	return nil
}

func (s *WorkLogService) List(ctx context.Context, companyID int64, filter domain.WorkLogFilter) ([]*domain.WorkLog, error) {
	return s.store.ListWorkLogs(ctx, companyID, filter)
}

// getOwnWorkLog 는 작성자 본인의 근무일지만 돌려준다. 다른 팀장의 행은
// 존재 여부를 숨기기 위해 없는 것으로 취급한다.
func (s *WorkLogService) getOwnWorkLog(ctx context.Context, companyID int64, authorID int64, id int64) (*domain.WorkLog, error) {
	log, err := s.store.GetWorkLogByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: 근무일지가 존재하지 않습니다", domain.ErrNotFound)
		}
		return nil, err
	}

	if log.AuthorID != authorID {
		return nil, fmt.Errorf("%w: 근무일지가 존재하지 않습니다", domain.ErrNotFound)
	}

	return log, nil
}
