package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gongsa-dev/daylabor-ledger/backend/internal/domain"
)

type PaymentService struct {
	store WorkLogStore
}

func NewPaymentService(store WorkLogStore) *PaymentService {
	return &PaymentService{store: store}
}

// MarkPaid 는 대상 근무일지 전체를 한 번에 지급완료로 전이한다.
// 전부 성공하거나 전부 실패하며, 대상 중 하나라도 이미 지급되었거나
// 존재하지 않으면 아무 행도 바뀌지 않는다. 재시도하려면 호출자가
// 미지급 목록을 다시 조회해야 한다.
func (s *PaymentService) MarkPaid(ctx context.Context, companyID int64, actorID int64, ids []int64, paymentDate time.Time) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: 지급 대상을 선택해 주세요", domain.ErrInvalidArgument)
	}
	if paymentDate.IsZero() {
		return fmt.Errorf("%w: 지급일을 입력해 주세요", domain.ErrInvalidArgument)
	}

	return s.store.MarkWorkLogsPaid(ctx, companyID, actorID, ids, paymentDate)
}
