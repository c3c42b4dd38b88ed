package domain

import (
	"math"
	"time"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "미지급"
	PaymentStatusPaid   PaymentStatus = "지급완료"
)

// WorkLog 의 DailyRate 는 작성 시점의 근로자 일당을 복사한 스냅샷이다.
// 이후 근로자의 일당이 바뀌어도 이 값은 변하지 않는다.
type WorkLog struct {
	ID            int64         `json:"id"`
	CompanyID     int64         `json:"companyId"`
	SiteID        int64         `json:"siteId"`
	WorkerID      int64         `json:"workerId"`
	AuthorID      int64         `json:"authorId"`
	WorkDate      time.Time     `json:"workDate"`
	Description   string        `json:"description"`
	Effort        float64       `json:"effort"`
	DailyRate     int64         `json:"dailyRate"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	PaymentDate   *time.Time    `json:"paymentDate,omitempty"`
	PaidBy        *int64        `json:"paidBy,omitempty"`
	AttachmentURL *string       `json:"attachmentUrl,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`

	// 목록 조회 시 함께 조인되는 표시용 이름
	SiteName   string `json:"siteName,omitempty"`
	WorkerName string `json:"workerName,omitempty"`
	AuthorName string `json:"authorName,omitempty"`
}

// Amount 는 공수 × 일당이다. 행 자체만으로 과거 금액을 재현할 수 있어야 한다.
// 공수는 0.5 단위라서 곱이 정수를 벗어나는 일은 드물지만, 벗어나면
// 가장 가까운 원 단위로 반올림한다.
func (w *WorkLog) Amount() int64 {
	return int64(math.Round(w.Effort * float64(w.DailyRate)))
}

type WorkLogFilter struct {
	SiteID    *int64
	WorkerID  *int64
	AuthorID  *int64
	WorkDate  *time.Time
	StartDate *time.Time
	EndDate   *time.Time
	Status    *PaymentStatus
}
