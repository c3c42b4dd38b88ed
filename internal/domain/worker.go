package domain

import "time"

type WorkerStatus string

const (
	WorkerStatusActive   WorkerStatus = "active"
	WorkerStatusResigned WorkerStatus = "resigned"
)

// Worker 는 팀장이 등록한 근로자이다. 주민등록번호 원문은 저장하지 않고
// 암호문, 중복 검사용 해시, 화면 표시용 마스킹 형태만 유지한다.
type Worker struct {
	ID           int64        `json:"id"`
	CompanyID    int64        `json:"companyId"`
	CreatedBy    int64        `json:"createdBy"`
	Name         string       `json:"name"`
	RRNEncrypted string       `json:"-"`
	RRNHash      string       `json:"-"`
	RRNMasked    string       `json:"rrnMasked"`
	Phone        string       `json:"phone"`
	DailyRate    int64        `json:"dailyRate"`
	Remarks      string       `json:"remarks"`
	Status       WorkerStatus `json:"status"`
	ResignedAt   *time.Time   `json:"resignedAt,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
}
