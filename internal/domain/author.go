package domain

import (
	"time"
)

type Role string

const (
	RoleManager Role = "manager" // 관리자: 정산/승인 권한, 이메일로 식별
	RoleForeman Role = "foreman" // 팀장: 현장 담당, 전화번호로 식별
)

type Author struct {
	ID           int64      `json:"id"`
	CompanyID    int64      `json:"companyId"`
	Role         Role       `json:"role"`
	Name         string     `json:"name"`
	Email        *string    `json:"email,omitempty"`
	Phone        *string    `json:"phone,omitempty"`
	PasswordHash string     `json:"-"`
	DailyRate    int64      `json:"dailyRate"`
	IsActive     bool       `json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
}
