package domain

import "time"

type SiteStatus string

const (
	SiteStatusActive    SiteStatus = "active"
	SiteStatusCompleted SiteStatus = "completed"
	SiteStatusSuspended SiteStatus = "suspended"
)

type Site struct {
	ID         int64      `json:"id"`
	CompanyID  int64      `json:"companyId"`
	ManagerID  int64      `json:"managerId"`
	Name       string     `json:"name"`
	Address    string     `json:"address"`
	Status     SiteStatus `json:"status"`
	ForemanIDs []int64    `json:"foremanIds"`
	CreatedAt  time.Time  `json:"createdAt"`
}
