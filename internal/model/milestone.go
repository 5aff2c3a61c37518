package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 里程碑审批状态
const (
	MilestoneStatusPending  = "pending"
	MilestoneStatusApproved = "approved"
	MilestoneStatusRejected = "rejected"
	MilestoneStatusReleased = "released"
)

// Milestone 是项目资金分批释放的节点
type Milestone struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ProjectID string          `gorm:"index;type:varchar(36);not null" json:"project_id"`
	Number    uint32          `gorm:"not null" json:"number"`
	Title     string          `gorm:"type:varchar(255)" json:"title"`
	Amount    decimal.Decimal `gorm:"type:decimal(30,7);not null" json:"amount"`
	Status    string          `gorm:"type:varchar(16);index;default:'pending'" json:"status"`
	TxHash    string          `gorm:"type:varchar(64)" json:"tx_hash"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (Milestone) TableName() string {
	return "milestones"
}
