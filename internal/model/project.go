package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 项目生命周期状态
const (
	ProjectStatusActive   = "active"
	ProjectStatusFunded   = "funded"
	ProjectStatusClosed   = "closed"
	ProjectStatusRefunded = "refunded"
)

// Project 是众筹项目的链下镜像。
// 链上合约是事实源，这里只保存确认后的状态快照。
type Project struct {
	ID             string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OwnerAddress   string          `gorm:"index;type:varchar(64);not null" json:"owner_address"`
	Title          string          `gorm:"type:varchar(255);not null" json:"title"`
	Description    string          `gorm:"type:text" json:"description"`
	MetadataURI    string          `gorm:"type:varchar(255)" json:"metadata_uri"`
	FundingGoal    decimal.Decimal `gorm:"type:decimal(30,7);not null" json:"funding_goal"`
	Raised         decimal.Decimal `gorm:"type:decimal(30,7);not null;default:0" json:"raised"`
	MilestoneCount uint32          `gorm:"not null;default:0" json:"milestone_count"`
	Status         string          `gorm:"type:varchar(16);index;default:'active'" json:"status"`
	TxHash         string          `gorm:"type:varchar(64)" json:"tx_hash"`
	Deadline       time.Time       `json:"deadline"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}
