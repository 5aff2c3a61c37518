package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contribution 是一笔已确认的出资记录
type Contribution struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	ProjectID          string          `gorm:"index;type:varchar(36);not null" json:"project_id"`
	ContributorAddress string          `gorm:"index;type:varchar(64);not null" json:"contributor_address"`
	Amount             decimal.Decimal `gorm:"type:decimal(30,7);not null" json:"amount"`
	TxHash             string          `gorm:"uniqueIndex;type:varchar(64);not null" json:"tx_hash"`
	CreatedAt          time.Time       `json:"created_at"`
}

func (Contribution) TableName() string {
	return "contributions"
}
