package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 链上交易的本地对账状态。
// pending 表示已提交但本次确认窗口内未见终态，
// 由定时对账任务继续推进，不会永远停留。
const (
	ChainTxStatusPending = "pending"
	ChainTxStatusSuccess = "success"
	ChainTxStatusFailed  = "failed"
)

// ChainTransaction 记录每一次链上提交及其结局。
// Hash 唯一: 同一信封重复提交 (DUPLICATE) 不产生新行。
type ChainTransaction struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Hash           string          `gorm:"uniqueIndex;type:varchar(64);not null" json:"hash"`
	Function       string          `gorm:"index;type:varchar(64);not null" json:"function"`
	Source         string          `gorm:"index;type:varchar(64);not null" json:"source"`
	Network        string          `gorm:"type:varchar(16);not null" json:"network"`
	Status         string          `gorm:"type:varchar(16);index;default:'pending'" json:"status"`
	SequenceNumber uint64          `gorm:"not null" json:"sequence_number"`
	Fee            decimal.Decimal `gorm:"type:decimal(30,7)" json:"fee"`
	Ledger         uint64          `json:"ledger"`
	ReturnValue    string          `gorm:"type:text" json:"return_value"`
	ErrorDetail    string          `gorm:"type:text" json:"error_detail"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (ChainTransaction) TableName() string {
	return "chain_transactions"
}
