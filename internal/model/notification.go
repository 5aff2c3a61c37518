package model

import "time"

// 通知类型
const (
	NotificationTypeTxConfirmed = "tx_confirmed"
	NotificationTypeTxFailed    = "tx_failed"
)

// Notification 是写给用户的站内通知，由 asynq worker 异步落库
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Recipient string    `gorm:"index;type:varchar(64);not null" json:"recipient"`
	Type      string    `gorm:"type:varchar(32);not null" json:"type"`
	Title     string    `gorm:"type:varchar(255)" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	Read      bool      `gorm:"default:false" json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
