package model

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/0xdevcollins/boundless-sub003/pkg/crypto_util"
)

// 发件箱消息状态
const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
)

// OutboxMessage 是事务性发件箱的一行。
// 业务写库和事件写入在同一个数据库事务里完成，
// 投递由独立的 relay 扫描推进，保证至少一次送达。
type OutboxMessage struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Topic     string     `gorm:"type:varchar(64);not null" json:"topic"`
	Key       string     `gorm:"type:varchar(64)" json:"key"`
	Payload   string     `gorm:"type:text;not null" json:"payload"`
	DedupKey  string     `gorm:"uniqueIndex;type:varchar(64);not null" json:"dedup_key"`
	Status    string     `gorm:"type:varchar(16);index;default:'pending'" json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	SentAt    *time.Time `json:"sent_at"`
}

func (OutboxMessage) TableName() string {
	return "outbox_messages"
}

// CreateOutboxMessage 在给定事务内写入一条发件箱消息。
// DedupKey 取 payload 的 blake3 哈希，重复写入触发唯一约束，
// 调用方据此实现幂等。
func CreateOutboxMessage(tx *gorm.DB, topic, key string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("编码发件箱消息失败: %w", err)
	}
	msg := OutboxMessage{
		Topic:    topic,
		Key:      key,
		Payload:  string(raw),
		DedupKey: crypto_util.CalculateBlake3(raw),
		Status:   OutboxStatusPending,
	}
	if err := tx.Create(&msg).Error; err != nil {
		return fmt.Errorf("写入发件箱消息失败: %w", err)
	}
	return nil
}
