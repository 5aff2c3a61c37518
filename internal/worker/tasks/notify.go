package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/0xdevcollins/boundless-sub003/internal/model"
	"github.com/0xdevcollins/boundless-sub003/pkg/logger"
)

// TypeTxNotification 交易终态通知任务
const TypeTxNotification = "notification:tx"

// TxNotificationPayload 通知任务的载荷
type TxNotificationPayload struct {
	Recipient string `json:"recipient"`
	Hash      string `json:"hash"`
	Function  string `json:"function"`
	Success   bool   `json:"success"`
	Detail    string `json:"detail,omitempty"`
}

// NewTxNotificationTask 构造一个交易通知任务
func NewTxNotificationTask(payload TxNotificationPayload) (*asynq.Task, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("编码通知任务失败: %w", err)
	}
	return asynq.NewTask(TypeTxNotification, raw), nil
}

// TxNotificationHandler 消费通知任务，写站内通知
type TxNotificationHandler struct {
	db *gorm.DB
}

func NewTxNotificationHandler(db *gorm.DB) *TxNotificationHandler {
	return &TxNotificationHandler{db: db}
}

func (h *TxNotificationHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload TxNotificationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		// 载荷坏了重试也没用
		return fmt.Errorf("解析通知载荷失败: %v: %w", err, asynq.SkipRetry)
	}

	notification := model.Notification{
		Recipient: payload.Recipient,
		Type:      model.NotificationTypeTxConfirmed,
		Title:     fmt.Sprintf("交易 %s 已确认", payload.Function),
		Content:   fmt.Sprintf("交易 %s 已成功上链", payload.Hash),
	}
	if !payload.Success {
		notification.Type = model.NotificationTypeTxFailed
		notification.Title = fmt.Sprintf("交易 %s 失败", payload.Function)
		notification.Content = fmt.Sprintf("交易 %s 执行失败: %s", payload.Hash, payload.Detail)
	}

	if err := h.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return fmt.Errorf("写入通知失败: %w", err)
	}

	logger.Info("通知已写入",
		zap.String("recipient", payload.Recipient),
		zap.String("hash", payload.Hash),
		zap.Bool("success", payload.Success))
	return nil
}
