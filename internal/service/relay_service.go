package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/0xdevcollins/boundless-sub003/internal/model"
	"github.com/0xdevcollins/boundless-sub003/internal/service/mq"
	"github.com/0xdevcollins/boundless-sub003/pkg/logger"
)

// relayBatchSize 每轮最多投递的消息数
const relayBatchSize = 50

// RelayService 把发件箱里的 pending 消息投递到 MQ。
// 投递成功才标记 sent，进程崩溃时消息留在发件箱等下一轮，
// 语义是至少一次，消费侧按 DedupKey 幂等。
type RelayService struct {
	db       *gorm.DB
	producer mq.Producer
	interval time.Duration
}

func NewRelayService(db *gorm.DB, producer mq.Producer, interval time.Duration) *RelayService {
	return &RelayService{db: db, producer: producer, interval: interval}
}

// Start 启动投递循环，阻塞到 ctx 取消
func (s *RelayService) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logger.Info("发件箱投递服务已启动", zap.Duration("interval", s.interval))
	for {
		select {
		case <-ctx.Done():
			logger.Info("发件箱投递服务退出")
			return
		case <-ticker.C:
			s.relayOnce(ctx)
		}
	}
}

// relayOnce 投递一批消息
func (s *RelayService) relayOnce(ctx context.Context) {
	var messages []model.OutboxMessage
	err := s.db.WithContext(ctx).
		Where("status = ?", model.OutboxStatusPending).
		Order("id ASC").
		Limit(relayBatchSize).
		Find(&messages).Error
	if err != nil {
		logger.Error("扫描发件箱失败", zap.Error(err))
		return
	}

	for _, msg := range messages {
		if err := s.producer.Publish(ctx, msg.Topic, msg.Key, []byte(msg.Payload)); err != nil {
			// 投递失败就停掉这一轮，保持按 id 顺序投递
			logger.Error("投递消息失败",
				zap.Uint("id", msg.ID),
				zap.String("topic", msg.Topic),
				zap.Error(err))
			return
		}

		now := time.Now()
		err := s.db.WithContext(ctx).
			Model(&model.OutboxMessage{}).
			Where("id = ?", msg.ID).
			Updates(map[string]interface{}{
				"status":  model.OutboxStatusSent,
				"sent_at": &now,
			}).Error
		if err != nil {
			// 标记失败会导致重复投递，由消费侧去重兜底
			logger.Error("标记消息已发送失败", zap.Uint("id", msg.ID), zap.Error(err))
			return
		}
	}

	if len(messages) > 0 {
		logger.Debug("发件箱投递完成", zap.Int("count", len(messages)))
	}
}
