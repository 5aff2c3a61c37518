package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/0xdevcollins/boundless-sub003/internal/model"
	"github.com/0xdevcollins/boundless-sub003/internal/service/mq"
	"github.com/0xdevcollins/boundless-sub003/pkg/logger"
)

// EventConsumerService 消费项目域事件，把项目达成筹款目标
// 这类衍生状态写回数据库。和写路径解耦: 事件驱动，落后几秒没关系。
type EventConsumerService struct {
	db       *gorm.DB
	consumer mq.Consumer
}

func NewEventConsumerService(db *gorm.DB, consumer mq.Consumer) *EventConsumerService {
	return &EventConsumerService{db: db, consumer: consumer}
}

// Start 阻塞消费项目事件流，直到 ctx 取消
func (s *EventConsumerService) Start(ctx context.Context) {
	logger.Info("项目事件消费者已启动", zap.String("topic", mq.TopicProjectEvents))
	err := s.consumer.Subscribe(ctx, mq.TopicProjectEvents, s.handle)
	if err != nil && ctx.Err() == nil {
		logger.Error("项目事件消费者退出", zap.Error(err))
	}
}

func (s *EventConsumerService) handle(ctx context.Context, msg mq.Message) error {
	var event ProjectEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		// 坏消息直接丢弃，重投也解析不出来
		logger.Warn("丢弃无法解析的事件", zap.String("key", msg.Key), zap.Error(err))
		return nil
	}

	logger.Debug("收到项目事件",
		zap.String("type", event.Type),
		zap.String("project_id", event.ProjectID))

	if event.Type != EventProjectFunded {
		return nil
	}

	// 出资后检查是否达成筹款目标
	var project model.Project
	err := s.db.WithContext(ctx).Where("id = ?", event.ProjectID).First(&project).Error
	if err != nil {
		return err
	}
	if project.Status == model.ProjectStatusActive && project.Raised.GreaterThanOrEqual(project.FundingGoal) {
		err := s.db.WithContext(ctx).Model(&model.Project{}).
			Where("id = ? AND status = ?", project.ID, model.ProjectStatusActive).
			Update("status", model.ProjectStatusFunded).Error
		if err != nil {
			return err
		}
		logger.Info("项目达成筹款目标", zap.String("project_id", project.ID))
	}
	return nil
}
