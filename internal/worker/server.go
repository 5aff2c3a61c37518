package worker

import (
	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"github.com/0xdevcollins/boundless-sub003/internal/worker/tasks"
	"github.com/0xdevcollins/boundless-sub003/pkg/config"
	"github.com/0xdevcollins/boundless-sub003/pkg/logger"
)

// NewServer 构造后台任务处理器。
// 通知类任务量不大，并发度给小一点够用了。
func NewServer(db *gorm.DB) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     config.Global.Redis.Addr,
			Password: config.Global.Redis.Password,
			DB:       config.Global.Redis.DB,
		},
		asynq.Config{
			Concurrency: 5,
			Logger:      logger.NewAsynqLogger(),
		},
	)

	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypeTxNotification, tasks.NewTxNotificationHandler(db))

	return srv, mux
}
