package worker

import (
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/0xdevcollins/boundless-sub003/internal/worker/tasks"
	"github.com/0xdevcollins/boundless-sub003/pkg/config"
)

// Client 是任务入队的封装。
// 入队失败不应阻断主流程，调用方自行决定是否忽略。
type Client struct {
	inner *asynq.Client
}

func NewClient() *Client {
	return &Client{
		inner: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.Global.Redis.Addr,
			Password: config.Global.Redis.Password,
			DB:       config.Global.Redis.DB,
		}),
	}
}

// EnqueueTxNotification 入队一条交易终态通知
func (c *Client) EnqueueTxNotification(payload tasks.TxNotificationPayload) error {
	task, err := tasks.NewTxNotificationTask(payload)
	if err != nil {
		return err
	}
	if _, err := c.inner.Enqueue(task, asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("入队通知任务失败: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.inner.Close()
}
