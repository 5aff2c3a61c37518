package mq

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/0xdevcollins/boundless-sub003/pkg/logger"
)

// RedisStreamProducer 基于 Redis Stream 的生产者实现，
// 适合不想引入 Kafka 的小规模部署。
type RedisStreamProducer struct {
	rdb *redis.Client
}

var _ Producer = (*RedisStreamProducer)(nil)

func NewRedisStreamProducer(rdb *redis.Client) *RedisStreamProducer {
	return &RedisStreamProducer{rdb: rdb}
}

func (p *RedisStreamProducer) Publish(ctx context.Context, topic, key string, value []byte) error {
	err := p.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: topic,
		Values: map[string]interface{}{
			"key":   key,
			"value": string(value),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("发布 Redis Stream 消息失败 (stream=%s): %w", topic, err)
	}
	return nil
}

func (p *RedisStreamProducer) Close() error {
	return nil
}

// RedisStreamConsumer 基于消费组的 Stream 消费者
type RedisStreamConsumer struct {
	rdb      *redis.Client
	group    string
	consumer string
}

var _ Consumer = (*RedisStreamConsumer)(nil)

func NewRedisStreamConsumer(rdb *redis.Client, group string) *RedisStreamConsumer {
	return &RedisStreamConsumer{
		rdb:      rdb,
		group:    group,
		consumer: fmt.Sprintf("%s-consumer", group),
	}
}

func (c *RedisStreamConsumer) Subscribe(ctx context.Context, topic string, handler Handler) error {
	// 组已存在时 XGroupCreateMkStream 返回 BUSYGROUP，忽略即可
	err := c.rdb.XGroupCreateMkStream(ctx, topic, c.group, "0").Err()
	if err != nil && !isBusyGroup(err) {
		return fmt.Errorf("创建消费组失败: %w", err)
	}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		streams, err := c.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.group,
			Consumer: c.consumer,
			Streams:  []string{topic, ">"},
			Count:    16,
			Block:    5 * time.Second,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue // 阻塞窗口内没有新消息
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("读取 Redis Stream 失败: %w", err)
		}

		for _, stream := range streams {
			for _, entry := range stream.Messages {
				msg := Message{
					Topic: stream.Stream,
					Key:   stringField(entry.Values, "key"),
					Value: []byte(stringField(entry.Values, "value")),
				}
				if err := handler(ctx, msg); err != nil {
					// 不 ACK，消息留在 pending list 等待重试
					logger.Error("处理 Stream 消息失败",
						zap.String("stream", stream.Stream),
						zap.String("id", entry.ID),
						zap.Error(err))
					continue
				}
				if err := c.rdb.XAck(ctx, stream.Stream, c.group, entry.ID).Err(); err != nil {
					logger.Error("ACK Stream 消息失败", zap.Error(err))
				}
			}
		}
	}
}

func (c *RedisStreamConsumer) Close() error {
	return nil
}

func isBusyGroup(err error) bool {
	return err != nil && err.Error() == "BUSYGROUP Consumer Group name already exists"
}

func stringField(values map[string]interface{}, field string) string {
	if v, ok := values[field].(string); ok {
		return v
	}
	return ""
}
