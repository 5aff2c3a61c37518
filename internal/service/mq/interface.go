package mq

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/0xdevcollins/boundless-sub003/pkg/config"
)

// 领域事件主题
const (
	TopicProjectEvents = "boundless.project.events"
	TopicChainTxEvents = "boundless.chain.tx.events"
)

// Message 是一条跨 MQ 实现的统一消息
type Message struct {
	Topic string
	Key   string
	Value []byte
}

// Producer 定义消息生产者接口
type Producer interface {
	Publish(ctx context.Context, topic, key string, value []byte) error
	Close() error
}

// Handler 处理一条消息。返回错误时消息不确认，等待重投。
type Handler func(ctx context.Context, msg Message) error

// Consumer 定义消息消费者接口
type Consumer interface {
	// Subscribe 阻塞消费指定主题，直到 ctx 取消
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}

// NewProducer 按配置选择 MQ 实现 (kafka / redis stream)
func NewProducer(rdb *redis.Client) (Producer, error) {
	switch config.Global.Redis.MQType {
	case "kafka":
		return NewKafkaProducer(config.Global.Kafka.Brokers), nil
	case "redis":
		return NewRedisStreamProducer(rdb), nil
	default:
		return nil, fmt.Errorf("未知的 MQ 类型: %q", config.Global.Redis.MQType)
	}
}

// NewConsumer 按配置选择 MQ 消费实现
func NewConsumer(rdb *redis.Client, group string) (Consumer, error) {
	switch config.Global.Redis.MQType {
	case "kafka":
		return NewKafkaConsumer(config.Global.Kafka.Brokers, group), nil
	case "redis":
		return NewRedisStreamConsumer(rdb, group), nil
	default:
		return nil, fmt.Errorf("未知的 MQ 类型: %q", config.Global.Redis.MQType)
	}
}
