package mq

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/0xdevcollins/boundless-sub003/pkg/logger"
)

// KafkaProducer 基于 kafka-go 的生产者实现
type KafkaProducer struct {
	writer *kafka.Writer
}

var _ Producer = (*KafkaProducer)(nil)

func NewKafkaProducer(brokers []string) *KafkaProducer {
	return &KafkaProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *KafkaProducer) Publish(ctx context.Context, topic, key string, value []byte) error {
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("发布 Kafka 消息失败 (topic=%s): %w", topic, err)
	}
	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

// KafkaConsumer 基于消费组的消费者实现
type KafkaConsumer struct {
	brokers []string
	group   string
	reader  *kafka.Reader
}

var _ Consumer = (*KafkaConsumer)(nil)

func NewKafkaConsumer(brokers []string, group string) *KafkaConsumer {
	return &KafkaConsumer{brokers: brokers, group: group}
}

func (c *KafkaConsumer) Subscribe(ctx context.Context, topic string, handler Handler) error {
	c.reader = kafka.NewReader(kafka.ReaderConfig{
		Brokers: c.brokers,
		GroupID: c.group,
		Topic:   topic,
	})

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("拉取 Kafka 消息失败: %w", err)
		}

		err = handler(ctx, Message{
			Topic: msg.Topic,
			Key:   string(msg.Key),
			Value: msg.Value,
		})
		if err != nil {
			// 不提交 offset，消息会被重投
			logger.Error("处理 Kafka 消息失败",
				zap.String("topic", msg.Topic),
				zap.Error(err))
			continue
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			logger.Error("提交 Kafka offset 失败", zap.Error(err))
		}
	}
}

func (c *KafkaConsumer) Close() error {
	if c.reader != nil {
		return c.reader.Close()
	}
	return nil
}
