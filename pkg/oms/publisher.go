package oms

import (
	"context"
	"encoding/json"

	"github.com/joripage/exchange-core/pkg/kafka_wrapper"
	"github.com/joripage/exchange-core/pkg/oms/model"
	"github.com/nats-io/nats.go"
)

// TradePublisher ships executions to downstream settlement/consumers.
type TradePublisher interface {
	PublishTrade(ctx context.Context, trade *model.TradeEvent) error
}

// EventPublisher ships order state transitions to the persistence worker.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, ev *model.OrderEvent) error
}

// KafkaTradePublisher publishes trades to a kafka topic, keyed by symbol so
// one symbol's executions stay ordered within a partition.
type KafkaTradePublisher struct {
	producer *kafkawrapper.Producer
	topic    string
}

func NewKafkaTradePublisher(producer *kafkawrapper.Producer, topic string) *KafkaTradePublisher {
	return &KafkaTradePublisher{producer: producer, topic: topic}
}

func (p *KafkaTradePublisher) PublishTrade(ctx context.Context, trade *model.TradeEvent) error {
	return p.producer.PublishJSON(ctx, p.topic, trade.Symbol, trade, nil)
}

// NatsEventPublisher publishes order events to a JetStream subject consumed
// by the persistence worker.
type NatsEventPublisher struct {
	js      nats.JetStreamContext
	subject string
}

func NewNatsEventPublisher(js nats.JetStreamContext, subject string) *NatsEventPublisher {
	return &NatsEventPublisher{js: js, subject: subject}
}

func (p *NatsEventPublisher) PublishOrderEvent(ctx context.Context, ev *model.OrderEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(p.subject, data)
	return err
}
