// Package worker drains the event streams into postgres: order events from
// NATS JetStream, trades from kafka.
package worker

import (
	"context"
	"encoding/json"

	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	kafkawrapper "github.com/joripage/exchange-core/pkg/kafka_wrapper"
	"github.com/joripage/exchange-core/pkg/oms/model"
	"github.com/joripage/exchange-core/pkg/oms/repo"
)

type Worker struct {
	orderEvent repo.IOrderEvent
	trade      repo.ITrade
}

func NewWorker(repo repo.IRepo) *Worker {
	return &Worker{
		orderEvent: repo.OrderEvent(),
		trade:      repo.Trade(),
	}
}

// StartEventConsumer pulls order events from a durable JetStream consumer.
func (w *Worker) StartEventConsumer(ctx context.Context, js nats.JetStreamContext, subject, durable string) error {
	sub, err := js.PullSubscribe(subject, durable)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msgs, err := sub.Fetch(10, nats.Context(ctx))
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue // fetch timeout, poll again
		}

		for _, msg := range msgs {
			var ev model.OrderEvent
			if err := json.Unmarshal(msg.Data, &ev); err != nil {
				zap.S().Warnw("drop undecodable order event", "err", err)
				_ = msg.Ack()
				continue
			}
			if _, err := w.orderEvent.Create(ctx, &ev); err != nil {
				zap.S().Errorw("persist order event", "event_id", ev.EventID, "err", err)
				continue // redelivered later
			}
			_ = msg.Ack()
		}
	}
}

// StartTradeConsumer drains the trade topic into the trades table.
func (w *Worker) StartTradeConsumer(ctx context.Context, cg *kafkawrapper.ConsumerGroup) error {
	return cg.Run(ctx, func(ctx context.Context, msg kafkawrapper.Message) error {
		var trade model.TradeEvent
		if err := json.Unmarshal(msg.Value, &trade); err != nil {
			zap.S().Warnw("drop undecodable trade", "err", err)
			return nil
		}
		_, err := w.trade.Create(ctx, &trade)
		return err
	})
}
