// Package kafkawrapper is a small wrapper around segmentio/kafka-go: an
// async producer for publishing JSON payloads and a consumer group that
// feeds a handler with retry and backoff.
package kafkawrapper

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	kafka "github.com/segmentio/kafka-go"
)

type Message struct {
	Topic     string
	Partition int
	Offset    int64
	Key       []byte
	Value     []byte
	Time      time.Time
}

type ProducerConfig struct {
	Brokers      []string
	BatchSize    int
	BatchBytes   int64
	BatchTimeout time.Duration
}

type Producer struct {
	w *kafka.Writer
}

func NewProducer(cfg ProducerConfig) *Producer {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.BatchBytes == 0 {
		cfg.BatchBytes = 1 << 20
	}
	if cfg.BatchTimeout == 0 {
		cfg.BatchTimeout = 50 * time.Millisecond
	}
	return &Producer{w: &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		BatchSize:              cfg.BatchSize,
		BatchBytes:             cfg.BatchBytes,
		BatchTimeout:           cfg.BatchTimeout,
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireNone,
		Async:                  true,
	}}
}

func (p *Producer) Publish(ctx context.Context, topic string, key, value []byte) error {
	if p == nil || p.w == nil {
		return errors.New("producer not initialized")
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   key,
		Value: value,
		Time:  time.Now(),
	})
}

func (p *Producer) PublishJSON(ctx context.Context, topic, key string, v any, _ map[string]string) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.Publish(ctx, topic, []byte(key), b)
}

func (p *Producer) Close() error {
	if p == nil || p.w == nil {
		return nil
	}
	return p.w.Close()
}

type ConsumerConfig struct {
	Brokers    []string
	GroupID    string
	Topic      string
	MaxRetries int
	BackoffMin time.Duration
	BackoffMax time.Duration
}

type ConsumerGroup struct {
	r   *kafka.Reader
	cfg ConsumerConfig
}

func NewConsumerGroup(cfg ConsumerConfig) *ConsumerGroup {
	if cfg.BackoffMin == 0 {
		cfg.BackoffMin = 100 * time.Millisecond
	}
	if cfg.BackoffMax == 0 {
		cfg.BackoffMax = 10 * time.Second
	}
	rd := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.GroupID,
		Topic:       cfg.Topic,
		StartOffset: kafka.FirstOffset,
		MaxWait:     500 * time.Millisecond,
		MinBytes:    1,
		MaxBytes:    10 << 20,
	})
	return &ConsumerGroup{r: rd, cfg: cfg}
}

func (cg *ConsumerGroup) Close() error {
	if cg == nil || cg.r == nil {
		return nil
	}
	return cg.r.Close()
}

// Run fetches messages one at a time and commits after the handler
// succeeds or retries are exhausted.
func (cg *ConsumerGroup) Run(ctx context.Context, handler func(context.Context, Message) error) error {
	if cg == nil || cg.r == nil {
		return errors.New("consumer not initialized")
	}

	for {
		m, err := cg.r.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}

		msg := Message{
			Topic:     m.Topic,
			Partition: m.Partition,
			Offset:    m.Offset,
			Key:       m.Key,
			Value:     m.Value,
			Time:      m.Time,
		}

		for attempt := 0; ; attempt++ {
			err := handler(ctx, msg)
			if err == nil || attempt >= cg.cfg.MaxRetries {
				break
			}
			select {
			case <-time.After(backoffDuration(cg.cfg.BackoffMin, cg.cfg.BackoffMax, attempt+1)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := cg.r.CommitMessages(ctx, m); err != nil {
			return err
		}
	}
}

func backoffDuration(min, max time.Duration, attempt int) time.Duration {
	d := time.Duration(float64(min) * math.Pow(2, float64(attempt-1)))
	if d > max {
		d = max
	}
	return d
}
