// Package marketdata periodically pushes book snapshots, top of book and
// last trade to redis, both as keys for late joiners and as pub/sub
// channels for live subscribers.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/joripage/exchange-core/pkg/orderbook"
)

type Config struct {
	PublishInterval time.Duration
	Depth           int
	ChannelPrefix   string
}

type Publisher struct {
	cfg     Config
	rdb     *redis.Client
	engines *orderbook.Manager
}

func NewPublisher(cfg Config, rdb *redis.Client, engines *orderbook.Manager) *Publisher {
	if cfg.PublishInterval == 0 {
		cfg.PublishInterval = 250 * time.Millisecond
	}
	if cfg.Depth == 0 {
		cfg.Depth = 10
	}
	if cfg.ChannelPrefix == "" {
		cfg.ChannelPrefix = "md"
	}
	return &Publisher{cfg: cfg, rdb: rdb, engines: engines}
}

// Run publishes every interval until ctx is done.
func (p *Publisher) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.cfg.PublishInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.publishAll(ctx)
		}
	}
}

func (p *Publisher) publishAll(ctx context.Context) {
	for _, symbol := range p.engines.Symbols() {
		if err := p.PublishSymbol(ctx, symbol); err != nil {
			zap.S().Warnw("publish market data", "symbol", symbol, "err", err)
		}
	}
}

// PublishSymbol pushes the current book, top of book and last trade for
// one symbol.
func (p *Publisher) PublishSymbol(ctx context.Context, symbol string) error {
	engine := p.engines.Engine(symbol)

	snapshot := engine.Snapshot()
	snapshot.Bids = trimDepth(snapshot.Bids, p.cfg.Depth)
	snapshot.Asks = trimDepth(snapshot.Asks, p.cfg.Depth)

	if err := p.push(ctx, p.key("book", symbol), snapshot); err != nil {
		return err
	}
	if err := p.push(ctx, p.key("top", symbol), engine.TopOfBook()); err != nil {
		return err
	}
	if trade := engine.LastTrade(); trade != nil {
		if err := p.push(ctx, p.key("trade", symbol), trade); err != nil {
			return err
		}
	}
	return nil
}

func (p *Publisher) push(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	pipe := p.rdb.Pipeline()
	pipe.Set(ctx, key, b, 0)
	pipe.Publish(ctx, key, b)
	_, err = pipe.Exec(ctx)
	return err
}

func (p *Publisher) key(kind, symbol string) string {
	return fmt.Sprintf("%s:%s:%s", p.cfg.ChannelPrefix, kind, symbol)
}

func trimDepth(levels []orderbook.LevelSnapshot, depth int) []orderbook.LevelSnapshot {
	if len(levels) > depth {
		return levels[:depth]
	}
	return levels
}
