package orderbook

import "time"

// Trade is the immutable record of one match. Price is always the resting
// (maker) order's quoted price. Seq orders executions within one engine.
type Trade struct {
	Symbol       string
	MakerOrderID uint64
	TakerOrderID uint64
	Price        int64
	Qty          int64
	Seq          uint64
	ExecutedAt   time.Time
}
