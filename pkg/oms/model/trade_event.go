package model

import "time"

// TradeEvent is one execution published to the trade topic and persisted
// by the worker. Price is the display price (ticks scaled by tick size).
type TradeEvent struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	Symbol       string `json:"symbol"`
	MakerOrderID string `json:"maker_order_id"`
	TakerOrderID string `json:"taker_order_id"`
	Price        float64 `json:"price"`
	Qty          int64   `json:"qty"`
	Seq          uint64  `json:"seq"`
	ExecutedAt   time.Time `json:"executed_at"`
}

func (TradeEvent) TableName() string { return "trades" }
