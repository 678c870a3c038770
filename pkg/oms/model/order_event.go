package model

import "time"

// OrderEvent is the persisted record of one order state transition.
// Written by the OMS, shipped over NATS, stored by the worker.
type OrderEvent struct {
	EventID       string `gorm:"primaryKey"`
	OrderID       string
	GatewayID     string
	OrigGatewayID string
	ExecType      OrderExecType
	Status        OrderStatus
	Qty           int64
	Price         float64
	LastQty       int64
	LastPrice     float64
	Timestamp     time.Time
}

func (OrderEvent) TableName() string { return "order_events" }

func NewOrderEvent(o Order, ts time.Time) *OrderEvent {
	return &OrderEvent{
		EventID:       o.ExecID,
		OrderID:       o.OrderID,
		GatewayID:     o.GatewayID,
		OrigGatewayID: o.OrigGatewayID,
		ExecType:      o.ExecType,
		Status:        o.Status,
		Qty:           o.Quantity.IntPart(),
		Price:         o.Price.InexactFloat64(),
		LastQty:       o.LastQuantity.IntPart(),
		LastPrice:     o.LastPrice.InexactFloat64(),
		Timestamp:     ts,
	}
}
