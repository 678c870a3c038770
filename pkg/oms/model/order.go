package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPendingNew      OrderStatus = "PendingNew"
	OrderStatusNew             OrderStatus = "New"
	OrderStatusPartiallyFilled OrderStatus = "PartiallyFilled"
	OrderStatusFilled          OrderStatus = "Filled"
	OrderStatusCanceled        OrderStatus = "Canceled"
	OrderStatusRejected        OrderStatus = "Rejected"
)

type OrderExecType string

const (
	ExecTypePendingNew OrderExecType = "PendingNew"
	ExecTypeNew        OrderExecType = "New"
	ExecTypeTrade      OrderExecType = "Trade"
	ExecTypeCanceled   OrderExecType = "Canceled"
	ExecTypeRejected   OrderExecType = "Rejected"
)

type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

// Order is the gateway-facing view of one limit order. Prices and
// quantities are decimals here; the matching core only ever sees integer
// ticks. EngineID is the id the core knows this order by.
type Order struct {
	// init info
	GatewayID     string
	OrigGatewayID string
	Account       string
	Symbol        string
	Side          OrderSide
	Price         decimal.Decimal
	Quantity      decimal.Decimal
	TransactTime  time.Time

	// calculated info
	OrderID  string
	EngineID uint64
	ExecID   string
	Status   OrderStatus
	ExecType OrderExecType
	Text     string

	CumQuantity    decimal.Decimal
	LeavesQuantity decimal.Decimal
	LastQuantity   decimal.Decimal
	LastPrice      decimal.Decimal
}

func (o *Order) UpdateAddOrder(req *AddOrder) {
	o.GatewayID = req.GatewayID
	o.Account = req.Account
	o.Symbol = req.Symbol
	o.Side = req.Side
	o.Price = req.Price
	o.Quantity = req.Quantity
	o.TransactTime = req.TransactTime

	o.Status = OrderStatusPendingNew
	o.ExecType = ExecTypePendingNew
	o.CumQuantity = decimal.Zero
	o.LeavesQuantity = req.Quantity
}

func (o *Order) MarkNew() {
	o.Status = OrderStatusNew
	o.ExecType = ExecTypeNew
}

func (o *Order) MarkRejected(reason string) {
	o.Status = OrderStatusRejected
	o.ExecType = ExecTypeRejected
	o.Text = reason
	o.LeavesQuantity = decimal.Zero
}

func (o *Order) UpdateCancelOrder(req *CancelOrder) {
	o.GatewayID = req.GatewayID
	o.OrigGatewayID = req.OrigGatewayID
	o.Status = OrderStatusCanceled
	o.ExecType = ExecTypeCanceled
	o.LeavesQuantity = decimal.Zero
}

// ApplyFill books one execution against this order.
func (o *Order) ApplyFill(qty, price decimal.Decimal) {
	o.LastQuantity = qty
	o.LastPrice = price
	o.CumQuantity = o.CumQuantity.Add(qty)
	o.LeavesQuantity = o.Quantity.Sub(o.CumQuantity)
	o.ExecType = ExecTypeTrade
	if o.LeavesQuantity.IsZero() {
		o.Status = OrderStatusFilled
	} else {
		o.Status = OrderStatusPartiallyFilled
	}
}

func (o *Order) CanCancel() bool {
	switch o.Status {
	case OrderStatusNew, OrderStatusPartiallyFilled:
		return true
	}
	return false
}

// IsEnd reports whether the order can never change again.
func (o *Order) IsEnd() bool {
	switch o.Status {
	case OrderStatusFilled, OrderStatusCanceled, OrderStatusRejected:
		return true
	}
	return false
}
