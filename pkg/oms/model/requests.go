package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddOrder is a new-order request from a gateway. GatewayID is the
// gateway's own id for the request (ClOrdID in FIX terms) and must be
// unique per engine lifetime.
type AddOrder struct {
	GatewayID    string
	Account      string
	Symbol       string
	Side         OrderSide
	Price        decimal.Decimal
	Quantity     decimal.Decimal
	TransactTime time.Time
}

// CancelOrder references the original request by its gateway id.
type CancelOrder struct {
	GatewayID     string
	OrigGatewayID string
}
