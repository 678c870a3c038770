package oms

import (
	"context"

	"github.com/joripage/exchange-core/pkg/oms/model"
)

// OrderGateway is the inbound order surface (FIX acceptor, test stub, ...).
// The OMS calls OnOrderReport with a copy of the order after every state
// transition; the gateway owns translating that back to its own protocol.
type OrderGateway interface {
	Start(ctx context.Context) error
	OnOrderReport(ctx context.Context, order model.Order)
}
