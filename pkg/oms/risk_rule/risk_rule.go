package riskrule

import "github.com/joripage/exchange-core/pkg/oms/model"

// RiskRule is a pre-trade check run before an order touches the book.
type RiskRule interface {
	Check(order *model.Order) error
}
