package riskrule

import (
	"fmt"

	"github.com/joripage/exchange-core/pkg/oms/model"
	"github.com/shopspring/decimal"
)

// TickSizeRule rejects prices and quantities off the symbol's grid: the
// matching core works in integer ticks, so anything unrepresentable must
// be stopped here.
type TickSizeRule struct {
	ticks       map[string]decimal.Decimal
	defaultTick decimal.Decimal
}

func NewTickSizeRule(ticks map[string]decimal.Decimal, defaultTick decimal.Decimal) *TickSizeRule {
	return &TickSizeRule{ticks: ticks, defaultTick: defaultTick}
}

func (r *TickSizeRule) TickSize(symbol string) decimal.Decimal {
	if tick, ok := r.ticks[symbol]; ok {
		return tick
	}
	return r.defaultTick
}

func (r *TickSizeRule) Check(order *model.Order) error {
	tick := r.TickSize(order.Symbol)
	if !order.Price.Mod(tick).IsZero() {
		return fmt.Errorf("price %s not a multiple of tick %s", order.Price, tick)
	}
	if !order.Quantity.IsInteger() {
		return fmt.Errorf("quantity %s is not a whole number", order.Quantity)
	}
	return nil
}
