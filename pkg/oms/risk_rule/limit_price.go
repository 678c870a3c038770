package riskrule

import (
	"fmt"

	"github.com/joripage/exchange-core/pkg/oms/model"
	"github.com/shopspring/decimal"
)

// PriceBand is the allowed price range for one symbol.
type PriceBand struct {
	Floor decimal.Decimal
	Ceil  decimal.Decimal
}

type LimitPriceRule struct {
	bands map[string]PriceBand
}

func NewLimitPriceRule(bands map[string]PriceBand) *LimitPriceRule {
	return &LimitPriceRule{bands: bands}
}

func (r *LimitPriceRule) Check(order *model.Order) error {
	band, ok := r.bands[order.Symbol]
	if !ok { // no band -> no rule
		return nil
	}
	if order.Price.GreaterThan(band.Ceil) || order.Price.LessThan(band.Floor) {
		return fmt.Errorf("price %s outside band [%s, %s]", order.Price, band.Floor, band.Ceil)
	}
	return nil
}
