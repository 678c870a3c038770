package riskrule

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/joripage/exchange-core/pkg/oms/model"
)

func order(symbol, price, qty string) *model.Order {
	return &model.Order{
		Symbol:   symbol,
		Price:    decimal.RequireFromString(price),
		Quantity: decimal.RequireFromString(qty),
	}
}

func TestTickSizeRule(t *testing.T) {
	rule := NewTickSizeRule(map[string]decimal.Decimal{
		"GOOG": decimal.RequireFromString("0.05"),
	}, decimal.RequireFromString("0.01"))

	if got := rule.TickSize("GOOG"); !got.Equal(decimal.RequireFromString("0.05")) {
		t.Errorf("TickSize(GOOG) = %s, want 0.05", got)
	}
	if got := rule.TickSize("AAPL"); !got.Equal(decimal.RequireFromString("0.01")) {
		t.Errorf("TickSize(AAPL) = %s, want default 0.01", got)
	}

	if err := rule.Check(order("GOOG", "100.05", "10")); err != nil {
		t.Errorf("on-grid price rejected: %v", err)
	}
	if err := rule.Check(order("GOOG", "100.02", "10")); err == nil {
		t.Error("off-grid price must fail")
	}
	if err := rule.Check(order("AAPL", "100.02", "10")); err != nil {
		t.Errorf("default tick should allow 100.02: %v", err)
	}
	if err := rule.Check(order("AAPL", "100.02", "10.5")); err == nil {
		t.Error("fractional quantity must fail")
	}
}

func TestLimitPriceRule(t *testing.T) {
	rule := NewLimitPriceRule(map[string]PriceBand{
		"AAPL": {
			Floor: decimal.NewFromInt(50),
			Ceil:  decimal.NewFromInt(500),
		},
	})

	if err := rule.Check(order("AAPL", "100", "1")); err != nil {
		t.Errorf("in-band price rejected: %v", err)
	}
	if err := rule.Check(order("AAPL", "50", "1")); err != nil {
		t.Errorf("band is inclusive at the floor: %v", err)
	}
	if err := rule.Check(order("AAPL", "500", "1")); err != nil {
		t.Errorf("band is inclusive at the ceil: %v", err)
	}
	if err := rule.Check(order("AAPL", "49.99", "1")); err == nil {
		t.Error("below floor must fail")
	}
	if err := rule.Check(order("AAPL", "500.01", "1")); err == nil {
		t.Error("above ceil must fail")
	}
	if err := rule.Check(order("MSFT", "99999", "1")); err != nil {
		t.Errorf("symbol without band must pass: %v", err)
	}
}
