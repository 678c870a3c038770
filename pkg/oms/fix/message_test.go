package fixgateway

import (
	"testing"
	"time"

	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/quickfix"
	"github.com/quickfixgo/tag"
	"github.com/shopspring/decimal"

	"github.com/joripage/exchange-core/pkg/oms/model"
)

var testOrder = &model.Order{
	GatewayID:      "C1",
	Account:        "ACC1",
	Symbol:         "AAPL",
	Side:           model.OrderSideBuy,
	Price:          decimal.RequireFromString("100.50"),
	Quantity:       decimal.NewFromInt(100),
	TransactTime:   time.Now(),
	OrderID:        "O00000001",
	ExecID:         "E1",
	Status:         model.OrderStatusPartiallyFilled,
	ExecType:       model.ExecTypeTrade,
	CumQuantity:    decimal.NewFromInt(40),
	LeavesQuantity: decimal.NewFromInt(60),
	LastQuantity:   decimal.NewFromInt(40),
	LastPrice:      decimal.RequireFromString("100.50"),
}

func TestExecutionReportFields(t *testing.T) {
	msg := orderReportToExecutionReport(testOrder).ToMessage()

	got := func(tg quickfix.Tag) string {
		v, err := msg.Body.GetString(tg)
		if err != nil {
			t.Fatalf("tag %d missing: %v", tg, err)
		}
		return v
	}

	if got(tag.ClOrdID) != "C1" {
		t.Errorf("ClOrdID = %s", got(tag.ClOrdID))
	}
	if got(tag.OrderID) != "O00000001" {
		t.Errorf("OrderID = %s", got(tag.OrderID))
	}
	if got(tag.OrdStatus) != string(enum.OrdStatus_PARTIALLY_FILLED) {
		t.Errorf("OrdStatus = %s", got(tag.OrdStatus))
	}
	if got(tag.ExecType) != string(enum.ExecType_TRADE) {
		t.Errorf("ExecType = %s", got(tag.ExecType))
	}
	if got(tag.Side) != string(enum.Side_BUY) {
		t.Errorf("Side = %s", got(tag.Side))
	}
	if got(tag.LeavesQty) != "60" {
		t.Errorf("LeavesQty = %s", got(tag.LeavesQty))
	}
	if got(tag.CumQty) != "40" {
		t.Errorf("CumQty = %s", got(tag.CumQty))
	}
	if got(tag.LastQty) != "40" {
		t.Errorf("LastQty = %s", got(tag.LastQty))
	}
	if got(tag.Price) != "100.50" {
		t.Errorf("Price = %s", got(tag.Price))
	}
}

func TestExecutionReportOmitsEmptyOptionalFields(t *testing.T) {
	order := *testOrder
	order.OrigGatewayID = ""
	order.Text = ""

	msg := orderReportToExecutionReport(&order).ToMessage()

	if msg.Body.Has(tag.OrigClOrdID) {
		t.Error("OrigClOrdID should be absent")
	}
	if msg.Body.Has(tag.Text) {
		t.Error("Text should be absent")
	}
}

func BenchmarkExecReportNew(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = orderReportToExecutionReport(testOrder)
	}
}
