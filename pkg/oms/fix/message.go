package fixgateway

import (
	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/field"
	"github.com/quickfixgo/fix44/executionreport"
	"github.com/quickfixgo/quickfix"

	"github.com/joripage/exchange-core/pkg/oms/model"
)

var (
	OrderStatusMapping map[model.OrderStatus]enum.OrdStatus = map[model.OrderStatus]enum.OrdStatus{
		model.OrderStatusPendingNew:      enum.OrdStatus_PENDING_NEW,
		model.OrderStatusNew:             enum.OrdStatus_NEW,
		model.OrderStatusPartiallyFilled: enum.OrdStatus_PARTIALLY_FILLED,
		model.OrderStatusFilled:          enum.OrdStatus_FILLED,
		model.OrderStatusCanceled:        enum.OrdStatus_CANCELED,
		model.OrderStatusRejected:        enum.OrdStatus_REJECTED,
	}

	ExecTypeMapping map[model.OrderExecType]enum.ExecType = map[model.OrderExecType]enum.ExecType{
		model.ExecTypePendingNew: enum.ExecType_PENDING_NEW,
		model.ExecTypeNew:        enum.ExecType_NEW,
		model.ExecTypeTrade:      enum.ExecType_TRADE,
		model.ExecTypeCanceled:   enum.ExecType_CANCELED,
		model.ExecTypeRejected:   enum.ExecType_REJECTED,
	}

	SideMapping map[model.OrderSide]enum.Side = map[model.OrderSide]enum.Side{
		model.OrderSideBuy:  enum.Side_BUY,
		model.OrderSideSell: enum.Side_SELL,
	}
)

func orderReportToExecutionReport(order *model.Order) quickfix.Messagable {
	execReportMsg := executionreport.New(
		field.NewOrderID(order.OrderID),
		field.NewExecID(order.ExecID),
		field.NewExecType(ExecTypeMapping[order.ExecType]),
		field.NewOrdStatus(OrderStatusMapping[order.Status]),
		field.NewSide(SideMapping[order.Side]),
		field.NewLeavesQty(order.LeavesQuantity, 0),
		field.NewCumQty(order.CumQuantity, 0),
		field.NewAvgPx(order.LastPrice, 2),
	)

	execReportMsg.SetClOrdID(order.GatewayID)
	if order.OrigGatewayID != "" {
		execReportMsg.SetOrigClOrdID(order.OrigGatewayID)
	}
	execReportMsg.SetAccount(order.Account)
	execReportMsg.SetSymbol(order.Symbol)
	execReportMsg.SetOrderQty(order.Quantity, 0)
	execReportMsg.SetPrice(order.Price, 2)
	execReportMsg.SetTransactTime(order.TransactTime)
	execReportMsg.SetLastQty(order.LastQuantity, 0)
	execReportMsg.SetLastPx(order.LastPrice, 2)
	if order.Text != "" {
		execReportMsg.SetText(order.Text)
	}

	return execReportMsg
}
