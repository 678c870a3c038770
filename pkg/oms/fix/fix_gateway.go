package fixgateway

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/quickfix"

	"github.com/joripage/exchange-core/pkg/oms"
	"github.com/joripage/exchange-core/pkg/oms/model"
)

// FixGateway is the FIX 4.4 order entry surface. Only plain limit orders
// are accepted here: market orders and IOC/FOK time in force get an
// immediate reject report, they never reach the matching core.
type FixGateway struct {
	cfg         *FixGatewayConfig
	app         *Application
	omsInstance oms.IOMS

	requestMapping sync.Map // ClOrdID -> *quickfix.SessionID
}

type FixGatewayConfig struct {
	ConfigFilepath string
}

func NewFixGateway(cfg *FixGatewayConfig) *FixGateway {
	return &FixGateway{
		cfg:            cfg,
		requestMapping: sync.Map{},
	}
}

func (s *FixGateway) AddOmsInstance(o oms.IOMS) {
	s.omsInstance = o
}

func (s *FixGateway) Start(ctx context.Context) error {
	app, err := startApp(s.cfg.ConfigFilepath, s)
	if err != nil {
		log.Printf("start app err=%v", err)
		return err
	}
	s.app = app
	go func() {
		<-ctx.Done()
		stopApp(app)
	}()
	return nil
}

func (s *FixGateway) AddOrder(ctx context.Context, newOrderSingle *NewOrderSingle) {
	s.addRequestToMap(newOrderSingle.ClOrdID, newOrderSingle.SessionID)

	if newOrderSingle.OrdType != enum.OrdType_LIMIT {
		s.rejectNewOrder(newOrderSingle, "only limit orders are supported")
		return
	}
	switch newOrderSingle.TimeInForce {
	case "", enum.TimeInForce_DAY, enum.TimeInForce_GOOD_TILL_CANCEL:
	default:
		s.rejectNewOrder(newOrderSingle, "unsupported time in force")
		return
	}

	side := map[enum.Side]model.OrderSide{
		enum.Side_BUY:  model.OrderSideBuy,
		enum.Side_SELL: model.OrderSideSell,
	}[newOrderSingle.Side]

	err := s.omsInstance.AddOrder(ctx, &model.AddOrder{
		GatewayID:    newOrderSingle.ClOrdID,
		Account:      newOrderSingle.Account,
		Symbol:       newOrderSingle.Symbol,
		Side:         side,
		Price:        newOrderSingle.Price,
		Quantity:     newOrderSingle.OrderQty,
		TransactTime: newOrderSingle.TransactTime,
	})
	if err != nil {
		s.rejectNewOrder(newOrderSingle, err.Error())
	}
}

func (s *FixGateway) CancelOrder(ctx context.Context, orderCancelRequest *OrderCancelRequest) {
	s.addRequestToMap(orderCancelRequest.ClOrdID, orderCancelRequest.SessionID)

	err := s.omsInstance.CancelOrder(ctx, &model.CancelOrder{
		GatewayID:     orderCancelRequest.ClOrdID,
		OrigGatewayID: orderCancelRequest.OrigClOrdID,
	})
	if err != nil {
		s.rejectCancel(orderCancelRequest, err.Error())
	}
}

// OnOrderReport routes an execution report back to the session that sent
// the originating request.
func (s *FixGateway) OnOrderReport(ctx context.Context, order model.Order) {
	sessionID, err := s.getSessionByClOrdID(order.GatewayID)
	if err != nil {
		log.Printf("session for ClOrdID=%s not found", order.GatewayID)
		return
	}

	go func() {
		msg := orderReportToExecutionReport(&order)
		if err := quickfix.SendToTarget(msg, *sessionID); err != nil {
			log.Printf("send err=%v", err)
		}
	}()
}

func (s *FixGateway) rejectNewOrder(req *NewOrderSingle, reason string) {
	order := model.Order{
		GatewayID:    req.ClOrdID,
		Account:      req.Account,
		Symbol:       req.Symbol,
		Price:        req.Price,
		Quantity:     req.OrderQty,
		TransactTime: req.TransactTime,
		Status:       model.OrderStatusRejected,
		ExecType:     model.ExecTypeRejected,
		Text:         reason,
	}
	if req.Side == enum.Side_SELL {
		order.Side = model.OrderSideSell
	} else {
		order.Side = model.OrderSideBuy
	}
	s.OnOrderReport(context.Background(), order)
}

func (s *FixGateway) rejectCancel(req *OrderCancelRequest, reason string) {
	order := model.Order{
		GatewayID:     req.ClOrdID,
		OrigGatewayID: req.OrigClOrdID,
		Account:       req.Account,
		Symbol:        req.Symbol,
		TransactTime:  req.TransactTime,
		Status:        model.OrderStatusRejected,
		ExecType:      model.ExecTypeRejected,
		Text:          reason,
	}
	s.OnOrderReport(context.Background(), order)
}

func (s *FixGateway) addRequestToMap(clOrdID string, sessionID *quickfix.SessionID) {
	s.requestMapping.Store(clOrdID, sessionID)
}

func (s *FixGateway) getSessionByClOrdID(clOrdID string) (*quickfix.SessionID, error) {
	v, ok := s.requestMapping.Load(clOrdID)
	if !ok {
		return nil, errors.New("clOrdID not found")
	}
	return v.(*quickfix.SessionID), nil
}
