package oms

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/joripage/exchange-core/pkg/logging"
	eventstore "github.com/joripage/exchange-core/pkg/oms/event_store"
	"github.com/joripage/exchange-core/pkg/oms/model"
	riskrule "github.com/joripage/exchange-core/pkg/oms/risk_rule"
	"github.com/joripage/exchange-core/pkg/orderbook"
)

// Config carries per-symbol market parameters. The OMS is the boundary
// between gateway decimals and the core's integer ticks.
type Config struct {
	DefaultTickSize decimal.Decimal
	TickSizes       map[string]decimal.Decimal
	PriceBands      map[string]riskrule.PriceBand
	CleanInterval   time.Duration
}

// OMS orchestrates the order lifecycle around the matching core: dedupe,
// risk checks, tick conversion, event and trade publication, execution
// reports back to the gateway.
type OMS struct {
	cfg          *Config
	orderGateway OrderGateway
	engines      *orderbook.Manager
	eventstore   eventstore.EventStore
	rules        []riskrule.RiskRule
	tickRule     *riskrule.TickSizeRule

	tradePublisher TradePublisher
	eventPublisher EventPublisher

	orderIDMapping  sync.Map // OrderID -> *model.Order
	engineIDMapping sync.Map // EngineID -> OrderID
	idSeq           atomic.Uint64

	log    *logging.Logger
	stopCh chan struct{}
}

func NewOMS(orderGateway OrderGateway, cfg *Config) *OMS {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.DefaultTickSize.IsZero() {
		cfg.DefaultTickSize = decimal.New(1, -2) // 0.01
	}
	if cfg.CleanInterval == 0 {
		cfg.CleanInterval = 30 * time.Second
	}

	tickRule := riskrule.NewTickSizeRule(cfg.TickSizes, cfg.DefaultTickSize)
	return &OMS{
		cfg:          cfg,
		orderGateway: orderGateway,
		engines:      orderbook.NewManager(),
		eventstore:   eventstore.NewInMemoryEventStore(),
		rules: []riskrule.RiskRule{
			tickRule,
			riskrule.NewLimitPriceRule(cfg.PriceBands),
		},
		tickRule: tickRule,
		log:      logging.NewLogger(logging.INFO),
		stopCh:   make(chan struct{}),
	}
}

func (s *OMS) SetTradePublisher(p TradePublisher) { s.tradePublisher = p }
func (s *OMS) SetEventPublisher(p EventPublisher) { s.eventPublisher = p }

// Engines exposes the per-symbol matching engines for read-only callers
// such as the market-data publisher.
func (s *OMS) Engines() *orderbook.Manager { return s.engines }

func (s *OMS) Start(ctx context.Context) error {
	go s.startCleaner(s.cfg.CleanInterval)
	if s.orderGateway == nil {
		return nil
	}
	return s.orderGateway.Start(ctx)
}

func (s *OMS) Stop() {
	close(s.stopCh)
}

func (s *OMS) AddOrder(ctx context.Context, addOrder *model.AddOrder) error {
	if orderID := s.eventstore.GetOrderID(addOrder.GatewayID); orderID != "" {
		return errDuplicateOrder
	}

	order := &model.Order{}
	order.UpdateAddOrder(addOrder)

	seq := s.idSeq.Add(1)
	order.OrderID = fmt.Sprintf("O%08d", seq)
	order.EngineID = seq
	s.addOrderToMap(order)

	for _, rule := range s.rules {
		if err := rule.Check(order); err != nil {
			s.reject(ctx, order, err.Error())
			return nil
		}
	}

	tick := s.tickRule.TickSize(order.Symbol)
	priceTicks, qty, err := toEngineUnits(order.Price, order.Quantity, tick)
	if err != nil {
		s.reject(ctx, order, err.Error())
		return nil
	}

	order.MarkNew()
	s.report(ctx, order)

	trades, _, err := s.engines.Submit(&orderbook.Order{
		ID:     order.EngineID,
		Symbol: order.Symbol,
		Side:   orderbook.Side(order.Side),
		Price:  priceTicks,
		Qty:    qty,
	})
	if err != nil {
		// The core refused input that passed risk checks; report and move on.
		s.log.Warn(ctx, "engine rejected order",
			zap.String("order_id", order.OrderID), zap.Error(err))
		s.reject(ctx, order, err.Error())
		return nil
	}

	s.processTrades(ctx, trades, tick)
	return nil
}

func (s *OMS) CancelOrder(ctx context.Context, cancelOrder *model.CancelOrder) error {
	orderID := s.eventstore.GetOrderID(cancelOrder.OrigGatewayID)
	order, err := s.getOrderByOrderID(orderID)
	if err != nil {
		return errGatewayIDNotFound
	}

	if !order.CanCancel() {
		return errInvalidOrderStatus
	}

	if err := s.engines.Cancel(order.Symbol, order.EngineID); err != nil {
		if errors.Is(err, orderbook.ErrOrderNotFound) {
			// Filled or already gone between the status check and now.
			return errInvalidOrderStatus
		}
		return err
	}

	order.UpdateCancelOrder(cancelOrder)
	s.report(ctx, order)
	return nil
}

// processTrades applies the fills of one submission to both counterparties
// and fans the executions out.
func (s *OMS) processTrades(ctx context.Context, trades []orderbook.Trade, tick decimal.Decimal) {
	for _, t := range trades {
		price := displayPrice(t.Price, tick)
		qty := decimal.NewFromInt(t.Qty)

		taker, errTaker := s.getOrderByEngineID(t.TakerOrderID)
		maker, errMaker := s.getOrderByEngineID(t.MakerOrderID)
		if errTaker != nil || errMaker != nil {
			s.log.Error(ctx, "trade references unknown order",
				zap.Uint64("taker", t.TakerOrderID), zap.Uint64("maker", t.MakerOrderID))
			continue
		}

		taker.ApplyFill(qty, price)
		s.report(ctx, taker)

		maker.ApplyFill(qty, price)
		s.report(ctx, maker)

		if s.tradePublisher != nil {
			ev := &model.TradeEvent{
				Symbol:       t.Symbol,
				MakerOrderID: maker.OrderID,
				TakerOrderID: taker.OrderID,
				Price:        price.InexactFloat64(),
				Qty:          t.Qty,
				Seq:          t.Seq,
				ExecutedAt:   t.ExecutedAt,
			}
			if err := s.tradePublisher.PublishTrade(ctx, ev); err != nil {
				s.log.Warn(ctx, "publish trade failed", zap.Error(err))
			}
		}
	}
}

func (s *OMS) reject(ctx context.Context, order *model.Order, reason string) {
	order.MarkRejected(reason)
	s.report(ctx, order)
}

// report records one state transition: event store, event stream, gateway.
func (s *OMS) report(ctx context.Context, order *model.Order) {
	order.ExecID = uuid.NewString()
	bkOrder := *order

	ev := model.NewOrderEvent(bkOrder, time.Now())
	s.eventstore.AddEvent(ev)

	if s.eventPublisher != nil {
		if err := s.eventPublisher.PublishOrderEvent(ctx, ev); err != nil {
			s.log.Warn(ctx, "publish order event failed",
				zap.String("order_id", bkOrder.OrderID), zap.Error(err))
		}
	}
	if s.orderGateway != nil {
		s.orderGateway.OnOrderReport(ctx, bkOrder)
	}
}

// toEngineUnits converts gateway decimals to core ticks and whole units.
func toEngineUnits(price, qty, tick decimal.Decimal) (int64, int64, error) {
	ticks := price.Div(tick)
	if !ticks.IsInteger() {
		return 0, 0, fmt.Errorf("price %s not on tick grid %s", price, tick)
	}
	if !qty.IsInteger() {
		return 0, 0, fmt.Errorf("quantity %s is not a whole number", qty)
	}
	return ticks.IntPart(), qty.IntPart(), nil
}

func displayPrice(ticks int64, tick decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(ticks).Mul(tick)
}
