package oms

import (
	"time"

	"github.com/joripage/exchange-core/pkg/oms/model"
)

func (s *OMS) addOrderToMap(order *model.Order) {
	s.orderIDMapping.Store(order.OrderID, order)
	s.engineIDMapping.Store(order.EngineID, order.OrderID)
}

func (s *OMS) getOrderByOrderID(orderID string) (*model.Order, error) {
	v, ok := s.orderIDMapping.Load(orderID)
	if !ok {
		return nil, errOrderIDNotFound
	}
	return v.(*model.Order), nil
}

func (s *OMS) getOrderByEngineID(engineID uint64) (*model.Order, error) {
	v, ok := s.engineIDMapping.Load(engineID)
	if !ok {
		return nil, errOrderIDNotFound
	}
	return s.getOrderByOrderID(v.(string))
}

func (s *OMS) deleteOrder(order *model.Order) {
	s.orderIDMapping.Delete(order.OrderID)
	s.engineIDMapping.Delete(order.EngineID)
	s.eventstore.DeleteChainByOrderID(order.OrderID)
}

// startCleaner periodically drops ended orders from the hot maps. The
// event stream already left the process, so nothing durable is lost.
func (s *OMS) startCleaner(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

func (s *OMS) cleanup() {
	s.orderIDMapping.Range(func(_, v any) bool {
		order := v.(*model.Order)
		if order.IsEnd() {
			s.deleteOrder(order)
		}
		return true
	})
}
