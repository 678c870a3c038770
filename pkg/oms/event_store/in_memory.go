package eventstore

import (
	"sync"

	"github.com/joripage/exchange-core/pkg/oms/model"
)

type InMemoryEventStore struct {
	mu              sync.RWMutex
	events          map[string][]*model.OrderEvent
	latestGatewayID map[string]string // OrderID -> current GatewayID
	orderID         map[string]string // GatewayID -> OrderID
	gatewayChain    map[string]string // GatewayID -> OrigGatewayID
}

func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		events:          make(map[string][]*model.OrderEvent),
		latestGatewayID: make(map[string]string),
		orderID:         make(map[string]string),
		gatewayChain:    make(map[string]string),
	}
}

func (s *InMemoryEventStore) AddEvent(ev *model.OrderEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[ev.OrderID] = append(s.events[ev.OrderID], ev)
	s.trackLocked(ev.OrderID, ev.GatewayID, ev.OrigGatewayID)
}

func (s *InMemoryEventStore) TrackGatewayChain(orderID, gatewayID, origGatewayID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trackLocked(orderID, gatewayID, origGatewayID)
}

func (s *InMemoryEventStore) trackLocked(orderID, gatewayID, origGatewayID string) {
	s.latestGatewayID[orderID] = gatewayID
	s.orderID[gatewayID] = orderID
	if origGatewayID != "" {
		s.gatewayChain[gatewayID] = origGatewayID
	}
}

func (s *InMemoryEventStore) GetOrderID(gatewayID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orderID[gatewayID]
}

func (s *InMemoryEventStore) GetLatestGatewayID(orderID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latestGatewayID[orderID]
}

func (s *InMemoryEventStore) Events(orderID string) []*model.OrderEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*model.OrderEvent(nil), s.events[orderID]...)
}

// ReconstructChain walks backward to the original gateway id.
func (s *InMemoryEventStore) ReconstructChain(gatewayID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var chain []string
	curr := gatewayID
	for curr != "" {
		chain = append(chain, curr)
		curr = s.gatewayChain[curr]
	}
	return chain
}

func (s *InMemoryEventStore) DeleteChainByOrderID(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ev := range s.events[orderID] {
		delete(s.orderID, ev.GatewayID)
		delete(s.gatewayChain, ev.GatewayID)
	}
	delete(s.events, orderID)
	delete(s.latestGatewayID, orderID)
}
