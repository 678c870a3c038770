package eventstore

import "github.com/joripage/exchange-core/pkg/oms/model"

// EventStore keeps every order event plus the mapping between gateway ids
// and engine order ids, so replacement/cancel chains can be resolved and
// duplicate gateway ids detected.
type EventStore interface {
	AddEvent(ev *model.OrderEvent)
	TrackGatewayChain(orderID, gatewayID, origGatewayID string)
	GetOrderID(gatewayID string) string
	GetLatestGatewayID(orderID string) string
	Events(orderID string) []*model.OrderEvent
	ReconstructChain(gatewayID string) []string
	DeleteChainByOrderID(orderID string)
}
