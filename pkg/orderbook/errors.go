package orderbook

import "errors"

var (
	// ErrInvalidOrder rejects a submission before it touches book state:
	// non-positive price or qty, malformed side, zero id, or a caller
	// sequence that does not advance the engine's counter.
	ErrInvalidOrder = errors.New("orderbook: invalid order")

	// ErrOrderNotFound reports a cancel for an id that is not resting.
	ErrOrderNotFound = errors.New("orderbook: order not found")
)
