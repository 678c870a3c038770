package orderbook

import "github.com/gammazero/deque"

// priceLevel holds the resting orders at one exact price in strict arrival
// order: matching consumes from the front, new orders join at the back.
// totalQty tracks the aggregate resting quantity for top-of-book quotes.
type priceLevel struct {
	price    int64
	queue    deque.Deque[*Order]
	totalQty int64
}

func newPriceLevel(price int64) *priceLevel {
	return &priceLevel{price: price}
}

func (l *priceLevel) len() int { return l.queue.Len() }

func (l *priceLevel) push(o *Order) {
	l.queue.PushBack(o)
	l.totalQty += o.Qty
}

func (l *priceLevel) front() *Order { return l.queue.Front() }

func (l *priceLevel) popFront() *Order {
	o := l.queue.PopFront()
	return o
}

// reduce records a fill of qty against the front order.
func (l *priceLevel) reduce(qty int64) {
	l.totalQty -= qty
	if l.totalQty < 0 {
		panic("orderbook: negative resting quantity at price level")
	}
}

// removeByID pulls one resting order out of the queue, preserving the
// relative order of the rest. Returns false when the id is not here.
func (l *priceLevel) removeByID(id uint64) bool {
	i := l.queue.Index(func(o *Order) bool { return o.ID == id })
	if i < 0 {
		return false
	}
	o := l.queue.Remove(i)
	l.totalQty -= o.Qty
	return true
}
