package orderbook

import (
	"sync"
	"time"
)

// Engine matches incoming limit orders against one symbol's book under
// price-time priority. Every exported call holds the engine mutex for its
// full duration, so a Submit is atomic with respect to concurrent Submits
// and Cancels on the same symbol. Engines for different symbols share no
// state and may run on separate goroutines freely.
type Engine struct {
	mu   sync.Mutex
	book *book

	orderSeq uint64
	execSeq  uint64

	lastTrade *Trade
	callbacks []func([]Trade)
}

func NewEngine(symbol string) *Engine {
	return &Engine{book: newBook(symbol)}
}

func (e *Engine) Symbol() string { return e.book.symbol }

// RegisterTradeCallback adds a function invoked with the trades of each
// matching submission, inside the submission's critical section. Callbacks
// therefore observe trades in execution order.
func (e *Engine) RegisterTradeCallback(fn func([]Trade)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.callbacks = append(e.callbacks, fn)
}

// Submit runs one order through the matching loop and rests any remainder.
// It returns the trades generated, the resting remainder (nil when fully
// filled or fully matched away), and ErrInvalidOrder for input that must
// not touch the book.
func (e *Engine) Submit(order *Order) ([]Trade, *Order, error) {
	if err := order.validate(); err != nil {
		return nil, nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.book.byID[order.ID]; ok {
		return nil, nil, ErrInvalidOrder
	}

	// Callers may pre-assign the time-priority sequence, which must be
	// strictly increasing per engine; otherwise stamp it here.
	switch {
	case order.Seq == 0:
		e.orderSeq++
		order.Seq = e.orderSeq
	case order.Seq > e.orderSeq:
		e.orderSeq = order.Seq
	default:
		return nil, nil, ErrInvalidOrder
	}

	trades := e.match(order)

	var resting *Order
	if order.Qty > 0 {
		e.book.insert(order)
		resting = order
	}

	e.book.assertUncrossed()

	if len(trades) > 0 {
		e.lastTrade = &trades[len(trades)-1]
		for _, cb := range e.callbacks {
			cb(trades)
		}
	}
	return trades, resting, nil
}

// match sweeps the opposite side from the best price inward while the
// incoming order is still marketable, consuming each level front-first.
func (e *Engine) match(taker *Order) []Trade {
	counter := SELL
	marketable := func(best int64) bool { return taker.Price >= best }
	if taker.Side == SELL {
		counter = BUY
		marketable = func(best int64) bool { return taker.Price <= best }
	}

	var trades []Trade
	for taker.Qty > 0 {
		best, ok := e.book.bestPrice(counter)
		if !ok || !marketable(best) {
			break
		}

		level := e.book.peekTop(counter)
		maker := level.front()

		qty := min(taker.Qty, maker.Qty)
		taker.Qty -= qty
		maker.Qty -= qty
		level.reduce(qty)

		e.execSeq++
		trades = append(trades, Trade{
			Symbol:       e.book.symbol,
			MakerOrderID: maker.ID,
			TakerOrderID: taker.ID,
			Price:        maker.Price,
			Qty:          qty,
			Seq:          e.execSeq,
			ExecutedAt:   time.Now(),
		})

		if maker.Qty == 0 {
			e.book.dropFilled(level, maker)
		}
	}
	return trades
}

// Cancel removes one resting order. ErrOrderNotFound when the id is not
// resting; the book is unchanged in that case.
func (e *Engine) Cancel(id uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.remove(id)
}

// BestBid returns the highest price with resting BUY quantity.
func (e *Engine) BestBid() (int64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.bestPrice(BUY)
}

// BestAsk returns the lowest price with resting SELL quantity.
func (e *Engine) BestAsk() (int64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.bestPrice(SELL)
}

// TopOfBook returns both best quotes with aggregate level quantity.
func (e *Engine) TopOfBook() TopOfBook {
	e.mu.Lock()
	defer e.mu.Unlock()

	top := TopOfBook{Symbol: e.book.symbol}
	if level := e.book.peekTop(BUY); level != nil {
		top.Bid = &Quote{Price: level.price, Qty: level.totalQty}
	}
	if level := e.book.peekTop(SELL); level != nil {
		top.Ask = &Quote{Price: level.price, Qty: level.totalQty}
	}
	return top
}

// Snapshot copies the full book for market-data publication. The caller
// owns the copy.
func (e *Engine) Snapshot() BookSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return BookSnapshot{
		Symbol: e.book.symbol,
		Bids:   e.book.snapshotSide(BUY),
		Asks:   e.book.snapshotSide(SELL),
	}
}

// LastTrade returns a copy of the most recent trade, or nil before the
// first match.
func (e *Engine) LastTrade() *Trade {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastTrade == nil {
		return nil
	}
	t := *e.lastTrade
	return &t
}
