package orderbook

import (
	"container/heap"
	"fmt"
	"sort"
)

// book is the two-sided limit order book for one symbol. Each side is a
// price->level map plus a heap giving the best price: max-heap for bids,
// min-heap for asks. byID indexes every resting order for O(1) cancel
// lookup. book is not goroutine safe; Engine serializes access.
type book struct {
	symbol string

	bids map[int64]*priceLevel
	asks map[int64]*priceLevel

	bidHeap *priceHeap
	askHeap *priceHeap

	byID map[uint64]*Order
}

func newBook(symbol string) *book {
	return &book{
		symbol:  symbol,
		bids:    make(map[int64]*priceLevel),
		asks:    make(map[int64]*priceLevel),
		bidHeap: newPriceHeap(func(a, b int64) bool { return a > b }),
		askHeap: newPriceHeap(func(a, b int64) bool { return a < b }),
		byID:    make(map[uint64]*Order),
	}
}

func (b *book) side(s Side) (map[int64]*priceLevel, *priceHeap) {
	if s == BUY {
		return b.bids, b.bidHeap
	}
	return b.asks, b.askHeap
}

// insert appends the order at the tail of its price level, creating the
// level when absent. Time priority of already-resting orders is untouched.
func (b *book) insert(o *Order) {
	levels, prices := b.side(o.Side)
	level := levels[o.Price]
	if level == nil {
		level = newPriceLevel(o.Price)
		levels[o.Price] = level
		heap.Push(prices, o.Price)
	}
	level.push(o)
	b.byID[o.ID] = o
}

// remove cancels one resting order, deleting its level if it empties.
// The heap entry for an emptied price stays behind and is pruned the next
// time bestPrice walks past it.
func (b *book) remove(id uint64) error {
	o, ok := b.byID[id]
	if !ok {
		return ErrOrderNotFound
	}

	levels, _ := b.side(o.Side)
	level := levels[o.Price]
	if level == nil || !level.removeByID(id) {
		panic(fmt.Sprintf("orderbook: resting order %d missing from level %d", id, o.Price))
	}
	if level.len() == 0 {
		delete(levels, o.Price)
	}
	delete(b.byID, id)
	return nil
}

// bestPrice returns the best resting price on a side, popping heap entries
// whose level has been emptied by cancels.
func (b *book) bestPrice(s Side) (int64, bool) {
	levels, prices := b.side(s)
	for {
		price, ok := prices.peek()
		if !ok {
			return 0, false
		}
		if level := levels[price]; level != nil && level.len() > 0 {
			return price, true
		}
		heap.Pop(prices)
	}
}

// peekTop returns the level at the best price without mutating it.
func (b *book) peekTop(s Side) *priceLevel {
	price, ok := b.bestPrice(s)
	if !ok {
		return nil
	}
	levels, _ := b.side(s)
	return levels[price]
}

// dropFilled removes a fully-filled order at the front of its level.
func (b *book) dropFilled(level *priceLevel, o *Order) {
	if front := level.popFront(); front != o {
		panic(fmt.Sprintf("orderbook: filled order %d was not at front of level %d", o.ID, level.price))
	}
	delete(b.byID, o.ID)
	if level.len() == 0 {
		levels, _ := b.side(o.Side)
		delete(levels, level.price)
	}
}

// snapshotSide copies one side in priority order: bids descending, asks
// ascending. The copy is detached from the live book.
func (b *book) snapshotSide(s Side) []LevelSnapshot {
	levels, _ := b.side(s)
	prices := make([]int64, 0, len(levels))
	for price := range levels {
		prices = append(prices, price)
	}
	if s == BUY {
		sort.Slice(prices, func(i, j int) bool { return prices[i] > prices[j] })
	} else {
		sort.Slice(prices, func(i, j int) bool { return prices[i] < prices[j] })
	}

	out := make([]LevelSnapshot, 0, len(prices))
	for _, price := range prices {
		level := levels[price]
		ls := LevelSnapshot{
			Price:  price,
			Qty:    level.totalQty,
			Orders: make([]OrderSnapshot, 0, level.len()),
		}
		for i := 0; i < level.queue.Len(); i++ {
			o := level.queue.At(i)
			ls.Orders = append(ls.Orders, OrderSnapshot{
				ID:    o.ID,
				Price: o.Price,
				Qty:   o.Qty,
				Seq:   o.Seq,
			})
		}
		out = append(out, ls)
	}
	return out
}

// assertUncrossed panics when resting bids and asks overlap. A crossed book
// after matching completes means the engine itself is broken, so this is
// not a recoverable error.
func (b *book) assertUncrossed() {
	bid, okBid := b.bestPrice(BUY)
	ask, okAsk := b.bestPrice(SELL)
	if okBid && okAsk && bid >= ask {
		panic(fmt.Sprintf("orderbook: crossed book %s: bid %d >= ask %d", b.symbol, bid, ask))
	}
}
